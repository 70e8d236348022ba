package handler

import (
	"github.com/shravyakp25082007-tech/stockmate/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetDashboardStats returns overview statistics, stock buckets and alerts
func (h *DashboardHandler) GetDashboardStats(c *fiber.Ctx) error {
	return c.JSON(h.service.GetDashboardStats())
}
