package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/shravyakp25082007-tech/stockmate/internal/model"
	"github.com/shravyakp25082007-tech/stockmate/internal/service"
)

type PlanningHandler struct {
	service service.PlanService
}

func NewPlanningHandler(s service.PlanService) *PlanningHandler {
	return &PlanningHandler{service: s}
}

type planView struct {
	model.DailyPlan
	Summary model.PlanSummary `json:"summary"`
}

func planKind(c *fiber.Ctx) (model.PlanKind, error) {
	return model.ParsePlanKind(c.Params("kind"))
}

func planItemID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("itemId"))
	if err != nil {
		return uuid.Nil, model.NewValidationError("itemId", "must be a UUID")
	}
	return id, nil
}

func planIndex(c *fiber.Ctx) (int, error) {
	idx, err := c.ParamsInt("index")
	if err != nil {
		return 0, model.NewValidationError("index", "must be an integer")
	}
	return idx, nil
}

type deltaBody struct {
	Delta int `json:"delta"`
}

func (h *PlanningHandler) GetPlan(c *fiber.Ctx) error {
	plan := h.service.GetPlan()
	return c.JSON(planView{DailyPlan: plan, Summary: plan.Summarize()})
}

func (h *PlanningHandler) GetSummary(c *fiber.Ctx) error {
	return c.JSON(h.service.Summarize())
}

func (h *PlanningHandler) AddItem(c *fiber.Ctx) error {
	kind, err := planKind(c)
	if err != nil {
		return respondError(c, err)
	}
	var body struct {
		ProductID int64 `json:"productId"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	item, added, err := h.service.AddToPlan(body.ProductID, kind)
	if err != nil {
		return respondError(c, err)
	}
	if !added {
		return c.JSON(fiber.Map{"message": "Already in the list", "alreadyPresent": true, "data": item})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Added to list", "alreadyPresent": false, "data": item})
}

func (h *PlanningHandler) AdjustItem(c *fiber.Ctx) error {
	kind, err := planKind(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := planItemID(c)
	if err != nil {
		return respondError(c, err)
	}
	var body deltaBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	item, err := h.service.AdjustQuantity(kind, id, body.Delta)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": item})
}

func (h *PlanningHandler) RemoveItem(c *fiber.Ctx) error {
	kind, err := planKind(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := planItemID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.service.RemoveItem(kind, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Removed"})
}

// AdjustItemAt addresses an item by its position in the rendered list.
func (h *PlanningHandler) AdjustItemAt(c *fiber.Ctx) error {
	kind, err := planKind(c)
	if err != nil {
		return respondError(c, err)
	}
	idx, err := planIndex(c)
	if err != nil {
		return respondError(c, err)
	}
	var body deltaBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	item, err := h.service.AdjustQuantityAt(kind, idx, body.Delta)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": item})
}

func (h *PlanningHandler) RemoveItemAt(c *fiber.Ctx) error {
	kind, err := planKind(c)
	if err != nil {
		return respondError(c, err)
	}
	idx, err := planIndex(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.service.RemoveItemAt(kind, idx); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Removed"})
}

func (h *PlanningHandler) SetDate(c *fiber.Ctx) error {
	var body struct {
		Date string `json:"date"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid JSON")
	}
	if err := h.service.SetDate(body.Date); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Date updated", "date": body.Date})
}

func (h *PlanningHandler) SetNotes(c *fiber.Ctx) error {
	var body struct {
		Notes string `json:"notes"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid JSON")
	}
	if err := h.service.SetNotes(body.Notes); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Notes saved"})
}

func (h *PlanningHandler) SavePlan(c *fiber.Ctx) error {
	if err := h.service.SavePlan(); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Daily plan saved successfully"})
}
