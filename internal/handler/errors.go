package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/shravyakp25082007-tech/stockmate/internal/model"
)

// respondError maps service errors to status codes and a JSON body.
func respondError(c *fiber.Ctx, err error) error {
	var (
		validationErr *model.ValidationError
		notFoundErr   *model.NotFoundError
		indexErr      *model.IndexError
		stockErr      *model.InsufficientStockError
		persistErr    *model.PersistenceError
	)
	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr.Error(), "fields": validationErr.Fields})
	case errors.As(err, &notFoundErr):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": notFoundErr.Error()})
	case errors.As(err, &indexErr):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": indexErr.Error()})
	case errors.As(err, &stockErr):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":     stockErr.Error(),
			"available": stockErr.Available,
		})
	case errors.As(err, &persistErr):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Change applied but could not be saved: " + persistErr.Error(),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}
