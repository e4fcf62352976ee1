package handlers

import (
	"errors"
	"log"

	"pasar/internal/apperr"

	"github.com/gofiber/fiber/v2"
)

// respondError maps a service error kind to an HTTP status so clients can
// branch on semantics rather than message text.
func respondError(c *fiber.Ctx, err error) error {
	var e *apperr.Error
	if errors.As(err, &e) {
		status := fiber.StatusInternalServerError
		switch e.Kind {
		case apperr.Validation:
			status = fiber.StatusBadRequest
		case apperr.NotFound:
			status = fiber.StatusNotFound
		case apperr.Authorization:
			status = fiber.StatusForbidden
		case apperr.Conflict:
			status = fiber.StatusConflict
		case apperr.Storage:
			log.Printf("Storage error: %v", e)
		}
		return c.Status(status).JSON(fiber.Map{
			"message": e.Message,
			"kind":    e.Kind.String(),
		})
	}
	log.Printf("Unclassified error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Internal server error",
	})
}
