package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/removealist/removealist/internal/pkg/billing"
)

// statusForBillingError maps a billing error kind to the HTTP status the API
// responds with. Unknown kinds fall through to 500.
func statusForBillingError(err error) int {
	switch billing.KindOf(err) {
	case billing.KindValidation:
		return fiber.StatusBadRequest
	case billing.KindNotFound:
		return fiber.StatusNotFound
	case billing.KindConflict:
		return fiber.StatusConflict
	case billing.KindCapacityExceeded:
		return fiber.StatusTooManyRequests
	case billing.KindExternal:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// respondBillingError writes the uniform error envelope for a service error.
// Non-billing errors are logged and hidden behind a generic 500.
func respondBillingError(c *fiber.Ctx, err error) error {
	code := billing.CodeOf(err)
	if code == "" {
		log.Printf("billing api: unexpected error on %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "internal_server_error",
			"message": "Something went wrong",
		})
	}
	return c.Status(statusForBillingError(err)).JSON(fiber.Map{
		"error":   string(billing.KindOf(err)),
		"code":    code,
		"message": err.Error(),
	})
}
