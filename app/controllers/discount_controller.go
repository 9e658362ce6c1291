package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/removealist/removealist/internal/pkg/usercontext"
)

// ValidateDiscountRequest is the JSON payload for discount code validation.
type ValidateDiscountRequest struct {
	Code   string `json:"code" validate:"required,min=1,max=50"`
	PlanID string `json:"plan_id"`
}

// HandleValidateDiscount checks a discount code for the authenticated user
// without consuming a use. When a plan id is supplied the response includes
// the computed discount against that plan's monthly rate.
func HandleValidateDiscount(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	var req ValidateDiscountRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation", "message": "Invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation", "message": err.Error()})
	}

	check, err := BillingService().ValidateDiscountCode(c.UserContext(), userCtx.UserID, req.Code, req.PlanID)
	if err != nil {
		return respondBillingError(c, err)
	}

	return c.JSON(fiber.Map{
		"valid":           true,
		"code":            check.Discount.Code,
		"discount_type":   check.Discount.DiscountType,
		"discount_value":  check.Discount.DiscountValue,
		"discount_amount": check.DiscountAmount,
	})
}

// HandleListDiscountUsage returns the user's discount redemption history.
func HandleListDiscountUsage(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	usages, err := BillingService().ListDiscountUsage(c.UserContext(), userCtx.UserID)
	if err != nil {
		return respondBillingError(c, err)
	}
	return c.JSON(fiber.Map{"usages": usages})
}
