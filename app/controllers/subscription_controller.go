package controllers

import (
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/removealist/removealist/app/models"
	"github.com/removealist/removealist/internal/pkg/billing"
	"github.com/removealist/removealist/internal/pkg/database"
	"github.com/removealist/removealist/internal/pkg/usercontext"
)

var (
	billingSvc     *billing.Service
	billingSvcOnce sync.Once
	validate       = validator.New()
)

// BillingService returns the process-wide billing service, constructing it on
// first use from the shared DB handle.
func BillingService() *billing.Service {
	billingSvcOnce.Do(func() {
		billingSvc = billing.NewServiceFromDB(database.GetDB())
	})
	return billingSvc
}

// SetBillingService swaps the billing service, for tests.
func SetBillingService(svc *billing.Service) {
	billingSvcOnce.Do(func() {})
	billingSvc = svc
}

// subscriptionResponse wraps a subscription with the derived period fields
// clients render directly.
func subscriptionResponse(sub *models.UserSubscription) fiber.Map {
	now := time.Now()
	return fiber.Map{
		"subscription":           sub,
		"is_active_subscription": sub.IsCurrentlyActive(now),
		"days_remaining":         sub.DaysRemaining(now),
	}
}

// CreateSubscriptionRequest is the JSON payload for subscription creation.
type CreateSubscriptionRequest struct {
	PlanID       string `json:"plan_id" validate:"required,uuid4"`
	BillingCycle string `json:"billing_cycle" validate:"required,oneof=monthly yearly"`
	DiscountCode string `json:"discount_code"`
	AutoRenew    *bool  `json:"auto_renew"`
	Location     string `json:"location"`
	Timeline     string `json:"timeline"`
	MoveType     string `json:"move_type"`
}

// HandleCreateSubscription subscribes the authenticated user to a plan.
func HandleCreateSubscription(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	var req CreateSubscriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation", "message": "Invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation", "message": err.Error()})
	}

	autoRenew := true
	if req.AutoRenew != nil {
		autoRenew = *req.AutoRenew
	}

	sub, err := BillingService().CreateSubscription(c.UserContext(), billing.CreateSubscriptionInput{
		UserID:       userCtx.UserID,
		PlanUUID:     req.PlanID,
		BillingCycle: req.BillingCycle,
		DiscountCode: req.DiscountCode,
		AutoRenew:    autoRenew,
		Location:     req.Location,
		Timeline:     req.Timeline,
		MoveType:     req.MoveType,
	})
	if err != nil {
		return respondBillingError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(subscriptionResponse(sub))
}

// HandleGetSubscription returns the authenticated user's subscription.
func HandleGetSubscription(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	sub, err := BillingService().GetSubscription(c.UserContext(), userCtx.UserID)
	if err != nil {
		return respondBillingError(c, err)
	}
	return c.JSON(subscriptionResponse(sub))
}

// UpdateSubscriptionRequest is the JSON payload for subscription updates.
type UpdateSubscriptionRequest struct {
	AutoRenew *bool `json:"auto_renew"`
}

// HandleUpdateSubscription applies the allowed settings changes.
func HandleUpdateSubscription(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	var req UpdateSubscriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation", "message": "Invalid request body"})
	}
	if req.AutoRenew == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation", "message": "No updatable fields supplied"})
	}

	sub, err := BillingService().UpdateSubscription(c.UserContext(), userCtx.UserID, billing.UpdateSubscriptionInput{
		AutoRenew: req.AutoRenew,
	})
	if err != nil {
		return respondBillingError(c, err)
	}
	return c.JSON(subscriptionResponse(sub))
}

// HandleCancelSubscription cancels the active subscription and drops the user
// back to the free tier.
func HandleCancelSubscription(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	sub, err := BillingService().CancelSubscription(c.UserContext(), userCtx.UserID)
	if err != nil {
		return respondBillingError(c, err)
	}
	resp := subscriptionResponse(sub)
	resp["message"] = "Subscription cancelled"
	return c.JSON(resp)
}

// HandleListPayments returns the payment history for the user's subscription.
func HandleListPayments(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	payments, err := BillingService().ListPayments(c.UserContext(), userCtx.UserID)
	if err != nil {
		return respondBillingError(c, err)
	}
	return c.JSON(fiber.Map{"payments": payments})
}

// HandleGetPlanInfo returns the user's current plan tier and limit usage.
func HandleGetPlanInfo(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	info, err := BillingService().GetPlanInfo(c.UserContext(), userCtx.UserID)
	if err != nil {
		return respondBillingError(c, err)
	}
	return c.JSON(info)
}
