package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/removealist/removealist/app/models"
	"github.com/removealist/removealist/app/repository"
	"github.com/removealist/removealist/internal/pkg/catalog"
	"github.com/removealist/removealist/internal/pkg/database"
	"github.com/removealist/removealist/internal/pkg/entitlements"
)

// planResponse renders a pricing plan with prices computed for the caller's
// move context. base_* carry the undiscounted list prices.
func planResponse(plan *models.PricingPlan, location, timeline, moveType string) fiber.Map {
	return fiber.Map{
		"id":                   plan.UUID,
		"plan_type":            plan.PlanType,
		"name":                 plan.Name,
		"description":          plan.Description,
		"base_price_monthly":   plan.PriceMonthly,
		"base_price_yearly":    plan.PriceYearly,
		"price_monthly":        plan.CalculatePrice(models.BillingCycleMonthly, location, timeline, moveType),
		"price_yearly":         plan.CalculatePrice(models.BillingCycleYearly, location, timeline, moveType),
		"currency":             models.DefaultCurrency,
		"features":             plan.Features,
		"date_changes_allowed": entitlements.DateChangesAllowed(entitlements.Normalize(plan.PlanType)),
		"is_popular":           plan.IsPopular,
	}
}

// HandleListPlans returns all active pricing plans. The optional location,
// timeline and move_type query parameters feed the contextual multipliers.
func HandleListPlans(c *fiber.Ctx) error {
	db := database.GetDB()
	if db == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Database unavailable"})
	}

	plans, err := catalog.GetActivePlans(db)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load plans"})
	}

	location := c.Query("location")
	timeline := c.Query("timeline")
	moveType := c.Query("move_type")

	out := make([]fiber.Map, 0, len(plans))
	for i := range plans {
		out = append(out, planResponse(&plans[i], location, timeline, moveType))
	}

	return c.JSON(fiber.Map{
		"plans": out,
		"context": fiber.Map{
			"location":  location,
			"timeline":  timeline,
			"move_type": moveType,
		},
	})
}

// HandleGetPlan returns a single pricing plan by its public UUID.
func HandleGetPlan(c *fiber.Ctx) error {
	planUUID := c.Params("uuid")
	if planUUID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation", "message": "Plan id is required"})
	}

	repo := repository.GetGlobalFactory().GetPlanRepository()
	plan, err := repo.GetByUUID(planUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Plan not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load plan"})
	}

	return c.JSON(planResponse(plan, c.Query("location"), c.Query("timeline"), c.Query("move_type")))
}
