package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/removealist/removealist/app/repository"
	"github.com/removealist/removealist/internal/pkg/entitlements"
	"github.com/removealist/removealist/internal/pkg/usercontext"
)

// HandleGetAccount returns account information for the authenticated user.
func HandleGetAccount(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	repos := repository.GetGlobalFactory()
	account, err := repos.GetUserRepository().GetByID(userCtx.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load user"})
	}

	plan := entitlements.Normalize(account.PricingPlan)

	response := fiber.Map{
		"id":         account.ID,
		"name":       account.Name,
		"email":      account.Email,
		"status":     account.Status,
		"plan":       string(plan),
		"created_at": account.CreatedAt.UTC().Format(time.RFC3339),
		"limits": fiber.Map{
			"date_changes_allowed":   entitlements.DateChangesAllowed(plan),
			"date_changes_used":      account.DateChangesUsed,
			"date_changes_remaining": entitlements.RemainingDateChanges(plan, account.DateChangesUsed),
			"can_change_date":        entitlements.CanChangeDate(plan, account.DateChangesUsed),
		},
	}

	// Attach the full plan record when it is still in the catalog.
	if planRecord, err := repos.GetPlanRepository().GetByType(string(plan)); err == nil {
		response["plan_details"] = planResponse(planRecord, "", "", "")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load plan"})
	}

	return c.JSON(response)
}
