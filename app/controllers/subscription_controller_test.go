package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/removealist/removealist/app/models"
	"github.com/removealist/removealist/internal/pkg/billing"
	"github.com/removealist/removealist/internal/pkg/usercontext"
)

func TestStatusForBillingError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", billing.ValidationError(billing.CodeInvalidBillingCycle, "bad cycle"), fiber.StatusBadRequest},
		{"not found", billing.NotFoundError(billing.CodePlanNotFound, "no plan"), fiber.StatusNotFound},
		{"conflict", billing.ConflictError(billing.CodeDuplicateActiveSubscription, "already subscribed"), fiber.StatusConflict},
		{"capacity", billing.CapacityExceededError(billing.CodeDiscountGlobalLimitReached, "exhausted"), fiber.StatusTooManyRequests},
		{"external", billing.ExternalError(billing.CodePaymentFailed, "capture failed"), fiber.StatusBadGateway},
		{"plain error", errors.New("boom"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusForBillingError(tt.err))
		})
	}
}

func TestRespondBillingError_BillingError(t *testing.T) {
	app := fiber.New()
	app.Get("/err", func(c *fiber.Ctx) error {
		return respondBillingError(c, billing.ConflictError(billing.CodeSubscriptionNotActive, "subscription is not active"))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/err", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	body, readErr := io.ReadAll(resp.Body)
	require.NoError(t, readErr)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "conflict", payload["error"])
	assert.Equal(t, billing.CodeSubscriptionNotActive, payload["code"])
}

func TestRespondBillingError_UnexpectedError(t *testing.T) {
	app := fiber.New()
	app.Get("/err", func(c *fiber.Ctx) error {
		return respondBillingError(c, errors.New("db gone"))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/err", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	body, readErr := io.ReadAll(resp.Body)
	require.NoError(t, readErr)
	assert.NotContains(t, string(body), "db gone")
}

func TestSubscriptionResponse_DerivedFields(t *testing.T) {
	now := time.Now()
	active := &models.UserSubscription{
		UUID:         "sub-active",
		Status:       models.SubscriptionStatusActive,
		BillingCycle: models.BillingCycleMonthly,
		StartDate:    now.Add(-time.Hour),
		EndDate:      now.Add(10*24*time.Hour + time.Hour),
	}

	resp := subscriptionResponse(active)
	assert.Equal(t, active, resp["subscription"])
	assert.Equal(t, true, resp["is_active_subscription"])
	assert.Equal(t, 10, resp["days_remaining"])

	cancelled := &models.UserSubscription{
		UUID:      "sub-cancelled",
		Status:    models.SubscriptionStatusCancelled,
		StartDate: now.Add(-time.Hour),
		EndDate:   now.Add(10 * 24 * time.Hour),
	}

	resp = subscriptionResponse(cancelled)
	assert.Equal(t, false, resp["is_active_subscription"])
	assert.Equal(t, 0, resp["days_remaining"])
}

func TestHandleCreateSubscription_Unauthenticated(t *testing.T) {
	app := fiber.New()
	app.Post("/subscription", HandleCreateSubscription)

	req := httptest.NewRequest(http.MethodPost, "/subscription", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestHandleCreateSubscription_InvalidPayload(t *testing.T) {
	app := fiber.New()
	app.Post("/subscription", func(c *fiber.Ctx) error {
		usercontext.SetUserContext(c, usercontext.UserContext{UserID: 7, IsLoggedIn: true, Plan: "free"})
		return HandleCreateSubscription(c)
	})

	tests := []struct {
		name string
		body string
	}{
		{"empty object", `{}`},
		{"bad cycle", `{"plan_id":"a9c5f9d0-45a2-4a39-8a74-20b7b824a9a1","billing_cycle":"weekly"}`},
		{"bad plan id", `{"plan_id":"not-a-uuid","billing_cycle":"monthly"}`},
		{"not json", `plan_id=x`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/subscription", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestHandleUpdateSubscription_NoFields(t *testing.T) {
	app := fiber.New()
	app.Patch("/subscription", func(c *fiber.Ctx) error {
		usercontext.SetUserContext(c, usercontext.UserContext{UserID: 7, IsLoggedIn: true, Plan: "plus"})
		return HandleUpdateSubscription(c)
	})

	req := httptest.NewRequest(http.MethodPatch, "/subscription", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleValidateDiscount_Unauthenticated(t *testing.T) {
	app := fiber.New()
	app.Post("/discounts/validate", HandleValidateDiscount)

	req := httptest.NewRequest(http.MethodPost, "/discounts/validate", bytes.NewBufferString(`{"code":"WELCOME10"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
