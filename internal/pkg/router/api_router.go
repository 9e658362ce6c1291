package router

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/storage/redis"

	"github.com/removealist/removealist/app/controllers"
	"github.com/removealist/removealist/internal/pkg/env"
	"github.com/removealist/removealist/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		Storage:    newLimiterStorage(),
	}))
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	v1 := api.Group("/v1")

	// Public catalog routes
	v1.Get("/plans", controllers.HandleListPlans)
	v1.Get("/plans/:uuid", controllers.HandleGetPlan)

	// Authenticated billing routes
	auth := v1.Group("", middleware.APIKeyAuthMiddleware())
	auth.Get("/account", controllers.HandleGetAccount)
	auth.Get("/subscription", controllers.HandleGetSubscription)
	auth.Post("/subscription", controllers.HandleCreateSubscription)
	auth.Patch("/subscription", controllers.HandleUpdateSubscription)
	auth.Post("/subscription/cancel", controllers.HandleCancelSubscription)
	auth.Get("/subscription/payments", controllers.HandleListPayments)
	auth.Get("/plan-info", controllers.HandleGetPlanInfo)
	auth.Post("/discounts/validate", controllers.HandleValidateDiscount)
	auth.Get("/discounts/usage", controllers.HandleListDiscountUsage)
}

// newLimiterStorage backs the rate limiter with Redis so limits hold across
// instances. Database 1 keeps limiter keys away from the cache in DB 0.
func newLimiterStorage() *redis.Storage {
	port := 6379
	if p, err := strconv.Atoi(env.GetEnv("CACHE_PORT", "6379")); err == nil {
		port = p
	}
	return redis.New(redis.Config{
		Host:     env.GetEnv("CACHE_HOST", "localhost"),
		Port:     port,
		Password: env.GetEnv("CACHE_PASSWORD", ""),
		Database: 1,
		Reset:    false,
	})
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
