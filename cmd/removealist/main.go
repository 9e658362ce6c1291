package main

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/removealist/removealist/app/repository"
	"github.com/removealist/removealist/internal/pkg/cache"
	"github.com/removealist/removealist/internal/pkg/database"
	"github.com/removealist/removealist/internal/pkg/env"
	"github.com/removealist/removealist/internal/pkg/jobqueue"
	"github.com/removealist/removealist/internal/pkg/router"
)

func main() {
	app := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()

	repository.InitializeFactory(database.GetDB())

	// background workers (expiry sweep)
	jobqueue.GetManager().Start()

	// init fiber app
	app := fiber.New(fiber.Config{
		AppName:   "removealist-billing",
		BodyLimit: 1 * 1024 * 1024,
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// ROUTER
	router.InstallRouter(app)

	return app
}
