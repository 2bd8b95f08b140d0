package service

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/eliaswendt/timetable-optimizer/internal/config"
)

// New builds the Fiber app exposing the optional run control surface, in
// the same shape as the host's cmd/api/main.go bootstrap: recover,
// request logging, CORS, then routes, then a 404 fallback.
func New(cfg config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "timetable-optimizer service",
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, X-API-Key",
	}))

	app.Get("/health", handleHealth)

	s := newStore(cfg)
	rl := newRateLimiter(5, 10000)

	v1 := app.Group("/v1", authMiddleware(cfg.ServiceAPIKey), rl.middleware(), analyticsMiddleware())
	v1.Post("/runs", s.handleCreateRun)
	v1.Get("/runs/:id", s.handleGetRun)
	v1.Get("/runs/:id/cancel", s.handleCancelRun)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).JSON(fiber.Map{"error": "endpoint not found"})
	})

	return app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
