package api

import (
	"github.com/bilgisen/newsdeck/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(app *fiber.App, handlers *Handlers) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// API group with versioning
	api := app.Group("/api/v1")

	// Health check endpoint
	api.Get("/health", handlers.HealthCheck)

	// News endpoints
	news := api.Group("/news")
	{
		news.Get("", middleware.ValidateQuery[NewsQuery](), handlers.GetNews)
		news.Get("/search", middleware.ValidateQuery[SearchQuery](), handlers.SearchNews)
	}

	// 404 Handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Endpoint not found",
		})
	})
}

// NewApp creates the fiber app with the global middleware and routes
func NewApp(handlers *Handlers, cfg fiber.Config) *fiber.App {
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = middleware.ErrorHandler
	}

	app := fiber.New(cfg)
	app.Use(middleware.Recover())
	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger())

	SetupRoutes(app, handlers)
	return app
}
