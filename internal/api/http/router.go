package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Prajeshh-06/Smart-Civic-Reporter/internal/api/http/handlers"
	"github.com/Prajeshh-06/Smart-Civic-Reporter/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Auth      *handlers.AuthHandler
	Reports   *handlers.ReportsHandler
	Analytics *handlers.AnalyticsHandler
	Wards     *handlers.WardsHandler
	Identity  *auth.Middleware
}

// RegisterRoutes wires HTTP routes. The identity middleware only decodes
// tokens when presented; no route rejects anonymous callers.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	api := app.Group("/api", cfg.Identity.Optional)

	api.Get("/health", cfg.Health.Live)
	api.Get("/health/ready", cfg.Health.Ready)

	api.Post("/auth/token", cfg.Auth.IssueToken)

	api.Get("/wards", cfg.Wards.List)
	api.Get("/analytics", cfg.Analytics.Summary)

	api.Post("/reports", cfg.Reports.Create)
	api.Get("/reports", cfg.Reports.List)
	// The ward listing must register before the :id routes so "ward" is not
	// captured as a report id.
	api.Get("/reports/ward/:wardName", cfg.Reports.ListByWard)
	api.Get("/reports/:id", cfg.Reports.Get)
	api.Post("/reports/:id/boost", cfg.Reports.Boost)
	api.Put("/reports/:id/status", cfg.Reports.UpdateStatus)
	api.Delete("/reports/:id", cfg.Reports.Delete)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Route not found",
		})
	})
}
