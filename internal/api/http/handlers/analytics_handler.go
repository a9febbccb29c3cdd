package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Prajeshh-06/Smart-Civic-Reporter/internal/service"
)

// AnalyticsHandler serves the aggregate statistics endpoint.
type AnalyticsHandler struct {
	service *service.AnalyticsService
}

// NewAnalyticsHandler constructs handler.
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: analyticsService}
}

// Summary GET /api/analytics. The only supported filter is the optional
// ward query parameter.
func (h *AnalyticsHandler) Summary(c *fiber.Ctx) error {
	analytics, err := h.service.Aggregate(c.Context(), c.Query("ward"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":   true,
		"analytics": analytics,
	})
}
