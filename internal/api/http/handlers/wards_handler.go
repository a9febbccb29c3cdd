package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Prajeshh-06/Smart-Civic-Reporter/internal/domain"
)

// WardsHandler serves the static ward/department listing.
type WardsHandler struct {
	wards *domain.WardTable
}

// NewWardsHandler constructs handler.
func NewWardsHandler(wards *domain.WardTable) *WardsHandler {
	return &WardsHandler{wards: wards}
}

// List GET /api/wards returns the sorted distinct department names.
func (h *WardsHandler) List(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"wards":   h.wards.DepartmentNames(),
	})
}
