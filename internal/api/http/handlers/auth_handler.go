package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Prajeshh-06/Smart-Civic-Reporter/internal/api/dto"
	"github.com/Prajeshh-06/Smart-Civic-Reporter/internal/service"
	apperrors "github.com/Prajeshh-06/Smart-Civic-Reporter/pkg/util"
)

// AuthHandler serves the officer token exchange.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{service: authService}
}

// IssueToken POST /api/auth/token.
func (h *AuthHandler) IssueToken(c *fiber.Ctx) error {
	var req dto.TokenRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid payload", nil)
	}

	token, expiresAt, err := h.service.IssueToken(req.OfficerID, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":    true,
		"token":      token,
		"expires_at": expiresAt.UTC().Format(time.RFC3339),
	})
}
