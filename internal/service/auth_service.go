package service

import (
	"time"

	"github.com/Prajeshh-06/Smart-Civic-Reporter/internal/auth"
	apperrors "github.com/Prajeshh-06/Smart-Civic-Reporter/pkg/util"
)

// AuthService exchanges the shared officer credential for a bearer token.
// Tokens are optional everywhere: a verified identity only overrides the
// body-supplied reporter id.
type AuthService struct {
	tokens      *auth.TokenManager
	officerHash string
}

// NewAuthService constructs the service. An empty officerHash disables
// token issuance.
func NewAuthService(tokens *auth.TokenManager, officerHash string) *AuthService {
	return &AuthService{tokens: tokens, officerHash: officerHash}
}

// IssueToken verifies the officer credential and returns a signed token
// with its expiry.
func (s *AuthService) IssueToken(officerID, password string) (string, time.Time, error) {
	if officerID == "" || password == "" {
		return "", time.Time{}, apperrors.NewValidationError(
			"Missing required fields: officer_id, password", nil)
	}
	if s.officerHash == "" {
		return "", time.Time{}, apperrors.NewUnauthorized("Token issuance is not configured")
	}
	if err := auth.ComparePassword(s.officerHash, password); err != nil {
		return "", time.Time{}, apperrors.NewUnauthorized("Invalid credentials")
	}

	token, expiresAt, err := s.tokens.GenerateToken(officerID)
	if err != nil {
		return "", time.Time{}, apperrors.MapError(err)
	}
	return token, expiresAt, nil
}
