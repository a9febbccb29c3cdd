package dto

// TokenRequest is the officer credential exchange payload.
type TokenRequest struct {
	OfficerID string `json:"officer_id"`
	Password  string `json:"password"`
}
