package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/userhub/internal/domain"
)

// CreateAccountRequest defines the payload for account registration.
type CreateAccountRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateAccountRequest defines the mutable fields of an account. Absent
// fields stay unchanged and any other field in the body is ignored.
type UpdateAccountRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// ForgotPasswordRequest defines the payload for requesting a reset email.
// Presence and format are checked by the service.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest defines the payload for completing a password reset.
type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword"`
}

// LoginRequest defines the payload for the session endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CreatedAccountResponse is returned after registration.
type CreatedAccountResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// AccountResponse is the public representation of an account.
type AccountResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SessionResponse defines the successful response of the session endpoint.
type SessionResponse struct {
	User AccountResponse `json:"user"`

	// Token is the bearer token for protected routes
	Token string `json:"token"`

	// ExpiresAt is the RFC 3339 timestamp when the token expires
	ExpiresAt string `json:"expires_at"`
}

func accountToResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func accountsToResponse(accounts []*domain.Account) []AccountResponse {
	out := make([]AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, accountToResponse(a))
	}
	return out
}
