package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Token purposes carried in the "type" claim.
const (
	TokenTypeAccess        = "access"
	TokenTypePasswordReset = "password_reset"
)

// JWTService issues and validates session access tokens.
type JWTService interface {
	// GenerateToken creates a signed access token for the account and returns
	// it with its expiry time.
	GenerateToken(ctx context.Context, accountID uuid.UUID) (string, time.Time, error)

	// ValidateToken validates an access token and extracts its claims.
	// Returns ErrExpiredToken, ErrWrongTokenType or ErrInvalidToken on failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// ResetTokenService issues and verifies password reset tokens.
type ResetTokenService interface {
	// IssueResetToken creates a signed reset token bound to email and returns
	// it with its expiry time.
	IssueResetToken(ctx context.Context, email string) (string, time.Time, error)

	// VerifyResetToken checks signature, purpose and expiry of a reset token.
	// Expiry is strict: a token presented at or after its expiry instant is
	// rejected with ErrExpiredToken. Any other failure yields ErrInvalidToken.
	VerifyResetToken(ctx context.Context, tokenString string) (*ResetClaims, error)
}

// Claims represents the validated contents of an access token.
type Claims struct {
	// AccountID is the unique identifier of the account the token was issued for.
	AccountID uuid.UUID `json:"uid,omitempty"`
	// TokenType is always TokenTypeAccess for a validated access token.
	TokenType string    `json:"type,omitempty"`
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}

// ResetClaims represents the validated contents of a password reset token.
type ResetClaims struct {
	Email     string
	ID        string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
