package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/userhub/internal/service/auth"
)

// MockJWTService implements auth.JWTService and auth.ResetTokenService for testing
type MockJWTService struct {
	// GenerateTokenFn allows test cases to mock the GenerateToken behavior
	GenerateTokenFn func(ctx context.Context, accountID uuid.UUID) (string, time.Time, error)

	// ValidateTokenFn allows test cases to mock the ValidateToken behavior
	ValidateTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)

	// IssueResetTokenFn allows test cases to mock the IssueResetToken behavior
	IssueResetTokenFn func(ctx context.Context, email string) (string, time.Time, error)

	// VerifyResetTokenFn allows test cases to mock the VerifyResetToken behavior
	VerifyResetTokenFn func(ctx context.Context, tokenString string) (*auth.ResetClaims, error)

	// Default values used when functions aren't explicitly defined
	Token       string
	ExpiresAt   time.Time
	Err         error
	ValidateErr error
	Claims      *auth.Claims
	ResetClaims *auth.ResetClaims
}

var (
	_ auth.JWTService        = (*MockJWTService)(nil)
	_ auth.ResetTokenService = (*MockJWTService)(nil)
)

// GenerateToken implements the auth.JWTService interface
func (m *MockJWTService) GenerateToken(ctx context.Context, accountID uuid.UUID) (string, time.Time, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, accountID)
	}
	return m.Token, m.ExpiresAt, m.Err
}

// ValidateToken implements the auth.JWTService interface
func (m *MockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}
	return m.Claims, m.ValidateErr
}

// IssueResetToken implements the auth.ResetTokenService interface
func (m *MockJWTService) IssueResetToken(ctx context.Context, email string) (string, time.Time, error) {
	if m.IssueResetTokenFn != nil {
		return m.IssueResetTokenFn(ctx, email)
	}
	return m.Token, m.ExpiresAt, m.Err
}

// VerifyResetToken implements the auth.ResetTokenService interface
func (m *MockJWTService) VerifyResetToken(ctx context.Context, tokenString string) (*auth.ResetClaims, error) {
	if m.VerifyResetTokenFn != nil {
		return m.VerifyResetTokenFn(ctx, tokenString)
	}
	return m.ResetClaims, m.ValidateErr
}
