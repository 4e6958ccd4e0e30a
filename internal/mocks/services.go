package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/userhub/internal/domain"
	"github.com/phrazzld/userhub/internal/service"
)

// MockAccountService implements service.AccountService for testing
type MockAccountService struct {
	CreateFn         func(ctx context.Context, in service.CreateAccountInput) (*domain.Account, error)
	ListFn           func(ctx context.Context) ([]*domain.Account, error)
	UpdateFn         func(ctx context.Context, id uuid.UUID, in service.UpdateAccountInput) (*domain.Account, error)
	DeleteFn         func(ctx context.Context, id uuid.UUID) error
	ForgotPasswordFn func(ctx context.Context, email string) error
	ResetPasswordFn  func(ctx context.Context, token, newPassword string) error

	// Default return values
	Account  *domain.Account
	Accounts []*domain.Account
	Err      error
}

var _ service.AccountService = (*MockAccountService)(nil)

// Create implements service.AccountService
func (m *MockAccountService) Create(ctx context.Context, in service.CreateAccountInput) (*domain.Account, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, in)
	}
	return m.Account, m.Err
}

// List implements service.AccountService
func (m *MockAccountService) List(ctx context.Context) ([]*domain.Account, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return m.Accounts, m.Err
}

// Update implements service.AccountService
func (m *MockAccountService) Update(
	ctx context.Context,
	id uuid.UUID,
	in service.UpdateAccountInput,
) (*domain.Account, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, in)
	}
	return m.Account, m.Err
}

// Delete implements service.AccountService
func (m *MockAccountService) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.Err
}

// ForgotPassword implements service.AccountService
func (m *MockAccountService) ForgotPassword(ctx context.Context, email string) error {
	if m.ForgotPasswordFn != nil {
		return m.ForgotPasswordFn(ctx, email)
	}
	return m.Err
}

// ResetPassword implements service.AccountService
func (m *MockAccountService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if m.ResetPasswordFn != nil {
		return m.ResetPasswordFn(ctx, token, newPassword)
	}
	return m.Err
}

// MockSessionService implements service.SessionService for testing
type MockSessionService struct {
	LoginFn func(ctx context.Context, email, password string) (*service.Session, error)

	Session *service.Session
	Err     error
}

var _ service.SessionService = (*MockSessionService)(nil)

// Login implements service.SessionService
func (m *MockSessionService) Login(ctx context.Context, email, password string) (*service.Session, error) {
	if m.LoginFn != nil {
		return m.LoginFn(ctx, email, password)
	}
	return m.Session, m.Err
}
