package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/userhub/internal/domain"
	"github.com/phrazzld/userhub/internal/service/auth"
	"github.com/phrazzld/userhub/internal/store"
)

// Session is the result of a successful login.
type Session struct {
	Account   *domain.Account
	Token     string
	ExpiresAt time.Time
}

// SessionService authenticates credentials and issues session tokens.
type SessionService interface {
	// Login returns a session for valid credentials, or ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (*Session, error)
}

// SessionServiceImpl implements the SessionService interface
type SessionServiceImpl struct {
	accounts store.AccountStore
	tokens   auth.JWTService
	verifier auth.PasswordVerifier
	logger   *slog.Logger
}

var _ SessionService = (*SessionServiceImpl)(nil)

// NewSessionService creates a new SessionService.
func NewSessionService(
	accounts store.AccountStore,
	tokens auth.JWTService,
	verifier auth.PasswordVerifier,
	logger *slog.Logger,
) SessionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionServiceImpl{
		accounts: accounts,
		tokens:   tokens,
		verifier: verifier,
		logger:   logger.With("component", "session_service"),
	}
}

// Login implements SessionService.
func (s *SessionServiceImpl) Login(ctx context.Context, email, password string) (*Session, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if store.IsNotFoundError(err) {
			s.logger.DebugContext(ctx, "login for unknown email")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	if err := s.verifier.Compare(account.PasswordHash, password); err != nil {
		s.logger.DebugContext(ctx, "login with wrong password", slog.String("account_id", account.ID.String()))
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.GenerateToken(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	s.logger.InfoContext(ctx, "session created", slog.String("account_id", account.ID.String()))
	return &Session{Account: account, Token: token, ExpiresAt: expiresAt}, nil
}
