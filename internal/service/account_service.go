package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/userhub/internal/domain"
	"github.com/phrazzld/userhub/internal/platform/mail"
	"github.com/phrazzld/userhub/internal/redact"
	"github.com/phrazzld/userhub/internal/service/auth"
	"github.com/phrazzld/userhub/internal/store"
)

// resetPathSegment is the path under the public base URL that receives reset tokens.
const resetPathSegment = "reset-password"

// CreateAccountInput carries the fields required to register an account.
type CreateAccountInput struct {
	Name     string
	Email    string
	Password string
}

// UpdateAccountInput carries the mutable account fields. Nil means unchanged.
type UpdateAccountInput struct {
	Name  *string
	Email *string
}

// AccountService provides account management and password reset operations.
type AccountService interface {
	// Create registers a new account. The email must not already be registered.
	Create(ctx context.Context, in CreateAccountInput) (*domain.Account, error)

	// List returns every account, newest first.
	List(ctx context.Context) ([]*domain.Account, error)

	// Update applies name and email changes to an existing account and
	// returns the refreshed record.
	Update(ctx context.Context, id uuid.UUID, in UpdateAccountInput) (*domain.Account, error)

	// Delete removes an account permanently.
	Delete(ctx context.Context, id uuid.UUID) error

	// ForgotPassword emails a reset link to the account registered under email.
	ForgotPassword(ctx context.Context, email string) error

	// ResetPassword replaces the password of the account named by a valid reset token.
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// AccountServiceOptions holds the optional behaviour of the account service.
type AccountServiceOptions struct {
	// PublicBaseURL is the origin reset links are built from.
	PublicBaseURL string
	// ConsumedTokens, when set, makes reset tokens single-use.
	ConsumedTokens auth.ConsumedTokenStore
}

// AccountServiceImpl implements the AccountService interface
type AccountServiceImpl struct {
	accounts      store.AccountStore
	db            *sql.DB
	tokens        auth.ResetTokenService
	mailer        mail.Sender
	consumed      auth.ConsumedTokenStore
	publicBaseURL string
	logger        *slog.Logger
}

var _ AccountService = (*AccountServiceImpl)(nil)

// NewAccountService creates a new AccountService.
func NewAccountService(
	accounts store.AccountStore,
	db *sql.DB,
	tokens auth.ResetTokenService,
	mailer mail.Sender,
	opts AccountServiceOptions,
	logger *slog.Logger,
) (AccountService, error) {
	if accounts == nil || db == nil || tokens == nil || mailer == nil {
		return nil, errors.New("account service requires a store, database, token service and mail sender")
	}
	if _, err := url.Parse(opts.PublicBaseURL); err != nil || opts.PublicBaseURL == "" {
		return nil, fmt.Errorf("invalid public base url %q", opts.PublicBaseURL)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &AccountServiceImpl{
		accounts:      accounts,
		db:            db,
		tokens:        tokens,
		mailer:        mailer,
		consumed:      opts.ConsumedTokens,
		publicBaseURL: opts.PublicBaseURL,
		logger:        logger.With("component", "account_service"),
	}, nil
}

// Create implements AccountService.
func (s *AccountServiceImpl) Create(ctx context.Context, in CreateAccountInput) (*domain.Account, error) {
	account, err := domain.NewAccount(in.Name, in.Email, in.Password)
	if err != nil {
		return nil, err
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			s.logger.DebugContext(ctx, "account email already registered")
		} else {
			s.logger.ErrorContext(ctx, "failed to create account", slog.String("error", redact.Error(err)))
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.logger.InfoContext(ctx, "account created", slog.String("account_id", account.ID.String()))
	return account, nil
}

// List implements AccountService.
func (s *AccountServiceImpl) List(ctx context.Context) ([]*domain.Account, error) {
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list accounts", slog.String("error", redact.Error(err)))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// Update implements AccountService.
// The lookup and the write run in one transaction so a concurrent delete
// cannot slip between them.
func (s *AccountServiceImpl) Update(ctx context.Context, id uuid.UUID, in UpdateAccountInput) (*domain.Account, error) {
	changes := domain.AccountChanges{Name: in.Name, Email: in.Email}

	var updated *domain.Account
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.accounts.WithTx(tx)

		account, err := txStore.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to retrieve account for update: %w", err)
		}

		if err := changes.Validate(); err != nil {
			return err
		}
		changes.ApplyTo(account)

		if err := txStore.Update(ctx, account); err != nil {
			return fmt.Errorf("failed to update account: %w", err)
		}
		updated = account
		return nil
	})
	if err != nil {
		if !isExpected(err) {
			s.logger.ErrorContext(ctx, "account update failed",
				slog.String("account_id", id.String()),
				slog.String("error", redact.Error(err)))
		}
		return nil, err
	}

	s.logger.InfoContext(ctx, "account updated", slog.String("account_id", id.String()))
	return updated, nil
}

// Delete implements AccountService.
func (s *AccountServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.accounts.Delete(ctx, id); err != nil {
		if !isExpected(err) {
			s.logger.ErrorContext(ctx, "failed to delete account",
				slog.String("account_id", id.String()),
				slog.String("error", redact.Error(err)))
		}
		return fmt.Errorf("failed to delete account: %w", err)
	}

	s.logger.InfoContext(ctx, "account deleted", slog.String("account_id", id.String()))
	return nil
}

// ForgotPassword implements AccountService.
func (s *AccountServiceImpl) ForgotPassword(ctx context.Context, email string) error {
	if err := domain.ValidateResetEmail(email); err != nil {
		return err
	}

	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to find account for password reset: %w", err)
	}

	token, expiresAt, err := s.tokens.IssueResetToken(ctx, account.Email)
	if err != nil {
		return fmt.Errorf("failed to issue reset token: %w", err)
	}

	link, err := url.JoinPath(s.publicBaseURL, resetPathSegment, token)
	if err != nil {
		return fmt.Errorf("failed to build reset link: %w", err)
	}

	err = s.mailer.SendPasswordReset(ctx, mail.PasswordResetMessage{
		To:        account.Email,
		Name:      account.Name,
		Link:      link,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to send password reset email",
			slog.String("account_id", account.ID.String()),
			slog.String("error", redact.Error(err)))
		return fmt.Errorf("failed to send password reset email: %w", err)
	}

	s.logger.InfoContext(ctx, "password reset email sent", slog.String("account_id", account.ID.String()))
	return nil
}

// ResetPassword implements AccountService.
// The token is consumed only after every other check has passed, and is
// released again when the password change does not commit.
func (s *AccountServiceImpl) ResetPassword(ctx context.Context, token, newPassword string) error {
	claims, err := s.tokens.VerifyResetToken(ctx, token)
	if err != nil {
		s.logger.DebugContext(ctx, "reset token rejected", slog.String("reason", err.Error()))
		return fmt.Errorf("failed to verify reset token: %w", err)
	}

	var consumed bool
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.accounts.WithTx(tx)

		account, err := txStore.GetByEmail(ctx, claims.Email)
		if err != nil {
			return fmt.Errorf("failed to find account for reset token: %w", err)
		}

		if err := domain.ValidateNewPassword(newPassword); err != nil {
			return err
		}

		if s.consumed != nil {
			first, err := s.consumed.Consume(ctx, claims.ID, time.Until(claims.ExpiresAt))
			if err != nil {
				return fmt.Errorf("failed to record reset token use: %w", err)
			}
			if !first {
				return auth.ErrTokenConsumed
			}
			consumed = true
		}

		account.Password = newPassword
		if err := txStore.Update(ctx, account); err != nil {
			return fmt.Errorf("failed to persist reset credential: %w", err)
		}
		return nil
	})
	if err != nil {
		if consumed {
			s.releaseResetToken(ctx, claims.ID)
		}
		if !isExpected(err) {
			s.logger.ErrorContext(ctx, "password reset failed", slog.String("error", redact.Error(err)))
		}
		return err
	}

	s.logger.InfoContext(ctx, "password reset completed")
	return nil
}

// releaseResetToken undoes a Consume whose transaction rolled back. It runs
// even when the request context is already cancelled.
func (s *AccountServiceImpl) releaseResetToken(ctx context.Context, tokenID string) {
	if err := s.consumed.Release(context.WithoutCancel(ctx), tokenID); err != nil {
		s.logger.ErrorContext(ctx, "failed to release reset token after rollback",
			slog.String("error", redact.Error(err)))
	}
}

// isExpected reports whether err is a client-caused condition that the API
// maps to a 4xx response and therefore does not deserve an error log.
func isExpected(err error) bool {
	return errors.Is(err, domain.ErrValidation) ||
		store.IsNotFoundError(err) ||
		store.IsDuplicateError(err) ||
		errors.Is(err, auth.ErrTokenConsumed)
}
