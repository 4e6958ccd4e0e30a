package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/phrazzld/userhub/internal/domain"
	"github.com/phrazzld/userhub/internal/mocks"
	"github.com/phrazzld/userhub/internal/platform/logger"
	"github.com/phrazzld/userhub/internal/service"
	"github.com/phrazzld/userhub/internal/service/auth"
	"github.com/phrazzld/userhub/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type accountFixture struct {
	svc      service.AccountService
	accounts *mocks.MockAccountStore
	tokens   *mocks.MockJWTService
	mailer   *mocks.MockMailer
	dbMock   sqlmock.Sqlmock
	logs     *logger.TestLogBuffer
}

func newAccountFixture(t *testing.T, consumed auth.ConsumedTokenStore) *accountFixture {
	t.Helper()

	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log, logs := logger.GetTestLogger(t)
	f := &accountFixture{
		accounts: &mocks.MockAccountStore{},
		tokens:   &mocks.MockJWTService{},
		mailer:   &mocks.MockMailer{},
		dbMock:   dbMock,
		logs:     logs,
	}
	svc, err := service.NewAccountService(f.accounts, db, f.tokens, f.mailer, service.AccountServiceOptions{
		PublicBaseURL:  "https://app.example.com",
		ConsumedTokens: consumed,
	}, log)
	require.NoError(t, err)
	f.svc = svc

	t.Cleanup(func() {
		f.accounts.AssertExpectations(t)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})
	return f
}

func existingAccount() *domain.Account {
	return &domain.Account{
		ID:           uuid.New(),
		Name:         "Ada",
		Email:        "ada@example.com",
		PasswordHash: "$2a$04$hash",
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
}

func strPtr(s string) *string { return &s }

func TestNewAccountService_RequiresDependencies(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	_, err = service.NewAccountService(nil, db, &mocks.MockJWTService{}, &mocks.MockMailer{},
		service.AccountServiceOptions{PublicBaseURL: "http://localhost"}, nil)
	assert.Error(t, err)

	_, err = service.NewAccountService(&mocks.MockAccountStore{}, db, &mocks.MockJWTService{}, &mocks.MockMailer{},
		service.AccountServiceOptions{}, nil)
	assert.Error(t, err)
}

func TestAccountService_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newAccountFixture(t, nil)
		f.accounts.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Account) bool {
			return a.Email == "ada@example.com" && a.Password == "secret1" && a.ID != uuid.Nil
		})).Return(nil)

		account, err := f.svc.Create(context.Background(), service.CreateAccountInput{
			Name: "Ada", Email: "ada@example.com", Password: "secret1",
		})
		require.NoError(t, err)
		assert.Equal(t, "Ada", account.Name)
	})

	t.Run("missing field", func(t *testing.T) {
		f := newAccountFixture(t, nil)

		_, err := f.svc.Create(context.Background(), service.CreateAccountInput{Name: "Ada", Email: "  "})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrValidation)

		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "email", ve.Field)
	})

	t.Run("duplicate email", func(t *testing.T) {
		f := newAccountFixture(t, nil)
		f.accounts.On("Create", mock.Anything, mock.Anything).Return(store.ErrEmailExists)

		_, err := f.svc.Create(context.Background(), service.CreateAccountInput{
			Name: "Ada", Email: "ada@example.com", Password: "secret1",
		})
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})
}

func TestAccountService_List(t *testing.T) {
	f := newAccountFixture(t, nil)
	want := []*domain.Account{existingAccount(), existingAccount()}
	f.accounts.On("List", mock.Anything).Return(want, nil)

	got, err := f.svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestAccountService_Update(t *testing.T) {
	t.Run("applies allowed fields", func(t *testing.T) {
		f := newAccountFixture(t, nil)
		acc := existingAccount()
		originalHash := acc.PasswordHash

		f.dbMock.ExpectBegin()
		f.accounts.On("GetByID", mock.Anything, acc.ID).Return(acc, nil)
		f.accounts.On("Update", mock.Anything, mock.MatchedBy(func(a *domain.Account) bool {
			return a.Name == "Ada L." && a.Email == "ada@example.com" && a.PasswordHash == originalHash
		})).Return(nil)
		f.dbMock.ExpectCommit()

		updated, err := f.svc.Update(context.Background(), acc.ID, service.UpdateAccountInput{Name: strPtr("Ada L.")})
		require.NoError(t, err)
		assert.Equal(t, "Ada L.", updated.Name)
	})

	t.Run("unknown id", func(t *testing.T) {
		f := newAccountFixture(t, nil)
		id := uuid.New()

		f.dbMock.ExpectBegin()
		f.accounts.On("GetByID", mock.Anything, id).Return(nil, store.ErrAccountNotFound)
		f.dbMock.ExpectRollback()

		_, err := f.svc.Update(context.Background(), id, service.UpdateAccountInput{Name: strPtr("")})
		assert.ErrorIs(t, err, store.ErrAccountNotFound)
	})

	t.Run("blank value", func(t *testing.T) {
		f := newAccountFixture(t, nil)
		acc := existingAccount()

		f.dbMock.ExpectBegin()
		f.accounts.On("GetByID", mock.Anything, acc.ID).Return(acc, nil)
		f.dbMock.ExpectRollback()

		_, err := f.svc.Update(context.Background(), acc.ID, service.UpdateAccountInput{Email: strPtr(" ")})
		assert.ErrorIs(t, err, domain.ErrValidation)
		f.accounts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("email taken", func(t *testing.T) {
		f := newAccountFixture(t, nil)
		acc := existingAccount()

		f.dbMock.ExpectBegin()
		f.accounts.On("GetByID", mock.Anything, acc.ID).Return(acc, nil)
		f.accounts.On("Update", mock.Anything, mock.Anything).Return(store.ErrEmailExists)
		f.dbMock.ExpectRollback()

		_, err := f.svc.Update(context.Background(), acc.ID, service.UpdateAccountInput{Email: strPtr("bob@example.com")})
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})
}

func TestAccountService_Delete(t *testing.T) {
	f := newAccountFixture(t, nil)
	id := uuid.New()
	f.accounts.On("Delete", mock.Anything, id).Return(store.ErrAccountNotFound).Once()

	err := f.svc.Delete(context.Background(), id)
	assert.ErrorIs(t, err, store.ErrAccountNotFound)
}

func TestAccountService_ForgotPassword(t *testing.T) {
	t.Run("sends link", func(t *testing.T) {
		f := newAccountFixture(t, nil)
		acc := existingAccount()
		expires := time.Now().Add(30 * time.Minute)

		f.accounts.On("GetByEmail", mock.Anything, acc.Email).Return(acc, nil)
		f.tokens.IssueResetTokenFn = func(_ context.Context, email string) (string, time.Time, error) {
			assert.Equal(t, acc.Email, email)
			return "tok.en.sig", expires, nil
		}

		require.NoError(t, f.svc.ForgotPassword(context.Background(), acc.Email))

		msg, ok := f.mailer.Last()
		require.True(t, ok)
		assert.Equal(t, acc.Email, msg.To)
		assert.Equal(t, acc.Name, msg.Name)
		assert.Equal(t, "https://app.example.com/reset-password/tok.en.sig", msg.Link)
		assert.Equal(t, expires, msg.ExpiresAt)
	})

	t.Run("invalid email format", func(t *testing.T) {
		f := newAccountFixture(t, nil)
		err := f.svc.ForgotPassword(context.Background(), "not-an-email")
		assert.ErrorIs(t, err, domain.ErrInvalidEmail)
		assert.Empty(t, f.mailer.Messages())
	})

	t.Run("unknown email", func(t *testing.T) {
		f := newAccountFixture(t, nil)
		f.accounts.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, store.ErrAccountNotFound)

		err := f.svc.ForgotPassword(context.Background(), "nobody@example.com")
		assert.ErrorIs(t, err, store.ErrAccountNotFound)
		assert.Empty(t, f.mailer.Messages())
	})

	t.Run("delivery failure", func(t *testing.T) {
		f := newAccountFixture(t, nil)
		acc := existingAccount()
		f.accounts.On("GetByEmail", mock.Anything, acc.Email).Return(acc, nil)
		f.tokens.Token = "tok"
		f.mailer.Err = errors.New("connection refused")

		err := f.svc.ForgotPassword(context.Background(), acc.Email)
		require.Error(t, err)
		assert.True(t, strings.Contains(err.Error(), "failed to send password reset email"))
	})
}

func TestAccountService_ResetPassword(t *testing.T) {
	claimsFor := func(email string) *auth.ResetClaims {
		return &auth.ResetClaims{
			Email:     email,
			ID:        uuid.NewString(),
			IssuedAt:  time.Now(),
			ExpiresAt: time.Now().Add(10 * time.Minute),
		}
	}

	t.Run("success", func(t *testing.T) {
		f := newAccountFixture(t, nil)
		acc := existingAccount()
		f.tokens.ResetClaims = claimsFor(acc.Email)

		f.dbMock.ExpectBegin()
		f.accounts.On("GetByEmail", mock.Anything, acc.Email).Return(acc, nil)
		f.accounts.On("Update", mock.Anything, mock.MatchedBy(func(a *domain.Account) bool {
			return a.ID == acc.ID && a.Password == "brand-new"
		})).Return(nil)
		f.dbMock.ExpectCommit()

		require.NoError(t, f.svc.ResetPassword(context.Background(), "tok", "brand-new"))
	})

	t.Run("invalid token", func(t *testing.T) {
		f := newAccountFixture(t, nil)
		f.tokens.ValidateErr = auth.ErrInvalidToken

		err := f.svc.ResetPassword(context.Background(), "garbage", "brand-new")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		f := newAccountFixture(t, nil)
		f.tokens.ValidateErr = auth.ErrExpiredToken

		err := f.svc.ResetPassword(context.Background(), "old", "brand-new")
		assert.ErrorIs(t, err, auth.ErrExpiredToken)
	})

	t.Run("account gone", func(t *testing.T) {
		f := newAccountFixture(t, nil)
		f.tokens.ResetClaims = claimsFor("gone@example.com")

		f.dbMock.ExpectBegin()
		f.accounts.On("GetByEmail", mock.Anything, "gone@example.com").Return(nil, store.ErrAccountNotFound)
		f.dbMock.ExpectRollback()

		err := f.svc.ResetPassword(context.Background(), "tok", "brand-new")
		assert.ErrorIs(t, err, store.ErrAccountNotFound)
	})

	t.Run("short password", func(t *testing.T) {
		f := newAccountFixture(t, nil)
		acc := existingAccount()
		f.tokens.ResetClaims = claimsFor(acc.Email)

		f.dbMock.ExpectBegin()
		f.accounts.On("GetByEmail", mock.Anything, acc.Email).Return(acc, nil)
		f.dbMock.ExpectRollback()

		err := f.svc.ResetPassword(context.Background(), "tok", "12345")
		assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
	})

	t.Run("single use", func(t *testing.T) {
		consumed := auth.NewMemoryConsumedTokens()
		f := newAccountFixture(t, consumed)
		acc := existingAccount()
		f.tokens.ResetClaims = claimsFor(acc.Email)

		f.dbMock.ExpectBegin()
		f.accounts.On("GetByEmail", mock.Anything, acc.Email).Return(acc, nil)
		f.accounts.On("Update", mock.Anything, mock.Anything).Return(nil).Once()
		f.dbMock.ExpectCommit()
		f.dbMock.ExpectBegin()
		f.dbMock.ExpectRollback()

		require.NoError(t, f.svc.ResetPassword(context.Background(), "tok", "brand-new"))

		err := f.svc.ResetPassword(context.Background(), "tok", "another-one")
		assert.ErrorIs(t, err, auth.ErrTokenConsumed)
	})

	t.Run("short password does not consume token", func(t *testing.T) {
		consumed := auth.NewMemoryConsumedTokens()
		f := newAccountFixture(t, consumed)
		acc := existingAccount()
		claims := claimsFor(acc.Email)
		f.tokens.ResetClaims = claims

		f.dbMock.ExpectBegin()
		f.accounts.On("GetByEmail", mock.Anything, acc.Email).Return(acc, nil)
		f.dbMock.ExpectRollback()

		err := f.svc.ResetPassword(context.Background(), "tok", "123")
		require.ErrorIs(t, err, domain.ErrValidation)

		first, err := consumed.Consume(context.Background(), claims.ID, time.Minute)
		require.NoError(t, err)
		assert.True(t, first)
	})

	t.Run("failed update releases the token", func(t *testing.T) {
		consumed := auth.NewMemoryConsumedTokens()
		f := newAccountFixture(t, consumed)
		acc := existingAccount()
		f.tokens.ResetClaims = claimsFor(acc.Email)

		f.dbMock.ExpectBegin()
		f.accounts.On("GetByEmail", mock.Anything, acc.Email).Return(acc, nil)
		f.accounts.On("Update", mock.Anything, mock.Anything).Return(errors.New("connection reset")).Once()
		f.dbMock.ExpectRollback()

		err := f.svc.ResetPassword(context.Background(), "tok", "brand-new")
		require.Error(t, err)
		assert.NotErrorIs(t, err, auth.ErrTokenConsumed)
		logger.AssertLogContains(t, f.logs, "failed to persist reset credential: connection reset")

		f.dbMock.ExpectBegin()
		f.accounts.On("Update", mock.Anything, mock.Anything).Return(nil).Once()
		f.dbMock.ExpectCommit()

		require.NoError(t, f.svc.ResetPassword(context.Background(), "tok", "brand-new"))
	})

	t.Run("failed commit releases the token", func(t *testing.T) {
		consumed := auth.NewMemoryConsumedTokens()
		f := newAccountFixture(t, consumed)
		acc := existingAccount()
		claims := claimsFor(acc.Email)
		f.tokens.ResetClaims = claims

		f.dbMock.ExpectBegin()
		f.accounts.On("GetByEmail", mock.Anything, acc.Email).Return(acc, nil)
		f.accounts.On("Update", mock.Anything, mock.Anything).Return(nil)
		f.dbMock.ExpectCommit().WillReturnError(errors.New("commit lost"))

		err := f.svc.ResetPassword(context.Background(), "tok", "brand-new")
		require.Error(t, err)

		first, err := consumed.Consume(context.Background(), claims.ID, time.Minute)
		require.NoError(t, err)
		assert.True(t, first)
	})
}
