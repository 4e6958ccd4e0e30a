package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/userhub/internal/domain"
)

// AccountStore defines the interface for account data persistence.
// Implementations hash the plaintext password carried on the account before
// writing it, so a plaintext credential never reaches the database.
type AccountStore interface {
	// Create saves a new account. The account's Password field is hashed and
	// cleared, and PasswordHash, CreatedAt and UpdatedAt are populated.
	// Returns ErrEmailExists if the email is already registered, or
	// ErrInvalidEntity if the account fails validation.
	Create(ctx context.Context, account *domain.Account) error

	// GetByID retrieves an account by its unique ID.
	// Returns ErrAccountNotFound if no account exists with the given ID.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)

	// GetByEmail retrieves an account by its exact email address.
	// Returns ErrAccountNotFound if no account exists with the given email.
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)

	// List returns every account, newest first.
	List(ctx context.Context) ([]*domain.Account, error)

	// Update persists name, email and credential changes of an existing account.
	// A non-empty Password is hashed and replaces the stored hash.
	// Returns ErrAccountNotFound if the account does not exist or
	// ErrEmailExists if the new email belongs to another account.
	Update(ctx context.Context, account *domain.Account) error

	// Delete removes an account by its ID.
	// Returns ErrAccountNotFound if the account does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new AccountStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) AccountStore
}
