package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/userhub/internal/domain"
	"github.com/phrazzld/userhub/internal/platform/logger"
	"github.com/phrazzld/userhub/internal/redact"
	"github.com/phrazzld/userhub/internal/store"
)

const accountColumns = `id, name, email, password_hash, created_at, updated_at`

// AccountStore implements store.AccountStore on SQLite.
type AccountStore struct {
	db         store.DBTX
	bcryptCost int
}

var _ store.AccountStore = (*AccountStore)(nil)

// NewAccountStore creates a store that hashes passwords at bcryptCost.
func NewAccountStore(db store.DBTX, bcryptCost int) *AccountStore {
	return &AccountStore{db: db, bcryptCost: bcryptCost}
}

// WithTx returns a store instance bound to tx.
func (s *AccountStore) WithTx(tx *sql.Tx) store.AccountStore {
	return &AccountStore{db: tx, bcryptCost: s.bcryptCost}
}

// Create implements store.AccountStore.
func (s *AccountStore) Create(ctx context.Context, account *domain.Account) error {
	log := logger.FromContext(ctx)

	if err := account.Validate(); err != nil {
		return errors.Join(store.ErrInvalidEntity, err)
	}

	hash, err := store.HashPassword(account.Password, s.bcryptCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO accounts (`+accountColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		account.ID, account.Name, account.Email, hash, now, now,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			log.Debug("account email already registered", slog.String("account_id", account.ID.String()))
			return store.ErrEmailExists
		}
		log.Error("failed to insert account",
			slog.String("account_id", account.ID.String()),
			slog.String("error", redact.Error(err)))
		return store.NewStoreError("account", "create", "failed to insert account", mapError(err))
	}

	account.PasswordHash = hash
	account.Password = ""
	account.CreatedAt = now
	account.UpdatedAt = now

	log.Debug("account created", slog.String("account_id", account.ID.String()))
	return nil
}

// GetByID implements store.AccountStore.
func (s *AccountStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)
	return s.scanOne(ctx, row, "get_by_id")
}

// GetByEmail implements store.AccountStore.
func (s *AccountStore) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE email = ?`, email)
	return s.scanOne(ctx, row, "get_by_email")
}

// List implements store.AccountStore.
func (s *AccountStore) List(ctx context.Context) ([]*domain.Account, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY created_at DESC, id`)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list accounts", slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("account", "list", "failed to query accounts", mapError(err))
	}
	defer func() { _ = rows.Close() }()

	accounts := make([]*domain.Account, 0)
	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, store.NewStoreError("account", "list", "failed to scan account", err)
		}
		accounts = append(accounts, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("account", "list", "failed to iterate accounts", mapError(err))
	}

	return accounts, nil
}

// Update implements store.AccountStore.
func (s *AccountStore) Update(ctx context.Context, account *domain.Account) error {
	log := logger.FromContext(ctx)

	if err := account.Validate(); err != nil {
		return errors.Join(store.ErrInvalidEntity, err)
	}

	hash := account.PasswordHash
	if account.Password != "" {
		var err error
		if hash, err = store.HashPassword(account.Password, s.bcryptCost); err != nil {
			return err
		}
	}

	now := time.Now().UTC()
	result, err := s.db.ExecContext(ctx,
		`UPDATE accounts SET name = ?, email = ?, password_hash = ?, updated_at = ? WHERE id = ?`,
		account.Name, account.Email, hash, now, account.ID,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return store.ErrEmailExists
		}
		log.Error("failed to update account",
			slog.String("account_id", account.ID.String()),
			slog.String("error", redact.Error(err)))
		return store.NewStoreError("account", "update", "failed to update account", mapError(err))
	}
	if err := checkRowsAffected(result, store.ErrAccountNotFound); err != nil {
		return err
	}

	account.PasswordHash = hash
	account.Password = ""
	account.UpdatedAt = now

	log.Debug("account updated", slog.String("account_id", account.ID.String()))
	return nil
}

// Delete implements store.AccountStore.
func (s *AccountStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, id)
	if err != nil {
		logger.FromContext(ctx).Error("failed to delete account",
			slog.String("account_id", id.String()),
			slog.String("error", redact.Error(err)))
		return store.NewStoreError("account", "delete", "failed to delete account", mapError(err))
	}
	return checkRowsAffected(result, store.ErrAccountNotFound)
}

func (s *AccountStore) scanOne(ctx context.Context, row *sql.Row, op string) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrAccountNotFound
		}
		logger.FromContext(ctx).Error("failed to fetch account",
			slog.String("operation", op),
			slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("account", op, "failed to fetch account", mapError(err))
	}
	return &a, nil
}
