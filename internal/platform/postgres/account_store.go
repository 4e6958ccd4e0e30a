package postgres

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

// PostgresAccountStore implements store.AccountStore on PostgreSQL.
type PostgresAccountStore struct {
	db         store.DBTX
	bcryptCost int
}

var _ store.AccountStore = (*PostgresAccountStore)(nil)

// NewPostgresAccountStore creates a store that hashes passwords at bcryptCost.
func NewPostgresAccountStore(db store.DBTX, bcryptCost int) *PostgresAccountStore {
	return &PostgresAccountStore{db: db, bcryptCost: bcryptCost}
}

// WithTx returns a store instance bound to tx.
func (s *PostgresAccountStore) WithTx(tx *sql.Tx) store.AccountStore {
	return &PostgresAccountStore{db: tx, bcryptCost: s.bcryptCost}
}

// Create implements store.AccountStore.
func (s *PostgresAccountStore) Create(ctx context.Context, account *domain.Account) error {
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
		`INSERT INTO accounts (`+accountColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		account.ID, account.Name, account.Email, hash, now, now,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("account email already registered", slog.String("account_id", account.ID.String()))
			return store.ErrEmailExists
		}
		log.Error("failed to insert account",
			slog.String("account_id", account.ID.String()),
			slog.String("error", redact.Error(err)))
		return store.NewStoreError("account", "create", "failed to insert account", MapError(err))
	}

	account.PasswordHash = hash
	account.Password = ""
	account.CreatedAt = now
	account.UpdatedAt = now

	log.Debug("account created", slog.String("account_id", account.ID.String()))
	return nil
}

// GetByID implements store.AccountStore.
func (s *PostgresAccountStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	return s.scanOne(ctx, row, "get_by_id")
}

// GetByEmail implements store.AccountStore.
func (s *PostgresAccountStore) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE email = $1`, email)
	return s.scanOne(ctx, row, "get_by_email")
}

// List implements store.AccountStore.
func (s *PostgresAccountStore) List(ctx context.Context) ([]*domain.Account, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY created_at DESC, id`)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list accounts", slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("account", "list", "failed to query accounts", MapError(err))
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
		return nil, store.NewStoreError("account", "list", "failed to iterate accounts", MapError(err))
	}

	return accounts, nil
}

// Update implements store.AccountStore.
func (s *PostgresAccountStore) Update(ctx context.Context, account *domain.Account) error {
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
		`UPDATE accounts SET name = $1, email = $2, password_hash = $3, updated_at = $4 WHERE id = $5`,
		account.Name, account.Email, hash, now, account.ID,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return store.ErrEmailExists
		}
		log.Error("failed to update account",
			slog.String("account_id", account.ID.String()),
			slog.String("error", redact.Error(err)))
		return store.NewStoreError("account", "update", "failed to update account", MapError(err))
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
func (s *PostgresAccountStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		logger.FromContext(ctx).Error("failed to delete account",
			slog.String("account_id", id.String()),
			slog.String("error", redact.Error(err)))
		return store.NewStoreError("account", "delete", "failed to delete account", MapError(err))
	}
	return checkRowsAffected(result, store.ErrAccountNotFound)
}

func (s *PostgresAccountStore) scanOne(ctx context.Context, row *sql.Row, op string) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrAccountNotFound
		}
		logger.FromContext(ctx).Error("failed to fetch account",
			slog.String("operation", op),
			slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("account", op, "failed to fetch account", MapError(err))
	}
	return &a, nil
}
