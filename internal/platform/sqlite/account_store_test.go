package sqlite_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/userhub/internal/domain"
	"github.com/phrazzld/userhub/internal/platform/sqlite"
	"github.com/phrazzld/userhub/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newStore(t *testing.T) (*sqlite.AccountStore, *sql.DB) {
	t.Helper()
	db := openTestDB(t)
	return sqlite.NewAccountStore(db, bcrypt.MinCost), db
}

func createAccount(t *testing.T, s store.AccountStore, name, email string) *domain.Account {
	t.Helper()
	account, err := domain.NewAccount(name, email, "secret1")
	require.NoError(t, err)
	require.NoError(t, s.Create(context.Background(), account))
	return account
}

func TestAccountStore_CreateAndGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _ := newStore(t)
	created := createAccount(t, s, "Ana", "ana@example.com")

	byID, err := s.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", byID.Name)
	assert.Equal(t, "ana@example.com", byID.Email)
	assert.NotEqual(t, "secret1", byID.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(byID.PasswordHash), []byte("secret1")))
	assert.WithinDuration(t, created.CreatedAt, byID.CreatedAt, time.Millisecond)

	byEmail, err := s.GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
}

func TestAccountStore_DuplicateEmail(t *testing.T) {
	t.Parallel()

	s, _ := newStore(t)
	createAccount(t, s, "Ana", "ana@example.com")

	dup, err := domain.NewAccount("Other", "ana@example.com", "secret2")
	require.NoError(t, err)

	err = s.Create(context.Background(), dup)
	assert.ErrorIs(t, err, store.ErrEmailExists)
}

func TestAccountStore_EmailMatchIsExact(t *testing.T) {
	t.Parallel()

	s, _ := newStore(t)
	createAccount(t, s, "Ana", "ana@example.com")

	_, err := s.GetByEmail(context.Background(), "ANA@example.com")
	assert.ErrorIs(t, err, store.ErrAccountNotFound)
}

func TestAccountStore_NotFound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _ := newStore(t)
	missing := uuid.New()

	_, err := s.GetByID(ctx, missing)
	assert.ErrorIs(t, err, store.ErrAccountNotFound)

	err = s.Update(ctx, &domain.Account{ID: missing, Name: "x", Email: "x@example.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, store.ErrAccountNotFound)

	assert.ErrorIs(t, s.Delete(ctx, missing), store.ErrAccountNotFound)
}

func TestAccountStore_ListNewestFirst(t *testing.T) {
	t.Parallel()

	s, _ := newStore(t)
	first := createAccount(t, s, "Ana", "ana@example.com")
	time.Sleep(5 * time.Millisecond)
	second := createAccount(t, s, "Bia", "bia@example.com")

	accounts, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, second.ID, accounts[0].ID)
	assert.Equal(t, first.ID, accounts[1].ID)
}

func TestAccountStore_UpdateAndDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _ := newStore(t)
	account := createAccount(t, s, "Ana", "ana@example.com")
	other := createAccount(t, s, "Bia", "bia@example.com")

	account.Name = "Ana Maria"
	account.Password = "changed1"
	require.NoError(t, s.Update(ctx, account))

	reloaded, err := s.GetByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", reloaded.Name)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(reloaded.PasswordHash), []byte("changed1")))
	assert.False(t, reloaded.UpdatedAt.Before(reloaded.CreatedAt))

	reloaded.Email = other.Email
	assert.ErrorIs(t, s.Update(ctx, reloaded), store.ErrEmailExists)

	require.NoError(t, s.Delete(ctx, account.ID))
	_, err = s.GetByID(ctx, account.ID)
	assert.ErrorIs(t, err, store.ErrAccountNotFound)
}

func TestAccountStore_TransactionRollback(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, db := newStore(t)
	account := createAccount(t, s, "Ana", "ana@example.com")
	abort := errors.New("abort")

	err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.WithTx(tx)
		loaded, err := txStore.GetByID(ctx, account.ID)
		if err != nil {
			return err
		}
		loaded.Name = "Changed"
		if err := txStore.Update(ctx, loaded); err != nil {
			return err
		}
		return abort
	})
	assert.ErrorIs(t, err, abort)

	reloaded, err := s.GetByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", reloaded.Name)
}
