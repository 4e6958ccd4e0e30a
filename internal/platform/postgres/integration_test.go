//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/phrazzld/userhub/internal/domain"
	"github.com/phrazzld/userhub/internal/platform/postgres"
	"github.com/phrazzld/userhub/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// testDatabaseURLEnv names the database used by integration tests. Each run
// works inside a transaction that is rolled back, so the schema is reused.
const testDatabaseURLEnv = "USERHUB_TEST_DATABASE_URL"

func openIntegrationDB(t *testing.T) *sql.DB {
	t.Helper()

	url := os.Getenv(testDatabaseURLEnv)
	if url == "" {
		t.Skipf("%s not set, skipping PostgreSQL integration test", testDatabaseURLEnv)
	}

	ctx := context.Background()
	db, err := postgres.Open(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, postgres.Migrate(ctx, db))
	return db
}

func TestIntegration_AccountLifecycle(t *testing.T) {
	db := openIntegrationDB(t)
	ctx := context.Background()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = tx.Rollback() })

	accounts := postgres.NewPostgresAccountStore(db, bcrypt.MinCost).WithTx(tx)

	account, err := domain.NewAccount("Ana", "ana.integration@example.com", "secret1")
	require.NoError(t, err)
	require.NoError(t, accounts.Create(ctx, account))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("secret1")))

	dup, err := domain.NewAccount("Other", "ana.integration@example.com", "secret1")
	require.NoError(t, err)
	assert.ErrorIs(t, accounts.Create(ctx, dup), store.ErrEmailExists)

	got, err := accounts.GetByEmail(ctx, "ana.integration@example.com")
	require.NoError(t, err)
	assert.Equal(t, account.ID, got.ID)

	got.Password = "secret2"
	require.NoError(t, accounts.Update(ctx, got))
	reloaded, err := accounts.GetByID(ctx, account.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(reloaded.PasswordHash), []byte("secret2")))

	require.NoError(t, accounts.Delete(ctx, account.ID))
	assert.ErrorIs(t, accounts.Delete(ctx, account.ID), store.ErrAccountNotFound)
}
