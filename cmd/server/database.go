package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/phrazzld/userhub/internal/config"
	"github.com/phrazzld/userhub/internal/platform/postgres"
	"github.com/phrazzld/userhub/internal/platform/sqlite"
	"github.com/phrazzld/userhub/internal/store"
	"github.com/pressly/goose/v3"
)

// openDatabase connects to the backend selected by cfg.Driver.
func openDatabase(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	var (
		db  *sql.DB
		err error
	)
	switch cfg.Driver {
	case "postgres":
		db, err = postgres.Open(ctx, cfg.URL)
	case "sqlite":
		db, err = sqlite.Open(ctx, cfg.URL)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", cfg.Driver, err)
	}
	return db, nil
}

// newAccountStore returns the account store implementation for driver.
func newAccountStore(driver string, db *sql.DB, bcryptCost int) (store.AccountStore, error) {
	switch driver {
	case "postgres":
		return postgres.NewPostgresAccountStore(db, bcryptCost), nil
	case "sqlite":
		return sqlite.NewAccountStore(db, bcryptCost), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// newMigrationProvider returns the goose provider for driver's embedded migrations.
func newMigrationProvider(driver string, db *sql.DB) (*goose.Provider, error) {
	switch driver {
	case "postgres":
		return postgres.NewMigrationProvider(db)
	case "sqlite":
		return sqlite.NewMigrationProvider(db)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}
