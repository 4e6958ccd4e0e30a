package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	for _, sub := range []struct {
		use   string
		short string
	}{
		{"up", "Apply all pending migrations"},
		{"down", "Roll back the most recent migration"},
		{"status", "Show the state of every migration"},
		{"version", "Print the current schema version"},
		{"reset", "Roll back every migration"},
	} {
		command := sub.use
		cmd.AddCommand(&cobra.Command{
			Use:   sub.use,
			Short: sub.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMigrateCommand(commandContext(cmd), command, cmd.OutOrStdout())
			},
		})
	}

	return cmd
}

func runMigrateCommand(ctx context.Context, command string, out io.Writer) error {
	cfg, log, err := loadConfigAndLogger()
	if err != nil {
		return err
	}

	db, err := openDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("failed to close database connection", "error", err)
		}
	}()

	log.Info("executing migrations", "command", command, "driver", cfg.Database.Driver)
	return executeMigration(ctx, cfg.Database.Driver, db, command, out)
}

// executeMigration runs one goose command against db, writing a line per
// migration result to out.
func executeMigration(ctx context.Context, driver string, db *sql.DB, command string, out io.Writer) error {
	if out == nil {
		out = os.Stdout
	}

	provider, err := newMigrationProvider(driver, db)
	if err != nil {
		return err
	}

	var results []*goose.MigrationResult
	switch command {
	case "up":
		results, err = provider.Up(ctx)
	case "down":
		var result *goose.MigrationResult
		result, err = provider.Down(ctx)
		if result != nil {
			results = append(results, result)
		}
	case "reset":
		results, err = provider.DownTo(ctx, 0)
	case "status":
		statuses, statusErr := provider.Status(ctx)
		if statusErr != nil {
			return fmt.Errorf("failed to read migration status: %w", statusErr)
		}
		for _, s := range statuses {
			_, _ = fmt.Fprintf(out, "%-8s %s\n", s.State, s.Source.Path)
		}
		return nil
	case "version":
		version, versionErr := provider.GetDBVersion(ctx)
		if versionErr != nil {
			return fmt.Errorf("failed to read schema version: %w", versionErr)
		}
		_, _ = fmt.Fprintf(out, "version %d\n", version)
		return nil
	default:
		return fmt.Errorf("unknown migration command %q", command)
	}

	for _, r := range results {
		_, _ = fmt.Fprintln(out, r.String())
	}
	if err != nil {
		return fmt.Errorf("migration %s failed: %w", command, err)
	}
	return nil
}
