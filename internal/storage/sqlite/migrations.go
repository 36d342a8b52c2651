package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/GustavoCaso/expenselog/internal/logger"
)

func createMigrationsTable(ctx context.Context, db *sql.DB) error {
	statement, err := db.PrepareContext(ctx, `
			CREATE TABLE IF NOT EXISTS schema_migrations (
					version INTEGER PRIMARY KEY,
					applied_at INTEGER NOT NULL
			)
	`)
	if err != nil {
		return err
	}
	defer statement.Close()
	_, err = statement.ExecContext(ctx)
	return err
}

type migration struct {
	name string
	up   func(context.Context, *sql.Tx) error
}

var migrations = []migration{
	{
		name: "Create expenses table",
		up: func(ctx context.Context, tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS expenses
				(
				id TEXT PRIMARY KEY,
				position INTEGER NOT NULL,
				date TEXT NOT NULL,
				amount TEXT NOT NULL,
				category TEXT NOT NULL,
				description TEXT NOT NULL,
				created_at TEXT NOT NULL,
				updated_at TEXT NOT NULL
				) STRICT;
			`)
			if err != nil {
				return fmt.Errorf("failed to create expenses table: %w", err)
			}
			return nil
		},
	},
	{
		name: "Index expenses by position and date",
		up: func(ctx context.Context, tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx,
				"CREATE INDEX IF NOT EXISTS idx_expenses_position ON expenses(position)"); err != nil {
				return fmt.Errorf("failed to create position index: %w", err)
			}
			if _, err := tx.ExecContext(ctx,
				"CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses(date)"); err != nil {
				return fmt.Errorf("failed to create date index: %w", err)
			}
			return nil
		},
	},
}

// SchemaVersion returns the version of the last applied migration.
func (s *Storage) SchemaVersion(ctx context.Context) (int, error) {
	currentVersion := 0
	row := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return 0, fmt.Errorf("failed to get current schema version: %w", err)
	}
	return currentVersion, nil
}

func (s *Storage) ApplyMigrations(ctx context.Context, logger *logger.Logger) error {
	// Create migrations table if it doesn't exist
	if err := createMigrationsTable(ctx, s.db); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	currentVersion, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	// Apply pending migrations
	for i, migration := range migrations {
		migrationVersion := i + 1
		if migrationVersion <= currentVersion {
			continue
		}

		logger.Debug("Applying migration",
			"version", migrationVersion,
			"name", migration.name)

		if err = s.applyMigration(ctx, migrationVersion, migration); err != nil {
			return err
		}

		logger.Debug("Migration applied successfully", "version", migrationVersion)
	}

	return nil
}

func (s *Storage) applyMigration(ctx context.Context, version int, m migration) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for migration %d: %w", version, err)
	}

	if err = m.up(ctx, tx); err != nil {
		rErr := tx.Rollback()
		if rErr != nil {
			return rErr
		}
		return fmt.Errorf("migration %d failed: %w", version, err)
	}

	// Record migration
	_, err = tx.ExecContext(ctx,
		"INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)",
		version, time.Now().Unix(),
	)
	if err != nil {
		rErr := tx.Rollback()
		if rErr != nil {
			return rErr
		}
		return fmt.Errorf("failed to record migration %d: %w", version, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %d: %w", version, err)
	}

	return nil
}
