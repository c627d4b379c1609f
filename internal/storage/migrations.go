package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			return execAll(tx,
				`CREATE TABLE IF NOT EXISTS contacts (
					id TEXT PRIMARY KEY,
					position INTEGER NOT NULL,
					name TEXT NOT NULL,
					phone TEXT NOT NULL,
					email TEXT NOT NULL,
					date_added TEXT NOT NULL DEFAULT '',
					category TEXT NOT NULL DEFAULT '',
					note TEXT NOT NULL DEFAULT ''
				)`,
				`CREATE INDEX idx_contacts_position ON contacts(position)`,

				`CREATE TABLE IF NOT EXISTS popularity (
					contact_id TEXT PRIMARY KEY,
					hits INTEGER NOT NULL CHECK (hits >= 0)
				)`,

				`CREATE TABLE IF NOT EXISTS recent (
					position INTEGER PRIMARY KEY,
					contact_id TEXT NOT NULL
				)`,
			)
		},
	},
	{
		Version:     2,
		Description: "Index contact lookup columns",
		Up: func(tx *sql.Tx) error {
			// Not unique: collisions are enforced at write time and existing
			// violations are never repaired.
			return execAll(tx,
				`CREATE INDEX IF NOT EXISTS idx_contacts_email ON contacts(email COLLATE NOCASE)`,
				`CREATE INDEX IF NOT EXISTS idx_contacts_phone ON contacts(phone)`,
				`CREATE INDEX IF NOT EXISTS idx_contacts_category ON contacts(category)`,
			)
		},
	},
}

func execAll(tx *sql.Tx, queries ...string) error {
	for _, query := range queries {
		if _, err := tx.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query '%s': %w", query, err)
		}
	}
	return nil
}

// Migrate applies all pending database migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	currentVersion, err := s.schemaVersion(ctx)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.Version <= currentVersion {
			continue
		}
		if err := s.applyMigration(ctx, m); err != nil {
			return err
		}
		slog.Debug("Applied migration", "version", m.Version, "description", m.Description)
	}

	finalVersion, err := s.schemaVersion(ctx)
	if err != nil {
		return err
	}
	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("schema is at version %d, want %d", finalVersion, ExpectedSchemaVersion)
	}

	return nil
}

// applyMigration runs m and records its version in one transaction.
func (s *SQLiteStorage) applyMigration(ctx context.Context, m Migration) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := m.Up(tx); err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Description, err)
		}
		// PRAGMA does not accept bound parameters.
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", m.Version)); err != nil {
			return fmt.Errorf("migration %d: set user_version: %w", m.Version, err)
		}
		return nil
	})
}

func (s *SQLiteStorage) schemaVersion(ctx context.Context) (int, error) {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}
