package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// SchemaVersion is the schema version Open migrates to.
const SchemaVersion = 2

type migration struct {
	up          func(*sql.Tx) error
	description string
	version     int
}

var migrations = []migration{
	{
		version:     1,
		description: "documents table",
		up: execAll(
			`CREATE TABLE IF NOT EXISTS documents (
				company_id TEXT NOT NULL,
				doc_id     TEXT NOT NULL,
				body       BLOB NOT NULL,
				updated_at TEXT NOT NULL,
				PRIMARY KEY (company_id, doc_id)
			)`,
		),
	},
	{
		version:     2,
		description: "index documents by write time",
		up: execAll(
			`CREATE INDEX IF NOT EXISTS idx_documents_updated_at ON documents(updated_at)`,
		),
	},
}

func execAll(stmts ...string) func(*sql.Tx) error {
	return func(tx *sql.Tx) error {
		for _, stmt := range stmts {
			if _, err := tx.Exec(stmt); err != nil {
				return err
			}
		}
		return nil
	}
}

// Version returns the schema version recorded in the database.
func (s *Store) Version(ctx context.Context) (int, error) {
	var v int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&v); err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	return v, nil
}

func (s *Store) migrate(ctx context.Context) error {
	current, err := s.Version(ctx)
	if err != nil {
		return err
	}
	if current > SchemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported %d", current, SchemaVersion)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("beginning migration %d: %w", m.version, err)
		}
		if err := m.up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", m.version, err)
		}
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", m.version)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("updating schema version: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %d: %w", m.version, err)
		}

		slog.Debug("Applied migration", "version", m.version, "description", m.description)
	}
	return nil
}
