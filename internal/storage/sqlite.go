// Package storage persists processed statement documents in SQLite.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// ErrNotFound is returned by Get when no document is stored under the key.
var ErrNotFound = errors.New("document not found")

// Document is one stored body with its write time.
type Document struct {
	CompanyID string
	DocID     string
	Body      []byte
	UpdatedAt time.Time
}

// Store is a company-scoped key-value document store.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating when needed) the database at path and applies
// pending migrations. Use ":memory:" for a throwaway store.
func Open(ctx context.Context, path string) (*Store, error) {
	dsn := ":memory:"
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
		dsn = path + "?_journal_mode=WAL&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// One connection: writes are serialized and :memory: stays a single database.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores body under (company, doc), replacing any previous body.
func (s *Store) Put(ctx context.Context, company, doc string, body []byte) error {
	if company == "" || doc == "" {
		return errors.New("company and document id are required")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (company_id, doc_id, body, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (company_id, doc_id) DO UPDATE SET
			body = excluded.body,
			updated_at = excluded.updated_at`,
		company, doc, body, s.now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("storing %s/%s: %w", company, doc, err)
	}
	return nil
}

// Get returns the document stored under (company, doc).
func (s *Store) Get(ctx context.Context, company, doc string) (Document, error) {
	var (
		body    []byte
		updated string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT body, updated_at FROM documents WHERE company_id = ? AND doc_id = ?`,
		company, doc).Scan(&body, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, fmt.Errorf("%s/%s: %w", company, doc, ErrNotFound)
	}
	if err != nil {
		return Document{}, fmt.Errorf("loading %s/%s: %w", company, doc, err)
	}

	ts, err := time.Parse(time.RFC3339Nano, updated)
	if err != nil {
		return Document{}, fmt.Errorf("parsing updated_at of %s/%s: %w", company, doc, err)
	}
	return Document{CompanyID: company, DocID: doc, Body: body, UpdatedAt: ts}, nil
}

// List returns the document ids stored for a company in lexical order.
func (s *Store) List(ctx context.Context, company string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT doc_id FROM documents WHERE company_id = ? ORDER BY doc_id`, company)
	if err != nil {
		return nil, fmt.Errorf("listing documents of %s: %w", company, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning document id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing documents of %s: %w", company, err)
	}
	return ids, nil
}

// Companies returns every company id with at least one stored document.
func (s *Store) Companies(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT company_id FROM documents ORDER BY company_id`)
	if err != nil {
		return nil, fmt.Errorf("listing companies: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning company id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
