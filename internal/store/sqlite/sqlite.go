package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sobachat/sobachat-server/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS uploads (
	id            TEXT PRIMARY KEY,
	original_name TEXT NOT NULL,
	stored_name   TEXT NOT NULL UNIQUE,
	content_type  TEXT NOT NULL,
	size          INTEGER NOT NULL,
	created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// SQLiteStore implements store.Store for SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLite store at dbPath, applying the schema on first use.
func New(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// SQLite works best with a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// RecordUpload appends one upload to the ledger.
func (s *SQLiteStore) RecordUpload(ctx context.Context, rec *store.UploadRecord) error {
	query := `
		INSERT INTO uploads (id, original_name, stored_name, content_type, size, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	if _, err := s.db.ExecContext(ctx, query,
		rec.ID, rec.OriginalName, rec.StoredName, rec.ContentType, rec.Size, rec.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert upload: %w", err)
	}
	return nil
}

// GetUpload fetches a ledger entry by its stored filename.
func (s *SQLiteStore) GetUpload(ctx context.Context, storedName string) (*store.UploadRecord, error) {
	query := `
		SELECT id, original_name, stored_name, content_type, size, created_at
		FROM uploads WHERE stored_name = ?
	`
	rec := &store.UploadRecord{}
	err := s.db.QueryRowContext(ctx, query, storedName).Scan(
		&rec.ID, &rec.OriginalName, &rec.StoredName, &rec.ContentType, &rec.Size, &rec.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select upload: %w", err)
	}
	return rec, nil
}

// ListUploads returns the ledger newest first.
func (s *SQLiteStore) ListUploads(ctx context.Context) ([]*store.UploadRecord, error) {
	query := `
		SELECT id, original_name, stored_name, content_type, size, created_at
		FROM uploads ORDER BY created_at DESC, id
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select uploads: %w", err)
	}
	defer rows.Close()

	var out []*store.UploadRecord
	for rows.Next() {
		rec := &store.UploadRecord{}
		if err := rows.Scan(
			&rec.ID, &rec.OriginalName, &rec.StoredName, &rec.ContentType, &rec.Size, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan upload: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate uploads: %w", err)
	}
	return out, nil
}
