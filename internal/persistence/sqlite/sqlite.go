// Package sqlite provides a file-backed persistence gateway.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/daap14/tiermaker/internal/persistence"
)

const schema = `CREATE TABLE IF NOT EXISTS saved_lists (
	key  TEXT PRIMARY KEY,
	data TEXT NOT NULL
)`

// SQLite stores blobs in a single key/value table.
type SQLite struct {
	db *sqlx.DB
}

// Open opens (creating if needed) the database file at path.
func Open(path string) (*SQLite, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating saved_lists table: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Put upserts blob under key.
func (s *SQLite) Put(ctx context.Context, key string, blob []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO saved_lists (key, data)
		VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET data = excluded.data`,
		key, string(blob))
	if err != nil {
		return fmt.Errorf("upserting saved list: %w", err)
	}
	return nil
}

// Get returns the blob stored under key.
func (s *SQLite) Get(ctx context.Context, key string) ([]byte, error) {
	var data string
	err := s.db.GetContext(ctx, &data, `SELECT data FROM saved_lists WHERE key = ?`, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, persistence.ErrNotFound
		}
		return nil, fmt.Errorf("querying saved list: %w", err)
	}
	return []byte(data), nil
}

// Keys returns the sorted keys starting with prefix.
func (s *SQLite) Keys(ctx context.Context, prefix string) ([]string, error) {
	var all []string
	if err := s.db.SelectContext(ctx, &all, `SELECT key FROM saved_lists ORDER BY key`); err != nil {
		return nil, fmt.Errorf("listing saved lists: %w", err)
	}
	keys := []string{}
	for _, k := range all {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

// Delete removes key.
func (s *SQLite) Delete(ctx context.Context, key string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM saved_lists WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("deleting saved list: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting saved list: %w", err)
	}
	if n == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

// Close closes the database handle.
func (s *SQLite) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
