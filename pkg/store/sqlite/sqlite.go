// Package sqlite implements a settings backend on an SQLite database using
// the pure-Go modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/matzehuels/forgeboard/pkg/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS dashboard_settings (
	user_id    TEXT PRIMARY KEY,
	doc        BLOB NOT NULL,
	updated_at INTEGER NOT NULL
);`

// Memory is the path of a private in-memory database.
const Memory = ":memory:"

// Backend stores one row per user.
type Backend struct {
	db *sql.DB
}

// Open opens or creates the database at path and applies the schema.
func Open(ctx context.Context, path string) (*Backend, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite backend: empty path")
	}
	if path != Memory {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("sqlite backend: mkdir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite backend: open: %w", err)
	}
	if path == Memory {
		// Every connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}

	pragmas := []string{"PRAGMA busy_timeout = 5000"}
	if path != Memory {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL", "PRAGMA synchronous = NORMAL")
	}
	for _, p := range append(pragmas, schema) {
		if _, err := db.ExecContext(ctx, p); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite backend: %s: %w", strings.Fields(p)[0], err)
		}
	}
	return &Backend{db: db}, nil
}

// Load reads the user's document.
func (b *Backend) Load(ctx context.Context, user string) ([]byte, bool, error) {
	var doc []byte
	err := b.db.QueryRowContext(ctx,
		`SELECT doc FROM dashboard_settings WHERE user_id = ?`, user).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, classify(fmt.Errorf("select settings: %w", err))
	}
	return doc, true, nil
}

// Save upserts the user's document.
func (b *Backend) Save(ctx context.Context, user string, data []byte) error {
	_, err := b.db.ExecContext(ctx, `
		INSERT INTO dashboard_settings (user_id, doc, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at`,
		user, data, time.Now().Unix())
	if err != nil {
		return classify(fmt.Errorf("upsert settings: %w", err))
	}
	return nil
}

// Close closes the database.
func (b *Backend) Close() error {
	return b.db.Close()
}

// classify marks lock contention as retryable.
func classify(err error) error {
	msg := err.Error()
	if strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked") {
		return store.Retryable(err)
	}
	return err
}

var _ store.Backend = (*Backend)(nil)
