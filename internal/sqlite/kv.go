// Package sqlite implements the SQLite key-value backend for Basket.
// Every key is one row; Set replaces the whole value.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/basket/pkg/types"
)

// DBFileName is the database file created inside the data directory.
const DBFileName = "basket.db"

const (
	createKV = `CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	selectValue = `SELECT value FROM kv WHERE key = ?`

	upsertValue = `INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
)

// Backend implements types.KVStore on a single SQLite database file.
type Backend struct {
	mu     sync.RWMutex
	db     *sql.DB
	closed bool
}

// Open creates dataDir if needed, opens the database in it, and ensures the
// schema exists. An existing database file is reused.
func Open(dataDir string) (*Backend, error) {
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, DBFileName))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Single connection so our own goroutines never see SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(createKV); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Backend{db: db}, nil
}

// Get returns the value stored under key.
func (b *Backend) Get(ctx context.Context, key string) (string, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return "", false, types.ErrBackendClosed
	}

	var value string
	err := b.db.QueryRowContext(ctx, selectValue, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return value, true, nil
}

// Set upserts value under key.
func (b *Backend) Set(ctx context.Context, key, value string) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return types.ErrBackendClosed
	}
	if key == "" {
		return types.ErrInvalidKey
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := b.db.ExecContext(ctx, upsertValue, key, value, now); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

// Close closes the database. Idempotent.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	return b.db.Close()
}
