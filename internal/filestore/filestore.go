// Package filestore implements a key-value backend that keeps one file per
// key in the data directory. Values are written atomically.
package filestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mesh-intelligence/basket/pkg/types"
)

// fileExt is appended to every key to form its file name.
const fileExt = ".json"

// Store implements types.KVStore on plain files.
type Store struct {
	mu     sync.RWMutex
	dir    string
	closed bool
}

// Open creates dir if needed and returns a Store rooted at it.
func Open(dir string) (*Store, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Path returns the file that holds key.
func (s *Store) Path(key string) string {
	return filepath.Join(s.dir, key+fileExt)
}

// Get reads the file for key. A missing file means the key is absent.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if err := validKey(key); err != nil {
		return "", false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return "", false, types.ErrBackendClosed
	}
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	data, err := os.ReadFile(s.Path(key))
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return string(data), true, nil
}

// Set replaces the file for key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := validKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return types.ErrBackendClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := writeFileAtomic(s.Path(key), []byte(value)); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

// Close marks the store closed. Idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}

// validKey rejects keys that would escape the data directory.
func validKey(key string) error {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return types.ErrInvalidKey
	}
	return nil
}
