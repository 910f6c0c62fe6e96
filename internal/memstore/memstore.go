// Package memstore implements an in-process key-value backend. Values live
// only as long as the Store; it backs tests and ephemeral CLI runs.
package memstore

import (
	"context"
	"sync"

	"github.com/mesh-intelligence/basket/pkg/types"
)

// Store is a mutex-guarded map implementing types.KVStore.
type Store struct {
	mu     sync.RWMutex
	data   map[string]string
	closed bool
}

// New returns an empty Store.
func New() *Store {
	return &Store{data: make(map[string]string)}
}

// Get returns the value stored under key.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return "", false, types.ErrBackendClosed
	}
	v, ok := s.data[key]
	return v, ok, nil
}

// Set stores value under key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return types.ErrBackendClosed
	}
	if key == "" {
		return types.ErrInvalidKey
	}
	s.data[key] = value
	return nil
}

// Close discards the data. Idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.data = nil
	return nil
}
