package types

import (
	"context"
	"errors"
)

// KVStore is the durable key-value service the cart persists to.
// Implementations must be safe for use by a single writer goroutine
// concurrently with readers.
type KVStore interface {
	// Get returns the value stored under key. found is false and err is nil
	// when the key has never been written.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set replaces the whole value stored under key.
	Set(ctx context.Context, key, value string) error

	// Close releases backend resources. Idempotent.
	Close() error
}

// Cart usage errors.
var (
	ErrNoProvider  = errors.New("cart must be used within a cart provider")
	ErrStoreClosed = errors.New("cart store is closed")
	ErrInvalidID   = errors.New("invalid item ID")
	ErrCorruptCart = errors.New("persisted cart is malformed")
)

// Backend errors.
var (
	ErrBackendClosed = errors.New("backend is closed")
	ErrInvalidKey    = errors.New("invalid key")
)
