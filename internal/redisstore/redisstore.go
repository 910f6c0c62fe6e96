// Package redisstore implements a key-value backend on Redis. Each key is
// stored as a plain string under an optional prefix.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/mesh-intelligence/basket/pkg/types"
)

// pingTimeout bounds the readiness check done by Open.
const pingTimeout = 5 * time.Second

// Store implements types.KVStore on a Redis client.
type Store struct {
	client *redis.Client
	prefix string

	mu     sync.RWMutex
	closed bool
}

// Options builds client options from addr. addr is either a redis:// URL or
// a plain host:port.
func Options(addr string) *redis.Options {
	if opts, err := redis.ParseURL(addr); err == nil {
		return opts
	}
	return &redis.Options{
		Addr:         addr,
		MinIdleConns: 1,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     4,
		PoolTimeout:  4 * time.Second,
		IdleTimeout:  180 * time.Second,
	}
}

// Open connects to addr and checks the server answers a PING.
func Open(ctx context.Context, addr, prefix string) (*Store, error) {
	if addr == "" {
		return nil, types.ErrRedisAddrEmpty
	}
	s := New(redis.NewClient(Options(addr)), prefix)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := s.client.Ping(pingCtx).Err(); err != nil {
		s.client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	slog.Debug("redis backend ready", "addr", addr, "prefix", prefix)
	return s, nil
}

// New wraps an existing client.
func New(client *redis.Client, prefix string) *Store {
	return &Store{client: client, prefix: prefix}
}

// Key returns the Redis key used for key.
func (s *Store) Key(key string) string {
	return s.prefix + key
}

// Get returns the value stored under key.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return "", false, types.ErrBackendClosed
	}

	val, err := s.client.Get(ctx, s.Key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis GET %q: %w", key, err)
	}
	return val, true, nil
}

// Set stores value under key without expiry.
func (s *Store) Set(ctx context.Context, key, value string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return types.ErrBackendClosed
	}
	if key == "" {
		return types.ErrInvalidKey
	}

	if err := s.client.Set(ctx, s.Key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis SET %q: %w", key, err)
	}
	return nil
}

// Close closes the client. Idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.client.Close()
}
