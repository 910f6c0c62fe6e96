// Package backend opens the key-value backend named by a types.Config.
package backend

import (
	"context"
	"fmt"

	"github.com/mesh-intelligence/basket/internal/filestore"
	"github.com/mesh-intelligence/basket/internal/memstore"
	"github.com/mesh-intelligence/basket/internal/redisstore"
	"github.com/mesh-intelligence/basket/internal/sqlite"
	"github.com/mesh-intelligence/basket/pkg/types"
)

// Open validates cfg and opens the selected backend. The caller owns the
// returned store and must Close it.
func Open(ctx context.Context, cfg types.Config) (types.KVStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		kv  types.KVStore
		err error
	)
	switch cfg.Backend {
	case types.BackendSQLite:
		kv, err = openAs(sqlite.Open(cfg.DataDir))
	case types.BackendFile:
		kv, err = openAs(filestore.Open(cfg.DataDir))
	case types.BackendRedis:
		kv, err = openAs(redisstore.Open(ctx, cfg.RedisAddr, cfg.RedisPrefix))
	case types.BackendMemory:
		kv = memstore.New()
	default:
		err = fmt.Errorf("%w: %q", types.ErrBackendUnknown, cfg.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s backend: %w", cfg.Backend, err)
	}
	return kv, nil
}

// openAs converts a concrete constructor result to types.KVStore without
// leaking a typed nil on error.
func openAs[T types.KVStore](store T, err error) (types.KVStore, error) {
	if err != nil {
		return nil, err
	}
	return store, nil
}
