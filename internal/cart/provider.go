package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mesh-intelligence/basket/internal/backend"
	"github.com/mesh-intelligence/basket/pkg/types"
)

type storeKey struct{}

// WithStore returns a context carrying s.
func WithStore(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, storeKey{}, s)
}

// FromContext returns the Store installed in ctx, or types.ErrNoProvider.
func FromContext(ctx context.Context) (*Store, error) {
	s, ok := ctx.Value(storeKey{}).(*Store)
	if !ok || s == nil {
		return nil, types.ErrNoProvider
	}
	return s, nil
}

// AddToCart adds item to the cart in ctx.
func AddToCart(ctx context.Context, item types.NewItem) error {
	s, err := FromContext(ctx)
	if err != nil {
		return err
	}
	return s.AddToCart(item)
}

// Increment increments id in the cart in ctx.
func Increment(ctx context.Context, id string) error {
	s, err := FromContext(ctx)
	if err != nil {
		return err
	}
	return s.Increment(id)
}

// Decrement decrements id in the cart in ctx.
func Decrement(ctx context.Context, id string) error {
	s, err := FromContext(ctx)
	if err != nil {
		return err
	}
	return s.Decrement(id)
}

// Products returns the items of the cart in ctx.
func Products(ctx context.Context) ([]types.CartItem, error) {
	s, err := FromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.Products(), nil
}

// OpenFunc opens a key-value backend for a config.
type OpenFunc func(ctx context.Context, cfg types.Config) (types.KVStore, error)

// Provider wires a backend, a Store, and a context together for one session.
type Provider struct {
	Config types.Config
	Logger *slog.Logger
	// Open defaults to backend.Open.
	Open OpenFunc

	kv    types.KVStore
	store *Store
}

// Mount opens the backend, loads the persisted cart, and returns a context
// carrying the Store. The load finishes before Mount returns.
func (p *Provider) Mount(ctx context.Context) (context.Context, error) {
	if p.store != nil {
		return nil, errors.New("cart provider already mounted")
	}

	open := p.Open
	if open == nil {
		open = backend.Open
	}
	log := p.Logger
	if log == nil {
		log = slog.Default()
	}

	kv, err := open(ctx, p.Config)
	if err != nil {
		return nil, err
	}

	store := NewStore(kv, WithLogger(log), WithSync(p.Config.Sync))
	if err := store.Load(ctx); err != nil {
		store.Close(ctx)
		kv.Close()
		return nil, fmt.Errorf("mount cart: %w", err)
	}

	p.kv = kv
	p.store = store
	return WithStore(ctx, store), nil
}

// Store returns the mounted Store, or nil before Mount.
func (p *Provider) Store() *Store {
	return p.store
}

// Unmount flushes and closes the Store, then closes the backend. Idempotent.
func (p *Provider) Unmount(ctx context.Context) error {
	if p.store == nil {
		return nil
	}
	storeErr := p.store.Close(ctx)
	kvErr := p.kv.Close()
	p.store, p.kv = nil, nil
	return errors.Join(storeErr, kvErr)
}
