package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/mesh-intelligence/basket/pkg/types"
)

// ProductsKey is the key the cart is persisted under.
const ProductsKey = "products"

// Store owns the cart items. All methods are safe for concurrent use; calls
// are serialized on an internal mutex.
type Store struct {
	mu       sync.Mutex
	products []types.CartItem
	closed   bool

	kv  types.KVStore
	w   *writer
	log *slog.Logger
}

// Option configures a Store.
type Option func(*storeOptions)

type storeOptions struct {
	log  *slog.Logger
	sync types.SyncConfig
}

// WithLogger sets the logger used for load and persistence messages.
func WithLogger(l *slog.Logger) Option {
	return func(o *storeOptions) { o.log = l }
}

// WithSync selects the persistence strategy.
func WithSync(cfg types.SyncConfig) Option {
	return func(o *storeOptions) { o.sync = cfg }
}

// NewStore returns an empty Store persisting to kv and starts its background
// writer. Call Load to restore a persisted cart and Close to stop the writer.
func NewStore(kv types.KVStore, opts ...Option) *Store {
	o := storeOptions{log: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Store{
		products: []types.CartItem{},
		kv:       kv,
		w:        newWriter(kv, ProductsKey, o.sync, o.log),
		log:      o.log,
	}
}

// Load replaces the in-memory list with the persisted one. A missing key
// leaves the list untouched. A value that does not decode returns an error
// wrapping types.ErrCorruptCart.
func (s *Store) Load(ctx context.Context) error {
	raw, found, err := s.kv.Get(ctx, ProductsKey)
	if err != nil {
		return fmt.Errorf("load cart: %w", err)
	}
	if !found {
		s.log.Debug("no persisted cart", "key", ProductsKey)
		return nil
	}

	var items []types.CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return fmt.Errorf("%w: %w", types.ErrCorruptCart, err)
	}
	if items == nil {
		items = []types.CartItem{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return types.ErrStoreClosed
	}
	s.products = items
	s.log.Debug("cart loaded", "key", ProductsKey, "items", len(items))
	return nil
}

// AddToCart bumps the quantity of an item already in the cart, or appends
// item with quantity 1.
func (s *Store) AddToCart(item types.NewItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return types.ErrStoreClosed
	}

	next := s.copyProducts(1)
	if i := indexOf(next, item.ID); i >= 0 {
		next[i].Quantity++
	} else {
		next = append(next, item.Line())
	}
	return s.commit(next)
}

// Increment adds one to the quantity of id. Unknown ids are ignored.
func (s *Store) Increment(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return types.ErrStoreClosed
	}

	next := s.products
	if i := indexOf(s.products, id); i >= 0 {
		next = s.copyProducts(0)
		next[i].Quantity++
	}
	return s.commit(next)
}

// Decrement removes one from the quantity of id while it stays at or above
// types.MinQuantity. Unknown ids and items at the minimum are ignored.
func (s *Store) Decrement(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return types.ErrStoreClosed
	}

	next := s.products
	if i := indexOf(s.products, id); i >= 0 && s.products[i].Quantity > types.MinQuantity {
		next = s.copyProducts(0)
		next[i].Quantity--
	}
	return s.commit(next)
}

// Products returns a copy of the cart items in insertion order.
func (s *Store) Products() []types.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyProducts(0)
}

// Count returns the number of units in the cart.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, p := range s.products {
		n += p.Quantity
	}
	return n
}

// Total returns the sum of price times quantity, rounded to cents.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, p := range s.products {
		line := decimal.NewFromFloat(p.Price).Mul(decimal.NewFromInt(int64(p.Quantity)))
		total = total.Add(line)
	}
	return total.Round(2)
}

// Flush blocks until every mutation so far has been written and returns the
// first write error seen since the previous Flush.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return types.ErrStoreClosed
	}
	return s.w.Flush(ctx)
}

// Close flushes pending writes and stops the writer. Later mutations return
// types.ErrStoreClosed. Close does not close the KVStore. Idempotent.
func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	err := s.w.Flush(ctx)
	s.w.stop()
	return err
}

// commit installs next as the current list and hands a snapshot to the
// writer. The caller must hold s.mu.
func (s *Store) commit(next []types.CartItem) error {
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	s.products = next
	s.w.schedule(data)
	return nil
}

// copyProducts returns a fresh slice holding the current items with room for
// extra more. The caller must hold s.mu.
func (s *Store) copyProducts(extra int) []types.CartItem {
	out := make([]types.CartItem, len(s.products), len(s.products)+extra)
	copy(out, s.products)
	return out
}

func indexOf(items []types.CartItem, id string) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
