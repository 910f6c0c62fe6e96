package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/basket/internal/memstore"
	"github.com/mesh-intelligence/basket/pkg/types"
)

func TestHelpersOutsideProvider(t *testing.T) {
	ctx := context.Background()

	_, err := FromContext(ctx)
	assert.ErrorIs(t, err, types.ErrNoProvider)
	assert.ErrorIs(t, AddToCart(ctx, apple), types.ErrNoProvider)
	assert.ErrorIs(t, Increment(ctx, "a"), types.ErrNoProvider)
	assert.ErrorIs(t, Decrement(ctx, "a"), types.ErrNoProvider)

	products, err := Products(ctx)
	assert.ErrorIs(t, err, types.ErrNoProvider)
	assert.Nil(t, products)
}

func TestHelpersNilStore(t *testing.T) {
	ctx := WithStore(context.Background(), nil)

	_, err := FromContext(ctx)
	assert.ErrorIs(t, err, types.ErrNoProvider)
}

func TestHelpersInsideProvider(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := WithStore(context.Background(), s)

	require.NoError(t, AddToCart(ctx, apple))
	require.NoError(t, AddToCart(ctx, banana))
	require.NoError(t, Increment(ctx, "b"))
	require.NoError(t, Decrement(ctx, "a"))

	products, err := Products(ctx)
	require.NoError(t, err)
	assert.Equal(t, []types.CartItem{
		{ID: "a", Title: "Apple", ImageURL: "img://a", Price: 1.5, Quantity: 1},
		{ID: "b", Title: "Banana", ImageURL: "img://b", Price: 0.25, Quantity: 2},
	}, products)

	got, err := FromContext(ctx)
	require.NoError(t, err)
	assert.Same(t, s, got)
}

func TestProvider_MountLoadsAndUnmountPersists(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	cfg := types.Config{Backend: types.BackendSQLite, DataDir: dir}

	p := &Provider{Config: cfg}
	cartCtx, err := p.Mount(ctx)
	require.NoError(t, err)
	require.NoError(t, AddToCart(cartCtx, apple))
	require.NoError(t, AddToCart(cartCtx, apple))
	require.NoError(t, p.Unmount(ctx))
	require.NoError(t, p.Unmount(ctx), "Unmount must be idempotent")

	p2 := &Provider{Config: cfg}
	cartCtx, err = p2.Mount(ctx)
	require.NoError(t, err)
	defer p2.Unmount(ctx)

	products, err := Products(cartCtx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 2, products[0].Quantity)
	assert.Same(t, p2.Store(), mustStore(t, cartCtx))
}

func TestProvider_MountWithCustomOpener(t *testing.T) {
	ctx := context.Background()
	kv := memstore.New()
	require.NoError(t, kv.Set(ctx, ProductsKey, `[{"id":"x","title":"T","image_url":"u","price":9.99,"quantity":3}]`))

	p := &Provider{
		Config: types.Config{Backend: types.BackendMemory},
		Open: func(context.Context, types.Config) (types.KVStore, error) {
			return kv, nil
		},
	}
	cartCtx, err := p.Mount(ctx)
	require.NoError(t, err)
	defer p.Unmount(ctx)

	products, err := Products(cartCtx)
	require.NoError(t, err)
	assert.Equal(t, []types.CartItem{{ID: "x", Title: "T", ImageURL: "u", Price: 9.99, Quantity: 3}}, products)
}

func TestProvider_MountCorruptCart(t *testing.T) {
	ctx := context.Background()
	kv := memstore.New()
	require.NoError(t, kv.Set(ctx, ProductsKey, "not json"))

	p := &Provider{
		Open: func(context.Context, types.Config) (types.KVStore, error) { return kv, nil },
	}
	_, err := p.Mount(ctx)
	assert.ErrorIs(t, err, types.ErrCorruptCart)
	assert.Nil(t, p.Store())

	_, _, err = kv.Get(ctx, ProductsKey)
	assert.ErrorIs(t, err, types.ErrBackendClosed, "backend closed after failed mount")
}

func TestProvider_MountOpenError(t *testing.T) {
	boom := errors.New("boom")
	p := &Provider{
		Open: func(context.Context, types.Config) (types.KVStore, error) { return nil, boom },
	}

	_, err := p.Mount(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestProvider_MountTwice(t *testing.T) {
	ctx := context.Background()
	p := &Provider{Config: types.Config{Backend: types.BackendMemory}}
	_, err := p.Mount(ctx)
	require.NoError(t, err)
	defer p.Unmount(ctx)

	_, err = p.Mount(ctx)
	assert.Error(t, err)
}

func mustStore(t *testing.T, ctx context.Context) *Store {
	t.Helper()
	s, err := FromContext(ctx)
	require.NoError(t, err)
	return s
}
