package cart

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/basket/internal/memstore"
	"github.com/mesh-intelligence/basket/pkg/types"
)

// recordingKV wraps a memstore and records every Set. When gate is non-nil,
// Set blocks until the gate is closed.
type recordingKV struct {
	*memstore.Store

	mu     sync.Mutex
	sets   []string
	gate   chan struct{}
	setErr error
	getErr error
}

func newRecordingKV() *recordingKV {
	return &recordingKV{Store: memstore.New()}
}

func (r *recordingKV) Get(ctx context.Context, key string) (string, bool, error) {
	if r.getErr != nil {
		return "", false, r.getErr
	}
	return r.Store.Get(ctx, key)
}

func (r *recordingKV) Set(ctx context.Context, key, value string) error {
	if r.gate != nil {
		<-r.gate
	}
	r.mu.Lock()
	r.sets = append(r.sets, value)
	err := r.setErr
	r.mu.Unlock()
	if err != nil {
		return err
	}
	return r.Store.Set(ctx, key, value)
}

func (r *recordingKV) setCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sets)
}

var errDiskFull = errors.New("disk full")

// newTestStore returns a Store over a fresh recordingKV that is closed when
// the test ends.
func newTestStore(t *testing.T, opts ...Option) (*Store, *recordingKV) {
	t.Helper()
	kv := newRecordingKV()
	s := NewStore(kv, opts...)
	t.Cleanup(func() { s.Close(context.Background()) })
	return s, kv
}

// persisted returns the value currently stored under ProductsKey.
func persisted(t *testing.T, kv types.KVStore) string {
	t.Helper()
	value, found, err := kv.Get(context.Background(), ProductsKey)
	require.NoError(t, err)
	require.True(t, found, "cart not persisted")
	return value
}

func bufferLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

var (
	apple  = types.NewItem{ID: "a", Title: "Apple", ImageURL: "img://a", Price: 1.5}
	banana = types.NewItem{ID: "b", Title: "Banana", ImageURL: "img://b", Price: 0.25}
	cherry = types.NewItem{ID: "c", Title: "Cherry", ImageURL: "img://c", Price: 4}
)
