package cart

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/basket/pkg/types"
)

func decodeCart(t *testing.T, raw string) []types.CartItem {
	t.Helper()
	var items []types.CartItem
	require.NoError(t, json.Unmarshal([]byte(raw), &items))
	return items
}

func TestWriter_ImmediatePersistsEveryMutation(t *testing.T) {
	s, kv := newTestStore(t)

	require.NoError(t, s.AddToCart(apple))
	require.NoError(t, s.AddToCart(apple))
	require.NoError(t, s.AddToCart(banana))
	require.NoError(t, s.Flush(context.Background()))

	assert.Equal(t, s.Products(), decodeCart(t, persisted(t, kv)))
}

func TestWriter_ImmediateWritesWithoutFlush(t *testing.T) {
	s, kv := newTestStore(t)

	require.NoError(t, s.AddToCart(apple))

	assert.Eventually(t, func() bool { return kv.setCount() > 0 }, 2*time.Second, 5*time.Millisecond)
}

func TestWriter_PersistedRecordFormat(t *testing.T) {
	s, kv := newTestStore(t)

	require.NoError(t, s.AddToCart(types.NewItem{ID: "x", Title: "T", ImageURL: "u", Price: 9.99}))
	require.NoError(t, s.Flush(context.Background()))

	assert.JSONEq(t, `[{"id":"x","title":"T","image_url":"u","price":9.99,"quantity":1}]`, persisted(t, kv))
}

func TestWriter_MutationDoesNotWaitForWrite(t *testing.T) {
	kv := newRecordingKV()
	kv.gate = make(chan struct{})
	s := NewStore(kv)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 10; i++ {
			_ = s.AddToCart(apple)
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("mutations blocked on a stalled backend")
	}
	assert.Equal(t, 10, s.Products()[0].Quantity)

	close(kv.gate)
	require.NoError(t, s.Close(context.Background()))
	assert.Equal(t, 10, decodeCart(t, persisted(t, kv))[0].Quantity)
}

func TestWriter_SupersededSnapshotsAreSkipped(t *testing.T) {
	kv := newRecordingKV()
	kv.gate = make(chan struct{})
	s := NewStore(kv)

	for i := 0; i < 20; i++ {
		require.NoError(t, s.AddToCart(apple))
	}
	close(kv.gate)
	require.NoError(t, s.Close(context.Background()))

	assert.Less(t, kv.setCount(), 20)
	assert.Equal(t, 20, decodeCart(t, persisted(t, kv))[0].Quantity)
}

func TestWriter_WritesLandInOrder(t *testing.T) {
	s, kv := newTestStore(t)

	for i := 0; i < 50; i++ {
		require.NoError(t, s.AddToCart(apple))
	}
	require.NoError(t, s.Flush(context.Background()))

	kv.mu.Lock()
	sets := append([]string(nil), kv.sets...)
	kv.mu.Unlock()

	last := 0
	for _, raw := range sets {
		qty := decodeCart(t, raw)[0].Quantity
		assert.Greater(t, qty, last, "writes went backwards")
		last = qty
	}
	assert.Equal(t, 50, last)
}

func TestWriter_NoOpStillPersists(t *testing.T) {
	s, kv := newTestStore(t)
	require.NoError(t, s.AddToCart(apple))
	require.NoError(t, s.Flush(context.Background()))
	before := kv.setCount()

	require.NoError(t, s.Increment("missing"))
	require.NoError(t, s.Flush(context.Background()))

	assert.Equal(t, before+1, kv.setCount())
}

func TestWriter_OnCloseDefersWrites(t *testing.T) {
	ctx := context.Background()
	s, kv := newTestStore(t, WithSync(types.SyncConfig{Strategy: types.SyncOnClose}))

	require.NoError(t, s.AddToCart(apple))
	require.NoError(t, s.AddToCart(banana))

	assert.Never(t, func() bool { return kv.setCount() > 0 }, 50*time.Millisecond, 5*time.Millisecond)

	require.NoError(t, s.Close(ctx))
	assert.Equal(t, 1, kv.setCount())
	assert.Equal(t, []string{"a", "b"}, ids(decodeCart(t, persisted(t, kv))))
}

func TestWriter_BatchSizeTriggersWrite(t *testing.T) {
	s, kv := newTestStore(t, WithSync(types.SyncConfig{
		Strategy:      types.SyncBatch,
		BatchSize:     3,
		BatchInterval: 3600,
	}))

	require.NoError(t, s.AddToCart(apple))
	require.NoError(t, s.AddToCart(banana))
	assert.Never(t, func() bool { return kv.setCount() > 0 }, 50*time.Millisecond, 5*time.Millisecond)

	require.NoError(t, s.AddToCart(cherry))
	assert.Eventually(t, func() bool { return kv.setCount() == 1 }, 2*time.Second, 5*time.Millisecond)
	assert.Len(t, decodeCart(t, persisted(t, kv)), 3)
}

func TestWriter_BatchIntervalTriggersWrite(t *testing.T) {
	s, kv := newTestStore(t, WithSync(types.SyncConfig{
		Strategy:      types.SyncBatch,
		BatchSize:     1000,
		BatchInterval: 1,
	}))

	require.NoError(t, s.AddToCart(apple))

	assert.Eventually(t, func() bool { return kv.setCount() == 1 }, 3*time.Second, 20*time.Millisecond)
}

func TestWriter_FailedWriteIsLoggedAndReported(t *testing.T) {
	var logs bytes.Buffer
	s, kv := newTestStore(t, WithLogger(bufferLogger(&logs)))
	kv.setErr = errDiskFull

	require.NoError(t, s.AddToCart(apple), "write failures never fail the mutation")
	assert.Equal(t, 1, s.Products()[0].Quantity)

	err := s.Flush(context.Background())
	assert.ErrorIs(t, err, errDiskFull)
	assert.Contains(t, logs.String(), "persist cart")
	assert.Contains(t, logs.String(), "disk full")

	assert.NoError(t, s.Flush(context.Background()), "error is reported once")
}

func TestWriter_FailedWriteNotRetried(t *testing.T) {
	s, kv := newTestStore(t)
	kv.setErr = errDiskFull

	require.NoError(t, s.AddToCart(apple))
	_ = s.Flush(context.Background())
	_ = s.Flush(context.Background())

	assert.Equal(t, 1, kv.setCount())
}

func TestWriter_FlushHonoursContext(t *testing.T) {
	kv := newRecordingKV()
	kv.gate = make(chan struct{})
	s := NewStore(kv)
	defer func() {
		close(kv.gate)
		s.Close(context.Background())
	}()

	require.NoError(t, s.AddToCart(apple))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, s.Flush(ctx), context.DeadlineExceeded)
}
