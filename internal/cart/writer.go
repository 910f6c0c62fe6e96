package cart

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mesh-intelligence/basket/pkg/types"
)

// writer persists cart snapshots from a single goroutine. Only the newest
// snapshot matters: each one is the whole list, so a snapshot superseded
// before the goroutine reaches it is never written.
type writer struct {
	kv        types.KVStore
	key       string
	log       *slog.Logger
	strategy  string
	batchSize int
	interval  time.Duration

	mu      sync.Mutex
	latest  []byte
	seq     uint64 // snapshots scheduled
	written uint64 // seq of the last snapshot handed to the backend
	pending int    // snapshots since the last write
	err     error  // first write error since the last flush

	kick     chan struct{}
	flushReq chan chan error
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func newWriter(kv types.KVStore, key string, cfg types.SyncConfig, log *slog.Logger) *writer {
	w := &writer{
		kv:        kv,
		key:       key,
		log:       log,
		strategy:  cfg.GetSyncStrategy(),
		batchSize: cfg.GetBatchSize(),
		interval:  time.Duration(cfg.GetBatchInterval()) * time.Second,
		kick:      make(chan struct{}, 1),
		flushReq:  make(chan chan error),
		done:      make(chan struct{}),
	}
	w.wg.Add(1)
	go w.run()
	return w
}

// schedule records data as the newest snapshot and wakes the goroutine when
// the strategy says a write is due. It never blocks on I/O.
func (w *writer) schedule(data []byte) {
	w.mu.Lock()
	w.latest = data
	w.seq++
	w.pending++
	due := w.strategy == types.SyncImmediate ||
		(w.strategy == types.SyncBatch && w.pending >= w.batchSize)
	w.mu.Unlock()

	if due {
		select {
		case w.kick <- struct{}{}:
		default: // a wake-up is already queued
		}
	}
}

func (w *writer) run() {
	defer w.wg.Done()

	var tick <-chan time.Time
	if w.strategy == types.SyncBatch {
		t := time.NewTicker(w.interval)
		defer t.Stop()
		tick = t.C
	}

	for {
		select {
		case <-w.kick:
			w.writeLatest()
		case <-tick:
			w.writeLatest()
		case reply := <-w.flushReq:
			w.writeLatest()
			reply <- w.takeErr()
		case <-w.done:
			w.writeLatest()
			return
		}
	}
}

// writeLatest writes the newest snapshot if it has not been written yet.
// Failed writes are logged and remembered, never retried.
func (w *writer) writeLatest() {
	w.mu.Lock()
	if w.seq == w.written {
		w.mu.Unlock()
		return
	}
	data, seq := w.latest, w.seq
	w.pending = 0
	w.mu.Unlock()

	err := w.kv.Set(context.Background(), w.key, string(data))

	w.mu.Lock()
	defer w.mu.Unlock()
	w.written = seq
	if err != nil {
		w.log.Error("persist cart", "key", w.key, "seq", seq, "err", err)
		if w.err == nil {
			w.err = err
		}
		return
	}
	w.log.Debug("cart persisted", "key", w.key, "seq", seq, "bytes", len(data))
}

func (w *writer) takeErr() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	err := w.err
	w.err = nil
	return err
}

// Flush asks the goroutine to write the newest snapshot and waits for it.
func (w *writer) Flush(ctx context.Context) error {
	reply := make(chan error, 1)
	select {
	case w.flushReq <- reply:
	case <-w.done:
		return types.ErrStoreClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// stop ends the goroutine after a last write and waits for it to exit.
func (w *writer) stop() {
	w.stopOnce.Do(func() { close(w.done) })
	w.wg.Wait()
}
