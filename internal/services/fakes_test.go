package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"finsight/internal/amqp"
	"finsight/internal/core"
	"finsight/internal/storage/memory"
)

var fixedNow = time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

type recordingPublisher struct {
	mu     sync.Mutex
	events []*amqp.TransactionEvent
	err    error
}

func (p *recordingPublisher) PublishTransactionEvent(_ context.Context, ev *amqp.TransactionEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

type invalidation struct {
	year  int
	month time.Month
}

type recordingInvalidator struct {
	calls []invalidation
}

func (r *recordingInvalidator) Invalidate(year int, month time.Month) {
	r.calls = append(r.calls, invalidation{year, month})
}

// countingStore counts snapshot reads on top of the memory store.
type countingStore struct {
	*memory.Store
	lists   int
	listErr error
}

func (c *countingStore) List(ctx context.Context) ([]core.Transaction, error) {
	c.lists++
	if c.listErr != nil {
		return nil, c.listErr
	}
	return c.Store.List(ctx)
}

var errStoreDown = errors.New("store down")

// gatedStore takes its first List snapshot, then holds the call until
// release is closed.
type gatedStore struct {
	*memory.Store
	taken   chan struct{}
	release chan struct{}
	once    sync.Once
}

func newGatedStore(seed ...core.Transaction) *gatedStore {
	return &gatedStore{
		Store:   memory.New(seed...),
		taken:   make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (g *gatedStore) List(ctx context.Context) ([]core.Transaction, error) {
	records, err := g.Store.List(ctx)
	g.once.Do(func() {
		close(g.taken)
		<-g.release
	})
	return records, err
}
