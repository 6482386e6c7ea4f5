package memory

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"finsight/internal/core"
	"finsight/internal/export"
	"finsight/internal/ports"
)

type Store struct {
	mu    sync.Mutex
	items []core.Transaction
}

var _ ports.Store = (*Store)(nil)

func New(seed ...core.Transaction) *Store {
	return &Store{items: append([]core.Transaction(nil), seed...)}
}

// NewFromFile seeds the store from a CSV export. A missing file yields an
// empty store; a malformed one is an error.
func NewFromFile(path string) (*Store, error) {
	if path == "" {
		return New(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return New(), nil
		}
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	txs, err := export.ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("seed %s: %w", path, err)
	}
	return New(txs...), nil
}

// Insert stores the transaction. Duplicate ids are rejected.
func (s *Store) Insert(_ context.Context, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.ID == t.ID {
			return fmt.Errorf("insert transaction %s: duplicate id", t.ID)
		}
	}
	s.items = append(s.items, t)
	return nil
}

// List returns a copy of all records ordered by date then insertion time,
// matching the SQLite store.
func (s *Store) List(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	out := append(make([]core.Transaction, 0, len(s.items)), s.items...)
	s.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) Get(_ context.Context, id string) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.ID == id {
			return it, nil
		}
	}
	return core.Transaction{}, ports.ErrNotFound
}

func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, it := range s.items {
		if it.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return ports.ErrNotFound
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close() error { return nil }
