package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"finsight/internal/amqp"
	"finsight/internal/analysis"
	"finsight/internal/core"
	"finsight/internal/ports"
)

// EventPublisher announces store changes to other processes.
type EventPublisher interface {
	PublishTransactionEvent(ctx context.Context, ev *amqp.TransactionEvent) error
}

// Invalidator is told which month a write touched.
type Invalidator interface {
	Invalidate(year int, month time.Month)
}

// NewTransaction is unvalidated user input. Amount is kept as typed so that
// comma decimals survive until core.ParseAmount sees them.
type NewTransaction struct {
	Amount   string `json:"amount"`
	Type     string `json:"type"`
	Category string `json:"category"`
	// Date is optional; empty means now.
	Date string `json:"date"`
}

// TransactionService orchestrates transaction writes across the store, the
// insight cache and AMQP.
type TransactionService struct {
	store       ports.Store
	publisher   EventPublisher
	invalidator Invalidator
	now         func() time.Time
	newID       func() string
}

type Option func(*TransactionService)

func WithPublisher(p EventPublisher) Option {
	return func(s *TransactionService) { s.publisher = p }
}

func WithInvalidator(i Invalidator) Option {
	return func(s *TransactionService) { s.invalidator = i }
}

func WithClock(now func() time.Time) Option {
	return func(s *TransactionService) { s.now = now }
}

func WithIDGenerator(f func() string) Option {
	return func(s *TransactionService) { s.newID = f }
}

func NewTransactionService(store ports.Store, opts ...Option) *TransactionService {
	s := &TransactionService{
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Normalize turns raw input into a validated transaction without an id.
func (s *TransactionService) Normalize(in NewTransaction) (core.Transaction, error) {
	amount, err := core.ParseAmount(in.Amount)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("amount %q: %w", in.Amount, err)
	}
	tt, err := core.ParseTransactionType(in.Type)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("type %q: %w", in.Type, err)
	}
	cat, err := core.ParseCategory(in.Category)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("category %q: %w", in.Category, err)
	}
	if !slices.Contains(core.CategoriesFor(tt), cat) {
		return core.Transaction{}, fmt.Errorf("category %s not allowed for %s: %w", cat, tt, core.ErrInvalidCategory)
	}

	when := s.now().UTC()
	if d := strings.TrimSpace(in.Date); d != "" {
		if when, err = core.ParseDate(d); err != nil {
			return core.Transaction{}, fmt.Errorf("date %q: %w", d, err)
		}
	}

	return core.Transaction{
		Amount:   amount,
		Type:     tt,
		Category: cat,
		Date:     core.FormatDate(when),
	}, nil
}

// Create validates, stores and announces a new transaction.
func (s *TransactionService) Create(ctx context.Context, in NewTransaction) (core.Transaction, error) {
	t, err := s.Normalize(in)
	if err != nil {
		return core.Transaction{}, err
	}
	t.ID = s.newID()
	t.CreatedAt = s.now().UTC()
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	if err := s.store.Insert(ctx, t); err != nil {
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}

	s.touched(t)
	s.publish(ctx, amqp.EventCreated, t)
	return t, nil
}

// Delete removes a transaction. Unknown ids yield ports.ErrNotFound.
func (s *TransactionService) Delete(ctx context.Context, id string) error {
	t, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return err
		}
		return fmt.Errorf("load transaction: %w", err)
	}
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete transaction: %w", err)
	}

	s.touched(t)
	s.publish(ctx, amqp.EventDeleted, t)
	return nil
}

// List returns the month window, or every record when year is zero.
func (s *TransactionService) List(ctx context.Context, year int, month time.Month) ([]core.Transaction, error) {
	all, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	if year == 0 {
		return all, nil
	}
	return analysis.FilterByMonth(all, year, month), nil
}

func (s *TransactionService) touched(t core.Transaction) {
	if s.invalidator == nil {
		return
	}
	if d, ok := t.When(); ok {
		s.invalidator.Invalidate(d.Year(), d.Month())
	}
}

// publish never fails the request: the write already succeeded locally.
func (s *TransactionService) publish(ctx context.Context, kind amqp.EventKind, t core.Transaction) {
	if s.publisher == nil {
		slog.DebugContext(ctx, "AMQP publisher not configured, skipping event", "kind", kind)
		return
	}
	ev := amqp.NewTransactionEvent(kind, t, s.now())
	if err := s.publisher.PublishTransactionEvent(ctx, ev); err != nil {
		slog.ErrorContext(ctx, "Failed to publish transaction event",
			"kind", kind,
			"id", t.ID,
			"error", err)
	}
}
