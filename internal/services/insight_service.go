package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"finsight/internal/analysis"
	"finsight/internal/cache"
	"finsight/internal/ports"
)

// InsightService builds month reports from store snapshots and memoizes them
// per month until a write touches that month.
type InsightService struct {
	store ports.TransactionLister
	cache cache.Cache[analysis.MonthReport]
	now   func() time.Time

	// gen counts invalidations. A report built from a snapshot read before
	// an invalidation is returned but not cached.
	mu  sync.Mutex
	gen uint64
}

var _ Invalidator = (*InsightService)(nil)

// NewInsightService wires the report cache. A nil cache disables memoization.
func NewInsightService(store ports.TransactionLister, c cache.Cache[analysis.MonthReport], now func() time.Time) *InsightService {
	if now == nil {
		now = time.Now
	}
	return &InsightService{store: store, cache: c, now: now}
}

// Report returns the analysis of year/month compared against the month before.
func (s *InsightService) Report(ctx context.Context, year int, month time.Month) (analysis.MonthReport, error) {
	if month < time.January || month > time.December {
		return analysis.MonthReport{}, fmt.Errorf("month %d: %w", month, ErrInvalidPeriod)
	}

	key := analysis.Key(year, month)
	if s.cache != nil {
		if r, ok := s.cache.Get(key); ok {
			slog.DebugContext(ctx, "Report cache hit", "month", key)
			return r, nil
		}
	}

	gen := s.generation()
	records, err := s.store.List(ctx)
	if err != nil {
		return analysis.MonthReport{}, fmt.Errorf("load snapshot: %w", err)
	}
	r := analysis.BuildMonthReport(records, year, month, s.now())

	if s.cache != nil && !s.cacheIfCurrent(key, r, gen) {
		slog.DebugContext(ctx, "Report superseded by a write, not cached", "month", key)
	}
	slog.DebugContext(ctx, "Report built",
		"month", key,
		"transactions", r.TransactionCount,
		"snapshot", len(records))
	return r, nil
}

// Nudges returns only the plain-language observations for year/month.
func (s *InsightService) Nudges(ctx context.Context, year int, month time.Month) ([]string, error) {
	r, err := s.Report(ctx, year, month)
	if err != nil {
		return nil, err
	}
	return r.Nudges, nil
}

// Invalidate drops the cached report for year/month and for the month after
// it, whose comparison reads this month as its baseline.
func (s *InsightService) Invalidate(year int, month time.Month) {
	if s.cache == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.cache.Delete(analysis.Key(year, month))
	next := time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC)
	s.cache.Delete(analysis.Key(next.Year(), next.Month()))
}

// InvalidateAll drops every cached report.
func (s *InsightService) InvalidateAll() {
	if s.cache == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.cache.Purge()
}

func (s *InsightService) generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// cacheIfCurrent caches r unless an invalidation ran since gen was read.
func (s *InsightService) cacheIfCurrent(key string, r analysis.MonthReport, gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return false
	}
	s.cache.Set(key, r)
	return true
}
