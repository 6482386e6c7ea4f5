// Package worker reacts to transaction events with fresh month insights.
package worker

import (
	"context"
	"fmt"
	"time"

	"finsight/internal/amqp"
	"finsight/internal/analysis"
	"finsight/internal/log"
)

// Reporter builds month reports.
type Reporter interface {
	Report(ctx context.Context, year int, month time.Month) (analysis.MonthReport, error)
}

// Invalidator drops cached reports touched by an event.
type Invalidator interface {
	Invalidate(year int, month time.Month)
}

type InsightWorker struct {
	reports     Reporter
	invalidator Invalidator
	logger      *log.Logger
	now         func() time.Time
}

func NewInsightWorker(reports Reporter, invalidator Invalidator, logger *log.Logger, now func() time.Time) *InsightWorker {
	if now == nil {
		now = time.Now
	}
	return &InsightWorker{
		reports:     reports,
		invalidator: invalidator,
		logger:      logger.WithComponent(log.ComponentWorker),
		now:         now,
	}
}

// HandleEvent recomputes the event's month and logs its nudges. A created
// transaction that lands among the month's unusual ones is logged as a warning.
// Events without a readable month are acknowledged and skipped.
func (w *InsightWorker) HandleEvent(ctx context.Context, ev *amqp.TransactionEvent) error {
	logger := w.logger.With(
		"kind", ev.Kind,
		log.FieldTxID, ev.ID)

	if ev.Year == 0 || ev.Month < time.January || ev.Month > time.December {
		logger.WarnContext(ctx, "Event has no reporting month, skipping")
		return nil
	}

	if w.invalidator != nil {
		w.invalidator.Invalidate(ev.Year, ev.Month)
	}

	r, err := w.reports.Report(ctx, ev.Year, ev.Month)
	if err != nil {
		return fmt.Errorf("report %s: %w", analysis.Key(ev.Year, ev.Month), err)
	}

	logger.InfoContext(ctx, "Month insights refreshed",
		log.NewFields().
			WithPeriod(ev.Year, ev.Month).
			With("income", r.Totals.Income).
			With("expense", r.Totals.Expense).
			With("net", r.Totals.Net).
			With("projected_expense", r.ProjectedMonthEnd)...)
	for _, n := range r.Nudges {
		logger.InfoContext(ctx, "Nudge", log.FieldNudge, n)
	}

	if ev.Kind == amqp.EventCreated {
		for _, u := range r.Unusual {
			if u.ID == ev.ID {
				logger.WarnContext(ctx, "Unusually large transaction",
					log.NewFields().WithTransaction(u.ID, u.Type.String(), u.Category.String(), u.Amount)...)
				break
			}
		}
	}
	return nil
}

// Digest logs the current month's nudges once.
func (w *InsightWorker) Digest(ctx context.Context) error {
	now := w.now().UTC()
	r, err := w.reports.Report(ctx, now.Year(), now.Month())
	if err != nil {
		return fmt.Errorf("digest: %w", err)
	}
	w.logger.InfoContext(ctx, "Monthly digest",
		log.NewFields().
			WithOperation(log.OpDigest).
			WithPeriod(r.Year, r.Month).
			With(log.FieldCount, r.TransactionCount).
			With("weekly_burn", r.WeeklyBurn).
			With("projected_expense", r.ProjectedMonthEnd)...)
	for _, n := range r.Nudges {
		w.logger.InfoContext(ctx, "Nudge", log.FieldNudge, n)
	}
	return nil
}

// RunDigest calls Digest every interval until ctx ends. Failures are logged
// and the loop keeps going.
func (w *InsightWorker) RunDigest(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.Digest(ctx); err != nil {
				w.logger.ErrorContext(ctx, "Digest failed", log.FieldError, err)
			}
		}
	}
}
