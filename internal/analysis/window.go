// Package analysis turns a snapshot of transactions into monthly summaries,
// category breakdowns, burn-rate projections, outlier flags and nudges.
//
// Every function here is a pure transformation: inputs are never mutated,
// results are freshly allocated, and the current time is always passed in.
// Degenerate input (empty slices, zero baselines, malformed dates) degrades to
// zero or empty results instead of an error.
package analysis

import (
	"time"

	"finsight/internal/core"
)

// FilterByMonth returns the records whose UTC event date falls in the given
// year and month, preserving input order. Records with malformed dates are
// dropped.
func FilterByMonth(records []core.Transaction, year int, month time.Month) []core.Transaction {
	out := make([]core.Transaction, 0, len(records))
	for _, r := range records {
		if inMonth(r, year, month) {
			out = append(out, r)
		}
	}
	return out
}

func inMonth(r core.Transaction, year int, month time.Month) bool {
	d, ok := r.When()
	if !ok {
		return false
	}
	return d.Year() == year && d.Month() == month
}

// DaysInMonth returns the number of calendar days in the month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// PreviousMonth returns the calendar month before year/month.
func PreviousMonth(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}

// DaysElapsed returns how many days of the month have been lived at now:
// 0 before the month starts, the UTC day of month inside it, and the full
// length once it is over.
func DaysElapsed(year int, month time.Month, now time.Time) int {
	now = now.UTC()
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	if now.Before(start) {
		return 0
	}
	if now.Year() == year && now.Month() == month {
		return now.Day()
	}
	return DaysInMonth(year, month)
}
