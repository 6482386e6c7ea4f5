package analysis

import (
	"sort"
	"time"

	"finsight/internal/core"
)

// DailyPoint holds one calendar day's income and expense. Day is 1-based.
type DailyPoint struct {
	Day     int     `json:"day"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// CategoryComparison puts a category's current and previous period side by side.
type CategoryComparison struct {
	Category core.Category `json:"category"`
	Current  float64       `json:"current"`
	Previous float64       `json:"previous"`
	DeltaPct float64       `json:"deltaPct"`
}

// DeltaPct returns the percentage change from previous to current. Growth from
// a zero baseline counts as 100%; zero to zero is 0%.
func DeltaPct(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return (current - previous) / previous * 100
}

// WeeklyBurn extrapolates month-to-date spending to a seven day pace.
func WeeklyBurn(expenseTotal float64, daysElapsed int) float64 {
	if daysElapsed <= 0 {
		return 0
	}
	return expenseTotal / float64(daysElapsed) * 7
}

// ProjectedMonthEnd linearly extrapolates month-to-date spending to the whole
// month. With no elapsed days it returns the spending so far.
func ProjectedMonthEnd(expenseTotal float64, daysElapsed, daysInMonth int) float64 {
	if daysElapsed <= 0 {
		return expenseTotal
	}
	return expenseTotal / float64(daysElapsed) * float64(daysInMonth)
}

// DailySeries returns one point per day of the month, zero-filled, with each
// record of that month added to its UTC day.
func DailySeries(records []core.Transaction, year int, month time.Month) []DailyPoint {
	days := DaysInMonth(year, month)
	series := make([]DailyPoint, days)
	for i := range series {
		series[i].Day = i + 1
	}
	for _, r := range records {
		d, ok := r.When()
		if !ok || d.Year() != year || d.Month() != month {
			continue
		}
		idx := d.Day() - 1
		if idx < 0 || idx >= days {
			continue
		}
		switch r.Type {
		case core.Income:
			series[idx].Income += r.Amount
		case core.Expense:
			series[idx].Expense += r.Amount
		}
	}
	return series
}

// CompareCategories sums each category in both periods, income and expense
// together, and reports the change. Output is ordered by the current amount,
// largest first; ties keep current-period first-seen order followed by
// categories only seen in the previous period.
func CompareCategories(current, previous []core.Transaction) []CategoryComparison {
	cur, curOrder := sumByCategory(current)
	prev, prevOrder := sumByCategory(previous)

	order := curOrder
	for _, c := range prevOrder {
		if _, ok := cur[c]; !ok {
			order = append(order, c)
		}
	}

	out := make([]CategoryComparison, 0, len(order))
	for _, c := range order {
		out = append(out, CategoryComparison{
			Category: c,
			Current:  cur[c],
			Previous: prev[c],
			DeltaPct: DeltaPct(cur[c], prev[c]),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Current > out[j].Current
	})
	return out
}
