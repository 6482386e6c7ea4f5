package analysis

import (
	"time"

	"finsight/internal/core"
)

// MonthReport bundles every derived view of one month. It is built from a
// single snapshot and is never persisted.
type MonthReport struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`

	Totals          MonthlyTotals `json:"totals"`
	PreviousTotals  MonthlyTotals `json:"previousTotals"`
	ExpenseDeltaPct float64       `json:"expenseDeltaPct"`

	IncomeByCategory  []CategoryTotal      `json:"incomeByCategory"`
	ExpenseByCategory []CategoryTotal      `json:"expenseByCategory"`
	Comparison        []CategoryComparison `json:"comparison"`
	Daily             []DailyPoint         `json:"daily"`

	DaysElapsed       int     `json:"daysElapsed"`
	DaysInMonth       int     `json:"daysInMonth"`
	WeeklyBurn        float64 `json:"weeklyBurn"`
	ProjectedMonthEnd float64 `json:"projectedMonthEnd"`

	Largest []core.Transaction `json:"largest"`
	Unusual []core.Transaction `json:"unusual"`
	Nudges  []string           `json:"nudges"`

	TransactionCount int `json:"transactionCount"`
}

// BuildMonthReport windows records to year/month and the month before it and
// derives the full report. now decides how much of the month has elapsed.
func BuildMonthReport(records []core.Transaction, year int, month time.Month, now time.Time) MonthReport {
	current := FilterByMonth(records, year, month)
	py, pm := PreviousMonth(year, month)
	previous := FilterByMonth(records, py, pm)

	totals := Totals(current)
	prevTotals := Totals(previous)
	days := DaysInMonth(year, month)
	elapsed := DaysElapsed(year, month, now)

	return MonthReport{
		Year:              year,
		Month:             month,
		Totals:            totals,
		PreviousTotals:    prevTotals,
		ExpenseDeltaPct:   DeltaPct(totals.Expense, prevTotals.Expense),
		IncomeByCategory:  CategoryTotals(current, core.Income),
		ExpenseByCategory: CategoryTotals(current, core.Expense),
		Comparison:        CompareCategories(current, previous),
		Daily:             DailySeries(current, year, month),
		DaysElapsed:       elapsed,
		DaysInMonth:       days,
		WeeklyBurn:        WeeklyBurn(totals.Expense, elapsed),
		ProjectedMonthEnd: ProjectedMonthEnd(totals.Expense, elapsed, days),
		Largest:           LargestTransactions(current, DefaultLargestLimit),
		Unusual:           UnusualTransactions(current),
		Nudges:            SmartNudges(current, previous),
		TransactionCount:  len(current),
	}
}

// Key identifies a month as "YYYY-MM".
func Key(year int, month time.Month) string {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}
