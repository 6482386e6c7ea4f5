package analysis

import "finsight/internal/core"

// MonthlyTotals is the income/expense/net summary of a record set.
type MonthlyTotals struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Net     float64 `json:"net"`
}

// Totals sums income and expense amounts in one pass. Amounts are not rounded.
func Totals(records []core.Transaction) MonthlyTotals {
	var t MonthlyTotals
	for _, r := range records {
		switch r.Type {
		case core.Income:
			t.Income += r.Amount
		case core.Expense:
			t.Expense += r.Amount
		}
	}
	t.Net = t.Income - t.Expense
	return t
}
