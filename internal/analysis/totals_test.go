package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"finsight/internal/core"
)

func TestTotals(t *testing.T) {
	records := []core.Transaction{
		income(500, core.Salary, "2026-02-01"),
		expense(120.5, core.Food, "2026-02-02"),
		expense(79.5, core.Transport, "2026-02-03"),
	}
	got := Totals(records)
	assert.Equal(t, MonthlyTotals{Income: 500, Expense: 200, Net: 300}, got)
}

func TestTotalsEmpty(t *testing.T) {
	assert.Equal(t, MonthlyTotals{}, Totals(nil))
}

func TestTotalsIgnoresUnknownType(t *testing.T) {
	records := []core.Transaction{tx("x", "transfer", core.Other, 50, "2026-02-01")}
	assert.Equal(t, MonthlyTotals{}, Totals(records))
}

func TestTotalsLinearity(t *testing.T) {
	a := []core.Transaction{
		income(100, core.Salary, "2026-02-01"),
		expense(30, core.Food, "2026-02-02"),
	}
	b := []core.Transaction{
		income(25, core.Gift, "2026-02-05"),
		expense(70, core.Housing, "2026-02-06"),
		expense(5, core.Food, "2026-02-07"),
	}
	union := append(append([]core.Transaction{}, a...), b...)

	ta, tb, tu := Totals(a), Totals(b), Totals(union)
	assert.InDelta(t, ta.Income+tb.Income, tu.Income, 1e-9)
	assert.InDelta(t, ta.Expense+tb.Expense, tu.Expense, 1e-9)
	assert.InDelta(t, ta.Net+tb.Net, tu.Net, 1e-9)
}
