package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finsight/internal/core"
)

func TestCategoryTotals(t *testing.T) {
	records := []core.Transaction{
		expense(10, core.Food, "2026-02-01"),
		income(900, core.Salary, "2026-02-01"),
		expense(40, core.Transport, "2026-02-02"),
		expense(15, core.Food, "2026-02-03"),
		expense(5, core.Health, "2026-02-04"),
	}

	got := CategoryTotals(records, core.Expense)
	assert.Equal(t, []CategoryTotal{
		{Category: core.Transport, Total: 40},
		{Category: core.Food, Total: 25},
		{Category: core.Health, Total: 5},
	}, got)

	incomeTotals := CategoryTotals(records, core.Income)
	assert.Equal(t, []CategoryTotal{{Category: core.Salary, Total: 900}}, incomeTotals)
}

func TestCategoryTotalsTiesKeepFirstSeenOrder(t *testing.T) {
	records := []core.Transaction{
		expense(20, core.Shopping, "2026-02-01"),
		expense(20, core.Food, "2026-02-02"),
		expense(30, core.Travel, "2026-02-03"),
		expense(20, core.Health, "2026-02-04"),
	}
	got := CategoryTotals(records, core.Expense)
	require.Len(t, got, 4)
	assert.Equal(t, core.Travel, got[0].Category)
	assert.Equal(t, []core.Category{core.Shopping, core.Food, core.Health},
		[]core.Category{got[1].Category, got[2].Category, got[3].Category})
}

func TestCategoryTotalsEmpty(t *testing.T) {
	got := CategoryTotals([]core.Transaction{income(1, core.Salary, "2026-02-01")}, core.Expense)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCategoryTotalsSortedAndSumToTypeTotal(t *testing.T) {
	records := []core.Transaction{
		expense(3.25, core.Food, "2026-02-01"),
		expense(19.99, core.Utilities, "2026-02-01"),
		expense(7, core.Food, "2026-02-02"),
		expense(0.5, core.Other, "2026-02-02"),
		income(12, core.Gift, "2026-02-03"),
		expense(100, core.Housing, "2026-02-04"),
	}
	for _, tt := range []core.TransactionType{core.Income, core.Expense} {
		got := CategoryTotals(records, tt)
		var sum float64
		for i, c := range got {
			sum += c.Total
			if i > 0 {
				assert.GreaterOrEqual(t, got[i-1].Total, c.Total)
			}
		}
		totals := Totals(records)
		want := totals.Expense
		if tt == core.Income {
			want = totals.Income
		}
		assert.InDelta(t, want, sum, 1e-9)
	}
}
