package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"finsight/internal/core"
)

func TestLargestTransactions(t *testing.T) {
	records := []core.Transaction{
		tx("a", core.Expense, core.Food, 10, "2026-02-01"),
		tx("b", core.Expense, core.Food, 90, "2026-02-01"),
		tx("c", core.Income, core.Salary, 50, "2026-02-01"),
		tx("d", core.Expense, core.Food, 50, "2026-02-01"),
		tx("e", core.Expense, core.Food, 5, "2026-02-01"),
		tx("f", core.Expense, core.Food, 70, "2026-02-01"),
		tx("g", core.Expense, core.Food, 1, "2026-02-01"),
	}

	assert.Equal(t, []string{"b", "f", "c", "d", "a"}, ids(LargestTransactions(records, DefaultLargestLimit)))
	assert.Equal(t, []string{"b", "f"}, ids(LargestTransactions(records, 2)))
	assert.Len(t, LargestTransactions(records, 100), len(records))
	assert.Empty(t, LargestTransactions(records, 0))
	assert.Empty(t, LargestTransactions(nil, 5))

	// input is left untouched
	assert.Equal(t, "a", records[0].ID)
}

func TestUnusualTransactions(t *testing.T) {
	tests := []struct {
		name    string
		amounts []float64
		want    []string
	}{
		{"fewer than three", []float64{1, 100}, []string{}},
		{"lower-middle median", []float64{10, 10, 10, 50}, []string{"t3"}},
		{"even count takes index n/2", []float64{10, 20, 30, 60}, []string{"t3"}},
		{"exactly twice median", []float64{5, 5, 10}, []string{"t2"}},
		{"nothing unusual", []float64{9, 10, 11}, []string{}},
		{"zero median", []float64{0, 0, 0, 10}, []string{}},
		{"sorted descending", []float64{100, 1, 1, 1, 300, 2}, []string{"t4", "t0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := make([]core.Transaction, len(tt.amounts))
			for i, a := range tt.amounts {
				records[i] = tx("t"+string(rune('0'+i)), core.Expense, core.Food, a, "2026-02-01")
			}
			got := UnusualTransactions(records)
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}
