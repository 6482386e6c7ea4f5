package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"finsight/internal/core"
)

func TestFilterByMonth(t *testing.T) {
	records := []core.Transaction{
		tx("a", core.Expense, core.Food, 1, "2026-02-01"),
		tx("b", core.Expense, core.Food, 1, "2026-01-31T23:59:59Z"),
		tx("c", core.Income, core.Salary, 1, "2026-02-28T23:59:59Z"),
		tx("d", core.Expense, core.Food, 1, "garbage"),
		tx("e", core.Expense, core.Food, 1, "2025-02-10"),
		// local evening on Jan 31st, but Feb 1st in UTC
		tx("f", core.Expense, core.Food, 1, "2026-01-31T22:00:00-03:00"),
		tx("g", core.Expense, core.Food, 1, "2026-03-01T00:00:00Z"),
	}

	got := FilterByMonth(records, 2026, time.February)
	assert.Equal(t, []string{"a", "c", "f"}, ids(got))
}

func TestFilterByMonthEmpty(t *testing.T) {
	got := FilterByMonth(nil, 2026, time.February)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2026, time.February, 28},
		{2024, time.February, 29},
		{2026, time.January, 31},
		{2026, time.April, 30},
		{2026, time.December, 31},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DaysInMonth(tt.year, tt.month), "%d-%d", tt.year, tt.month)
	}
}

func TestPreviousMonth(t *testing.T) {
	y, m := PreviousMonth(2026, time.January)
	assert.Equal(t, 2025, y)
	assert.Equal(t, time.December, m)

	y, m = PreviousMonth(2026, time.March)
	assert.Equal(t, 2026, y)
	assert.Equal(t, time.February, m)
}

func TestDaysElapsed(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"before month", time.Date(2026, 1, 20, 12, 0, 0, 0, time.UTC), 0},
		{"first day", time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), 1},
		{"mid month", time.Date(2026, 2, 14, 9, 0, 0, 0, time.UTC), 14},
		{"after month", time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), 28},
		{"non-UTC clock is converted", time.Date(2026, 2, 14, 23, 0, 0, 0, time.FixedZone("x", -3*3600)), 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysElapsed(2026, time.February, tt.now))
		})
	}
}
