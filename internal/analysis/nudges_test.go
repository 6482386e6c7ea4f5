package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"finsight/internal/core"
)

func TestSmartNudges(t *testing.T) {
	current := []core.Transaction{
		income(500, core.Salary, "2026-02-01"),
		expense(150, core.Food, "2026-02-02"),
		expense(50, core.Transport, "2026-02-03"),
	}
	previous := []core.Transaction{
		expense(100, core.Food, "2026-01-05"),
	}

	got := SmartNudges(current, previous)
	assert.Equal(t, []string{
		"Spending is up 100% vs last month.",
		"You're net positive by 300.00 this month.",
		"Top expense category: Food (150.00).",
	}, got)
	assert.LessOrEqual(t, len(got), MaxNudges)
}

func TestSmartNudgesSpendingDown(t *testing.T) {
	current := []core.Transaction{expense(60, core.Housing, "2026-02-02")}
	previous := []core.Transaction{expense(100, core.Housing, "2026-01-02")}

	got := SmartNudges(current, previous)
	assert.Equal(t, []string{
		"Spending is down 40% vs last month.",
		"You're net negative by 60.00 this month.",
		"Top expense category: Housing (60.00).",
	}, got)
}

func TestSmartNudgesWithinThreshold(t *testing.T) {
	current := []core.Transaction{
		income(105, core.Salary, "2026-02-01"),
		expense(105, core.Food, "2026-02-02"),
	}
	previous := []core.Transaction{expense(100, core.Food, "2026-01-02")}

	got := SmartNudges(current, previous)
	// +5% is not worth a trend nudge and net is exactly zero
	assert.Equal(t, []string{"Top expense category: Food (105.00)."}, got)
}

func TestSmartNudgesEmpty(t *testing.T) {
	got := SmartNudges(nil, nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSmartNudgesIncomeOnly(t *testing.T) {
	got := SmartNudges([]core.Transaction{income(40, core.Gift, "2026-02-01")}, nil)
	assert.Equal(t, []string{"You're net positive by 40.00 this month."}, got)
}

func TestSmartNudgesTrendComesFirst(t *testing.T) {
	current := []core.Transaction{
		expense(500, core.Travel, "2026-02-01"),
		expense(1, core.Food, "2026-02-01"),
	}
	got := SmartNudges(current, []core.Transaction{expense(1, core.Food, "2026-01-01")})
	assert.Len(t, got, 3)
	assert.True(t, strings.HasPrefix(got[0], "Spending is up"))
	assert.Equal(t, "Top expense category: Travel (500.00).", got[2])
}

func TestSmartNudgesRoundHalfAwayFromZero(t *testing.T) {
	// 225 vs 200 is +12.5% and 225.125 - 225 nets exactly 0.125
	current := []core.Transaction{
		income(225.125, core.Salary, "2026-02-01"),
		expense(225, core.Food, "2026-02-02"),
	}
	previous := []core.Transaction{expense(200, core.Food, "2026-01-02")}

	assert.Equal(t, []string{
		"Spending is up 13% vs last month.",
		"You're net positive by 0.13 this month.",
		"Top expense category: Food (225.00).",
	}, SmartNudges(current, previous))

	// mirrored: -12.5% and a net of -0.125
	current = []core.Transaction{
		income(174.875, core.Salary, "2026-02-01"),
		expense(175, core.Food, "2026-02-02"),
	}
	assert.Equal(t, []string{
		"Spending is down 13% vs last month.",
		"You're net negative by 0.13 this month.",
		"Top expense category: Food (175.00).",
	}, SmartNudges(current, previous))
}
