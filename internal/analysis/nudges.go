package analysis

import (
	"fmt"
	"math"

	"finsight/internal/core"
)

// MaxNudges caps how many observations SmartNudges returns.
const MaxNudges = 4

// nudgeDeltaThreshold is the month-over-month spending change, in percent,
// that is worth mentioning.
const nudgeDeltaThreshold = 10

// SmartNudges summarizes the current month against the previous one in a few
// short sentences, in a fixed order: spending trend, net position, top expense
// category.
func SmartNudges(current, previous []core.Transaction) []string {
	cur := Totals(current)
	prev := Totals(previous)

	nudges := make([]string, 0, MaxNudges)

	delta := DeltaPct(cur.Expense, prev.Expense)
	if delta > nudgeDeltaThreshold {
		nudges = append(nudges, fmt.Sprintf("Spending is up %.0f%% vs last month.", round(math.Abs(delta), 0)))
	} else if delta < -nudgeDeltaThreshold {
		nudges = append(nudges, fmt.Sprintf("Spending is down %.0f%% vs last month.", round(math.Abs(delta), 0)))
	}

	if cur.Net > 0 {
		nudges = append(nudges, fmt.Sprintf("You're net positive by %.2f this month.", round(cur.Net, 2)))
	} else if cur.Net < 0 {
		nudges = append(nudges, fmt.Sprintf("You're net negative by %.2f this month.", round(math.Abs(cur.Net), 2)))
	}

	if top := CategoryTotals(current, core.Expense); len(top) > 0 {
		nudges = append(nudges, fmt.Sprintf("Top expense category: %s (%.2f).", top[0].Category, round(top[0].Total, 2)))
	}

	if len(nudges) > MaxNudges {
		nudges = nudges[:MaxNudges]
	}
	return nudges
}

// round rounds x to the given decimal places with halves away from zero.
// fmt alone rounds ties to even, so 12.5% would print as 12%.
func round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}
