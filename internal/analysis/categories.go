package analysis

import (
	"sort"

	"finsight/internal/core"
)

// CategoryTotal is the summed amount of one category.
type CategoryTotal struct {
	Category core.Category `json:"category"`
	Total    float64       `json:"total"`
}

// CategoryTotals groups records of the given type by category and returns the
// sums largest first. Equal totals keep the order in which their category was
// first seen in records.
func CategoryTotals(records []core.Transaction, tt core.TransactionType) []CategoryTotal {
	out := make([]CategoryTotal, 0)
	index := make(map[core.Category]int)
	for _, r := range records {
		if r.Type != tt {
			continue
		}
		i, ok := index[r.Category]
		if !ok {
			i = len(out)
			index[r.Category] = i
			out = append(out, CategoryTotal{Category: r.Category})
		}
		out[i].Total += r.Amount
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total > out[j].Total
	})
	return out
}

// sumByCategory sums amounts per category regardless of type. order lists the
// categories in first-seen order.
func sumByCategory(records []core.Transaction) (sums map[core.Category]float64, order []core.Category) {
	sums = make(map[core.Category]float64)
	for _, r := range records {
		if _, ok := sums[r.Category]; !ok {
			order = append(order, r.Category)
		}
		sums[r.Category] += r.Amount
	}
	return sums, order
}
