package analysis

import (
	"sort"

	"finsight/internal/core"
)

// DefaultLargestLimit is the number of transactions LargestTransactions
// callers usually ask for.
const DefaultLargestLimit = 5

// LargestTransactions returns up to limit records by amount, largest first.
// Equal amounts keep input order.
func LargestTransactions(records []core.Transaction, limit int) []core.Transaction {
	if limit <= 0 {
		return []core.Transaction{}
	}
	sorted := sortedByAmountDesc(records)
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// UnusualTransactions flags records at least twice the median amount.
//
// The median is the element at index n/2 of the ascending amounts. Even counts
// are not averaged: [10 10 10 50] has median 10, [10 20 30 40] has median 30.
// Fewer than three records, or a non-positive median, yield nothing.
func UnusualTransactions(records []core.Transaction) []core.Transaction {
	if len(records) < 3 {
		return []core.Transaction{}
	}
	amounts := make([]float64, len(records))
	for i, r := range records {
		amounts[i] = r.Amount
	}
	sort.Float64s(amounts)
	median := amounts[len(amounts)/2]
	if median <= 0 {
		return []core.Transaction{}
	}

	flagged := make([]core.Transaction, 0)
	for _, r := range records {
		if r.Amount >= 2*median {
			flagged = append(flagged, r)
		}
	}
	return sortedByAmountDesc(flagged)
}

func sortedByAmountDesc(records []core.Transaction) []core.Transaction {
	out := make([]core.Transaction, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount > out[j].Amount
	})
	return out
}
