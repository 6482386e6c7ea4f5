package analysis

import (
	"fmt"

	"finsight/internal/core"
)

func tx(id string, tt core.TransactionType, cat core.Category, amount float64, date string) core.Transaction {
	return core.Transaction{ID: id, Type: tt, Category: cat, Amount: amount, Date: date}
}

func expense(amount float64, cat core.Category, date string) core.Transaction {
	return tx(fmt.Sprintf("e-%v-%s-%s", amount, cat, date), core.Expense, cat, amount, date)
}

func income(amount float64, cat core.Category, date string) core.Transaction {
	return tx(fmt.Sprintf("i-%v-%s-%s", amount, cat, date), core.Income, cat, amount, date)
}

func ids(records []core.Transaction) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}
