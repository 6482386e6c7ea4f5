// Package export reads and writes transaction snapshots as CSV.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/gocarina/gocsv"

	"finsight/internal/core"
)

// Row is the on-disk shape of a transaction. Amount is rendered with two
// decimals; Currency is a display label only and is ignored on read.
type Row struct {
	ID        string `csv:"id"`
	Date      string `csv:"date"`
	Type      string `csv:"type"`
	Category  string `csv:"category"`
	Amount    string `csv:"amount"`
	Currency  string `csv:"currency,omitempty"`
	CreatedAt string `csv:"created_at"`
}

// WriteCSV writes a header row followed by one row per transaction in input
// order. An empty slice produces just the header.
func WriteCSV(w io.Writer, txs []core.Transaction, currency string) error {
	rows := make([]*Row, 0, len(txs))
	for _, t := range txs {
		rows = append(rows, toRow(t, currency))
	}

	cw := csv.NewWriter(w)
	if len(rows) == 0 {
		// gocsv skips the header for an empty slice
		if err := cw.Write(header()); err != nil {
			return fmt.Errorf("write csv header: %w", err)
		}
		cw.Flush()
		return cw.Error()
	}

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(cw)); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	slog.Debug("Transactions exported to CSV", "count", len(rows))
	return nil
}

// ReadCSV parses rows produced by WriteCSV. Amounts go through core.ParseAmount,
// so comma decimals are accepted. A row failing validation aborts the read with
// its line number.
func ReadCSV(r io.Reader) ([]core.Transaction, error) {
	var rows []*Row
	if err := gocsv.UnmarshalCSV(gocsv.DefaultCSVReader(r), &rows); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return []core.Transaction{}, nil
		}
		return nil, fmt.Errorf("read csv: %w", err)
	}

	out := make([]core.Transaction, 0, len(rows))
	for i, row := range rows {
		t, err := fromRow(row)
		if err != nil {
			// header is line 1
			return nil, fmt.Errorf("csv line %d: %w", i+2, err)
		}
		out = append(out, t)
	}
	return out, nil
}

func header() []string {
	return []string{"id", "date", "type", "category", "amount", "currency", "created_at"}
}

func toRow(t core.Transaction, currency string) *Row {
	row := &Row{
		ID:       t.ID,
		Date:     t.Date,
		Type:     t.Type.String(),
		Category: t.Category.String(),
		Amount:   strconv.FormatFloat(t.Amount, 'f', 2, 64),
		Currency: currency,
	}
	if !t.CreatedAt.IsZero() {
		row.CreatedAt = t.CreatedAt.UTC().Format(time.RFC3339)
	}
	return row
}

func fromRow(row *Row) (core.Transaction, error) {
	amount, err := core.ParseAmount(row.Amount)
	if err != nil {
		return core.Transaction{}, err
	}
	tt, err := core.ParseTransactionType(row.Type)
	if err != nil {
		return core.Transaction{}, err
	}
	cat, err := core.ParseCategory(row.Category)
	if err != nil {
		return core.Transaction{}, err
	}

	t := core.Transaction{
		ID:       row.ID,
		Amount:   amount,
		Type:     tt,
		Category: cat,
		Date:     row.Date,
	}
	if row.CreatedAt != "" {
		ts, err := time.Parse(time.RFC3339, row.CreatedAt)
		if err != nil {
			return core.Transaction{}, fmt.Errorf("created_at %q: %w", row.CreatedAt, core.ErrInvalidDate)
		}
		t.CreatedAt = ts.UTC()
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	return t, nil
}
