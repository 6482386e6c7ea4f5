// Package report renders month insights and transaction lists as terminal
// tables.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"finsight/internal/analysis"
	"finsight/internal/core"
)

// Options controls how a report is rendered.
type Options struct {
	Currency string
	// Daily adds the per-day income/expense table.
	Daily bool
	// Color enables ANSI colors for deltas and nets.
	Color bool
}

// PrintMonthReport writes the summary, category breakdown, comparison,
// notable transactions and nudges of r.
func PrintMonthReport(w io.Writer, r analysis.MonthReport, opts Options) {
	title := time.Date(r.Year, r.Month, 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
	fmt.Fprintf(w, "%s: %d transactions, day %d of %d\n\n", title, r.TransactionCount, r.DaysElapsed, r.DaysInMonth)

	printSummary(w, r, opts)

	if len(r.ExpenseByCategory) > 0 || len(r.IncomeByCategory) > 0 {
		fmt.Fprintln(w)
		printCategories(w, r, opts)
	}
	if len(r.Comparison) > 0 {
		fmt.Fprintln(w)
		printComparison(w, r.Comparison, opts)
	}
	if opts.Daily {
		fmt.Fprintln(w)
		printDaily(w, r.Daily, opts)
	}
	if len(r.Largest) > 0 {
		fmt.Fprintln(w, "\nLargest expenses")
		PrintTransactions(w, r.Largest, opts)
	}
	if len(r.Unusual) > 0 {
		fmt.Fprintln(w, "\nUnusual expenses")
		PrintTransactions(w, r.Unusual, opts)
	}
	if len(r.Nudges) > 0 {
		fmt.Fprintln(w)
		for _, n := range r.Nudges {
			fmt.Fprintf(w, "  * %s\n", n)
		}
	}
}

// PrintTransactions writes one row per transaction in the given order.
func PrintTransactions(w io.Writer, txs []core.Transaction, opts Options) {
	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "Date", "Type", "Category", "Amount"})
	var income, expense float64
	for _, tx := range txs {
		t.AppendRow(table.Row{tx.ID, shortDate(tx.Date), tx.Type, tx.Category, core.FormatAmount(tx.Amount, opts.Currency)})
		switch tx.Type {
		case core.Income:
			income += tx.Amount
		case core.Expense:
			expense += tx.Amount
		}
	}
	t.AppendFooter(table.Row{"", "", "", "Net", signed(income-expense, opts)})
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 5, Align: text.AlignRight, AlignFooter: text.AlignRight}})
	t.Render()
}

func printSummary(w io.Writer, r analysis.MonthReport, opts Options) {
	t := newTable(w)
	t.AppendHeader(table.Row{"", "This month", "Last month"})
	t.AppendRow(table.Row{"Income", money(r.Totals.Income, opts), money(r.PreviousTotals.Income, opts)})
	t.AppendRow(table.Row{"Expense", money(r.Totals.Expense, opts), money(r.PreviousTotals.Expense, opts)})
	t.AppendRow(table.Row{"Net", signed(r.Totals.Net, opts), signed(r.PreviousTotals.Net, opts)})
	t.AppendSeparator()
	t.AppendRow(table.Row{"Expense change", delta(r.ExpenseDeltaPct, opts), ""})
	t.AppendRow(table.Row{"Weekly burn", money(r.WeeklyBurn, opts), ""})
	t.AppendRow(table.Row{"Projected month end", money(r.ProjectedMonthEnd, opts), ""})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	t.Render()
}

func printCategories(w io.Writer, r analysis.MonthReport, opts Options) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Type", "Category", "Total", "Share"})
	appendShare := func(tt core.TransactionType, rows []analysis.CategoryTotal, total float64) {
		for _, c := range rows {
			share := 0.0
			if total > 0 {
				share = c.Total / total * 100
			}
			t.AppendRow(table.Row{tt, c.Category, money(c.Total, opts), fmt.Sprintf("%.1f%%", share)})
		}
	}
	appendShare(core.Expense, r.ExpenseByCategory, r.Totals.Expense)
	if len(r.ExpenseByCategory) > 0 && len(r.IncomeByCategory) > 0 {
		t.AppendSeparator()
	}
	appendShare(core.Income, r.IncomeByCategory, r.Totals.Income)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	t.Render()
}

func printComparison(w io.Writer, rows []analysis.CategoryComparison, opts Options) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Category", "This month", "Last month", "Change"})
	for _, c := range rows {
		t.AppendRow(table.Row{c.Category, money(c.Current, opts), money(c.Previous, opts), delta(c.DeltaPct, opts)})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	t.Render()
}

func printDaily(w io.Writer, days []analysis.DailyPoint, opts Options) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Day", "Income", "Expense"})
	for _, d := range days {
		if d.Income == 0 && d.Expense == 0 {
			continue
		}
		t.AppendRow(table.Row{d.Day, money(d.Income, opts), money(d.Expense, opts)})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	t.Render()
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault
	return t
}

func money(v float64, opts Options) string {
	return core.FormatAmount(v, opts.Currency)
}

func signed(v float64, opts Options) string {
	s := money(v, opts)
	if !opts.Color {
		return s
	}
	switch {
	case v > 0:
		return text.FgGreen.Sprint(s)
	case v < 0:
		return text.FgRed.Sprint(s)
	}
	return s
}

// delta formats a percentage change; for spending, up is bad.
func delta(pct float64, opts Options) string {
	s := fmt.Sprintf("%+.0f%%", pct)
	if !opts.Color {
		return s
	}
	switch {
	case pct > 0:
		return text.FgRed.Sprint(s)
	case pct < 0:
		return text.FgGreen.Sprint(s)
	}
	return s
}

func shortDate(date string) string {
	if d, err := core.ParseDate(date); err == nil {
		return d.UTC().Format("2006-01-02")
	}
	return strings.TrimSpace(date)
}
