package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"finsight/internal/amqp"
	"finsight/internal/core"
	"finsight/internal/export"
	"finsight/internal/report"
	"finsight/internal/services"
)

func newAddCmd(a *app) *cobra.Command {
	var in services.NewTransaction
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
		Example: `  finsight-cli add --type expense --category Food --amount 12,50
  finsight-cli add --type income --category Salary --amount 2000 --date 2026-03-01`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.txs.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s %s on %s (%s)\n",
				t.Type, t.Category, core.FormatAmount(t.Amount, a.currency), t.Date, t.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Amount, "amount", "", "amount, dot or comma decimals")
	cmd.Flags().StringVar(&in.Type, "type", "expense", "income or expense")
	cmd.Flags().StringVar(&in.Category, "category", "", "category name")
	cmd.Flags().StringVar(&in.Date, "date", "", "date, YYYY-MM-DD or RFC 3339 (default now)")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	var (
		m   monthFlags
		all bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the transactions of a month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			year, month, err := m.window(a.now(), all)
			if err != nil {
				return err
			}
			txs, err := a.txs.List(cmd.Context(), year, month)
			if err != nil {
				return err
			}
			if len(txs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No transactions.")
				return nil
			}
			report.PrintTransactions(cmd.OutOrStdout(), txs, report.Options{Currency: a.currency})
			return nil
		},
	}
	m.bind(cmd)
	cmd.Flags().BoolVar(&all, "all", false, "list every transaction")
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.txs.Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("delete %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}

func newReportCmd(a *app) *cobra.Command {
	var (
		m     monthFlags
		daily bool
		color bool
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the month report with nudges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			year, month, err := m.resolve(a.now())
			if err != nil {
				return err
			}
			r, err := a.insights.Report(cmd.Context(), year, month)
			if err != nil {
				return err
			}
			report.PrintMonthReport(cmd.OutOrStdout(), r, report.Options{
				Currency: a.currency,
				Daily:    daily,
				Color:    color,
			})
			return nil
		},
	}
	m.bind(cmd)
	cmd.Flags().BoolVar(&daily, "daily", false, "include the per-day table")
	cmd.Flags().BoolVar(&color, "color", false, "colorize changes")
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var (
		m   monthFlags
		all bool
		out string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write transactions as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			year, month, err := m.window(a.now(), all)
			if err != nil {
				return err
			}
			txs, err := a.txs.List(cmd.Context(), year, month)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out != "" && out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("create %s: %w", out, err)
				}
				defer f.Close()
				w = f
			}
			if err := export.WriteCSV(w, txs, a.currency); err != nil {
				return err
			}
			a.logger.Debug("Exported transactions", "count", len(txs), "file", out)
			return nil
		},
	}
	m.bind(cmd)
	cmd.Flags().BoolVar(&all, "all", false, "export every transaction")
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")
	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Load a CSV export into the database, skipping ids already present",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			txs, err := export.ReadCSV(f)
			if err != nil {
				return err
			}
			existing, err := a.repo.List(cmd.Context())
			if err != nil {
				return err
			}
			seen := make(map[string]bool, len(existing))
			for _, t := range existing {
				seen[t.ID] = true
			}

			added := 0
			for _, t := range txs {
				if seen[t.ID] {
					continue
				}
				if err := a.repo.Insert(cmd.Context(), t); err != nil {
					return fmt.Errorf("import %s: %w", t.ID, err)
				}
				seen[t.ID] = true
				added++
				a.publish(cmd.Context(), amqp.EventCreated, t)
			}
			a.insights.InvalidateAll()
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d of %d transactions\n", added, len(txs))
			return nil
		},
	}
}
