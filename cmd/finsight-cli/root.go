package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"finsight/internal/amqp"
	"finsight/internal/cli"
	"finsight/internal/config"
	"finsight/internal/core"
	"finsight/internal/log"
	"finsight/internal/services"
	"finsight/internal/storage"
)

// app carries what every subcommand needs once the root has opened the store.
type app struct {
	dbPath   string
	currency string
	verbose  bool
	now      func() time.Time
	cfg      config.Config

	// publisher announces writes so the worker drops stale reports. Left nil,
	// open connects one when AMQP_URL is set.
	publisher services.EventPublisher
	client    *amqp.Client

	logger   *log.Logger
	repo     *storage.SQLiteRepository
	txs      *services.TransactionService
	insights *services.InsightService
}

func newRootCmd(a *app) *cobra.Command {
	cfg := config.Load()
	a.cfg = *cfg

	root := &cobra.Command{
		Use:   "finsight-cli",
		Short: "Record transactions and read monthly insights from the terminal",
		Long: `finsight-cli works directly on the SQLite store used by the finsight server.
It records and removes transactions, lists a month, renders the month report
with its nudges, and imports or exports CSV snapshots.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	root.PersistentFlags().StringVar(&a.dbPath, "db", cfg.SQLiteDBPath, "SQLite database path")
	root.PersistentFlags().StringVar(&a.currency, "currency", cfg.Currency, "currency label for amounts")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(
		newAddCmd(a),
		newListCmd(a),
		newDeleteCmd(a),
		newReportCmd(a),
		newExportCmd(a),
		newImportCmd(a),
	)
	return root
}

func (a *app) open(cmd *cobra.Command) error {
	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = cli.SetupLogger(level, log.ComponentCLI, cmd.ErrOrStderr())

	if a.now == nil {
		a.now = time.Now
	}
	repo, err := storage.NewSQLiteRepository(a.dbPath)
	if err != nil {
		return fmt.Errorf("open database %s: %w", a.dbPath, err)
	}
	a.repo = repo
	a.insights = services.NewInsightService(repo, nil, a.now)
	opts := []services.Option{
		services.WithClock(a.now),
		services.WithInvalidator(a.insights),
	}
	a.connectBroker()
	if a.publisher != nil {
		opts = append(opts, services.WithPublisher(a.publisher))
	}
	a.txs = services.NewTransactionService(repo, opts...)
	a.logger.Debug("Database opened", "path", a.dbPath)
	return nil
}

// connectBroker is best effort: the CLI still writes when the broker is down.
func (a *app) connectBroker() {
	if a.publisher != nil || a.cfg.AMQPURL == "" {
		return
	}
	client, err := amqp.NewClient(a.cfg.AMQPURL, a.cfg.AMQPExchange, a.cfg.AMQPQueue)
	if err != nil {
		a.logger.Warn("AMQP unavailable, transaction events disabled", log.FieldError, err)
		return
	}
	a.client = client
	a.publisher = client
}

// publish announces a write made outside TransactionService.
func (a *app) publish(ctx context.Context, kind amqp.EventKind, t core.Transaction) {
	if a.publisher == nil {
		return
	}
	if err := a.publisher.PublishTransactionEvent(ctx, amqp.NewTransactionEvent(kind, t, a.now())); err != nil {
		a.logger.Warn("Failed to publish transaction event", "id", t.ID, log.FieldError, err)
	}
}

func (a *app) close() error {
	if a.client != nil {
		if err := a.client.Close(); err != nil {
			a.logger.Warn("Failed to close AMQP client", log.FieldError, err)
		}
		a.client = nil
		a.publisher = nil
	}
	if a.repo == nil {
		return nil
	}
	err := a.repo.Close()
	a.repo = nil
	return err
}

// monthFlags binds --year and --month, defaulting to the current month.
type monthFlags struct {
	year  int
	month int
}

func (m *monthFlags) bind(cmd *cobra.Command) {
	cmd.Flags().IntVar(&m.year, "year", 0, "year (default current)")
	cmd.Flags().IntVar(&m.month, "month", 0, "month 1-12 (default current)")
}

func (m *monthFlags) resolve(now time.Time) (int, time.Month, error) {
	now = now.UTC()
	year, month := now.Year(), now.Month()
	if m.year != 0 {
		year = m.year
	}
	if m.month != 0 {
		if m.month < 1 || m.month > 12 {
			return 0, 0, fmt.Errorf("month %d: %w", m.month, services.ErrInvalidPeriod)
		}
		month = time.Month(m.month)
	}
	return year, month, nil
}


// window is resolve, except that all selects every record (year zero).
func (m *monthFlags) window(now time.Time, all bool) (int, time.Month, error) {
	if all {
		return 0, 0, nil
	}
	return m.resolve(now)
}
