package main

import (
	"log/slog"
	"os"
	"time"

	"finsight/internal/amqp"
	"finsight/internal/analysis"
	"finsight/internal/cache"
	"finsight/internal/cli"
	apphttp "finsight/internal/http"
	"finsight/internal/log"
	"finsight/internal/services"
)

const shutdownGrace = 30 * time.Second

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger(slog.LevelInfo, log.ComponentApp, os.Stdout)
	cfg := cli.LoadAndValidateConfig(logger)
	logger = cli.SetupLogger(cfg.SlogLevel(), log.ComponentApp, os.Stdout)

	ctx, stop := cli.SignalContext(logger)
	defer stop()

	store := cli.OpenBackend(ctx, logger, cfg)
	defer store.Close()

	reports := cache.NewLRUCache[analysis.MonthReport](cfg.ReportCacheSize, cfg.ReportCacheTTL)
	janitor := cache.NewJanitor(logger.WithComponent(log.ComponentInsights).Logger)
	janitor.Register(reports)
	janitor.Start(time.Minute)
	defer janitor.Stop()

	insights := services.NewInsightService(store, reports, time.Now)
	opts := []services.Option{services.WithInvalidator(insights)}
	httpOpts := apphttp.Options{
		Insights:           insights,
		Ready:              store,
		ReportCache:        reports,
		Currency:           cfg.Currency,
		Logger:             logger,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
	}

	// Events are best effort for the server: without a broker it still serves.
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("AMQP unavailable, transaction events disabled", log.FieldError, err)
		} else {
			defer client.Close()
			opts = append(opts, services.WithPublisher(client))
			httpOpts.Broker = client
			logger.Info("AMQP publisher connected", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}
	httpOpts.Transactions = services.NewTransactionService(store, opts...)

	srv, err := apphttp.NewServer(":"+cfg.Port, httpOpts)
	if err != nil {
		logger.Error("Failed to configure HTTP server", log.FieldError, err)
		os.Exit(1)
	}

	logger.Info("Starting finsight server",
		"port", cfg.Port,
		"backend", cfg.DataBackend,
		log.FieldOperation, log.OpStartup)
	if err := srv.Run(ctx, shutdownGrace); err != nil {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
