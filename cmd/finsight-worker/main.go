package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"finsight/internal/amqp"
	"finsight/internal/analysis"
	"finsight/internal/cache"
	"finsight/internal/cli"
	"finsight/internal/log"
	"finsight/internal/services"
	"finsight/internal/worker"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger(slog.LevelInfo, log.ComponentWorker, os.Stdout)
	cfg := cli.LoadAndValidateConfig(logger)
	logger = cli.SetupLogger(cfg.SlogLevel(), log.ComponentWorker, os.Stdout)

	if err := cfg.RequireAMQP(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	if cfg.DataBackend == "memory" {
		logger.Warn("Worker is using the memory backend; it will not see transactions written by the server")
	}

	ctx, stop := cli.SignalContext(logger)
	defer stop()

	store := cli.OpenBackend(ctx, logger, cfg)
	defer store.Close()

	reports := cache.NewLRUCache[analysis.MonthReport](cfg.ReportCacheSize, cfg.ReportCacheTTL)
	insights := services.NewInsightService(store, reports, time.Now)
	w := worker.NewInsightWorker(insights, insights, logger, time.Now)

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer client.Close()

	logger.Info("Starting finsight-worker",
		"queue", cfg.AMQPQueue,
		"digest_interval", cfg.DigestInterval,
		log.FieldOperation, log.OpStartup)

	if err := w.Digest(ctx); err != nil {
		logger.Error("Startup digest failed", log.FieldError, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return client.ConsumeTransactionEvents(gctx, w.HandleEvent)
	})
	g.Go(func() error {
		return w.RunDigest(gctx, cfg.DigestInterval)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully")
}
