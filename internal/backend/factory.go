package backend

import (
	"context"
	"fmt"
	"log/slog"

	"finsight/internal/storage"
	"finsight/internal/storage/memory"
)

type DefaultFactory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger}
}

// Open implements Factory. A seed file, when configured, is loaded into a
// fresh memory store, and into an empty SQLite database.
func (f *DefaultFactory) Open(ctx context.Context, config Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case SQLite:
		return f.openSQLite(ctx, config)
	case Memory:
		return f.openMemory(config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) openSQLite(ctx context.Context, config Config) (*Result, error) {
	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	if config.SeedFile != "" {
		if err := f.seedIfEmpty(ctx, repo, config.SeedFile); err != nil {
			repo.Close()
			return nil, err
		}
	}

	f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)
	return &Result{Backend: repo, Type: SQLite}, nil
}

func (f *DefaultFactory) seedIfEmpty(ctx context.Context, b Backend, path string) error {
	existing, err := b.List(ctx)
	if err != nil {
		return fmt.Errorf("check existing transactions: %w", err)
	}
	if len(existing) > 0 {
		f.logger.Info("Skipping seed, store is not empty", "count", len(existing))
		return nil
	}

	seed, err := memory.NewFromFile(path)
	if err != nil {
		return err
	}
	records, _ := seed.List(ctx)
	for _, t := range records {
		if err := b.Insert(ctx, t); err != nil {
			return fmt.Errorf("seed transaction %s: %w", t.ID, err)
		}
	}
	f.logger.Info("Seeded store", "file", path, "count", len(records))
	return nil
}

func (f *DefaultFactory) openMemory(config Config) (*Result, error) {
	store, err := memory.NewFromFile(config.SeedFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize memory backend: %w", err)
	}
	f.logger.Info("Initialized memory backend", "seed_file", config.SeedFile)
	return &Result{Backend: store, Type: Memory}, nil
}
