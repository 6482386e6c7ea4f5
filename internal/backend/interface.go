// Package backend selects and opens the transaction store.
package backend

import (
	"context"

	"finsight/internal/ports"
)

// Backend is a transaction store that can report its health and be closed.
type Backend interface {
	ports.Store
	Ping(ctx context.Context) error
	Close() error
}

type Result struct {
	Backend Backend
	Type    Type
}

// Factory opens a backend from configuration.
type Factory interface {
	Open(ctx context.Context, config Config) (*Result, error)
}

type Config struct {
	Type Type

	// sqlite
	SQLiteDBPath string

	// memory; optional CSV seed
	SeedFile string
}

type Type string

const (
	SQLite Type = "sqlite"
	Memory Type = "memory"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	return t == SQLite || t == Memory
}
