package ports

import (
	"context"
	"errors"

	"finsight/internal/core"
)

// ErrNotFound is returned by stores when a transaction id is unknown.
var ErrNotFound = errors.New("transaction not found")

// Ports for outbound adapters.
type (
	TransactionWriter interface {
		Insert(ctx context.Context, t core.Transaction) error
	}

	// TransactionLister returns a snapshot of every stored transaction.
	TransactionLister interface {
		List(ctx context.Context) ([]core.Transaction, error)
	}

	TransactionGetter interface {
		Get(ctx context.Context, id string) (core.Transaction, error)
	}

	TransactionDeleter interface {
		// Delete removes the transaction with the given id or returns ErrNotFound.
		Delete(ctx context.Context, id string) error
	}

	// Store is the keyed record table the application persists to.
	Store interface {
		TransactionWriter
		TransactionLister
		TransactionGetter
		TransactionDeleter
	}
)
