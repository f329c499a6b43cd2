// Package ledger defines how transactions get into the report engine.
package ledger

import (
	"context"

	"salesstats/internal/core"
)

// Ports for ledger adapters.
type (
	// Reader loads a full transaction table.
	Reader interface {
		ReadTransactions(ctx context.Context) ([]core.Transaction, error)
	}

	// Writer stores one transaction and returns a source-specific row reference.
	Writer interface {
		Append(ctx context.Context, tx core.Transaction) (rowRef string, err error)
	}
)
