package memory

import (
	"context"
	"fmt"
	"sync"

	"salesstats/internal/core"
	"salesstats/internal/ledger"
)

// Store keeps a ledger in memory. It is the source used by tests and by
// callers that already hold typed transactions.
type Store struct {
	mu    sync.Mutex
	items []core.Transaction
}

var (
	_ ledger.Reader = (*Store)(nil)
	_ ledger.Writer = (*Store)(nil)
)

func New(txs ...core.Transaction) *Store {
	return &Store{items: append([]core.Transaction(nil), txs...)}
}

// Append validates and stores the transaction, returning a synthetic row reference.
func (s *Store) Append(_ context.Context, tx core.Transaction) (string, error) {
	if err := tx.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, tx)
	return fmt.Sprintf("mem:%d", len(s.items)), nil
}

// ReadTransactions returns a copy of the stored ledger.
func (s *Store) ReadTransactions(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.items...), nil
}
