package ledger

import (
	"context"
	"fmt"
)

// Import copies every transaction from src into dst and returns how many were written.
func Import(ctx context.Context, src Reader, dst Writer) (int, error) {
	txs, err := src.ReadTransactions(ctx)
	if err != nil {
		return 0, fmt.Errorf("read source ledger: %w", err)
	}
	for i, tx := range txs {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if _, err := dst.Append(ctx, tx); err != nil {
			return i, fmt.Errorf("append transaction %d: %w", i+1, err)
		}
	}
	return len(txs), nil
}
