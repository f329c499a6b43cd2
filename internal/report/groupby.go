package report

import "salesstats/internal/core"

// Group is one bucket produced by GroupBy.
type Group[K comparable, A any] struct {
	Key   K
	Value A
}

// GroupBy folds items into one accumulator per key. Groups come back in the
// order their key was first seen, so the result is deterministic for a given input.
func GroupBy[T any, K comparable, A any](items []T, key func(T) K, reduce func(A, T) A) []Group[K, A] {
	index := make(map[K]int)
	var groups []Group[K, A]
	for _, it := range items {
		k := key(it)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			var zero A
			groups = append(groups, Group[K, A]{Key: k, Value: zero})
		}
		groups[i].Value = reduce(groups[i].Value, it)
	}
	return groups
}

// Filter returns the items keep accepts, preserving order.
func Filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// Tally counts ledger lines and sums their totals.
type Tally struct {
	Count int
	Total core.Money
}

func addToTally(t Tally, tx core.Transaction) Tally {
	t.Count++
	t.Total = t.Total.Add(tx.Total)
	return t
}

func byBranch(tx core.Transaction) string  { return tx.Branch }
func byProduct(tx core.Transaction) string { return tx.ProductLine }

type branchProduct struct {
	branch  string
	product string
}

func byBranchAndProduct(tx core.Transaction) branchProduct {
	return branchProduct{branch: tx.Branch, product: tx.ProductLine}
}

// grandTally folds the whole slice into a single Tally.
func grandTally(txs []core.Transaction) Tally {
	var t Tally
	for _, tx := range txs {
		t = addToTally(t, tx)
	}
	return t
}
