package backend

import (
	"context"

	"salesstats/internal/ledger"
	"salesstats/internal/services"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// Result holds the ledger source, the optional report publisher and
// a cleanup func that releases both. Cleanup is never nil.
type Result struct {
	Reader    ledger.Reader
	Publisher services.Publisher
	Cleanup   CleanupFunc
}

// Factory creates ledger backends based on configuration
type Factory interface {
	Create(ctx context.Context, config Config) (*Result, error)
}

// Type names a ledger source.
type Type string

const (
	CSVBackend    Type = "csv"
	SQLiteBackend Type = "sqlite"
	SheetsBackend Type = "sheets"
	MemoryBackend Type = "memory"
)

// String implements fmt.Stringer
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid
func (t Type) IsValid() bool {
	switch t {
	case CSVBackend, SQLiteBackend, SheetsBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
