// Package csvfile reads a sales ledger from a delimited file.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"salesstats/internal/core"
	"salesstats/internal/ledger"
)

// Reader loads transactions from a CSV file with a header row.
type Reader struct {
	path  string
	comma rune
}

var _ ledger.Reader = (*Reader)(nil)

// Option configures a Reader.
type Option func(*Reader)

// WithComma sets the field delimiter (default ',').
func WithComma(r rune) Option {
	return func(rd *Reader) { rd.comma = r }
}

func New(path string, opts ...Option) *Reader {
	r := &Reader{path: path, comma: ','}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ReadTransactions implements ledger.Reader
func (r *Reader) ReadTransactions(ctx context.Context) ([]core.Transaction, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open ledger %s: %w", r.path, err)
	}
	defer f.Close()

	txs, err := Decode(ctx, f, r.comma)
	if err != nil {
		return nil, fmt.Errorf("ledger %s: %w", r.path, err)
	}
	return txs, nil
}

// Decode parses a CSV stream. An empty stream is an empty ledger.
func Decode(ctx context.Context, in io.Reader, comma rune) ([]core.Transaction, error) {
	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1
	reader.Comma = comma

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols, err := ledger.ParseHeader(header)
	if err != nil {
		return nil, err
	}

	var txs []core.Transaction
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}
		if isBlank(record) {
			continue
		}
		tx, err := cols.Transaction(record)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		txs = append(txs, tx)

		if line%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
	}
	return txs, nil
}

func isBlank(record []string) bool {
	for _, v := range record {
		if v != "" {
			return false
		}
	}
	return true
}
