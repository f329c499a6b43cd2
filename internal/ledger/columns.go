package ledger

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"salesstats/internal/core"
)

// Column names required in a ledger header. Matching ignores case and surrounding spaces.
const (
	ColumnDate        = "Date"
	ColumnBranch      = "Branch"
	ColumnProductLine = "Product line"
	ColumnQuantity    = "Quantity"
	ColumnTotal       = "Total"
)

var (
	ErrMissingColumn = errors.New("missing ledger column")
	ErrShortRow      = errors.New("row has fewer cells than the header")
)

// Columns maps the required fields to their position in a row.
type Columns struct {
	date, branch, product, quantity, total int
}

// ParseHeader locates the required columns. Extra columns are ignored.
func ParseHeader(header []string) (Columns, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}
	var missing []string
	lookup := func(name string) int {
		i, ok := index[strings.ToLower(name)]
		if !ok {
			missing = append(missing, name)
			return -1
		}
		return i
	}
	cols := Columns{
		date:     lookup(ColumnDate),
		branch:   lookup(ColumnBranch),
		product:  lookup(ColumnProductLine),
		quantity: lookup(ColumnQuantity),
		total:    lookup(ColumnTotal),
	}
	if len(missing) > 0 {
		return Columns{}, fmt.Errorf("%w: %s; got headers=%v", ErrMissingColumn, strings.Join(missing, ","), header)
	}
	return cols, nil
}

func (c Columns) width() int {
	return max(c.date, c.branch, c.product, c.quantity, c.total) + 1
}

// Transaction decodes and validates one row.
func (c Columns) Transaction(row []string) (core.Transaction, error) {
	if len(row) < c.width() {
		return core.Transaction{}, ErrShortRow
	}
	date, err := core.ParseDate(row[c.date])
	if err != nil {
		return core.Transaction{}, fmt.Errorf("date: %w", err)
	}
	qty, err := strconv.Atoi(strings.TrimSpace(row[c.quantity]))
	if err != nil {
		return core.Transaction{}, fmt.Errorf("quantity %q: %w", row[c.quantity], err)
	}
	total, err := core.ParseMoney(row[c.total])
	if err != nil {
		return core.Transaction{}, fmt.Errorf("total %q: %w", row[c.total], err)
	}
	tx := core.Transaction{
		Date:        date,
		Branch:      strings.TrimSpace(row[c.branch]),
		ProductLine: strings.TrimSpace(row[c.product]),
		Quantity:    qty,
		Total:       total,
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}
	return tx, nil
}
