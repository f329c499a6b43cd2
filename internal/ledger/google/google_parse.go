package google

import (
	"fmt"
	"strings"

	"salesstats/internal/core"
	"salesstats/internal/ledger"
)

// parseLedger converts a values matrix (as returned by Sheets API) into transactions.
// The first row is the header. Rows with every cell empty are skipped.
func parseLedger(values [][]interface{}) ([]core.Transaction, error) {
	if len(values) == 0 {
		return nil, nil
	}
	cols, err := ledger.ParseHeader(toStrings(values[0]))
	if err != nil {
		return nil, err
	}
	var out []core.Transaction
	for i := 1; i < len(values); i++ {
		row := toStrings(values[i])
		if isEmpty(row) {
			continue
		}
		tx, err := cols.Transaction(row)
		if err != nil {
			return nil, fmt.Errorf("sheet row %d: %w", i+1, err)
		}
		out = append(out, tx)
	}
	return out, nil
}

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

func isEmpty(row []string) bool {
	for _, v := range row {
		if v != "" {
			return false
		}
	}
	return true
}
