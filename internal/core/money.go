// Package core provides the ledger value types shared by every package.
//
// This file contains the money type. Amounts are exact decimals so sums over
// thousands of ledger lines do not drift the way float64 totals do.
package core

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is the prefix used when no currency is configured.
const DefaultCurrency = "Rs."

var (
	ErrInvalidAmount = errors.New("invalid amount")

	hundred = decimal.NewFromInt(100)
)

// Money is a currency-agnostic monetary amount.
type Money struct {
	Amount decimal.Decimal
}

// NewMoney builds a Money from a float. Meant for tests and literals.
func NewMoney(v float64) Money {
	return Money{Amount: decimal.NewFromFloat(v)}
}

// ParseMoney converts a decimal string to Money.
//
// It accepts a dot decimal separator (12.34), keeps every fractional digit and
// rejects negative values. A comma is read as the decimal separator only when it
// is the sole separator followed by one or two digits (12,5). Any other comma,
// such as thousands grouping, is rejected rather than guessed at.
//
// Examples:
//
//	ParseMoney("548.9715") -> 548.9715
//	ParseMoney("12,5")     -> 12.5
//	ParseMoney("1,234")    -> ErrInvalidAmount
//	ParseMoney("-1")       -> ErrInvalidAmount
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	if strings.Contains(s, ",") {
		if !isDecimalComma(s) {
			return Money{}, ErrInvalidAmount
		}
		s = strings.Replace(s, ",", ".", 1)
	}
	if strings.HasPrefix(s, "-") {
		return Money{}, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	return Money{Amount: d}, nil
}

// isDecimalComma reports whether s has exactly one comma, no dot, and one or two digits after the comma.
func isDecimalComma(s string) bool {
	if strings.Count(s, ",") != 1 || strings.Contains(s, ".") {
		return false
	}
	frac := s[strings.Index(s, ",")+1:]
	if len(frac) < 1 || len(frac) > 2 {
		return false
	}
	for _, r := range frac {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Add returns m + o.
func (m Money) Add(o Money) Money {
	return Money{Amount: m.Amount.Add(o.Amount)}
}

// Average divides m by n. A non-positive n yields zero.
func (m Money) Average(n int) Money {
	if n <= 0 {
		return Money{}
	}
	return Money{Amount: m.Amount.Div(decimal.NewFromInt(int64(n)))}
}

// PercentOf returns m as a percentage of total, or zero when total is zero.
func (m Money) PercentOf(total Money) decimal.Decimal {
	if total.Amount.IsZero() {
		return decimal.Zero
	}
	return m.Amount.Div(total.Amount).Mul(hundred)
}

func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

func (m Money) IsNegative() bool {
	return m.Amount.IsNegative()
}

func (m Money) Equal(o Money) bool {
	return m.Amount.Equal(o.Amount)
}

// Format renders the amount with two decimals behind the currency prefix, e.g. "Rs.123.45".
func (m Money) Format(currency string) string {
	return currency + m.Amount.StringFixed(2)
}

// String uses DefaultCurrency.
func (m Money) String() string {
	return m.Format(DefaultCurrency)
}

// FormatPercent renders p with two decimals and a "%" suffix.
func FormatPercent(p decimal.Decimal) string {
	return p.StringFixed(2) + "%"
}
