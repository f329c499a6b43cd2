package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Layouts accepted by ParseDate, tried in order.
const (
	LedgerDateLayout = "1/2/2006"
	ISODateLayout    = "2006-01-02"
)

type (
	Date struct {
		time.Time
	}

	// Transaction is one line of the sales ledger.
	Transaction struct {
		Date        Date
		Branch      string
		ProductLine string
		Quantity    int
		Total       Money
	}
)

var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidDay       = errors.New("invalid day")
	ErrInvalidMonth     = errors.New("invalid month")
	ErrInvalidYear      = errors.New("invalid year")
	ErrNegativeTotal    = errors.New("negative total")
	ErrNegativeQuantity = errors.New("negative quantity")
	ErrEmptyBranch      = errors.New("empty branch")
	ErrEmptyProduct     = errors.New("empty product line")
)

func (d Date) Validate() error {
	if d.IsZero() {
		return errors.New("date cannot be zero")
	}
	_, month, day := d.Date()
	if day < 1 || day > 31 {
		return ErrInvalidDay
	}
	if month < 1 || month > 12 {
		return ErrInvalidMonth
	}
	return nil
}

// Day returns the day of the month
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year
func (d Date) Year() int {
	return d.Time.Year()
}

// AddDays returns the date shifted by n calendar days.
func (d Date) AddDays(n int) Date {
	return Date{Time: d.Time.AddDate(0, 0, n)}
}

// Within reports whether d falls in [from, to], both ends inclusive.
func (d Date) Within(from, to Date) bool {
	return !d.Before(from.Time) && !d.After(to.Time)
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format(ISODateLayout)
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts ledger dates (1/2/2006, zero padding optional) and ISO dates (2006-01-02).
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, fmt.Errorf("%w: %w: empty date", ErrInvalidArgument, ErrInvalidDate)
	}
	for _, layout := range []string{LedgerDateLayout, ISODateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return NewDate(t.Year(), int(t.Month()), t.Day()), nil
		}
	}
	return Date{}, fmt.Errorf("%w: %w: %q", ErrInvalidArgument, ErrInvalidDate, s)
}

// ValidateMonthYear checks a month in 1-12 and a four digit year.
func ValidateMonthYear(month, year int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: %w: %d", ErrInvalidArgument, ErrInvalidMonth, month)
	}
	if year < 1000 || year > 9999 {
		return fmt.Errorf("%w: %w: %d", ErrInvalidArgument, ErrInvalidYear, year)
	}
	return nil
}

// ParseMonthYear parses strings such as ("01", "2019").
func ParseMonthYear(month, year string) (int, int, error) {
	m, err := strconv.Atoi(strings.TrimSpace(month))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w: %q", ErrInvalidArgument, ErrInvalidMonth, month)
	}
	year = strings.TrimSpace(year)
	y, err := strconv.Atoi(year)
	if err != nil || len(year) != 4 {
		return 0, 0, fmt.Errorf("%w: %w: %q", ErrInvalidArgument, ErrInvalidYear, year)
	}
	if err := ValidateMonthYear(m, y); err != nil {
		return 0, 0, err
	}
	return m, y, nil
}

// Validate checks the invariants loaders guarantee before handing a ledger to the engine.
func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Branch) == "" {
		return ErrEmptyBranch
	}
	if strings.TrimSpace(t.ProductLine) == "" {
		return ErrEmptyProduct
	}
	if t.Quantity < 0 {
		return ErrNegativeQuantity
	}
	if t.Total.IsNegative() {
		return ErrNegativeTotal
	}
	return nil
}
