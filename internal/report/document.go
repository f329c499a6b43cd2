package report

import (
	"fmt"
	"strconv"
	"strings"

	"salesstats/internal/core"
)

// Kind names one of the five reports.
type Kind string

const (
	KindMonthly      Kind = "monthly"
	KindPrice        Kind = "price"
	KindWeekly       Kind = "weekly"
	KindPreference   Kind = "preference"
	KindDistribution Kind = "distribution"
)

// AllKinds returns every report kind in presentation order.
func AllKinds() []Kind {
	return []Kind{KindMonthly, KindPrice, KindWeekly, KindPreference, KindDistribution}
}

func (k Kind) String() string {
	return string(k)
}

// IsValid returns true if the kind is known
func (k Kind) IsValid() bool {
	switch k {
	case KindMonthly, KindPrice, KindWeekly, KindPreference, KindDistribution:
		return true
	default:
		return false
	}
}

// ParseKinds parses a comma separated list such as "monthly,weekly".
// An empty list selects every kind. The result is in presentation order without duplicates.
func ParseKinds(s string) ([]Kind, error) {
	if strings.TrimSpace(s) == "" {
		return AllKinds(), nil
	}
	want := map[Kind]bool{}
	for _, part := range strings.Split(s, ",") {
		k := Kind(strings.ToLower(strings.TrimSpace(part)))
		if k == "" {
			continue
		}
		if !k.IsValid() {
			return nil, fmt.Errorf("%w: unknown report %q", core.ErrInvalidArgument, part)
		}
		want[k] = true
	}
	var kinds []Kind
	for _, k := range AllKinds() {
		if want[k] {
			kinds = append(kinds, k)
		}
	}
	if len(kinds) == 0 {
		return nil, fmt.Errorf("%w: no report selected in %q", core.ErrInvalidArgument, s)
	}
	return kinds, nil
}

// Section is one titled table: a header row plus display-ready cells.
type Section struct {
	Title   string     `json:"title,omitempty"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// Document is a rendered report ready for a table printer or a publisher.
type Document struct {
	Kind     Kind      `json:"kind"`
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
}

// Column headers per report.
var (
	MonthlyHeaders      = []string{"Product Name", "Total Income", "Number of sales"}
	PriceHeaders        = []string{"Product Name", "Selling Count", "Total Income", "Average Price(One Per Item)"}
	WeeklyHeaders       = []string{"Branch", "Selling Count", "Total Income"}
	PreferenceHeaders   = []string{"Product Name", "Selling Count", "Total Income", "Sales Percentage"}
	DistributionHeaders = []string{"Branch", "Sales Distribution", "Total Income"}
)

// Cells formats the row for display.
func (p ProductSales) Cells(currency string) []string {
	return []string{p.Product, p.Total.Format(currency), strconv.Itoa(p.Count)}
}

func (p ProductPrice) Cells(currency string) []string {
	return []string{p.Product, strconv.Itoa(p.Count), p.TotalIncome.Format(currency), p.AveragePrice.Format(currency)}
}

func (b BranchSales) Cells(currency string) []string {
	return []string{b.Branch, strconv.Itoa(b.Count), b.Total.Format(currency)}
}

func (p ProductShare) Cells(currency string) []string {
	return []string{p.Product, strconv.Itoa(p.Count), p.Sales.Format(currency), core.FormatPercent(p.Percentage)}
}

func (b BranchShare) Cells(currency string) []string {
	return []string{b.Branch, core.FormatPercent(b.Percentage), b.Total.Format(currency)}
}

// Document renders one section per branch, titled "Branch <name>".
func (r MonthlyReport) Document(currency string) Document {
	doc := Document{
		Kind:  KindMonthly,
		Title: fmt.Sprintf("Monthly Sales Analysis for %02d-%d", r.Month, r.Year),
	}
	for _, b := range r.Branches {
		sec := Section{Title: "Branch " + b.Branch, Headers: MonthlyHeaders, Rows: [][]string{}}
		for _, p := range b.Products {
			sec.Rows = append(sec.Rows, p.Cells(currency))
		}
		doc.Sections = append(doc.Sections, sec)
	}
	return doc
}

// PriceDocument renders the product price rows.
func PriceDocument(rows []ProductPrice, currency string) Document {
	sec := Section{Headers: PriceHeaders, Rows: [][]string{}}
	for _, r := range rows {
		sec.Rows = append(sec.Rows, r.Cells(currency))
	}
	return Document{Kind: KindPrice, Title: "Product Price Analysis", Sections: []Section{sec}}
}

func (r WeeklyReport) Document(currency string) Document {
	sec := Section{Headers: WeeklyHeaders, Rows: [][]string{}}
	for _, b := range r.Branches {
		sec.Rows = append(sec.Rows, b.Cells(currency))
	}
	return Document{
		Kind:     KindWeekly,
		Title:    "Weekly Sales Analysis for the week starting from " + r.Start.String(),
		Sections: []Section{sec},
	}
}

func (r PreferenceReport) Document(currency string) Document {
	sec := Section{Headers: PreferenceHeaders, Rows: [][]string{}}
	for _, p := range r.Products {
		sec.Rows = append(sec.Rows, p.Cells(currency))
	}
	return Document{Kind: KindPreference, Title: "Product Preference Analysis", Sections: []Section{sec}}
}

func (r DistributionReport) Document(currency string) Document {
	sec := Section{Headers: DistributionHeaders, Rows: [][]string{}}
	for _, b := range r.Branches {
		sec.Rows = append(sec.Rows, b.Cells(currency))
	}
	return Document{Kind: KindDistribution, Title: "Sales Distribution Analysis", Sections: []Section{sec}}
}

// Params carries the arguments every report kind may need.
type Params struct {
	Month     int
	Year      int
	WeekStart core.Date
	Currency  string
}

// Build runs the report named by kind and renders it.
func (e *Engine) Build(kind Kind, p Params) (Document, error) {
	switch kind {
	case KindMonthly:
		rep, err := e.MonthlySales(p.Month, p.Year)
		if err != nil {
			return Document{}, err
		}
		return rep.Document(p.Currency), nil
	case KindPrice:
		return PriceDocument(e.PriceOfProduct(), p.Currency), nil
	case KindWeekly:
		rep, err := e.WeeklySales(p.WeekStart)
		if err != nil {
			return Document{}, err
		}
		return rep.Document(p.Currency), nil
	case KindPreference:
		return e.ProductPreference().Document(p.Currency), nil
	case KindDistribution:
		return e.SalesDistribution().Document(p.Currency), nil
	default:
		return Document{}, fmt.Errorf("%w: unknown report %q", core.ErrInvalidArgument, kind)
	}
}
