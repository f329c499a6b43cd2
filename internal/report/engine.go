// Package report computes sales statistics over an in-memory ledger.
//
// Every report is filter, group, aggregate and format over the same
// immutable table, so reports can be built in any order or concurrently.
package report

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"salesstats/internal/core"
)

// WeekLength is the number of calendar days covered by WeeklySales.
const WeekLength = 7

// Engine holds a loaded ledger and builds reports from it.
type Engine struct {
	txs []core.Transaction
}

// NewEngine copies txs so later changes to the caller's slice do not leak into reports.
func NewEngine(txs []core.Transaction) *Engine {
	return &Engine{txs: append([]core.Transaction(nil), txs...)}
}

// Len returns the number of ledger lines.
func (e *Engine) Len() int {
	return len(e.txs)
}

type (
	// ProductSales is one product line inside a branch of the monthly report.
	ProductSales struct {
		Product string
		Total   core.Money
		Count   int
	}

	// BranchProducts lists one branch's product lines for the month.
	BranchProducts struct {
		Branch   string
		Products []ProductSales
	}

	// MonthlyReport holds per-branch product sales for one month.
	MonthlyReport struct {
		Month    int
		Year     int
		Branches []BranchProducts
	}

	// ProductPrice is one product line with its average income per sale.
	ProductPrice struct {
		Product      string
		Count        int
		TotalIncome  core.Money
		AveragePrice core.Money
	}

	// BranchSales is one branch row of the weekly report.
	BranchSales struct {
		Branch string
		Count  int
		Total  core.Money
	}

	// WeeklyReport covers Start through End, both inclusive.
	WeeklyReport struct {
		Start    core.Date
		End      core.Date
		Branches []BranchSales
	}

	// ProductShare is one product line and its percentage of all sales.
	ProductShare struct {
		Product    string
		Count      int
		Sales      core.Money
		Percentage decimal.Decimal
	}

	// PreferenceReport holds every product share plus the grand totals.
	PreferenceReport struct {
		Products   []ProductShare
		TotalSales core.Money
		TotalCount int
	}

	// BranchShare is one branch and its percentage of all sales.
	BranchShare struct {
		Branch     string
		Percentage decimal.Decimal
		Total      core.Money
	}

	// DistributionReport holds every branch share plus the grand total.
	DistributionReport struct {
		Branches []BranchShare
		Total    core.Money
	}
)

// MonthlySales groups the given month's lines by branch and product line.
// Branches and products are sorted by name.
func (e *Engine) MonthlySales(month, year int) (MonthlyReport, error) {
	if err := core.ValidateMonthYear(month, year); err != nil {
		return MonthlyReport{}, fmt.Errorf("monthly sales: %w", err)
	}
	inMonth := Filter(e.txs, func(tx core.Transaction) bool {
		return tx.Date.Month() == month && tx.Date.Year() == year
	})

	groups := GroupBy(inMonth, byBranchAndProduct, addToTally)
	sort.Slice(groups, func(i, j int) bool {
		a, b := groups[i].Key, groups[j].Key
		if a.branch != b.branch {
			return a.branch < b.branch
		}
		return a.product < b.product
	})

	rep := MonthlyReport{Month: month, Year: year}
	for _, g := range groups {
		n := len(rep.Branches)
		if n == 0 || rep.Branches[n-1].Branch != g.Key.branch {
			rep.Branches = append(rep.Branches, BranchProducts{Branch: g.Key.branch})
			n++
		}
		rep.Branches[n-1].Products = append(rep.Branches[n-1].Products, ProductSales{
			Product: g.Key.product,
			Total:   g.Value.Total,
			Count:   g.Value.Count,
		})
	}
	return rep, nil
}

// PriceOfProduct reports count, income and average income per line for every product.
func (e *Engine) PriceOfProduct() []ProductPrice {
	groups := GroupBy(e.txs, byProduct, addToTally)
	rows := make([]ProductPrice, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, ProductPrice{
			Product:      g.Key,
			Count:        g.Value.Count,
			TotalIncome:  g.Value.Total,
			AveragePrice: g.Value.Total.Average(g.Value.Count),
		})
	}
	return rows
}

// WeeklySales reports per-branch sales for the seven days starting at weekStart.
func (e *Engine) WeeklySales(weekStart core.Date) (WeeklyReport, error) {
	if err := weekStart.Validate(); err != nil {
		return WeeklyReport{}, fmt.Errorf("weekly sales: %w: %w", core.ErrInvalidArgument, err)
	}
	rep := WeeklyReport{Start: weekStart, End: weekStart.AddDays(WeekLength - 1)}
	inWeek := Filter(e.txs, func(tx core.Transaction) bool {
		return tx.Date.Within(rep.Start, rep.End)
	})
	for _, g := range GroupBy(inWeek, byBranch, addToTally) {
		rep.Branches = append(rep.Branches, BranchSales{
			Branch: g.Key,
			Count:  g.Value.Count,
			Total:  g.Value.Total,
		})
	}
	return rep, nil
}

// ProductPreference reports each product's share of all sales.
// When every total is zero each product gets a 0% share.
func (e *Engine) ProductPreference() PreferenceReport {
	grand := grandTally(e.txs)
	rep := PreferenceReport{TotalSales: grand.Total, TotalCount: grand.Count}
	for _, g := range GroupBy(e.txs, byProduct, addToTally) {
		rep.Products = append(rep.Products, ProductShare{
			Product:    g.Key,
			Count:      g.Value.Count,
			Sales:      g.Value.Total,
			Percentage: g.Value.Total.PercentOf(grand.Total),
		})
	}
	return rep
}

// SalesDistribution reports each branch's share of all sales.
// When every total is zero each branch gets a 0% share.
func (e *Engine) SalesDistribution() DistributionReport {
	groups := GroupBy(e.txs, byBranch, addToTally)
	var rep DistributionReport
	for _, g := range groups {
		rep.Total = rep.Total.Add(g.Value.Total)
	}
	for _, g := range groups {
		rep.Branches = append(rep.Branches, BranchShare{
			Branch:     g.Key,
			Percentage: g.Value.Total.PercentOf(rep.Total),
			Total:      g.Value.Total,
		})
	}
	return rep
}
