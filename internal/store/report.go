package store

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// ProductSummary aggregates the ledger rows for one product display name.
type ProductSummary struct {
	Product  string
	Quantity int
	Total    decimal.Decimal
}

// Report is a read-only aggregation over the sales ledger, recomputed from
// scratch on every request.
type Report struct {
	// Products is ordered by first appearance in the ledger.
	Products      []ProductSummary
	GrandTotal    decimal.Decimal
	CustomerCount int
	TopCustomer   string
	TopSpend      decimal.Decimal
}

// SalesReport aggregates the ledger. It returns (nil, false) when no sales
// exist yet: top-customer selection is undefined over an empty ledger and
// must not be attempted.
func (s *Store) SalesReport() (*Report, bool) {
	if len(s.sales) == 0 {
		return nil, false
	}

	byProduct := make(map[string]*ProductSummary)
	var productOrder []string
	spendByCustomer := make(map[string]decimal.Decimal)

	for _, sale := range s.sales {
		summary, ok := byProduct[sale.Product]
		if !ok {
			summary = &ProductSummary{Product: sale.Product, Total: decimal.Zero}
			byProduct[sale.Product] = summary
			productOrder = append(productOrder, sale.Product)
		}
		summary.Quantity += sale.Quantity
		summary.Total = summary.Total.Add(sale.Total)

		spendByCustomer[sale.Username] = spendByCustomer[sale.Username].Add(sale.Total)
	}

	report := &Report{
		GrandTotal:    decimal.Zero,
		CustomerCount: len(spendByCustomer),
	}
	for _, name := range productOrder {
		report.Products = append(report.Products, *byProduct[name])
		report.GrandTotal = report.GrandTotal.Add(byProduct[name].Total)
	}

	// Highest aggregate spend wins; ties go to the lexicographically
	// smallest username so the result is deterministic.
	usernames := make([]string, 0, len(spendByCustomer))
	for u := range spendByCustomer {
		usernames = append(usernames, u)
	}
	sort.Strings(usernames)
	for _, u := range usernames {
		if report.TopCustomer == "" || spendByCustomer[u].GreaterThan(report.TopSpend) {
			report.TopCustomer = u
			report.TopSpend = spendByCustomer[u]
		}
	}

	return report, true
}

// Bar renders the crude quantity visualization for a report line: one '#'
// per two units sold, floored.
func (ps ProductSummary) Bar() string {
	return strings.Repeat("#", ps.Quantity/2)
}
