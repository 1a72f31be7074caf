package store

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSalesReportEmpty(t *testing.T) {
	s := openTestStore(t)

	report, ok := s.SalesReport()
	assert.False(t, ok)
	assert.Nil(t, report)
}

func TestSalesReportAggregation(t *testing.T) {
	s := openTestStore(t)

	_, _, err := s.Purchase("alice", 1, 2, decimal.Zero) // Laptop, 1600
	require.NoError(t, err)
	_, _, err = s.Purchase("bob", 3, 4, decimal.Zero) // Headphones, 600
	require.NoError(t, err)
	_, _, err = s.Purchase("alice", 3, 2, decimal.Zero) // Headphones, 300
	require.NoError(t, err)

	report, ok := s.SalesReport()
	require.True(t, ok)

	// Products appear in first-sale order.
	require.Len(t, report.Products, 2)
	assert.Equal(t, "Laptop", report.Products[0].Product)
	assert.Equal(t, 2, report.Products[0].Quantity)
	assert.Equal(t, "1600.00", report.Products[0].Total.StringFixed(2))
	assert.Equal(t, "Headphones", report.Products[1].Product)
	assert.Equal(t, 6, report.Products[1].Quantity)
	assert.Equal(t, "900.00", report.Products[1].Total.StringFixed(2))

	assert.Equal(t, "2500.00", report.GrandTotal.StringFixed(2))
	assert.Equal(t, 2, report.CustomerCount)

	// alice spent 1900, bob 600.
	assert.Equal(t, "alice", report.TopCustomer)
	assert.Equal(t, "1900.00", report.TopSpend.StringFixed(2))
}

func TestSalesReportTopCustomerTieBreak(t *testing.T) {
	s := openTestStore(t)

	// Same spend for both; the lexicographically smaller username wins.
	_, _, err := s.Purchase("zoe", 2, 1, decimal.Zero) // 500
	require.NoError(t, err)
	_, _, err = s.Purchase("adam", 2, 1, decimal.Zero) // 500
	require.NoError(t, err)

	report, ok := s.SalesReport()
	require.True(t, ok)
	assert.Equal(t, "adam", report.TopCustomer)
	assert.Equal(t, "500.00", report.TopSpend.StringFixed(2))
}

func TestProductSummaryBar(t *testing.T) {
	assert.Equal(t, "", ProductSummary{Quantity: 1}.Bar())
	assert.Equal(t, "#", ProductSummary{Quantity: 2}.Bar())
	assert.Equal(t, "#", ProductSummary{Quantity: 3}.Bar())
	assert.Equal(t, "#####", ProductSummary{Quantity: 10}.Bar())
}

func TestDenormalizedSaleSurvivesRename(t *testing.T) {
	s := openTestStore(t)

	_, _, err := s.Purchase("carl", 1, 1, decimal.Zero)
	require.NoError(t, err)

	// Renaming the product must not rewrite history: the ledger keeps
	// the name the sale was made under.
	s.products[1].Name = "Laptop Pro"
	require.NoError(t, s.saveProducts())

	report, ok := s.SalesReport()
	require.True(t, ok)
	assert.Equal(t, "Laptop", report.Products[0].Product)
}
