package finance_test

import (
	"testing"

	"github.com/rpggio/atelier/internal/finance"
	"github.com/stretchr/testify/require"
)

func TestMargin(t *testing.T) {
	require.Equal(t, 0.0, finance.Margin(0, 500))
	require.Equal(t, 20.0, finance.Margin(100, 80))
	require.Equal(t, -20.0, finance.Margin(100, 120))
	require.InDelta(t, 33.3333, finance.Margin(1800, 1200), 0.0001)
}

func TestTaxAndTotal(t *testing.T) {
	require.Equal(t, 20.0, finance.Tax(200, 10))
	require.Equal(t, 220.0, finance.TotalWithTax(200, 10))
	require.Equal(t, 0.0, finance.Tax(200, 0))
}

func TestDiscount(t *testing.T) {
	require.Equal(t, 15.0, finance.Discount(150, 10))
	require.Equal(t, 135.0, finance.ApplyDiscount(150, 10))
}

func TestSumAvoidsDrift(t *testing.T) {
	require.Equal(t, 0.3, finance.Sum(0.1, 0.2))
	require.Equal(t, 0.0, finance.Sum())
}

func TestSubFloor0(t *testing.T) {
	require.Equal(t, 50.0, finance.SubFloor0(100, 50))
	require.Equal(t, 0.0, finance.SubFloor0(10, 50))
}

func TestConvertCurrency(t *testing.T) {
	got, ok := finance.ConvertCurrency(100, "usd", "USD")
	require.True(t, ok)
	require.Equal(t, 100.0, got)

	got, ok = finance.ConvertCurrency(100, "USD", "EUR")
	require.True(t, ok)
	require.Equal(t, 92.0, got)

	got, ok = finance.ConvertCurrency(100, "USD", "XYZ")
	require.False(t, ok)
	require.Equal(t, 100.0, got)
}
