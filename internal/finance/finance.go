// Package finance holds the pure money arithmetic shared by quotes, projects
// and invoices. Calculations run on decimals and are returned as float64.
package finance

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Margin returns the profit margin of price over cost as a percentage.
// A zero price yields a zero margin.
func Margin(price, cost float64) float64 {
	p := decimal.NewFromFloat(price)
	if p.IsZero() {
		return 0
	}
	c := decimal.NewFromFloat(cost)
	return p.Sub(c).Div(p).Mul(hundred).InexactFloat64()
}

// Tax returns amount*rate/100.
func Tax(amount, rate float64) float64 {
	return percentOf(amount, rate).InexactFloat64()
}

// TotalWithTax returns amount plus its tax at rate percent.
func TotalWithTax(amount, rate float64) float64 {
	a := decimal.NewFromFloat(amount)
	return a.Add(percentOf(amount, rate)).InexactFloat64()
}

// Discount returns amount*rate/100.
func Discount(amount, rate float64) float64 {
	return percentOf(amount, rate).InexactFloat64()
}

// ApplyDiscount returns amount reduced by rate percent.
func ApplyDiscount(amount, rate float64) float64 {
	a := decimal.NewFromFloat(amount)
	return a.Sub(percentOf(amount, rate)).InexactFloat64()
}

// Sum adds money values without accumulating binary rounding drift.
func Sum(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	return total.InexactFloat64()
}

// Mul returns a*b, used for quantity x rate line totals.
func Mul(a, b float64) float64 {
	return decimal.NewFromFloat(a).Mul(decimal.NewFromFloat(b)).InexactFloat64()
}

// SubFloor0 returns a-b, never below zero.
func SubFloor0(a, b float64) float64 {
	d := decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b))
	if d.IsNegative() {
		return 0
	}
	return d.InexactFloat64()
}

func percentOf(amount, rate float64) decimal.Decimal {
	return decimal.NewFromFloat(amount).Mul(decimal.NewFromFloat(rate)).Div(hundred)
}

// rates maps FROM->TO to the multiplier applied to an amount in FROM.
// The table is fixed; it exists for display conversion only.
var rates = map[string]map[string]float64{
	"USD": {"EUR": 0.92, "GBP": 0.79, "CAD": 1.36, "AUD": 1.52, "INR": 83.2},
	"EUR": {"USD": 1.09, "GBP": 0.86, "CAD": 1.48, "AUD": 1.65, "INR": 90.4},
	"GBP": {"USD": 1.27, "EUR": 1.16, "CAD": 1.72, "AUD": 1.92, "INR": 105.3},
	"CAD": {"USD": 0.74, "EUR": 0.68, "GBP": 0.58, "AUD": 1.12, "INR": 61.2},
	"AUD": {"USD": 0.66, "EUR": 0.61, "GBP": 0.52, "CAD": 0.89, "INR": 54.7},
	"INR": {"USD": 0.012, "EUR": 0.011, "GBP": 0.0095, "CAD": 0.016, "AUD": 0.018},
}

// ConvertCurrency converts amount between two currency codes using the
// static rate table. Identical codes return the amount unchanged. ok is false
// when the pair is unknown, in which case the amount is returned as-is.
func ConvertCurrency(amount float64, from, to string) (converted float64, ok bool) {
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))
	if from == to {
		return amount, true
	}
	rate, found := rates[from][to]
	if !found {
		return amount, false
	}
	return Mul(amount, rate), true
}

// Round2 rounds to cents for presentation.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
