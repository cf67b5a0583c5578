// Package money rounds float amounts to cents through decimal arithmetic so
// half-cent ties round away from zero instead of following binary float error.
package money

import "github.com/shopspring/decimal"

// PayoffEpsilon is the balance at or below which a debt counts as paid.
const PayoffEpsilon = 0.01

// RoundCents rounds v to two decimal places.
func RoundCents(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// Sum adds amounts in decimal and returns the cent-rounded total.
func Sum(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	f, _ := total.Round(2).Float64()
	return f
}

// Equal reports whether a and b agree to the cent.
func Equal(a, b float64) bool {
	return decimal.NewFromFloat(a).Round(2).Equal(decimal.NewFromFloat(b).Round(2))
}

// Format renders v with two decimals, e.g. "-120.00".
func Format(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
