// Package money holds the lenient amount handling shared by the entity
// model and the display layer. Amounts are float64 throughout; rounding only
// ever happens in Format.
package money

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Parse reads a decimal amount typed by a user. Anything that is not a
// finite, non-negative decimal yields 0.
func Parse(text string) float64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}

	d, err := decimal.NewFromString(text)
	if err != nil {
		return 0
	}

	f, _ := d.Float64()
	return Sanitize(f)
}

// Sanitize coerces NaN, infinities and negative values to 0.
func Sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// Format renders an amount with two decimal places, rounding half away from
// zero. The input value is left untouched.
func Format(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0.00"
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}
