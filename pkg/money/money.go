// Package money renders integer-cent amounts for humans and external payloads.
// Arithmetic stays in cents everywhere else; this package only formats.
package money

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Dollars converts cents to an exact decimal dollar amount.
func Dollars(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Div(hundred)
}

// FormatCents renders cents as a fixed two-decimal string, e.g. 11498 -> "114.98".
func FormatCents(cents int64) string {
	return Dollars(cents).StringFixed(2)
}

// FormatCAD renders cents the way the shop prints prices in messages, e.g. "114.98 $".
func FormatCAD(cents int64) string {
	return FormatCents(cents) + " $"
}

// PercentOf returns round(cents * percent / 100), rounding half away from zero.
func PercentOf(cents int64, percent decimal.Decimal) int64 {
	return decimal.NewFromInt(cents).Mul(percent).Div(hundred).Round(0).IntPart()
}
