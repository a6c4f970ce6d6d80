// Package money rounds and formats monetary amounts.
package money

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Round rounds v half away from zero to two decimal places.
func Round(v float64) float64 {
	return RoundTo(v, 2)
}

// RoundTo rounds v half away from zero to places decimal places.
func RoundTo(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// Add sums amounts without accumulating binary floating point error.
func Add(amounts ...float64) float64 {
	sum := decimal.Zero
	for _, a := range amounts {
		sum = sum.Add(decimal.NewFromFloat(a))
	}
	return sum.InexactFloat64()
}

// Sub returns a - b computed in decimal.
func Sub(a, b float64) float64 {
	return decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).InexactFloat64()
}

// Format renders v as a whole amount with thousands separators,
// e.g. Format("₹", 12000.4) -> "₹12,000".
func Format(symbol string, v float64) string {
	whole := decimal.NewFromFloat(v).Round(0).IntPart()
	if whole < 0 {
		return "-" + symbol + humanize.Comma(-whole)
	}
	return symbol + humanize.Comma(whole)
}

// FormatCents renders v with two decimals and thousands separators.
func FormatCents(symbol string, v float64) string {
	d := decimal.NewFromFloat(v).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	whole := d.IntPart()
	frac := d.Sub(decimal.NewFromInt(whole)).Shift(2).IntPart()
	return fmt.Sprintf("%s%s%s.%02d", sign, symbol, humanize.Comma(whole), frac)
}

// ErrInvalidAmount is returned by Parse for input that is not a number.
var ErrInvalidAmount = errors.New("invalid amount")

// Parse reads a user-typed amount such as "₹12,500.50" or "12500".
// Currency symbols, separators and spaces are ignored.
func Parse(s string) (float64, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsDigit(r), r == '.', r == '-':
			return r
		default:
			return -1
		}
	}, s)
	if cleaned == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return d.Round(2).InexactFloat64(), nil
}
