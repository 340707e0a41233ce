// Package money renders integer peso amounts for display.
package money

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// FallbackZero is returned when a non-finite value reaches the formatter.
const FallbackZero = "COP 0"

var copPrinter = message.NewPrinter(language.MustParse("es-CO"))

// FormatCOP renders an amount in minor units as Colombian pesos, e.g.
// "$ 300.000". COP is a zero-decimal currency so no fraction is printed.
func FormatCOP(amount int64) string {
	formatted := copPrinter.Sprintf("%v", number.Decimal(amount, number.MaxFractionDigits(0)))
	if formatted == "" {
		return "COP " + strconv.FormatInt(amount, 10)
	}
	return "$ " + formatted
}

// FormatCOPValue is FormatCOP for values that may have come from untyped
// document fields. NaN and infinities yield FallbackZero, never a panic.
func FormatCOPValue(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return FallbackZero
	}
	return FormatCOP(int64(math.Round(v)))
}
