// Package format renders calculator outputs as display strings.
package format

import (
	"fmt"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	rounded := roundHalfAway(amount, constants.CurrencyDecimals)
	if rounded < 0 {
		return "-" + constants.CurrencySymbol + grouped(-rounded, constants.CurrencyDecimals)
	}
	return constants.CurrencySymbol + grouped(rounded, constants.CurrencyDecimals)
}

// Percent renders a value already expressed in percent, e.g. 37.5 -> "37.50%".
func Percent(value float64, decimals int) string {
	return Decimal(value, decimals) + "%"
}

// Decimal renders value with the given number of decimals and thousands separators.
func Decimal(value float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	return grouped(roundHalfAway(value, decimals), decimals)
}

// Units renders a whole unit count. Fractional counts are rounded up so the
// count always covers the requirement it was computed from.
func Units(value float64) string {
	return grouped(mathutil.CeilUnits(value), 0)
}

// Count renders an integer tally rounded to the nearest whole number.
func Count(value float64) string {
	return Decimal(value, 0)
}

// Years renders a duration in years, e.g. "6.67 years".
func Years(value float64, decimals int) string {
	return Decimal(value, decimals) + " years"
}

// Flag renders a boolean encoded as a number: any non-zero value is "Yes".
func Flag(value float64) string {
	if value != 0 {
		return "Yes"
	}
	return "No"
}

func roundHalfAway(value float64, places int) float64 {
	rounded := decimal.NewFromFloat(value).Round(int32(places)).InexactFloat64()
	if rounded == 0 {
		// drop negative zero so tiny negatives do not render as "-0.00"
		return 0
	}
	return rounded
}

func grouped(value float64, places int) string {
	return printer.Sprintf(fmt.Sprintf("%%.%df", places), value)
}
