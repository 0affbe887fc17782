// Package format renders values for display and export. Formatting is
// strictly a presentation concern: all computation happens on cents,
// and nothing in here feeds back into the pipeline.
package format

import (
	"strconv"

	"baile/internal/core"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// Currency renders an amount as Brazilian reais, e.g. "R$ 1.234,56".
func Currency(m core.Money) string {
	return printer.Sprintf("R$ %v", number.Decimal(m.Reais(),
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2)))
}

// Percent renders a percentage with one decimal, e.g. "87,5%".
func Percent(p float64) string {
	return printer.Sprintf("%v%%", number.Decimal(p,
		number.MinFractionDigits(1),
		number.MaxFractionDigits(1)))
}

// Unit renders a table number, or "-" for the unassigned sentinel.
func Unit(u int) string {
	if u == core.UnassignedUnit {
		return "-"
	}
	return strconv.Itoa(u)
}

// Count renders an integer with pt-BR grouping.
func Count(n int) string {
	return printer.Sprintf("%v", number.Decimal(n))
}
