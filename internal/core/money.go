// Package core implements the ledger reconciliation pipeline: raw table
// normalization, payment classification and metric aggregation.
//
// This file contains money parsing and handling. Amounts are kept in
// cents; floating point is used only at the display boundary.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// Money is a decimal amount in cents. Ledger amounts may legitimately
// be zero (no payment yet) or negative (refunds, data-entry noise), so
// no validation is applied here; the classifier is total over all
// values.
type Money struct {
	Cents int64
}

// ParseAmountCents converts a decimal string to cents with half-up
// rounding on the third decimal place. Both dot (12.34) and comma
// (12,34) separators are accepted, as is an optional leading sign.
// A thousands separator is not supported; spreadsheet values arrive
// unformatted.
//
// The boolean is false when the string is empty or not a number.
func ParseAmountCents(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	neg := false
	if strings.HasPrefix(s, "+") {
		s = s[1:]
	} else if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	s = strings.ReplaceAll(s, ",", ".")
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, false
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" && fracPart == "" {
		return 0, false
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, false
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, false
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, false
	}
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, false
	}
	// First two fractional digits, half-up rounding on the third.
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	cents := iv*100 + fracCents
	if neg {
		cents = -cents
	}
	return cents, true
}

// Reais returns the amount in reais as a float64 for display purposes.
// Use cents for calculations to avoid floating-point precision issues.
func (m Money) Reais() float64 {
	return float64(m.Cents) / 100.0
}

// Add returns the sum of two amounts.
func (m Money) Add(o Money) Money {
	return Money{Cents: m.Cents + o.Cents}
}

// Sub returns m minus o.
func (m Money) Sub(o Money) Money {
	return Money{Cents: m.Cents - o.Cents}
}
