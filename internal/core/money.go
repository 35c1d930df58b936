// Package core holds the contract domain model and the pricing engine:
// exact decimal money handling, active-period resolution, run-rate
// normalization and tag filtering.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParsePrice converts a decimal string into an exact amount.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators.
// Negative amounts are rejected; zero is allowed (a contract may be free).
//
// Examples:
//
//	ParsePrice("12.34") -> 12.34, nil
//	ParsePrice("12,34") -> 12.34, nil
//	ParsePrice("-1")    -> error
func ParsePrice(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidPrice
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidPrice
	}
	if d.IsNegative() {
		return decimal.Zero, ErrInvalidPrice
	}
	return d, nil
}

// RoundCurrency rounds to two decimals, half-up. shopspring's Round is
// half-away-from-zero, which is identical to half-up for the non-negative
// amounts handled here.
func RoundCurrency(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FormatCurrency renders an amount with exactly two decimals for display.
func FormatCurrency(d decimal.Decimal) string {
	return d.StringFixed(2)
}
