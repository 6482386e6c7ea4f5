// Package core provides money parsing and handling utilities.
//
// Amounts travel through the engine as float64 magnitudes. User input is parsed
// with decimal arithmetic first so that "12,345" and "12.345" round the same way
// before the value ever becomes a float.
package core

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ParseAmount converts a user-typed decimal string to a positive amount rounded
// half-up to two decimal places.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators. Signs,
// exponents, zero and unparsable input are rejected with ErrInvalidAmount.
//
// Examples:
//
//	ParseAmount("12.34")  -> 12.34, nil
//	ParseAmount("12,34")  -> 12.34, nil
//	ParseAmount("12.345") -> 12.35, nil
//	ParseAmount("0")      -> 0, ErrInvalidAmount
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.ContainsAny(s, "+-eE") {
		return 0, ErrInvalidAmount
	}
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	d = d.Mul(hundred).Round(0).Div(hundred)
	if !d.IsPositive() {
		return 0, ErrInvalidAmount
	}
	f, _ := d.Float64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, ErrInvalidAmount
	}
	return f, nil
}

// FormatAmount renders an amount with two fixed decimals and an optional
// currency label, e.g. "12.50 EUR".
func FormatAmount(amount float64, currency string) string {
	s := fmt.Sprintf("%.2f", amount)
	if currency == "" {
		return s
	}
	return s + " " + currency
}
