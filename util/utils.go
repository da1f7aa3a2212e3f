package util

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// StrNotSet will return true if the string value provided is empty
func StrNotSet(value string) bool {
	return len(value) == 0
}

// FormatDecimal renders d keeping the scale it was parsed with, so "1.50" stays "1.50"
// and "40000" stays "40000".
func FormatDecimal(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}

// Capitalize upper-cases the first rune of value and leaves the rest untouched.
func Capitalize(value string) string {
	r, size := utf8.DecodeRuneInString(value)
	if r == utf8.RuneError {
		return value
	}
	return string(unicode.ToUpper(r)) + value[size:]
}

// NormalizeKey lower-cases and trims a user supplied token (chain names, complexity hints)
func NormalizeKey(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
