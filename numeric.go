package csvtool

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// currencySymbols may prefix a numeric value.
const currencySymbols = "$€£¥₣₹ﺪﻛﺇ﷼₻₽₾₺₼₸₴₷฿원₫₮₯₱₳₵₲₪₰"

var numericPattern = regexp.MustCompile(`^[` + regexp.QuoteMeta(currencySymbols) + `]?[,0-9]*(?:\.[0-9]*)?$`)

// Coerce promotes a string cell that looks like a number to an integer or
// decimal cell. Any other cell, including one that is already numeric, is
// returned unchanged.
func Coerce(c Cell) Cell {
	if c.kind != KindString {
		return c
	}
	return CoerceString(c.str)
}

// CoerceString returns s as an integer or decimal cell when it matches an
// optionally currency-prefixed number with optional grouping commas and
// fractional part, and as a string cell otherwise. A decimal with no
// fractional part is narrowed to an integer when it fits.
func CoerceString(s string) Cell {
	if !numericPattern.MatchString(s) {
		return Str(s)
	}
	digits := s
	if r, size := utf8.DecodeRuneInString(digits); strings.ContainsRune(currencySymbols, r) {
		digits = digits[size:]
	}
	digits = strings.ReplaceAll(digits, ",", "")

	if n, err := strconv.ParseInt(digits, 10, 64); err == nil {
		return Int(n)
	}
	d, err := decimal.NewFromString(digits)
	if err != nil {
		return Str(s)
	}
	if d.IsInteger() {
		if b := d.BigInt(); b.IsInt64() {
			return Int(b.Int64())
		}
	}
	return Decimal(d)
}
