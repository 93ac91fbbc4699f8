// Package money parses and renders catalog prices.
package money

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Parse reads a human-entered price cell. Blank, unparseable and negative
// values yield zero with ok=false; the caller decides whether to count it.
func Parse(raw string) (decimal.Decimal, bool) {
	clean := strings.TrimSpace(raw)
	if clean == "" {
		return decimal.Zero, false
	}
	value, err := decimal.NewFromString(asciiDigits(clean))
	if err != nil || value.IsNegative() {
		return decimal.Zero, false
	}
	return value, true
}

// arabicDecimalSeparator is U+066B, the separator Arabic-Indic prices use.
const arabicDecimalSeparator = '٫'

// asciiDigits rewrites every decimal digit (Arabic-Indic, Persian, ...) to
// its ASCII form so "١٢٣٫٥" reads as "123.5".
func asciiDigits(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == arabicDecimalSeparator:
			return '.'
		case r < 0x80 || !unicode.IsDigit(r):
			return r
		}
		return '0' + digitValue(r)
	}, s)
}

// digitValue relies on Unicode laying out every Nd digit in contiguous
// ascending runs of ten.
func digitValue(r rune) rune {
	n := rune(0)
	for unicode.IsDigit(r - n - 1) {
		n++
	}
	return n % 10
}

// Policy fixes how many decimals an amount is rendered with.
type Policy struct {
	places int32
}

var (
	Integral = Policy{places: 0}
	Fixed2   = Policy{places: 2}
)

// PolicyFor picks Integral when every value is a whole number, else Fixed2.
func PolicyFor(values ...decimal.Decimal) Policy {
	for _, v := range values {
		if !v.IsInteger() {
			return Fixed2
		}
	}
	return Integral
}

// Places returns the number of decimals rendered.
func (p Policy) Places() int32 {
	return p.places
}

// Format renders value with the policy's decimals.
func (p Policy) Format(value decimal.Decimal) string {
	return value.StringFixed(p.places)
}

// Display renders value rounded to whole units, as cart summaries show it.
func Display(value decimal.Decimal) string {
	return value.StringFixed(0)
}
