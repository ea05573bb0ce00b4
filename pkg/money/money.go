// Package money converts between decimal amounts and the gateway's minor units.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// minorUnitExponents lists ISO 4217 numeric currencies whose minor unit is not 2 digits
var minorUnitExponents = map[int]int32{
	392: 0, // JPY
	410: 0, // KRW
	48:  3, // BHD
	368: 3, // IQD
	400: 3, // JOD
	414: 3, // KWD
	512: 3, // OMR
	788: 3, // TND
}

// Exponent returns the number of minor unit digits for an ISO 4217 numeric code
func Exponent(currency int) int32 {
	if exp, ok := minorUnitExponents[currency]; ok {
		return exp
	}
	return 2
}

// ToMinor parses a decimal amount such as "10.50" into minor units (1050 for GEL).
// Amounts with more fractional digits than the currency allows are rejected.
func ToMinor(amount string, currency int) (int64, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("invalid amount %q: must not be negative", amount)
	}

	exp := Exponent(currency)
	minor := d.Shift(exp)
	if !minor.Equal(minor.Truncate(0)) {
		return 0, fmt.Errorf("invalid amount %q: at most %d decimal places", amount, exp)
	}
	if !minor.LessThanOrEqual(decimal.NewFromInt(1<<62)) {
		return 0, fmt.Errorf("invalid amount %q: too large", amount)
	}
	return minor.IntPart(), nil
}

// FromMinor formats minor units as a decimal amount ("1050" -> "10.50")
func FromMinor(minor int64, currency int) string {
	exp := Exponent(currency)
	return decimal.New(minor, -exp).StringFixed(exp)
}

// FromMinorPtr formats an optional amount; nil stays nil
func FromMinorPtr(minor *int64, currency int) *string {
	if minor == nil {
		return nil
	}
	s := FromMinor(*minor, currency)
	return &s
}
