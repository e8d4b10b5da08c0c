// Package phone canonicalizes Kazakhstani phone numbers so that accounts and
// clients match regardless of input formatting.
package phone

import "strings"

const (
	countryCode = "7"
	trunkPrefix = "8"

	looseMatchDigits = 10
)

// Digits strips every non-digit character from raw.
func Digits(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Normalize returns the canonical digit string for raw.
//
// An 11-digit number starting with the domestic trunk prefix gets its leading
// digit replaced with the country code; a bare 10-digit number gets the
// country code prepended. Anything else is returned digits-only as-is.
// Empty input normalizes to the empty string, which matches nothing.
func Normalize(raw string) string {
	digits := Digits(raw)
	switch {
	case len(digits) == 11 && strings.HasPrefix(digits, trunkPrefix):
		return countryCode + digits[1:]
	case len(digits) == 10:
		return countryCode + digits
	default:
		return digits
	}
}

// Equal reports whether two raw phone strings share a canonical form.
func Equal(a, b string) bool {
	na := Normalize(a)
	return na != "" && na == Normalize(b)
}

// Last10 returns the trailing ten digits of raw, used for tolerant lookups
// when the stored and supplied numbers differ in country-code formatting.
func Last10(raw string) string {
	digits := Digits(raw)
	if len(digits) <= looseMatchDigits {
		return digits
	}
	return digits[len(digits)-looseMatchDigits:]
}

// LooseEqual compares two raw phone strings by their last ten digits.
func LooseEqual(a, b string) bool {
	la := Last10(a)
	return la != "" && la == Last10(b)
}
