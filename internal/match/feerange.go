// Package match implements the college filter engine: fee range parsing,
// budget overlap, predicate composition, and catalog projection. Every
// function in this package is pure and safe for concurrent use.
package match

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/HerbHall/collegefinder/pkg/college"
)

// ContactForFees is the placeholder colleges use instead of a fee range.
const ContactForFees = "Contact for fees"

// ParseFeeRange parses a free-form fee string such as "₹50,000-₹1,00,000"
// or "75000". Unparseable input yields an invalid interval rather than an
// error.
func ParseFeeRange(raw string) college.FeeInterval {
	if raw == "" || raw == ContactForFees {
		return college.FeeInterval{}
	}

	clean := cleanFee(raw)

	if strings.Contains(clean, "-") {
		parts := strings.Split(clean, "-")
		if len(parts) == 2 {
			lo, okLo := leadingInt(parts[0])
			hi, okHi := leadingInt(parts[1])
			return college.FeeInterval{
				Min:   lo,
				Max:   hi,
				Valid: okLo && okHi && lo > 0 && hi > 0,
			}
		}
	}

	v, ok := leadingInt(clean)
	return college.FeeInterval{Min: v, Max: v, Valid: ok && v > 0}
}

// cleanFee drops currency symbols, thousands separators, and whitespace.
func cleanFee(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '₹', r == '$', r == ',':
			return -1
		case unicode.IsSpace(r):
			return -1
		}
		return r
	}, s)
}

// leadingInt parses the longest leading run of decimal digits, with an
// optional sign, ignoring anything after it ("120000/yr" parses as 120000).
// It reports false when no digits are present. Values beyond int64 saturate.
func leadingInt(s string) (int64, bool) {
	i := 0
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == start {
		return 0, false
	}

	v, err := strconv.ParseInt(s[start:i], 10, 64)
	if err != nil {
		// Only ErrRange is possible for a pure digit run.
		v = math.MaxInt64
	}
	if neg {
		v = -v
	}
	return v, true
}
