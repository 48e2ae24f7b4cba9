package glean

import (
	"strings"

	"github.com/shopspring/decimal"
)

// dateLayout is the ISO calendar-date layout used in glean text and CSV.
const dateLayout = "2006-01-02"

// roundHalfAwayFromZero rounds d to places decimal digits using
// round-half-away-from-zero, the rounding rule every glean amount and
// percentage uses before rendering.
func roundHalfAwayFromZero(d decimal.Decimal, places int32) decimal.Decimal {
	return d.Round(places)
}

// formatAmount renders d the way the reference implementation's
// Python f-strings render a float: trailing zeros beyond the first
// decimal digit are trimmed, but a whole number still shows one
// decimal place (3 -> "3.0"), matching str() of a Python float.
func formatAmount(d decimal.Decimal) string {
	s := d.String()
	if !strings.Contains(s, ".") {
		return s + ".0"
	}
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
