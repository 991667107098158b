// Package money formats decimal amounts the way they appear on printed notes
// and in notification emails.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Format renders an amount with thousands separators and exactly two decimal
// places: 1234567.8 -> "1,234,567.80".
func Format(d decimal.Decimal) string {
	fixed := d.StringFixed(2)

	negative := strings.HasPrefix(fixed, "-")
	if negative {
		fixed = fixed[1:]
	}

	parts := strings.SplitN(fixed, ".", 2)
	grouped := groupThousands(parts[0])

	out := grouped + "." + parts[1]
	if negative {
		out = "-" + out
	}
	return out
}

// FormatCurrency prefixes the formatted amount with a dollar sign, matching
// the note layout.
func FormatCurrency(d decimal.Decimal) string {
	return "$" + Format(d)
}

func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}

	var b strings.Builder
	rem := n % 3
	if rem > 0 {
		b.WriteString(digits[:rem])
	}
	for i := rem; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
