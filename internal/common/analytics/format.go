package analytics

import (
	"math"
	"strconv"
	"strings"
)

// Commas formats v rounded to a whole number with thousands separators,
// e.g. 1234567.8 -> "1,234,568".
func Commas(v float64) string {
	n := int64(math.Round(v))
	neg := n < 0
	if neg {
		n = -n
	}
	digits := strconv.FormatInt(n, 10)

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Rupees formats an INR amount, e.g. "₹1,250".
func Rupees(v float64) string {
	return "₹" + Commas(v)
}

// Top returns at most n leading elements.
func Top[T any](items []T, n int) []T {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
