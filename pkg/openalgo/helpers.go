package openalgo

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatRupees formats a monetary string with the rupee sign and thousand
// separators. Returns the input prefixed as-is when it does not parse.
func FormatRupees(value string) string {
	if value == "" {
		return "₹0.00"
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return "₹" + value
	}
	return "₹" + groupThousands(d.StringFixed(2))
}

// FormatPNL formats a profit/loss string with a +/- prefix and rupee sign.
func FormatPNL(value string) string {
	if value == "" {
		return "₹0.00"
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return "₹" + value
	}
	if d.IsNegative() {
		return "-₹" + groupThousands(d.Neg().StringFixed(2))
	}
	return "+₹" + groupThousands(d.StringFixed(2))
}

// FormatVolume formats a volume number with thousand separators.
// Returns "-" for zero values.
func FormatVolume(vol int64) string {
	if vol == 0 {
		return "-"
	}
	return groupThousands(strconv.FormatInt(vol, 10))
}

// groupThousands inserts comma separators into the integer part of a
// decimal string.
func groupThousands(s string) string {
	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i:]
	}

	n := len(intPart)
	if n <= 3 {
		return intPart + fracPart
	}

	var result strings.Builder
	remainder := n % 3
	if remainder > 0 {
		result.WriteString(intPart[:remainder])
		result.WriteString(",")
	}
	for i := remainder; i < n; i += 3 {
		result.WriteString(intPart[i : i+3])
		if i+3 < n {
			result.WriteString(",")
		}
	}

	return result.String() + fracPart
}

// FormatPrice renders a float price with two decimals.
func FormatPrice(p float64) string {
	return fmt.Sprintf("%.2f", p)
}
