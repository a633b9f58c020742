package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseAmountCents converts a decimal money string ("150", "99.5", "12.75")
// into integer cents. More than two fractional digits is rejected rather
// than rounded.
func ParseAmountCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("amount is empty")
	}
	whole, frac, _ := strings.Cut(s, ".")
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if units < 0 || strings.HasPrefix(whole, "-") {
		return 0, fmt.Errorf("amount must not be negative")
	}
	cents := units * 100
	if frac != "" {
		if len(frac) > 2 {
			return 0, fmt.Errorf("amount %q has more than two decimal places", s)
		}
		f, err := strconv.ParseInt(frac, 10, 64)
		if err != nil || f < 0 {
			return 0, fmt.Errorf("invalid amount %q", s)
		}
		if len(frac) == 1 {
			f *= 10
		}
		cents += f
	}
	return cents, nil
}

// FormatCents renders integer cents for display: 15000 -> "150.00".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// FormatAmount prefixes the group currency tag: "KES 150.00".
func FormatAmount(currency string, cents int64) string {
	if currency == "" {
		return FormatCents(cents)
	}
	return currency + " " + FormatCents(cents)
}
