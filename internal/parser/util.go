package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// parseAmountCents converts a string like "1,234.56" or "$1,234.56" into an
// integer count of cents, rounding to the nearest cent. Currency symbols,
// grouping commas, and whitespace (including Unicode variants) are stripped
// before parsing.
func parseAmountCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, "£", "")
	s = strings.ReplaceAll(s, "€", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "\u00A0", "") // non-breaking space

	// Accounting-style negatives: (123.45)
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	dollars, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number")
	}
	if negative {
		dollars = -dollars
	}

	return int64(math.Round(dollars * 100)), nil
}
