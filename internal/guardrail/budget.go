package guardrail

import (
	"regexp"
	"strconv"
	"strings"
)

// budgetPatterns are tried in priority order; the first pattern that
// matches anywhere in the content wins and its first capture is parsed.
// Order matters: a bare "$N" beats a "budget ... N USD" further down, so
// reordering changes extraction results for mixed content.
var budgetPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\$\s*([\d,]+(?:\.\d+)?)`),               // $50,000 or $ 50,000
	regexp.MustCompile(`(?i)([\d,]+(?:\.\d+)?)\s*(?:USD|dollars)`),  // 50,000 USD or 50,000 dollars
	regexp.MustCompile(`(?i)budget.*?\$\s*([\d,]+(?:\.\d+)?)`),      // Budget: $50,000
	regexp.MustCompile(`(?i)budget.*?([\d,]+(?:\.\d+)?)\s*(?:USD|dollars)`), // Budget: 50,000 USD
}

// ExtractBudget extracts the monetary figure from RFP content. Commas are
// stripped before the numeric parse. Returns 0 when no pattern matches,
// which the budget rule treats as non-blocking.
func ExtractBudget(content string) float64 {
	for _, pattern := range budgetPatterns {
		matches := pattern.FindAllStringSubmatch(content, -1)
		for _, match := range matches {
			raw := strings.ReplaceAll(match[1], ",", "")
			amount, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				continue
			}
			return amount
		}
	}
	return 0
}

// formatAmount renders a monetary amount with thousands separators and
// two decimal places, e.g. 1250000.5 -> "1,250,000.50".
func formatAmount(amount float64) string {
	s := strconv.FormatFloat(amount, 'f', 2, 64)

	intPart, fracPart, _ := strings.Cut(s, ".")
	negative := strings.HasPrefix(intPart, "-")
	if negative {
		intPart = intPart[1:]
	}

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	out := b.String() + "." + fracPart
	if negative {
		out = "-" + out
	}
	return out
}
