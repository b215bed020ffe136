package guardrail

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractBudget(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected float64
	}{
		{
			name:     "dollar sign",
			content:  "The total cost is $50,000 for the project.",
			expected: 50000,
		},
		{
			name:     "dollar sign with space",
			content:  "Estimated at $ 75,500.25 overall.",
			expected: 75500.25,
		},
		{
			name:     "usd suffix",
			content:  "We expect to spend 120,000 USD this quarter.",
			expected: 120000,
		},
		{
			name:     "dollars suffix",
			content:  "Roughly 3,500 dollars per seat.",
			expected: 3500,
		},
		{
			name:     "budget label with dollar sign",
			content:  "Budget: $1,250,000.50 allocated for hardware.",
			expected: 1250000.50,
		},
		{
			name:     "case insensitive",
			content:  "BUDGET: 40,000 DOLLARS",
			expected: 40000,
		},
		{
			name:     "no monetary text",
			content:  "This RFP covers consulting services with no figures.",
			expected: 0,
		},
		{
			name:     "empty content",
			content:  "",
			expected: 0,
		},
		{
			name:     "dollar sign wins over usd suffix",
			content:  "Budget is 99,999 USD but listed as $11,000 in the summary.",
			expected: 11000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractBudget(tt.content))
		})
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount   float64
		expected string
	}{
		{1000000, "1,000,000.00"},
		{1250000.5, "1,250,000.50"},
		{999.99, "999.99"},
		{0, "0.00"},
		{12, "12.00"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatAmount(tt.amount))
		})
	}
}
