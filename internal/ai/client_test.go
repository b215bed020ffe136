package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
		found    bool
	}{
		{
			name:     "bare object",
			content:  `{"approved": true}`,
			expected: `{"approved": true}`,
			found:    true,
		},
		{
			name:     "markdown fenced",
			content:  "```json\n{\"category\": \"Hardware\"}\n```",
			expected: `{"category": "Hardware"}`,
			found:    true,
		},
		{
			name:     "prose around object",
			content:  `Here is my answer: {"confidence": 0.9, "reasoning": "fits"} hope it helps`,
			expected: `{"confidence": 0.9, "reasoning": "fits"}`,
			found:    true,
		},
		{
			name:     "nested objects",
			content:  `{"outer": {"inner": 1}, "x": 2} trailing`,
			expected: `{"outer": {"inner": 1}, "x": 2}`,
			found:    true,
		},
		{
			name:     "braces inside strings",
			content:  `{"feedback": "use {curly} notation", "approved": false}`,
			expected: `{"feedback": "use {curly} notation", "approved": false}`,
			found:    true,
		},
		{
			name:     "escaped quotes inside strings",
			content:  `{"feedback": "she said \"no}\" twice"}`,
			expected: `{"feedback": "she said \"no}\" twice"}`,
			found:    true,
		},
		{
			name:    "no object at all",
			content: "I cannot answer that.",
			found:   false,
		},
		{
			name:    "unbalanced object",
			content: `{"approved": true`,
			found:   false,
		},
		{
			name:    "empty content",
			content: "",
			found:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractJSONObject(tt.content)
			require.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}
