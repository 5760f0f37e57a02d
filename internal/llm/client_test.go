package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain JSON untouched",
			input:    `{"title": "Engineer"}`,
			expected: `{"title": "Engineer"}`,
		},
		{
			name:     "json fenced block",
			input:    "```json\n{\"title\": \"Engineer\"}\n```",
			expected: `{"title": "Engineer"}`,
		},
		{
			name:     "bare fenced block",
			input:    "```\n{\"title\": \"Engineer\"}\n```",
			expected: `{"title": "Engineer"}`,
		},
		{
			name:     "other language tag",
			input:    "```javascript\n{\"title\": \"Engineer\"}\n```",
			expected: `{"title": "Engineer"}`,
		},
		{
			name:     "surrounding whitespace",
			input:    "\n\n  {\"a\": 1}  \n",
			expected: `{"a": 1}`,
		},
		{
			name:     "payload on the opening fence line",
			input:    "```{\"a\": 1}```",
			expected: `{"a": 1}`,
		},
		{
			name:     "single-line json fence",
			input:    "```json{\"a\": 1}```",
			expected: `{"a": 1}`,
		},
		{
			name:     "array payload",
			input:    "```json\n[1, 2]\n```",
			expected: `[1, 2]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, stripFences(tt.input))
		})
	}
}
