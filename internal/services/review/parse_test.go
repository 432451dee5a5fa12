package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeLenient(t *testing.T) {
	type payload struct {
		Findings []struct {
			Issue string `json:"issue"`
		} `json:"findings"`
	}

	tests := []struct {
		name    string
		raw     string
		wantErr bool
		count   int
	}{
		{
			name:  "strict JSON",
			raw:   `{"findings": [{"issue": "a"}]}`,
			count: 1,
		},
		{
			name:  "fenced with language tag",
			raw:   "```json\n{\"findings\": [{\"issue\": \"a\"}, {\"issue\": \"b\"}]}\n```",
			count: 2,
		},
		{
			name:  "fenced without language tag",
			raw:   "```\n{\"findings\": []}\n```",
			count: 0,
		},
		{
			name:  "trailing comma in object",
			raw:   `{"findings": [{"issue": "a",}],}`,
			count: 1,
		},
		{
			name:  "fenced with trailing comma",
			raw:   "```json\n{\"findings\": [{\"issue\": \"a\"},]}\n```",
			count: 1,
		},
		{
			name:  "surrounding whitespace",
			raw:   "\n\n  {\"findings\": []}  \n",
			count: 0,
		},
		{
			name:    "garbage",
			raw:     "I could not find any issues with this slide.",
			wantErr: true,
		},
		{
			name:    "truncated JSON",
			raw:     `{"findings": [{"issue":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var parsed payload
			err := decodeLenient(tt.raw, &parsed)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, parsed.Findings, tt.count)
		})
	}
}

func TestDecodeLenient_Array(t *testing.T) {
	var parsed []struct {
		Issue string `json:"issue"`
	}
	err := decodeLenient("```json\n[{\"issue\": \"title overlaps logo\"},]\n```", &parsed)
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, "title overlaps logo", parsed[0].Issue)
}

func TestStripMarkdownFences(t *testing.T) {
	assert.Equal(t, `{"a": 1}`, stripMarkdownFences("```json\n{\"a\": 1}\n```"))
	assert.Equal(t, `{"a": 1}`, stripMarkdownFences("```\n{\"a\": 1}\n```"))
	assert.Equal(t, `{"a": 1}`, stripMarkdownFences(`{"a": 1}`))
	assert.Equal(t, "[]", stripMarkdownFences("  []  "))
}
