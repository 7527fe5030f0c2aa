package extractor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talent-utils/pkg/models"
)

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json fence",
			input:    "```json\n{\"full_name\":\"Jane\"}\n```",
			expected: "{\"full_name\":\"Jane\"}",
		},
		{
			name:     "bare fence",
			input:    "```\n{\"full_name\":\"Jane\"}\n```",
			expected: "{\"full_name\":\"Jane\"}",
		},
		{
			name:     "no fence is a no-op",
			input:    "{\"full_name\":\"Jane\"}",
			expected: "{\"full_name\":\"Jane\"}",
		},
		{
			name:     "surrounding whitespace",
			input:    "  ```json\n{}\n```  ",
			expected: "{}",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripCodeFences(tt.input))
		})
	}
}

func TestStripCodeFencesIdempotent(t *testing.T) {
	inputs := []string{
		"```json\n{\"a\":1}\n```",
		"```\n{\"a\":1}\n```",
		"{\"a\":1}",
	}

	for _, input := range inputs {
		once := StripCodeFences(input)
		twice := StripCodeFences(once)
		assert.Equal(t, once, twice)
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"formatted", "+1 (555) 123-4567", "15551234567"},
		{"dots and spaces", "0123.456 789", "0123456789"},
		{"already normalized", "15551234567", "15551234567"},
		{"no digits", "call me", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizePhone(tt.input)
			assert.Equal(t, tt.expected, got)
			// Idempotence
			assert.Equal(t, got, NormalizePhone(got))
		})
	}
}

func TestParseEnvelope(t *testing.T) {
	t.Run("successful envelope with fenced payload", func(t *testing.T) {
		envelope := &models.ExtractionEnvelope{
			IsSuccess:    true,
			GenerateText: "```json\n{\"full_name\":\"Jane Doe\",\"phone\":\"+1 (555) 123-4567\",\"skills\":[\"Go\",\"Redis\"]}\n```",
		}

		candidate, err := ParseEnvelope(envelope)
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", candidate.FullName)
		assert.Equal(t, "15551234567", candidate.Phone)
		assert.Equal(t, []string{"Go", "Redis"}, candidate.Skills)
	})

	t.Run("nil envelope is an extraction failure", func(t *testing.T) {
		_, err := ParseEnvelope(nil)
		assert.ErrorIs(t, err, ErrExtractionFailed)
	})

	t.Run("unsuccessful envelope is an extraction failure", func(t *testing.T) {
		_, err := ParseEnvelope(&models.ExtractionEnvelope{IsSuccess: false, GenerateText: "{}"})
		assert.ErrorIs(t, err, ErrExtractionFailed)
	})

	t.Run("invalid JSON is a malformed payload", func(t *testing.T) {
		_, err := ParseEnvelope(&models.ExtractionEnvelope{IsSuccess: true, GenerateText: "not json at all"})
		assert.ErrorIs(t, err, ErrMalformedPayload)
		assert.False(t, errors.Is(err, ErrExtractionFailed))
	})

	t.Run("empty phone stays empty", func(t *testing.T) {
		candidate, err := ParseEnvelope(&models.ExtractionEnvelope{IsSuccess: true, GenerateText: "{\"full_name\":\"Jane\"}"})
		require.NoError(t, err)
		assert.Empty(t, candidate.Phone)
	})
}
