package llm_test

import (
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"piiguard/internal/llm"
)

func TestRateLimitError_Error(t *testing.T) {
	err := llm.NewRateLimitError("ollama", errors.New("too many requests"), 30)

	assert.Equal(t, "ollama rate limited (retry after 30s): too many requests", err.Error())
}

func TestRateLimitError_Unwrap(t *testing.T) {
	inner := errors.New("inner error")
	err := llm.NewRateLimitError("openai", inner, 10)

	assert.ErrorIs(t, err, inner)
}

func TestNewRateLimitError_DefaultRetryAfter(t *testing.T) {
	err := llm.NewRateLimitError("ollama", errors.New("rate limited"), 0)

	assert.Equal(t, 60*time.Second, err.RetryAfter)
}

func TestParseRetryAfterHeader(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{"empty", "", 0},
		{"valid integer", "30", 30},
		{"not a number", "abc", 0},
		{"http date", "Wed, 21 Oct 2015 07:28:00 GMT", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, llm.ParseRetryAfterHeader(tt.input))
		})
	}
}

func TestStatusError_TruncatesBody(t *testing.T) {
	err := &llm.StatusError{Provider: "ollama", StatusCode: 500, Body: strings.Repeat("x", 600)}

	msg := err.Error()
	assert.True(t, strings.HasPrefix(msg, "ollama API error (status 500): "))
	assert.True(t, strings.HasSuffix(msg, "..."))
	assert.Len(t, msg, len("ollama API error (status 500): ")+500+3)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", llm.Truncate("short", 10))
	assert.Equal(t, "abc...", llm.Truncate("abcdef", 3))
}

func TestTruncate_KeepsRunesWhole(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{"cut inside two-byte rune", "héllo", 2, "h..."},
		{"cut after two-byte rune", "héllo", 3, "hé..."},
		{"cut inside three-byte rune", "東京です", 4, "東..."},
		{"cut inside first rune", "東京", 1, "..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := llm.Truncate(tt.input, tt.maxLen)
			assert.Equal(t, tt.expected, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

func TestStatusError_MultiByteBodyStaysValid(t *testing.T) {
	err := &llm.StatusError{Provider: "openai", StatusCode: 502, Body: "x" + strings.Repeat("é", 300)}

	msg := err.Error()
	assert.True(t, utf8.ValidString(msg))
	assert.True(t, strings.HasSuffix(msg, "é..."))
}
