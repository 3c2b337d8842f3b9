package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"integer", "123", "123"},
		{"decimal point", "12.5", "12.5"},
		{"decimal comma", "12,5", "12.5"},
		{"whitespace", "  7 ", "7"},
		{"zero", "0", "0"},
		{"leading dot", ".5", "0.5"},
		{"at length limit", "1234567890123456789012345678.901", "1234567890123456789012345678.901"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseAmount(tc.input)
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tc.want).Equal(got), "got %s", got)
		})
	}
}

func TestParseAmount_Invalid(t *testing.T) {
	for _, input := range []string{
		"", "   ", "abc", "1.2.3", "-5", "1,2,3", ".", "+5",
		"1e9999999", "1E999999999", "1e-5", "0x10", "1_000",
		"1234567890123456789012345678.9012",
	} {
		_, err := ParseAmount(input)
		assert.ErrorIs(t, err, ErrInvalidInput, "input %q", input)
	}
}

func TestParseField(t *testing.T) {
	f, err := ParseField("Target")
	require.NoError(t, err)
	assert.Equal(t, Target, f)
	assert.Equal(t, Source, f.Opposite())

	_, err = ParseField("middle")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
