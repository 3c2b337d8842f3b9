package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultMinAmount is the smallest amount worth sending upstream.
var DefaultMinAmount = decimal.RequireFromString("0.01")

// MaxAmountLength bounds the typed text so amounts stay a few machine words.
const MaxAmountLength = 32

// ParseAmount parses user typed text into a non-negative amount.
// Surrounding whitespace is ignored and a single comma is accepted as the
// decimal separator. Only plain decimal text is accepted: no sign, no
// exponent, at most MaxAmountLength characters.
func ParseAmount(text string) (decimal.Decimal, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty amount", ErrInvalidInput)
	}
	if len(s) > MaxAmountLength {
		return decimal.Zero, fmt.Errorf("%w: amount longer than %d characters", ErrInvalidInput, MaxAmountLength)
	}
	if strings.HasPrefix(s, "-") {
		return decimal.Zero, fmt.Errorf("%w: negative amount %s", ErrInvalidInput, s)
	}
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	if !isPlainDecimal(s) {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", ErrInvalidInput, text)
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", ErrInvalidInput, text)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: negative amount %s", ErrInvalidInput, amount)
	}
	return amount, nil
}

// isPlainDecimal reports whether s is digits with at most one '.' and at
// least one digit.
func isPlainDecimal(s string) bool {
	digits, dots := 0, 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}
