package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Field identifies one side of the conversion form.
type Field int

const (
	Source Field = iota
	Target
)

func (f Field) String() string {
	if f == Target {
		return "target"
	}
	return "source"
}

// Opposite returns the other side of the form.
func (f Field) Opposite() Field {
	if f == Source {
		return Target
	}
	return Source
}

// ParseField accepts "source" or "target", case-insensitively.
func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "source":
		return Source, nil
	case "target":
		return Target, nil
	}
	return Source, fmt.Errorf("%w: unknown field %q", ErrInvalidInput, s)
}

// ConversionRequest is one debounced conversion attempt. Direction is the field
// the amount was typed into; the result belongs to the opposite field.
type ConversionRequest struct {
	ID        uuid.UUID
	Source    string
	Target    string
	Amount    decimal.Decimal
	Direction Field
}
