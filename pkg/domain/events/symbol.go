package events

import "github.com/amirasaad/moneyrates/pkg/domain"

const (
	// EventTypePickRequested is emitted when the user asks to choose a currency for a field.
	EventTypePickRequested EventType = "Symbol.PickRequested"
	// EventTypeSymbolSelected is emitted when the picker resolves a choice for a field.
	EventTypeSymbolSelected EventType = "Symbol.Selected"
)

// PickRequested asks the session coordinator to open a picker for Field.
type PickRequested struct {
	Field domain.Field
}

func (e PickRequested) Type() string { return EventTypePickRequested.String() }

// SymbolSelected carries the picker's choice back to the conversion form.
type SymbolSelected struct {
	Field  domain.Field
	Symbol domain.Symbol
}

func (e SymbolSelected) Type() string { return EventTypeSymbolSelected.String() }
