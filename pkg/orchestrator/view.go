// Package orchestrator holds the view values shared by the conversion form
// and the symbol picker.
package orchestrator

import (
	"errors"
	"fmt"

	"github.com/amirasaad/moneyrates/pkg/domain"
)

// AmountView is a conversion result ready for display.
type AmountView struct {
	Value float64 `json:"value"`
}

// String formats the amount with two decimals.
func (a AmountView) String() string {
	return fmt.Sprintf("%.2f", a.Value)
}

// ErrorView is a failure ready for display.
type ErrorView struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

const DefaultErrorTitle = "An Error Occurred"

// NewErrorView maps err to a display title by kind. Unknown kinds get
// DefaultErrorTitle. A nil err yields nil.
func NewErrorView(err error) *ErrorView {
	if err == nil {
		return nil
	}
	title := DefaultErrorTitle
	switch {
	case errors.Is(err, domain.ErrNetwork):
		title = "Network Error"
	case errors.Is(err, domain.ErrEmptyResponse):
		title = "No Data"
	case errors.Is(err, domain.ErrMalformedResponse):
		title = "Unexpected Response"
	case errors.Is(err, domain.ErrCacheWrite):
		title = "Storage Error"
	case errors.Is(err, domain.ErrEmptyCache):
		title = "No Currencies"
	case errors.Is(err, domain.ErrInvalidInput):
		title = "Invalid Input"
	}
	return &ErrorView{Title: title, Description: err.Error()}
}
