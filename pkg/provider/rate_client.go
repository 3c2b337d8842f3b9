package provider

import (
	"context"

	"github.com/amirasaad/moneyrates/pkg/domain"
	"github.com/shopspring/decimal"
)

// RateClient talks to the remote exchange-rate API.
//
// Failures wrap one of domain.ErrNetwork, domain.ErrEmptyResponse or
// domain.ErrMalformedResponse.
type RateClient interface {
	// FetchSymbols lists every currency the API knows about.
	FetchSymbols(ctx context.Context) ([]domain.Symbol, error)
	// Convert converts amount from one currency code to another.
	Convert(ctx context.Context, from, to string, amount decimal.Decimal) (float64, error)
	// Name identifies the provider in logs.
	Name() string
}
