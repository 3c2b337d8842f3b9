package provider

import (
	"context"
	"fmt"

	"github.com/amirasaad/moneyrates/pkg/domain"
	"github.com/amirasaad/moneyrates/pkg/provider"
	"github.com/shopspring/decimal"
)

// FakeRateClient serves a fixed symbol table and USD-based rates. It is used
// for local runs without network access.
type FakeRateClient struct {
	symbols []domain.Symbol
	usd     map[string]decimal.Decimal
}

func NewFakeRateClient() *FakeRateClient {
	return &FakeRateClient{
		symbols: []domain.Symbol{
			{Code: "EUR", Description: "Euro"},
			{Code: "GBP", Description: "British Pound Sterling"},
			{Code: "JPY", Description: "Japanese Yen"},
			{Code: "USD", Description: "United States Dollar"},
		},
		usd: map[string]decimal.Decimal{
			"USD": decimal.NewFromInt(1),
			"EUR": decimal.RequireFromString("0.92"),
			"GBP": decimal.RequireFromString("0.79"),
			"JPY": decimal.RequireFromString("151.5"),
		},
	}
}

func (f *FakeRateClient) FetchSymbols(ctx context.Context) ([]domain.Symbol, error) {
	if err := ctx.Err(); err != nil {
		return nil, &domain.NetworkError{Op: endpointSymbols, Err: err}
	}
	out := make([]domain.Symbol, len(f.symbols))
	copy(out, f.symbols)
	return out, nil
}

func (f *FakeRateClient) Convert(ctx context.Context, from, to string, amount decimal.Decimal) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, &domain.NetworkError{Op: endpointConvert, Err: err}
	}
	fromRate, ok := f.usd[from]
	if !ok {
		return 0, fmt.Errorf("%w: unknown currency %s", domain.ErrMalformedResponse, from)
	}
	toRate, ok := f.usd[to]
	if !ok {
		return 0, fmt.Errorf("%w: unknown currency %s", domain.ErrMalformedResponse, to)
	}
	result, _ := amount.Div(fromRate).Mul(toRate).Float64()
	return result, nil
}

func (f *FakeRateClient) Name() string {
	return "fake"
}

var _ provider.RateClient = (*FakeRateClient)(nil)
