// Package conversion converts amounts between currencies through the rate
// client, short-circuiting amounts too small to be worth a request.
package conversion

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/amirasaad/moneyrates/pkg/domain"
	"github.com/amirasaad/moneyrates/pkg/metrics"
	"github.com/amirasaad/moneyrates/pkg/provider"
	"github.com/shopspring/decimal"
)

type Service struct {
	client    provider.RateClient
	minAmount decimal.Decimal
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// NewService creates a conversion service. Amounts below minAmount convert to
// zero without calling the client.
func NewService(
	client provider.RateClient,
	minAmount decimal.Decimal,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Service {
	return &Service{
		client:    client,
		minAmount: minAmount,
		metrics:   m,
		logger:    logger.With("service", "conversion"),
	}
}

// MinAmount is the smallest amount that is sent to the provider.
func (s *Service) MinAmount() decimal.Decimal {
	return s.minAmount
}

// Execute converts amount from source to target. Provider errors are returned
// unchanged.
func (s *Service) Execute(ctx context.Context, source, target string, amount decimal.Decimal) (float64, error) {
	if amount.IsNegative() {
		return 0, fmt.Errorf("%w: negative amount %s", domain.ErrInvalidInput, amount)
	}
	source = strings.TrimSpace(source)
	target = strings.TrimSpace(target)
	if source == "" || target == "" {
		return 0, fmt.Errorf("%w: currency code required", domain.ErrInvalidInput)
	}

	if amount.LessThan(s.minAmount) {
		s.metrics.Conversion(metrics.ConversionShortCircuit)
		return 0, nil
	}
	if source == target {
		s.metrics.Conversion(metrics.ConversionShortCircuit)
		f, _ := amount.Float64()
		return f, nil
	}

	result, err := s.client.Convert(ctx, source, target, amount)
	if err != nil {
		s.logger.Debug("Conversion failed", "from", source, "to", target, "error", err)
		return 0, err
	}
	return result, nil
}
