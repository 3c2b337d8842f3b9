// Package symbol serves the currency symbol table from the local cache,
// populating it from the rate client when it is empty.
package symbol

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/amirasaad/moneyrates/pkg/domain"
	"github.com/amirasaad/moneyrates/pkg/metrics"
	"github.com/amirasaad/moneyrates/pkg/provider"
	"github.com/amirasaad/moneyrates/pkg/repository"
	"golang.org/x/sync/singleflight"
)

// Service reads symbols cache-first.
type Service struct {
	repo    repository.SymbolRepository
	client  provider.RateClient
	metrics *metrics.Metrics
	logger  *slog.Logger
	group   singleflight.Group
}

// NewService creates a Service. m may be nil.
func NewService(
	repo repository.SymbolRepository,
	client provider.RateClient,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:    repo,
		client:  client,
		metrics: m,
		logger:  logger.With("service", "symbol"),
	}
}

// GetSymbols returns the cached symbols, fetching and storing them first when
// the cache is empty. Concurrent cold-cache callers share one fetch.
func (s *Service) GetSymbols(ctx context.Context) ([]domain.Symbol, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count symbols: %w", err)
	}
	s.metrics.CacheLookup(n > 0)
	if n > 0 {
		return s.repo.GetAll(ctx)
	}

	// the shared fetch outlives any single caller; each caller stops
	// waiting on its own ctx
	fetchCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan("populate", func() (any, error) {
		// another caller may have populated it while we waited
		if n, err := s.repo.Count(fetchCtx); err == nil && n > 0 {
			return nil, nil
		}
		s.logger.Info("Symbol cache empty, fetching from provider", "provider", s.client.Name())
		return nil, fetchAndReset(fetchCtx, s.client, s.repo)
	})
	select {
	case <-ctx.Done():
		return nil, &domain.NetworkError{Op: "symbols", Err: ctx.Err()}
	case res := <-ch:
		if res.Err != nil {
			s.logger.Error("Failed to populate symbol cache", "error", res.Err, "shared", res.Shared)
			return nil, res.Err
		}
	}
	return s.repo.GetAll(ctx)
}

// FilterSymbols returns the symbols whose description contains text. A nil
// text returns the whole cached set; otherwise the cache must be populated.
func (s *Service) FilterSymbols(ctx context.Context, text *string) ([]domain.Symbol, error) {
	if text == nil {
		return s.repo.GetAll(ctx)
	}
	n, err := s.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count symbols: %w", err)
	}
	if n == 0 {
		return nil, domain.ErrEmptyCache
	}
	return s.repo.Filter(ctx, *text)
}

func fetchAndReset(ctx context.Context, client provider.RateClient, repo repository.SymbolRepository) error {
	symbols, err := client.FetchSymbols(ctx)
	if err != nil {
		return err
	}
	return repo.Reset(ctx, symbols)
}
