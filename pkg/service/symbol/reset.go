package symbol

import (
	"context"
	"log/slog"

	"github.com/amirasaad/moneyrates/pkg/provider"
	"github.com/amirasaad/moneyrates/pkg/repository"
)

// ResetService refreshes the symbol cache from the provider unconditionally.
type ResetService struct {
	repo   repository.SymbolRepository
	client provider.RateClient
	logger *slog.Logger
}

func NewResetService(
	repo repository.SymbolRepository,
	client provider.RateClient,
	logger *slog.Logger,
) *ResetService {
	return &ResetService{
		repo:   repo,
		client: client,
		logger: logger.With("service", "symbol_reset"),
	}
}

// Execute fetches the symbol table and replaces the cache with it. On any
// failure the previous cache contents stay in place.
func (s *ResetService) Execute(ctx context.Context) error {
	if err := fetchAndReset(ctx, s.client, s.repo); err != nil {
		s.logger.Warn("Symbol reset failed", "error", err)
		return err
	}
	s.logger.Info("Symbol cache reset")
	return nil
}
