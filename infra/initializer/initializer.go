package initializer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/amirasaad/moneyrates/infra"
	"github.com/amirasaad/moneyrates/infra/cache"
	infra_eventbus "github.com/amirasaad/moneyrates/infra/eventbus"
	infra_provider "github.com/amirasaad/moneyrates/infra/provider"
	infra_symbol "github.com/amirasaad/moneyrates/infra/repository/symbol"
	"github.com/amirasaad/moneyrates/pkg/app"
	"github.com/amirasaad/moneyrates/pkg/config"
	"github.com/amirasaad/moneyrates/pkg/eventbus"
	"github.com/amirasaad/moneyrates/pkg/metrics"
	"github.com/amirasaad/moneyrates/pkg/provider"
	"github.com/amirasaad/moneyrates/pkg/repository"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// InitializeDependencies initializes all the application dependencies
func InitializeDependencies(cfg *config.App) (
	deps *app.Deps,
	err error,
) {
	logger := setupLogger(cfg.Log)
	return buildDeps(cfg, logger)
}

func buildDeps(cfg *config.App, logger *slog.Logger) (*app.Deps, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	deps := &app.Deps{
		Metrics:  metrics.New(reg),
		Gatherer: reg,
		Logger:   logger,
	}

	store, closer, err := initSymbolStore(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize symbol store: %w", err)
	}
	deps.Symbols = store
	if closer != nil {
		deps.Closers = append(deps.Closers, closer)
	}

	deps.RateClient, err = initRateClient(cfg.ExchangeRateApi, deps.Metrics, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize rate client: %w", err)
	}

	deps.NewEventBus = func() eventbus.Bus {
		return infra_eventbus.NewWithMemory(logger)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if count, err := store.Count(ctx); err != nil {
		logger.Warn("Failed to check symbol store count", "error", err)
	} else {
		logger.Info("Symbol store ready",
			"driver", cfg.Store.Driver,
			"cached_symbols", count,
			"rate_client", deps.RateClient.Name())
	}
	return deps, nil
}

// initSymbolStore picks the symbol cache backend. The returned closer is nil
// for the in-process store.
func initSymbolStore(cfg *config.App, logger *slog.Logger) (
	repository.SymbolRepository,
	io.Closer,
	error,
) {
	switch cfg.Store.Driver {
	case "", "memory":
		return cache.NewMemorySymbolCache(), nil, nil
	case "sqlite", "postgres":
		db, err := infra.NewDBConnection(cfg.Store, cfg.Env)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		return infra_symbol.New(db), sqlDB, nil
	case "redis":
		c, err := cache.NewRedisSymbolCacheFromURL(cfg.Redis.URL, cfg.Redis.KeyPrefix, logger)
		if err != nil {
			return nil, nil, err
		}
		return c, c, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

func initRateClient(
	cfg *config.ExchangeRateApi,
	m *metrics.Metrics,
	logger *slog.Logger,
) (provider.RateClient, error) {
	switch cfg.Provider {
	case "", "exchangerate_host":
		return infra_provider.NewExchangeRateHostClient(cfg, m, logger), nil
	case "fake":
		logger.Warn("Using the fake rate client; conversions are not live")
		return infra_provider.NewFakeRateClient(), nil
	default:
		return nil, fmt.Errorf("unknown rate provider %q", cfg.Provider)
	}
}
