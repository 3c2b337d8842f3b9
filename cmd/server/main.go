package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amirasaad/moneyrates/infra/initializer"
	"github.com/amirasaad/moneyrates/pkg/app"
	"github.com/amirasaad/moneyrates/pkg/config"
	"github.com/amirasaad/moneyrates/webapi"
	log "github.com/charmbracelet/log"
)

const shutdownTimeout = 10 * time.Second

// @title MoneyRates API
// @version 1.0.0
// @description Currency conversion sessions backed by exchangerate.host
// @contact.name API Support
// @license.name MIT
// @host localhost:3000
// @BasePath /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	logger := deps.Logger

	a := app.New(deps, cfg)
	defer a.Close()

	fiberApp := webapi.SetupApp(a)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	return serve(ctx, fiberApp, addr, logger, cfg)
}

type server interface {
	Listen(addr string) error
	ShutdownWithTimeout(timeout time.Duration) error
}

// serve blocks until the listener fails or ctx is done, then drains
// in-flight requests.
func serve(ctx context.Context, s server, addr string, logger *slog.Logger, cfg *config.App) error {
	logger.Info("Starting server",
		"env", cfg.Env,
		"address", addr,
		"scheme", cfg.Server.Scheme,
	)

	errc := make(chan error, 1)
	go func() { errc <- s.Listen(addr) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server", "timeout", shutdownTimeout)
	if err := s.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
