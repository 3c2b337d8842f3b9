package app

import (
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/amirasaad/moneyrates/pkg/config"
	"github.com/amirasaad/moneyrates/pkg/eventbus"
	"github.com/amirasaad/moneyrates/pkg/metrics"
	"github.com/amirasaad/moneyrates/pkg/orchestrator/converter"
	"github.com/amirasaad/moneyrates/pkg/provider"
	"github.com/amirasaad/moneyrates/pkg/repository"
	"github.com/amirasaad/moneyrates/pkg/service/conversion"
	"github.com/amirasaad/moneyrates/pkg/service/symbol"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

// ErrSessionNotFound is returned for unknown or closed session ids.
var ErrSessionNotFound = errors.New("session not found")

// Deps contains all the dependencies needed to build the App.
// NewEventBus returns a fresh bus for each session; Gatherer backs /metrics.
// Closers are released by App.Close.
type Deps struct {
	Symbols     repository.SymbolRepository
	RateClient  provider.RateClient
	NewEventBus func() eventbus.Bus
	Metrics     *metrics.Metrics
	Gatherer    prometheus.Gatherer
	Logger      *slog.Logger
	Closers     []io.Closer
}

type App struct {
	Deps              *Deps
	Config            *config.App
	SymbolService     *symbol.Service
	ResetService      *symbol.ResetService
	ConversionService *conversion.Service

	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	closed   bool
}

func New(deps *Deps, cfg *config.App) *App {
	minAmount := cfg.Conversion.MinAmountDecimal()
	return &App{
		Deps:              deps,
		Config:            cfg,
		SymbolService:     symbol.NewService(deps.Symbols, deps.RateClient, deps.Metrics, deps.Logger),
		ResetService:      symbol.NewResetService(deps.Symbols, deps.RateClient, deps.Logger),
		ConversionService: conversion.NewService(deps.RateClient, minAmount, deps.Metrics, deps.Logger),
		sessions:          make(map[uuid.UUID]*Session),
	}
}

// OpenSession starts a conversion form and loads the symbol table for it.
func (a *App) OpenSession() (*Session, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return nil, ErrSessionNotFound
	}

	s := newSession(a, converter.Options{
		Debounce:  a.Config.Conversion.Debounce,
		MinAmount: a.ConversionService.MinAmount(),
	})
	a.sessions[s.ID] = s
	a.Deps.Metrics.SessionOpened()
	a.Deps.Logger.Info("Session opened", "session", s.ID)

	s.Converter.Load()
	return s, nil
}

// Session returns the open session with the given id.
func (a *App) Session(id uuid.UUID) (*Session, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	s, ok := a.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// CloseSession stops the session and forgets it.
func (a *App) CloseSession(id uuid.UUID) error {
	a.mu.Lock()
	s, ok := a.sessions[id]
	delete(a.sessions, id)
	a.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}

	s.close()
	a.Deps.Metrics.SessionClosed()
	a.Deps.Logger.Info("Session closed", "session", id)
	return nil
}

// SessionCount reports how many sessions are open.
func (a *App) SessionCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.sessions)
}

// Close stops every open session and releases the store connections.
// OpenSession fails afterwards.
func (a *App) Close() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.closed = true
	ids := make([]uuid.UUID, 0, len(a.sessions))
	for id := range a.sessions {
		ids = append(ids, id)
	}
	a.mu.Unlock()

	for _, id := range ids {
		_ = a.CloseSession(id)
	}
	for _, c := range a.Deps.Closers {
		if err := c.Close(); err != nil {
			a.Deps.Logger.Warn("Failed to close dependency", "error", err)
		}
	}
}
