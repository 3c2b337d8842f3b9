package app

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/amirasaad/moneyrates/infra/cache"
	memorybus "github.com/amirasaad/moneyrates/infra/eventbus"
	"github.com/amirasaad/moneyrates/internal/fixtures/mocks"
	"github.com/amirasaad/moneyrates/pkg/config"
	"github.com/amirasaad/moneyrates/pkg/domain"
	"github.com/amirasaad/moneyrates/pkg/eventbus"
	"github.com/amirasaad/moneyrates/pkg/metrics"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

func newTestApp(t *testing.T) (*App, *mocks.MockRateClient, *metrics.Metrics) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := mocks.NewMockRateClient(t)
	client.EXPECT().Name().Return("mock").Maybe()
	client.EXPECT().FetchSymbols(mock.Anything).Return([]domain.Symbol{
		{Code: "USD", Description: "United States Dollar"},
		{Code: "EUR", Description: "Euro"},
	}, nil).Maybe()
	client.EXPECT().Convert(mock.Anything, "USD", "EUR", mock.Anything).
		RunAndReturn(func(_ context.Context, _, _ string, amount decimal.Decimal) (float64, error) {
			v, _ := amount.Float64()
			return v * 0.9, nil
		}).Maybe()

	m := metrics.New(prometheus.NewRegistry())
	deps := &Deps{
		Symbols:     cache.NewMemorySymbolCache(),
		RateClient:  client,
		NewEventBus: func() eventbus.Bus { return memorybus.NewWithMemory(logger) },
		Metrics:     m,
		Logger:      logger,
	}
	cfg := &config.App{
		Conversion: &config.Conversion{Debounce: 20 * time.Millisecond, MinAmount: "0.01"},
	}
	a := New(deps, cfg)
	t.Cleanup(a.Close)
	return a, client, m
}

func TestSessionLifecycle(t *testing.T) {
	a, _, m := newTestApp(t)

	s, err := a.OpenSession()
	require.NoError(t, err)
	assert.Equal(t, 1, a.SessionCount())
	assert.InDelta(t, 1, testutil.ToFloat64(m.SessionsOpen), 0)

	got, err := a.Session(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	require.NoError(t, a.CloseSession(s.ID))
	assert.ErrorIs(t, a.CloseSession(s.ID), ErrSessionNotFound)
	_, err = a.Session(s.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = a.Session(uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.InDelta(t, 0, testutil.ToFloat64(m.SessionsOpen), 0)
}

func TestOpenSessionLoadsSymbols(t *testing.T) {
	a, _, _ := newTestApp(t)

	s, err := a.OpenSession()
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		n, err := a.Deps.Symbols.Count(context.Background())
		return err == nil && n == 2 && !s.State().Busy
	}, waitFor, tick)
	assert.Nil(t, s.State().Error)
}

func TestPickAndConvertFlow(t *testing.T) {
	a, _, _ := newTestApp(t)
	s, err := a.OpenSession()
	require.NoError(t, err)

	pick := func(field domain.Field, index int) {
		s.PickRequested(field)
		require.Eventually(t, func() bool {
			p := s.Picker()
			return p != nil && p.Field() == field && p.Loaded().Value()
		}, waitFor, tick)
		st := s.State()
		require.NotNil(t, st.Picker)
		assert.Equal(t, []domain.Symbol{
			{Code: "EUR", Description: "Euro"},
			{Code: "USD", Description: "United States Dollar"},
		}, st.Picker.Symbols)
		s.Picker().Select(index)
		require.Eventually(t, func() bool { return s.Picker() == nil }, waitFor, tick)
	}

	pick(domain.Source, 1)
	pick(domain.Target, 0)
	s.Converter.InputChanged(domain.Source, "100")

	assert.Eventually(t, func() bool {
		return s.State().TargetResult == "90.00"
	}, waitFor, tick)
	st := s.State()
	assert.Equal(t, "United States Dollar", st.SourceTitle)
	assert.Equal(t, "Euro", st.TargetTitle)
	assert.Equal(t, "", st.SourceResult)
}

func TestCloseRejectsNewSessions(t *testing.T) {
	a, _, _ := newTestApp(t)
	_, err := a.OpenSession()
	require.NoError(t, err)

	a.Close()

	assert.Zero(t, a.SessionCount())
	_, err = a.OpenSession()
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
