package testutils

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amirasaad/moneyrates/infra/cache"
	memorybus "github.com/amirasaad/moneyrates/infra/eventbus"
	"github.com/amirasaad/moneyrates/infra/provider"
	"github.com/amirasaad/moneyrates/pkg/app"
	"github.com/amirasaad/moneyrates/pkg/config"
	"github.com/amirasaad/moneyrates/pkg/eventbus"
	"github.com/amirasaad/moneyrates/pkg/metrics"
	"github.com/amirasaad/moneyrates/webapi"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

// TestConfig returns a config with a short debounce and a generous rate
// limit.
func TestConfig() *config.App {
	return &config.App{
		Env:             "test",
		Server:          &config.Server{Port: 3000},
		Log:             &config.Log{},
		ExchangeRateApi: &config.ExchangeRateApi{Provider: "fake"},
		Store:           &config.Store{Driver: "memory"},
		Redis:           &config.Redis{},
		Conversion:      &config.Conversion{Debounce: 20 * time.Millisecond, MinAmount: "0.01"},
		RateLimit:       &config.RateLimit{MaxRequests: 1000, Window: time.Second},
	}
}

// NewTestApp wires the fake rate client and an in-memory cache behind the
// HTTP API.
func NewTestApp(t testing.TB, cfg *config.App) (*app.App, *fiber.App) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := prometheus.NewRegistry()
	deps := &app.Deps{
		Symbols:     cache.NewMemorySymbolCache(),
		RateClient:  provider.NewFakeRateClient(),
		NewEventBus: func() eventbus.Bus { return memorybus.NewWithMemory(logger) },
		Metrics:     metrics.New(reg),
		Gatherer:    reg,
		Logger:      logger,
	}
	a := app.New(deps, cfg)
	t.Cleanup(a.Close)
	return a, webapi.SetupApp(a)
}

// MakeRequest is a helper for making HTTP requests in tests
func MakeRequest(t testing.TB, f *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	resp, err := f.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// DecodeData decodes the data member of a Response envelope into out.
func DecodeData(t testing.TB, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close() //nolint:errcheck
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}
