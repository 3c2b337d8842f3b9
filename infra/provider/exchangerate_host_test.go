package provider

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amirasaad/moneyrates/pkg/config"
	"github.com/amirasaad/moneyrates/pkg/domain"
	"github.com/amirasaad/moneyrates/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*ExchangeRateHostClient, *metrics.Metrics) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	m := metrics.New(prometheus.NewRegistry())
	cfg := &config.ExchangeRateApi{
		ApiUrl:    srv.URL,
		ApiKey:    "test-key",
		BurstSize: 1,
	}
	return NewExchangeRateHostClient(cfg, m, slog.New(slog.NewTextHandler(io.Discard, nil))), m
}

func respond(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func TestFetchSymbols(t *testing.T) {
	var gotPath, gotKey string
	client, m := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("access_key")
		respond(http.StatusOK, `{
			"success": true,
			"symbols": {
				"USD": {"code": "USD", "description": "United States Dollar"},
				"EUR": {"description": "Euro"},
				"XXX": {"code": "XXX"}
			}
		}`)(w, r)
	})

	symbols, err := client.FetchSymbols(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/symbols", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.ElementsMatch(t, []domain.Symbol{
		{Code: "USD", Description: "United States Dollar"},
		{Code: "EUR", Description: "Euro"},
	}, symbols)
	assert.InDelta(t, 1, testutil.ToFloat64(m.UpstreamRequestsTotal.WithLabelValues("symbols", "ok")), 0)
}

func TestFetchSymbols_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    error
	}{
		{"missing symbols key", respond(http.StatusOK, `{"success": true}`), domain.ErrMalformedResponse},
		{"symbols not an object", respond(http.StatusOK, `{"symbols": []}`), domain.ErrMalformedResponse},
		{"invalid json", respond(http.StatusOK, `{"symbols": `), domain.ErrMalformedResponse},
		{"success false", respond(http.StatusOK, `{"success": false, "error": {"info": "bad key"}}`), domain.ErrMalformedResponse},
		{"zero symbols", respond(http.StatusOK, `{"symbols": {}}`), domain.ErrEmptyResponse},
		{"empty body", respond(http.StatusOK, ``), domain.ErrEmptyResponse},
		{"server error", respond(http.StatusInternalServerError, `{}`), domain.ErrNetwork},
		{"not found", respond(http.StatusNotFound, ``), domain.ErrNetwork},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, tt.handler)
			_, err := client.FetchSymbols(context.Background())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestFetchSymbols_Unreachable(t *testing.T) {
	cfg := &config.ExchangeRateApi{ApiUrl: "http://127.0.0.1:1", BurstSize: 1}
	client := NewExchangeRateHostClient(cfg, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := client.FetchSymbols(context.Background())
	var netErr *domain.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, "symbols", netErr.Op)
}

func TestConvert(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/convert", r.URL.Path)
		assert.Equal(t, "USD", q.Get("from"))
		assert.Equal(t, "EUR", q.Get("to"))
		assert.Equal(t, "123", q.Get("amount"))
		respond(http.StatusOK, `{"success": true, "result": 113.16}`)(w, r)
	})

	got, err := client.Convert(context.Background(), "USD", "EUR", decimal.NewFromInt(123))
	require.NoError(t, err)
	assert.InDelta(t, 113.16, got, 1e-9)
}

func TestConvert_NonNumericResult(t *testing.T) {
	client, _ := newTestClient(t, respond(http.StatusOK, `{"result": "n/a"}`))

	_, err := client.Convert(context.Background(), "USD", "EUR", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
}

func TestConvert_Canceled(t *testing.T) {
	release := make(chan struct{})
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := client.Convert(ctx, "USD", "EUR", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrNetwork)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestFakeRateClient(t *testing.T) {
	f := NewFakeRateClient()

	symbols, err := f.FetchSymbols(context.Background())
	require.NoError(t, err)
	assert.Len(t, symbols, 4)

	got, err := f.Convert(context.Background(), "USD", "EUR", decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.InDelta(t, 92, got, 1e-9)

	_, err = f.Convert(context.Background(), "USD", "ZZZ", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
}
