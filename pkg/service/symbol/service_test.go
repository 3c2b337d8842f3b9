package symbol

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/amirasaad/moneyrates/infra/cache"
	"github.com/amirasaad/moneyrates/internal/fixtures/mocks"
	"github.com/amirasaad/moneyrates/pkg/domain"
	"github.com/amirasaad/moneyrates/pkg/metrics"
	"github.com/amirasaad/moneyrates/pkg/repository"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var remote = []domain.Symbol{
	{Code: "USD", Description: "United States Dollar"},
	{Code: "EUR", Description: "Euro"},
}

var sorted = []domain.Symbol{
	{Code: "EUR", Description: "Euro"},
	{Code: "USD", Description: "United States Dollar"},
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGetSymbols_CacheHitMakesNoCall(t *testing.T) {
	ctx := context.Background()
	repo := cache.NewMemorySymbolCache()
	require.NoError(t, repo.Reset(ctx, remote))
	client := mocks.NewMockRateClient(t)
	m := metrics.New(prometheus.NewRegistry())

	svc := NewService(repo, client, m, discardLogger())
	got, err := svc.GetSymbols(ctx)

	require.NoError(t, err)
	assert.Equal(t, sorted, got)
	client.AssertNotCalled(t, "FetchSymbols", mock.Anything)
	assert.InDelta(t, 1, testutil.ToFloat64(m.SymbolCacheLookupsTotal.WithLabelValues("hit")), 0)
}

func TestGetSymbols_ColdCacheFetchesOnce(t *testing.T) {
	ctx := context.Background()
	repo := cache.NewMemorySymbolCache()
	client := mocks.NewMockRateClient(t)
	client.EXPECT().Name().Return("mock").Maybe()
	client.EXPECT().FetchSymbols(mock.Anything).Return(remote, nil).Once()

	svc := NewService(repo, client, nil, discardLogger())
	got, err := svc.GetSymbols(ctx)
	require.NoError(t, err)
	assert.Equal(t, sorted, got)

	// second read is served from the cache
	got, err = svc.GetSymbols(ctx)
	require.NoError(t, err)
	assert.Equal(t, sorted, got)
}

func TestGetSymbols_ConcurrentColdCallersShareFetch(t *testing.T) {
	ctx := context.Background()
	repo := cache.NewMemorySymbolCache()
	client := mocks.NewMockRateClient(t)
	client.EXPECT().Name().Return("mock").Maybe()
	client.EXPECT().FetchSymbols(mock.Anything).
		RunAndReturn(func(context.Context) ([]domain.Symbol, error) {
			time.Sleep(50 * time.Millisecond)
			return remote, nil
		}).Once()

	svc := NewService(repo, client, nil, discardLogger())
	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := svc.GetSymbols(ctx)
			assert.NoError(t, err)
			assert.Equal(t, sorted, got)
		}()
	}
	wg.Wait()
}

func TestGetSymbols_CancelledCallerDoesNotFailOthers(t *testing.T) {
	repo := cache.NewMemorySymbolCache()
	client := mocks.NewMockRateClient(t)
	started := make(chan struct{})
	release := make(chan struct{})
	client.EXPECT().Name().Return("mock").Maybe()
	client.EXPECT().FetchSymbols(mock.Anything).
		RunAndReturn(func(ctx context.Context) ([]domain.Symbol, error) {
			close(started)
			<-release
			if err := ctx.Err(); err != nil {
				return nil, &domain.NetworkError{Op: "symbols", Err: err}
			}
			return remote, nil
		}).Once()
	svc := NewService(repo, client, nil, discardLogger())

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := svc.GetSymbols(ctxA)
		errA <- err
	}()
	<-started

	type result struct {
		symbols []domain.Symbol
		err     error
	}
	resB := make(chan result, 1)
	go func() {
		got, err := svc.GetSymbols(context.Background())
		resB <- result{got, err}
	}()

	cancelA()
	select {
	case err := <-errA:
		assert.ErrorIs(t, err, context.Canceled)
		assert.ErrorIs(t, err, domain.ErrNetwork)
	case <-time.After(time.Second):
		t.Fatal("cancelled caller kept waiting")
	}

	close(release)
	select {
	case r := <-resB:
		require.NoError(t, r.err)
		assert.Equal(t, sorted, r.symbols)
	case <-time.After(time.Second):
		t.Fatal("live caller never returned")
	}
	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestGetSymbols_FetchFailureLeavesCacheEmpty(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"network", &domain.NetworkError{Op: "symbols", Err: errors.New("dial tcp: refused")}},
		{"malformed", domain.ErrMalformedResponse},
		{"empty", domain.ErrEmptyResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			repo := cache.NewMemorySymbolCache()
			client := mocks.NewMockRateClient(t)
			client.EXPECT().Name().Return("mock").Maybe()
			client.EXPECT().FetchSymbols(mock.Anything).Return(nil, tt.err).Once()

			svc := NewService(repo, client, nil, discardLogger())
			_, err := svc.GetSymbols(ctx)

			require.ErrorIs(t, err, tt.err)
			n, err := repo.Count(ctx)
			require.NoError(t, err)
			assert.Zero(t, n)
		})
	}
}

func TestFilterSymbols(t *testing.T) {
	ctx := context.Background()
	repo := cache.NewMemorySymbolCache()
	client := mocks.NewMockRateClient(t)
	svc := NewService(repo, client, nil, discardLogger())

	text := "Dollar"
	_, err := svc.FilterSymbols(ctx, &text)
	require.ErrorIs(t, err, domain.ErrEmptyCache)

	all, err := svc.FilterSymbols(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, all)

	require.NoError(t, repo.Reset(ctx, remote))

	got, err := svc.FilterSymbols(ctx, &text)
	require.NoError(t, err)
	assert.Equal(t, []domain.Symbol{{Code: "USD", Description: "United States Dollar"}}, got)

	empty := ""
	got, err = svc.FilterSymbols(ctx, &empty)
	require.NoError(t, err)
	assert.Equal(t, sorted, got)

	got, err = svc.FilterSymbols(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, sorted, got)
}

func TestResetService_TwiceLeavesRemoteSet(t *testing.T) {
	ctx := context.Background()
	repo := cache.NewMemorySymbolCache()
	require.NoError(t, repo.Reset(ctx, []domain.Symbol{{Code: "GBP", Description: "British Pound Sterling"}}))
	client := mocks.NewMockRateClient(t)
	client.EXPECT().FetchSymbols(mock.Anything).Return(remote, nil).Twice()

	reset := NewResetService(repo, client, discardLogger())
	require.NoError(t, reset.Execute(ctx))
	require.NoError(t, reset.Execute(ctx))

	got, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, sorted, got)
}

func TestResetService_FetchFailureKeepsCache(t *testing.T) {
	ctx := context.Background()
	repo := cache.NewMemorySymbolCache()
	require.NoError(t, repo.Reset(ctx, remote))
	client := mocks.NewMockRateClient(t)
	client.EXPECT().FetchSymbols(mock.Anything).Return(nil, domain.ErrMalformedResponse).Once()

	err := NewResetService(repo, client, discardLogger()).Execute(ctx)

	require.ErrorIs(t, err, domain.ErrMalformedResponse)
	got, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, sorted, got)
}

type failingRepo struct {
	repository.SymbolRepository
}

func (failingRepo) Reset(context.Context, []domain.Symbol) error {
	return &domain.CacheWriteError{Err: errors.New("disk full")}
}

func TestResetService_WriteFailureSurfaces(t *testing.T) {
	ctx := context.Background()
	inner := cache.NewMemorySymbolCache()
	require.NoError(t, inner.Reset(ctx, remote))
	client := mocks.NewMockRateClient(t)
	client.EXPECT().FetchSymbols(mock.Anything).Return([]domain.Symbol{{Code: "JPY", Description: "Japanese Yen"}}, nil).Once()

	err := NewResetService(failingRepo{inner}, client, discardLogger()).Execute(ctx)

	require.ErrorIs(t, err, domain.ErrCacheWrite)
	got, err := inner.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, sorted, got)
}
