package picker

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/amirasaad/moneyrates/infra/cache"
	memorybus "github.com/amirasaad/moneyrates/infra/eventbus"
	"github.com/amirasaad/moneyrates/internal/fixtures/mocks"
	"github.com/amirasaad/moneyrates/pkg/domain"
	"github.com/amirasaad/moneyrates/pkg/domain/events"
	"github.com/amirasaad/moneyrates/pkg/eventbus"
	"github.com/amirasaad/moneyrates/pkg/service/symbol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

type PickerTestSuite struct {
	suite.Suite
	client *mocks.MockRateClient
	bus    *memorybus.MemoryEventBus
	picker *Orchestrator
}

func (s *PickerTestSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.client = mocks.NewMockRateClient(s.T())
	s.client.EXPECT().Name().Return("mock").Maybe()
	s.client.EXPECT().FetchSymbols(mock.Anything).Return([]domain.Symbol{
		{Code: "USD", Description: "United States Dollar"},
		{Code: "EUR", Description: "Euro"},
	}, nil).Once()

	svc := symbol.NewService(cache.NewMemorySymbolCache(), s.client, nil, logger)
	s.bus = memorybus.NewWithMemory(logger, memorybus.WithRecording())
	s.picker = New(domain.Target, svc, s.bus, logger)
}

func (s *PickerTestSuite) TearDownTest() {
	s.picker.Close()
}

func (s *PickerTestSuite) descriptions() []string {
	var out []string
	for _, sym := range s.picker.Symbols().Value() {
		out = append(out, sym.Description)
	}
	return out
}

func (s *PickerTestSuite) load() {
	s.picker.Load()
	s.Require().Eventually(func() bool { return s.picker.Loaded().Value() }, waitFor, tick)
}

func (s *PickerTestSuite) TestLoadSortsByDescription() {
	s.load()
	s.Equal([]string{"Euro", "United States Dollar"}, s.descriptions())
	s.False(s.picker.SearchEnabled().Value())
	s.Nil(s.picker.Error().Value())
}

func (s *PickerTestSuite) TestSearchAndCancel() {
	s.load()

	s.picker.Search("Dollar")
	s.Eventually(func() bool { return len(s.picker.Symbols().Value()) == 1 }, waitFor, tick)
	s.Equal([]string{"United States Dollar"}, s.descriptions())
	s.True(s.picker.SearchEnabled().Value())

	s.picker.Search("")
	s.Eventually(func() bool { return len(s.picker.Symbols().Value()) == 2 }, waitFor, tick)
	s.True(s.picker.SearchEnabled().Value())

	s.picker.Search("zzz")
	s.Eventually(func() bool { return len(s.picker.Symbols().Value()) == 0 }, waitFor, tick)

	s.picker.CancelSearch()
	s.picker.Flush()
	s.False(s.picker.SearchEnabled().Value())
	s.Eventually(func() bool { return len(s.picker.Symbols().Value()) == 2 }, waitFor, tick)
	s.Equal([]string{"Euro", "United States Dollar"}, s.descriptions())
}

func (s *PickerTestSuite) TestSelectEmitsChosenSymbol() {
	got := make(chan events.SymbolSelected, 1)
	s.bus.Register(events.EventTypeSymbolSelected.String(), func(_ context.Context, e eventbus.Event) error {
		got <- e.(events.SymbolSelected)
		return nil
	})
	s.load()

	s.picker.Select(1)

	select {
	case ev := <-got:
		s.Equal(domain.Target, ev.Field)
		s.Equal(domain.Symbol{Code: "USD", Description: "United States Dollar"}, ev.Symbol)
	case <-time.After(waitFor):
		s.Fail("no selection emitted")
	}
}

func (s *PickerTestSuite) TestSelectOutOfRangeIsIgnored() {
	s.load()

	s.picker.Select(2)
	s.picker.Select(-1)
	s.picker.Flush()

	s.Empty(s.bus.Published())
	s.Nil(s.picker.Error().Value())
}

func TestPickerTestSuite(t *testing.T) {
	suite.Run(t, new(PickerTestSuite))
}

type stubSource struct {
	get    func(ctx context.Context) ([]domain.Symbol, error)
	filter func(ctx context.Context, text *string) ([]domain.Symbol, error)
}

func (s stubSource) GetSymbols(ctx context.Context) ([]domain.Symbol, error) { return s.get(ctx) }
func (s stubSource) FilterSymbols(ctx context.Context, text *string) ([]domain.Symbol, error) {
	return s.filter(ctx, text)
}

func TestLateListDoesNotOverwriteNewer(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	release := make(chan struct{})
	src := stubSource{
		get: func(context.Context) ([]domain.Symbol, error) {
			<-release
			return []domain.Symbol{{Code: "EUR", Description: "Euro"}, {Code: "USD", Description: "United States Dollar"}}, nil
		},
		filter: func(_ context.Context, _ *string) ([]domain.Symbol, error) {
			return []domain.Symbol{{Code: "USD", Description: "United States Dollar"}}, nil
		},
	}
	p := New(domain.Source, src, memorybus.NewWithMemory(logger), logger)
	defer p.Close()

	p.Load()
	p.Search("Dollar")
	assert.Eventually(t, func() bool { return len(p.Symbols().Value()) == 1 }, waitFor, tick)

	close(release)
	time.Sleep(50 * time.Millisecond)
	p.Flush()

	require.Len(t, p.Symbols().Value(), 1)
	assert.Equal(t, "USD", p.Symbols().Value()[0].Code)
	assert.False(t, p.Loaded().Value())
}

func TestLoadFailureIsReported(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	src := stubSource{
		get: func(context.Context) ([]domain.Symbol, error) {
			return nil, &domain.NetworkError{Op: "symbols"}
		},
	}
	p := New(domain.Source, src, memorybus.NewWithMemory(logger), logger)
	defer p.Close()

	p.Load()

	assert.Eventually(t, func() bool { return p.Error().Value() != nil }, waitFor, tick)
	assert.Equal(t, "Network Error", p.Error().Value().Title)
	assert.False(t, p.Loaded().Value())
}

func TestCancelSearchLeavesSearchModeOnFailure(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	src := stubSource{
		filter: func(_ context.Context, text *string) ([]domain.Symbol, error) {
			if text == nil {
				return nil, domain.ErrMalformedResponse
			}
			return []domain.Symbol{{Code: "USD", Description: "United States Dollar"}}, nil
		},
	}
	p := New(domain.Source, src, memorybus.NewWithMemory(logger), logger)
	defer p.Close()

	p.Search("Dollar")
	assert.Eventually(t, func() bool { return len(p.Symbols().Value()) == 1 }, waitFor, tick)
	require.True(t, p.SearchEnabled().Value())

	p.CancelSearch()
	p.Flush()
	assert.False(t, p.SearchEnabled().Value())
	assert.Eventually(t, func() bool { return p.Error().Value() != nil }, waitFor, tick)
	assert.Equal(t, "Unexpected Response", p.Error().Value().Title)
}
