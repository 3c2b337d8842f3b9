// Package picker drives the currency list shown when choosing a symbol for
// one side of the conversion form.
package picker

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/amirasaad/moneyrates/pkg/dispatch"
	"github.com/amirasaad/moneyrates/pkg/domain"
	"github.com/amirasaad/moneyrates/pkg/domain/events"
	"github.com/amirasaad/moneyrates/pkg/eventbus"
	"github.com/amirasaad/moneyrates/pkg/observable"
	"github.com/amirasaad/moneyrates/pkg/orchestrator"
)

// SymbolSource lists and filters cached symbols.
type SymbolSource interface {
	GetSymbols(ctx context.Context) ([]domain.Symbol, error)
	FilterSymbols(ctx context.Context, text *string) ([]domain.Symbol, error)
}

// Orchestrator serves the picker for a single field. Lists are always shown
// sorted by description.
type Orchestrator struct {
	field     domain.Field
	source    SymbolSource
	bus       eventbus.Bus
	logger    *slog.Logger
	loop      *dispatch.Loop
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once

	// owned by loop
	gen   uint64
	shown []domain.Symbol

	symbols       *observable.Cell[[]domain.Symbol]
	searchEnabled *observable.Cell[bool]
	loaded        *observable.Cell[bool]
	err           *observable.Cell[*orchestrator.ErrorView]
}

func New(field domain.Field, source SymbolSource, bus eventbus.Bus, logger *slog.Logger) *Orchestrator {
	logger = logger.With("orchestrator", "picker", "field", field.String())
	ctx, cancel := context.WithCancel(context.Background())
	return &Orchestrator{
		field:         field,
		source:        source,
		bus:           bus,
		logger:        logger,
		loop:          dispatch.NewLoop(logger),
		ctx:           ctx,
		cancel:        cancel,
		symbols:       observable.NewCell[[]domain.Symbol](nil),
		searchEnabled: observable.NewCell(false),
		loaded:        observable.NewCell(false),
		err:           observable.NewCell[*orchestrator.ErrorView](nil),
	}
}

func (o *Orchestrator) Field() domain.Field { return o.field }
func (o *Orchestrator) Symbols() observable.Observable[[]domain.Symbol] { return o.symbols }
func (o *Orchestrator) SearchEnabled() observable.Observable[bool] { return o.searchEnabled }
func (o *Orchestrator) Loaded() observable.Observable[bool] { return o.loaded }
func (o *Orchestrator) Error() observable.Observable[*orchestrator.ErrorView] { return o.err }

// Load shows the full symbol list, populating the cache if needed.
func (o *Orchestrator) Load() {
	o.loop.Post(func() {
		o.refresh(func(ctx context.Context) ([]domain.Symbol, error) {
			return o.source.GetSymbols(ctx)
		}, func() { o.loaded.Set(true) })
	})
}

// Search shows the symbols whose description contains text.
func (o *Orchestrator) Search(text string) {
	o.loop.Post(func() {
		o.searchEnabled.Set(true)
		o.refresh(func(ctx context.Context) ([]domain.Symbol, error) {
			return o.source.FilterSymbols(ctx, &text)
		}, nil)
	})
}

// CancelSearch leaves search mode and restores the full list.
func (o *Orchestrator) CancelSearch() {
	o.loop.Post(func() {
		o.searchEnabled.Set(false)
		o.refresh(func(ctx context.Context) ([]domain.Symbol, error) {
			return o.source.FilterSymbols(ctx, nil)
		}, nil)
	})
}

// Select picks the symbol at index in the list currently shown and emits
// SymbolSelected. Out of range indexes are ignored.
func (o *Orchestrator) Select(index int) {
	o.loop.Post(func() {
		if index < 0 || index >= len(o.shown) {
			o.logger.Warn("Ignoring selection out of range", "index", index, "count", len(o.shown))
			return
		}
		ev := events.SymbolSelected{Field: o.field, Symbol: o.shown[index]}
		if err := o.bus.Emit(o.ctx, ev); err != nil {
			o.logger.Error("Failed to emit selection", "symbol", ev.Symbol.Code, "error", err)
		}
	})
}

// Flush waits until every input made before the call has been applied.
func (o *Orchestrator) Flush() {
	o.loop.Flush()
}

func (o *Orchestrator) Close() {
	o.closeOnce.Do(func() {
		o.cancel()
		o.loop.Close()
	})
}

// refresh runs fetch off the loop and shows its result unless a newer
// refresh was started meanwhile.
func (o *Orchestrator) refresh(fetch func(context.Context) ([]domain.Symbol, error), onSuccess func()) {
	o.gen++
	gen := o.gen
	go func() {
		list, err := fetch(o.ctx)
		if err == nil {
			domain.SortByDescription(list)
		}
		o.loop.Post(func() {
			if gen != o.gen {
				o.logger.Debug("Dropping stale symbol list", "generation", gen)
				return
			}
			if err != nil {
				if !errors.Is(err, context.Canceled) {
					o.logger.Warn("Failed to list symbols", "error", err)
					o.err.Set(orchestrator.NewErrorView(err))
				}
				return
			}
			o.shown = list
			o.symbols.Set(list)
			if onSuccess != nil {
				onSuccess()
			}
		})
	}()
}
