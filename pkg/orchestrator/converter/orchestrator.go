// Package converter drives the two-field conversion form: it debounces typed
// amounts, converts them in either direction and publishes the results.
package converter

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/amirasaad/moneyrates/pkg/debounce"
	"github.com/amirasaad/moneyrates/pkg/dispatch"
	"github.com/amirasaad/moneyrates/pkg/domain"
	"github.com/amirasaad/moneyrates/pkg/domain/events"
	"github.com/amirasaad/moneyrates/pkg/eventbus"
	"github.com/amirasaad/moneyrates/pkg/metrics"
	"github.com/amirasaad/moneyrates/pkg/observable"
	"github.com/amirasaad/moneyrates/pkg/orchestrator"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultDebounce is the quiet period before a typed amount is converted.
const DefaultDebounce = 300 * time.Millisecond

// Converter converts one amount between two currency codes.
type Converter interface {
	Execute(ctx context.Context, source, target string, amount decimal.Decimal) (float64, error)
}

// Resetter refreshes the symbol cache.
type Resetter interface {
	Execute(ctx context.Context) error
}

// Options tunes an Orchestrator. Zero values select the defaults.
type Options struct {
	Debounce  time.Duration
	MinAmount decimal.Decimal
}

// Orchestrator is the conversion form state machine. Inputs may be called
// from any goroutine; they are applied in call order on an internal loop.
type Orchestrator struct {
	converter Converter
	resetter  Resetter
	bus       eventbus.Bus
	metrics   *metrics.Metrics
	logger    *slog.Logger
	minAmount decimal.Decimal

	loop      *dispatch.Loop
	ctx       context.Context
	cancel    context.CancelFunc
	gates     [2]*debounce.Gate
	closeOnce sync.Once

	// owned by loop
	amounts    [2]*decimal.Decimal
	symbols    [2]*domain.Symbol
	lastEdited domain.Field
	edited     bool
	pending    int

	titles  [2]*observable.Cell[string]
	results [2]*observable.Cell[*orchestrator.AmountView]
	err     *observable.Cell[*orchestrator.ErrorView]
	busy    *observable.Cell[bool]
}

// New creates an Orchestrator. PickRequested events are emitted on bus; m may
// be nil.
func New(
	converter Converter,
	resetter Resetter,
	bus eventbus.Bus,
	m *metrics.Metrics,
	logger *slog.Logger,
	opts Options,
) *Orchestrator {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.MinAmount.IsZero() {
		opts.MinAmount = domain.DefaultMinAmount
	}
	logger = logger.With("orchestrator", "converter")
	ctx, cancel := context.WithCancel(context.Background())

	o := &Orchestrator{
		converter: converter,
		resetter:  resetter,
		bus:       bus,
		metrics:   m,
		logger:    logger,
		minAmount: opts.MinAmount,
		loop:      dispatch.NewLoop(logger),
		ctx:       ctx,
		cancel:    cancel,
		err:       observable.NewCell[*orchestrator.ErrorView](nil),
		busy:      observable.NewCell(false),
	}
	for f := range o.gates {
		o.gates[f] = debounce.New(opts.Debounce)
		o.titles[f] = observable.NewCell("")
		o.results[f] = observable.NewCell[*orchestrator.AmountView](nil)
	}
	return o
}

func (o *Orchestrator) SourceTitle() observable.Observable[string] { return o.titles[domain.Source] }
func (o *Orchestrator) TargetTitle() observable.Observable[string] { return o.titles[domain.Target] }

// SourceResult receives conversions typed into the target field.
func (o *Orchestrator) SourceResult() observable.Observable[*orchestrator.AmountView] {
	return o.results[domain.Source]
}

// TargetResult receives conversions typed into the source field.
func (o *Orchestrator) TargetResult() observable.Observable[*orchestrator.AmountView] {
	return o.results[domain.Target]
}

func (o *Orchestrator) Error() observable.Observable[*orchestrator.ErrorView] { return o.err }
func (o *Orchestrator) Busy() observable.Observable[bool] { return o.busy }

// Load refreshes the symbol cache from the provider.
func (o *Orchestrator) Load() {
	o.loop.Post(func() {
		o.begin()
		go func() {
			err := o.resetter.Execute(o.ctx)
			o.loop.Post(func() {
				o.end()
				if err != nil && !errors.Is(err, context.Canceled) {
					o.logger.Warn("Load failed", "error", err)
					o.err.Set(orchestrator.NewErrorView(err))
				}
			})
		}()
	})
}

// InputChanged records the text typed into field and schedules a conversion
// into the opposite field. Text that is not an amount, or is below the
// minimum, withdraws the field's amount and any conversion it started.
func (o *Orchestrator) InputChanged(field domain.Field, text string) {
	o.loop.Post(func() {
		o.lastEdited = field
		o.edited = true

		amount, err := domain.ParseAmount(text)
		if err != nil || amount.LessThan(o.minAmount) {
			o.amounts[field] = nil
			o.gates[field].Cancel()
			return
		}
		o.amounts[field] = &amount
		o.schedule(field)
	})
}

// PickRequested asks for a currency to be chosen for field.
func (o *Orchestrator) PickRequested(field domain.Field) {
	o.loop.Post(func() {
		if err := o.bus.Emit(o.ctx, events.PickRequested{Field: field}); err != nil {
			o.logger.Error("Failed to emit pick request", "field", field.String(), "error", err)
		}
	})
}

// CurrencySelected sets the currency of field and re-runs the conversion for
// the field last typed into.
func (o *Orchestrator) CurrencySelected(field domain.Field, symbol domain.Symbol) {
	o.loop.Post(func() {
		s := symbol
		o.symbols[field] = &s
		o.titles[field].Set(symbol.Description)
		if o.edited && o.amounts[o.lastEdited] != nil {
			o.schedule(o.lastEdited)
		}
	})
}

// Flush waits until every input made before the call has been applied.
// Conversions it scheduled may still be running.
func (o *Orchestrator) Flush() {
	o.loop.Flush()
}

// Close abandons pending and running work. Outputs keep their last values.
func (o *Orchestrator) Close() {
	o.closeOnce.Do(func() {
		for _, g := range o.gates {
			g.Cancel()
		}
		o.cancel()
		o.loop.Close()
	})
}

func (o *Orchestrator) schedule(field domain.Field) {
	amount := o.amounts[field]
	from, to := o.symbols[field], o.symbols[field.Opposite()]
	if amount == nil || from == nil || to == nil {
		return
	}
	req := domain.ConversionRequest{
		ID:        uuid.New(),
		Source:    from.Code,
		Target:    to.Code,
		Amount:    *amount,
		Direction: field,
	}
	gate := o.gates[field]
	gate.Trigger(o.ctx, func(ctx context.Context, token debounce.Token) {
		if !o.loop.Post(o.begin) {
			return
		}
		o.metrics.Conversion(metrics.ConversionIssued)
		result, err := o.converter.Execute(ctx, req.Source, req.Target, req.Amount)
		o.loop.Post(func() {
			o.end()
			o.commit(gate, token, req, result, err)
		})
	})
}

func (o *Orchestrator) commit(gate *debounce.Gate, token debounce.Token, req domain.ConversionRequest, result float64, err error) {
	if !gate.IsCurrent(token) {
		o.metrics.Conversion(metrics.ConversionSuperseded)
		o.logger.Debug("Dropping superseded conversion", "id", req.ID, "direction", req.Direction.String())
		return
	}
	if err != nil {
		o.metrics.Conversion(metrics.ConversionFailed)
		o.logger.Warn("Conversion failed", "id", req.ID, "from", req.Source, "to", req.Target, "error", err)
		o.err.Set(orchestrator.NewErrorView(err))
		return
	}
	o.metrics.Conversion(metrics.ConversionSucceeded)
	o.results[req.Direction.Opposite()].Set(&orchestrator.AmountView{Value: result})
}

func (o *Orchestrator) begin() {
	o.pending++
	if o.pending == 1 {
		o.busy.Set(true)
	}
}

func (o *Orchestrator) end() {
	o.pending--
	if o.pending == 0 {
		o.busy.Set(false)
	}
}
