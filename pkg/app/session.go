package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/amirasaad/moneyrates/pkg/domain"
	"github.com/amirasaad/moneyrates/pkg/domain/events"
	"github.com/amirasaad/moneyrates/pkg/eventbus"
	"github.com/amirasaad/moneyrates/pkg/orchestrator"
	"github.com/amirasaad/moneyrates/pkg/orchestrator/converter"
	"github.com/amirasaad/moneyrates/pkg/orchestrator/picker"
	"github.com/google/uuid"
)

// Session is one conversion form with at most one open picker. The form and
// the picker talk through the session's event bus.
type Session struct {
	ID        uuid.UUID
	Converter *converter.Orchestrator

	bus     eventbus.Bus
	symbols picker.SymbolSource
	logger  *slog.Logger

	mu     sync.Mutex
	picker *picker.Orchestrator
	closed bool
}

func newSession(a *App, opts converter.Options) *Session {
	id := uuid.New()
	logger := a.Deps.Logger.With("session", id)
	bus := a.Deps.NewEventBus()

	s := &Session{
		ID:      id,
		bus:     bus,
		symbols: a.SymbolService,
		logger:  logger,
	}
	s.Converter = converter.New(a.ConversionService, a.ResetService, bus, a.Deps.Metrics, logger, opts)
	setupSessionBus(s)
	return s
}

// setupSessionBus registers the handlers that route pick requests to a
// picker and its selection back to the form.
func setupSessionBus(s *Session) {
	s.bus.Register(events.EventTypePickRequested.String(), func(_ context.Context, e eventbus.Event) error {
		ev, ok := e.(events.PickRequested)
		if !ok {
			return fmt.Errorf("unexpected event %T", e)
		}
		s.openPicker(ev.Field)
		return nil
	})
	s.bus.Register(events.EventTypeSymbolSelected.String(), func(_ context.Context, e eventbus.Event) error {
		ev, ok := e.(events.SymbolSelected)
		if !ok {
			return fmt.Errorf("unexpected event %T", e)
		}
		s.Converter.CurrencySelected(ev.Field, ev.Symbol)
		s.closePicker()
		return nil
	})
}

// PickRequested asks the form to open a picker for field. The picker opens
// asynchronously; use Picker to reach it.
func (s *Session) PickRequested(field domain.Field) {
	s.Converter.PickRequested(field)
}

// Picker returns the open picker, or nil.
func (s *Session) Picker() *picker.Orchestrator {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.picker
}

func (s *Session) openPicker(field domain.Field) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	prev := s.picker
	p := picker.New(field, s.symbols, s.bus, s.logger)
	s.picker = p
	s.mu.Unlock()

	if prev != nil {
		go prev.Close()
	}
	s.logger.Debug("Picker opened", "field", field.String())
	p.Load()
}

// closePicker runs on the picker's own loop, so the picker is closed from
// another goroutine.
func (s *Session) closePicker() {
	s.mu.Lock()
	p := s.picker
	s.picker = nil
	s.mu.Unlock()
	if p != nil {
		go p.Close()
	}
}

func (s *Session) close() {
	s.mu.Lock()
	s.closed = true
	p := s.picker
	s.picker = nil
	s.mu.Unlock()

	s.Converter.Close()
	if p != nil {
		p.Close()
	}
}

// State is a point-in-time view of a session.
type State struct {
	ID           uuid.UUID               `json:"id"`
	SourceTitle  string                  `json:"source_title"`
	TargetTitle  string                  `json:"target_title"`
	SourceResult string                  `json:"source_result"`
	TargetResult string                  `json:"target_result"`
	Error        *orchestrator.ErrorView `json:"error,omitempty"`
	Busy         bool                    `json:"busy"`
	Picker       *PickerState            `json:"picker,omitempty"`
}

type PickerState struct {
	Field         string                  `json:"field"`
	Symbols       []domain.Symbol         `json:"symbols"`
	SearchEnabled bool                    `json:"search_enabled"`
	Loaded        bool                    `json:"loaded"`
	Error         *orchestrator.ErrorView `json:"error,omitempty"`
}

// State snapshots the form and the open picker.
func (s *Session) State() State {
	c := s.Converter
	st := State{
		ID:           s.ID,
		SourceTitle:  c.SourceTitle().Value(),
		TargetTitle:  c.TargetTitle().Value(),
		SourceResult: display(c.SourceResult().Value()),
		TargetResult: display(c.TargetResult().Value()),
		Error:        c.Error().Value(),
		Busy:         c.Busy().Value(),
	}
	if p := s.Picker(); p != nil {
		ps := PickerStateOf(p)
		st.Picker = &ps
	}
	return st
}

// PickerStateOf snapshots p.
func PickerStateOf(p *picker.Orchestrator) PickerState {
	list := p.Symbols().Value()
	if list == nil {
		list = []domain.Symbol{}
	}
	return PickerState{
		Field:         p.Field().String(),
		Symbols:       list,
		SearchEnabled: p.SearchEnabled().Value(),
		Loaded:        p.Loaded().Value(),
		Error:         p.Error().Value(),
	}
}

func display(v *orchestrator.AmountView) string {
	if v == nil {
		return ""
	}
	return v.String()
}
