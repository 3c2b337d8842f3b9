package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Conversion outcomes recorded by the orchestrator and the conversion service.
const (
	ConversionIssued       = "issued"
	ConversionSuperseded   = "superseded"
	ConversionShortCircuit = "short_circuit"
	ConversionSucceeded    = "succeeded"
	ConversionFailed       = "failed"
)

// Metrics holds every collector of the app. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	UpstreamRequestsTotal   *prometheus.CounterVec
	UpstreamRequestDuration *prometheus.HistogramVec
	SymbolCacheLookupsTotal *prometheus.CounterVec
	ConversionsTotal        *prometheus.CounterVec
	SessionsOpen            prometheus.Gauge
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		UpstreamRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moneyrates_upstream_requests_total",
				Help: "Requests sent to the exchange-rate API",
			},
			[]string{"endpoint", "outcome"},
		),
		UpstreamRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "moneyrates_upstream_request_duration_seconds",
				Help:    "Latency of exchange-rate API requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		SymbolCacheLookupsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moneyrates_symbol_cache_lookups_total",
				Help: "Symbol table reads by cache result",
			},
			[]string{"result"},
		),
		ConversionsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moneyrates_conversions_total",
				Help: "Conversion attempts by outcome",
			},
			[]string{"outcome"},
		),
		SessionsOpen: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "moneyrates_sessions_open",
				Help: "Conversion sessions currently open",
			},
		),
	}
}

// ObserveUpstream records one upstream call.
func (m *Metrics) ObserveUpstream(endpoint, outcome string, took time.Duration) {
	if m == nil {
		return
	}
	m.UpstreamRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	m.UpstreamRequestDuration.WithLabelValues(endpoint).Observe(took.Seconds())
}

// CacheLookup records a symbol cache hit or miss.
func (m *Metrics) CacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.SymbolCacheLookupsTotal.WithLabelValues(result).Inc()
}

// Conversion records a conversion outcome.
func (m *Metrics) Conversion(outcome string) {
	if m == nil {
		return
	}
	m.ConversionsTotal.WithLabelValues(outcome).Inc()
}

// SessionOpened and SessionClosed track live sessions.
func (m *Metrics) SessionOpened() {
	if m != nil {
		m.SessionsOpen.Inc()
	}
}

func (m *Metrics) SessionClosed() {
	if m != nil {
		m.SessionsOpen.Dec()
	}
}
