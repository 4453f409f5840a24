package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/3-lines-studio/sdui/internal/core"
)

const unknownType = "unknown"

// Metrics records render and load activity of an engine.
type Metrics struct {
	registry *prometheus.Registry

	NodesRendered      *prometheus.CounterVec
	RenderersMissing   *prometheus.CounterVec
	ContractViolations *prometheus.CounterVec
	Loads              *prometheus.CounterVec
	LoadDuration       prometheus.Histogram
}

func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.NodesRendered = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sdui_nodes_rendered_total",
			Help: "Nodes rendered by a registered renderer",
		},
		[]string{"mode", "type"},
	)

	m.RenderersMissing = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sdui_renderer_missing_total",
			Help: "Nodes dispatched without a registered renderer",
		},
		[]string{"mode", "type"},
	)

	m.ContractViolations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sdui_renderer_contract_violations_total",
			Help: "Renderers that returned an invalid result or panicked",
		},
		[]string{"mode", "type"},
	)

	m.Loads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sdui_document_loads_total",
			Help: "Document loads by result",
		},
		[]string{"result"},
	)

	m.LoadDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sdui_document_load_duration_seconds",
			Help:    "Duration of document fetches",
			Buckets: prometheus.DefBuckets,
		},
	)

	m.registry.MustRegister(
		m.NodesRendered,
		m.RenderersMissing,
		m.ContractViolations,
		m.Loads,
		m.LoadDuration,
	)

	return m
}

func (m *Metrics) NodeRendered(mode core.Mode, typ string) {
	m.NodesRendered.WithLabelValues(string(mode), typeLabel(typ)).Inc()
}

func (m *Metrics) RendererMissing(mode core.Mode, typ string) {
	m.RenderersMissing.WithLabelValues(string(mode), typeLabel(typ)).Inc()
}

func (m *Metrics) ContractViolation(mode core.Mode, typ string) {
	m.ContractViolations.WithLabelValues(string(mode), typeLabel(typ)).Inc()
}

// typeLabel keeps label cardinality bounded; type tags come from documents.
func typeLabel(typ string) string {
	if typ == core.TypeScreen || core.IsKnownType(typ) {
		return typ
	}
	return unknownType
}

func (m *Metrics) DocumentLoaded(err error, elapsed time.Duration) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.Loads.WithLabelValues(result).Inc()
	m.LoadDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
