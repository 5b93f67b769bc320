package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the sites host.
type Metrics struct {
	RenderFaults        *prometheus.CounterVec
	ReportFailures      prometheus.Counter
	PreferenceToggles   *prometheus.CounterVec
	PersistenceFailures *prometheus.CounterVec
	AmbientChanges      *prometheus.CounterVec
	RequestDuration     *prometheus.HistogramVec
}

// New registers all metrics with the default registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers all metrics with reg. Tests pass a fresh
// prometheus.NewRegistry() so repeated construction does not collide.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RenderFaults: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "atelier_render_faults_total",
			Help: "Render faults absorbed by a fault boundary",
		}, []string{"site", "kind"}),
		ReportFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "atelier_diagnostic_report_failures_total",
			Help: "Diagnostic collector calls that failed and were swallowed",
		}),
		PreferenceToggles: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "atelier_preference_toggles_total",
			Help: "Explicit theme toggles by resulting mode",
		}, []string{"mode"}),
		PersistenceFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "atelier_preference_persistence_failures_total",
			Help: "Preference store operations that failed and degraded to memory",
		}, []string{"op"}),
		AmbientChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "atelier_preference_ambient_changes_total",
			Help: "Ambient color-scheme changes by outcome",
		}, []string{"outcome"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "atelier_http_request_duration_ms",
			Help:    "Latency of page requests in milliseconds",
			Buckets: []float64{1, 2.5, 5, 10, 25, 50, 100, 250, 500},
		}, []string{"site", "status"}),
	}
}

// IncrementRenderFaults counts one absorbed render fault.
func (m *Metrics) IncrementRenderFaults(site, kind string) {
	m.RenderFaults.WithLabelValues(site, kind).Inc()
}

func (m *Metrics) IncrementReportFailures() {
	m.ReportFailures.Inc()
}

func (m *Metrics) IncrementToggles(mode string) {
	m.PreferenceToggles.WithLabelValues(mode).Inc()
}

func (m *Metrics) IncrementPersistenceFailures(op string) {
	m.PersistenceFailures.WithLabelValues(op).Inc()
}

// IncrementAmbientChanges records whether an ambient change was applied or ignored.
func (m *Metrics) IncrementAmbientChanges(outcome string) {
	m.AmbientChanges.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveRequestDuration(site, status string, ms float64) {
	m.RequestDuration.WithLabelValues(site, status).Observe(ms)
}
