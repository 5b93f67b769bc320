package diagnostics

import (
	"context"

	"atelier/internal/boundary"
	"atelier/internal/platform/metrics"
)

// Metrics counts faults by site and kind.
type Metrics struct {
	metrics *metrics.Metrics
}

func NewMetrics(m *metrics.Metrics) *Metrics {
	return &Metrics{metrics: m}
}

func (m *Metrics) Report(_ context.Context, rec boundary.ErrorRecord, rc boundary.ReportContext) {
	site := rc.Site
	if site == "" {
		site = "none"
	}
	m.metrics.IncrementRenderFaults(site, rec.Kind)
}
