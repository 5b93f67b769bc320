package diagnostics

import (
	"context"
	"fmt"
	"log/slog"

	"atelier/internal/boundary"
	"atelier/internal/platform/metrics"
)

// Multi fans a report out to several collectors. A collector that panics is
// isolated so the rest still receive the report.
type Multi struct {
	collectors []boundary.Collector
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

func NewMulti(logger *slog.Logger, m *metrics.Metrics, collectors ...boundary.Collector) *Multi {
	var live []boundary.Collector
	for _, c := range collectors {
		if c != nil {
			live = append(live, c)
		}
	}
	return &Multi{collectors: live, logger: logger, metrics: m}
}

func (m *Multi) Report(ctx context.Context, rec boundary.ErrorRecord, rc boundary.ReportContext) {
	for _, c := range m.collectors {
		m.reportTo(ctx, c, rec, rc)
	}
}

func (m *Multi) reportTo(ctx context.Context, c boundary.Collector, rec boundary.ErrorRecord, rc boundary.ReportContext) {
	defer func() {
		v := recover()
		if v == nil {
			return
		}
		if m.metrics != nil {
			m.metrics.IncrementReportFailures()
		}
		if m.logger != nil {
			m.logger.WarnContext(ctx, "diagnostic collector failed",
				"collector", fmt.Sprintf("%T", c),
				"panic", v,
			)
		}
	}()
	c.Report(ctx, rec, rc)
}
