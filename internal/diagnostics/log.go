package diagnostics

import (
	"context"
	"log/slog"

	"atelier/internal/boundary"
)

// Log writes each fault as a structured error log line.
type Log struct {
	logger *slog.Logger
}

func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) Report(ctx context.Context, rec boundary.ErrorRecord, rc boundary.ReportContext) {
	l.logger.ErrorContext(ctx, "render fault",
		"kind", rec.Kind,
		"error", rec.Message,
		"component_stack", rc.ComponentStack,
		"boundary", rc.Boundary,
		"site", rc.Site,
		"path", rc.Path,
		"browser", rc.Browser,
		"request_id", rc.RequestID,
		"log_type", "diagnostic",
	)
}
