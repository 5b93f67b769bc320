package diagnostics

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"atelier/internal/boundary"
)

// Trace records the fault on the request's active span.
type Trace struct{}

func NewTrace() Trace {
	return Trace{}
}

func (Trace) Report(ctx context.Context, rec boundary.ErrorRecord, rc boundary.ReportContext) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.RecordError(rec, trace.WithAttributes(
		attribute.String("fault.kind", rec.Kind),
		attribute.String("fault.boundary", rc.Boundary),
		attribute.StringSlice("fault.component_stack", rec.ComponentStack),
	))
	span.SetStatus(codes.Error, rec.Message)
}
