package boundary

import (
	"context"
	"html/template"
	"log/slog"
	"sync"
)

// FallbackFunc renders a replacement for a faulted subtree from captured state only.
type FallbackFunc func(ctx context.Context, state FaultState) template.HTML

// Boundary absorbs Failed results from its child. See the package doc.
type Boundary struct {
	mu          sync.Mutex
	child       Component
	state       FaultState
	name        string
	collector   Collector
	fallback    FallbackFunc
	diagnostics bool
	nav         Navigator
	report      ReportContext
	logger      *slog.Logger
}

// Option configures a Boundary at construction time.
type Option func(*Boundary)

// WithName sets the name the boundary adds to component stacks.
func WithName(name string) Option {
	return func(b *Boundary) {
		b.name = name
	}
}

func WithCollector(c Collector) Option {
	return func(b *Boundary) {
		b.collector = c
	}
}

// WithFallback replaces the default fallback entirely.
func WithFallback(fn FallbackFunc) Option {
	return func(b *Boundary) {
		b.fallback = fn
	}
}

// WithDiagnostics discloses captured message and trace in the default fallback.
// Only development builds should enable it.
func WithDiagnostics(enabled bool) Option {
	return func(b *Boundary) {
		b.diagnostics = enabled
	}
}

func WithNavigator(n Navigator) Option {
	return func(b *Boundary) {
		if n != nil {
			b.nav = n
		}
	}
}

// WithReportContext seeds the request details passed to the collector.
func WithReportContext(rc ReportContext) Option {
	return func(b *Boundary) {
		b.report = rc
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(b *Boundary) {
		b.logger = logger
	}
}

// New mounts a Healthy boundary around child. A nil child renders nothing.
func New(child Component, opts ...Option) *Boundary {
	b := &Boundary{
		child: child,
		name:  "Boundary",
		nav:   StaticNavigator{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Render renders the child while Healthy and the fallback once Faulted. The child is
// never rendered again after the first fault. The returned Result is always Ok.
func (b *Boundary) Render(ctx context.Context) Result {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state.Status == Healthy {
		res := renderSafely(ctx, b.child)
		rec, failed := res.Fault()
		if !failed {
			return res
		}
		b.capture(ctx, rec.within(b.name))
	}
	return Ok(b.renderFallback(ctx))
}

// Capture faults the boundary with a failure intercepted outside its child, such as
// a panic in the HTTP handler that mounted it. It is a no-op once Faulted.
func (b *Boundary) Capture(ctx context.Context, rec ErrorRecord) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state.Status == Faulted {
		return
	}
	b.capture(ctx, rec.within(b.name))
}

// State returns a copy of the current fault state.
func (b *Boundary) State() FaultState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state.clone()
}

func (b *Boundary) capture(ctx context.Context, rec ErrorRecord) {
	b.state = FaultState{Status: Faulted, Captured: &rec}
	if b.logger != nil {
		b.logger.ErrorContext(ctx, "render fault contained",
			"boundary", b.name,
			"kind", rec.Kind,
			"error", rec.Message,
			"request_id", b.report.RequestID,
		)
	}
	b.reportOnce(ctx, rec)
}

func (b *Boundary) reportOnce(ctx context.Context, rec ErrorRecord) {
	if b.collector == nil {
		return
	}
	defer func() {
		if v := recover(); v != nil && b.logger != nil {
			b.logger.WarnContext(ctx, "diagnostic collector failed", "boundary", b.name, "panic", v)
		}
	}()
	rc := b.report
	rc.ComponentStack = rec.StackString()
	rc.Boundary = b.name
	b.collector.Report(ctx, rec, rc)
}

func (b *Boundary) renderFallback(ctx context.Context) (out template.HTML) {
	if b.fallback != nil {
		defer func() {
			if v := recover(); v != nil {
				b.fallbackFailed(ctx, v)
				out = unavailableFallback
			}
		}()
		return b.fallback(ctx, b.state.clone())
	}
	defer func() {
		if v := recover(); v != nil {
			b.fallbackFailed(ctx, v)
			out = staticFallback
		}
	}()
	return defaultFallback(b.state, b.diagnostics, b.nav)
}

func (b *Boundary) fallbackFailed(ctx context.Context, v any) {
	if b.logger != nil {
		b.logger.WarnContext(ctx, "fallback render failed", "boundary", b.name, "panic", v)
	}
}
