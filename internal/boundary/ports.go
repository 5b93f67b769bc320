package boundary

import "context"

// Collector receives render faults for operators. Implementations should be
// non-blocking; a Boundary swallows anything a Collector panics with.
type Collector interface {
	Report(ctx context.Context, rec ErrorRecord, rc ReportContext)
}

// Navigator supplies the fallback's two actions.
type Navigator interface {
	HomeURL() string
	ReloadURL() string
}

// ReportContext describes where a fault was intercepted.
type ReportContext struct {
	ComponentStack string
	Boundary       string
	RequestID      string
	Site           string
	Path           string
	Browser        string
}

// CollectorFunc adapts a function to Collector.
type CollectorFunc func(ctx context.Context, rec ErrorRecord, rc ReportContext)

func (f CollectorFunc) Report(ctx context.Context, rec ErrorRecord, rc ReportContext) {
	f(ctx, rec, rc)
}

// StaticNavigator is a Navigator with fixed targets. An empty Reload reloads the
// current document.
type StaticNavigator struct {
	Home   string
	Reload string
}

func (n StaticNavigator) HomeURL() string {
	if n.Home == "" {
		return "/"
	}
	return n.Home
}

func (n StaticNavigator) ReloadURL() string {
	return n.Reload
}
