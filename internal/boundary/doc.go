// Package boundary contains render failures to the subtree that produced them.
//
// Pages are built from Components. Every render step returns a Result, which is
// either Ok(html) or Failed(ErrorRecord). Element converts both returned errors and
// panics into Failed; Group propagates the first Failed child upward, naming itself
// on the component stack. A Boundary is the nearest ancestor that absorbs a Failed
// result: it captures the record, reports it once to a Collector, and from then on
// renders a fallback instead of its child. A Boundary always returns Ok, so nothing
// above it ever sees the failure.
//
// A Boundary is a one-shot breaker. There is no transition out of Faulted; a fresh
// boundary is mounted per request, which is how navigation or reload recovers.
package boundary
