// Package preference decides the light/dark presentation mode for a visitor.
//
// Three inputs compete: an explicit toggle, a value persisted under a fixed key,
// and the ambient system color-scheme signal. A persisted value always beats the
// ambient signal; ambient changes only apply while nothing is persisted and the
// visitor has not toggled. Every decision is mirrored onto the document root as a
// "dark" class marker. Store and ambient failures never surface to the visitor;
// they degrade to in-memory operation and are logged as warnings.
package preference
