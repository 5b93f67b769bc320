package store

import (
	"context"
	"errors"
	"log/slog"

	"atelier/internal/preference"
	"atelier/pkg/platform/circuit"
	"atelier/pkg/platform/sentinel"
)

// Guarded puts a server-side store behind a circuit breaker shared by every
// request. Once the primary has failed often enough the breaker opens and calls
// are served by an in-process fallback, so visitors keep a working toggle during a
// Redis or Postgres outage. Writes made while open are not replayed to the primary.
//
// Only sentinel.ErrUnavailable counts as a failure; other errors pass through.
type Guarded struct {
	primary  preference.Store
	fallback preference.Store
	breaker  *circuit.Breaker
	logger   *slog.Logger
}

func NewGuarded(primary, fallback preference.Store, breaker *circuit.Breaker, logger *slog.Logger) *Guarded {
	return &Guarded{primary: primary, fallback: fallback, breaker: breaker, logger: logger}
}

func (g *Guarded) Get(ctx context.Context, key string) (string, error) {
	v, err := g.primary.Get(ctx, key)
	if err == nil || errors.Is(err, sentinel.ErrNotFound) {
		if g.succeeded(ctx) {
			return v, err
		}
		return g.fallback.Get(ctx, key)
	}
	if !g.failed(ctx, err) {
		return "", err
	}
	return g.fallback.Get(ctx, key)
}

func (g *Guarded) Set(ctx context.Context, key, value string) error {
	err := g.primary.Set(ctx, key, value)
	if err == nil {
		if g.succeeded(ctx) {
			return nil
		}
		return g.fallback.Set(ctx, key, value)
	}
	if !g.failed(ctx, err) {
		return err
	}
	return g.fallback.Set(ctx, key, value)
}

func (g *Guarded) Remove(ctx context.Context, key string) error {
	err := g.primary.Remove(ctx, key)
	if err == nil {
		if g.succeeded(ctx) {
			return nil
		}
		return g.fallback.Remove(ctx, key)
	}
	if !g.failed(ctx, err) {
		return err
	}
	return g.fallback.Remove(ctx, key)
}

// succeeded records a primary success and reports whether the primary's answer
// should be used.
func (g *Guarded) succeeded(ctx context.Context) bool {
	usePrimary, change := g.breaker.RecordSuccess()
	if change.Closed && g.logger != nil {
		g.logger.InfoContext(ctx, "preference store recovered", "breaker", g.breaker.Name())
	}
	return usePrimary
}

// failed records a primary failure and reports whether the fallback should answer.
func (g *Guarded) failed(ctx context.Context, err error) bool {
	if !errors.Is(err, sentinel.ErrUnavailable) {
		return false
	}
	useFallback, change := g.breaker.RecordFailure()
	if change.Opened && g.logger != nil {
		g.logger.WarnContext(ctx, "preference store degraded, serving from memory", "breaker", g.breaker.Name(), "error", err)
	}
	return useFallback
}
