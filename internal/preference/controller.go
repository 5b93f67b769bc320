package preference

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"atelier/internal/platform/metrics"
	"atelier/pkg/platform/sentinel"
)

// Controller owns one visitor's presentation mode and its ambient subscription.
// Handlers are serialized, so each runs to completion before the next starts.
type Controller struct {
	mu          sync.Mutex
	store       Store
	ambient     AmbientSource
	styler      Styler
	key         string
	state       State
	unsubscribe Unsubscribe
	logger      *slog.Logger
	metrics     *metrics.Metrics
}

// Option configures a Controller.
type Option func(*Controller)

// WithKey overrides StorageKey.
func WithKey(key string) Option {
	return func(c *Controller) {
		if key != "" {
			c.key = key
		}
	}
}

// WithLogger sets the non-fatal warning channel.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Controller) {
		c.metrics = m
	}
}

// New subscribes to ambient changes and then derives the initial mode. If
// initialization does not complete, the subscription is released before the
// panic continues. Close must be called when the controller is done.
func New(ctx context.Context, store Store, ambient AmbientSource, styler Styler, opts ...Option) (*Controller, error) {
	if store == nil || ambient == nil || styler == nil {
		return nil, fmt.Errorf("preference controller requires store, ambient source and styler")
	}
	c := &Controller{
		store:   store,
		ambient: ambient,
		styler:  styler,
		key:     StorageKey,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	unsubscribe, err := ambient.Subscribe(c.OnAmbientChange)
	if err != nil {
		c.warn(ctx, "ambient subscription unavailable", "error", err)
	} else {
		c.unsubscribe = unsubscribe
	}

	initialized := false
	defer func() {
		if !initialized {
			c.Close()
		}
	}()
	func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.initialize(ctx)
	}()
	initialized = true

	return c, nil
}

func (c *Controller) initialize(ctx context.Context) {
	raw, err := c.store.Get(ctx, c.key)
	switch {
	case err == nil:
		mode, perr := ParseMode(raw)
		if perr == nil {
			c.apply(State{Mode: mode, Source: Persisted})
			return
		}
		c.warn(ctx, "ignoring undecodable persisted preference", "error", perr)
	case errors.Is(err, sentinel.ErrNotFound):
	default:
		c.persistenceFailed(ctx, "get", err)
	}
	c.apply(State{Mode: c.queryAmbient(ctx), Source: Ambient})
}

// queryAmbient treats an unavailable signal as "no ambient preference".
func (c *Controller) queryAmbient(ctx context.Context) Mode {
	prefersDark, err := c.ambient.QueryCurrent(ctx)
	if err != nil {
		if !errors.Is(err, sentinel.ErrUnavailable) {
			c.warn(ctx, "ambient query failed", "error", err)
		}
		return Light
	}
	return modeFor(prefersDark)
}

// Toggle flips the mode as an explicit user choice and persists it. A persistence
// failure keeps the new mode in memory only.
func (c *Controller) Toggle(ctx context.Context) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.state.Mode.Opposite()
	c.apply(State{Mode: next, Source: UserExplicit})
	if err := c.store.Set(ctx, c.key, next.Encode()); err != nil {
		c.persistenceFailed(ctx, "set", err)
	}
	if c.metrics != nil {
		c.metrics.IncrementToggles(next.Encode())
	}
	return c.state
}

// OnAmbientChange applies an ambient change only while nothing is persisted.
// Presence is re-read from the store on every call instead of trusting the source
// captured at initialization. The one in-memory shortcut is UserExplicit: a toggle
// whose persist failed leaves the key absent, and the visitor's explicit choice
// must still not be overridden by the system setting.
func (c *Controller) OnAmbientChange(ctx context.Context, prefersDark bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	outcome := "ignored"
	defer func() {
		if c.metrics != nil {
			c.metrics.IncrementAmbientChanges(outcome)
		}
	}()

	if c.state.Source == UserExplicit {
		return
	}
	raw, err := c.store.Get(ctx, c.key)
	switch {
	case err == nil:
		if _, perr := ParseMode(raw); perr == nil {
			return
		}
	case errors.Is(err, sentinel.ErrNotFound):
	default:
		c.persistenceFailed(ctx, "get", err)
		return
	}
	c.apply(State{Mode: modeFor(prefersDark), Source: Ambient})
	outcome = "applied"
}

// Reset forgets the persisted choice and follows the ambient signal again.
func (c *Controller) Reset(ctx context.Context) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Remove(ctx, c.key); err != nil {
		c.persistenceFailed(ctx, "remove", err)
	}
	c.apply(State{Mode: c.queryAmbient(ctx), Source: Ambient})
	return c.state
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Mode() Mode {
	return c.State().Mode
}

// Close releases the ambient subscription. It is safe to call more than once.
func (c *Controller) Close() {
	c.mu.Lock()
	unsubscribe := c.unsubscribe
	c.unsubscribe = nil
	c.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

func (c *Controller) apply(s State) {
	c.state = s
	c.styler.SetClass(DarkClass, s.Mode == Dark)
}

func (c *Controller) persistenceFailed(ctx context.Context, op string, err error) {
	if c.metrics != nil {
		c.metrics.IncrementPersistenceFailures(op)
	}
	c.warn(ctx, "preference store unavailable, using in-memory mode", "op", op, "error", err)
}

func (c *Controller) warn(ctx context.Context, msg string, args ...any) {
	if c.logger == nil {
		return
	}
	c.logger.WarnContext(ctx, msg, append(args, "key", c.key)...)
}
