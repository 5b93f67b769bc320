// Package httptransport hosts the three sites: it mounts a fresh fault boundary and a
// fresh preference controller for every page request and renders the result.
package httptransport

import (
	"context"
	"log/slog"

	"atelier/internal/boundary"
	"atelier/internal/content"
	"atelier/internal/platform/metrics"
	"atelier/internal/site"
)

// HealthCheck reports whether one dependency is usable.
type HealthCheck func(ctx context.Context) error

// Handler is the thin HTTP layer over the sites, the content repository and the
// preference stores.
type Handler struct {
	logger      *slog.Logger
	metrics     *metrics.Metrics
	sites       []*site.Site
	repo        content.Repository
	collector   boundary.Collector
	stores      Stores
	diagnostics bool
	baseURL     string
	checks      map[string]HealthCheck
}

type Option func(*Handler)

func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(h *Handler) {
		h.metrics = m
	}
}

// WithDiagnostics exposes fault details in fallbacks and mounts the fault drill route.
func WithDiagnostics(enabled bool) Option {
	return func(h *Handler) {
		h.diagnostics = enabled
	}
}

// WithBaseURL sets the absolute origin used in sitemap.xml.
func WithBaseURL(baseURL string) Option {
	return func(h *Handler) {
		h.baseURL = baseURL
	}
}

func WithSites(sites ...*site.Site) Option {
	return func(h *Handler) {
		h.sites = sites
	}
}

func WithHealthCheck(name string, check HealthCheck) Option {
	return func(h *Handler) {
		if check != nil {
			h.checks[name] = check
		}
	}
}

func New(repo content.Repository, collector boundary.Collector, stores Stores, opts ...Option) *Handler {
	h := &Handler{
		logger:    slog.Default(),
		sites:     site.All(),
		repo:      repo,
		collector: collector,
		stores:    stores,
		checks:    make(map[string]HealthCheck),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	if h.stores == nil {
		h.stores = CookieStores()
	}
	return h
}
