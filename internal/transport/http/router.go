package httptransport

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"atelier/internal/boundary"
	"atelier/internal/platform/middleware"
	"atelier/internal/site"
	"atelier/pkg/requestcontext"
)

const requestTimeout = 30 * time.Second

type siteKey struct{}

// Router wires every public endpoint.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.ClientMetadata)
	r.Use(middleware.Logger(h.logger))
	r.Use(middleware.Trace)
	r.Use(boundary.Recover(h.mountRecovery, h.writeFallback))
	r.Use(h.visitor)

	r.Get("/healthz", h.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/", h.handleIndex)

	r.Route("/{site}", func(r chi.Router) {
		r.Use(h.withSite)
		r.Use(middleware.LatencyMiddleware(h.metrics))
		r.Use(middleware.Timeout(requestTimeout))
		r.Use(boundary.Recover(h.mountRecovery, h.writeFallback))

		r.Get("/", h.handlePage)
		r.Get("/sitemap.xml", h.handleSitemap)
		r.Post("/theme", h.handleToggle)
		r.Delete("/theme", h.handleReset)
		r.Post("/theme/reset", h.handleReset)
		r.Post("/theme/ambient", h.handleAmbient)
		r.Get("/posts/{slug}", h.handlePost)
		r.Get("/cases/{slug}", h.handleCase)
		r.Post("/cases/{slug}/ratings", h.handleRate)
		if h.diagnostics {
			r.Get("/_fault", h.handleFaultDrill)
		}
		r.Get("/{page}", h.handlePage)
	})
	return r
}

// withSite resolves the {site} parameter; unknown sites are a 404.
func (h *Handler) withSite(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, ok := site.Lookup(h.sites, chi.URLParam(r, "site"))
		if !ok {
			h.notFound(w, r, nil)
			return
		}
		ctx := requestcontext.WithSite(r.Context(), s.Key)
		ctx = context.WithValue(ctx, siteKey{}, s)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// siteFrom returns the site resolved by withSite, or nil outside a site route.
func siteFrom(ctx context.Context) *site.Site {
	s, _ := ctx.Value(siteKey{}).(*site.Site)
	return s
}
