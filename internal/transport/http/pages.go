package httptransport

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"atelier/internal/boundary"
	"atelier/internal/site"
	"atelier/pkg/platform/sentinel"
)

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, nil, "Sites", site.Index(h.sites), http.StatusOK)
}

// handlePage serves a site's static pages; the bare site route is its home page.
func (h *Handler) handlePage(w http.ResponseWriter, r *http.Request) {
	s := siteFrom(r.Context())
	page, ok := s.Page(chi.URLParam(r, "page"))
	if !ok {
		h.notFound(w, r, s)
		return
	}
	h.render(w, r, s, page.Title, page.Build(site.Env{Site: s, Repo: h.repo}), http.StatusOK)
}

func (h *Handler) handlePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s := siteFrom(ctx)
	if !s.Blog {
		h.notFound(w, r, s)
		return
	}
	post, err := h.repo.GetPost(ctx, s.Key, chi.URLParam(r, "slug"))
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		h.notFound(w, r, s)
	case err != nil:
		h.render(w, r, s, "Writing", failing("PostPage", err), http.StatusOK)
	default:
		h.render(w, r, s, post.Title, site.PostArticle(post), http.StatusOK)
	}
}

// handleCase serves a case file. Its ratings widget is mounted behind a nested
// boundary, so a ratings failure leaves the rest of the page intact.
func (h *Handler) handleCase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s := siteFrom(ctx)
	if !s.Cases {
		h.notFound(w, r, s)
		return
	}
	slug := chi.URLParam(r, "slug")
	cf, err := h.repo.GetCaseFile(ctx, slug)
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		h.notFound(w, r, s)
	case err != nil:
		h.render(w, r, s, "Case file", failing("CasePage", err), http.StatusOK)
	default:
		ratings := h.mount(r, s, site.Ratings(h.repo, s, slug),
			boundary.WithName("RatingsBoundary"),
			boundary.WithFallback(site.RatingsUnavailable),
		)
		h.render(w, r, s, cf.Title, site.CaseArticle(cf, ratings), http.StatusOK)
	}
}

func (h *Handler) handleSitemap(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	out, err := site.Sitemap(ctx, siteFrom(ctx), h.baseURL, h.repo)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

// handleFaultDrill renders a page whose content always fails. Mounted in
// development builds only.
func (h *Handler) handleFaultDrill(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, siteFrom(r.Context()), "Fault drill", site.FaultDrill(), http.StatusOK)
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request, s *site.Site) {
	h.render(w, r, s, "Not found", site.Prose("NotFound", "Not found", "There is nothing at this address."), http.StatusNotFound)
}
