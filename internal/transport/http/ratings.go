package httptransport

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"atelier/internal/content"
	"atelier/pkg/platform/sentinel"
	"atelier/pkg/requestcontext"
)

type ratingResponse struct {
	Count   int     `json:"count"`
	Average float64 `json:"average"`
}

// handleRate records a visitor's score for a case file.
func (h *Handler) handleRate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s := siteFrom(ctx)
	if !s.Cases {
		h.notFound(w, r, s)
		return
	}
	slug := chi.URLParam(r, "slug")
	if err := r.ParseForm(); err != nil {
		h.writeError(w, r, fmt.Errorf("%w: %v", sentinel.ErrInvalidValue, err))
		return
	}
	score, err := strconv.Atoi(r.PostForm.Get("score"))
	if err != nil {
		h.writeError(w, r, fmt.Errorf("%w: score must be a number", sentinel.ErrInvalidValue))
		return
	}
	rating, err := content.NewRating(slug, score, requestcontext.Now(ctx))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.repo.AddRating(ctx, rating); err != nil {
		h.writeError(w, r, err)
		return
	}

	if wantsJSON(r) {
		summary, err := h.repo.RatingSummary(ctx, slug)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, ratingResponse{Count: summary.Count, Average: summary.Average})
		return
	}
	http.Redirect(w, r, s.URL("cases/"+slug), http.StatusSeeOther)
}
