package httptransport

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"atelier/internal/preference"
	"atelier/internal/site"
	"atelier/pkg/platform/sentinel"
)

// themeResponse is returned to script clients after a theme change.
type themeResponse struct {
	Mode   string `json:"mode"`
	Source string `json:"source"`
	Class  string `json:"class"`
}

// handleToggle flips the theme and persists the choice.
func (h *Handler) handleToggle(w http.ResponseWriter, r *http.Request) {
	h.withPreferences(w, r, func(p *preferences) preference.State {
		return p.ctrl.Toggle(r.Context())
	})
}

// handleReset forgets the persisted choice and follows the system setting again.
func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	h.withPreferences(w, r, func(p *preferences) preference.State {
		return p.ctrl.Reset(r.Context())
	})
}

// handleAmbient receives a client-observed prefers-color-scheme change and
// publishes it to the request's controller.
func (h *Handler) handleAmbient(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.writeError(w, r, fmt.Errorf("%w: %v", sentinel.ErrInvalidValue, err))
		return
	}
	prefersDark, err := strconv.ParseBool(r.PostForm.Get("prefers_dark"))
	if err != nil {
		h.writeError(w, r, fmt.Errorf("%w: prefers_dark must be a boolean", sentinel.ErrInvalidValue))
		return
	}
	h.withPreferences(w, r, func(p *preferences) preference.State {
		p.ambient.Publish(r.Context(), prefersDark)
		return p.ctrl.State()
	})
}

func (h *Handler) withPreferences(w http.ResponseWriter, r *http.Request, fn func(p *preferences) preference.State) {
	prefs, err := h.preferences(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	defer prefs.ctrl.Close()

	state := fn(prefs)
	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, themeResponse{
			Mode:   state.Mode.Encode(),
			Source: state.Source.String(),
			Class:  prefs.root.ClassAttr(),
		})
		return
	}
	http.Redirect(w, r, backTo(r, siteFrom(r.Context())), http.StatusSeeOther)
}

// backTo returns the same-site page the form was posted from, or the site's home.
func backTo(r *http.Request, s *site.Site) string {
	home := s.HomeURL()
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Path == "" {
		return home
	}
	if ref.Host != "" && ref.Host != r.Host {
		return home
	}
	if !strings.HasPrefix(ref.Path, home) {
		return home
	}
	if ref.RawQuery != "" {
		return ref.Path + "?" + ref.RawQuery
	}
	return ref.Path
}
