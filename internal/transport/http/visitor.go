package httptransport

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"atelier/pkg/requestcontext"
)

const (
	visitorCookie = "visitor"
	visitorMaxAge = 2 * 365 * 24 * time.Hour
)

// visitor identifies the browser with an anonymous id so server-side preference
// stores can key on it. A missing or malformed cookie is replaced.
func (h *Handler) visitor(next http.Handler) http.Handler {
	secure := strings.HasPrefix(h.baseURL, "https://")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if c, err := r.Cookie(visitorCookie); err == nil {
			if _, perr := uuid.Parse(c.Value); perr == nil {
				id = c.Value
			}
		}
		if id == "" {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     visitorCookie,
				Value:    id,
				Path:     "/",
				MaxAge:   int(visitorMaxAge.Seconds()),
				HttpOnly: true,
				Secure:   secure,
				SameSite: http.SameSiteLaxMode,
			})
		}
		ctx := requestcontext.WithVisitorID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
