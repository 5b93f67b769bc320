package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"atelier/internal/site"
	"atelier/pkg/platform/sentinel"
	"atelier/pkg/requestcontext"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor translates infrastructure sentinels into HTTP status codes.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, sentinel.ErrInvalidValue):
		return http.StatusBadRequest, "invalid_request"
	case errors.Is(err, sentinel.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, sentinel.ErrUnavailable):
		return http.StatusServiceUnavailable, "unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// writeError centralizes error translation. Client errors carry their message,
// server errors are logged and answered generically.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	status, code := statusFor(err)
	message := http.StatusText(status)
	if status < http.StatusInternalServerError {
		message = err.Error()
	} else {
		h.logger.ErrorContext(ctx, "request failed", "error", err, "status", status, "request_id", requestcontext.RequestID(ctx))
	}
	if wantsJSON(r) {
		writeJSON(w, status, errorResponse{Error: code, Message: message})
		return
	}
	s := siteFrom(ctx)
	if s == nil {
		http.Error(w, message, status)
		return
	}
	h.render(w, r, s, http.StatusText(status), site.Prose("Error", http.StatusText(status), message), status)
}
