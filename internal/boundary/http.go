package boundary

import (
	"html/template"
	"io"
	"net/http"
)

// MountFunc mounts a fresh boundary for one request.
type MountFunc func(r *http.Request) *Boundary

// WriteFunc writes a fallback body into a full page response.
type WriteFunc func(w http.ResponseWriter, r *http.Request, status int, body template.HTML)

// Recover is HTTP middleware that treats a panicking handler as a faulted subtree:
// it mounts a boundary for the request, captures the panic into it, and answers
// with the boundary's fallback. If the handler had already started its response
// the panic is still captured and reported, but no fallback is appended.
// http.ErrAbortHandler is re-raised untouched.
func Recover(mount MountFunc, write WriteFunc) func(http.Handler) http.Handler {
	if write == nil {
		write = writeRaw
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tw := &writeTracker{ResponseWriter: w}
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if v == http.ErrAbortHandler {
					panic(v)
				}
				b := mount(r)
				b.Capture(r.Context(), RecordPanic("Handler", v))
				if tw.wrote {
					// The response is already on the wire; the capture above logged it.
					return
				}
				write(w, r, http.StatusInternalServerError, b.Render(r.Context()).HTML())
			}()
			next.ServeHTTP(tw, r)
		})
	}
}

func writeRaw(w http.ResponseWriter, _ *http.Request, status int, body template.HTML) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, string(body))
}

// writeTracker notes whether a handler has started its response.
type writeTracker struct {
	http.ResponseWriter
	wrote bool
}

func (t *writeTracker) WriteHeader(code int) {
	t.wrote = true
	t.ResponseWriter.WriteHeader(code)
}

func (t *writeTracker) Write(b []byte) (int, error) {
	t.wrote = true
	return t.ResponseWriter.Write(b)
}

func (t *writeTracker) Unwrap() http.ResponseWriter {
	return t.ResponseWriter
}
