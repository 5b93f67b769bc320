package httptransport

import (
	"bytes"
	"context"
	"html/template"
	"net/http"

	"atelier/internal/boundary"
	"atelier/internal/document"
	"atelier/internal/preference"
	"atelier/internal/preference/ambient"
	"atelier/internal/site"
	"atelier/pkg/requestcontext"
)

const appBoundary = "AppBoundary"

// preferences is the per-request theme state: a controller bound to this request's
// store, ambient hint and document root.
type preferences struct {
	ctrl    *preference.Controller
	root    *document.Root
	ambient *ambient.Broadcaster
}

func (h *Handler) preferences(w http.ResponseWriter, r *http.Request) (*preferences, error) {
	root := document.NewRoot()
	amb := ambient.FromRequest(r)
	ctrl, err := preference.New(r.Context(), h.stores(w, r), amb, root,
		preference.WithLogger(h.logger),
		preference.WithMetrics(h.metrics),
	)
	if err != nil {
		return nil, err
	}
	return &preferences{ctrl: ctrl, root: root, ambient: amb}, nil
}

// mount builds a boundary for this request. Every request mounts fresh boundaries,
// so navigating is what resets a faulted page.
func (h *Handler) mount(r *http.Request, s *site.Site, child boundary.Component, opts ...boundary.Option) *boundary.Boundary {
	ctx := r.Context()
	nav := boundary.StaticNavigator{Home: "/", Reload: r.URL.RequestURI()}
	rc := boundary.ReportContext{
		RequestID: requestcontext.RequestID(ctx),
		Path:      r.URL.Path,
		Browser:   requestcontext.Browser(ctx),
	}
	if s != nil {
		nav.Home = s.HomeURL()
		rc.Site = s.Key
	}
	if r.Method != http.MethodGet {
		nav.Reload = nav.Home
	}
	base := []boundary.Option{
		boundary.WithName(appBoundary),
		boundary.WithCollector(h.collector),
		boundary.WithDiagnostics(h.diagnostics),
		boundary.WithNavigator(nav),
		boundary.WithReportContext(rc),
		boundary.WithLogger(h.logger),
	}
	return boundary.New(child, append(base, opts...)...)
}

func (h *Handler) mountRecovery(r *http.Request) *boundary.Boundary {
	return h.mount(r, siteFrom(r.Context()), nil)
}

// render writes a full page: the document around the site shell, the shell behind
// the request's boundary. A faulted boundary turns the status into a 500.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, s *site.Site, title string, main boundary.Component, status int) {
	ctx := r.Context()
	prefs, err := h.preferences(w, r)
	if err != nil {
		h.logger.ErrorContext(ctx, "preference controller unavailable", "error", err, "request_id", requestcontext.RequestID(ctx))
		h.writeFallback(w, r, http.StatusInternalServerError, h.failedPage(r, s, err))
		return
	}
	defer prefs.ctrl.Close()

	child := main
	if s != nil {
		child = site.Shell(s, prefs.ctrl.Mode() == preference.Dark, main)
	}
	b := h.mount(r, s, child)
	body := b.Render(ctx).HTML()
	if b.State().Status == boundary.Faulted {
		status = http.StatusInternalServerError
	}
	h.writeDocument(w, s, title, prefs.root.ClassAttr(), status, body)
}

// failedPage captures err into a fresh boundary and returns its fallback.
func (h *Handler) failedPage(r *http.Request, s *site.Site, err error) template.HTML {
	b := h.mount(r, s, nil)
	b.Capture(r.Context(), boundary.RecordError("Handler", err))
	return b.Render(r.Context()).HTML()
}

// writeFallback is the boundary.WriteFunc for panics escaping a handler.
func (h *Handler) writeFallback(w http.ResponseWriter, r *http.Request, status int, body template.HTML) {
	h.writeDocument(w, siteFrom(r.Context()), "Something went wrong", "", status, body)
}

func (h *Handler) writeDocument(w http.ResponseWriter, s *site.Site, title, rootClass string, status int, body template.HTML) {
	if s != nil {
		title = title + " | " + s.Title
	}
	var buf bytes.Buffer
	if err := site.RenderDocument(&buf, site.Document{Site: s, Title: title, RootClass: rootClass, Body: body}); err != nil {
		h.logger.Error("document render failed", "error", err)
		buf.Reset()
		buf.WriteString(string(body))
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Accept-CH", ambient.HintHeader)
	w.Header().Add("Vary", ambient.HintHeader)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// failing is a component that fails with err, so a fetch error surfaces through the
// page's boundary like any other render fault.
func failing(name string, err error) boundary.Component {
	return boundary.Element(name, func(context.Context) (template.HTML, error) {
		return "", err
	})
}
