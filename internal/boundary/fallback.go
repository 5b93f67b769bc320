package boundary

import (
	"bytes"
	"html/template"
)

// staticFallback is used when the default fallback cannot render.
const staticFallback template.HTML = `<div class="fault-fallback" role="alert">` +
	`<h2>Something went wrong</h2>` +
	`<a href="" data-action="reload">Reload page</a> <a href="/" data-action="home">Go home</a>` +
	`</div>`

// unavailableFallback replaces a custom fallback that panicked. It carries no
// actions: a custom fallback owns its region, which may be a small widget.
const unavailableFallback template.HTML = `<div class="fault-fallback" role="status">This section is unavailable.</div>`

var fallbackTemplate = template.Must(template.New("fallback").Parse(`<div class="fault-fallback" role="alert" aria-live="assertive">
  <h2>Something went wrong</h2>
  <p>This part of the page failed to load. The rest of the site is still available.</p>
  <div class="fault-actions">
    <a class="button" role="button" href="{{.ReloadURL}}" data-action="reload">Reload page</a>
    <a class="button" role="button" href="{{.HomeURL}}" data-action="home">Go home</a>
  </div>
  {{- if .Detail}}
  <details class="fault-details">
    <summary>Error details</summary>
    <p class="fault-message">{{.Detail.Kind}}: {{.Detail.Message}}</p>
    <pre class="fault-trace">{{.Detail.StackString}}{{.Detail.Trace}}</pre>
  </details>
  {{- end}}
</div>`))

type fallbackView struct {
	HomeURL   string
	ReloadURL string
	Detail    *ErrorRecord
}

func defaultFallback(state FaultState, diagnostics bool, nav Navigator) template.HTML {
	view := fallbackView{
		HomeURL:   nav.HomeURL(),
		ReloadURL: nav.ReloadURL(),
	}
	if diagnostics {
		view.Detail = state.Captured
	}
	var buf bytes.Buffer
	if err := fallbackTemplate.Execute(&buf, view); err != nil {
		return staticFallback
	}
	return template.HTML(buf.String())
}
