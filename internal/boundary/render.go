package boundary

import (
	"bytes"
	"context"
	"html/template"
	"strings"
)

// Result is the outcome of one render step: Ok carries markup, Failed carries the
// captured record. The zero Result is Ok with empty markup.
type Result struct {
	html  template.HTML
	fault *ErrorRecord
}

func Ok(html template.HTML) Result {
	return Result{html: html}
}

func Failed(rec ErrorRecord) Result {
	return Result{fault: &rec}
}

func (r Result) OK() bool {
	return r.fault == nil
}

// HTML returns the rendered markup; empty for a Failed result.
func (r Result) HTML() template.HTML {
	return r.html
}

// Fault returns the captured record and true for a Failed result.
func (r Result) Fault() (ErrorRecord, bool) {
	if r.fault == nil {
		return ErrorRecord{}, false
	}
	return *r.fault, true
}

func (r Result) within(name string) Result {
	if r.fault == nil {
		return r
	}
	return Failed(r.fault.within(name))
}

// Component is a render unit.
type Component interface {
	Render(ctx context.Context) Result
}

// ComponentFunc renders markup or returns an error.
type ComponentFunc func(ctx context.Context) (template.HTML, error)

type element struct {
	name string
	fn   ComponentFunc
}

// Element wraps fn as a named render step. Errors and panics become Failed.
func Element(name string, fn ComponentFunc) Component {
	return element{name: name, fn: fn}
}

func (e element) Render(ctx context.Context) (res Result) {
	defer func() {
		if v := recover(); v != nil {
			res = Failed(RecordPanic(e.name, v))
		}
	}()
	html, err := e.fn(ctx)
	if err != nil {
		return Failed(RecordError(e.name, err))
	}
	return Ok(html)
}

type group struct {
	name     string
	children []Component
}

// Group concatenates children in order. The first Failed child stops rendering and
// is returned with name added to its component stack.
func Group(name string, children ...Component) Component {
	return group{name: name, children: children}
}

func (g group) Render(ctx context.Context) Result {
	var b strings.Builder
	for _, child := range g.children {
		res := renderSafely(ctx, child)
		if !res.OK() {
			return res.within(g.name)
		}
		b.WriteString(string(res.html))
	}
	return Ok(template.HTML(b.String()))
}

type lazy struct {
	name  string
	build func(ctx context.Context) (Component, error)
}

// Lazy defers building a subtree until render time, for subtrees that depend on
// fetched data. A build error fails the same way an Element error does.
func Lazy(name string, build func(ctx context.Context) (Component, error)) Component {
	return lazy{name: name, build: build}
}

func (l lazy) Render(ctx context.Context) (res Result) {
	defer func() {
		if v := recover(); v != nil {
			res = Failed(RecordPanic(l.name, v))
		}
	}()
	child, err := l.build(ctx)
	if err != nil {
		return Failed(RecordError(l.name, err))
	}
	return renderSafely(ctx, child).within(l.name)
}

// Text renders s escaped.
func Text(s string) Component {
	return static(template.HTML(template.HTMLEscapeString(s)))
}

// HTML renders trusted markup as-is.
func HTML(h template.HTML) Component {
	return static(h)
}

type static template.HTML

func (s static) Render(context.Context) Result {
	return Ok(template.HTML(s))
}

// Template executes tmpl with data as a named Element.
func Template(name string, tmpl *template.Template, data any) Component {
	return Element(name, func(context.Context) (template.HTML, error) {
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return "", err
		}
		return template.HTML(buf.String()), nil
	})
}

// renderSafely guards against Component implementations outside this package that
// panic instead of returning Failed. The caller names the frame.
func renderSafely(ctx context.Context, c Component) (res Result) {
	if c == nil {
		return Ok("")
	}
	defer func() {
		if v := recover(); v != nil {
			res = Failed(RecordPanic("", v))
		}
	}()
	return c.Render(ctx)
}
