package site

import (
	"html/template"
	"io"

	"atelier/internal/boundary"
)

// Document is the data for the outer page: everything outside the application shell.
// The shell itself renders behind the request's boundary, the document never fails.
type Document struct {
	Site      *Site
	Title     string
	RootClass string
	Body      template.HTML
}

var document = template.Must(template.New("document").Parse(`<!doctype html>
<html lang="en"{{with .RootClass}} class="{{.}}"{{end}}>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta name="color-scheme" content="light dark">
<title>{{.Title}}</title>
</head>
<body>
{{.Body}}
{{with .Site}}<script>
(function () {
  var mq = window.matchMedia("(prefers-color-scheme: dark)");
  mq.addEventListener("change", function (e) {
    fetch({{.HomeURL}} + "theme/ambient", {
      method: "POST",
      headers: {"Content-Type": "application/x-www-form-urlencoded", "Accept": "application/json"},
      body: "prefers_dark=" + e.matches
    }).then(function (r) { return r.json(); }).then(function (s) {
      document.documentElement.classList.toggle("dark", s.mode === "dark");
    });
  });
})();
</script>{{end}}
</body>
</html>
`))

// RenderDocument writes the full HTML document.
func RenderDocument(w io.Writer, d Document) error {
	return document.Execute(w, d)
}

var shell = template.Must(template.New("shell").Parse(`
{{define "header"}}<header class="site-header"><a class="brand" href="{{.Site.HomeURL}}">{{.Site.Title}}</a><nav><ul>{{range .Site.Pages}}{{if .Slug}}<li><a href="{{$.Site.URL .Slug}}">{{.Title}}</a></li>{{end}}{{end}}</ul></nav><form method="post" action="{{.Site.HomeURL}}theme" class="theme-toggle"><button type="submit" aria-pressed="{{.Dark}}">{{if .Dark}}Switch to light{{else}}Switch to dark{{end}}</button></form><form method="post" action="{{.Site.HomeURL}}theme/reset" class="theme-reset"><button type="submit">Use system setting</button></form></header>{{end}}
{{define "footer"}}<footer class="site-footer"><p>{{.Site.Title}}</p><a href="{{.Site.HomeURL}}sitemap.xml">Sitemap</a></footer>{{end}}
{{define "index"}}<main class="index"><h1>Sites</h1><ul>{{range .}}<li><a href="{{.HomeURL}}">{{.Title}}</a><p>{{.Tagline}}</p></li>{{end}}</ul></main>{{end}}
`))

// Shell is the application shell of a site page: header with the theme controls,
// the page's main content, and the footer.
func Shell(s *Site, dark bool, main boundary.Component) boundary.Component {
	data := map[string]any{"Site": s, "Dark": dark}
	return boundary.Group("App",
		boundary.Template("Header", shell.Lookup("header"), data),
		boundary.Group("Main", boundary.HTML(`<main>`), main, boundary.HTML(`</main>`)),
		boundary.Template("Footer", shell.Lookup("footer"), data),
	)
}

// Index lists every site.
func Index(sites []*Site) boundary.Component {
	return boundary.Template("Index", shell.Lookup("index"), sites)
}
