package site

import (
	"context"
	"fmt"
	"html/template"

	"atelier/internal/boundary"
	"atelier/internal/content"
)

var components = template.Must(template.New("components").Parse(`
{{define "hero"}}<section class="hero"><h1>{{.Title}}</h1><p class="tagline">{{.Tagline}}</p></section>{{end}}
{{define "prose"}}<section class="prose"><h2>{{.Heading}}</h2><p>{{.Text}}</p></section>{{end}}
{{define "services"}}<section class="services"><h2>What I do</h2><ul>{{range .}}<li>{{.}}</li>{{end}}</ul></section>{{end}}
{{define "posts"}}<section class="posts"><h2>Writing</h2>{{if .Posts}}<ul>{{range .Posts}}<li><a href="{{$.Base}}posts/{{.Slug}}">{{.Title}}</a> <time datetime="{{.PublishedAt.Format "2006-01-02"}}">{{.PublishedAt.Format "Jan 2, 2006"}}</time><p>{{.Summary}}</p></li>{{end}}</ul>{{else}}<p>Nothing published yet.</p>{{end}}</section>{{end}}
{{define "post"}}<article class="post"><h1>{{.Title}}</h1><time datetime="{{.PublishedAt.Format "2006-01-02"}}">{{.PublishedAt.Format "Jan 2, 2006"}}</time><div class="body">{{.Body}}</div>{{if .Tags}}<ul class="tags">{{range .Tags}}<li>{{.}}</li>{{end}}</ul>{{end}}</article>{{end}}
{{define "cases"}}<section class="cases"><h2>Case files</h2><ul>{{range .Cases}}<li class="case-{{.Status}}"><a href="{{$.Base}}cases/{{.Slug}}">{{.Title}}</a><p>{{.Summary}}</p></li>{{end}}</ul></section>{{end}}
{{define "case"}}<article class="case"><h1>{{.Title}}</h1><p class="status">Status: {{.Status}}</p><div class="body">{{.Body}}</div></article>{{end}}
{{define "ratings"}}<aside class="ratings"><h2>Reader rating</h2>{{if .Summary.Count}}<p>{{printf "%.1f" .Summary.Average}} / 5 from {{.Summary.Count}} ratings</p>{{else}}<p>Not rated yet.</p>{{end}}<form method="post" action="{{.Action}}"><label for="score">Your rating</label><select id="score" name="score">{{range .Scores}}<option value="{{.}}">{{.}}</option>{{end}}</select><button type="submit">Rate</button></form></aside>{{end}}
`))

func named(name, def string, data any) boundary.Component {
	return boundary.Template(name, components.Lookup(def), data)
}

func Hero(title, tagline string) boundary.Component {
	return named("Hero", "hero", map[string]string{"Title": title, "Tagline": tagline})
}

// Prose renders a heading and a paragraph.
func Prose(name, heading, text string) boundary.Component {
	return named(name, "prose", map[string]string{"Heading": heading, "Text": text})
}

func Services(items []string) boundary.Component {
	return named("Services", "services", items)
}

// RecentPosts lists a site's posts; limit 0 lists all of them.
func RecentPosts(repo content.Repository, s *Site, limit int) boundary.Component {
	return boundary.Lazy("RecentPosts", func(ctx context.Context) (boundary.Component, error) {
		posts, err := repo.ListPosts(ctx, s.Key)
		if err != nil {
			return nil, err
		}
		if limit > 0 && len(posts) > limit {
			posts = posts[:limit]
		}
		return named("PostList", "posts", map[string]any{"Base": s.HomeURL(), "Posts": posts}), nil
	})
}

// PostArticle renders an already fetched post.
func PostArticle(p content.Post) boundary.Component {
	return named("PostArticle", "post", p)
}

func CaseList(repo content.Repository, s *Site) boundary.Component {
	return boundary.Lazy("CaseList", func(ctx context.Context) (boundary.Component, error) {
		cases, err := repo.ListCaseFiles(ctx)
		if err != nil {
			return nil, err
		}
		return named("CaseFileList", "cases", map[string]any{"Base": s.HomeURL(), "Cases": cases}), nil
	})
}

// CaseArticle renders a fetched case file followed by its ratings widget. The widget
// sits behind its own boundary so a ratings outage only blanks the widget.
func CaseArticle(c content.CaseFile, ratings boundary.Component) boundary.Component {
	return boundary.Group("CaseArticle", named("CaseBody", "case", c), ratings)
}

// Ratings shows the rating summary and the rating form for one case file.
func Ratings(repo content.Repository, s *Site, slug string) boundary.Component {
	return boundary.Lazy("Ratings", func(ctx context.Context) (boundary.Component, error) {
		summary, err := repo.RatingSummary(ctx, slug)
		if err != nil {
			return nil, fmt.Errorf("load ratings for %s: %w", slug, err)
		}
		scores := make([]int, 0, content.MaxScore)
		for i := content.MaxScore; i >= content.MinScore; i-- {
			scores = append(scores, i)
		}
		return named("RatingsWidget", "ratings", map[string]any{
			"Summary": summary,
			"Action":  s.HomeURL() + "cases/" + slug + "/ratings",
			"Scores":  scores,
		}), nil
	})
}

// RatingsUnavailable is the ratings widget's fallback.
func RatingsUnavailable(context.Context, boundary.FaultState) template.HTML {
	return `<aside class="ratings ratings-unavailable"><p>Ratings are unavailable right now.</p></aside>`
}

// FaultDrill always fails; development builds mount it to exercise the boundary.
func FaultDrill() boundary.Component {
	return boundary.Element("FaultDrill", func(context.Context) (template.HTML, error) {
		panic("fault drill: intentional render failure")
	})
}
