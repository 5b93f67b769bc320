package site

import (
	"context"
	"encoding/xml"
	"fmt"
	"time"

	"atelier/internal/content"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlset struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// Sitemap renders sitemap.xml for one site: its static pages followed by its posts
// or case files.
func Sitemap(ctx context.Context, s *Site, baseURL string, repo content.Repository) ([]byte, error) {
	set := urlset{XMLNS: sitemapNS}
	for _, p := range s.Pages() {
		set.URLs = append(set.URLs, sitemapURL{Loc: baseURL + s.URL(p.Slug)})
	}
	if s.Blog {
		posts, err := repo.ListPosts(ctx, s.Key)
		if err != nil {
			return nil, fmt.Errorf("list posts for sitemap: %w", err)
		}
		for _, p := range posts {
			set.URLs = append(set.URLs, sitemapURL{
				Loc:     baseURL + s.URL("posts/"+p.Slug),
				LastMod: p.PublishedAt.UTC().Format(time.DateOnly),
			})
		}
	}
	if s.Cases {
		cases, err := repo.ListCaseFiles(ctx)
		if err != nil {
			return nil, fmt.Errorf("list case files for sitemap: %w", err)
		}
		for _, c := range cases {
			set.URLs = append(set.URLs, sitemapURL{
				Loc:     baseURL + s.URL("cases/"+c.Slug),
				LastMod: c.OpenedAt.UTC().Format(time.DateOnly),
			})
		}
	}
	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode sitemap: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}
