// Package site defines the three sites served by the host and the components their
// pages are composed from.
package site

import (
	"atelier/internal/boundary"
	"atelier/internal/content"
)

// Env is what page builders may draw on.
type Env struct {
	Site *Site
	Repo content.Repository
}

// Page is one static route of a site. Slug "" is the site's home page.
type Page struct {
	Slug  string
	Title string
	Build func(env Env) boundary.Component
}

// Site is one of the marketing sites.
type Site struct {
	Key     string
	Title   string
	Tagline string
	// Blog enables /posts routes, Cases enables /cases routes.
	Blog  bool
	Cases bool
	pages []Page
}

// Pages returns the static pages in navigation order.
func (s *Site) Pages() []Page {
	return s.pages
}

// Page looks up a static page by slug.
func (s *Site) Page(slug string) (Page, bool) {
	for _, p := range s.pages {
		if p.Slug == slug {
			return p, true
		}
	}
	return Page{}, false
}

// HomeURL is the site's root route.
func (s *Site) HomeURL() string {
	return "/" + s.Key + "/"
}

// URL returns the route of a page slug.
func (s *Site) URL(slug string) string {
	return s.HomeURL() + slug
}

// All returns every site in index order.
func All() []*Site {
	return []*Site{Coaching(), Portfolio(), CaseFiles()}
}

// Lookup finds a site by key.
func Lookup(sites []*Site, key string) (*Site, bool) {
	for _, s := range sites {
		if s.Key == key {
			return s, true
		}
	}
	return nil, false
}

func Coaching() *Site {
	return &Site{
		Key:     "coaching",
		Title:   "North Star Coaching",
		Tagline: "One conversation at a time.",
		Blog:    true,
		pages: []Page{
			{Slug: "", Title: "Home", Build: func(env Env) boundary.Component {
				return boundary.Group("CoachingHome",
					Hero(env.Site.Title, env.Site.Tagline),
					Services([]string{"1:1 coaching", "Team workshops", "Leadership intensives"}),
					RecentPosts(env.Repo, env.Site, 3),
				)
			}},
			{Slug: "about", Title: "About", Build: func(env Env) boundary.Component {
				return Prose("About", "About", "Coaching for people who build things.")
			}},
			{Slug: "blog", Title: "Blog", Build: func(env Env) boundary.Component {
				return RecentPosts(env.Repo, env.Site, 0)
			}},
			{Slug: "contact", Title: "Contact", Build: func(env Env) boundary.Component {
				return Prose("Contact", "Contact", "Write to hello@example.com to book an intro call.")
			}},
		},
	}
}

func Portfolio() *Site {
	return &Site{
		Key:     "portfolio",
		Title:   "Portfolio",
		Tagline: "Selected work and writing.",
		Blog:    true,
		pages: []Page{
			{Slug: "", Title: "Home", Build: func(env Env) boundary.Component {
				return boundary.Group("PortfolioHome",
					Hero(env.Site.Title, env.Site.Tagline),
					RecentPosts(env.Repo, env.Site, 5),
				)
			}},
			{Slug: "work", Title: "Work", Build: func(env Env) boundary.Component {
				return Services([]string{"Product design", "Frontend engineering", "Design systems"})
			}},
			{Slug: "resume", Title: "Resume", Build: func(env Env) boundary.Component {
				return Prose("Resume", "Resume", "Available on request.")
			}},
		},
	}
}

func CaseFiles() *Site {
	return &Site{
		Key:     "casefiles",
		Title:   "The Case Files",
		Tagline: "Incidents, investigated.",
		Cases:   true,
		pages: []Page{
			{Slug: "", Title: "Home", Build: func(env Env) boundary.Component {
				return boundary.Group("CaseFilesHome",
					Hero(env.Site.Title, env.Site.Tagline),
					CaseList(env.Repo, env.Site),
				)
			}},
			{Slug: "about", Title: "About", Build: func(env Env) boundary.Component {
				return Prose("About", "About", "Write-ups of things that went wrong, and why.")
			}},
		},
	}
}
