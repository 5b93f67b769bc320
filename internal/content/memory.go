package content

import (
	"context"
	"sort"
	"sync"
	"time"

	"atelier/pkg/platform/sentinel"
	pstrings "atelier/pkg/platform/strings"
)

// Memory is an in-process Repository.
type Memory struct {
	mu      sync.RWMutex
	posts   map[string]Post
	cases   map[string]CaseFile
	ratings map[string][]Rating
}

func NewMemory() *Memory {
	return &Memory{
		posts:   make(map[string]Post),
		cases:   make(map[string]CaseFile),
		ratings: make(map[string][]Rating),
	}
}

func postKey(site, slug string) string {
	return site + "/" + slug
}

// PutPost inserts or replaces a post.
func (m *Memory) PutPost(p Post) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.Tags = pstrings.DedupeAndTrimLower(p.Tags)
	m.posts[postKey(p.Site, p.Slug)] = p
}

// PutCaseFile inserts or replaces a case file.
func (m *Memory) PutCaseFile(c CaseFile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cases[c.Slug] = c
}

// ListPosts returns a site's posts, newest first.
func (m *Memory) ListPosts(_ context.Context, site string) ([]Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Post
	for _, p := range m.posts {
		if p.Site == site {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].PublishedAt.After(out[j].PublishedAt)
	})
	return out, nil
}

func (m *Memory) GetPost(_ context.Context, site, slug string) (Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.posts[postKey(site, slug)]
	if !ok {
		return Post{}, sentinel.ErrNotFound
	}
	return p, nil
}

// ListCaseFiles returns case files, most recently opened first.
func (m *Memory) ListCaseFiles(context.Context) ([]CaseFile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]CaseFile, 0, len(m.cases))
	for _, c := range m.cases {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].OpenedAt.After(out[j].OpenedAt)
	})
	return out, nil
}

func (m *Memory) GetCaseFile(_ context.Context, slug string) (CaseFile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.cases[slug]
	if !ok {
		return CaseFile{}, sentinel.ErrNotFound
	}
	return c, nil
}

func (m *Memory) AddRating(_ context.Context, rating Rating) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.cases[rating.CaseSlug]; !ok {
		return sentinel.ErrNotFound
	}
	m.ratings[rating.CaseSlug] = append(m.ratings[rating.CaseSlug], rating)
	return nil
}

func (m *Memory) RatingSummary(_ context.Context, caseSlug string) (RatingSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ratings := m.ratings[caseSlug]
	if len(ratings) == 0 {
		return RatingSummary{}, nil
	}
	total := 0
	for _, r := range ratings {
		total += r.Score
	}
	return RatingSummary{Count: len(ratings), Average: float64(total) / float64(len(ratings))}, nil
}

// Seed fills m with placeholder content for local runs.
func Seed(m *Memory, now time.Time) {
	m.PutPost(Post{
		Slug: "first-session", Site: "coaching", Title: "What a first session looks like",
		Summary: "An outline of the intake conversation.", Body: "We start with goals.",
		Tags: []string{"coaching"}, PublishedAt: now.AddDate(0, -2, 0),
	})
	m.PutPost(Post{
		Slug: "habits", Site: "coaching", Title: "Small habits, long horizons",
		Summary: "Why consistency beats intensity.", Body: "Pick one habit.",
		Tags: []string{"habits"}, PublishedAt: now.AddDate(0, -1, 0),
	})
	m.PutPost(Post{
		Slug: "rebuild", Site: "portfolio", Title: "Rebuilding the portfolio",
		Summary: "Notes from the redesign.", Body: "Less is more.",
		Tags: []string{"design"}, PublishedAt: now.AddDate(0, 0, -7),
	})
	m.PutCaseFile(CaseFile{
		Slug: "the-missing-invoice", Title: "The Missing Invoice",
		Summary: "A billing mystery.", Body: "It was never sent.", Status: "closed",
		OpenedAt: now.AddDate(0, -3, 0),
	})
	m.PutCaseFile(CaseFile{
		Slug: "midnight-deploy", Title: "The Midnight Deploy",
		Summary: "Who shipped on a Friday?", Body: "The logs tell all.", Status: "open",
		OpenedAt: now.AddDate(0, 0, -3),
	})
}
