package site_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"atelier/internal/boundary"
	"atelier/internal/content"
	"atelier/internal/content/mocks"
	"atelier/internal/site"
	"atelier/pkg/platform/sentinel"
)

var now = time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)

func seeded() *content.Memory {
	m := content.NewMemory()
	content.Seed(m, now)
	return m
}

func TestLookup(t *testing.T) {
	sites := site.All()
	require.Len(t, sites, 3)

	s, ok := site.Lookup(sites, "casefiles")
	require.True(t, ok)
	assert.True(t, s.Cases)
	assert.False(t, s.Blog)
	assert.Equal(t, "/casefiles/", s.HomeURL())
	assert.Equal(t, "/casefiles/about", s.URL("about"))

	_, ok = site.Lookup(sites, "nope")
	assert.False(t, ok)
}

func TestEveryPageRenders(t *testing.T) {
	repo := seeded()
	for _, s := range site.All() {
		for _, p := range s.Pages() {
			t.Run(s.Key+"/"+p.Slug, func(t *testing.T) {
				res := p.Build(site.Env{Site: s, Repo: repo}).Render(context.Background())
				require.True(t, res.OK())
				assert.NotEmpty(t, res.HTML())
			})
		}
	}
}

func TestCoachingHomeListsPosts(t *testing.T) {
	s := site.Coaching()
	home, ok := s.Page("")
	require.True(t, ok)

	res := home.Build(site.Env{Site: s, Repo: seeded()}).Render(context.Background())
	require.True(t, res.OK())
	html := string(res.HTML())
	assert.Contains(t, html, "North Star Coaching")
	assert.Contains(t, html, `href="/coaching/posts/habits"`)
	assert.NotContains(t, html, "rebuild")
}

func TestRecentPostsFailureFaultsPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	repo.EXPECT().ListPosts(gomock.Any(), "portfolio").Return(nil, sentinel.ErrUnavailable)

	s := site.Portfolio()
	home, _ := s.Page("")
	res := home.Build(site.Env{Site: s, Repo: repo}).Render(context.Background())

	rec, failed := res.Fault()
	require.True(t, failed)
	assert.Equal(t, []string{"RecentPosts", "PortfolioHome"}, rec.ComponentStack)
}

func TestRatingsBoundaryContainsFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	repo.EXPECT().RatingSummary(gomock.Any(), "midnight-deploy").Return(content.RatingSummary{}, errors.New("connection reset"))

	var reported []boundary.ErrorRecord
	ratings := boundary.New(site.Ratings(repo, site.CaseFiles(), "midnight-deploy"),
		boundary.WithName("RatingsBoundary"),
		boundary.WithFallback(site.RatingsUnavailable),
		boundary.WithCollector(boundary.CollectorFunc(func(_ context.Context, rec boundary.ErrorRecord, _ boundary.ReportContext) {
			reported = append(reported, rec)
		})),
	)
	article := site.CaseArticle(content.CaseFile{Slug: "midnight-deploy", Title: "The Midnight Deploy", Status: "open"}, ratings)

	res := article.Render(context.Background())
	require.True(t, res.OK())
	html := string(res.HTML())
	assert.Contains(t, html, "The Midnight Deploy")
	assert.Contains(t, html, "Ratings are unavailable right now.")
	require.Len(t, reported, 1)
	assert.Contains(t, reported[0].Message, "connection reset")
}

func TestRatingsWidget(t *testing.T) {
	repo := seeded()
	ctx := context.Background()
	for _, score := range []int{4, 5} {
		r, err := content.NewRating("the-missing-invoice", score, now)
		require.NoError(t, err)
		require.NoError(t, repo.AddRating(ctx, r))
	}

	res := site.Ratings(repo, site.CaseFiles(), "the-missing-invoice").Render(ctx)
	require.True(t, res.OK())
	html := string(res.HTML())
	assert.Contains(t, html, "4.5 / 5 from 2 ratings")
	assert.Contains(t, html, `action="/casefiles/cases/the-missing-invoice/ratings"`)
	assert.Equal(t, content.MaxScore-content.MinScore+1, strings.Count(html, "<option"))
}

func TestFaultDrill(t *testing.T) {
	res := site.FaultDrill().Render(context.Background())
	rec, failed := res.Fault()
	require.True(t, failed)
	assert.Equal(t, "panic", rec.Kind)
	assert.Equal(t, []string{"FaultDrill"}, rec.ComponentStack)
}

func TestShellAndDocument(t *testing.T) {
	s := site.Coaching()
	res := site.Shell(s, true, boundary.Text("hello")).Render(context.Background())
	require.True(t, res.OK())
	body := string(res.HTML())
	assert.Contains(t, body, "Switch to light")
	assert.Contains(t, body, `action="/coaching/theme"`)
	assert.Contains(t, body, `<main>hello</main>`)

	var buf bytes.Buffer
	require.NoError(t, site.RenderDocument(&buf, site.Document{Site: s, Title: "Home", RootClass: "dark", Body: res.HTML()}))
	doc := buf.String()
	assert.Contains(t, doc, `<html lang="en" class="dark">`)
	assert.Contains(t, doc, "theme/ambient")

	buf.Reset()
	require.NoError(t, site.RenderDocument(&buf, site.Document{Title: "Sites"}))
	assert.Contains(t, buf.String(), `<html lang="en">`)
	assert.NotContains(t, buf.String(), "<script>")
}

func TestSitemap(t *testing.T) {
	out, err := site.Sitemap(context.Background(), site.Coaching(), "https://example.com", seeded())
	require.NoError(t, err)
	xml := string(out)
	assert.True(t, strings.HasPrefix(xml, "<?xml"))
	assert.Contains(t, xml, `xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"`)
	assert.Contains(t, xml, "<loc>https://example.com/coaching/</loc>")
	assert.Contains(t, xml, "<loc>https://example.com/coaching/about</loc>")
	assert.Contains(t, xml, "<loc>https://example.com/coaching/posts/first-session</loc>")
	assert.Contains(t, xml, "<lastmod>2026-03-10</lastmod>")

	out, err = site.Sitemap(context.Background(), site.CaseFiles(), "", seeded())
	require.NoError(t, err)
	assert.Contains(t, string(out), "<loc>/casefiles/cases/midnight-deploy</loc>")
}

func TestSitemap_RepositoryFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	repo.EXPECT().ListCaseFiles(gomock.Any()).Return(nil, sentinel.ErrUnavailable)

	_, err := site.Sitemap(context.Background(), site.CaseFiles(), "", repo)
	require.ErrorIs(t, err, sentinel.ErrUnavailable)
}
