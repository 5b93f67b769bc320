package httptransport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"atelier/internal/boundary"
	"atelier/internal/content"
	"atelier/internal/content/mocks"
	"atelier/internal/platform/metrics"
	"atelier/internal/preference/ambient"
	"atelier/internal/preference/store"
	"atelier/internal/site"
	"atelier/pkg/platform/sentinel"
	"atelier/pkg/testutil"
)

type reports struct {
	records  []boundary.ErrorRecord
	contexts []boundary.ReportContext
}

func (r *reports) Report(_ context.Context, rec boundary.ErrorRecord, rc boundary.ReportContext) {
	r.records = append(r.records, rec)
	r.contexts = append(r.contexts, rc)
}

func seededRepo() *content.Memory {
	m := content.NewMemory()
	content.Seed(m, time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC))
	return m
}

func newTestRouter(t *testing.T, repo content.Repository, opts ...Option) (http.Handler, *reports) {
	t.Helper()
	collected := &reports{}
	base := []Option{WithMetrics(metrics.NewWithRegisterer(prometheus.NewRegistry())), WithBaseURL("https://example.com")}
	h := New(repo, collected, CookieStores(), append(base, opts...)...)
	return h.Router(), collected
}

func TestIndexListsSites(t *testing.T) {
	router, _ := newTestRouter(t, seededRepo())
	rec := testutil.DoRequest(router, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `href="/coaching/"`)
	assert.Contains(t, body, `href="/portfolio/"`)
	assert.Contains(t, body, `href="/casefiles/"`)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	require.NotNil(t, testutil.ResponseCookie(rec, visitorCookie))
}

func TestPageFollowsAmbientHint(t *testing.T) {
	router, _ := newTestRouter(t, seededRepo())

	rec := testutil.DoRequest(router, httptest.NewRequest(http.MethodGet, "/coaching/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<html lang="en">`)
	assert.Equal(t, ambient.HintHeader, rec.Header().Get("Accept-CH"))

	req := httptest.NewRequest(http.MethodGet, "/coaching/", nil)
	req.Header.Set(ambient.HintHeader, "dark")
	rec = testutil.DoRequest(router, req)
	assert.Contains(t, rec.Body.String(), `<html lang="en" class="dark">`)
	assert.Contains(t, rec.Body.String(), "Switch to light")
}

func TestPersistedThemeBeatsAmbient(t *testing.T) {
	router, _ := newTestRouter(t, seededRepo())
	req := httptest.NewRequest(http.MethodGet, "/portfolio/work", nil)
	req.Header.Set(ambient.HintHeader, "light")
	req.AddCookie(&http.Cookie{Name: "theme", Value: "dark"})

	rec := testutil.DoRequest(router, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `class="dark"`)
}

func TestToggle(t *testing.T) {
	router, _ := newTestRouter(t, seededRepo())

	t.Run("json client gets the new state and a cookie", func(t *testing.T) {
		rec := testutil.DoRequest(router, testutil.NewScriptRequest(t, http.MethodPost, "/coaching/theme", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, themeResponse{Mode: "dark", Source: "user", Class: "dark"}, testutil.UnmarshalResponse[themeResponse](t, rec))
		ck := testutil.ResponseCookie(rec, "theme")
		require.NotNil(t, ck)
		assert.Equal(t, "dark", ck.Value)
	})

	t.Run("persisted dark toggles to light", func(t *testing.T) {
		req := testutil.NewScriptRequest(t, http.MethodPost, "/coaching/theme", nil)
		req.AddCookie(&http.Cookie{Name: "theme", Value: "dark"})
		rec := testutil.DoRequest(router, req)
		assert.Equal(t, themeResponse{Mode: "light", Source: "user", Class: ""}, testutil.UnmarshalResponse[themeResponse](t, rec))
	})

	t.Run("form post redirects back to the page", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/coaching/theme", nil)
		req.Header.Set("Referer", "http://example.com/coaching/about")
		rec := testutil.DoRequest(router, req)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/coaching/about", rec.Header().Get("Location"))
	})

	t.Run("foreign referer redirects home", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/coaching/theme", nil)
		req.Header.Set("Referer", "https://elsewhere.test/coaching/about")
		rec := testutil.DoRequest(router, req)
		assert.Equal(t, "/coaching/", rec.Header().Get("Location"))
	})
}

func TestReset(t *testing.T) {
	router, _ := newTestRouter(t, seededRepo())

	for _, tc := range []struct {
		method, target string
	}{
		{http.MethodDelete, "/casefiles/theme"},
		{http.MethodPost, "/casefiles/theme/reset"},
	} {
		t.Run(tc.method, func(t *testing.T) {
			req := testutil.NewScriptRequest(t, tc.method, tc.target, nil)
			req.Header.Set(ambient.HintHeader, "dark")
			req.AddCookie(&http.Cookie{Name: "theme", Value: "light"})
			rec := testutil.DoRequest(router, req)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, themeResponse{Mode: "dark", Source: "ambient", Class: "dark"}, testutil.UnmarshalResponse[themeResponse](t, rec))
			ck := testutil.ResponseCookie(rec, "theme")
			require.NotNil(t, ck)
			assert.Negative(t, ck.MaxAge)
		})
	}
}

func TestAmbientChange(t *testing.T) {
	router, _ := newTestRouter(t, seededRepo())

	t.Run("applies while nothing is persisted", func(t *testing.T) {
		rec := testutil.DoRequest(router, testutil.NewScriptRequest(t, http.MethodPost, "/coaching/theme/ambient", url.Values{"prefers_dark": {"true"}}))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, themeResponse{Mode: "dark", Source: "ambient", Class: "dark"}, testutil.UnmarshalResponse[themeResponse](t, rec))
	})

	t.Run("ignored once a choice is persisted", func(t *testing.T) {
		req := testutil.NewScriptRequest(t, http.MethodPost, "/coaching/theme/ambient", url.Values{"prefers_dark": {"true"}})
		req.AddCookie(&http.Cookie{Name: "theme", Value: "light"})
		rec := testutil.DoRequest(router, req)
		assert.Equal(t, themeResponse{Mode: "light", Source: "persisted", Class: ""}, testutil.UnmarshalResponse[themeResponse](t, rec))
	})

	t.Run("rejects a non-boolean", func(t *testing.T) {
		rec := testutil.DoRequest(router, testutil.NewScriptRequest(t, http.MethodPost, "/coaching/theme/ambient", url.Values{"prefers_dark": {"maybe"}}))
		testutil.AssertStatus(t, rec, http.StatusBadRequest)
		testutil.AssertErrorCode(t, rec, "invalid_request")
	})
}

func TestMemoryStoresFollowVisitor(t *testing.T) {
	mem := store.NewMemory()
	h := New(seededRepo(), nil, MemoryStores(mem), WithMetrics(metrics.NewWithRegisterer(prometheus.NewRegistry())))
	router := h.Router()

	first := testutil.DoRequest(router, testutil.NewScriptRequest(t, http.MethodPost, "/portfolio/theme", nil))
	require.Equal(t, http.StatusOK, first.Code)
	visitor := testutil.ResponseCookie(first, visitorCookie)
	require.NotNil(t, visitor)

	req := httptest.NewRequest(http.MethodGet, "/portfolio/", nil)
	req.AddCookie(visitor)
	assert.Contains(t, testutil.DoRequest(router, req).Body.String(), `class="dark"`)

	stranger := testutil.DoRequest(router, httptest.NewRequest(http.MethodGet, "/portfolio/", nil))
	assert.NotContains(t, stranger.Body.String(), `class="dark"`)
}

func TestPosts(t *testing.T) {
	router, _ := newTestRouter(t, seededRepo())

	rec := testutil.DoRequest(router, httptest.NewRequest(http.MethodGet, "/coaching/posts/habits", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Small habits, long horizons")
	assert.Contains(t, rec.Body.String(), "<title>Small habits, long horizons | North Star Coaching</title>")

	assert.Equal(t, http.StatusNotFound, testutil.DoRequest(router, httptest.NewRequest(http.MethodGet, "/coaching/posts/rebuild", nil)).Code)
	assert.Equal(t, http.StatusNotFound, testutil.DoRequest(router, httptest.NewRequest(http.MethodGet, "/casefiles/posts/habits", nil)).Code)
	assert.Equal(t, http.StatusNotFound, testutil.DoRequest(router, httptest.NewRequest(http.MethodGet, "/coaching/nope", nil)).Code)
	assert.Equal(t, http.StatusNotFound, testutil.DoRequest(router, httptest.NewRequest(http.MethodGet, "/unknown/", nil)).Code)
}

func TestPageFaultRendersFallbackAndReportsOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	repo.EXPECT().ListPosts(gomock.Any(), "coaching").Return(nil, sentinel.ErrUnavailable)

	router, collected := newTestRouter(t, repo)
	req := httptest.NewRequest(http.MethodGet, "/coaching/blog", nil)
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64; rv:128.0) Gecko/20100101 Firefox/128.0")
	rec := testutil.DoRequest(router, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `role="alert"`)
	assert.Contains(t, body, `href="/coaching/blog" data-action="reload"`)
	assert.Contains(t, body, `href="/coaching/" data-action="home"`)
	assert.NotContains(t, body, "<details")

	require.Len(t, collected.records, 1)
	rc := collected.contexts[0]
	assert.Equal(t, "coaching", rc.Site)
	assert.Equal(t, appBoundary, rc.Boundary)
	assert.Equal(t, "/coaching/blog", rc.Path)
	assert.Equal(t, "Firefox 128.0", rc.Browser)
	assert.Equal(t, rec.Header().Get("X-Request-ID"), rc.RequestID)
	assert.Contains(t, rc.ComponentStack, "in RecentPosts")
}

func TestCaseRatingsFailureIsContained(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	repo.EXPECT().GetCaseFile(gomock.Any(), "midnight-deploy").
		Return(content.CaseFile{Slug: "midnight-deploy", Title: "The Midnight Deploy", Status: "open"}, nil)
	repo.EXPECT().RatingSummary(gomock.Any(), "midnight-deploy").Return(content.RatingSummary{}, sentinel.ErrUnavailable)

	router, collected := newTestRouter(t, repo)
	rec := testutil.DoRequest(router, httptest.NewRequest(http.MethodGet, "/casefiles/cases/midnight-deploy", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "The Midnight Deploy")
	assert.Contains(t, body, "Ratings are unavailable right now.")
	assert.NotContains(t, body, `role="alert"`)
	require.Len(t, collected.contexts, 1)
	assert.Equal(t, "RatingsBoundary", collected.contexts[0].Boundary)
}

func TestFaultDrill(t *testing.T) {
	t.Run("not mounted without diagnostics", func(t *testing.T) {
		router, _ := newTestRouter(t, seededRepo())
		rec := testutil.DoRequest(router, httptest.NewRequest(http.MethodGet, "/portfolio/_fault", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("diagnostics builds show details", func(t *testing.T) {
		router, collected := newTestRouter(t, seededRepo(), WithDiagnostics(true))
		rec := testutil.DoRequest(router, httptest.NewRequest(http.MethodGet, "/portfolio/_fault", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "<details")
		assert.Contains(t, body, "fault drill: intentional render failure")
		require.Len(t, collected.records, 1)
	})
}

func TestHandlerPanicIsRecovered(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	repo.EXPECT().AddRating(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, content.Rating) error {
		panic("driver exploded")
	})

	router, collected := newTestRouter(t, repo)
	rec := testutil.DoRequest(router, testutil.NewFormRequest(t, http.MethodPost, "/casefiles/cases/midnight-deploy/ratings", url.Values{"score": {"4"}}))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `role="alert"`)
	assert.Contains(t, rec.Body.String(), `href="/casefiles/" data-action="reload"`)
	require.Len(t, collected.records, 1)
	assert.Equal(t, "panic", collected.records[0].Kind)
}

func TestRate(t *testing.T) {
	repo := seededRepo()
	router, _ := newTestRouter(t, repo)

	form := func(score string) *http.Request {
		return testutil.NewFormRequest(t, http.MethodPost, "/casefiles/cases/the-missing-invoice/ratings", url.Values{"score": {score}})
	}

	rec := testutil.DoRequest(router, form("5"))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/casefiles/cases/the-missing-invoice", rec.Header().Get("Location"))

	assert.Equal(t, http.StatusBadRequest, testutil.DoRequest(router, form("9")).Code)
	assert.Equal(t, http.StatusBadRequest, testutil.DoRequest(router, form("five")).Code)

	rec = testutil.DoRequest(router, testutil.NewScriptRequest(t, http.MethodPost, "/casefiles/cases/the-missing-invoice/ratings", url.Values{"score": {"3"}}))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, ratingResponse{Count: 2, Average: 4}, testutil.UnmarshalResponse[ratingResponse](t, rec))

	rec = testutil.DoRequest(router, testutil.NewScriptRequest(t, http.MethodPost, "/casefiles/cases/nope/ratings", url.Values{"score": {"3"}}))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSitemapRoute(t *testing.T) {
	router, _ := newTestRouter(t, seededRepo())
	rec := testutil.DoRequest(router, httptest.NewRequest(http.MethodGet, "/portfolio/sitemap.xml", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/xml; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<loc>https://example.com/portfolio/posts/rebuild</loc>")
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter(t, seededRepo(), WithHealthCheck("redis", func(context.Context) error { return nil }))
	rec := testutil.DoRequest(router, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","checks":{"redis":"ok"}}`, rec.Body.String())

	router, _ = newTestRouter(t, seededRepo(), WithHealthCheck("postgres", func(context.Context) error { return sentinel.ErrUnavailable }))
	rec = testutil.DoRequest(router, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"degraded"`)
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, seededRepo())
	rec := testutil.DoRequest(router, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBackTo(t *testing.T) {
	s := siteFromKey(t, "coaching")
	tests := []struct {
		referer string
		want    string
	}{
		{"", "/coaching/"},
		{"/coaching/blog?page=2", "/coaching/blog?page=2"},
		{"/portfolio/", "/coaching/"},
		{"::not a url", "/coaching/"},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodPost, "/coaching/theme", nil)
		req.Header.Set("Referer", tt.referer)
		assert.Equal(t, tt.want, backTo(req, s), tt.referer)
	}
}

func siteFromKey(t *testing.T, key string) *site.Site {
	t.Helper()
	s, ok := site.Lookup(site.All(), key)
	require.True(t, ok)
	return s
}
