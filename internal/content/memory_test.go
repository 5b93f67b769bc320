package content

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelier/pkg/platform/sentinel"
)

var seedTime = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func TestMemory_Posts(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	Seed(m, seedTime)

	posts, err := m.ListPosts(ctx, "coaching")
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "habits", posts[0].Slug, "newest first")

	_, err = m.GetPost(ctx, "portfolio", "habits")
	assert.ErrorIs(t, err, sentinel.ErrNotFound, "posts are scoped to their site")

	p, err := m.GetPost(ctx, "portfolio", "rebuild")
	require.NoError(t, err)
	assert.Equal(t, "Rebuilding the portfolio", p.Title)
}

func TestMemory_Ratings(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	Seed(m, seedTime)

	summary, err := m.RatingSummary(ctx, "midnight-deploy")
	require.NoError(t, err)
	assert.Zero(t, summary.Count)

	for _, score := range []int{5, 4} {
		r, err := NewRating("midnight-deploy", score, seedTime)
		require.NoError(t, err)
		require.NoError(t, m.AddRating(ctx, r))
	}

	summary, err = m.RatingSummary(ctx, "midnight-deploy")
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Count)
	assert.InDelta(t, 4.5, summary.Average, 0.001)

	r, err := NewRating("no-such-case", 3, seedTime)
	require.NoError(t, err)
	assert.ErrorIs(t, m.AddRating(ctx, r), sentinel.ErrNotFound)
}

func TestNewRating_ValidatesScore(t *testing.T) {
	for _, score := range []int{0, 6, -1} {
		_, err := NewRating("x", score, seedTime)
		assert.ErrorIs(t, err, sentinel.ErrInvalidValue)
	}
	r, err := NewRating("x", 1, seedTime)
	require.NoError(t, err)
	assert.NotEqual(t, [16]byte{}, [16]byte(r.ID))
}

func TestMemory_CaseFilesOrder(t *testing.T) {
	m := NewMemory()
	Seed(m, seedTime)

	cases, err := m.ListCaseFiles(context.Background())
	require.NoError(t, err)
	require.Len(t, cases, 2)
	assert.Equal(t, "midnight-deploy", cases[0].Slug)
}

func TestMemory_PutPostNormalizesTags(t *testing.T) {
	m := NewMemory()
	m.PutPost(Post{Slug: "tags", Site: "portfolio", Tags: []string{"Design", " design ", "Go", ""}})

	p, err := m.GetPost(context.Background(), "portfolio", "tags")
	require.NoError(t, err)
	assert.Equal(t, []string{"design", "go"}, p.Tags)
}
