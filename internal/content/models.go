package content

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"atelier/pkg/platform/sentinel"
)

// Post is a blog entry on the coaching or portfolio site.
type Post struct {
	Slug        string    `db:"slug"`
	Site        string    `db:"site"`
	Title       string    `db:"title"`
	Summary     string    `db:"summary"`
	Body        string    `db:"body"`
	Tags        []string  `db:"tags"`
	PublishedAt time.Time `db:"published_at"`
}

// CaseFile is an entry on the case file site.
type CaseFile struct {
	Slug     string    `db:"slug"`
	Title    string    `db:"title"`
	Summary  string    `db:"summary"`
	Body     string    `db:"body"`
	Status   string    `db:"status"`
	OpenedAt time.Time `db:"opened_at"`
}

// Rating is one visitor's score for a case file.
type Rating struct {
	ID        uuid.UUID `db:"id"`
	CaseSlug  string    `db:"case_slug"`
	Score     int       `db:"score"`
	CreatedAt time.Time `db:"created_at"`
}

// RatingSummary aggregates the ratings of one case file.
type RatingSummary struct {
	Count   int     `db:"count"`
	Average float64 `db:"average"`
}

const (
	MinScore = 1
	MaxScore = 5
)

// NewRating validates score and stamps a new rating.
func NewRating(caseSlug string, score int, now time.Time) (Rating, error) {
	if score < MinScore || score > MaxScore {
		return Rating{}, fmt.Errorf("%w: score %d outside %d..%d", sentinel.ErrInvalidValue, score, MinScore, MaxScore)
	}
	return Rating{
		ID:        uuid.New(),
		CaseSlug:  caseSlug,
		Score:     score,
		CreatedAt: now.UTC(),
	}, nil
}
