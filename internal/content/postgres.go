package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"atelier/pkg/platform/sentinel"
	pstrings "atelier/pkg/platform/strings"
)

// Schema creates the content tables.
const Schema = `
CREATE TABLE IF NOT EXISTS posts (
	site         TEXT NOT NULL,
	slug         TEXT NOT NULL,
	title        TEXT NOT NULL,
	summary      TEXT NOT NULL DEFAULT '',
	body         TEXT NOT NULL DEFAULT '',
	tags         TEXT[] NOT NULL DEFAULT '{}',
	published_at TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (site, slug)
);
CREATE TABLE IF NOT EXISTS case_files (
	slug      TEXT PRIMARY KEY,
	title     TEXT NOT NULL,
	summary   TEXT NOT NULL DEFAULT '',
	body      TEXT NOT NULL DEFAULT '',
	status    TEXT NOT NULL DEFAULT 'open',
	opened_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS case_ratings (
	id         UUID PRIMARY KEY,
	case_slug  TEXT NOT NULL REFERENCES case_files (slug) ON DELETE CASCADE,
	score      INT NOT NULL CHECK (score BETWEEN 1 AND 5),
	created_at TIMESTAMPTZ NOT NULL
);`

// Postgres is a Repository over a pgx pool.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Migrate applies Schema.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("migrate content: %w", err)
	}
	return nil
}

func (s *Postgres) ListPosts(ctx context.Context, site string) ([]Post, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT slug, site, title, summary, body, tags, published_at
		FROM posts WHERE site = $1 ORDER BY published_at DESC`, site)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	posts, err := pgx.CollectRows(rows, pgx.RowToStructByName[Post])
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (s *Postgres) GetPost(ctx context.Context, site, slug string) (Post, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT slug, site, title, summary, body, tags, published_at
		FROM posts WHERE site = $1 AND slug = $2`, site, slug)
	if err != nil {
		return Post{}, fmt.Errorf("get post: %w", err)
	}
	post, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[Post])
	if errors.Is(err, pgx.ErrNoRows) {
		return Post{}, sentinel.ErrNotFound
	}
	if err != nil {
		return Post{}, fmt.Errorf("get post: %w", err)
	}
	return post, nil
}

func (s *Postgres) ListCaseFiles(ctx context.Context) ([]CaseFile, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT slug, title, summary, body, status, opened_at
		FROM case_files ORDER BY opened_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list case files: %w", err)
	}
	cases, err := pgx.CollectRows(rows, pgx.RowToStructByName[CaseFile])
	if err != nil {
		return nil, fmt.Errorf("list case files: %w", err)
	}
	return cases, nil
}

func (s *Postgres) GetCaseFile(ctx context.Context, slug string) (CaseFile, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT slug, title, summary, body, status, opened_at
		FROM case_files WHERE slug = $1`, slug)
	if err != nil {
		return CaseFile{}, fmt.Errorf("get case file: %w", err)
	}
	c, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[CaseFile])
	if errors.Is(err, pgx.ErrNoRows) {
		return CaseFile{}, sentinel.ErrNotFound
	}
	if err != nil {
		return CaseFile{}, fmt.Errorf("get case file: %w", err)
	}
	return c, nil
}

func (s *Postgres) AddRating(ctx context.Context, rating Rating) error {
	tag, err := s.pool.Exec(ctx, `
		INSERT INTO case_ratings (id, case_slug, score, created_at)
		SELECT $1::uuid, slug, $3::int, $4::timestamptz FROM case_files WHERE slug = $2`,
		rating.ID, rating.CaseSlug, rating.Score, rating.CreatedAt)
	if err != nil {
		return fmt.Errorf("add rating: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) RatingSummary(ctx context.Context, caseSlug string) (RatingSummary, error) {
	var summary RatingSummary
	err := s.pool.QueryRow(ctx, `
		SELECT count(*)::int, coalesce(avg(score), 0)::float8
		FROM case_ratings WHERE case_slug = $1`, caseSlug,
	).Scan(&summary.Count, &summary.Average)
	if err != nil {
		return RatingSummary{}, fmt.Errorf("rating summary: %w", err)
	}
	return summary, nil
}

// Insert helpers used to seed a database.

func (s *Postgres) PutPost(ctx context.Context, p Post) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO posts (site, slug, title, summary, body, tags, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (site, slug) DO UPDATE SET
			title = EXCLUDED.title, summary = EXCLUDED.summary, body = EXCLUDED.body,
			tags = EXCLUDED.tags, published_at = EXCLUDED.published_at`,
		p.Site, p.Slug, p.Title, p.Summary, p.Body, pstrings.DedupeAndTrimLower(p.Tags), p.PublishedAt)
	if err != nil {
		return fmt.Errorf("put post: %w", err)
	}
	return nil
}

func (s *Postgres) PutCaseFile(ctx context.Context, c CaseFile) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO case_files (slug, title, summary, body, status, opened_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (slug) DO UPDATE SET
			title = EXCLUDED.title, summary = EXCLUDED.summary, body = EXCLUDED.body,
			status = EXCLUDED.status, opened_at = EXCLUDED.opened_at`,
		c.Slug, c.Title, c.Summary, c.Body, c.Status, c.OpenedAt)
	if err != nil {
		return fmt.Errorf("put case file: %w", err)
	}
	return nil
}
