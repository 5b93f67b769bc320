//go:generate mockgen -source=repository.go -destination=mocks/content-mocks.go -package=mocks Repository

// Package content reads the posts and case files the sites display and records
// case file ratings. Missing records are reported as sentinel.ErrNotFound.
package content

import "context"

// Repository is the sites' view of the content tables.
type Repository interface {
	ListPosts(ctx context.Context, site string) ([]Post, error)
	GetPost(ctx context.Context, site, slug string) (Post, error)
	ListCaseFiles(ctx context.Context) ([]CaseFile, error)
	GetCaseFile(ctx context.Context, slug string) (CaseFile, error)
	AddRating(ctx context.Context, rating Rating) error
	RatingSummary(ctx context.Context, caseSlug string) (RatingSummary, error)
}
