package post

import (
	"context"

	"github.com/google/uuid"
)

// ListFilter narrows the posts a List call returns.
type ListFilter struct {
	Title    string    // case-insensitive substring on title; empty = no filter
	AuthorID uuid.UUID // exact owner match; uuid.Nil = no filter
	Offset   int
	Limit    int
}

// Repository is the data access contract for posts.
type Repository interface {
	Create(ctx context.Context, p *Post) error

	// FindByID returns ErrPostNotFound when no post matches.
	FindByID(ctx context.Context, id uuid.UUID) (*Post, error)

	// List returns one page of posts matching filter plus the total
	// matching count.
	List(ctx context.Context, filter ListFilter) ([]Post, int, error)

	Update(ctx context.Context, p *Post) error

	// UpdateCover sets only the cover reference.
	UpdateCover(ctx context.Context, id uuid.UUID, cover string) error

	Delete(ctx context.Context, id uuid.UUID) error

	DeleteAll(ctx context.Context) error
}
