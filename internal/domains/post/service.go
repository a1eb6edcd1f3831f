package post

import (
	"context"

	"github.com/google/uuid"

	"blog-backend/internal/shared/pagination"
)

// Service is the business logic contract for posts.
type Service interface {
	// Create persists the post, then resolves the author to address the
	// new-post notification. A missing author or a mail failure is
	// returned as an error with the post already persisted.
	Create(ctx context.Context, req CreatePostRequest) (*Post, error)

	Get(ctx context.Context, id uuid.UUID) (*Post, error)
	List(ctx context.Context, req ListPostsRequest) (*ListPostsResponse, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID, page pagination.Params) (*ListPostsResponse, error)

	// Update and Delete enforce ownership: actor must own the post.
	Update(ctx context.Context, id, actor uuid.UUID, req UpdatePostRequest) (*Post, error)
	Delete(ctx context.Context, id, actor uuid.UUID) error

	SetCover(ctx context.Context, id, actor uuid.UUID, coverURL string) error

	DeleteAll(ctx context.Context) error
}
