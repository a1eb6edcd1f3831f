package comment

import (
	"context"

	"github.com/google/uuid"

	"blog-backend/internal/shared/pagination"
)

// Service is the business logic contract for a post's comments.
type Service interface {
	Create(ctx context.Context, req CreateCommentRequest) (*Comment, error)
	Get(ctx context.Context, id uuid.UUID) (*Comment, error)
	ListByPost(ctx context.Context, postID uuid.UUID, page pagination.Params) (*ListCommentsResponse, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateCommentRequest) (*Comment, error)
	Delete(ctx context.Context, postID, commentID uuid.UUID) error
}
