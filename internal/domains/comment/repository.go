package comment

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the data access contract for comments. Create and Delete
// also maintain the comment-id list on the owning post; both sides commit in
// a single transaction.
type Repository interface {
	// Create inserts the comment and appends its id to the owning post's
	// comment list. Returns ErrPostNotFound when the post is missing.
	Create(ctx context.Context, c *Comment) error

	// FindByID returns ErrCommentNotFound when no comment matches.
	FindByID(ctx context.Context, id uuid.UUID) (*Comment, error)

	// ListByPost returns one page of a post's comments in creation order
	// plus the total count. Returns ErrPostNotFound when the post is
	// missing.
	ListByPost(ctx context.Context, postID uuid.UUID, offset, limit int) ([]Comment, int, error)

	Update(ctx context.Context, c *Comment) error

	// Delete removes the comment and its id from the owning post's
	// comment list. Deleting an already-deleted id returns
	// ErrCommentNotFound.
	Delete(ctx context.Context, postID, commentID uuid.UUID) error
}
