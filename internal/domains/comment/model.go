package comment

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a reply attached to a post. Author is free text, not a
// reference to the authors collection; anyone can comment without an
// account.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	PostID    uuid.UUID `json:"postId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
