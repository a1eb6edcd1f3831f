package post

import (
	"time"

	"github.com/google/uuid"
)

// ReadTime is the (value, unit) estimate shown on a post card.
type ReadTime struct {
	Value int    `json:"value"`
	Unit  string `json:"unit"`
}

// Post is a blog article. Author carries the owning author's id; Comments
// holds the ids of the post's comments in creation order, mirrored by the
// post_id on each comment row.
type Post struct {
	ID        uuid.UUID   `json:"id"`
	Category  string      `json:"category"`
	Title     string      `json:"title"`
	Cover     *string     `json:"cover,omitempty"`
	ReadTime  ReadTime    `json:"readTime"`
	AuthorID  uuid.UUID   `json:"author"`
	Content   string      `json:"content"`
	Comments  []uuid.UUID `json:"comments"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}
