package post

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"blog-backend/internal/shared/pagination"
)

type CreatePostRequest struct {
	Category string   `json:"category"`
	Title    string   `json:"title"`
	Cover    string   `json:"cover"`
	ReadTime ReadTime `json:"readTime"`
	Author   string   `json:"author"`
	Content  string   `json:"content"`
}

func (r CreatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Category, validation.Required.Error("category is required")),
		validation.Field(&r.Title, validation.Required.Error("title is required")),
		validation.Field(&r.ReadTime, validation.By(validateReadTime)),
		validation.Field(&r.Author, validation.Required.Error("author is required"), is.UUID),
		validation.Field(&r.Content, validation.Required.Error("content is required")),
	)
}

type UpdatePostRequest = CreatePostRequest

func validateReadTime(value interface{}) error {
	rt, _ := value.(ReadTime)
	return validation.ValidateStruct(&rt,
		validation.Field(&rt.Value, validation.Required.Error("readTime.value is required")),
		validation.Field(&rt.Unit, validation.Required.Error("readTime.unit is required")),
	)
}

// ListPostsRequest carries the list filters plus the shared pagination
// parameters. Title is a case-insensitive substring match; AuthorID an
// exact match.
type ListPostsRequest struct {
	Title    string
	AuthorID uuid.UUID
	Page     pagination.Params
}

// ListPostsResponse is one page of the posts collection.
type ListPostsResponse struct {
	TotalPosts  int    `json:"totalPosts"`
	TotalPages  int    `json:"totalPages"`
	CurrentPage int    `json:"currentPage"`
	Posts       []Post `json:"posts"`
}
