package comment

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type CreateCommentRequest struct {
	Content string `json:"content"`
	Author  string `json:"author"`
	PostID  string `json:"postId"`
}

func (r CreateCommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content, validation.Required.Error("content is required")),
		validation.Field(&r.Author, validation.Required.Error("author is required")),
		validation.Field(&r.PostID, validation.Required.Error("postId is required")),
	)
}

type UpdateCommentRequest struct {
	Content string `json:"content"`
	Author  string `json:"author"`
}

func (r UpdateCommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content, validation.Required.Error("content is required")),
	)
}

// ListCommentsResponse is one page of a post's comments, in creation order.
type ListCommentsResponse struct {
	TotalComments int       `json:"totalComments"`
	TotalPages    int       `json:"totalPages"`
	CurrentPage   int       `json:"currentPage"`
	Comments      []Comment `json:"comments"`
}
