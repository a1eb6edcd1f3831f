package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"blog-backend/internal/domains/comment"
	"blog-backend/internal/shared/pagination"
)

type commentService struct {
	repo comment.Repository
}

// NewCommentService wires the comments business logic. Post existence and
// back-reference maintenance live in the repository, inside its
// transactions.
func NewCommentService(repo comment.Repository) comment.Service {
	return &commentService{repo: repo}
}

func (s *commentService) Create(ctx context.Context, req comment.CreateCommentRequest) (*comment.Comment, error) {
	postID, err := uuid.Parse(req.PostID)
	if err != nil {
		return nil, comment.ErrPostNotFound
	}

	now := time.Now()
	c := &comment.Comment{
		ID:        uuid.New(),
		Content:   req.Content,
		Author:    req.Author,
		PostID:    postID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *commentService) Get(ctx context.Context, id uuid.UUID) (*comment.Comment, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *commentService) ListByPost(ctx context.Context, postID uuid.UUID, page pagination.Params) (*comment.ListCommentsResponse, error) {
	comments, total, err := s.repo.ListByPost(ctx, postID, page.Offset(), page.Limit)
	if err != nil {
		return nil, err
	}

	return &comment.ListCommentsResponse{
		TotalComments: total,
		TotalPages:    pagination.TotalPages(total, page.Limit),
		CurrentPage:   page.Page,
		Comments:      comments,
	}, nil
}

func (s *commentService) Update(ctx context.Context, id uuid.UUID, req comment.UpdateCommentRequest) (*comment.Comment, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.Content = req.Content
	if req.Author != "" {
		c.Author = req.Author
	}
	c.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *commentService) Delete(ctx context.Context, postID, commentID uuid.UUID) error {
	return s.repo.Delete(ctx, postID, commentID)
}
