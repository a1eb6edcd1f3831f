package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"blog-backend/internal/domains/author"
	"blog-backend/internal/domains/post"
	"blog-backend/internal/infrastructure/email"
	"blog-backend/internal/shared/pagination"
	"blog-backend/pkg/logger"
)

type postService struct {
	repo    post.Repository
	authors author.Repository
	email   email.EmailService
}

// NewPostService wires the posts business logic.
func NewPostService(repo post.Repository, authors author.Repository, emailService email.EmailService) post.Service {
	return &postService{
		repo:    repo,
		authors: authors,
		email:   emailService,
	}
}

func (s *postService) Create(ctx context.Context, req post.CreatePostRequest) (*post.Post, error) {
	authorID, err := uuid.Parse(req.Author)
	if err != nil {
		return nil, post.ErrPostAuthorNotFound
	}

	now := time.Now()
	p := &post.Post{
		ID:        uuid.New(),
		Category:  req.Category,
		Title:     req.Title,
		ReadTime:  req.ReadTime,
		AuthorID:  authorID,
		Content:   req.Content,
		Comments:  []uuid.UUID{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Cover != "" {
		p.Cover = &req.Cover
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	// The post is persisted at this point. Resolving the author and
	// mailing them happen after the write, and either step failing turns
	// the response into an error with the row kept.
	a, err := s.authors.FindByID(ctx, p.AuthorID)
	if err != nil {
		if errors.Is(err, author.ErrAuthorNotFound) {
			return nil, post.ErrPostAuthorNotFound
		}
		return nil, err
	}

	if err := s.email.SendNewPostNotification(ctx, a.Email, a.Name, p.Title); err != nil {
		logger.Error("New post notification failed after publish", err)
		return nil, post.ErrNotificationFailed
	}

	return p, nil
}

func (s *postService) Get(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *postService) List(ctx context.Context, req post.ListPostsRequest) (*post.ListPostsResponse, error) {
	posts, total, err := s.repo.List(ctx, post.ListFilter{
		Title:    req.Title,
		AuthorID: req.AuthorID,
		Offset:   req.Page.Offset(),
		Limit:    req.Page.Limit,
	})
	if err != nil {
		return nil, err
	}

	return &post.ListPostsResponse{
		TotalPosts:  total,
		TotalPages:  pagination.TotalPages(total, req.Page.Limit),
		CurrentPage: req.Page.Page,
		Posts:       posts,
	}, nil
}

func (s *postService) ListByAuthor(ctx context.Context, authorID uuid.UUID, page pagination.Params) (*post.ListPostsResponse, error) {
	return s.List(ctx, post.ListPostsRequest{AuthorID: authorID, Page: page})
}

func (s *postService) Update(ctx context.Context, id, actor uuid.UUID, req post.UpdatePostRequest) (*post.Post, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.AuthorID != actor {
		return nil, post.ErrNotOwner
	}

	authorID, err := uuid.Parse(req.Author)
	if err != nil {
		return nil, post.ErrPostAuthorNotFound
	}

	p.Category = req.Category
	p.Title = req.Title
	p.ReadTime = req.ReadTime
	p.AuthorID = authorID
	p.Content = req.Content
	if req.Cover != "" {
		p.Cover = &req.Cover
	}
	p.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *postService) Delete(ctx context.Context, id, actor uuid.UUID) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p.AuthorID != actor {
		return post.ErrNotOwner
	}

	return s.repo.Delete(ctx, id)
}

func (s *postService) SetCover(ctx context.Context, id, actor uuid.UUID, coverURL string) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p.AuthorID != actor {
		return post.ErrNotOwner
	}

	return s.repo.UpdateCover(ctx, id, coverURL)
}

func (s *postService) DeleteAll(ctx context.Context) error {
	return s.repo.DeleteAll(ctx)
}
