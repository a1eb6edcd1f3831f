package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"blog-backend/internal/domains/author"
	"blog-backend/internal/infrastructure/email"
	"blog-backend/internal/shared/pagination"
	"blog-backend/pkg/jwt"
	"blog-backend/pkg/logger"
)

type authorService struct {
	repo  author.Repository
	jwt   *jwt.Manager
	email email.EmailService
}

// NewAuthorService wires the authors business logic.
func NewAuthorService(repo author.Repository, jwtManager *jwt.Manager, emailService email.EmailService) author.Service {
	return &authorService{
		repo:  repo,
		jwt:   jwtManager,
		email: emailService,
	}
}

// normalizeEmail lowercases and trims so lookups are case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authorService) Register(ctx context.Context, req author.RegisterRequest) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	hashStr := string(hash)
	a := &author.Author{
		ID:           uuid.New(),
		Email:        normalizeEmail(req.Email),
		PasswordHash: &hashStr,
		Name:         req.Name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if req.Surname != "" {
		a.Surname = &req.Surname
	}
	if req.BirthDate != "" {
		a.BirthDate = &req.BirthDate
	}
	if req.Avatar != "" {
		a.Avatar = &req.Avatar
	}
	if req.GoogleID != "" {
		a.GoogleID = &req.GoogleID
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return err
	}

	// The account is persisted at this point. The welcome mail failing
	// turns the response into an error anyway; callers observe a failed
	// registration whose account nonetheless exists.
	if err := s.email.SendWelcomeEmail(ctx, a.Email, a.Name); err != nil {
		logger.Error("Welcome email failed after registration", err)
		return author.ErrEmailDeliveryFailed
	}
	return nil
}

func (s *authorService) Login(ctx context.Context, req author.LoginRequest) (string, error) {
	a, err := s.repo.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		// Unknown email and wrong password answer identically.
		return "", author.ErrInvalidCredentials
	}

	if a.PasswordHash == nil {
		// Provider-only account; there is no password to check.
		return "", author.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(*a.PasswordHash), []byte(req.Password)) != nil {
		return "", author.ErrInvalidCredentials
	}

	return s.jwt.Issue(a.ID)
}

func (s *authorService) LoginWithGoogle(ctx context.Context, googleID, emailAddr, name string) (string, error) {
	a, err := s.repo.FindByGoogleID(ctx, googleID)
	if err == nil {
		return s.jwt.Issue(a.ID)
	}
	if !errors.Is(err, author.ErrAuthorNotFound) {
		return "", err
	}

	now := time.Now()
	a = &author.Author{
		ID:        uuid.New(),
		Email:     normalizeEmail(emailAddr),
		GoogleID:  &googleID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return "", err
	}

	if err := s.email.SendWelcomeEmail(ctx, a.Email, a.Name); err != nil {
		logger.Error("Welcome email failed after provider signup", err)
		return "", author.ErrEmailDeliveryFailed
	}

	return s.jwt.Issue(a.ID)
}

func (s *authorService) UpdateProfile(ctx context.Context, id uuid.UUID, req author.UpdateProfileRequest) (*author.Author, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	a.Name = req.Name
	if req.Surname != "" {
		a.Surname = &req.Surname
	}
	if req.BirthDate != "" {
		a.BirthDate = &req.BirthDate
	}
	a.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *authorService) Get(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *authorService) List(ctx context.Context, page pagination.Params) (*author.ListAuthorsResponse, error) {
	authors, total, err := s.repo.List(ctx, page.Offset(), page.Limit)
	if err != nil {
		return nil, err
	}

	return &author.ListAuthorsResponse{
		TotalAuthors: total,
		TotalPages:   pagination.TotalPages(total, page.Limit),
		CurrentPage:  page.Page,
		Authors:      authors,
	}, nil
}

func (s *authorService) Create(ctx context.Context, req author.CreateAuthorRequest) (*author.Author, error) {
	now := time.Now()
	a := &author.Author{
		ID:        uuid.New(),
		Email:     normalizeEmail(req.Email),
		Name:      req.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Surname != "" {
		a.Surname = &req.Surname
	}
	if req.BirthDate != "" {
		a.BirthDate = &req.BirthDate
	}
	if req.Avatar != "" {
		a.Avatar = &req.Avatar
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *authorService) Update(ctx context.Context, id uuid.UUID, req author.UpdateAuthorRequest) (*author.Author, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	a.Email = normalizeEmail(req.Email)
	a.Name = req.Name
	if req.Surname != "" {
		a.Surname = &req.Surname
	}
	if req.BirthDate != "" {
		a.BirthDate = &req.BirthDate
	}
	if req.Avatar != "" {
		a.Avatar = &req.Avatar
	}
	a.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *authorService) SetAvatar(ctx context.Context, id uuid.UUID, avatarURL string) error {
	return s.repo.UpdateAvatar(ctx, id, avatarURL)
}

func (s *authorService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *authorService) DeleteAll(ctx context.Context) error {
	return s.repo.DeleteAll(ctx)
}
