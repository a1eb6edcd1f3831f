package author

import (
	"context"

	"github.com/google/uuid"

	"blog-backend/internal/shared/pagination"
)

// Service is the business logic contract for authors and authentication.
type Service interface {
	// Authentication
	//
	// Register persists the author then sends the welcome mail. An email
	// failure returns ErrEmailDeliveryFailed with the row already
	// persisted; clients must not retry blindly.
	Register(ctx context.Context, req RegisterRequest) error
	Login(ctx context.Context, req LoginRequest) (string, error)
	// LoginWithGoogle finds or creates an author by external id and
	// issues a token. A created author has no password hash.
	LoginWithGoogle(ctx context.Context, googleID, email, name string) (string, error)

	// Profile (the caller's own record)
	UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*Author, error)

	// Collection
	Get(ctx context.Context, id uuid.UUID) (*Author, error)
	List(ctx context.Context, page pagination.Params) (*ListAuthorsResponse, error)
	Create(ctx context.Context, req CreateAuthorRequest) (*Author, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateAuthorRequest) (*Author, error)
	SetAvatar(ctx context.Context, id uuid.UUID, avatarURL string) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context) error
}
