package author

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the data access contract for authors.
type Repository interface {
	// Create persists a new author.
	// Returns ErrEmailAlreadyExists on a duplicate email.
	Create(ctx context.Context, a *Author) error

	// FindByID returns ErrAuthorNotFound when no author matches. The
	// authorization gate calls this on every protected request, so the
	// postgres implementation caches it.
	FindByID(ctx context.Context, id uuid.UUID) (*Author, error)

	// FindByEmail looks an author up by normalized email (for login).
	FindByEmail(ctx context.Context, email string) (*Author, error)

	// FindByGoogleID looks an author up by external OAuth id.
	FindByGoogleID(ctx context.Context, googleID string) (*Author, error)

	// Update rewrites the mutable profile fields.
	Update(ctx context.Context, a *Author) error

	// UpdateAvatar sets only the avatar reference.
	UpdateAvatar(ctx context.Context, id uuid.UUID, avatar string) error

	// Delete removes the author. Their posts are left behind.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteAll empties the collection.
	DeleteAll(ctx context.Context) error

	// List returns one page of authors plus the total count.
	List(ctx context.Context, offset, limit int) ([]Author, int, error)
}
