package author

import (
	"time"

	"github.com/google/uuid"
)

// Author is a registered user who can write posts and comments. Created on
// registration or on first Google login; in the latter case PasswordHash is
// nil and the account can only authenticate through the provider.
type Author struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash *string   `json:"-"` // never exposed
	GoogleID     *string   `json:"googleId,omitempty"`
	Name         string    `json:"name"`
	Surname      *string   `json:"surname,omitempty"`
	BirthDate    *string   `json:"birthDate,omitempty"` // free-form text, not parsed as a date
	Avatar       *string   `json:"avatar,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
