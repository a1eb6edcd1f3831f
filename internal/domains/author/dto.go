package author

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// ========================================
// AUTH DTOs
// ========================================

// RegisterRequest arrives as multipart form data; the avatar file, when
// present, is uploaded by the handler and its URL set on Avatar.
type RegisterRequest struct {
	Email     string `form:"email" json:"email"`
	Password  string `form:"password" json:"password"`
	Name      string `form:"name" json:"name"`
	Surname   string `form:"surname" json:"surname"`
	BirthDate string `form:"birthDate" json:"birthDate"`
	GoogleID  string `form:"googleId" json:"googleId"`

	Avatar string `form:"-" json:"-"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("invalid email format"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
		),
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
		),
		validation.Field(&r.Surname,
			validation.Required.Error("surname is required"),
		),
		validation.Field(&r.BirthDate,
			validation.Required.Error("birth date is required"),
		),
	)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token string `json:"token"`
}

// ========================================
// COLLECTION DTOs
// ========================================

// CreateAuthorRequest is the direct-creation path (no password, no OAuth
// id): such an account exists but cannot authenticate.
type CreateAuthorRequest struct {
	Name      string `json:"name"`
	Surname   string `json:"surname"`
	Email     string `json:"email"`
	BirthDate string `json:"birthDate"`
	Avatar    string `json:"avatar"`
}

func (r CreateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required.Error("name is required")),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("invalid email format"),
		),
	)
}

type UpdateAuthorRequest = CreateAuthorRequest

// UpdateProfileRequest is the self-service PUT /me payload.
type UpdateProfileRequest struct {
	Name      string `json:"name"`
	Surname   string `json:"surname"`
	BirthDate string `json:"birthDate"`
}

func (r UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required.Error("name is required")),
	)
}

// ListAuthorsResponse is one page of the authors collection.
type ListAuthorsResponse struct {
	TotalAuthors int      `json:"totalAuthors"`
	TotalPages   int      `json:"totalPages"`
	CurrentPage  int      `json:"currentPage"`
	Authors      []Author `json:"authors"`
}
