package author

import "errors"

// Repository-level errors
var (
	ErrAuthorNotFound     = errors.New("author not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Service-level errors
var (
	// One message for both unknown email and wrong password, so login
	// never leaks whether an email is registered.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// The welcome mail failed after the author row was persisted. The
	// request is reported as failed, but the account exists; a retry of
	// the same registration hits ErrEmailAlreadyExists.
	ErrEmailDeliveryFailed = errors.New("failed to send notification email")
)
