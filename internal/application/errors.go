package application

import "errors"

var (
	// ErrInvalidInput is returned when a request fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound is returned when the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a request collides with existing state,
	// such as a duplicate username or asset number.
	ErrConflict = errors.New("conflict")

	// ErrUnauthorized is returned when credentials are wrong or a session
	// is missing, expired, or revoked.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when the caller's role does not allow the
	// operation.
	ErrForbidden = errors.New("forbidden")
)
