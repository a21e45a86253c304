package persistence

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("persistence: not found")

	// ErrDuplicate is returned when a unique constraint is violated.
	ErrDuplicate = errors.New("persistence: duplicate record")

	// ErrForeignKeyViolation is returned when a referenced record does not
	// exist or is still referenced.
	ErrForeignKeyViolation = errors.New("persistence: foreign key violation")

	// ErrConstraintViolation is returned when a record fails a check
	// constraint or required-field validation.
	ErrConstraintViolation = errors.New("persistence: constraint violation")
)
