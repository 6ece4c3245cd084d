// internal/domain/errors.go
package domain

import "errors"

var (
	// ErrNotFound covers both "row does not exist" and "row owned by
	// someone else"; callers must not be able to tell them apart.
	ErrNotFound = errors.New("not found")

	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrValidation = errors.New("validation error")

	ErrInvalidToken = errors.New("invalid token")
)
