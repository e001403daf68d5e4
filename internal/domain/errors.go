package domain

import "errors"

// Sentinel errors shared across services and repositories. Controllers map
// these to HTTP statuses.
var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateEmail     = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrInvalidEmail     = errors.New("invalid email address")
	ErrWeakPassword     = errors.New("password must be at least 8 characters")
	ErrPasswordMismatch = errors.New("passwords do not match")
)
