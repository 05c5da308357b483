package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that user with this username already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrProfileNotFound indicates that no profile was saved for the owner yet
	ErrProfileNotFound = errors.New("profile not found")

	// ErrStudioNotFound indicates that studio listing was not found for the firm
	ErrStudioNotFound = errors.New("studio not found")
)
