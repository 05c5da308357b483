package storage

import "errors"

// Common client storage errors
var (
	// ErrSessionNotFound indicates that no session is stored
	ErrSessionNotFound = errors.New("session not found")

	// ErrDraftNotFound indicates that no draft is stored under the key
	ErrDraftNotFound = errors.New("draft not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
