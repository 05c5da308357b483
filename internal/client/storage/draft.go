package storage

import "context"

//go:generate moq -out draft_mock.go . DraftStorage

// DraftStorage is the raw key/value layer under the local draft store.
// Values are opaque bytes; encoding is the caller's concern.
type DraftStorage interface {
	// GetDraft returns the stored value
	// Returns ErrDraftNotFound if the key is absent
	GetDraft(ctx context.Context, key string) ([]byte, error)

	// UpdateDraft atomically replaces the value of key with the result of fn.
	// fn receives nil when the key is absent. Returning nil from fn keeps the
	// current value; returning an error aborts the update.
	UpdateDraft(ctx context.Context, key string, fn func(current []byte) ([]byte, error)) error

	// DeleteDraft removes the key. Deleting an absent key is not an error.
	DeleteDraft(ctx context.Context, key string) error

	// DraftKeys lists all stored keys in order
	DraftKeys(ctx context.Context) ([]string, error)
}
