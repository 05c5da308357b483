package storage

import (
	"context"
	"time"
)

//go:generate moq -out session_mock.go . SessionStorage

// SessionStorage stores the signed-in user's session on the client.
type SessionStorage interface {
	// SaveSession stores the session, replacing any previous one
	SaveSession(ctx context.Context, session *Session) error

	// GetSession returns the stored session
	// Returns ErrSessionNotFound if nobody is signed in
	GetSession(ctx context.Context) (*Session, error)

	// DeleteSession removes the stored session (logout)
	DeleteSession(ctx context.Context) error
}

// Session is the signed-in user's identity and access token.
// FirmID is the opaque "current owner" used to scope firm resources.
type Session struct {
	ExpiresAt   time.Time `json:"expires_at"`
	Username    string    `json:"username"`
	UserID      string    `json:"user_id"`
	Role        string    `json:"role"`
	FirmID      string    `json:"firm_id"`
	AccessToken string    `json:"access_token"`
}

// Expired reports whether the access token is past its expiry.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
