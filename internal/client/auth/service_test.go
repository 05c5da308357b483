package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/portalsync/internal/client/storage"
	"github.com/iudanet/portalsync/pkg/api"
)

func newTestService(loginAPI LoginAPI, sessions storage.SessionStorage) *Service {
	s := NewService(loginAPI, sessions, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.now = func() time.Time { return time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestService_Login(t *testing.T) {
	var saved *storage.Session
	sessions := &storage.SessionStorageMock{
		SaveSessionFunc: func(ctx context.Context, session *storage.Session) error {
			saved = session
			return nil
		},
	}
	loginAPI := &LoginAPIMock{
		LoginFunc: func(ctx context.Context, req api.LoginRequest) (*api.TokenResponse, error) {
			return &api.TokenResponse{
				AccessToken: "token-1",
				UserID:      "user-1",
				Role:        "firm",
				FirmID:      "firm-1",
				ExpiresIn:   900,
			}, nil
		},
	}

	session, err := newTestService(loginAPI, sessions).Login(context.Background(), "ada_l", "correct-horse")

	require.NoError(t, err)
	assert.Equal(t, saved, session)
	assert.Equal(t, "firm-1", session.FirmID)
	assert.Equal(t, "ada_l", session.Username)
	assert.Equal(t, time.Date(2026, 1, 1, 12, 15, 0, 0, time.UTC), session.ExpiresAt)

	require.Len(t, loginAPI.LoginCalls(), 1)
	assert.Equal(t, "correct-horse", loginAPI.LoginCalls()[0].Req.Password)
}

func TestService_LoginValidation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		wantErr  string
	}{
		{name: "empty username", username: "", password: "correct-horse", wantErr: "invalid username"},
		{name: "bad characters", username: "ada lovelace", password: "correct-horse", wantErr: "invalid username"},
		{name: "short password", username: "ada_l", password: "short", wantErr: "invalid password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loginAPI := &LoginAPIMock{}

			_, err := newTestService(loginAPI, &storage.SessionStorageMock{}).Login(context.Background(), tt.username, tt.password)

			assert.ErrorContains(t, err, tt.wantErr)
			assert.Empty(t, loginAPI.LoginCalls())
		})
	}
}

func TestService_LoginRemoteError(t *testing.T) {
	sessions := &storage.SessionStorageMock{}
	loginAPI := &LoginAPIMock{
		LoginFunc: func(ctx context.Context, req api.LoginRequest) (*api.TokenResponse, error) {
			return nil, errors.New("server error (401): invalid credentials")
		},
	}

	_, err := newTestService(loginAPI, sessions).Login(context.Background(), "ada_l", "correct-horse")

	assert.ErrorContains(t, err, "login failed")
	assert.Empty(t, sessions.SaveSessionCalls())
}

func TestService_Logout(t *testing.T) {
	tests := []struct {
		deleteErr error
		name      string
		wantErr   bool
	}{
		{name: "signed in"},
		{name: "not signed in", deleteErr: storage.ErrSessionNotFound},
		{name: "storage failure", deleteErr: errors.New("disk error"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := &storage.SessionStorageMock{
				DeleteSessionFunc: func(ctx context.Context) error { return tt.deleteErr },
			}

			err := newTestService(&LoginAPIMock{}, sessions).Logout(context.Background())

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Len(t, sessions.DeleteSessionCalls(), 1)
		})
	}
}

func TestService_Status(t *testing.T) {
	active := &storage.Session{Username: "ada_l", ExpiresAt: time.Date(2026, 1, 1, 13, 0, 0, 0, time.UTC)}
	expired := &storage.Session{Username: "ada_l", ExpiresAt: time.Date(2026, 1, 1, 11, 0, 0, 0, time.UTC)}

	status, err := newTestService(&LoginAPIMock{}, sessionStorage(nil, storage.ErrSessionNotFound)).Status(context.Background())
	require.NoError(t, err)
	assert.False(t, status.LoggedIn)

	status, err = newTestService(&LoginAPIMock{}, sessionStorage(active, nil)).Status(context.Background())
	require.NoError(t, err)
	assert.True(t, status.LoggedIn)
	assert.False(t, status.Expired)

	status, err = newTestService(&LoginAPIMock{}, sessionStorage(expired, nil)).Status(context.Background())
	require.NoError(t, err)
	assert.True(t, status.Expired)
}
