package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/portalsync/internal/models"
	"github.com/iudanet/portalsync/internal/server/storage"
)

func TestUserStorage_CreateUser(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	tests := []struct {
		user *models.User
		name string
	}{
		{
			name: "associate without firm",
			user: &models.User{
				ID:           uuid.New().String(),
				Username:     "alice",
				PasswordHash: "hash123",
				Role:         models.RoleAssociate,
				CreatedAt:    time.Now(),
			},
		},
		{
			name: "firm user with last login",
			user: &models.User{
				ID:           uuid.New().String(),
				Username:     "acme.owner",
				PasswordHash: "hash456",
				Role:         models.RoleFirm,
				FirmID:       "firm-1",
				CreatedAt:    time.Now(),
				LastLogin:    timePtr(time.Now()),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, s.CreateUser(ctx, tt.user))

			retrieved, err := s.GetUserByID(ctx, tt.user.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.user.Username, retrieved.Username)
			assert.Equal(t, tt.user.PasswordHash, retrieved.PasswordHash)
			assert.Equal(t, tt.user.Role, retrieved.Role)
			assert.Equal(t, tt.user.FirmID, retrieved.FirmID)
			assert.Equal(t, tt.user.LastLogin != nil, retrieved.LastLogin != nil)
		})
	}
}

func TestUserStorage_CreateUser_Duplicate(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	createTestUser(t, ctx, s, "bob", models.RoleVendor, "")

	err := s.CreateUser(ctx, &models.User{
		ID:           uuid.New().String(),
		Username:     "bob",
		PasswordHash: "other",
		Role:         models.RoleVendor,
		CreatedAt:    time.Now(),
	})
	assert.ErrorIs(t, err, storage.ErrUserAlreadyExists)
}

func TestUserStorage_GetUserByUsername(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s, "carol", models.RoleFirm, "firm-9")

	user, err := s.GetUserByUsername(ctx, "carol")
	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "firm-9", user.FirmID)
	assert.Nil(t, user.LastLogin)

	_, err = s.GetUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)

	_, err = s.GetUserByID(ctx, uuid.New().String())
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

func TestUserStorage_UpdateLastLogin(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s, "dave", models.RoleAssociate, "")
	loginTime := time.Now()

	require.NoError(t, s.UpdateLastLogin(ctx, userID, loginTime))

	user, err := s.GetUserByID(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, user.LastLogin)
	assert.WithinDuration(t, loginTime, *user.LastLogin, time.Second)

	err = s.UpdateLastLogin(ctx, uuid.New().String(), loginTime)
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

func setupTestStorage(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	// Используем in-memory database для тестов
	s, err := New(ctx, ":memory:")
	require.NoError(t, err)

	cleanup := func() {
		_ = s.Close()
	}

	return s, cleanup
}

func createTestUser(t *testing.T, ctx context.Context, s *Storage, username string, role models.Role, firmID string) string {
	userID := uuid.New().String()
	user := &models.User{
		ID:           userID,
		Username:     username,
		PasswordHash: "hash",
		Role:         role,
		FirmID:       firmID,
		CreatedAt:    time.Now(),
	}

	require.NoError(t, s.CreateUser(ctx, user))

	return userID
}

func timePtr(t time.Time) *time.Time {
	return &t
}
