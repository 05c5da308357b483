package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		errMsg   string
		password string
		wantErr  bool
	}{
		{
			name:     "successful hash",
			password: "correct horse battery",
		},
		{
			name:     "empty password",
			password: "",
			wantErr:  true,
			errMsg:   "password cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.Empty(t, hash)
				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, tt.password, hash)
			assert.NotEmpty(t, hash)
		})
	}
}

func TestHashPassword_Salted(t *testing.T) {
	first, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	second, err := HashPassword("s3cret-pass")
	require.NoError(t, err)

	// bcrypt солит каждый хеш
	assert.NotEqual(t, first, second)
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)

	t.Run("matching password", func(t *testing.T) {
		assert.NoError(t, VerifyPassword("s3cret-pass", hash))
	})

	t.Run("wrong password", func(t *testing.T) {
		err := VerifyPassword("other-pass", hash)
		assert.ErrorIs(t, err, ErrInvalidPassword)
	})

	t.Run("empty password", func(t *testing.T) {
		err := VerifyPassword("", hash)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "password cannot be empty")
	})

	t.Run("empty hash", func(t *testing.T) {
		err := VerifyPassword("s3cret-pass", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "password hash cannot be empty")
	})

	t.Run("malformed hash", func(t *testing.T) {
		err := VerifyPassword("s3cret-pass", "not-a-bcrypt-hash")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidPassword)
	})
}
