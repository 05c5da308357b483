package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/portalsync/internal/models"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		errMsg   string
		wantErr  bool
	}{
		{name: "simple", username: "alice"},
		{name: "dots and dashes", username: "ada.lovelace-2"},
		{name: "minimum length", username: "abc"},
		{name: "maximum length", username: strings.Repeat("a", MaxUsernameLen)},
		{name: "empty", username: "", wantErr: true, errMsg: "cannot be empty"},
		{name: "too short", username: "ab", wantErr: true, errMsg: "at least 3"},
		{name: "too long", username: strings.Repeat("a", MaxUsernameLen+1), wantErr: true, errMsg: "must not exceed"},
		{name: "space", username: "ada lovelace", wantErr: true, errMsg: "can only contain"},
		{name: "at sign", username: "ada@firm", wantErr: true, errMsg: "can only contain"},
		{name: "cyrillic", username: "пользователь", wantErr: true, errMsg: "can only contain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		errMsg   string
		wantErr  bool
	}{
		{name: "exactly minimum", password: "12345678"},
		{name: "special chars", password: "P@ssw0rd!@#$"},
		{name: "empty", password: "", wantErr: true, errMsg: "cannot be empty"},
		{name: "too short", password: "1234567", wantErr: true, errMsg: "at least 8"},
		{name: "too long for bcrypt", password: strings.Repeat("x", 73), wantErr: true, errMsg: "72 bytes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateStudioInput(t *testing.T) {
	tests := []struct {
		name    string
		errMsg  string
		input   models.StudioInput
		create  bool
		wantErr bool
	}{
		{name: "create", input: models.StudioInput{Name: "North"}, create: true},
		{name: "create without name", input: models.StudioInput{Location: "Denver"}, create: true, wantErr: true, errMsg: "name is required"},
		{name: "create blank name", input: models.StudioInput{Name: "   "}, create: true, wantErr: true, errMsg: "name is required"},
		{name: "update location only", input: models.StudioInput{Location: "Denver"}},
		{name: "empty update", input: models.StudioInput{}, wantErr: true, errMsg: "nothing to update"},
		{name: "long name", input: models.StudioInput{Name: strings.Repeat("n", MaxStudioNameLen+1)}, wantErr: true, errMsg: "name must not exceed"},
		{name: "long description", input: models.StudioInput{Name: "x", Description: strings.Repeat("d", MaxStudioDescriptionLen+1)}, create: true, wantErr: true, errMsg: "description"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStudioInput(tt.input, tt.create)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			assert.NoError(t, err)
		})
	}
}
