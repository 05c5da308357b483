package server

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/portalsync/internal/crypto"
	"github.com/iudanet/portalsync/internal/models"
	"github.com/iudanet/portalsync/internal/server/storage"
	"github.com/iudanet/portalsync/internal/validation"
)

// NewUser описывает пользователя для команды user add
type NewUser struct {
	Username string
	Password string
	Role     models.Role
	FirmID   string
}

// AddUser проверяет и сохраняет пользователя портала с bcrypt хешем пароля
func AddUser(ctx context.Context, users storage.UserStorage, in NewUser) (*models.User, error) {
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, err
	}
	if in.Role == models.RoleFirm && in.FirmID == "" {
		return nil, fmt.Errorf("firm user requires a firm id")
	}
	if in.Role != models.RoleFirm && in.FirmID != "" {
		return nil, fmt.Errorf("only firm users can be attached to a firm")
	}

	hash, err := crypto.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     in.Username,
		PasswordHash: hash,
		Role:         in.Role,
		FirmID:       in.FirmID,
		CreatedAt:    time.Now().UTC(),
	}

	if err := users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user %s: %w", in.Username, err)
	}

	return user, nil
}
