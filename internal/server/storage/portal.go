package storage

import (
	"context"

	"github.com/iudanet/portalsync/internal/models"
)

// ProfileStorage хранит профили портала. Владелец профиля фирмы это firm id,
// для associate и vendor это id пользователя.
type ProfileStorage interface {
	// GetProfile returns ErrProfileNotFound if nothing was saved for the owner
	GetProfile(ctx context.Context, role models.Role, ownerID string) (models.Fields, error)

	// SaveProfile replaces the stored profile of the owner
	SaveProfile(ctx context.Context, role models.Role, ownerID string, fields models.Fields) error
}

// StudioStorage хранит студии фирм. Все операции ограничены одной фирмой.
type StudioStorage interface {
	// ListStudios returns empty slice if firm has no studios
	ListStudios(ctx context.Context, firmID string) ([]models.Studio, error)

	// GetStudio returns ErrStudioNotFound if id does not belong to the firm
	GetStudio(ctx context.Context, firmID, id string) (*models.Studio, error)

	CreateStudio(ctx context.Context, studio *models.Studio) error

	// UpdateStudio returns ErrStudioNotFound if id does not belong to the firm
	UpdateStudio(ctx context.Context, studio *models.Studio) error

	// DeleteStudio returns ErrStudioNotFound if id does not belong to the firm
	DeleteStudio(ctx context.Context, firmID, id string) error
}
