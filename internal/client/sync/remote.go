package sync

import (
	"context"

	"github.com/iudanet/portalsync/internal/models"
)

//go:generate moq -out remote_mock.go . ProfileRemote StudioRemote OwnerResolver

// ProfileRemote удаленные операции с профилями.
// firmID пустой, когда используется фирма текущей сессии.
type ProfileRemote interface {
	GetProfile(ctx context.Context, role models.Role, firmID string) (models.Fields, error)
	PutProfile(ctx context.Context, role models.Role, firmID string, fields models.Fields) (models.Fields, error)
}

// StudioRemote удаленные операции со студиями фирмы
type StudioRemote interface {
	ListStudios(ctx context.Context, firmID string) ([]models.Studio, error)
	CreateStudio(ctx context.Context, firmID string, input models.StudioInput) (*models.Studio, error)
	UpdateStudio(ctx context.Context, firmID, id string, input models.StudioInput) (*models.Studio, error)
	PublishStudio(ctx context.Context, firmID, id string) (*models.Studio, error)
	DeleteStudio(ctx context.Context, firmID, id string) error
}

// OwnerResolver возвращает фирму текущего пользователя (пусто, если сессии нет)
type OwnerResolver interface {
	OwnerFirmID(ctx context.Context) (string, error)
}
