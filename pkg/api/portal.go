package api

import "github.com/iudanet/portalsync/internal/models"

// ProfileResponse оборачивает профиль любого типа ресурса.
type ProfileResponse struct {
	Profile models.Fields `json:"profile"`
}

// StudioResponse оборачивает одну студию.
type StudioResponse struct {
	Studio models.Studio `json:"studio"`
}

// StudiosResponse оборачивает коллекцию студий фирмы.
type StudiosResponse struct {
	Studios []models.Studio `json:"studios"`
}
