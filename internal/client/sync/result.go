package sync

import "github.com/iudanet/portalsync/internal/models"

// Source хранилище, из которого получены данные результата
type Source string

const (
	SourceRemote Source = "remote" // получено с сервера в этом вызове
	SourceDraft  Source = "draft"  // ранее сохраненный черновик
	SourceMock   Source = "mock"   // только что созданная заглушка или offline запись
)

// Result результат операции синхронизатора профиля
type Result[T any] struct {
	Profile      T                   `json:"profile"`
	Record       *models.DraftRecord `json:"-"`
	Err          error               `json:"-"` // причина нефатальной ошибки
	Source       Source              `json:"source"`
	OK           bool                `json:"ok"`
	Stale        bool                `json:"stale"`
	AuthRequired bool                `json:"authRequired"`
	Fallback     bool                `json:"fallback"`
	OfflineSaved bool                `json:"offlineSaved,omitempty"`
}

// FetchOptions параметры Fetch. Нулевое значение разрешает откат на черновик.
type FetchOptions struct {
	// Fallback возвращается вместо ошибки при прочих сбоях сервера
	Fallback models.Fields
	// FirmID переопределяет фирму сессии для ресурсов фирмы
	FirmID string
	// PreferDraft возвращает черновик без обращения к серверу, если он есть
	PreferDraft bool
	// NoDraftFallback запрещает возвращать черновик при ошибке авторизации
	NoDraftFallback bool
}

// UpsertOptions параметры Upsert. Нулевое значение разрешает черновик при ошибке.
type UpsertOptions struct {
	FirmID string
	// NoDraftOnError возвращает ошибку сервера вместо нефатального результата
	NoDraftOnError bool
}

// StudioList результат списка студий
type StudioList struct {
	Studios  []models.Studio `json:"studios"`
	Source   Source          `json:"source"`
	Fallback bool            `json:"fallback"`
}

// StudioResult результат операции над одной студией
type StudioResult struct {
	Studio   *models.Studio `json:"studio,omitempty"`
	Source   Source         `json:"source"`
	Fallback bool           `json:"fallback"`
}
