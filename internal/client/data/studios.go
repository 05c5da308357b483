// Package data хранит локальную коллекцию студий фирмы.
//
// Коллекция используется как кэш удаленного списка и как рабочая копия
// в offline режиме. При первом обращении к фирме она заполняется
// примерами из шаблонов; опустошенная коллекция остается пустой.
package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/portalsync/internal/client/broadcast"
	"github.com/iudanet/portalsync/internal/client/storage"
	"github.com/iudanet/portalsync/internal/models"
	"github.com/iudanet/portalsync/internal/templates"
)

// LocalIDPrefix префикс идентификаторов студий, созданных локально
const LocalIDPrefix = "local-"

// ErrStudioNotFound студия отсутствует в локальной коллекции
var ErrStudioNotFound = errors.New("studio not found")

// StudioCollection локальная коллекция студий по фирмам
type StudioCollection struct {
	storage     storage.DraftStorage
	broadcaster broadcast.Broadcaster
	templates   *templates.Set
	logger      *slog.Logger
	now         func() time.Time
	newID       func() string
}

// NewStudioCollection создает коллекцию
func NewStudioCollection(st storage.DraftStorage, b broadcast.Broadcaster, tmpl *templates.Set, logger *slog.Logger) *StudioCollection {
	if logger == nil {
		logger = slog.Default()
	}
	if tmpl == nil {
		tmpl = templates.Default()
	}
	if b == nil {
		b = broadcast.NewHub(logger)
	}
	return &StudioCollection{
		storage:     st,
		broadcaster: b,
		templates:   tmpl,
		logger:      logger,
		now:         time.Now,
		newID:       func() string { return LocalIDPrefix + uuid.NewString() },
	}
}

// List возвращает студии фирмы, при первом обращении заполняя коллекцию примерами
func (c *StudioCollection) List(ctx context.Context, firmID string) ([]models.Studio, error) {
	key := models.DraftKey(models.ResourceStudios, firmID)

	data, err := c.storage.GetDraft(ctx, key)
	switch {
	case errors.Is(err, storage.ErrDraftNotFound):
		return c.mutate(ctx, firmID, func(list []models.Studio) ([]models.Studio, error) {
			return list, nil
		})
	case err != nil:
		return nil, fmt.Errorf("failed to read studios: %w", err)
	}

	list, err := decodeStudios(data)
	if err != nil {
		c.logger.Warn("studio collection unreadable, reseeding", "key", key, "error", err)
		return c.mutate(ctx, firmID, func(list []models.Studio) ([]models.Studio, error) {
			return list, nil
		})
	}
	return list, nil
}

// Find ищет студию по идентификатору
func (c *StudioCollection) Find(ctx context.Context, firmID, id string) (*models.Studio, error) {
	list, err := c.List(ctx, firmID)
	if err != nil {
		return nil, err
	}
	i := indexOf(list, id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrStudioNotFound, id)
	}
	return &list[i], nil
}

// Create добавляет студию со статусом draft и локальным идентификатором
func (c *StudioCollection) Create(ctx context.Context, firmID string, input models.StudioInput) (*models.Studio, error) {
	now := c.now().UTC()
	studio := models.Studio{
		ID:        c.newID(),
		FirmID:    firmID,
		Status:    models.StudioStatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
	input.Apply(&studio)

	_, err := c.mutate(ctx, firmID, func(list []models.Studio) ([]models.Studio, error) {
		return append(list, studio), nil
	})
	if err != nil {
		return nil, err
	}
	return &studio, nil
}

// Update применяет непустые поля input к студии
func (c *StudioCollection) Update(ctx context.Context, firmID, id string, input models.StudioInput) (*models.Studio, error) {
	return c.modify(ctx, firmID, id, func(s *models.Studio) {
		input.Apply(s)
		s.UpdatedAt = c.now().UTC()
	})
}

// Publish переводит студию в статус published
func (c *StudioCollection) Publish(ctx context.Context, firmID, id string) (*models.Studio, error) {
	return c.modify(ctx, firmID, id, func(s *models.Studio) {
		now := c.now().UTC()
		s.Status = models.StudioStatusPublished
		s.PublishedAt = &now
		s.UpdatedAt = now
	})
}

// Delete удаляет студию из коллекции
func (c *StudioCollection) Delete(ctx context.Context, firmID, id string) error {
	_, err := c.mutate(ctx, firmID, func(list []models.Studio) ([]models.Studio, error) {
		i := indexOf(list, id)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", ErrStudioNotFound, id)
		}
		return slices.Delete(list, i, i+1), nil
	})
	return err
}

// Replace заменяет коллекцию фирмы списком, полученным с сервера.
// Несинхронизированные локальные изменения сохраняются: студии с локальным
// идентификатором остаются в конце списка, а локальная копия, измененная
// позже серверной, заменяет ее. Возвращает итоговую коллекцию.
func (c *StudioCollection) Replace(ctx context.Context, firmID string, studios []models.Studio) ([]models.Studio, error) {
	return c.mutate(ctx, firmID, func(local []models.Studio) ([]models.Studio, error) {
		next := slices.Clone(studios)
		for _, s := range local {
			if strings.HasPrefix(s.ID, LocalIDPrefix) {
				if indexOf(next, s.ID) < 0 {
					next = append(next, s)
				}
				continue
			}
			if i := indexOf(next, s.ID); i >= 0 && s.UpdatedAt.After(next[i].UpdatedAt) {
				next[i] = s
			}
		}
		return next, nil
	})
}

// Put добавляет или заменяет студию по идентификатору
func (c *StudioCollection) Put(ctx context.Context, firmID string, studio models.Studio) error {
	_, err := c.mutate(ctx, firmID, func(list []models.Studio) ([]models.Studio, error) {
		if i := indexOf(list, studio.ID); i >= 0 {
			list[i] = studio
			return list, nil
		}
		return append(list, studio), nil
	})
	return err
}

func (c *StudioCollection) modify(ctx context.Context, firmID, id string, fn func(*models.Studio)) (*models.Studio, error) {
	var updated models.Studio
	_, err := c.mutate(ctx, firmID, func(list []models.Studio) ([]models.Studio, error) {
		i := indexOf(list, id)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", ErrStudioNotFound, id)
		}
		fn(&list[i])
		updated = list[i]
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// mutate читает коллекцию (или примеры для новой фирмы), применяет fn
// и записывает результат в одной транзакции хранилища
func (c *StudioCollection) mutate(ctx context.Context, firmID string, fn func([]models.Studio) ([]models.Studio, error)) ([]models.Studio, error) {
	key := models.DraftKey(models.ResourceStudios, firmID)

	var result []models.Studio
	err := c.storage.UpdateDraft(ctx, key, func(current []byte) ([]byte, error) {
		list := c.templates.SampleStudios(firmID)
		if current != nil {
			decoded, err := decodeStudios(current)
			if err != nil {
				c.logger.Warn("studio collection unreadable, reseeding", "key", key, "error", err)
			} else {
				list = decoded
			}
		}

		next, err := fn(list)
		if err != nil {
			return nil, err
		}
		if next == nil {
			next = []models.Studio{}
		}
		result = next
		return json.Marshal(next)
	})
	if err != nil {
		if errors.Is(err, ErrStudioNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to save studios: %w", err)
	}

	c.publish(ctx, firmID, result)
	return slices.Clone(result), nil
}

func (c *StudioCollection) publish(ctx context.Context, firmID string, list []models.Studio) {
	payload, err := models.ToFields(struct {
		Studios []models.Studio `json:"studios"`
	}{Studios: list})
	if err != nil {
		c.logger.Warn("failed to encode studio broadcast", "error", err)
		return
	}

	err = c.broadcaster.Publish(ctx, broadcast.Event{
		ResourceType: models.ResourceStudios,
		ScopeKey:     firmID,
		Action:       broadcast.ActionUpdate,
		Payload:      payload,
		Source:       models.DraftSourceLocal,
		Timestamp:    c.now().UTC(),
	})
	if err != nil {
		c.logger.Warn("failed to broadcast studio change", "firm", firmID, "error", err)
	}
}

func decodeStudios(data []byte) ([]models.Studio, error) {
	var list []models.Studio
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []models.Studio{}
	}
	return list, nil
}

func indexOf(list []models.Studio, id string) int {
	return slices.IndexFunc(list, func(s models.Studio) bool { return s.ID == id })
}
