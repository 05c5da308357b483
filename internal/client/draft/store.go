// Package draft реализует локальное хранилище черновиков ресурсов.
//
// Каждая запись хранится под ключом (тип ресурса, scope) и обновляется
// неглубоким слиянием полей. Любая запись или удаление рассылается
// через broadcast.Broadcaster; ошибки рассылки только логируются.
package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/iudanet/portalsync/internal/client/broadcast"
	"github.com/iudanet/portalsync/internal/client/storage"
	"github.com/iudanet/portalsync/internal/models"
)

// Store локальное хранилище черновиков
type Store struct {
	storage     storage.DraftStorage
	broadcaster broadcast.Broadcaster
	logger      *slog.Logger
	now         func() time.Time
}

// New создает Store
func New(st storage.DraftStorage, b broadcast.Broadcaster, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	if b == nil {
		b = broadcast.NewHub(logger)
	}
	return &Store{
		storage:     st,
		broadcaster: b,
		logger:      logger,
		now:         time.Now,
	}
}

// Load возвращает черновик или nil, если его нет или он не читается
func (s *Store) Load(ctx context.Context, rt models.ResourceType, scope string) *models.DraftRecord {
	key := models.DraftKey(rt, scope)

	data, err := s.storage.GetDraft(ctx, key)
	if err != nil {
		if !errors.Is(err, storage.ErrDraftNotFound) {
			s.logger.Warn("failed to read draft", "key", key, "error", err)
		}
		return nil
	}

	record, err := decode(data)
	if err != nil {
		s.logger.Warn("ignoring unreadable draft", "key", key, "error", err)
		return nil
	}
	return record
}

// Save сливает patch поверх существующего черновика, проставляет время
// обновления и рассылает событие update. Чтение, слияние и запись
// выполняются в одной транзакции хранилища.
func (s *Store) Save(ctx context.Context, rt models.ResourceType, scope string, patch models.Fields, source string) (*models.DraftRecord, error) {
	key := models.DraftKey(rt, scope)

	var saved *models.DraftRecord
	err := s.storage.UpdateDraft(ctx, key, func(current []byte) ([]byte, error) {
		base := models.Fields{}
		if current != nil {
			existing, err := decode(current)
			if err != nil {
				s.logger.Warn("overwriting unreadable draft", "key", key, "error", err)
			} else {
				base = existing.Payload
			}
		}

		saved = &models.DraftRecord{
			Payload:   base.Merge(patch),
			UpdatedAt: s.now().UTC(),
			Source:    source,
		}
		return json.Marshal(saved)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save draft %s: %w", key, err)
	}

	s.publish(ctx, rt, scope, broadcast.ActionUpdate, saved)
	return saved, nil
}

// Clear удаляет черновик и рассылает событие clear
func (s *Store) Clear(ctx context.Context, rt models.ResourceType, scope string) error {
	key := models.DraftKey(rt, scope)
	if err := s.storage.DeleteDraft(ctx, key); err != nil {
		return fmt.Errorf("failed to clear draft %s: %w", key, err)
	}

	s.publish(ctx, rt, scope, broadcast.ActionClear, nil)
	return nil
}

// SeedFallback записывает шаблон, только если читаемого черновика еще нет.
// Возвращает актуальную запись и признак того, что шаблон был записан.
func (s *Store) SeedFallback(ctx context.Context, rt models.ResourceType, scope string, template models.Fields) (*models.DraftRecord, bool, error) {
	key := models.DraftKey(rt, scope)

	var (
		record *models.DraftRecord
		seeded bool
	)
	err := s.storage.UpdateDraft(ctx, key, func(current []byte) ([]byte, error) {
		if current != nil {
			if existing, err := decode(current); err == nil {
				record = existing
				return nil, nil
			}
		}

		record = &models.DraftRecord{
			Payload:   template.Clone(),
			UpdatedAt: s.now().UTC(),
			Source:    models.DraftSourceFallback,
		}
		seeded = true
		return json.Marshal(record)
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to seed draft %s: %w", key, err)
	}

	if seeded {
		s.publish(ctx, rt, scope, broadcast.ActionUpdate, record)
	}
	return record, seeded, nil
}

// Subscribe подписывает обработчик на изменения черновиков типа rt
func (s *Store) Subscribe(rt models.ResourceType, handler broadcast.Handler) func() {
	return s.broadcaster.Subscribe(rt, handler)
}

func (s *Store) publish(ctx context.Context, rt models.ResourceType, scope string, action broadcast.Action, record *models.DraftRecord) {
	event := broadcast.Event{
		ResourceType: rt,
		ScopeKey:     scope,
		Action:       action,
		Timestamp:    s.now().UTC(),
	}
	if record != nil {
		event.Payload = record.Payload.Clone()
		event.Source = record.Source
		event.Timestamp = record.UpdatedAt
	}

	if err := s.broadcaster.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to broadcast draft change",
			"resource", rt,
			"scope", scope,
			"action", action,
			"error", err,
		)
	}
}

func decode(data []byte) (*models.DraftRecord, error) {
	var record models.DraftRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return &record, nil
}
