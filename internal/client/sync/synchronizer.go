// Package sync связывает удаленный portal API и локальные черновики.
//
// Синхронизатор профиля сначала обращается к серверу, пока контекст
// в online режиме. Ошибка связи переводит контекст в offline, ошибка
// авторизации возвращается вызывающему (или отмечается в результате,
// если есть черновик), 404 заполняет черновик шаблоном.
package sync

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/iudanet/portalsync/internal/client/broadcast"
	"github.com/iudanet/portalsync/internal/client/draft"
	"github.com/iudanet/portalsync/internal/client/failure"
	"github.com/iudanet/portalsync/internal/client/mode"
	"github.com/iudanet/portalsync/internal/models"
)

// Resource описывает один тип профиля
type Resource struct {
	Template   models.Fields
	Type       models.ResourceType
	Role       models.Role
	FirmScoped bool // черновик и запросы привязаны к фирме
}

// Synchronizer синхронизирует профиль с типизированным представлением T
type Synchronizer[T any] struct {
	remote   ProfileRemote
	drafts   *draft.Store
	mode     *mode.Controller
	owner    OwnerResolver
	logger   *slog.Logger
	resource Resource
}

// NewSynchronizer создает синхронизатор профиля
func NewSynchronizer[T any](res Resource, remote ProfileRemote, drafts *draft.Store, mc *mode.Controller, owner OwnerResolver, logger *slog.Logger) *Synchronizer[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Synchronizer[T]{
		resource: res,
		remote:   remote,
		drafts:   drafts,
		mode:     mc,
		owner:    owner,
		logger:   logger.With("resource", res.Type),
	}
}

// Fetch получает профиль, откатываясь на черновик по правилам режима
func (s *Synchronizer[T]) Fetch(ctx context.Context, opts FetchOptions) (*Result[T], error) {
	scope, remoteFirm := s.scope(ctx, opts.FirmID)

	if opts.PreferDraft {
		if record := s.drafts.Load(ctx, s.resource.Type, scope); record != nil {
			return s.result(record, Result[T]{OK: true, Source: SourceDraft, Fallback: s.mode.IsOffline()}), nil
		}
	}

	if s.mode.IsOffline() {
		return s.seeded(ctx, scope, Result[T]{OK: true, Stale: true, Fallback: true})
	}

	payload, err := s.remote.GetProfile(ctx, s.resource.Role, remoteFirm)
	if err == nil {
		record := s.cacheRemote(ctx, scope, payload)
		return s.result(record, Result[T]{OK: true, Source: SourceRemote}), nil
	}

	kind := failure.Classify(err)
	s.logger.Debug("profile fetch failed", "scope", scope, "kind", kind, "error", err)

	switch kind {
	case failure.Connectivity:
		s.mode.ActivateOffline(err.Error())
		return s.seeded(ctx, scope, Result[T]{OK: true, Stale: true, Fallback: true, Err: err})

	case failure.Authorization:
		authErr := fmt.Errorf("%w: %w", ErrAuthRequired, err)
		if !opts.NoDraftFallback {
			if record := s.drafts.Load(ctx, s.resource.Type, scope); record != nil {
				return s.result(record, Result[T]{
					OK:           true,
					Source:       SourceDraft,
					Stale:        true,
					AuthRequired: true,
					Fallback:     s.mode.IsOffline(),
					Err:          authErr,
				}), nil
			}
		}
		return nil, authErr

	case failure.NotFound:
		return s.seeded(ctx, scope, Result[T]{OK: true, Stale: true, Fallback: s.mode.IsOffline(), Err: err})

	default:
		if opts.Fallback != nil {
			record := &models.DraftRecord{
				Payload: opts.Fallback.Clone(),
				Source:  models.DraftSourceFallback,
			}
			return s.result(record, Result[T]{Source: SourceMock, Stale: true, Fallback: s.mode.IsOffline(), Err: err}), nil
		}
		return nil, err
	}
}

// Upsert сохраняет patch в черновик и затем пытается записать его на сервер.
// Черновик записывается до сетевого вызова, поэтому правка не теряется.
func (s *Synchronizer[T]) Upsert(ctx context.Context, patch models.Fields, opts UpsertOptions) (*Result[T], error) {
	scope, remoteFirm := s.scope(ctx, opts.FirmID)

	record, err := s.drafts.Save(ctx, s.resource.Type, scope, patch, models.DraftSourceLocal)
	if err != nil {
		return nil, err
	}

	if s.mode.IsOffline() {
		return s.result(record, Result[T]{OK: true, Source: SourceMock, Stale: true, Fallback: true, OfflineSaved: true}), nil
	}

	payload, err := s.remote.PutProfile(ctx, s.resource.Role, remoteFirm, record.Payload)
	if err == nil {
		merged := s.cacheRemote(ctx, scope, payload)
		return s.result(merged, Result[T]{OK: true, Source: SourceRemote}), nil
	}

	kind := failure.Classify(err)
	s.logger.Debug("profile upsert failed", "scope", scope, "kind", kind, "error", err)

	if kind == failure.Connectivity {
		s.mode.ActivateOffline(err.Error())
		return s.result(record, Result[T]{OK: true, Source: SourceMock, Stale: true, Fallback: true, OfflineSaved: true, Err: err}), nil
	}

	if kind == failure.Authorization {
		err = fmt.Errorf("%w: %w", ErrAuthRequired, err)
	}
	if opts.NoDraftOnError {
		return nil, err
	}
	return s.result(record, Result[T]{
		Source:       SourceDraft,
		Stale:        true,
		AuthRequired: kind == failure.Authorization,
		Fallback:     s.mode.IsOffline(),
		Err:          err,
	}), nil
}

// LoadDraft возвращает черновик без сетевых вызовов
func (s *Synchronizer[T]) LoadDraft(ctx context.Context, firmID string) *models.DraftRecord {
	scope, _ := s.scope(ctx, firmID)
	return s.drafts.Load(ctx, s.resource.Type, scope)
}

// Subscribe подписывает обработчик на изменения черновиков этого ресурса
func (s *Synchronizer[T]) Subscribe(handler broadcast.Handler) func() {
	return s.drafts.Subscribe(s.resource.Type, handler)
}

// ClearDraft удаляет черновик (сброс к значениям по умолчанию)
func (s *Synchronizer[T]) ClearDraft(ctx context.Context, firmID string) error {
	scope, _ := s.scope(ctx, firmID)
	return s.drafts.Clear(ctx, s.resource.Type, scope)
}

// scope возвращает ключ черновика и firmId для запроса к серверу
func (s *Synchronizer[T]) scope(ctx context.Context, firmID string) (string, string) {
	if !s.resource.FirmScoped {
		return "", ""
	}
	if firmID != "" {
		return firmID, firmID
	}
	return resolveOwner(ctx, s.owner, s.logger), ""
}

// seeded возвращает существующий черновик или записывает шаблон
func (s *Synchronizer[T]) seeded(ctx context.Context, scope string, base Result[T]) (*Result[T], error) {
	record, seeded, err := s.drafts.SeedFallback(ctx, s.resource.Type, scope, s.resource.Template)
	if err != nil {
		return nil, err
	}
	base.Source = SourceDraft
	if seeded {
		base.Source = SourceMock
	}
	return s.result(record, base), nil
}

// cacheRemote сливает ответ сервера в черновик. Ошибка записи не мешает
// вернуть данные сервера.
func (s *Synchronizer[T]) cacheRemote(ctx context.Context, scope string, payload models.Fields) *models.DraftRecord {
	record, err := s.drafts.Save(ctx, s.resource.Type, scope, payload, models.DraftSourceRemote)
	if err != nil {
		s.logger.Warn("failed to cache remote profile", "scope", scope, "error", err)
		return &models.DraftRecord{Payload: payload.Clone(), Source: models.DraftSourceRemote}
	}
	return record
}

func (s *Synchronizer[T]) result(record *models.DraftRecord, base Result[T]) *Result[T] {
	base.Record = record
	if record != nil {
		profile, err := models.Decode[T](record.Payload)
		if err != nil {
			s.logger.Warn("draft does not match profile shape", "error", err)
		}
		base.Profile = profile
	}
	return &base
}

func resolveOwner(ctx context.Context, owner OwnerResolver, logger *slog.Logger) string {
	if owner == nil {
		return ""
	}
	firmID, err := owner.OwnerFirmID(ctx)
	if err != nil {
		logger.Warn("failed to resolve current firm", "error", err)
		return ""
	}
	return firmID
}
