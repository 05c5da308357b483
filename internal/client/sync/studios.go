package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/iudanet/portalsync/internal/client/data"
	"github.com/iudanet/portalsync/internal/client/failure"
	"github.com/iudanet/portalsync/internal/client/mode"
	"github.com/iudanet/portalsync/internal/models"
)

// StudioSync операции со студиями фирмы.
//
// Пока контекст online и ресурс не деградировал, операции идут на сервер,
// а их результат записывается в локальную коллекцию. Ошибка связи
// переводит весь контекст в offline, ответ 400 навсегда переводит
// на локальную коллекцию только студии.
type StudioSync struct {
	remote   StudioRemote
	local    *data.StudioCollection
	mode     *mode.Controller
	degraded *mode.Controller
	owner    OwnerResolver
	logger   *slog.Logger
}

// NewStudioSync создает синхронизатор студий
func NewStudioSync(remote StudioRemote, local *data.StudioCollection, mc *mode.Controller, owner OwnerResolver, logger *slog.Logger) *StudioSync {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("resource", models.ResourceStudios)
	return &StudioSync{
		remote:   remote,
		local:    local,
		mode:     mc,
		degraded: mode.New(string(models.ResourceStudios), logger),
		owner:    owner,
		logger:   logger,
	}
}

// Degraded сообщает, работают ли студии только с локальной коллекцией
func (s *StudioSync) Degraded() bool {
	return s.degraded.IsOffline()
}

// List возвращает студии фирмы
func (s *StudioSync) List(ctx context.Context, firmID string) (*StudioList, error) {
	scope, remoteFirm := s.scope(ctx, firmID)

	if s.online() {
		studios, err := s.remote.ListStudios(ctx, remoteFirm)
		if err == nil {
			merged, err := s.local.Replace(ctx, scope, studios)
			if err != nil {
				s.logger.Warn("failed to cache studios", "firm", scope, "error", err)
				merged = studios
			}
			if extra := len(merged) - len(studios); extra > 0 {
				s.logger.Info("keeping studios not yet synced", "firm", scope, "count", extra)
			}
			return &StudioList{Studios: merged, Source: SourceRemote}, nil
		}
		if err := s.degrade(err); err != nil {
			return nil, err
		}
	}

	studios, err := s.local.List(ctx, scope)
	if err != nil {
		return nil, err
	}
	return &StudioList{Studios: studios, Source: SourceMock, Fallback: true}, nil
}

// Create создает студию
func (s *StudioSync) Create(ctx context.Context, firmID string, input models.StudioInput) (*StudioResult, error) {
	return s.single(ctx, firmID,
		func(remoteFirm string) (*models.Studio, error) {
			return s.remote.CreateStudio(ctx, remoteFirm, input)
		},
		func(scope string) (*models.Studio, error) {
			return s.local.Create(ctx, scope, input)
		},
	)
}

// Update обновляет поля студии
func (s *StudioSync) Update(ctx context.Context, firmID, id string, input models.StudioInput) (*StudioResult, error) {
	return s.single(ctx, firmID,
		func(remoteFirm string) (*models.Studio, error) {
			return s.remote.UpdateStudio(ctx, remoteFirm, id, input)
		},
		func(scope string) (*models.Studio, error) {
			return s.local.Update(ctx, scope, id, input)
		},
	)
}

// Publish публикует студию
func (s *StudioSync) Publish(ctx context.Context, firmID, id string) (*StudioResult, error) {
	return s.single(ctx, firmID,
		func(remoteFirm string) (*models.Studio, error) {
			return s.remote.PublishStudio(ctx, remoteFirm, id)
		},
		func(scope string) (*models.Studio, error) {
			return s.local.Publish(ctx, scope, id)
		},
	)
}

// Delete удаляет студию
func (s *StudioSync) Delete(ctx context.Context, firmID, id string) (*StudioResult, error) {
	scope, remoteFirm := s.scope(ctx, firmID)

	if s.online() {
		err := s.remote.DeleteStudio(ctx, remoteFirm, id)
		if err == nil {
			if err := s.local.Delete(ctx, scope, id); err != nil && !errors.Is(err, data.ErrStudioNotFound) {
				s.logger.Warn("failed to remove cached studio", "firm", scope, "id", id, "error", err)
			}
			return &StudioResult{Source: SourceRemote}, nil
		}
		if err := s.degrade(err); err != nil {
			return nil, err
		}
	}

	if err := s.local.Delete(ctx, scope, id); err != nil {
		return nil, err
	}
	return &StudioResult{Source: SourceMock, Fallback: true}, nil
}

func (s *StudioSync) single(ctx context.Context, firmID string, remote func(remoteFirm string) (*models.Studio, error), local func(scope string) (*models.Studio, error)) (*StudioResult, error) {
	scope, remoteFirm := s.scope(ctx, firmID)

	if s.online() {
		studio, err := remote(remoteFirm)
		if err == nil {
			if err := s.local.Put(ctx, scope, *studio); err != nil {
				s.logger.Warn("failed to cache studio", "firm", scope, "id", studio.ID, "error", err)
			}
			return &StudioResult{Studio: studio, Source: SourceRemote}, nil
		}
		if err := s.degrade(err); err != nil {
			return nil, err
		}
	}

	studio, err := local(scope)
	if err != nil {
		return nil, err
	}
	return &StudioResult{Studio: studio, Source: SourceMock, Fallback: true}, nil
}

func (s *StudioSync) online() bool {
	return !s.mode.IsOffline() && !s.degraded.IsOffline()
}

// degrade решает, переходить ли на локальную коллекцию.
// nil означает откат, иначе возвращается ошибка для вызывающего.
func (s *StudioSync) degrade(err error) error {
	switch kind := failure.Classify(err); kind {
	case failure.Connectivity:
		s.mode.ActivateOffline(err.Error())
		return nil
	case failure.RequestRejected:
		s.degraded.ActivateOffline(err.Error())
		return nil
	case failure.Authorization:
		return fmt.Errorf("%w: %w", ErrAuthRequired, err)
	case failure.NotFound:
		return fmt.Errorf("%w: %w", ErrStudioNotFound, err)
	default:
		return err
	}
}

func (s *StudioSync) scope(ctx context.Context, firmID string) (string, string) {
	if firmID != "" {
		return firmID, firmID
	}
	return resolveOwner(ctx, s.owner, s.logger), ""
}
