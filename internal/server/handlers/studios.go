package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/portalsync/internal/models"
	"github.com/iudanet/portalsync/internal/server/storage"
	"github.com/iudanet/portalsync/internal/validation"
	"github.com/iudanet/portalsync/pkg/api"
)

// StudioHandler обслуживает /portal/studio/studios
type StudioHandler struct {
	responder
	studios storage.StudioStorage
	now     func() time.Time
}

// NewStudioHandler создает handler студий фирмы
func NewStudioHandler(logger *slog.Logger, studios storage.StudioStorage) *StudioHandler {
	return &StudioHandler{
		responder: responder{logger: logger},
		studios:   studios,
		now:       time.Now,
	}
}

// List обрабатывает GET /portal/studio/studios
func (h *StudioHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	firmID, ok := h.firm(w, r)
	if !ok {
		return
	}

	studios, err := h.studios.ListStudios(ctx, firmID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list studios", slog.String("firm_id", firmID), slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.sendJSON(w, api.StudiosResponse{Studios: studios}, http.StatusOK)
}

// Create обрабатывает POST /portal/studio/studios
func (h *StudioHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	firmID, ok := h.firm(w, r)
	if !ok {
		return
	}

	input, ok := h.decodeInput(w, r, true)
	if !ok {
		return
	}

	now := h.now().UTC()
	studio := &models.Studio{
		ID:        uuid.New().String(),
		FirmID:    firmID,
		Status:    models.StudioStatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
	input.Apply(studio)

	if err := h.studios.CreateStudio(ctx, studio); err != nil {
		h.logger.ErrorContext(ctx, "failed to create studio", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "studio created", slog.String("firm_id", firmID), slog.String("studio_id", studio.ID))

	h.sendJSON(w, api.StudioResponse{Studio: *studio}, http.StatusCreated)
}

// Update обрабатывает PUT /portal/studio/studios/{id}
func (h *StudioHandler) Update(w http.ResponseWriter, r *http.Request) {
	firmID, ok := h.firm(w, r)
	if !ok {
		return
	}

	input, ok := h.decodeInput(w, r, false)
	if !ok {
		return
	}

	h.modify(w, r, firmID, func(s *models.Studio) {
		input.Apply(s)
	})
}

// Publish обрабатывает POST /portal/studio/studios/{id}/publish
func (h *StudioHandler) Publish(w http.ResponseWriter, r *http.Request) {
	firmID, ok := h.firm(w, r)
	if !ok {
		return
	}

	h.modify(w, r, firmID, func(s *models.Studio) {
		published := h.now().UTC()
		s.Status = models.StudioStatusPublished
		s.PublishedAt = &published
	})
}

// Delete обрабатывает DELETE /portal/studio/studios/{id}
func (h *StudioHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	firmID, ok := h.firm(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if err := h.studios.DeleteStudio(ctx, firmID, id); err != nil {
		h.sendStorageError(w, r, err)
		return
	}

	h.logger.InfoContext(ctx, "studio deleted", slog.String("firm_id", firmID), slog.String("studio_id", id))

	w.WriteHeader(http.StatusNoContent)
}

// modify читает студию, применяет change и сохраняет результат
func (h *StudioHandler) modify(w http.ResponseWriter, r *http.Request, firmID string, change func(*models.Studio)) {
	ctx := r.Context()

	studio, err := h.studios.GetStudio(ctx, firmID, r.PathValue("id"))
	if err != nil {
		h.sendStorageError(w, r, err)
		return
	}

	change(studio)
	studio.UpdatedAt = h.now().UTC()

	if err := h.studios.UpdateStudio(ctx, studio); err != nil {
		h.sendStorageError(w, r, err)
		return
	}

	h.sendJSON(w, api.StudioResponse{Studio: *studio}, http.StatusOK)
}

func (h *StudioHandler) firm(w http.ResponseWriter, r *http.Request) (string, bool) {
	firmID, err := resolveFirm(r)
	if err != nil {
		h.sendError(w, err.Error(), tenantStatus(err))
		return "", false
	}
	return firmID, true
}

func (h *StudioHandler) decodeInput(w http.ResponseWriter, r *http.Request, create bool) (models.StudioInput, bool) {
	var input models.StudioInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.logger.WarnContext(r.Context(), "failed to decode studio input", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return input, false
	}

	if err := validation.ValidateStudioInput(input, create); err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return input, false
	}

	return input, true
}

func (h *StudioHandler) sendStorageError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, storage.ErrStudioNotFound) {
		h.sendError(w, "studio not found", http.StatusNotFound)
		return
	}
	h.logger.ErrorContext(r.Context(), "studio storage failed", slog.Any("error", err))
	h.sendError(w, "internal server error", http.StatusInternalServerError)
}
