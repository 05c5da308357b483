package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/iudanet/portalsync/internal/models"
	"github.com/iudanet/portalsync/internal/server/storage"
	"github.com/iudanet/portalsync/pkg/api"
)

// ProfileHandler обслуживает /portal/{role}/profile
type ProfileHandler struct {
	responder
	profiles storage.ProfileStorage
}

// NewProfileHandler создает handler профилей
func NewProfileHandler(logger *slog.Logger, profiles storage.ProfileStorage) *ProfileHandler {
	return &ProfileHandler{
		responder: responder{logger: logger},
		profiles:  profiles,
	}
}

// Get обрабатывает GET /portal/{role}/profile
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	role, owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	fields, err := h.profiles.GetProfile(ctx, role, owner)
	if err != nil {
		if errors.Is(err, storage.ErrProfileNotFound) {
			h.sendError(w, "profile not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get profile", slog.String("role", string(role)), slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.sendJSON(w, api.ProfileResponse{Profile: fields}, http.StatusOK)
}

// Put обрабатывает PUT /portal/{role}/profile
// Тело запроса это полный объект профиля, он заменяет сохраненный
func (h *ProfileHandler) Put(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	role, owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	var fields models.Fields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		h.logger.WarnContext(ctx, "failed to decode profile", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if fields == nil {
		h.sendError(w, "profile must be a JSON object", http.StatusBadRequest)
		return
	}

	if err := h.profiles.SaveProfile(ctx, role, owner, fields); err != nil {
		h.logger.ErrorContext(ctx, "failed to save profile", slog.String("role", string(role)), slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "profile saved", slog.String("role", string(role)), slog.String("owner", owner))

	h.sendJSON(w, api.ProfileResponse{Profile: fields}, http.StatusOK)
}

func (h *ProfileHandler) owner(w http.ResponseWriter, r *http.Request) (models.Role, string, bool) {
	role, err := models.ParseRole(r.PathValue("role"))
	if err != nil || !role.ProfileRole() {
		h.sendError(w, "unknown profile role", http.StatusNotFound)
		return "", "", false
	}

	owner, err := resolveProfileOwner(r, role)
	if err != nil {
		h.sendError(w, err.Error(), tenantStatus(err))
		return "", "", false
	}

	return role, owner, true
}
