package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/iudanet/portalsync/pkg/api"
)

// Pinger проверяет доступность хранилища
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler обрабатывает health check запросы
type HealthHandler struct {
	responder
	db Pinger
}

// NewHealthHandler создает новый handler для health check
func NewHealthHandler(logger *slog.Logger, db Pinger) *HealthHandler {
	return &HealthHandler{
		responder: responder{logger: logger},
		db:        db,
	}
}

// Health обрабатывает GET /portal/health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		if err := h.db.Ping(r.Context()); err != nil {
			h.logger.ErrorContext(r.Context(), "database ping failed", slog.Any("error", err))
			h.sendJSON(w, api.HealthResponse{Status: "unavailable"}, http.StatusServiceUnavailable)
			return
		}
	}

	h.sendJSON(w, api.HealthResponse{Status: "ok"}, http.StatusOK)
}
