package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/iudanet/portalsync/pkg/api"
)

// contextKey тип для ключей контекста
type contextKey string

// ClaimsKey ключ для хранения claims аутентифицированного пользователя
const ClaimsKey contextKey = "claims"

// WithClaims кладет claims в контекст запроса
func WithClaims(ctx context.Context, claims *CustomClaims) context.Context {
	return context.WithValue(ctx, ClaimsKey, claims)
}

// GetClaims извлекает claims из контекста запроса
func GetClaims(ctx context.Context) (*CustomClaims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*CustomClaims)
	return claims, ok && claims != nil
}

// responder общий способ отвечать JSON для всех handlers
type responder struct {
	logger *slog.Logger
}

// sendJSON отправляет JSON ответ
func (h responder) sendJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendError отправляет JSON ответ с ошибкой
func (h responder) sendError(w http.ResponseWriter, message string, statusCode int) {
	resp := api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	h.sendJSON(w, resp, statusCode)
}
