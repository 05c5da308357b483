package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/portalsync/internal/crypto"
	"github.com/iudanet/portalsync/internal/server/storage"
	"github.com/iudanet/portalsync/internal/validation"
	"github.com/iudanet/portalsync/pkg/api"
)

// AuthHandler обрабатывает запросы авторизации
type AuthHandler struct {
	responder
	userStorage storage.UserStorage
	jwtConfig   JWTConfig
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(logger *slog.Logger, userStorage storage.UserStorage, jwtConfig JWTConfig) *AuthHandler {
	return &AuthHandler{
		responder:   responder{logger: logger},
		userStorage: userStorage,
		jwtConfig:   jwtConfig,
	}
}

// Login обрабатывает POST /portal/auth/login
// Проверяет пароль и выдает access token с ролью и фирмой пользователя
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode login request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validation.ValidateUsername(req.Username); err != nil {
		h.logger.WarnContext(ctx, "invalid username", slog.String("username", req.Username), slog.Any("error", err))
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Password == "" {
		h.sendError(w, "password is required", http.StatusBadRequest)
		return
	}

	user, err := h.userStorage.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.logger.WarnContext(ctx, "login failed: user not found", slog.String("username", req.Username))
			h.sendError(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := crypto.VerifyPassword(req.Password, user.PasswordHash); err != nil {
		h.logger.WarnContext(ctx, "login failed: invalid password", slog.String("username", req.Username))
		h.sendError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	accessToken, expiresIn, err := GenerateAccessToken(h.jwtConfig, user)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate access token", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := h.userStorage.UpdateLastLogin(ctx, user.ID, time.Now()); err != nil {
		// Не критичная ошибка, логируем но не прерываем
		h.logger.WarnContext(ctx, "failed to update last login", slog.Any("error", err))
	}

	h.logger.InfoContext(ctx, "user logged in successfully",
		slog.String("username", req.Username),
		slog.String("user_id", user.ID),
		slog.String("role", string(user.Role)))

	resp := api.TokenResponse{
		AccessToken: accessToken,
		UserID:      user.ID,
		Role:        string(user.Role),
		FirmID:      user.FirmID,
		ExpiresIn:   expiresIn,
	}

	h.sendJSON(w, resp, http.StatusOK)
}
