package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/iudanet/portalsync/internal/client/storage"
	"github.com/iudanet/portalsync/internal/validation"
	"github.com/iudanet/portalsync/pkg/api"
)

//go:generate moq -out login_mock.go . LoginAPI

// LoginAPI удаленная часть входа (реализуется api.Client)
type LoginAPI interface {
	Login(ctx context.Context, req api.LoginRequest) (*api.TokenResponse, error)
}

// Status состояние сессии для команды status
type Status struct {
	Session  *storage.Session `json:"session,omitempty"`
	LoggedIn bool             `json:"loggedIn"`
	Expired  bool             `json:"expired"`
}

// Service предоставляет функции авторизации
type Service struct {
	api      LoginAPI
	sessions storage.SessionStorage
	logger   *slog.Logger
	now      func() time.Time
}

// NewService создает новый сервис авторизации
func NewService(apiClient LoginAPI, sessions storage.SessionStorage, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		api:      apiClient,
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
	}
}

// Login выполняет аутентификацию и сохраняет сессию
func (s *Service) Login(ctx context.Context, username, password string) (*storage.Session, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return nil, fmt.Errorf("invalid username: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("invalid password: %w", err)
	}

	resp, err := s.api.Login(ctx, api.LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	session := &storage.Session{
		Username:    username,
		UserID:      resp.UserID,
		Role:        resp.Role,
		FirmID:      resp.FirmID,
		AccessToken: resp.AccessToken,
	}
	if resp.ExpiresIn > 0 {
		session.ExpiresAt = s.now().Add(time.Duration(resp.ExpiresIn) * time.Second).UTC()
	}

	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	s.logger.Info("signed in", "username", username, "role", session.Role)
	return session, nil
}

// Logout удаляет локальную сессию. Черновики не удаляются.
func (s *Service) Logout(ctx context.Context) error {
	err := s.sessions.DeleteSession(ctx)
	if errors.Is(err, storage.ErrSessionNotFound) {
		s.logger.Debug("no session to remove")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Status возвращает текущее состояние сессии
func (s *Service) Status(ctx context.Context) (*Status, error) {
	session, err := s.sessions.GetSession(ctx)
	if errors.Is(err, storage.ErrSessionNotFound) {
		return &Status{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	return &Status{
		Session:  session,
		LoggedIn: true,
		Expired:  session.Expired(s.now()),
	}, nil
}
