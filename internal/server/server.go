// Package server собирает reference реализацию portal API: sqlite хранилище,
// JWT аутентификацию и middleware цепочку поверх net/http.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/portalsync/internal/config"
	"github.com/iudanet/portalsync/internal/models"
	"github.com/iudanet/portalsync/internal/server/handlers"
	"github.com/iudanet/portalsync/internal/server/middleware"
	"github.com/iudanet/portalsync/internal/server/storage/sqlite"
)

const shutdownTimeout = 10 * time.Second

// Server HTTP сервер портала
type Server struct {
	logger  *slog.Logger
	store   *sqlite.Storage
	limiter *middleware.RateLimiter
	http    *http.Server
}

// New открывает хранилище и собирает роутер по конфигурации
func New(ctx context.Context, cfg *config.Server, logger *slog.Logger) (*Server, error) {
	store, err := sqlite.New(ctx, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window, logger)

	jwtConfig := handlers.JWTConfig{
		Secret:         []byte(cfg.JWT.Secret),
		AccessTokenTTL: cfg.JWT.AccessTTL,
	}

	return &Server{
		logger:  logger,
		store:   store,
		limiter: limiter,
		http: &http.Server{
			Addr:              cfg.Addr,
			Handler:           NewRouter(logger, store, jwtConfig, limiter),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// NewRouter регистрирует маршруты portal API
func NewRouter(logger *slog.Logger, store *sqlite.Storage, jwtConfig handlers.JWTConfig, limiter *middleware.RateLimiter) http.Handler {
	authHandler := handlers.NewAuthHandler(logger, store, jwtConfig)
	healthHandler := handlers.NewHealthHandler(logger, store)
	profileHandler := handlers.NewProfileHandler(logger, store)
	studioHandler := handlers.NewStudioHandler(logger, store)

	authenticated := middleware.AuthMiddleware(logger, jwtConfig)
	profileAccess := func(h http.HandlerFunc) http.Handler {
		return middleware.Chain(h, authenticated, middleware.RequirePathRole(logger))
	}
	studioAccess := func(h http.HandlerFunc) http.Handler {
		return middleware.Chain(h, authenticated, middleware.RequireRole(logger, models.RoleFirm, models.RoleAdmin))
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /portal/health", healthHandler.Health)
	mux.Handle("POST /portal/auth/login", middleware.RateLimitMiddleware(limiter)(http.HandlerFunc(authHandler.Login)))

	mux.Handle("GET /portal/{role}/profile", profileAccess(profileHandler.Get))
	mux.Handle("PUT /portal/{role}/profile", profileAccess(profileHandler.Put))

	mux.Handle("GET /portal/studio/studios", studioAccess(studioHandler.List))
	mux.Handle("POST /portal/studio/studios", studioAccess(studioHandler.Create))
	mux.Handle("PUT /portal/studio/studios/{id}", studioAccess(studioHandler.Update))
	mux.Handle("DELETE /portal/studio/studios/{id}", studioAccess(studioHandler.Delete))
	mux.Handle("POST /portal/studio/studios/{id}/publish", studioAccess(studioHandler.Publish))

	return middleware.Chain(mux,
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger, "/portal/health"),
	)
}

// Run обслуживает запросы до отмены ctx, затем выполняет graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("portal server listening", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down portal server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}

// Close освобождает хранилище и фоновые задачи
func (s *Server) Close() error {
	s.limiter.Stop()
	return s.store.Close()
}
