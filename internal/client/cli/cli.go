// Package cli implements the portal command line client on top of the sync engine.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/iudanet/portalsync/internal/client/api"
	"github.com/iudanet/portalsync/internal/client/auth"
	"github.com/iudanet/portalsync/internal/client/broadcast"
	"github.com/iudanet/portalsync/internal/client/iocli"
	"github.com/iudanet/portalsync/internal/client/storage/boltdb"
	"github.com/iudanet/portalsync/internal/client/sync"
	"github.com/iudanet/portalsync/internal/config"
	"github.com/iudanet/portalsync/internal/templates"
)

// Cli компоненты клиента, собранные для выполнения одной команды
type Cli struct {
	io          iocli.IO
	out         *OutputFormatter
	logger      *slog.Logger
	cfg         *config.Client
	storage     *boltdb.Storage
	apiClient   *api.Client
	sessions    *auth.SessionStore
	authService *auth.Service
	broadcaster broadcast.Broadcaster
	engine      *sync.Engine
}

// New открывает локальный профиль и собирает движок синхронизации
func New(ctx context.Context, cfg *config.Client, logger *slog.Logger, io iocli.IO, out *OutputFormatter) (*Cli, error) {
	st, err := boltdb.New(ctx, cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open local profile: %w", err)
	}

	sessions := auth.NewSessionStore(st)
	apiClient := api.NewClient(cfg.Server.URL, cfg.Server.Timeout, sessions)
	b := broadcast.Open(ctx, cfg.Broadcast.RedisURL, cfg.Broadcast.Channel, logger)

	engine := sync.NewEngine(sync.Deps{
		Remote:      apiClient,
		Storage:     st,
		Broadcaster: b,
		Owner:       sessions,
		Templates:   templates.Default(),
		Logger:      logger,
	})

	return &Cli{
		io:          io,
		out:         out,
		logger:      logger,
		cfg:         cfg,
		storage:     st,
		apiClient:   apiClient,
		sessions:    sessions,
		authService: auth.NewService(apiClient, st, logger),
		broadcaster: b,
		engine:      engine,
	}, nil
}

// Close освобождает broadcaster и файл профиля
func (c *Cli) Close() error {
	return errors.Join(c.broadcaster.Close(), c.storage.Close())
}

// releaseStorage закрывает файл профиля раньше Close, чтобы долгая команда
// не держала блокировку bbolt. После вызова доступен только broadcaster.
func (c *Cli) releaseStorage() {
	if err := c.storage.Close(); err != nil {
		c.logger.Warn("failed to release local profile", "error", err)
	}
}

func (c *Cli) broadcastBackend() string {
	if _, ok := c.broadcaster.(*broadcast.Redis); ok {
		return "redis"
	}
	return "local"
}
