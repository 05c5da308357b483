// Package broadcast доставляет события изменения черновиков всем подписчикам
// текущего процесса и, при наличии Redis, другим процессам с тем же профилем.
package broadcast

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/iudanet/portalsync/internal/models"
)

// Action тип изменения черновика
type Action string

const (
	ActionUpdate Action = "update"
	ActionClear  Action = "clear"
)

// AllResources подписка на события всех типов ресурсов
const AllResources models.ResourceType = ""

// ErrClosed возвращается при публикации в закрытый broadcaster
var ErrClosed = errors.New("broadcaster closed")

// Event событие изменения черновика.
// Payload равен nil для ActionClear.
type Event struct {
	Timestamp    time.Time           `json:"timestamp"`
	Payload      models.Fields       `json:"payload"`
	ResourceType models.ResourceType `json:"resourceType"`
	ScopeKey     string              `json:"scopeKey,omitempty"`
	Action       Action              `json:"action"`
	Source       string              `json:"source,omitempty"`
	Origin       string              `json:"origin,omitempty"` // идентификатор процесса-отправителя
}

// Handler обработчик событий. Вызывается синхронно из Publish
// или из горутины приема сообщений Redis.
type Handler func(Event)

// Broadcaster интерфейс рассылки событий
type Broadcaster interface {
	Publish(ctx context.Context, event Event) error
	// Subscribe регистрирует обработчик; AllResources подписывает на все типы.
	Subscribe(rt models.ResourceType, handler Handler) (unsubscribe func())
	Close() error
}

// Open выбирает backend: Redis, если адрес задан и сервер отвечает,
// иначе Hub в пределах процесса.
func Open(ctx context.Context, redisURL, channel string, logger *slog.Logger) Broadcaster {
	if logger == nil {
		logger = slog.Default()
	}
	if redisURL == "" {
		logger.Debug("redis not configured, broadcasting within process only")
		return NewHub(logger)
	}

	r, err := DialRedis(ctx, redisURL, channel, logger)
	if err != nil {
		logger.Warn("redis broadcaster unavailable, broadcasting within process only", "error", err)
		return NewHub(logger)
	}
	return r
}
