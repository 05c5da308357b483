package broadcast

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/iudanet/portalsync/internal/models"
	"github.com/redis/go-redis/v9"
)

// DefaultChannel канал Redis по умолчанию
const DefaultChannel = "portalsync:drafts"

// Redis доставляет события локально через Hub и в другие процессы через Redis pub/sub.
// Собственные сообщения, вернувшиеся из канала, отбрасываются по Origin.
type Redis struct {
	hub     *Hub
	client  *redis.Client
	pubsub  *redis.PubSub
	logger  *slog.Logger
	done    chan struct{}
	channel string
	origin  string
	once    sync.Once
}

var _ Broadcaster = (*Redis)(nil)

// DialRedis подключается к Redis по URL и подписывается на канал
func DialRedis(ctx context.Context, redisURL, channel string, logger *slog.Logger) (*Redis, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	r, err := NewRedis(ctx, client, channel, logger)
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	return r, nil
}

// NewRedis создает broadcaster поверх существующего клиента.
// Клиент закрывается вместе с broadcaster.
func NewRedis(ctx context.Context, client *redis.Client, channel string, logger *slog.Logger) (*Redis, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if channel == "" {
		channel = DefaultChannel
	}

	pubsub := client.Subscribe(ctx, channel)
	// Ждем подтверждения подписки, иначе ранние сообщения теряются
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("subscribe to %s: %w", channel, err)
	}

	r := &Redis{
		hub:     NewHub(logger),
		client:  client,
		pubsub:  pubsub,
		logger:  logger,
		done:    make(chan struct{}),
		channel: channel,
		origin:  uuid.NewString(),
	}
	go r.listen()
	return r, nil
}

// Origin идентификатор этого процесса в событиях
func (r *Redis) Origin() string {
	return r.origin
}

// Publish доставляет событие локальным подписчикам и отправляет его в канал.
// Локальная доставка выполняется даже при ошибке Redis.
func (r *Redis) Publish(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	event.Origin = r.origin

	if err := r.hub.Publish(ctx, event); err != nil {
		return err
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := r.client.Publish(ctx, r.channel, data).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", r.channel, err)
	}
	return nil
}

// Subscribe регистрирует обработчик в локальном Hub
func (r *Redis) Subscribe(rt models.ResourceType, handler Handler) func() {
	return r.hub.Subscribe(rt, handler)
}

// Close останавливает прием сообщений и закрывает клиент
func (r *Redis) Close() error {
	var err error
	r.once.Do(func() {
		_ = r.hub.Close()
		if cerr := r.pubsub.Close(); cerr != nil {
			err = fmt.Errorf("close pubsub: %w", cerr)
		}
		<-r.done
		if cerr := r.client.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close redis client: %w", cerr)
		}
	})
	return err
}

func (r *Redis) listen() {
	defer close(r.done)

	for msg := range r.pubsub.Channel() {
		var event Event
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			r.logger.Warn("skipping malformed broadcast message", "channel", msg.Channel, "error", err)
			continue
		}
		if event.Origin == r.origin {
			continue
		}
		r.hub.deliver(event)
	}
}
