package broadcast

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/iudanet/portalsync/internal/models"
)

// Hub рассылает события подписчикам текущего процесса
type Hub struct {
	logger *slog.Logger
	subs   map[models.ResourceType]map[uint64]Handler
	mu     sync.RWMutex
	next   uint64
	closed bool
}

var _ Broadcaster = (*Hub)(nil)

// NewHub создает пустой Hub
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		logger: logger,
		subs:   make(map[models.ResourceType]map[uint64]Handler),
	}
}

// Publish синхронно доставляет событие всем подписчикам
func (h *Hub) Publish(_ context.Context, event Event) error {
	h.mu.RLock()
	closed := h.closed
	h.mu.RUnlock()
	if closed {
		return ErrClosed
	}

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	h.deliver(event)
	return nil
}

// Subscribe регистрирует обработчик. Повторный вызов unsubscribe безопасен.
func (h *Hub) Subscribe(rt models.ResourceType, handler Handler) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return func() {}
	}

	h.next++
	id := h.next
	if h.subs[rt] == nil {
		h.subs[rt] = make(map[uint64]Handler)
	}
	h.subs[rt][id] = handler

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs[rt], id)
	}
}

// Close отписывает всех; последующие Publish возвращают ErrClosed
func (h *Hub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	h.subs = make(map[models.ResourceType]map[uint64]Handler)
	return nil
}

func (h *Hub) deliver(event Event) {
	// Снимок обработчиков: вызываем их без блокировки,
	// чтобы обработчик мог подписываться и публиковать сам
	h.mu.RLock()
	handlers := make([]Handler, 0, len(h.subs[event.ResourceType])+len(h.subs[AllResources]))
	for _, fn := range h.subs[event.ResourceType] {
		handlers = append(handlers, fn)
	}
	if event.ResourceType != AllResources {
		for _, fn := range h.subs[AllResources] {
			handlers = append(handlers, fn)
		}
	}
	h.mu.RUnlock()

	for _, fn := range handlers {
		h.call(fn, event)
	}
}

func (h *Hub) call(fn Handler, event Event) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("broadcast handler panicked",
				"resource", event.ResourceType,
				"scope", event.ScopeKey,
				"panic", r,
			)
		}
	}()
	fn(event)
}
