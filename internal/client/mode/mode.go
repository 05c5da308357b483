// Package mode хранит флаг offline режима одного контекста выполнения.
//
// Флаг односторонний: после перехода в offline контроллер не возвращается
// в online до пересоздания.
package mode

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Controller отслеживает переход в offline режим
type Controller struct {
	since   time.Time
	logger  *slog.Logger
	now     func() time.Time
	name    string
	reason  string
	mu      sync.RWMutex
	offline atomic.Bool
}

// New создает контроллер в online режиме. name попадает в лог при переходе.
func New(name string, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		name:   name,
		logger: logger,
		now:    time.Now,
	}
}

// IsOffline сообщает, активирован ли offline режим
func (c *Controller) IsOffline() bool {
	return c.offline.Load()
}

// ActivateOffline переводит контроллер в offline режим.
// Возвращает true только для вызова, который сменил состояние;
// только этот вызов пишет диагностическое сообщение.
func (c *Controller) ActivateOffline(reason string) bool {
	if !c.offline.CompareAndSwap(false, true) {
		return false
	}

	c.mu.Lock()
	c.reason = reason
	c.since = c.now()
	c.mu.Unlock()

	c.logger.Warn("remote API unavailable, switching to offline mode",
		"scope", c.name,
		"reason", reason,
	)
	return true
}

// Reason возвращает причину перехода в offline (пусто в online режиме)
func (c *Controller) Reason() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.reason
}

// Since возвращает момент перехода в offline (нулевое время в online режиме)
func (c *Controller) Since() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.since
}
