package mode

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestController_StartsOnline(t *testing.T) {
	c := New("portal", nil)

	assert.False(t, c.IsOffline())
	assert.Empty(t, c.Reason())
	assert.True(t, c.Since().IsZero())
}

func TestController_ActivateOffline(t *testing.T) {
	var buf bytes.Buffer
	c := New("portal", slog.New(slog.NewTextHandler(&buf, nil)))
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return fixed }

	assert.True(t, c.ActivateOffline("connection refused"))
	assert.True(t, c.IsOffline())
	assert.Equal(t, "connection refused", c.Reason())
	assert.Equal(t, fixed, c.Since())
	assert.Contains(t, buf.String(), "switching to offline mode")
	assert.Contains(t, buf.String(), "scope=portal")
}

func TestController_StaysOffline(t *testing.T) {
	c := New("portal", slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	assert.True(t, c.ActivateOffline("first"))
	assert.False(t, c.ActivateOffline("second"))

	assert.True(t, c.IsOffline())
	assert.Equal(t, "first", c.Reason())
}

func TestController_ConcurrentActivationLogsOnce(t *testing.T) {
	var (
		buf bytes.Buffer
		mu  sync.Mutex
	)
	handler := slog.NewTextHandler(&lockedWriter{w: &buf, mu: &mu}, nil)
	c := New("portal", slog.New(handler))

	const callers = 32
	var (
		wg      sync.WaitGroup
		flipped int
		fmu     sync.Mutex
	)
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if c.ActivateOffline("timeout") {
				fmu.Lock()
				flipped++
				fmu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, flipped)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, strings.Count(buf.String(), "switching to offline mode"))
}

type lockedWriter struct {
	w  *bytes.Buffer
	mu *sync.Mutex
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
