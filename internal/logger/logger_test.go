package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "INFO", want: slog.LevelInfo},
		{in: " warn ", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewCLI_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewCLI(&buf, "warn", "logfmt")
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("switching to offline mode", "reason", "timeout")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "switching to offline mode")
	assert.Contains(t, out, "reason=timeout")
}

func TestNewCLI_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewCLI(&buf, "info", "json")
	require.NoError(t, err)

	logger.Info("draft saved", "resource", "firm_profile")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "draft saved", entry["msg"])
	assert.Equal(t, "firm_profile", entry["resource"])
}

func TestNewCLI_UnknownFormat(t *testing.T) {
	_, err := NewCLI(&bytes.Buffer{}, "info", "xml")
	assert.Error(t, err)
}

func TestNewServer(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewServer(&buf, "info", "json")
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("request completed", "status", 200)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "request completed", entry["msg"])
	assert.InDelta(t, 200, entry["status"], 0)

	_, err = NewServer(&buf, "loud", "json")
	assert.Error(t, err)
}
