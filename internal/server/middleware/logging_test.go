package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingMiddleware(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		wantLevel string
		status    int
	}{
		{name: "ok is info", path: "/portal/firm/profile", status: http.StatusOK, wantLevel: "INFO"},
		{name: "not found is warn", path: "/portal/firm/profile", status: http.StatusNotFound, wantLevel: "WARN"},
		{name: "expired session is warn", path: "/portal/vendor/profile", status: StatusSessionExpired, wantLevel: "WARN"},
		{name: "server error is error", path: "/portal/studio/studios", status: http.StatusInternalServerError, wantLevel: "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, nil))

			handler := LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("body"))
			}))

			req := httptest.NewRequest(http.MethodGet, tt.path+"?firmId=firm-7", nil)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Equal(t, "HTTP request", entry["msg"])
			assert.Equal(t, tt.path, entry["path"])
			assert.EqualValues(t, tt.status, entry["status"])
			assert.EqualValues(t, 4, entry["bytes_written"])
			assert.Equal(t, "firm-7", entry["firm_id"])
		})
	}
}

func TestLoggingMiddleware_SkipPaths(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	handler := LoggingMiddleware(logger, "/portal/health")(http.HandlerFunc(okHandler))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/portal/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, buf.String())

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/portal/firm/profile", nil))
	assert.Contains(t, buf.String(), "HTTP request")
}

func TestLoggingMiddleware_DoesNotLogAuthorization(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	handler := LoggingMiddleware(logger)(http.HandlerFunc(okHandler))

	req := httptest.NewRequest(http.MethodGet, "/portal/firm/profile", nil)
	req.Header.Set("Authorization", "Bearer secret-token-value")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.NotContains(t, buf.String(), "secret-token-value")
}

func TestResponseWriter_DefaultsToOK(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	// handler пишет тело без явного WriteHeader
	handler := LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("hello"))
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.EqualValues(t, http.StatusOK, entry["status"])
	assert.EqualValues(t, 5, entry["bytes_written"])
}
