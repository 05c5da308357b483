package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/portalsync/internal/crypto"
	"github.com/iudanet/portalsync/internal/models"
	"github.com/iudanet/portalsync/internal/server/storage/sqlite"
	"github.com/iudanet/portalsync/pkg/api"
)

var testJWT = JWTConfig{
	Secret:         []byte("handlers-test-secret"),
	AccessTokenTTL: 15 * time.Minute,
}

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupTestStorage(t *testing.T) *sqlite.Storage {
	t.Helper()
	s, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func createUser(t *testing.T, s *sqlite.Storage, username, password string, role models.Role, firmID string) *models.User {
	t.Helper()
	hash, err := crypto.HashPassword(password)
	require.NoError(t, err)

	user := &models.User{
		ID:           "id-" + username,
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		FirmID:       firmID,
		CreatedAt:    time.Now(),
	}
	require.NoError(t, s.CreateUser(context.Background(), user))
	return user
}

// newRequest собирает запрос с claims, как после AuthMiddleware
func newRequest(t *testing.T, method, target string, body any, claims *CustomClaims) *http.Request {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, reader)
	if claims != nil {
		req = req.WithContext(WithClaims(req.Context(), claims))
	}
	return req
}

func claimsOf(role models.Role, userID, firmID string) *CustomClaims {
	return &CustomClaims{UserID: userID, Username: userID, Role: role, FirmID: firmID}
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) api.ErrorResponse {
	t.Helper()
	var resp api.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func TestAuthHandler_Login(t *testing.T) {
	s := setupTestStorage(t)
	user := createUser(t, s, "acme.owner", "s3cret-pass", models.RoleFirm, "firm-1")
	handler := NewAuthHandler(setupTestLogger(), s, testJWT)

	t.Run("success", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Login(w, newRequest(t, http.MethodPost, "/portal/auth/login",
			api.LoginRequest{Username: "acme.owner", Password: "s3cret-pass"}, nil))

		require.Equal(t, http.StatusOK, w.Code)

		var resp api.TokenResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, user.ID, resp.UserID)
		assert.Equal(t, "firm", resp.Role)
		assert.Equal(t, "firm-1", resp.FirmID)
		assert.EqualValues(t, 900, resp.ExpiresIn)

		claims, err := ValidateAccessToken(testJWT, resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, models.RoleFirm, claims.Role)
		assert.Equal(t, "firm-1", claims.FirmID)

		stored, err := s.GetUserByID(context.Background(), user.ID)
		require.NoError(t, err)
		assert.NotNil(t, stored.LastLogin)
	})

	tests := []struct {
		body       any
		name       string
		wantMsg    string
		wantStatus int
	}{
		{
			name:       "wrong password",
			body:       api.LoginRequest{Username: "acme.owner", Password: "wrong-pass"},
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "invalid credentials",
		},
		{
			name:       "unknown user",
			body:       api.LoginRequest{Username: "ghost", Password: "s3cret-pass"},
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "invalid credentials",
		},
		{
			name:       "malformed body",
			body:       "{not json",
			wantStatus: http.StatusBadRequest,
			wantMsg:    "invalid request body",
		},
		{
			name:       "invalid username",
			body:       api.LoginRequest{Username: "a b", Password: "s3cret-pass"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing password",
			body:       api.LoginRequest{Username: "acme.owner"},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "password is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.Login(w, newRequest(t, http.MethodPost, "/portal/auth/login", tt.body, nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, http.StatusText(tt.wantStatus), resp.Error)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, resp.Message)
			}
		})
	}
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler_Health(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		handler := NewHealthHandler(setupTestLogger(), setupTestStorage(t))
		w := httptest.NewRecorder()

		handler.Health(w, httptest.NewRequest(http.MethodGet, "/portal/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		var resp api.HealthResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "ok", resp.Status)
	})

	t.Run("database down", func(t *testing.T) {
		handler := NewHealthHandler(setupTestLogger(), pingerFunc(func(context.Context) error {
			return errors.New("disk gone")
		}))
		w := httptest.NewRecorder()

		handler.Health(w, httptest.NewRequest(http.MethodGet, "/portal/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestProfileHandler(t *testing.T) {
	s := setupTestStorage(t)
	handler := NewProfileHandler(setupTestLogger(), s)

	do := func(method, role, query string, body any, claims *CustomClaims) *httptest.ResponseRecorder {
		req := newRequest(t, method, "/portal/"+role+"/profile"+query, body, claims)
		req.SetPathValue("role", role)
		w := httptest.NewRecorder()
		if method == http.MethodGet {
			handler.Get(w, req)
		} else {
			handler.Put(w, req)
		}
		return w
	}

	firmUser := claimsOf(models.RoleFirm, "u-firm", "firm-1")
	admin := claimsOf(models.RoleAdmin, "u-admin", "")

	t.Run("missing profile is 404", func(t *testing.T) {
		w := do(http.MethodGet, "firm", "", nil, firmUser)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("put then get", func(t *testing.T) {
		w := do(http.MethodPut, "firm", "", models.Fields{"name": "Acme", "tagline": "Spaces"}, firmUser)
		require.Equal(t, http.StatusOK, w.Code)

		w = do(http.MethodGet, "firm", "", nil, firmUser)
		require.Equal(t, http.StatusOK, w.Code)

		var resp api.ProfileResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "Acme", resp.Profile["name"])
	})

	t.Run("firm user may name its own firm", func(t *testing.T) {
		w := do(http.MethodGet, "firm", "?firmId=firm-1", nil, firmUser)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("firm user cannot read another firm", func(t *testing.T) {
		w := do(http.MethodGet, "firm", "?firmId=firm-2", nil, firmUser)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin needs firmId", func(t *testing.T) {
		w := do(http.MethodGet, "firm", "", nil, admin)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "firmId query parameter is required", decodeError(t, w).Message)
	})

	t.Run("admin reads any firm", func(t *testing.T) {
		w := do(http.MethodGet, "firm", "?firmId=firm-1", nil, admin)
		assert.Equal(t, http.StatusOK, w.Code)

		w = do(http.MethodGet, "firm", "?firmId=firm-2", nil, admin)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("associate profiles are per user", func(t *testing.T) {
		alice := claimsOf(models.RoleAssociate, "u-alice", "")
		bob := claimsOf(models.RoleAssociate, "u-bob", "")

		w := do(http.MethodPut, "associate", "", models.Fields{"firstName": "Alice"}, alice)
		require.Equal(t, http.StatusOK, w.Code)

		w = do(http.MethodGet, "associate", "", nil, bob)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unknown role is 404", func(t *testing.T) {
		w := do(http.MethodGet, "admin", "", nil, admin)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("vendor cannot use associate profile", func(t *testing.T) {
		w := do(http.MethodGet, "associate", "", nil, claimsOf(models.RoleVendor, "u-v", ""))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("body must be an object", func(t *testing.T) {
		w := do(http.MethodPut, "firm", "", "null", firmUser)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = do(http.MethodPut, "firm", "", "[1,2]", firmUser)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("no claims is 401", func(t *testing.T) {
		w := do(http.MethodGet, "firm", "", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestStudioHandler(t *testing.T) {
	s := setupTestStorage(t)
	handler := NewStudioHandler(setupTestLogger(), s)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	handler.now = func() time.Time { return fixed }

	firmUser := claimsOf(models.RoleFirm, "u-firm", "firm-1")

	decodeStudio := func(t *testing.T, w *httptest.ResponseRecorder) models.Studio {
		t.Helper()
		var resp api.StudioResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		return resp.Studio
	}

	create := func(body any, claims *CustomClaims) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		handler.Create(w, newRequest(t, http.MethodPost, "/portal/studio/studios", body, claims))
		return w
	}

	withID := func(method, target, id string, body any) *http.Request {
		req := newRequest(t, method, target, body, firmUser)
		req.SetPathValue("id", id)
		return req
	}

	w := create(models.StudioInput{Name: "Loft", Location: "Berlin"}, firmUser)
	require.Equal(t, http.StatusCreated, w.Code)
	loft := decodeStudio(t, w)
	assert.NotEmpty(t, loft.ID)
	assert.Equal(t, "firm-1", loft.FirmID)
	assert.Equal(t, models.StudioStatusDraft, loft.Status)
	assert.True(t, fixed.Equal(loft.CreatedAt))

	t.Run("create validation", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, create(models.StudioInput{Location: "Paris"}, firmUser).Code)
		assert.Equal(t, http.StatusBadRequest, create("{broken", firmUser).Code)
	})

	t.Run("vendor cannot manage studios", func(t *testing.T) {
		w := create(models.StudioInput{Name: "Nope"}, claimsOf(models.RoleVendor, "u-v", ""))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("list", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.List(w, newRequest(t, http.MethodGet, "/portal/studio/studios", nil, firmUser))
		require.Equal(t, http.StatusOK, w.Code)

		var resp api.StudiosResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		require.Len(t, resp.Studios, 1)
		assert.Equal(t, loft.ID, resp.Studios[0].ID)
	})

	t.Run("list of other firm is empty for admin", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.List(w, newRequest(t, http.MethodGet, "/portal/studio/studios?firmId=firm-2", nil, claimsOf(models.RoleAdmin, "u-a", "")))
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"studios":[]}`, w.Body.String())
	})

	t.Run("update", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Update(w, withID(http.MethodPut, "/portal/studio/studios/"+loft.ID, loft.ID, models.StudioInput{Description: "Sunny"}))
		require.Equal(t, http.StatusOK, w.Code)

		updated := decodeStudio(t, w)
		assert.Equal(t, "Loft", updated.Name)
		assert.Equal(t, "Sunny", updated.Description)
	})

	t.Run("empty update is rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Update(w, withID(http.MethodPut, "/portal/studio/studios/"+loft.ID, loft.ID, models.StudioInput{}))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "nothing to update", decodeError(t, w).Message)
	})

	t.Run("update unknown", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Update(w, withID(http.MethodPut, "/portal/studio/studios/missing", "missing", models.StudioInput{Name: "X"}))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("publish", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Publish(w, withID(http.MethodPost, "/portal/studio/studios/"+loft.ID+"/publish", loft.ID, nil))
		require.Equal(t, http.StatusOK, w.Code)

		published := decodeStudio(t, w)
		assert.Equal(t, models.StudioStatusPublished, published.Status)
		require.NotNil(t, published.PublishedAt)
		assert.True(t, fixed.Equal(*published.PublishedAt))
	})

	t.Run("delete", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Delete(w, withID(http.MethodDelete, "/portal/studio/studios/"+loft.ID, loft.ID, nil))
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = httptest.NewRecorder()
		handler.Delete(w, withID(http.MethodDelete, "/portal/studio/studios/"+loft.ID, loft.ID, nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
