package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clientapi "github.com/iudanet/portalsync/internal/client/api"
	"github.com/iudanet/portalsync/internal/client/failure"
	"github.com/iudanet/portalsync/internal/models"
	"github.com/iudanet/portalsync/internal/server/handlers"
	"github.com/iudanet/portalsync/internal/server/middleware"
	"github.com/iudanet/portalsync/internal/server/storage"
	"github.com/iudanet/portalsync/internal/server/storage/sqlite"
	"github.com/iudanet/portalsync/pkg/api"
)

type staticToken string

func (s staticToken) Token(context.Context) (string, error) { return string(s), nil }

type testServer struct {
	store *sqlite.Storage
	url   string
	jwt   handlers.JWTConfig
}

func setupServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := sqlite.New(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	limiter := middleware.NewRateLimiter(100, time.Minute, logger)
	t.Cleanup(limiter.Stop)

	jwtConfig := handlers.JWTConfig{Secret: []byte("server-test-secret"), AccessTokenTTL: time.Minute}
	srv := httptest.NewServer(NewRouter(logger, store, jwtConfig, limiter))
	t.Cleanup(srv.Close)

	return &testServer{store: store, url: srv.URL, jwt: jwtConfig}
}

func (ts *testServer) login(t *testing.T, username, password string) *clientapi.Client {
	t.Helper()
	resp, err := clientapi.NewClient(ts.url, time.Second, nil).Login(context.Background(), api.LoginRequest{
		Username: username,
		Password: password,
	})
	require.NoError(t, err)
	return clientapi.NewClient(ts.url, time.Second, staticToken(resp.AccessToken))
}

func TestAddUser(t *testing.T) {
	ts := setupServer(t)
	ctx := context.Background()

	user, err := AddUser(ctx, ts.store, NewUser{Username: "acme", Password: "s3cret-pass", Role: models.RoleFirm, FirmID: "firm-1"})
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)

	_, err = AddUser(ctx, ts.store, NewUser{Username: "acme", Password: "s3cret-pass", Role: models.RoleFirm, FirmID: "firm-1"})
	assert.ErrorIs(t, err, storage.ErrUserAlreadyExists)

	_, err = AddUser(ctx, ts.store, NewUser{Username: "nofirm", Password: "s3cret-pass", Role: models.RoleFirm})
	assert.Error(t, err)

	_, err = AddUser(ctx, ts.store, NewUser{Username: "vendor", Password: "s3cret-pass", Role: models.RoleVendor, FirmID: "firm-1"})
	assert.Error(t, err)

	_, err = AddUser(ctx, ts.store, NewUser{Username: "short", Password: "123", Role: models.RoleVendor})
	assert.Error(t, err)
}

func TestRouter_ProfileRoundTrip(t *testing.T) {
	ts := setupServer(t)
	ctx := context.Background()

	_, err := AddUser(ctx, ts.store, NewUser{Username: "acme", Password: "s3cret-pass", Role: models.RoleFirm, FirmID: "firm-1"})
	require.NoError(t, err)
	client := ts.login(t, "acme", "s3cret-pass")

	_, err = client.GetProfile(ctx, models.RoleFirm, "")
	require.Error(t, err)
	assert.Equal(t, failure.NotFound, failure.Classify(err))

	saved, err := client.PutProfile(ctx, models.RoleFirm, "firm-1", models.Fields{"name": "Acme"})
	require.NoError(t, err)
	assert.Equal(t, "Acme", saved["name"])

	got, err := client.GetProfile(ctx, models.RoleFirm, "")
	require.NoError(t, err)
	assert.Equal(t, "Acme", got["name"])

	_, err = client.GetProfile(ctx, models.RoleVendor, "")
	assert.Equal(t, failure.Authorization, failure.Classify(err), "role mismatch is 403")
}

func TestRouter_StudioLifecycle(t *testing.T) {
	ts := setupServer(t)
	ctx := context.Background()

	_, err := AddUser(ctx, ts.store, NewUser{Username: "acme", Password: "s3cret-pass", Role: models.RoleFirm, FirmID: "firm-1"})
	require.NoError(t, err)
	client := ts.login(t, "acme", "s3cret-pass")

	created, err := client.CreateStudio(ctx, "", models.StudioInput{Name: "Loft"})
	require.NoError(t, err)

	_, err = client.CreateStudio(ctx, "", models.StudioInput{})
	assert.Equal(t, failure.RequestRejected, failure.Classify(err))

	_, err = client.UpdateStudio(ctx, "", created.ID, models.StudioInput{Location: "Berlin"})
	require.NoError(t, err)

	published, err := client.PublishStudio(ctx, "", created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StudioStatusPublished, published.Status)

	studios, err := client.ListStudios(ctx, "")
	require.NoError(t, err)
	require.Len(t, studios, 1)
	assert.Equal(t, "Berlin", studios[0].Location)

	require.NoError(t, client.DeleteStudio(ctx, "", created.ID))

	err = client.DeleteStudio(ctx, "", created.ID)
	assert.Equal(t, failure.NotFound, failure.Classify(err))
}

func TestRouter_AuthFailures(t *testing.T) {
	ts := setupServer(t)
	ctx := context.Background()

	t.Run("anonymous request is 401", func(t *testing.T) {
		_, err := clientapi.NewClient(ts.url, time.Second, nil).ListStudios(ctx, "")

		var statusErr *clientapi.StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusUnauthorized, statusErr.Status)
	})

	t.Run("expired token is 419", func(t *testing.T) {
		expired := ts.jwt
		expired.AccessTokenTTL = -time.Minute
		token, _, err := handlers.GenerateAccessToken(expired, &models.User{ID: "u1", Username: "acme", Role: models.RoleFirm, FirmID: "firm-1"})
		require.NoError(t, err)

		_, err = clientapi.NewClient(ts.url, time.Second, staticToken(token)).ListStudios(ctx, "")

		var statusErr *clientapi.StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, middleware.StatusSessionExpired, statusErr.Status)
		assert.Equal(t, failure.Authorization, failure.Classify(err))
	})

	t.Run("bad credentials", func(t *testing.T) {
		_, err := clientapi.NewClient(ts.url, time.Second, nil).Login(ctx, api.LoginRequest{Username: "ghost", Password: "whatever1"})
		assert.Equal(t, failure.Authorization, failure.Classify(err))
	})
}

func TestRouter_Health(t *testing.T) {
	ts := setupServer(t)

	require.NoError(t, clientapi.NewClient(ts.url, time.Second, nil).Health(context.Background()))
}
