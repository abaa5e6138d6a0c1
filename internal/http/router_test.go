package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/offiswap/internal/auth"
	"github.com/redmonkez12/offiswap/internal/config"
	"github.com/redmonkez12/offiswap/internal/httputil"
	"github.com/redmonkez12/offiswap/internal/listing"
	"github.com/redmonkez12/offiswap/internal/logging"
	"github.com/redmonkez12/offiswap/internal/memstore"
	"github.com/redmonkez12/offiswap/internal/ratelimit"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Env:            "prod",
			TrustedOrigins: []string{"http://localhost:5173"},
		},
	}
}

func newTestServer(t *testing.T, pinger Pinger) *httptest.Server {
	t.Helper()

	store := memstore.New()
	if pinger == nil {
		pinger = store
	}

	tokens, err := auth.NewJWTService([]byte("test-secret"), nil)
	require.NoError(t, err)

	logger := logging.NewNop()
	authService := auth.NewService(store.Users(), tokens, logger, time.Hour)

	router := NewRouter(testConfig(), Handlers{
		Auth:           auth.NewHandler(authService, ratelimit.Noop{}),
		AuthMiddleware: auth.NewMiddleware(tokens),
		Listing:        listing.NewHandler(listing.NewService(store.Listings())),
	}, pinger, logger)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, token string, body any, out any) int {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(auth.TokenHeader, token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func registerAndLogin(t *testing.T, srv *httptest.Server, name, email string) string {
	t.Helper()

	status := do(t, srv, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": name, "email": email, "password": "password1",
	}, nil)
	require.Equal(t, http.StatusCreated, status)

	var login auth.LoginResponse
	status = do(t, srv, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": email, "password": "password1",
	}, &login)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, login.Token)
	return login.Token
}

func TestRouter_Welcome(t *testing.T) {
	srv := newTestServer(t, nil)

	var body httputil.MessageResponse
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/", "", nil, &body))
	assert.Equal(t, "Welcome to OffiSwap API!", body.Message)
}

type downStore struct{}

func (downStore) PingContext(context.Context) error { return errors.New("connection refused") }

func TestRouter_Health(t *testing.T) {
	srv := newTestServer(t, nil)
	var body map[string]string
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/health", "", nil, &body))
	assert.Equal(t, "ok", body["status"])

	down := newTestServer(t, downStore{})
	var errBody httputil.ErrorResponse
	require.Equal(t, http.StatusServiceUnavailable, do(t, down, http.MethodGet, "/health", "", nil, &errBody))
	assert.Equal(t, httputil.CodeUnavailable, errBody.Code)
}

func TestRouter_SecurityHeaders(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, err := srv.Client().Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
	assert.Empty(t, resp.Header.Get("Cache-Control"), "public pages stay cacheable")

	login, err := srv.Client().Post(srv.URL+"/api/auth/login", "application/json", bytes.NewBufferString(`{"email":"a@b.co","password":"x"}`))
	require.NoError(t, err)
	defer login.Body.Close()
	assert.Equal(t, "no-store", login.Header.Get("Cache-Control"))

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/listings/my", nil)
	require.NoError(t, err)
	req.Header.Set(auth.TokenHeader, "whatever")
	mine, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer mine.Body.Close()
	assert.Equal(t, "no-store", mine.Header.Get("Cache-Control"))
}

func TestRouter_CORSAllowsTokenHeader(t *testing.T) {
	srv := newTestServer(t, nil)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/listings", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "x-auth-token, content-type")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Headers"), "X-Auth-Token")
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	srv := newTestServer(t, nil)

	var body httputil.ErrorResponse
	require.Equal(t, http.StatusUnauthorized, do(t, srv, http.MethodPost, "/api/listings", "", map[string]string{"title": "x"}, &body))
	assert.Equal(t, "No token, authorization denied.", body.Message)

	require.Equal(t, http.StatusUnauthorized, do(t, srv, http.MethodGet, "/api/listings/my", "bogus", nil, &body))
	assert.Equal(t, "Token is not valid.", body.Message)
}

func TestRouter_MalformedID(t *testing.T) {
	srv := newTestServer(t, nil)
	token := registerAndLogin(t, srv, "Acme", "ops@acme.test")

	var body httputil.ErrorResponse
	require.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodGet, "/api/listings/not-a-uuid", "", nil, &body))
	assert.Equal(t, "Invalid listing ID format.", body.Message)

	require.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodDelete, "/api/listings/not-a-uuid", token, nil, &body))
	assert.Equal(t, "Invalid listing ID format.", body.Message)
}

func TestRouter_ListingLifecycle(t *testing.T) {
	srv := newTestServer(t, nil)

	token := registerAndLogin(t, srv, "Acme", "ops@acme.test")

	var created listing.Listing
	status := do(t, srv, http.MethodPost, "/api/listings", token, map[string]any{
		"title": "Standing desk", "item_type": "furniture", "location": "Berlin", "condition": "good",
	}, &created)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, listing.StatusAvailable, created.Status)
	assert.Equal(t, 1, created.Quantity)

	var feed []listing.Listing
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/api/listings", "", nil, &feed))
	require.Len(t, feed, 1)
	assert.Equal(t, created.ID, feed[0].ID)
	assert.Equal(t, "Acme", feed[0].SellerName)

	var updated listing.Listing
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodPut, "/api/listings/"+created.ID.String(), token,
		map[string]string{"status": "claimed"}, &updated))
	assert.Equal(t, listing.StatusClaimed, updated.Status)
	assert.Equal(t, "Standing desk", updated.Title)

	feed = nil
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/api/listings", "", nil, &feed))
	assert.Empty(t, feed)

	var got listing.Listing
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/api/listings/"+created.ID.String(), "", nil, &got))
	assert.Equal(t, listing.StatusClaimed, got.Status)

	var mine []listing.Listing
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/api/listings/my", token, nil, &mine))
	require.Len(t, mine, 1)
}

func TestRouter_OwnershipEnforced(t *testing.T) {
	srv := newTestServer(t, nil)

	owner := registerAndLogin(t, srv, "Acme", "ops@acme.test")
	other := registerAndLogin(t, srv, "Globex", "it@globex.test")

	var created listing.Listing
	require.Equal(t, http.StatusCreated, do(t, srv, http.MethodPost, "/api/listings", owner, map[string]any{
		"title": "Chair", "item_type": "furniture", "location": "Riga",
	}, &created))
	path := "/api/listings/" + created.ID.String()

	var body httputil.ErrorResponse
	require.Equal(t, http.StatusForbidden, do(t, srv, http.MethodPut, path, other, map[string]string{"title": "Mine now"}, &body))
	assert.Equal(t, "User not authorized to update this listing.", body.Message)

	require.Equal(t, http.StatusForbidden, do(t, srv, http.MethodDelete, path, other, nil, &body))
	assert.Equal(t, "User not authorized to delete this listing.", body.Message)

	var got listing.Listing
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, path, "", nil, &got))
	assert.Equal(t, "Chair", got.Title)

	var deleted listing.DeleteResponse
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodDelete, path, owner, nil, &deleted))
	assert.Equal(t, "Listing "+created.ID.String()+" deleted successfully.", deleted.Message)

	require.Equal(t, http.StatusNotFound, do(t, srv, http.MethodGet, path, "", nil, &body))
	assert.Equal(t, "Listing not found.", body.Message)
}
