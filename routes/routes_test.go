package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Dosada05/gaming-portal/brackets"
	"github.com/Dosada05/gaming-portal/handlers"
	"github.com/Dosada05/gaming-portal/repositories"
	"github.com/Dosada05/gaming-portal/services"
	"github.com/Dosada05/gaming-portal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := repositories.NewKVSnapshotRepository(storage.NewMemoryStore(), repositories.KVSnapshotRepositoryConfig{
		Prefix: "gamingCommunity",
	})
	store := services.NewStore(repo, logger)
	require.NoError(t, store.Load(ctx))

	credentials, err := services.NewCredentialPolicy(services.CredentialPolicyPlain)
	require.NoError(t, err)
	seeded, err := services.SeedDefaults(ctx, store, credentials, time.Now(), logger)
	require.NoError(t, err)
	require.True(t, seeded)

	hub := brackets.NewHub(logger)
	go hub.Run(ctx)

	notifications := services.NewNotificationService(hub, logger)
	rankings := services.NewRankingService(store, notifications, logger)
	events := services.NewEventService(store, brackets.NewThreeVThreeGenerator(), notifications, logger)

	router := SetupRoutes(Handlers{
		Auth:      handlers.NewAuthHandler(services.NewAuthService(store, credentials, logger), testSecret, time.Hour),
		User:      handlers.NewUserHandler(services.NewUserService(store, credentials, logger), events, notifications),
		Event:     handlers.NewEventHandler(events),
		Match:     handlers.NewMatchHandler(services.NewMatchService(store, nil, rankings, notifications, logger)),
		Ranking:   handlers.NewRankingHandler(rankings),
		Admin:     handlers.NewAdminHandler(services.NewAdminService(store, credentials, notifications, logger), rankings, events),
		Dashboard: handlers.NewDashboardHandler(services.NewDashboardService(store)),
		WebSocket: handlers.NewWebSocketHandler(hub, nil, logger),
	}, Config{JWTSecret: testSecret})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, srv *httptest.Server, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	decoded := map[string]interface{}{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), string(raw))
	}
	return resp, decoded
}

func login(t *testing.T, srv *httptest.Server, username, password string) string {
	t.Helper()
	resp, body := doJSON(t, srv, http.MethodPost, "/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	token, ok := body["token"].(string)
	require.True(t, ok)
	return token
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	resp, body := doJSON(t, srv, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestRegisterLoginAndJoinEvent(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, srv, http.MethodPost, "/auth/register", "", map[string]string{
		"username": "newbie",
		"password": "pass",
		"rank":     "Gold",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)

	resp, _ = doJSON(t, srv, http.MethodPost, "/auth/register", "", map[string]string{
		"username": "NEWBIE",
		"password": "pass",
		"rank":     "Gold",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	token := login(t, srv, "newbie", "pass")

	resp, _ = doJSON(t, srv, http.MethodPost, "/events/1/register", token, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doJSON(t, srv, http.MethodPost, "/events/1/register", token, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, body = doJSON(t, srv, http.MethodGet, "/events/1", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	event := body["event"].(map[string]interface{})
	assert.ElementsMatch(t, []interface{}{float64(1), float64(3), float64(4)}, event["registeredPlayers"])

	resp, body = doJSON(t, srv, http.MethodGet, "/me/events", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["events"], 1)

	resp, _ = doJSON(t, srv, http.MethodDelete, "/events/1/register", token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestLogoutDoesNotAffectOtherPlayers(t *testing.T) {
	srv := newTestServer(t)

	first := login(t, srv, "Player1", "123")
	second := login(t, srv, "Player2", "123")

	resp, _ := doJSON(t, srv, http.MethodPost, "/auth/logout", first, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body := doJSON(t, srv, http.MethodGet, "/me", second, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "Player2", user["username"])
}

func TestLoginRejectsBadPassword(t *testing.T) {
	srv := newTestServer(t)
	resp, _ := doJSON(t, srv, http.MethodPost, "/auth/login", "", map[string]string{
		"username": "Player1",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, srv, http.MethodGet, "/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, srv, http.MethodPost, "/events/1/register", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	srv := newTestServer(t)

	playerToken := login(t, srv, "Player1", "123")
	resp, _ := doJSON(t, srv, http.MethodGet, "/admin/users", playerToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	adminToken := login(t, srv, "Admin", "admin123")
	resp, body := doJSON(t, srv, http.MethodGet, "/admin/users", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["users"], 3)

	resp, body = doJSON(t, srv, http.MethodPost, "/admin/events", adminToken, map[string]interface{}{
		"title":       "Friday Cup",
		"description": "3v3",
		"date":        time.Now().Add(72 * time.Hour).UTC().Format(time.RFC3339),
		"max_players": 6,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)
	created := body["event"].(map[string]interface{})
	assert.Equal(t, "friday-cup", created["slug"])
	assert.Equal(t, "open", created["status"])

	resp, _ = doJSON(t, srv, http.MethodPost, "/admin/events", adminToken, map[string]interface{}{
		"title":       "",
		"date":        time.Now().Add(72 * time.Hour).UTC().Format(time.RFC3339),
		"max_players": 6,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestAdminCanGrantAdminRights(t *testing.T) {
	srv := newTestServer(t)
	adminToken := login(t, srv, "Admin", "admin123")

	resp, body := doJSON(t, srv, http.MethodPut, "/admin/users/2/admin", adminToken, map[string]bool{"is_admin": true})
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	user := body["user"].(map[string]interface{})
	assert.Equal(t, true, user["is_admin"])

	playerToken := login(t, srv, "Player1", "123")
	resp, _ = doJSON(t, srv, http.MethodGet, "/admin/users", playerToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, srv, http.MethodPut, "/admin/users/99/admin", adminToken, map[string]bool{"is_admin": true})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStandingsArePublic(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, srv, http.MethodGet, "/rankings", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	standings := body["standings"].([]interface{})
	require.NotEmpty(t, standings)
	first := standings[0].(map[string]interface{})
	assert.Equal(t, float64(1), first["position"])
	entry := first["entry"].(map[string]interface{})
	assert.Equal(t, "Player1", entry["username"])
}

func TestUnknownEventIsNotFound(t *testing.T) {
	srv := newTestServer(t)
	resp, _ := doJSON(t, srv, http.MethodGet, "/events/99", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, srv, http.MethodGet, "/events/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
