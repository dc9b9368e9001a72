package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Dosada05/gaming-portal/services"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapServiceErrorToHTTP(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{services.ErrEventNotFound, http.StatusNotFound},
		{fmt.Errorf("%w: id 9", services.ErrUserNotFound), http.StatusNotFound},
		{services.ErrEventFull, http.StatusConflict},
		{services.ErrRegistrationNotOpen, http.StatusConflict},
		{services.ErrResultAlreadyRecorded, http.StatusConflict},
		{services.ErrUsernameTooShort, http.StatusUnprocessableEntity},
		{services.ErrInvalidWinningTeam, http.StatusUnprocessableEntity},
		{services.ErrResultPending, http.StatusAccepted},
		{services.ErrInvalidCredentials, http.StatusUnauthorized},
		{services.ErrNotAParticipant, http.StatusForbidden},
		{services.ErrPersistenceFailed, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			mapServiceErrorToHTTP(rec, req, tt.err)
			assert.Equal(t, tt.want, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestGetIDFromURL(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	id, err := getIDFromURL(withURLParam(req, "eventID", "42"), "eventID")
	require.NoError(t, err)
	assert.Equal(t, 42, id)

	for _, bad := range []string{"", "abc", "0", "-3"} {
		_, err := getIDFromURL(withURLParam(req, "eventID", bad), "eventID")
		assert.Error(t, err, bad)
	}
}

func TestReadJSON(t *testing.T) {
	var dst struct {
		WinningTeam int `json:"winning_team"`
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"winning_team": 2}`))
	require.NoError(t, readJSON(rec, req, &dst))
	assert.Equal(t, 2, dst.WinningTeam)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"team": 2}`))
	err := readJSON(rec, req, &dst)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown key")

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"winning_team": 1}{}`))
	assert.Error(t, readJSON(rec, req, &dst))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	assert.EqualError(t, readJSON(rec, req, &dst), "body must not be empty")
}

func TestValidRoom(t *testing.T) {
	assert.True(t, validRoom("events"))
	assert.True(t, validRoom("standings"))
	assert.True(t, validRoom("event_12"))
	assert.False(t, validRoom("event_"))
	assert.False(t, validRoom("event_x"))
	assert.False(t, validRoom("event_0"))
	assert.False(t, validRoom("lobby"))
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"http://portal.test"})

	req := httptest.NewRequest(http.MethodGet, "/ws/events", nil)
	assert.True(t, check(req))

	req.Header.Set("Origin", "http://PORTAL.test")
	assert.True(t, check(req))

	req.Header.Set("Origin", "http://evil.test")
	assert.False(t, check(req))

	assert.True(t, originChecker(nil)(req))
	assert.True(t, originChecker([]string{"*"})(req))
}
