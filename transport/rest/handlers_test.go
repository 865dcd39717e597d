package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridrush/tictactoe-backend/internal/entity"
)

type fakeSettingsService struct {
	stored map[string]*entity.UserSettings
}

func newFakeSettingsService() *fakeSettingsService {
	return &fakeSettingsService{stored: make(map[string]*entity.UserSettings)}
}

func (that *fakeSettingsService) Get(_ context.Context, username string) *entity.UserSettings {
	return that.stored[username]
}

func (that *fakeSettingsService) Save(_ context.Context, settings *entity.UserSettings) {
	that.stored[settings.Username] = settings
}

func newTestRouter(service *fakeSettingsService) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewRouter(logger, service)
}

func TestHealth(t *testing.T) {
	// Given: the REST router
	router := newTestRouter(newFakeSettingsService())

	// When: probing the health endpoint
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	// Then: it reports ok
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestGetSettings(t *testing.T) {
	t.Run("Returns stored settings", func(t *testing.T) {
		// Given: stored settings for alice
		service := newFakeSettingsService()
		service.stored["alice"] = &entity.UserSettings{
			Username: "alice",
			Mode:     entity.ModeDark,
			Palette:  "ocean",
		}
		router := newTestRouter(service)

		// When: fetching them
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/settings/alice", nil))

		// Then: the settings come back as JSON
		require.Equal(t, http.StatusOK, rec.Code)

		var settings entity.UserSettings
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &settings))
		assert.Equal(t, entity.ModeDark, settings.Mode)
		assert.Equal(t, "ocean", settings.Palette)
	})

	t.Run("Returns null for an unknown username", func(t *testing.T) {
		// Given: an empty store
		router := newTestRouter(newFakeSettingsService())

		// When: fetching settings for a user nobody saved
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/settings/nobody", nil))

		// Then: the body is a JSON null
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "null", strings.TrimSpace(rec.Body.String()))
	})
}

func TestSaveSettings(t *testing.T) {
	t.Run("Saves and acknowledges", func(t *testing.T) {
		// Given: the REST router
		service := newFakeSettingsService()
		router := newTestRouter(service)

		// When: posting settings
		body := strings.NewReader(`{"username":"alice","mode":"dark","palette":"ocean"}`)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/settings", body))

		// Then: the save is acknowledged and stored
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"ok":true}`, rec.Body.String())

		stored := service.stored["alice"]
		require.NotNil(t, stored)
		assert.Equal(t, entity.ModeDark, stored.Mode)
	})

	t.Run("Rejects a missing username", func(t *testing.T) {
		// Given: the REST router
		router := newTestRouter(newFakeSettingsService())

		// When: posting settings without a username
		body := strings.NewReader(`{"mode":"dark"}`)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/settings", body))

		// Then: the request is rejected
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Rejects a malformed body", func(t *testing.T) {
		// Given: the REST router
		router := newTestRouter(newFakeSettingsService())

		// When: posting junk
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/settings", strings.NewReader("{")))

		// Then: the request is rejected
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
