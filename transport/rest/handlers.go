package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/gridrush/tictactoe-backend/internal/entity"
)

type settingsService interface {
	Get(ctx context.Context, username string) *entity.UserSettings
	Save(ctx context.Context, settings *entity.UserSettings)
}

type handlers struct {
	logger   *slog.Logger
	settings settingsService
}

// NewRouter wires the REST endpoints onto an httprouter mux.
func NewRouter(logger *slog.Logger, settings settingsService) http.Handler {
	that := &handlers{
		logger:   logger,
		settings: settings,
	}

	router := httprouter.New()
	router.GET("/health", that.health)
	router.GET("/settings/:username", that.getSettings)
	router.POST("/settings", that.saveSettings)

	return router
}

func (that *handlers) health(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	that.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// getSettings returns the stored settings for a username, or a JSON null
// when nothing was ever saved — the same contract the socket channel uses.
func (that *handlers) getSettings(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	settings := that.settings.Get(r.Context(), params.ByName("username"))

	that.writeJSON(w, http.StatusOK, settings)
}

func (that *handlers) saveSettings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var settings entity.UserSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		that.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
		return
	}

	if settings.Username == "" {
		that.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "username required"})
		return
	}

	that.settings.Save(r.Context(), &settings)

	that.writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
