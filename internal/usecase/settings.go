package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gridrush/tictactoe-backend/internal/apperror"
	"github.com/gridrush/tictactoe-backend/internal/entity"
)

const persistTimeout = 5 * time.Second

type settingsRepo interface {
	Save(ctx context.Context, settings *entity.UserSettings) error
	GetByUsername(ctx context.Context, username string) (*entity.UserSettings, error)
}

// Preferences serves per-username display settings. Durable storage is
// best-effort: reads fall back to an in-memory copy and writes persist in
// the background, so a slow or failing store never delays game traffic.
type Preferences struct {
	logger *slog.Logger
	repo   settingsRepo

	mu       sync.RWMutex
	fallback map[string]*entity.UserSettings
}

func NewPreferences(logger *slog.Logger, repo settingsRepo) *Preferences {
	return &Preferences{
		logger:   logger,
		repo:     repo,
		fallback: make(map[string]*entity.UserSettings),
	}
}

// Get returns the stored settings for username, or nil when none exist.
// A storage failure degrades to the in-memory copy and is logged only.
func (that *Preferences) Get(ctx context.Context, username string) *entity.UserSettings {
	log := that.logger.With("method", "Get", "username", username)

	settings, err := that.repo.GetByUsername(ctx, username)
	if err == nil {
		return settings
	}

	if !errors.Is(err, apperror.ErrNotFound) {
		log.Error("failed to get settings from storage", "error", err)
	}

	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.fallback[username]
}

// Save records the settings in memory and persists them in a detached
// goroutine. The caller gets its acknowledgment from the in-memory copy;
// a persistence failure is logged and never surfaced.
func (that *Preferences) Save(ctx context.Context, settings *entity.UserSettings) {
	log := that.logger.With("method", "Save", "username", settings.Username)

	that.mu.Lock()
	that.fallback[settings.Username] = settings
	that.mu.Unlock()

	go func() {
		persistCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
		defer cancel()

		if err := that.repo.Save(persistCtx, settings); err != nil {
			log.Error("failed to persist settings", "error", err)
			return
		}

		log.Debug("settings persisted")
	}()
}
