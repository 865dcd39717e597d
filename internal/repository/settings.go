package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/gridrush/tictactoe-backend/internal/apperror"
	"github.com/gridrush/tictactoe-backend/internal/entity"
)

type SettingsRepository interface {
	Save(ctx context.Context, settings *entity.UserSettings) error
	GetByUsername(ctx context.Context, username string) (*entity.UserSettings, error)
}

type dbSettings struct {
	client *redis.Client
}

func NewSettingsRepository(client *redis.Client) SettingsRepository {
	return &dbSettings{
		client: client,
	}
}

func (that *dbSettings) Save(ctx context.Context, settings *entity.UserSettings) error {
	settingsJSON, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("could not marshal settings: %w", err)
	}

	settingsKey := "user:" + settings.Username
	if err = that.client.Set(ctx, settingsKey, settingsJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set settings: %w", err)
	}

	return nil
}

func (that *dbSettings) GetByUsername(ctx context.Context, username string) (*entity.UserSettings, error) {
	settingsKey := "user:" + username

	response, err := that.client.Get(ctx, settingsKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	var settings entity.UserSettings
	if err = json.Unmarshal([]byte(response), &settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	return &settings, nil
}
