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

// GameRecordRepository stores the durable game records written by the
// seeder. Live sessions never pass through here.
type GameRecordRepository interface {
	CreateOrUpdate(ctx context.Context, record *entity.GameRecord) error
	GetByID(ctx context.Context, id string) (*entity.GameRecord, error)
	DeleteByID(ctx context.Context, id string) error
}

type dbGameRecord struct {
	client *redis.Client
}

func NewGameRecordRepository(client *redis.Client) GameRecordRepository {
	return &dbGameRecord{
		client: client,
	}
}

func (that *dbGameRecord) CreateOrUpdate(ctx context.Context, record *entity.GameRecord) error {
	recordJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("could not marshal game record: %w", err)
	}

	recordKey := "game:" + record.ID
	if err = that.client.Set(ctx, recordKey, recordJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set game record: %w", err)
	}

	return nil
}

func (that *dbGameRecord) GetByID(ctx context.Context, id string) (*entity.GameRecord, error) {
	recordKey := "game:" + id

	response, err := that.client.Get(ctx, recordKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game record: %w", err)
	}

	var record entity.GameRecord
	if err = json.Unmarshal([]byte(response), &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game record: %w", err)
	}

	return &record, nil
}

func (that *dbGameRecord) DeleteByID(ctx context.Context, id string) error {
	recordKey := "game:" + id

	if err := that.client.Del(ctx, recordKey).Err(); err != nil {
		return fmt.Errorf("failed to delete game record: %w", err)
	}

	return nil
}
