// Command seed writes the demo records used by local development: two
// known users and one waiting game on an empty board.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gridrush/tictactoe-backend/internal/config"
	"github.com/gridrush/tictactoe-backend/internal/entity"
	"github.com/gridrush/tictactoe-backend/internal/repository"
	"github.com/gridrush/tictactoe-backend/internal/repository/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if err := run(logger); err != nil {
		logger.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	baseDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	conf := config.MustLoad(filepath.Join(baseDir, "./config.yml"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	redisStorage, err := storage.New(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}
	defer redisStorage.Close()

	settingsRepo := repository.NewSettingsRepository(redisStorage.Connection)
	recordRepo := repository.NewGameRecordRepository(redisStorage.Connection)

	for _, username := range []string{"alice", "bob"} {
		if err = settingsRepo.Save(ctx, &entity.UserSettings{Username: username}); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", username, err)
		}
	}

	record := &entity.GameRecord{
		ID:       "1",
		Board:    entity.EmptyBoard,
		NextTurn: entity.MarkX,
		Status:   entity.StatusWaiting,
		PlayerX:  "alice",
		PlayerO:  "bob",
	}
	if err = recordRepo.CreateOrUpdate(ctx, record); err != nil {
		return fmt.Errorf("failed to seed game record: %w", err)
	}

	logger.Info("seed complete", "users", []string{"alice", "bob"}, "gameID", record.ID)

	return nil
}
