package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridrush/tictactoe-backend/internal/apperror"
	"github.com/gridrush/tictactoe-backend/internal/entity"
	"github.com/gridrush/tictactoe-backend/testing/suite"
)

func TestGameRecordRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	recordRepo := NewGameRecordRepository(st.Storage)

	// Given: a waiting game record on an empty board
	record := &entity.GameRecord{
		ID:       "1",
		Board:    entity.EmptyBoard,
		NextTurn: entity.MarkX,
		Status:   entity.StatusWaiting,
		PlayerX:  "alice",
		PlayerO:  "bob",
	}

	// When: CreateOrUpdate is called
	err := recordRepo.CreateOrUpdate(ctx, record)

	// Then: no error should be returned
	require.NoError(t, err)
}

func TestGameRecordRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		recordRepo := NewGameRecordRepository(st.Storage)

		// Given: a stored game record
		record := &entity.GameRecord{
			ID:       "7",
			Board:    entity.Board("----X----"),
			NextTurn: entity.MarkO,
			Status:   entity.StatusPlaying,
			PlayerX:  "alice",
			PlayerO:  "bob",
		}

		err := recordRepo.CreateOrUpdate(ctx, record)
		require.NoError(t, err)

		// When: GetByID is called with the existing id
		retrieved, err := recordRepo.GetByID(ctx, record.ID)

		// Then: the retrieved record should match the saved one
		require.NoError(t, err)
		assert.Equal(t, record, retrieved)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		recordRepo := NewGameRecordRepository(st.Storage)

		// When: GetByID is called with a non-existent id
		retrieved, err := recordRepo.GetByID(ctx, "9999999")

		// Then: an ErrNotFound error should be returned
		require.Error(t, err)
		assert.ErrorIs(t, err, apperror.ErrNotFound)
		assert.Nil(t, retrieved)
	})
}

func TestGameRecordRepository_DeleteByID(t *testing.T) {
	ctx, st := suite.New(t)

	recordRepo := NewGameRecordRepository(st.Storage)

	// Given: a stored game record
	record := &entity.GameRecord{
		ID:     "3",
		Board:  entity.EmptyBoard,
		Status: entity.StatusWaiting,
	}
	require.NoError(t, recordRepo.CreateOrUpdate(ctx, record))

	// When: DeleteByID is called
	err := recordRepo.DeleteByID(ctx, record.ID)

	// Then: the record is gone
	require.NoError(t, err)
	_, err = recordRepo.GetByID(ctx, record.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
