package apperror

import "errors"

var (
	ErrInvalidBoard    = errors.New("invalid board")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrInvalidMark     = errors.New("invalid mark")
	ErrCellOccupied    = errors.New("cell occupied")
	ErrNotYourTurn     = errors.New("not your turn")

	ErrGameNotFound = errors.New("Game not found")
	ErrGameFinished = errors.New("game is already finished")

	ErrNotFound = errors.New("record not found")
)
