package game

import (
	"github.com/gridrush/tictactoe-backend/internal/apperror"
	"github.com/gridrush/tictactoe-backend/internal/entity"
)

// WinLines are the eight winning triples, scanned in this fixed order:
// rows, then columns, then diagonals. The first matching line wins.
var WinLines = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Result is the outcome of evaluating a proposed move. On rejection Board
// is the original board, Reason holds the sentinel cause, and nothing else
// is set. On success Board is the new board and Winner/WinningLine/Draw/
// NextTurn describe the resulting position.
type Result struct {
	Valid       bool
	Board       entity.Board
	Winner      entity.Mark
	WinningLine []int
	Draw        bool
	NextTurn    entity.Mark
	Reason      error
}

// Evaluate validates a proposed move against a board, applies it, and
// detects the terminal result. Preconditions are checked in order and the
// first failure wins; no input ever causes a panic. The turn constraint is
// enforced only when expectedNextTurn is non-empty. Pure and deterministic:
// the same inputs always produce the same result.
func Evaluate(board entity.Board, index int, mark entity.Mark, expectedNextTurn entity.Mark) Result {
	reject := func(reason error) Result {
		return Result{Board: board, NextTurn: expectedNextTurn, Reason: reason}
	}

	if !board.IsValid() {
		return reject(apperror.ErrInvalidBoard)
	}

	if index < 0 || index >= entity.BoardSize {
		return reject(apperror.ErrIndexOutOfRange)
	}

	if !mark.IsValid() {
		return reject(apperror.ErrInvalidMark)
	}

	if !board.IsCellEmpty(index) {
		return reject(apperror.ErrCellOccupied)
	}

	if expectedNextTurn != "" && expectedNextTurn != mark {
		return reject(apperror.ErrNotYourTurn)
	}

	newBoard := board.WithCell(index, mark)
	winner, winningLine := checkWinner(newBoard)
	draw := winner == "" && newBoard.IsFull()

	var nextTurn entity.Mark
	if winner == "" && !draw {
		nextTurn = mark.Opposite()
	}

	return Result{
		Valid:       true,
		Board:       newBoard,
		Winner:      winner,
		WinningLine: winningLine,
		Draw:        draw,
		NextTurn:    nextTurn,
	}
}

func checkWinner(board entity.Board) (entity.Mark, []int) {
	for _, line := range WinLines {
		a, b, c := board.Cell(line[0]), board.Cell(line[1]), board.Cell(line[2])
		if a != entity.EmptyCell && a == b && b == c {
			return entity.Mark(a), []int{line[0], line[1], line[2]}
		}
	}

	return "", nil
}
