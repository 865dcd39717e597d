package entity

const (
	MarkX = Mark("X")
	MarkO = Mark("O")

	EmptyCell = byte('-')

	EmptyBoard = Board("---------")

	BoardSize = 9
)

// Mark is one of the two player symbols, X or O.
type Mark string

func (that Mark) IsValid() bool {
	return that == MarkX || that == MarkO
}

// Opposite returns the mark that moves after this one.
func (that Mark) Opposite() Mark {
	if that == MarkX {
		return MarkO
	}
	return MarkX
}

// Board is the canonical wire representation of a 3x3 grid: exactly nine
// characters over the alphabet {'-','X','O'}, row by row. A Board is an
// immutable value; WithCell returns a new one.
type Board string

func (that Board) IsValid() bool {
	if len(that) != BoardSize {
		return false
	}

	for i := 0; i < BoardSize; i++ {
		if c := that[i]; c != EmptyCell && c != 'X' && c != 'O' {
			return false
		}
	}

	return true
}

func (that Board) Cell(index int) byte {
	return that[index]
}

func (that Board) IsCellEmpty(index int) bool {
	return that[index] == EmptyCell
}

func (that Board) IsFull() bool {
	for i := 0; i < len(that); i++ {
		if that[i] == EmptyCell {
			return false
		}
	}
	return true
}

// WithCell returns a copy of the board with the given cell set to mark.
func (that Board) WithCell(index int, mark Mark) Board {
	cells := []byte(that)
	cells[index] = mark[0]

	return Board(cells)
}
