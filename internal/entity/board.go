package entity

// BoardSize is the side length of the grid.
const BoardSize = 3

// Cell is the content of a single square.
type Cell uint8

const (
	Empty Cell = iota
	PlayerMark
	ComputerMark
)

func (c Cell) String() string {
	switch c {
	case PlayerMark:
		return "X"
	case ComputerMark:
		return "O"
	default:
		return " "
	}
}

// Opponent returns the other mark. Empty has no opponent and stays Empty.
func (c Cell) Opponent() Cell {
	switch c {
	case PlayerMark:
		return ComputerMark
	case ComputerMark:
		return PlayerMark
	default:
		return Empty
	}
}

// Move addresses a square by row and column, both 0-indexed.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (m Move) InRange() bool {
	return m.Row >= 0 && m.Row < BoardSize && m.Col >= 0 && m.Col < BoardSize
}

// WinLines holds the 8 lines that decide a game: rows, columns, then both diagonals.
var WinLines = [8][BoardSize]Move{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// Board is the 3x3 grid. The zero value is an empty board.
type Board [BoardSize][BoardSize]Cell

// ApplyMove puts mark on the cell addressed by move. The cell must be empty and in range;
// callers outside the search check IsValidMove first.
func (that *Board) ApplyMove(move Move, mark Cell) {
	that[move.Row][move.Col] = mark
}

// UndoMove clears the cell addressed by move.
func (that *Board) UndoMove(move Move) {
	that[move.Row][move.Col] = Empty
}

func (that *Board) IsValidMove(move Move) bool {
	return move.InRange() && that[move.Row][move.Col] == Empty
}

// CheckWin reports whether any row, column or diagonal consists entirely of mark.
func (that *Board) CheckWin(mark Cell) bool {
	if mark == Empty {
		return false
	}

	for _, line := range WinLines {
		a, b, c := line[0], line[1], line[2]
		if that[a.Row][a.Col] == mark && that[b.Row][b.Col] == mark && that[c.Row][c.Col] == mark {
			return true
		}
	}

	return false
}

func (that *Board) IsFull() bool {
	for _, row := range that {
		for _, cell := range row {
			if cell == Empty {
				return false
			}
		}
	}

	return true
}

// AvailableMoves lists the empty cells in row-major order.
func (that *Board) AvailableMoves() []Move {
	moves := make([]Move, 0, BoardSize*BoardSize)
	for r, row := range that {
		for c, cell := range row {
			if cell == Empty {
				moves = append(moves, Move{Row: r, Col: c})
			}
		}
	}

	return moves
}
