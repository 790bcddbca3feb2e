package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
)

const (
	StatusOngoing  = "ongoing"
	StatusFinished = "finished"
)

type Game struct {
	ID      string    `json:"id"`
	Board   Board     `json:"board"`
	Turn    Cell      `json:"turn"`
	Winner  Cell      `json:"winner"`
	Status  string    `json:"status"`
	Players []*Player `json:"players,omitempty"`
}

// NewGame starts a game on an empty board with firstTurn to move.
func NewGame(id string, firstTurn Cell) *Game {
	return &Game{
		ID:     id,
		Turn:   firstTurn,
		Status: StatusOngoing,
	}
}

// DetermineGameResult returns the winning mark, or Empty with finished set on a draw.
func (that *Game) DetermineGameResult() (Cell, bool) {
	for _, mark := range []Cell{PlayerMark, ComputerMark} {
		if that.Board.CheckWin(mark) {
			return mark, true
		}
	}

	// the game will continue until all the squares are full
	return Empty, that.Board.IsFull()
}

func (that *Game) UpdateGameState() {
	winner, finished := that.DetermineGameResult()
	if !finished {
		that.Status = StatusOngoing
		return
	}

	that.Winner = winner
	that.Status = StatusFinished
	that.Turn = Empty
}

func (that *Game) MakeTurn(mark Cell, move Move) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if !move.InRange() {
		return fmt.Errorf("%w: row %d col %d", apperror.ErrInvalidCell, move.Row, move.Col)
	}

	if that.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	if that.Board[move.Row][move.Col] != Empty {
		return fmt.Errorf("%w: row %d col %d", apperror.ErrCellOccupied, move.Row, move.Col)
	}

	that.Board.ApplyMove(move, mark)
	that.Turn = mark.Opponent()

	that.UpdateGameState()

	return nil
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsDraw() bool {
	return that.IsFinished() && that.Winner == Empty
}
