package apperror

import "errors"

var (
	ErrGameFinished     = errors.New("game is already finished")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrInvalidCell      = errors.New("invalid cell")
	ErrMalformedInput   = errors.New("malformed input")
	ErrNoAvailableMoves = errors.New("no available moves")
	ErrBotNotFound      = errors.New("no bot player in game")
)
