package service

import (
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
)

type BotService interface {
	MakeTurn(game *entity.Game) (entity.Move, error)
}

type moveSelector interface {
	FindBestMove(board entity.Board) (entity.Move, int, bool)
}

type botService struct {
	logger   *slog.Logger
	selector moveSelector
}

func NewBotService(logger *slog.Logger, selector moveSelector) BotService {
	return &botService{
		logger:   logger.With("component", "bot"),
		selector: selector,
	}
}

// MakeTurn plays the move of game's bot player. A finished game or a full board is left untouched.
func (that *botService) MakeTurn(game *entity.Game) (entity.Move, error) {
	log := that.logger.With("method", "MakeTurn", "gameID", game.ID)

	if game.IsFinished() {
		return entity.Move{}, apperror.ErrGameFinished
	}

	bot := findBot(game.Players)
	if bot == nil {
		return entity.Move{}, apperror.ErrBotNotFound
	}

	move, score, ok := that.selector.FindBestMove(game.Board)
	if !ok {
		return entity.Move{}, apperror.ErrNoAvailableMoves
	}

	if err := game.MakeTurn(bot.Mark, move); err != nil {
		return entity.Move{}, fmt.Errorf("bot failed to make turn: %w", err)
	}

	log.Debug("bot made turn", "player", bot.Name, "row", move.Row, "col", move.Col, "score", score)

	return move, nil
}

func findBot(players []*entity.Player) *entity.Player {
	for _, player := range players {
		if player.IsBot() {
			return player
		}
	}

	return nil
}
