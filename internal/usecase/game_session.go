package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
)

const (
	msgBanner        = "Unbeatable Tic-Tac-Toe (3x3) with a minimax computer"
	msgMarks         = "You are '%s', the computer is '%s'. Three in a row wins."
	msgThinking      = "Computer is thinking..."
	msgComputerMove  = "Computer plays at (%d, %d)"
	msgInvalidMove   = "Invalid move. Try again."
	msgInvalidInput  = "Invalid input. Enter two numbers (row and column) separated by a space."
	msgPlayerWins    = "Congratulations! You win!"
	msgComputerWins  = "The computer wins! Better luck next time."
	msgDraw          = "It's a draw!"
	msgBannerDivider = "============================================="
)

type botService interface {
	MakeTurn(game *entity.Game) (entity.Move, error)
}

type terminal interface {
	RenderBoard(board entity.Board) error
	Say(format string, args ...any) error
	ReadMove(ctx context.Context) (entity.Move, error)
}

// GameSession runs a single game between the human at the terminal and the bot.
type GameSession struct {
	logger     *slog.Logger
	bot        botService
	terminal   terminal
	humanFirst bool
}

func NewGameSession(logger *slog.Logger, bot botService, terminal terminal, humanFirst bool) *GameSession {
	return &GameSession{
		logger:     logger.With("component", "session"),
		bot:        bot,
		terminal:   terminal,
		humanFirst: humanFirst,
	}
}

// Play runs the game with the given ID until a win or a draw and returns the finished game.
// It stops early only when input ends, ctx is cancelled or output cannot be written.
func (that *GameSession) Play(ctx context.Context, gameID string) (*entity.Game, error) {
	log := that.logger.With("method", "Play", "gameID", gameID)

	human, bot := entity.NewHumanPlayer("you"), entity.NewBotPlayer()

	first := bot.Mark
	if that.humanFirst {
		first = human.Mark
	}

	game := entity.NewGame(gameID, first)
	game.Players = []*entity.Player{human, bot}

	if err := that.greet(); err != nil {
		return game, err
	}

	log.Info("game started", "first", first.String())

	for !game.IsFinished() {
		if err := that.terminal.RenderBoard(game.Board); err != nil {
			return game, fmt.Errorf("failed to show board: %w", err)
		}

		if game.Turn == human.Mark {
			if err := that.humanTurn(ctx, game); err != nil {
				return game, err
			}
			continue
		}

		if err := that.computerTurn(game); err != nil {
			return game, err
		}
	}

	log.Info("game finished", "winner", game.Winner.String(), "draw", game.IsDraw())

	return game, that.announce(game)
}

func (that *GameSession) greet() error {
	for _, msg := range []string{msgBannerDivider, msgBanner, msgBannerDivider} {
		if err := that.terminal.Say(msg); err != nil {
			return fmt.Errorf("failed to greet: %w", err)
		}
	}

	if err := that.terminal.Say(msgMarks, entity.PlayerMark, entity.ComputerMark); err != nil {
		return fmt.Errorf("failed to greet: %w", err)
	}

	return nil
}

// humanTurn asks until the human enters a move that fits the board.
func (that *GameSession) humanTurn(ctx context.Context, game *entity.Game) error {
	log := that.logger.With("method", "humanTurn", "gameID", game.ID)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		move, err := that.terminal.ReadMove(ctx)
		if errors.Is(err, apperror.ErrMalformedInput) {
			log.Debug("rejected input", "error", err)
			if err = that.terminal.Say(msgInvalidInput); err != nil {
				return fmt.Errorf("failed to reject input: %w", err)
			}
			continue
		}

		if err != nil {
			return fmt.Errorf("failed to read move: %w", err)
		}

		if !game.Board.IsValidMove(move) {
			log.Debug("rejected move", "row", move.Row, "col", move.Col)
			if err = that.terminal.Say(msgInvalidMove); err != nil {
				return fmt.Errorf("failed to reject move: %w", err)
			}
			continue
		}

		if err = game.MakeTurn(entity.PlayerMark, move); err != nil {
			return fmt.Errorf("failed to make turn: %w", err)
		}

		log.Info("player made turn", "row", move.Row, "col", move.Col)

		return nil
	}
}

func (that *GameSession) computerTurn(game *entity.Game) error {
	if err := that.terminal.Say(msgThinking); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	move, err := that.bot.MakeTurn(game)
	if err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	if err = that.terminal.Say(msgComputerMove, move.Row, move.Col); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *GameSession) announce(game *entity.Game) error {
	if err := that.terminal.RenderBoard(game.Board); err != nil {
		return fmt.Errorf("failed to show board: %w", err)
	}

	msg := msgDraw
	switch game.Winner {
	case entity.PlayerMark:
		msg = msgPlayerWins
	case entity.ComputerMark:
		msg = msgComputerWins
	}

	if err := that.terminal.Say(msg); err != nil {
		return fmt.Errorf("failed to announce result: %w", err)
	}

	return nil
}
