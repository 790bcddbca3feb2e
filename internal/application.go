package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-console/internal/config"
	"github.com/rocketscienceinc/tictactoe-console/internal/service"
	"github.com/rocketscienceinc/tictactoe-console/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-console/internal/transport/console"
	"github.com/rocketscienceinc/tictactoe-console/internal/usecase"
)

// RunApp - runs one game on the process's standard input and output.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	return run(logger, conf, os.Stdin, os.Stdout)
}

func run(logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	seed := conf.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	selector := tictactoe.NewSelector(seed)
	botService := service.NewBotService(logger, selector)
	term := console.New(logger, in, out)
	defer term.Close()
	session := usecase.NewGameSession(logger, botService, term, conf.HumanFirst)

	gameID := uuid.NewString()
	log.Info("Starting game", "gameID", gameID, "seed", seed)

	_, err := session.Play(ctx, gameID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF):
		log.Info("Input closed, leaving the game", "gameID", gameID)
		return nil
	case errors.Is(err, context.Canceled):
		log.Info("Application context canceled, shutting down", "gameID", gameID)
		return nil
	default:
		return fmt.Errorf("game session failed: %w", err)
	}
}
