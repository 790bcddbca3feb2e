package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
)

const movePrompt = "Your turn. Enter a move (row col, e.g. 1 1): "

// maxLineLength caps a single input line; longer lines are dropped as malformed.
const maxLineLength = 4096

type line struct {
	text    string
	tooLong bool
	err     error
}

// Console renders the game on out and reads moves from in.
type Console struct {
	logger *slog.Logger
	out    io.Writer
	lines  chan line

	done      chan struct{}
	closeOnce sync.Once
	stopped   chan struct{}
}

// New starts reading in line by line in the background so that ReadMove can be cancelled.
// Close stops the background reader.
func New(logger *slog.Logger, in io.Reader, out io.Writer) *Console {
	that := &Console{
		logger:  logger.With("component", "console"),
		out:     out,
		lines:   make(chan line),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}

	go that.scan(in)

	return that
}

// Close releases the background reader. A read already blocked on the input returns only
// when the input does, but no line is delivered after Close.
func (that *Console) Close() {
	that.closeOnce.Do(func() {
		close(that.done)
	})
}

// scan feeds input lines to ReadMove and ends with the reader's error, or io.EOF.
func (that *Console) scan(in io.Reader) {
	defer close(that.stopped)
	defer close(that.lines)

	reader := bufio.NewReaderSize(in, maxLineLength)
	for {
		text, isPrefix, err := reader.ReadLine()
		if err != nil {
			that.send(line{err: err})
			return
		}

		if !isPrefix {
			if !that.send(line{text: string(text)}) {
				return
			}
			continue
		}

		// skip the rest of the over-long line
		for isPrefix && err == nil {
			_, isPrefix, err = reader.ReadLine()
		}

		if !that.send(line{tooLong: true}) {
			return
		}

		if err != nil {
			that.send(line{err: err})
			return
		}
	}
}

// send hands l to ReadMove and reports false once the console is closed.
func (that *Console) send(l line) bool {
	select {
	case that.lines <- l:
		return true
	case <-that.done:
		return false
	}
}

// RenderBoard writes the grid with row and column indexes.
func (that *Console) RenderBoard(board entity.Board) error {
	var sb strings.Builder

	header := make([]string, entity.BoardSize)
	for i := range header {
		header[i] = strconv.Itoa(i)
	}

	sb.WriteString("\n  " + strings.Join(header, " | ") + "\n")
	sb.WriteString("  " + strings.Repeat("---", entity.BoardSize) + "\n")

	for i, row := range board {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = cell.String()
		}
		sb.WriteString(strconv.Itoa(i) + " " + strings.Join(cells, " | ") + "\n")
	}

	sb.WriteString("\n")

	if _, err := io.WriteString(that.out, sb.String()); err != nil {
		return fmt.Errorf("failed to render board: %w", err)
	}

	return nil
}

// Say writes one line of output.
func (that *Console) Say(format string, args ...any) error {
	if _, err := fmt.Fprintf(that.out, format+"\n", args...); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

// ReadMove prompts for and parses one move. It does not check the move against the board.
func (that *Console) ReadMove(ctx context.Context) (entity.Move, error) {
	if _, err := io.WriteString(that.out, movePrompt); err != nil {
		return entity.Move{}, fmt.Errorf("failed to write prompt: %w", err)
	}

	select {
	case <-that.done:
		return entity.Move{}, io.EOF
	default:
	}

	select {
	case <-ctx.Done():
		return entity.Move{}, ctx.Err()
	case <-that.done:
		return entity.Move{}, io.EOF
	case l, ok := <-that.lines:
		if !ok {
			return entity.Move{}, io.EOF
		}

		if l.err != nil {
			return entity.Move{}, l.err
		}

		if l.tooLong {
			return entity.Move{}, fmt.Errorf("%w: line longer than %d bytes", apperror.ErrMalformedInput, maxLineLength)
		}

		that.logger.Debug("read input", "line", l.text)

		return ParseMove(l.text)
	}
}

// ParseMove reads "row col" as two whitespace-separated integers.
func ParseMove(text string) (entity.Move, error) {
	fields := strings.Fields(text)
	if len(fields) != 2 {
		return entity.Move{}, fmt.Errorf("%w: want 2 numbers, got %d fields", apperror.ErrMalformedInput, len(fields))
	}

	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return entity.Move{}, fmt.Errorf("%w: row %q", apperror.ErrMalformedInput, fields[0])
	}

	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return entity.Move{}, fmt.Errorf("%w: col %q", apperror.ErrMalformedInput, fields[1])
	}

	return entity.Move{Row: row, Col: col}, nil
}
