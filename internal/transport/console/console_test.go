package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
	"github.com/rocketscienceinc/tictactoe-console/testing/suite"
)

var errBrokenPipe = errors.New("broken pipe")

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errBrokenPipe
}

func TestParseMove(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    entity.Move
		wantErr error
	}{
		{name: "two numbers", input: "1 2", want: entity.Move{Row: 1, Col: 2}},
		{name: "extra whitespace", input: "  0\t\t2  ", want: entity.Move{Row: 0, Col: 2}},
		{name: "out of range is still parsed", input: "5 -1", want: entity.Move{Row: 5, Col: -1}},
		{name: "empty line", input: "", wantErr: apperror.ErrMalformedInput},
		{name: "one number", input: "1", wantErr: apperror.ErrMalformedInput},
		{name: "three numbers", input: "1 1 1", wantErr: apperror.ErrMalformedInput},
		{name: "letters", input: "a b", wantErr: apperror.ErrMalformedInput},
		{name: "bad column", input: "1 x", wantErr: apperror.ErrMalformedInput},
		{name: "no separator", input: "11", wantErr: apperror.ErrMalformedInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			move, err := ParseMove(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, move)
		})
	}
}

func TestConsole_RenderBoard(t *testing.T) {
	_, st := suite.New(t)

	// Given: a board with a few marks
	var out bytes.Buffer
	term := New(st.Logger, strings.NewReader(""), &out)
	board := entity.Board{
		{entity.PlayerMark, entity.Empty, entity.Empty},
		{entity.Empty, entity.ComputerMark, entity.Empty},
		{entity.Empty, entity.Empty, entity.PlayerMark},
	}

	// When: rendering it
	require.NoError(t, term.RenderBoard(board))

	// Then: rows and columns carry their indexes
	expected := "\n" +
		"  0 | 1 | 2\n" +
		"  ---------\n" +
		"0 X |   |  \n" +
		"1   | O |  \n" +
		"2   |   | X\n" +
		"\n"
	assert.Equal(t, expected, out.String())
}

func TestConsole_ReadMove(t *testing.T) {
	t.Run("Reads moves line by line then EOF", func(t *testing.T) {
		ctx, st := suite.New(t)

		// Given: two lines of input, the second malformed
		var out bytes.Buffer
		term := New(st.Logger, strings.NewReader("2 1\nhello\n"), &out)

		// When: reading three times
		move, err := term.ReadMove(ctx)
		require.NoError(t, err)
		assert.Equal(t, entity.Move{Row: 2, Col: 1}, move)

		_, err = term.ReadMove(ctx)
		require.ErrorIs(t, err, apperror.ErrMalformedInput)

		_, err = term.ReadMove(ctx)
		require.ErrorIs(t, err, io.EOF)

		// And: reading after the end stays at EOF
		_, err = term.ReadMove(ctx)
		require.ErrorIs(t, err, io.EOF)

		// Then: every read prompted
		assert.Equal(t, 4, strings.Count(out.String(), movePrompt))
	})

	t.Run("Cancelled context stops waiting", func(t *testing.T) {
		ctx, st := suite.New(t)

		// Given: input that never delivers a line
		reader, writer := io.Pipe()
		t.Cleanup(func() {
			_ = writer.Close()
		})
		term := New(st.Logger, reader, io.Discard)

		ctx, cancel := context.WithCancel(ctx)
		cancel()

		// When: reading with a cancelled context
		_, err := term.ReadMove(ctx)

		// Then: the context error is returned
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("Over-long line is malformed and reading continues", func(t *testing.T) {
		ctx, st := suite.New(t)

		// Given: a line far longer than any move, then a valid move
		input := strings.Repeat("1", 70*1024) + "\n1 1\n"
		term := New(st.Logger, strings.NewReader(input), io.Discard)

		// When: reading twice
		_, err := term.ReadMove(ctx)

		// Then: the long line is rejected as malformed input
		require.ErrorIs(t, err, apperror.ErrMalformedInput)

		// And: the next line is read as a move
		move, err := term.ReadMove(ctx)
		require.NoError(t, err)
		assert.Equal(t, entity.Move{Row: 1, Col: 1}, move)

		_, err = term.ReadMove(ctx)
		require.ErrorIs(t, err, io.EOF)
	})

	t.Run("Over-long last line without newline", func(t *testing.T) {
		ctx, st := suite.New(t)

		term := New(st.Logger, strings.NewReader(strings.Repeat("x", 10*maxLineLength)), io.Discard)

		_, err := term.ReadMove(ctx)
		require.ErrorIs(t, err, apperror.ErrMalformedInput)

		_, err = term.ReadMove(ctx)
		require.ErrorIs(t, err, io.EOF)
	})

	t.Run("Write failure is reported", func(t *testing.T) {
		ctx, st := suite.New(t)
		term := New(st.Logger, strings.NewReader("1 1\n"), failingWriter{})

		_, err := term.ReadMove(ctx)
		require.ErrorIs(t, err, errBrokenPipe)

		require.ErrorIs(t, term.Say("hello"), errBrokenPipe)
		require.ErrorIs(t, term.RenderBoard(entity.Board{}), errBrokenPipe)
	})
}

func TestConsole_Say(t *testing.T) {
	_, st := suite.New(t)

	var out bytes.Buffer
	term := New(st.Logger, strings.NewReader(""), &out)

	require.NoError(t, term.Say("Computer plays at (%d, %d)", 1, 2))

	assert.Equal(t, "Computer plays at (1, 2)\n", out.String())
}

func TestConsole_Close(t *testing.T) {
	t.Run("Reader stops with a line nobody reads", func(t *testing.T) {
		_, st := suite.New(t)

		// Given: a line was read from the input but never asked for
		reader, writer := io.Pipe()
		t.Cleanup(func() {
			_ = writer.Close()
		})
		term := New(st.Logger, reader, io.Discard)

		_, err := writer.Write([]byte("1 1\n"))
		require.NoError(t, err)

		// When: closing the console
		term.Close()

		// Then: the background reader returns
		require.Eventually(t, func() bool {
			select {
			case <-term.stopped:
				return true
			default:
				return false
			}
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("Read after close is EOF", func(t *testing.T) {
		ctx, st := suite.New(t)
		term := New(st.Logger, strings.NewReader("1 1\n"), io.Discard)

		term.Close()
		term.Close()

		_, err := term.ReadMove(ctx)
		require.ErrorIs(t, err, io.EOF)
	})
}
