// Package tictactoe picks the computer's move with an exhaustive minimax search.
//
// The search visits every continuation of the position without pruning or caching.
// That is fine for a 3x3 board (at most ~550k nodes from the empty board) and must not be
// carried over to larger boards as is.
package tictactoe

import (
	"math"
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
)

// WinScore is the raw value of a won position for the computer; a lost one is -WinScore.
const WinScore = 10

// Evaluate scores a position from the computer's side: WinScore for a computer win,
// -WinScore for a human win and 0 otherwise, which covers both draws and unfinished games.
func Evaluate(board *entity.Board) int {
	switch {
	case board.CheckWin(entity.ComputerMark):
		return WinScore
	case board.CheckWin(entity.PlayerMark):
		return -WinScore
	default:
		return 0
	}
}

// Minimax returns the value of board under perfect play by both sides. depth is the number
// of plies already played since the search root; maximizing is true when the computer is
// to move.
//
// Wins lose one point per ply and losses gain one, so a quicker win and a later loss are
// preferred. With at most 9 plies a win stays above a draw and a loss below it.
// maximizing only picks the side to move: terminal scores are adjusted by which side won,
// not by maximizing.
// board is mutated during the call and restored before it returns.
func Minimax(board *entity.Board, depth int, maximizing bool) int {
	score := Evaluate(board)

	switch {
	case score > 0:
		return score - depth
	case score < 0:
		return score + depth
	}

	// only reached without a winner, so 0 here is a real draw and not an open position
	if board.IsFull() {
		return 0
	}

	if maximizing {
		best := math.MinInt
		for _, move := range board.AvailableMoves() {
			board.ApplyMove(move, entity.ComputerMark)
			best = max(best, Minimax(board, depth+1, false))
			board.UndoMove(move)
		}

		return best
	}

	best := math.MaxInt
	for _, move := range board.AvailableMoves() {
		board.ApplyMove(move, entity.PlayerMark)
		best = min(best, Minimax(board, depth+1, true))
		board.UndoMove(move)
	}

	return best
}

// Selector chooses the computer's move. It is not safe for concurrent use.
type Selector struct {
	rnd *rand.Rand
}

// NewSelector returns a Selector whose tie-breaking is driven by seed.
func NewSelector(seed int64) *Selector {
	return &Selector{
		rnd: rand.New(rand.NewSource(seed)), //nolint: gosec // tie-breaking only
	}
}

// FindBestMove returns the computer's best move on board together with its minimax score.
// ok is false when there is nothing to play. Candidates are tried in shuffled order and only
// a strictly better score replaces the current choice, so equally good moves vary between
// games. The search runs on a copy of board.
func (that *Selector) FindBestMove(board entity.Board) (entity.Move, int, bool) {
	moves := board.AvailableMoves()
	if len(moves) == 0 {
		return entity.Move{}, 0, false
	}

	that.rnd.Shuffle(len(moves), func(i, j int) {
		moves[i], moves[j] = moves[j], moves[i]
	})

	bestScore := math.MinInt
	var bestMove entity.Move

	for _, move := range moves {
		board.ApplyMove(move, entity.ComputerMark)
		// the candidate itself is the first ply and the human replies next
		score := Minimax(&board, 1, false)
		board.UndoMove(move)

		if score > bestScore {
			bestScore = score
			bestMove = move
		}
	}

	return bestMove, bestScore, true
}
