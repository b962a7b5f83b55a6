package search

import (
	"context"
	"fmt"

	"github.com/lk16/flippy/negamax/internal/othello"
)

const (
	// WinScore is returned for a finished game won by the player to move.
	// It exceeds any WeightedScore in magnitude.
	WinScore = 1 << 20

	// Infinity bounds the alpha-beta window. It is far below math.MaxInt so negation is exact.
	Infinity = 1 << 30

	// cancelCheckInterval is the number of nodes between two context checks. Must be a power of two.
	cancelCheckInterval = 4096
)

// Negamax returns the value of board for its player to move, looking depth plies ahead.
// Passing consumes a ply just like a move does.
func Negamax(board othello.Board, depth, alpha, beta int) int {
	var s Searcher
	return s.Negamax(board, depth, alpha, beta)
}

// Searcher runs negamax searches and counts the visited nodes.
// The zero value searches until done.
type Searcher struct {
	nodes uint64

	ctx     context.Context
	aborted bool
}

// NewSearcher creates a Searcher that stops once ctx is done.
// After an abort every score is meaningless and Err reports the cause.
func NewSearcher(ctx context.Context) *Searcher {
	return &Searcher{ctx: ctx}
}

// Err returns the context error that aborted the search, if any.
func (s *Searcher) Err() error {
	if !s.aborted {
		return nil
	}
	return s.ctx.Err()
}

// Nodes returns the number of nodes visited so far.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// Negamax works like the package level Negamax.
func (s *Searcher) Negamax(board othello.Board, depth, alpha, beta int) int {
	if board.ToMove() == othello.Unknown {
		panic("search: board has no player to move")
	}

	if depth < 0 {
		panic(fmt.Sprintf("search: negative depth %d", depth))
	}

	if s.aborted {
		return 0
	}

	s.nodes++

	if s.ctx != nil && s.nodes&(cancelCheckInterval-1) == 0 && s.ctx.Err() != nil {
		s.aborted = true
		return 0
	}

	if board.IsOver() {
		return terminalScore(board)
	}

	if depth == 0 {
		return board.WeightedScore()
	}

	if !board.HasMoves() {
		return -s.Negamax(board.Pass(), depth-1, -beta, -alpha)
	}

	best := -Infinity
	for child := range board.Children() {
		score := -s.Negamax(child, depth-1, -beta, -alpha)

		best = max(best, score)
		alpha = max(alpha, score)

		if alpha >= beta {
			break
		}
	}

	return best
}

func terminalScore(board othello.Board) int {
	score := board.AbsoluteScore()

	switch {
	case score > 0:
		return WinScore
	case score < 0:
		return -WinScore
	default:
		return 0
	}
}
