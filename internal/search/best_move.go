package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"sync/atomic"
	"time"

	"github.com/lk16/flippy/negamax/internal/othello"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNoMoves = errors.New("player to move has no legal moves")
	ErrNoMover = errors.New("board has no player to move")
)

// ChildScore is the negamax score of one root move, from the root player's perspective.
type ChildScore struct {
	Move  othello.Square
	Score int
}

// Result is the outcome of a root search.
type Result struct {
	// Move is the chosen move and Board the board after playing it.
	Move  othello.Square
	Board othello.Board

	// Score is the value of Move for the player to move at the root.
	Score int

	// Scores holds the score of every root move in enumeration order.
	Scores []ChildScore

	Nodes   uint64
	Elapsed time.Duration
}

type options struct {
	workers int
}

// Option configures BestMove.
type Option func(*options)

// WithWorkers limits the number of root moves searched concurrently.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = max(n, 1)
	}
}

// BestMove searches every root move with Negamax at depth-1 and returns the one
// with the highest score. On a tie the last move in enumeration order wins.
// A depth below 1 is treated as 1.
//
// Root moves are searched concurrently, each with a full window of its own.
func BestMove(ctx context.Context, board othello.Board, depth int, opts ...Option) (Result, error) {
	if board.ToMove() == othello.Unknown {
		return Result{}, ErrNoMover
	}

	if !board.HasMoves() {
		return Result{}, ErrNoMoves
	}

	o := options{workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(&o)
	}

	depth = max(depth, 1)
	startTime := time.Now()

	children := slices.Collect(board.Children())
	scores := make([]int, len(children))

	var nodes atomic.Uint64

	grp, grpCtx := errgroup.WithContext(ctx)
	grp.SetLimit(o.workers)

	for i, child := range children {
		grp.Go(func() error {
			if err := grpCtx.Err(); err != nil {
				return err
			}

			s := NewSearcher(grpCtx)
			scores[i] = -s.Negamax(child, depth-1, -Infinity, Infinity)
			nodes.Add(s.Nodes())
			return s.Err()
		})
	}

	if err := grp.Wait(); err != nil {
		return Result{}, fmt.Errorf("search aborted: %w", err)
	}

	result := Result{
		Score:  -Infinity,
		Scores: make([]ChildScore, len(children)),
		Nodes:  nodes.Load(),
	}

	for i, child := range children {
		result.Scores[i] = ChildScore{Move: child.LastMove(), Score: scores[i]}

		if scores[i] >= result.Score {
			result.Score = scores[i]
			result.Move = child.LastMove()
			result.Board = child
		}
	}

	result.Elapsed = time.Since(startTime)
	logStats(board, depth, result)

	return result, nil
}

func logStats(board othello.Board, depth int, result Result) {
	elapsedSeconds := result.Elapsed.Seconds()

	nodesPerSecond := int64(0)
	if elapsedSeconds > 0.000001 {
		nodesPerSecond = int64(float64(result.Nodes) / elapsedSeconds)
	}

	slog.Debug("search finished",
		"board", board.String(),
		"depth", depth,
		"move", result.Move.String(),
		"score", result.Score,
		"nodes", result.Nodes,
		"elapsed", result.Elapsed,
		"nodes_per_second", nodesPerSecond,
	)
}
