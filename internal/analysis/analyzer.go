package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lk16/flippy/negamax/internal/models"
	"github.com/lk16/flippy/negamax/internal/othello"
	"github.com/lk16/flippy/negamax/internal/repository"
	"github.com/lk16/flippy/negamax/internal/search"
)

// Analyzer finds best moves, reusing cached analyses when possible.
type Analyzer struct {
	repo    *repository.AnalysisRepository
	workers int
}

// NewAnalyzer creates a new Analyzer. Workers limits the concurrent root searches per analysis.
func NewAnalyzer(repo *repository.AnalysisRepository, workers int) *Analyzer {
	return &Analyzer{
		repo:    repo,
		workers: workers,
	}
}

// Analyze returns the best move for board. Depth below 1 is treated as 1.
func (a *Analyzer) Analyze(ctx context.Context, board othello.Board, depth int) (models.Analysis, error) {
	depth = max(depth, 1)

	cached, found, err := a.repo.LookupCached(ctx, board, depth)
	if err != nil {
		slog.Warn("Failed to lookup cached analysis", "error", err)
	} else if found {
		return cached, nil
	}

	result, err := search.BestMove(ctx, board, depth, search.WithWorkers(a.workers))
	if err != nil {
		return models.Analysis{}, err
	}

	analysis := NewAnalysis(board, depth, result)

	if err = a.repo.Save(ctx, analysis); err != nil {
		return models.Analysis{}, fmt.Errorf("failed to save analysis: %w", err)
	}

	if err = a.repo.Cache(ctx, board, analysis); err != nil {
		slog.Warn("Failed to cache analysis", "error", err)
	}

	return analysis, nil
}

// NewAnalysis converts a search result into an Analysis with a fresh ID.
// CreatedAt has microsecond precision, so it survives a round trip through Postgres.
func NewAnalysis(board othello.Board, depth int, result search.Result) models.Analysis {
	childMoves := make(models.Moves, len(result.Scores))
	childScores := make([]int64, len(result.Scores))
	for i, childScore := range result.Scores {
		childMoves[i] = int(childScore.Move)
		childScores[i] = int64(childScore.Score)
	}

	return models.Analysis{
		ID:          uuid.New(),
		Board:       board.String(),
		Depth:       depth,
		Row:         result.Move.Row(),
		Col:         result.Move.Col(),
		Move:        result.Move.String(),
		Score:       result.Score,
		ChildMoves:  childMoves,
		ChildScores: childScores,
		Nodes:       int64(result.Nodes), //nolint:gosec
		CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}
}
