package analysis

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/lk16/flippy/negamax/internal/models"
	"github.com/lk16/flippy/negamax/internal/othello"
	"github.com/lk16/flippy/negamax/internal/repository"
	"github.com/lk16/flippy/negamax/internal/search"
	"github.com/lk16/flippy/negamax/internal/services"
	"github.com/stretchr/testify/require"
)

func newTestAnalyzer() *Analyzer {
	repo := repository.NewAnalysisRepository(&services.Services{}, time.Minute)
	return NewAnalyzer(repo, 2)
}

func TestAnalyzeOpening(t *testing.T) {
	analysis, err := newTestAnalyzer().Analyze(context.Background(), othello.NewBoardStart(), 1)
	require.NoError(t, err)

	require.NotEqual(t, uuid.Nil, analysis.ID)
	require.Equal(t, othello.NewBoardStart().String(), analysis.Board)
	require.Equal(t, 1, analysis.Depth)
	require.Equal(t, 5, analysis.Row)
	require.Equal(t, 4, analysis.Col)
	require.Equal(t, "e6", analysis.Move)
	require.Equal(t, 9, analysis.Score)
	require.Equal(t, models.Moves{19, 26, 37, 44}, analysis.ChildMoves)
	require.Equal(t, pq.Int64Array{9, 9, 9, 9}, analysis.ChildScores)
	require.False(t, analysis.Cached)
}

func TestAnalyzeClampsDepth(t *testing.T) {
	analysis, err := newTestAnalyzer().Analyze(context.Background(), othello.NewBoardStart(), 0)
	require.NoError(t, err)
	require.Equal(t, 1, analysis.Depth)
}

func TestAnalyzeErrors(t *testing.T) {
	analyzer := newTestAnalyzer()

	stuck := othello.NewBoardMust(0xFFFFFFFFFFFFFFFE, 0x1, othello.Black)
	_, err := analyzer.Analyze(context.Background(), stuck, 3)
	require.ErrorIs(t, err, search.ErrNoMoves)

	inspect := othello.NewBoardMust(0, 0, othello.Unknown)
	_, err = analyzer.Analyze(context.Background(), inspect, 3)
	require.ErrorIs(t, err, search.ErrNoMover)
}

func TestNewAnalysisCreatedAtPrecision(t *testing.T) {
	result, err := search.BestMove(context.Background(), othello.NewBoardStart(), 1)
	require.NoError(t, err)

	analysis := NewAnalysis(othello.NewBoardStart(), 1, result)
	require.Equal(t, analysis.CreatedAt, analysis.CreatedAt.Truncate(time.Microsecond))
	require.Equal(t, time.UTC, analysis.CreatedAt.Location())
}
