package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/lk16/flippy/negamax/internal/models"
	"github.com/lk16/flippy/negamax/internal/othello"
	"github.com/lk16/flippy/negamax/internal/services"
	"github.com/redis/go-redis/v9"
)

const (
	analysisKeyPrefix = "analysis"
	statsKey          = "analysis_stats"
)

// ErrAnalysisNotFound is returned by Get when no analysis has the requested ID, or when Postgres is not configured.
var ErrAnalysisNotFound = errors.New("analysis not found")

// AnalysisRepository stores analyses in Postgres and caches them in Redis.
// Missing services are skipped.
type AnalysisRepository struct {
	services *services.Services
	cacheTTL time.Duration
}

// NewAnalysisRepository creates a new AnalysisRepository.
func NewAnalysisRepository(services *services.Services, cacheTTL time.Duration) *AnalysisRepository {
	return &AnalysisRepository{
		services: services,
		cacheTTL: cacheTTL,
	}
}

// CacheKey returns the Redis key for the analysis of board at depth.
// Whether the previous ply was a pass changes the search result, so it is part of the key.
func CacheKey(board othello.Board, depth int) string {
	passed := board.LastMove() == othello.NoMove
	return fmt.Sprintf("%s:%s:%t:%d", analysisKeyPrefix, board.String(), passed, depth)
}

// LookupCached returns a cached analysis, if any.
func (repo *AnalysisRepository) LookupCached(
	ctx context.Context,
	board othello.Board,
	depth int,
) (models.Analysis, bool, error) {
	redisConn := repo.services.Redis
	if redisConn == nil {
		return models.Analysis{}, false, nil
	}

	jsonData, err := redisConn.Get(ctx, CacheKey(board, depth)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Analysis{}, false, nil
	}

	if err != nil {
		return models.Analysis{}, false, fmt.Errorf("error getting cached analysis: %w", err)
	}

	var analysis models.Analysis
	if err = json.Unmarshal(jsonData, &analysis); err != nil {
		return models.Analysis{}, false, fmt.Errorf("error unmarshaling cached analysis: %w", err)
	}

	analysis.Cached = true
	return analysis, true, nil
}

// Cache stores an analysis in Redis and updates the per-depth statistics.
func (repo *AnalysisRepository) Cache(ctx context.Context, board othello.Board, analysis models.Analysis) error {
	redisConn := repo.services.Redis
	if redisConn == nil {
		return nil
	}

	jsonData, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("error marshaling analysis: %w", err)
	}

	pipe := redisConn.Pipeline()
	pipe.Set(ctx, CacheKey(board, analysis.Depth), jsonData, repo.cacheTTL)
	pipe.HIncrBy(ctx, statsKey, strconv.Itoa(analysis.Depth), 1)

	if _, err = pipe.Exec(ctx); err != nil {
		return fmt.Errorf("error caching analysis: %w", err)
	}

	return nil
}

// Save stores an analysis in Postgres.
func (repo *AnalysisRepository) Save(ctx context.Context, analysis models.Analysis) error {
	pgConn := repo.services.Postgres
	if pgConn == nil {
		return nil
	}

	query := `
		INSERT INTO analyses (
			id, board, depth, move_row, move_col, move, score, child_moves, child_scores, nodes, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := pgConn.ExecContext(ctx, query,
		analysis.ID,
		analysis.Board,
		analysis.Depth,
		analysis.Row,
		analysis.Col,
		analysis.Move,
		analysis.Score,
		pq.Array([]int(analysis.ChildMoves)),
		analysis.ChildScores,
		analysis.Nodes,
		analysis.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error saving analysis: %w", err)
	}

	return nil
}

// Get loads an analysis from Postgres.
func (repo *AnalysisRepository) Get(ctx context.Context, id uuid.UUID) (models.Analysis, error) {
	pgConn := repo.services.Postgres
	if pgConn == nil {
		return models.Analysis{}, ErrAnalysisNotFound
	}

	query := `
		SELECT id, board, depth, move_row, move_col, move, score, child_moves, child_scores, nodes, created_at
		FROM analyses
		WHERE id = $1
	`

	var analysis models.Analysis
	err := pgConn.GetContext(ctx, &analysis, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Analysis{}, ErrAnalysisNotFound
	}

	if err != nil {
		return models.Analysis{}, fmt.Errorf("error getting analysis: %w", err)
	}

	return analysis, nil
}

// GetStats returns the number of analyses per depth.
func (repo *AnalysisRepository) GetStats(ctx context.Context) (models.StatsResponse, error) {
	stats := models.StatsResponse{Analyses: make(map[int]int)}

	redisConn := repo.services.Redis
	if redisConn == nil {
		return stats, nil
	}

	values, err := redisConn.HGetAll(ctx, statsKey).Result()
	if err != nil {
		return models.StatsResponse{}, fmt.Errorf("error getting stats from Redis: %w", err)
	}

	for key, value := range values {
		depth, err := strconv.Atoi(key)
		if err != nil {
			return models.StatsResponse{}, fmt.Errorf("error parsing stats key: %w", err)
		}

		count, err := strconv.Atoi(value)
		if err != nil {
			return models.StatsResponse{}, fmt.Errorf("error parsing stats value: %w", err)
		}

		stats.Analyses[depth] = count
	}

	return stats, nil
}
