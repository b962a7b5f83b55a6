package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lk16/flippy/negamax/internal/analysis"
	"github.com/lk16/flippy/negamax/internal/config"
	"github.com/lk16/flippy/negamax/internal/models"
	"github.com/lk16/flippy/negamax/internal/repository"
	"github.com/lk16/flippy/negamax/internal/search"
	"github.com/lk16/flippy/negamax/internal/services"
)

// Analyze handles best move requests.
func Analyze(c *fiber.Ctx) error {
	cfg := c.Locals("config").(*config.ServerConfig)      //nolint: errcheck
	analyzer := c.Locals("analyzer").(*analysis.Analyzer) //nolint: errcheck

	var payload models.AnalyzeRequest
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := payload.Validate(cfg.MaxDepth); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	board, err := payload.Board()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	depth := payload.Depth
	if depth == 0 {
		depth = cfg.DefaultDepth
	}

	result, err := analyzer.Analyze(c.Context(), board, depth)
	if errors.Is(err, search.ErrNoMoves) || errors.Is(err, search.ErrNoMover) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// GetAnalysis returns a stored analysis by ID.
func GetAnalysis(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid analysis ID",
		})
	}

	repo := newAnalysisRepository(c)
	result, err := repo.Get(c.Context(), id)
	if errors.Is(err, repository.ErrAnalysisNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// GetStats returns the number of cached analyses per depth.
func GetStats(c *fiber.Ctx) error {
	repo := newAnalysisRepository(c)
	stats, err := repo.GetStats(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}

func newAnalysisRepository(c *fiber.Ctx) *repository.AnalysisRepository {
	cfg := c.Locals("config").(*config.ServerConfig)      //nolint: errcheck
	services := c.Locals("services").(*services.Services) //nolint: errcheck
	return repository.NewAnalysisRepository(services, cfg.CacheTTL)
}
