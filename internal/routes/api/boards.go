package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/flippy/negamax/internal/models"
)

// ShowBoard describes a board: its grid, legal moves and score.
func ShowBoard(c *fiber.Ctx) error {
	var payload models.BoardRequest
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	board, err := payload.Board()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(models.NewBoardResponse(board))
}
