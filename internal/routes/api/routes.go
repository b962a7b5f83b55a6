package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/flippy/negamax/internal/middleware"
)

// SetupRoutes sets up the API routes.
func SetupRoutes(app *fiber.App) {
	apiGroup := app.Group("/api", middleware.Token())

	// Analysis routes
	apiGroup.Post("/analyze", Analyze)
	apiGroup.Get("/analyses/:id", GetAnalysis)
	apiGroup.Get("/stats", GetStats)

	// Board routes
	apiGroup.Post("/board", ShowBoard)
}
