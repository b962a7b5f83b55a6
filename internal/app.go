package internal

import (
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/flippy/negamax/internal/analysis"
	"github.com/lk16/flippy/negamax/internal/config"
	"github.com/lk16/flippy/negamax/internal/middleware"
	"github.com/lk16/flippy/negamax/internal/repository"
	"github.com/lk16/flippy/negamax/internal/routes"
	"github.com/lk16/flippy/negamax/internal/services"
)

const (
	defaultConcurrency  = 256 * 1024 // Maximum number of concurrent connections per worker
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 60 * time.Second // Deep searches take a while
	defaultIdleTimeout  = 5 * time.Second
	defaultBodyLimit    = 64 * 1024
)

// BuildApp creates the Fiber app for the given configuration and services.
func BuildApp(cfg *config.ServerConfig, services *services.Services) *fiber.App {
	app := fiber.New(fiber.Config{
		Prefork:      cfg.Prefork,
		Concurrency:  defaultConcurrency,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
		BodyLimit:    defaultBodyLimit,
	})

	repo := repository.NewAnalysisRepository(services, cfg.CacheTTL)
	analyzer := analysis.NewAnalyzer(repo, runtime.GOMAXPROCS(0))

	// Setup connections to external services and config in Fiber app
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("services", services)
		c.Locals("config", cfg)
		c.Locals("analyzer", analyzer)
		return c.Next()
	})

	// Add request ID and logging middleware
	app.Use(middleware.RequestID())
	app.Use(middleware.Logging())

	// Setup all routes
	routes.SetupRoutes(app)

	return app
}

func SetupApp() (*fiber.App, *config.ServerConfig) {
	// Load configuration
	cfg := config.LoadServerConfig()

	// Initialize services
	services, err := services.InitServices(cfg)
	if err != nil {
		slog.Error("Failed to initialize services", "error", err)
		os.Exit(1)
	}

	app := BuildApp(cfg, services)
	CloseOnShutdown(app, services)

	return app, cfg
}

// CloseOnShutdown closes the service connections once the app shuts down.
func CloseOnShutdown(app *fiber.App, services *services.Services) {
	app.Hooks().OnShutdown(func() error {
		slog.Info("Closing service connections")
		return services.Close()
	})
}
