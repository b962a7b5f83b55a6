package services

import (
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/lk16/flippy/negamax/internal/config"
	"github.com/redis/go-redis/v9"
)

// Services contains the connections to the external services.
// Both are optional: a nil connection means the service is not configured.
type Services struct {
	Postgres *sqlx.DB
	Redis    *redis.Client
}

// InitServices connects to every service that has a URL configured.
func InitServices(cfg *config.ServerConfig) (*Services, error) {
	services := &Services{}

	if cfg.PostgresURL != "" {
		postgres, err := InitPostgres(cfg.PostgresURL)
		if err != nil {
			return nil, err
		}
		services.Postgres = postgres
	} else {
		slog.Warn("Postgres is not configured, analyses will not be stored")
	}

	if cfg.RedisURL != "" {
		redis, err := InitRedis(cfg.RedisURL)
		if err != nil {
			if closeErr := services.Close(); closeErr != nil {
				slog.Error("Failed to close services", "error", closeErr)
			}
			return nil, err
		}
		services.Redis = redis
	} else {
		slog.Warn("Redis is not configured, analyses will not be cached")
	}

	return services, nil
}

// Close closes all open connections. Closed connections are reset to nil, so calling
// Close again is a no-op.
func (s *Services) Close() error {
	if s.Postgres != nil {
		if err := s.Postgres.Close(); err != nil {
			return fmt.Errorf("error closing Postgres: %w", err)
		}
		s.Postgres = nil
	}

	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			return fmt.Errorf("error closing Redis: %w", err)
		}
		s.Redis = nil
	}

	return nil
}
