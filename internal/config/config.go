package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

const (
	defaultDepth    = 6
	defaultMaxDepth = 10
	defaultCacheTTL = time.Hour
)

// ServerConfig holds all configuration values loaded from environment variables.
type ServerConfig struct {
	ServerHost string
	ServerPort string
	Token      string
	Prefork    bool

	// RedisURL and PostgresURL are optional, the server runs without them.
	RedisURL    string
	PostgresURL string

	DefaultDepth int
	MaxDepth     int
	CacheTTL     time.Duration
}

// LoadServerConfig loads configuration from environment variables.
func LoadServerConfig() *ServerConfig {
	cfg := &ServerConfig{
		ServerHost:   getEnvMust("NEGAMAX_SERVER_HOST"),
		ServerPort:   getEnvMust("NEGAMAX_SERVER_PORT"),
		Token:        getEnvMust("NEGAMAX_TOKEN"),
		Prefork:      getEnvMustBool("NEGAMAX_PREFORK"),
		RedisURL:     os.Getenv("NEGAMAX_REDIS_URL"),
		PostgresURL:  os.Getenv("NEGAMAX_POSTGRES_URL"),
		DefaultDepth: getEnvInt("NEGAMAX_DEFAULT_DEPTH", defaultDepth),
		MaxDepth:     getEnvInt("NEGAMAX_MAX_DEPTH", defaultMaxDepth),
		CacheTTL:     getEnvDuration("NEGAMAX_CACHE_TTL", defaultCacheTTL),
	}

	if cfg.DefaultDepth > cfg.MaxDepth {
		slog.Error("Default depth exceeds max depth", "default", cfg.DefaultDepth, "max", cfg.MaxDepth)
		os.Exit(1)
	}

	return cfg
}

// getEnvMust either returns the environment variable or logs a fatal error if it is not set.
func getEnvMust(key string) string {
	value := os.Getenv(key)
	if value == "" {
		slog.Error("Environment variable is not set", "key", key)
		os.Exit(1)
	}
	return value
}

func getEnvMustBool(key string) bool {
	value := getEnvMust(key)

	if value != "true" && value != "false" {
		slog.Error("Cannot load environment variable, it must be \"true\" or \"false\"", "key", key, "value", value)
		os.Exit(1)
	}

	return value == "true"
}

// getEnvInt returns a non-negative integer environment variable, or fallback if it is not set.
func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		slog.Error("Cannot load environment variable, it must be a non-negative integer", "key", key, "value", value)
		os.Exit(1)
	}

	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		slog.Error("Cannot load environment variable, it must be a duration", "key", key, "value", value)
		os.Exit(1)
	}

	return d
}

// ClientConfig holds the connection details of a remote analysis server.
type ClientConfig struct {
	ServerURL string
	Token     string
}

// LoadClientConfig loads the client configuration from environment variables.
func LoadClientConfig() *ClientConfig {
	return &ClientConfig{
		ServerURL: getEnvMust("NEGAMAX_SERVER_URL"),
		Token:     getEnvMust("NEGAMAX_TOKEN"),
	}
}
