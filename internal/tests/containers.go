package tests

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/flippy/negamax/internal"
	"github.com/lk16/flippy/negamax/internal/config"
	"github.com/lk16/flippy/negamax/internal/services"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	postgresUser     = "pg-test-user"
	postgresPassword = "pg-test-password"
	postgresDB       = "pg-test-db"
)

// Backends holds the URLs of throwaway Postgres and Redis containers.
type Backends struct {
	PostgresURL string
	RedisURL    string
}

// StartBackends starts Postgres and Redis containers that live until the test ends.
// The test is skipped in short mode or when Docker is not available.
func StartBackends(t *testing.T) Backends {
	t.Helper()

	if testing.Short() {
		t.Skip("container tests are skipped in short mode")
	}

	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()

	postgres := startContainer(ctx, t, testcontainers.ContainerRequest{
		Image:        "postgres:16",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     postgresUser,
			"POSTGRES_PASSWORD": postgresPassword,
			"POSTGRES_DB":       postgresDB,
		},
		// The first message comes from the init run, before the server restarts.
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(time.Minute),
	})

	redis := startContainer(ctx, t, testcontainers.ContainerRequest{
		Image:        "redis:7",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections"),
	})

	postgresEndpoint, err := postgres.PortEndpoint(ctx, "5432/tcp", "")
	require.NoError(t, err)

	redisEndpoint, err := redis.PortEndpoint(ctx, "6379/tcp", "")
	require.NoError(t, err)

	return Backends{
		PostgresURL: fmt.Sprintf(
			"postgres://%s:%s@%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresEndpoint, postgresDB,
		),
		RedisURL: "redis://" + redisEndpoint,
	}
}

func startContainer(ctx context.Context, t *testing.T, req testcontainers.ContainerRequest) testcontainers.Container {
	t.Helper()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})

	t.Cleanup(func() {
		if container != nil {
			_ = container.Terminate(context.Background())
		}
	})

	require.NoError(t, err)
	return container
}

// StartServices connects to fresh Postgres and Redis containers.
func StartServices(t *testing.T) *services.Services {
	t.Helper()

	backends := StartBackends(t)

	svc, err := services.InitServices(&config.ServerConfig{
		PostgresURL: backends.PostgresURL,
		RedisURL:    backends.RedisURL,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = svc.Close()
	})

	return svc
}

// NewTestAppWithServices builds an app backed by fresh Postgres and Redis containers.
func NewTestAppWithServices(t *testing.T) *fiber.App {
	t.Helper()

	return internal.BuildApp(testConfig(), StartServices(t))
}
