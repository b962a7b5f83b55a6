package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lk16/flippy/negamax/internal/config"
	"github.com/lk16/flippy/negamax/internal/services"
	"github.com/lk16/flippy/negamax/internal/tests"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestCloseWithoutConnections(t *testing.T) {
	svc := &services.Services{}
	require.NoError(t, svc.Close())
	require.NoError(t, svc.Close())
}

func TestInitServices(t *testing.T) {
	backends := tests.StartBackends(t)

	svc, err := services.InitServices(&config.ServerConfig{
		PostgresURL: backends.PostgresURL,
		RedisURL:    backends.RedisURL,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Postgres.Ping())
	redisClient := svc.Redis
	require.NoError(t, redisClient.Ping(context.Background()).Err())

	require.NoError(t, svc.Close())
	require.Nil(t, svc.Postgres)
	require.Nil(t, svc.Redis)
	require.ErrorIs(t, redisClient.Ping(context.Background()).Err(), redis.ErrClosed)

	require.NoError(t, svc.Close())
}

func TestInitServicesClosesPostgresOnRedisFailure(t *testing.T) {
	backends := tests.StartBackends(t)

	const appName = "negamax-init"

	_, err := services.InitServices(&config.ServerConfig{
		PostgresURL: backends.PostgresURL + "&application_name=" + appName,
		RedisURL:    "redis://127.0.0.1:1",
	})
	require.Error(t, err)

	observer, err := sqlx.Connect("postgres", backends.PostgresURL)
	require.NoError(t, err)
	defer observer.Close()

	require.Eventually(t, func() bool {
		var open int
		err := observer.Get(&open, "SELECT count(*) FROM pg_stat_activity WHERE application_name = $1", appName)
		return err == nil && open == 0
	}, 5*time.Second, 50*time.Millisecond)
}
