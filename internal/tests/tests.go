package tests

import (
	"net"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/flippy/negamax/internal"
	"github.com/lk16/flippy/negamax/internal/config"
	"github.com/lk16/flippy/negamax/internal/services"
	"github.com/stretchr/testify/require"
)

const (
	TestToken = "test-token"

	// StartGrid is the starting position in grid encoding.
	StartGrid = "---------------------------WB------BW---------------------------"
)

// NewTestApp builds an app without Redis and Postgres.
func NewTestApp() *fiber.App {
	return internal.BuildApp(testConfig(), &services.Services{})
}

func testConfig() *config.ServerConfig {
	return &config.ServerConfig{
		ServerHost:   "localhost",
		ServerPort:   "3000",
		Token:        TestToken,
		DefaultDepth: 2,
		MaxDepth:     4,
		CacheTTL:     time.Minute,
	}
}

// Serve serves app on a random local port until the test ends and returns its address.
func Serve(t *testing.T, app *fiber.App) string {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	go func() {
		_ = app.Listener(listener)
	}()

	t.Cleanup(func() {
		_ = app.Shutdown()
	})

	return listener.Addr().String()
}
