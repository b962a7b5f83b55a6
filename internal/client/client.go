package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lk16/flippy/negamax/internal/config"
	"github.com/lk16/flippy/negamax/internal/middleware"
	"github.com/lk16/flippy/negamax/internal/models"
	"github.com/lk16/flippy/negamax/internal/othello"
)

const (
	clientTimeout = 2 * time.Minute
)

var (
	ErrUnauthorized = errors.New("server rejected token")
	ErrNotFound     = errors.New("not found on server")
)

// StatusError is returned for unexpected response status codes.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned status %d: %s", e.StatusCode, e.Message)
}

// APIClient talks to a remote analysis server.
type APIClient struct {
	// config contains details on how to connect to the server
	config *config.ClientConfig

	httpClient *http.Client
}

func NewAPIClient(config *config.ClientConfig) *APIClient {
	return &APIClient{
		config: config,
		httpClient: &http.Client{
			Timeout: clientTimeout,
		},
	}
}

func (c *APIClient) logRequestAsCurl(request *http.Request, body []byte) {
	// Do not build string if we're not logging it
	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		return
	}

	var builder strings.Builder
	builder.WriteString("curl -X ")
	builder.WriteString(request.Method)
	builder.WriteString(" '")
	builder.WriteString(request.URL.String())
	builder.WriteString("'")

	for key, values := range request.Header {
		for _, value := range values {
			if strings.EqualFold(key, middleware.TokenHeader) {
				value = "***"
			}

			builder.WriteString(" -H '")
			builder.WriteString(strings.ToLower(key))
			builder.WriteString(": ")
			builder.WriteString(value)
			builder.WriteString("'")
		}
	}

	if len(body) > 0 {
		builder.WriteString(" -d '")
		builder.WriteString(strings.ReplaceAll(string(body), "'", "'\\''"))
		builder.WriteString("'")
	}

	slog.Debug("Sending request", "curl", builder.String())
}

func (c *APIClient) request(ctx context.Context, method string, path string, payload any, out any) error {
	var body []byte

	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode payload: %w", err)
		}
	}

	request, err := http.NewRequestWithContext(ctx, method, c.config.ServerURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	request.Header.Set(middleware.TokenHeader, c.config.Token)

	c.logRequestAsCurl(request, body)

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	slog.Debug("Received response", "status", response.Status, "body", string(responseBody))

	switch {
	case response.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case response.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case response.StatusCode < 200 || response.StatusCode >= 300:
		return &StatusError{StatusCode: response.StatusCode, Message: errorMessage(responseBody)}
	}

	if err = json.Unmarshal(responseBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// errorMessage extracts the "error" field the server sets on failures.
func errorMessage(body []byte) string {
	var parsed struct {
		Error string `json:"error"`
	}

	if err := json.Unmarshal(body, &parsed); err != nil || parsed.Error == "" {
		return strings.TrimSpace(string(body))
	}

	return parsed.Error
}

func boardRequest(board othello.Board) models.BoardRequest {
	return models.BoardRequest{
		Grid: othello.EncodeGrid(board),
		Turn: string(board.ToMove().Byte()),
	}
}

// Analyze asks the server for the best move. A zero depth uses the server default.
func (c *APIClient) Analyze(ctx context.Context, board othello.Board, depth int) (models.Analysis, error) {
	payload := models.AnalyzeRequest{
		BoardRequest: boardRequest(board),
		Depth:        depth,
	}

	var analysis models.Analysis
	if err := c.request(ctx, http.MethodPost, "/api/analyze", payload, &analysis); err != nil {
		return models.Analysis{}, fmt.Errorf("failed to analyze board: %w", err)
	}

	return analysis, nil
}

func (c *APIClient) GetAnalysis(ctx context.Context, id uuid.UUID) (models.Analysis, error) {
	var analysis models.Analysis
	if err := c.request(ctx, http.MethodGet, "/api/analyses/"+id.String(), nil, &analysis); err != nil {
		return models.Analysis{}, fmt.Errorf("failed to get analysis: %w", err)
	}

	return analysis, nil
}

func (c *APIClient) ShowBoard(ctx context.Context, board othello.Board) (models.BoardResponse, error) {
	var resp models.BoardResponse
	if err := c.request(ctx, http.MethodPost, "/api/board", boardRequest(board), &resp); err != nil {
		return models.BoardResponse{}, fmt.Errorf("failed to show board: %w", err)
	}

	return resp, nil
}

func (c *APIClient) GetStats(ctx context.Context) (models.StatsResponse, error) {
	var stats models.StatsResponse
	if err := c.request(ctx, http.MethodGet, "/api/stats", nil, &stats); err != nil {
		return models.StatsResponse{}, fmt.Errorf("failed to get stats: %w", err)
	}

	return stats, nil
}
