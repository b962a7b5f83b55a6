package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/lk16/flippy/negamax/internal/analysis"
	"github.com/lk16/flippy/negamax/internal/config"
	"github.com/lk16/flippy/negamax/internal/models"
	"github.com/lk16/flippy/negamax/internal/repository"
	"github.com/lk16/flippy/negamax/internal/services"
	"github.com/stretchr/testify/require"
)

const startGrid = "---------------------------WB------BW---------------------------"

func newTestHandler() *Handler {
	cfg := &config.ServerConfig{DefaultDepth: 1, MaxDepth: 4, CacheTTL: time.Minute}
	repo := repository.NewAnalysisRepository(&services.Services{}, cfg.CacheTTL)
	return NewHandler(nil, analysis.NewAnalyzer(repo, 1), cfg)
}

func analyzeMessage(t *testing.T, id int, req models.AnalyzeRequest) *Incoming {
	t.Helper()

	data, err := json.Marshal(req)
	require.NoError(t, err)

	return &Incoming{Event: "analyze_request", ID: id, Data: data}
}

func TestHandleMessageErrors(t *testing.T) {
	h := newTestHandler()

	_, err := h.handleMessage(context.Background(), &Incoming{})
	require.Error(t, err)

	_, err = h.handleMessage(context.Background(), &Incoming{Event: "evaluation_request"})
	require.ErrorContains(t, err, "unknown event")

	_, err = h.handleMessage(context.Background(), &Incoming{Event: "analyze_request", Data: []byte("[")})
	require.Error(t, err)
}

func TestHandleAnalyzeRequest(t *testing.T) {
	tests := []struct {
		name      string
		req       models.AnalyzeRequest
		wantError bool
		wantMove  string
	}{
		{
			name:     "default depth",
			req:      models.AnalyzeRequest{BoardRequest: models.BoardRequest{Grid: startGrid, Turn: "B"}},
			wantMove: "e6",
		},
		{
			name:      "too deep",
			req:       models.AnalyzeRequest{BoardRequest: models.BoardRequest{Grid: startGrid, Turn: "B"}, Depth: 5},
			wantError: true,
		},
		{
			name:      "inspect only",
			req:       models.AnalyzeRequest{BoardRequest: models.BoardRequest{Grid: startGrid, Turn: "?"}},
			wantError: true,
		},
		{
			name:      "invalid grid",
			req:       models.AnalyzeRequest{BoardRequest: models.BoardRequest{Grid: "BW", Turn: "B"}},
			wantError: true,
		},
	}

	h := newTestHandler()

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outgoing, err := h.handleMessage(context.Background(), analyzeMessage(t, i, tt.req))
			require.NoError(t, err)
			require.Equal(t, i, outgoing.ID)

			if tt.wantError {
				require.NotEmpty(t, outgoing.Error)
				require.Nil(t, outgoing.Data)
				return
			}

			require.Empty(t, outgoing.Error)
			resp, ok := outgoing.Data.(AnalyzeResponse)
			require.True(t, ok)
			require.Equal(t, tt.wantMove, resp.Analysis.Move)
			require.Equal(t, 1, resp.Analysis.Depth)
		})
	}
}

func TestHandleAnalyzeRequestCancelled(t *testing.T) {
	h := newTestHandler()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := models.AnalyzeRequest{BoardRequest: models.BoardRequest{Grid: startGrid, Turn: "B"}, Depth: 4}
	outgoing, err := h.handleMessage(ctx, analyzeMessage(t, 7, req))
	require.NoError(t, err)
	require.Equal(t, 7, outgoing.ID)
	require.Contains(t, outgoing.Error, context.Canceled.Error())
	require.Nil(t, outgoing.Data)
}
