package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/lk16/flippy/negamax/internal/analysis"
	"github.com/lk16/flippy/negamax/internal/config"
	"github.com/lk16/flippy/negamax/internal/models"
)

const (
	analyzeTimeout = 30 * time.Second
)

type Handler struct {
	analyzer *analysis.Analyzer
	cfg      *config.ServerConfig
	ws       *websocket.Conn
}

// NewHandler creates a new Handler.
func NewHandler(ws *websocket.Conn, analyzer *analysis.Analyzer, cfg *config.ServerConfig) *Handler {
	return &Handler{analyzer: analyzer, cfg: cfg, ws: ws}
}

func (h *Handler) readMessage() (*Incoming, error) {
	var req Incoming

	msgType, msg, err := h.ws.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("ws read error: %w", err)
	}

	slog.Debug("read ws message", "msgType", msgType, "msg", msg)

	if msgType != websocket.TextMessage {
		return nil, fmt.Errorf("unexpected message type: %d", msgType)
	}

	if err = json.Unmarshal(msg, &req); err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	return &req, nil
}

func (h *Handler) writeMessage(outgoing *Outgoing) error {
	msg, err := json.Marshal(outgoing)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	slog.Debug("write ws message", "msg", string(msg))

	if err = h.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
		return fmt.Errorf("write error: %w", err)
	}

	return nil
}

func (h *Handler) handleMessage(ctx context.Context, req *Incoming) (*Outgoing, error) {
	if req.Event == "" {
		return nil, errors.New("event field is either empty or missing")
	}

	switch req.Event {
	case "analyze_request":
		return h.handleAnalyzeRequest(ctx, req)
	default:
		return nil, fmt.Errorf("unknown event: %s", req.Event)
	}
}

// Handle handles the websocket connection. Requests are served one at a time, a search
// in progress is cancelled when the connection is closed.
func (h *Handler) Handle() error {
	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)

	requests := make(chan *Incoming)
	go h.readLoop(ctx, cancel, requests)

	for {
		var req *Incoming
		select {
		case <-ctx.Done():
			return context.Cause(ctx)
		case req = <-requests:
		}

		respData, err := h.handleMessage(ctx, req)
		if err != nil {
			return fmt.Errorf("ws handle error: %w", err)
		}

		if err = h.writeMessage(respData); err != nil {
			return fmt.Errorf("ws write error: %w", err)
		}
	}
}

// readLoop keeps reading while a request is served, so a closed connection is noticed.
func (h *Handler) readLoop(ctx context.Context, cancel context.CancelCauseFunc, requests chan<- *Incoming) {
	for {
		req, err := h.readMessage()
		if err != nil {
			cancel(fmt.Errorf("ws read error: %w", err))
			return
		}

		select {
		case requests <- req:
		case <-ctx.Done():
			return
		}
	}
}

// handleAnalyzeRequest reports invalid boards to the client instead of closing the connection.
func (h *Handler) handleAnalyzeRequest(ctx context.Context, req *Incoming) (*Outgoing, error) {
	var reqData models.AnalyzeRequest
	if err := json.Unmarshal(req.Data, &reqData); err != nil {
		return nil, fmt.Errorf("ws analyze request unmarshal error: %w", err)
	}

	if err := reqData.Validate(h.cfg.MaxDepth); err != nil {
		return &Outgoing{ID: req.ID, Error: err.Error()}, nil
	}

	board, err := reqData.Board()
	if err != nil {
		return &Outgoing{ID: req.ID, Error: err.Error()}, nil
	}

	depth := reqData.Depth
	if depth == 0 {
		depth = h.cfg.DefaultDepth
	}

	ctx, cancel := context.WithTimeout(ctx, analyzeTimeout)
	defer cancel()

	result, err := h.analyzer.Analyze(ctx, board, depth)
	if err != nil {
		return &Outgoing{ID: req.ID, Error: err.Error()}, nil
	}

	outgoing := &Outgoing{
		ID: req.ID,
		Data: AnalyzeResponse{
			Analysis: result,
		},
	}

	return outgoing, nil
}
