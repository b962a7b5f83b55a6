package ws

import (
	"encoding/json"

	"github.com/lk16/flippy/negamax/internal/models"
)

type Incoming struct {
	Event string          `json:"event"`
	ID    int             `json:"id"`
	Data  json.RawMessage `json:"data"`
}

// Outgoing answers the Incoming message with the same ID. Error is set when the request could not be served.
type Outgoing struct {
	ID    int    `json:"id"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

type AnalyzeResponse struct {
	Analysis models.Analysis `json:"analysis"`
}
