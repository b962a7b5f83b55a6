package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/lk16/flippy/negamax/internal/othello"
)

// BoardRequest carries a grid encoding and the player to move.
type BoardRequest struct {
	Grid string `json:"grid"`
	Turn string `json:"turn"`
}

// Board decodes the grid. Turn must be "B", "W" or "?" (inspect only).
func (r *BoardRequest) Board() (othello.Board, error) {
	if len(r.Turn) != 1 {
		return othello.Board{}, fmt.Errorf("turn must be a single character, got %q", r.Turn)
	}

	toMove, err := othello.ParsePlayer(r.Turn[0])
	if err != nil {
		return othello.Board{}, err
	}

	board, err := othello.DecodeGrid(r.Grid, toMove)
	if err != nil {
		return othello.Board{}, err
	}

	return board, nil
}

// AnalyzeRequest represents a request for the best move. A zero depth uses the server default.
type AnalyzeRequest struct {
	BoardRequest

	Depth int `json:"depth"`
}

// Validate checks the depth against the configured maximum.
func (r *AnalyzeRequest) Validate(maxDepth int) error {
	if r.Depth < 0 || r.Depth > maxDepth {
		return fmt.Errorf("depth must be between 0 and %d", maxDepth)
	}
	return nil
}

// Analysis is the result of a best move search.
type Analysis struct {
	ID          uuid.UUID     `json:"id"           db:"id"`
	Board       string        `json:"board"        db:"board"`
	Depth       int           `json:"depth"        db:"depth"`
	Row         int           `json:"row"          db:"move_row"`
	Col         int           `json:"col"          db:"move_col"`
	Move        string        `json:"move"         db:"move"`
	Score       int           `json:"score"        db:"score"`
	ChildMoves  Moves         `json:"child_moves"  db:"child_moves"`
	ChildScores pq.Int64Array `json:"child_scores" db:"child_scores"`
	Nodes       int64         `json:"nodes"        db:"nodes"`
	CreatedAt   time.Time     `json:"created_at"   db:"created_at"`
	Cached      bool          `json:"cached"       db:"-"`
}

// Moves is a slice of square indexes that implements sql.Scanner.
type Moves []int

// Scan implements the sql.Scanner interface for Moves.
func (m *Moves) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into Moves", value)
	}

	if bytes == nil {
		return errors.New("cannot scan nil into Moves")
	}

	// We should have a string that looks like "{1,2,3}"
	s := strings.Trim(string(bytes), "{}")

	if s == "" {
		*m = Moves{}
		return nil
	}

	parts := strings.Split(s, ",")

	moves := make(Moves, len(parts))
	for i, part := range parts {
		move, err := strconv.Atoi(part)
		if err != nil {
			return fmt.Errorf("cannot convert %s to int: %w", part, err)
		}

		if move < 0 || move >= 64 {
			return fmt.Errorf("move %d is not on the board", move)
		}

		moves[i] = move
	}
	*m = moves

	return nil
}

// BoardResponse describes a board for display.
type BoardResponse struct {
	Board  string   `json:"board"`
	ToMove string   `json:"to_move"`
	Lines  []string `json:"lines"`
	Moves  []string `json:"moves"`
	Black  int      `json:"black"`
	White  int      `json:"white"`
	Over   bool     `json:"over"`
	Result string   `json:"result"`
}

// NewBoardResponse builds the display of a board.
func NewBoardResponse(board othello.Board) BoardResponse {
	black, white := board.Tally()

	moves := make([]string, 0, board.MoveCount())
	for sq := range othello.Square(64) {
		if board.CanPlay(sq.Row(), sq.Col()) {
			moves = append(moves, sq.String())
		}
	}

	over := board.ToMove() != othello.Unknown && board.IsOver()

	resp := BoardResponse{
		Board:  board.String(),
		ToMove: board.ToMove().String(),
		Lines:  board.ASCIIArtLines(),
		Moves:  moves,
		Black:  black,
		White:  white,
		Over:   over,
	}

	if over {
		resp.Result = board.Result()
	}

	return resp
}

// StatsResponse holds the number of analyses per depth.
type StatsResponse struct {
	Analyses map[int]int `json:"analyses"`
}

// VersionResponse holds the build revision.
type VersionResponse struct {
	Commit string `json:"commit"`
}
