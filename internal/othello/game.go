package othello

import (
	"fmt"
	"strings"
)

// Game represents an Othello game, either complete or in progress.
type Game struct {
	// moves is the list of moves in the game. Passes are stored as NoMove and added automatically.
	moves []Square

	// start is the board before any move is played.
	start Board

	// board is the board after all moves.
	board Board
}

// NewGameWithStart creates a new empty game with a custom start board.
func NewGameWithStart(start Board) *Game {
	start.mustHaveMover()

	g := &Game{
		moves: make([]Square, 0),
		start: start,
		board: start,
	}
	g.passIfStuck()
	return g
}

// NewGame creates a new game from the starting position.
func NewGame() *Game {
	return NewGameWithStart(NewBoardStart())
}

// NewGameFromMoves creates a new game from a list of moves. Passes may be omitted.
func NewGameFromMoves(moves []Square) (*Game, error) {
	game := NewGame()

	for _, move := range moves {
		if move == NoMove {
			continue
		}

		if err := game.PushMove(move); err != nil {
			return nil, fmt.Errorf("failed to push move: %w", err)
		}
	}

	return game, nil
}

// NewGameFromTranscript creates a game from concatenated field notation, e.g. "f5d6c3".
func NewGameFromTranscript(transcript string) (*Game, error) {
	transcript = strings.Join(strings.Fields(transcript), "")

	if len(transcript)%2 != 0 {
		return nil, fmt.Errorf("transcript length must be even, got %d", len(transcript))
	}

	moves := make([]Square, 0, len(transcript)/2)
	for i := 0; i < len(transcript); i += 2 {
		move, err := ParseSquare(transcript[i : i+2])
		if err != nil {
			return nil, fmt.Errorf("failed to parse move %d: %w", i/2+1, err)
		}
		moves = append(moves, move)
	}

	return NewGameFromMoves(moves)
}

// Board returns the current board.
func (g *Game) Board() Board {
	return g.board
}

// Start returns the board before the first move.
func (g *Game) Start() Board {
	return g.start
}

// Moves returns a copy of the moves played so far, including passes.
func (g *Game) Moves() []Square {
	return append([]Square(nil), g.moves...)
}

// IsOver checks whether neither player can move.
func (g *Game) IsOver() bool {
	return !g.board.HasMoves()
}

// PushMove plays a move. A pass is added automatically when the next player has
// no moves but the opponent does.
func (g *Game) PushMove(move Square) error {
	if move < 0 || move >= 64 || g.board.Moves()&move.bit() == 0 {
		return fmt.Errorf("invalid move: %s", move)
	}

	g.board = g.board.play(move)
	g.moves = append(g.moves, move)
	g.passIfStuck()

	return nil
}

func (g *Game) passIfStuck() {
	if g.board.HasMoves() {
		return
	}

	passed := g.board.Pass()
	if passed.HasMoves() {
		g.board = passed
		g.moves = append(g.moves, NoMove)
	}
}

// PopMove undoes the last move, together with a pass that followed it.
func (g *Game) PopMove() {
	if len(g.moves) == 0 {
		return
	}

	popped := 1
	if g.moves[len(g.moves)-1] == NoMove {
		// A pass at the very start belongs to the start board.
		if len(g.moves) == 1 {
			return
		}
		popped = 2
	}

	g.moves = g.moves[:len(g.moves)-popped]

	g.board = g.start
	for _, move := range g.moves {
		if move == NoMove {
			g.board = g.board.Pass()
			continue
		}
		g.board = g.board.play(move)
	}
}

// Transcript returns the moves in field notation, skipping passes.
func (g *Game) Transcript() string {
	var sb strings.Builder
	for _, move := range g.moves {
		if move != NoMove {
			sb.WriteString(move.String())
		}
	}
	return sb.String()
}
