package othello

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"math/bits"
	"strconv"
)

const (
	startBlack = 0x0000000810000000
	startWhite = 0x0000001008000000
)

// ErrOverlap is returned when both players claim the same square.
var ErrOverlap = errors.New("black and white discs cannot overlap")

// Board is one game position. It is never modified after construction:
// Play and Pass return new boards.
type Board struct {
	// discs holds one bitset per player, indexed by Black and White.
	discs [2]uint64

	// moves is the set of legal squares for toMove, derived from discs and toMove.
	moves uint64

	toMove   Player
	lastMove Square
}

func newBoard(black, white uint64, toMove Player, lastMove Square) Board {
	b := Board{
		discs:    [2]uint64{black, white},
		toMove:   toMove,
		lastMove: lastMove,
	}
	if toMove != Unknown {
		b.moves = legalMoves(b.discs[toMove], b.discs[toMove.Opponent()])
	}
	return b
}

// NewBoardStart creates a board with the starting position, Black to move.
func NewBoardStart() Board {
	return newBoard(startBlack, startWhite, Black, NoMove)
}

// NewBoard creates a board from two bitsets. Use Unknown as toMove for an inspect-only board.
func NewBoard(black, white uint64, toMove Player) (Board, error) {
	if black&white != 0 {
		return Board{}, fmt.Errorf("invalid board: %w", ErrOverlap)
	}

	if toMove != Black && toMove != White && toMove != Unknown {
		return Board{}, fmt.Errorf("invalid board: invalid player %d", toMove)
	}

	return newBoard(black, white, toMove, NoMove), nil
}

// NewBoardMust creates a board like NewBoard and panics if it is invalid.
func NewBoardMust(black, white uint64, toMove Player) Board {
	b, err := NewBoard(black, white, toMove)
	if err != nil {
		panic(err)
	}
	return b
}

// NewBoardFromString parses the output of Board.String.
func NewBoardFromString(s string) (Board, error) {
	if len(s) != 34 {
		return Board{}, fmt.Errorf("board string must be 34 characters long, got %d", len(s))
	}

	black, err := strconv.ParseUint(s[:16], 16, 64)
	if err != nil {
		return Board{}, fmt.Errorf("invalid black discs: %w", err)
	}

	white, err := strconv.ParseUint(s[16:32], 16, 64)
	if err != nil {
		return Board{}, fmt.Errorf("invalid white discs: %w", err)
	}

	if s[32] != '-' {
		return Board{}, fmt.Errorf("invalid turn: %s", s[32:34])
	}

	var toMove Player
	switch s[33] {
	case 'b':
		toMove = Black
	case 'w':
		toMove = White
	case '?':
		toMove = Unknown
	default:
		return Board{}, fmt.Errorf("invalid turn: %s", s[32:34])
	}

	return NewBoard(black, white, toMove)
}

func (b Board) mustHaveMover() {
	if b.toMove == Unknown {
		panic("othello: board has no player to move")
	}
}

// ToMove returns the player to move.
func (b Board) ToMove() Player {
	return b.toMove
}

// Opponent returns the player not to move. It panics on an inspect-only board.
func (b Board) Opponent() Player {
	return b.toMove.Opponent()
}

// LastMove returns the square played to reach this board, or NoMove.
func (b Board) LastMove() Square {
	return b.lastMove
}

// Discs returns the bitset of discs owned by p.
func (b Board) Discs(p Player) uint64 {
	switch p {
	case Black, White:
		return b.discs[p]
	case Unknown:
		return ^(b.discs[Black] | b.discs[White])
	default:
		panic(fmt.Sprintf("othello: invalid player %d", p))
	}
}

// CountDiscs returns the number of discs on the board.
func (b Board) CountDiscs() int {
	return bits.OnesCount64(b.discs[Black] | b.discs[White])
}

// Get returns the owner of a square, Unknown if it is empty.
func (b Board) Get(row, col int) Player {
	mask := NewSquare(row, col).bit()
	switch {
	case b.discs[Black]&mask != 0:
		return Black
	case b.discs[White]&mask != 0:
		return White
	default:
		return Unknown
	}
}

// Moves returns the bitset of legal squares for the player to move.
func (b Board) Moves() uint64 {
	return b.moves
}

// MoveCount returns the number of legal moves.
func (b Board) MoveCount() int {
	return bits.OnesCount64(b.moves)
}

// CanPlay checks whether the player to move can play at row, col.
// Coordinates outside the board are never playable.
func (b Board) CanPlay(row, col int) bool {
	if !isInside(row, col) {
		return false
	}
	return b.moves&NewSquare(row, col).bit() != 0
}

// HasMoves checks whether the player to move has any legal move.
func (b Board) HasMoves() bool {
	return b.moves != 0
}

// IsOver returns true after two consecutive passes: the previous ply was a pass
// and the player to move cannot move either.
func (b Board) IsOver() bool {
	b.mustHaveMover()
	return b.lastMove == NoMove && !b.HasMoves()
}

// Play places a disc for the player to move and flips all sandwiched discs.
// It panics if the move is not legal.
func (b Board) Play(row, col int) Board {
	if !b.CanPlay(row, col) {
		panic(fmt.Sprintf("othello: %s cannot play at (%d, %d)", b.toMove, row, col))
	}
	return b.play(NewSquare(row, col))
}

// PlaySquare works like Play, taking a square index.
func (b Board) PlaySquare(sq Square) Board {
	if sq < 0 || sq >= 64 || b.moves&sq.bit() == 0 {
		panic(fmt.Sprintf("othello: %s cannot play at %s", b.toMove, sq))
	}
	return b.play(sq)
}

// play assumes sq is a legal move.
func (b Board) play(sq Square) Board {
	self, oppo := b.toMove, b.toMove.Opponent()

	flipped := flips(b.discs[self], b.discs[oppo], sq)

	var discs [2]uint64
	discs[self] = b.discs[self] | flipped | sq.bit()
	discs[oppo] = b.discs[oppo] &^ flipped

	return newBoard(discs[Black], discs[White], oppo, sq)
}

// Pass hands the turn to the opponent without changing any disc.
func (b Board) Pass() Board {
	b.mustHaveMover()
	return newBoard(b.discs[Black], b.discs[White], b.toMove.Opponent(), NoMove)
}

// Children yields the board after each legal move, in increasing square order.
// It yields nothing when the player to move has to pass.
func (b Board) Children() iter.Seq[Board] {
	b.mustHaveMover()
	return func(yield func(Board) bool) {
		for moves := b.moves; moves != 0; moves &= moves - 1 {
			sq := Square(bits.TrailingZeros64(moves))
			if !yield(b.play(sq)) {
				return
			}
		}
	}
}

// AbsoluteScore returns the disc difference from the perspective of the player to move.
func (b Board) AbsoluteScore() int {
	b.mustHaveMover()
	self := bits.OnesCount64(b.discs[b.toMove])
	oppo := bits.OnesCount64(b.discs[b.toMove.Opponent()])
	return self - oppo
}

// WeightedScore returns the positional evaluation from the perspective of the player to move.
func (b Board) WeightedScore() int {
	b.mustHaveMover()
	return weightedSum(b.discs[b.toMove]) - weightedSum(b.discs[b.toMove.Opponent()])
}

// Tally returns the number of discs per player.
func (b Board) Tally() (black, white int) {
	return bits.OnesCount64(b.discs[Black]), bits.OnesCount64(b.discs[White])
}

// Winner returns the player with more discs, or Unknown on a draw.
func (b Board) Winner() Player {
	black, white := b.Tally()
	switch {
	case black > white:
		return Black
	case white > black:
		return White
	default:
		return Unknown
	}
}

// Result describes the disc tally, e.g. "Black wins (40 : 24)".
func (b Board) Result() string {
	black, white := b.Tally()

	var outcome string
	switch b.Winner() {
	case Black:
		outcome = "Black wins"
	case White:
		outcome = "White wins"
	case Unknown:
		outcome = "Draw"
	}

	return fmt.Sprintf("%s (%d : %d)", outcome, black, white)
}

// Equal checks if two boards are equal.
func (b Board) Equal(other Board) bool {
	return b == other
}

// ASCIIArtLines returns the grid view of the board: '*' for Black, 'O' for White
// and '.' for squares the player to move can play.
func (b Board) ASCIIArtLines() []string {
	lines := make([]string, MaxY+1)

	lines[0] = "  0 1 2 3 4 5 6 7"
	for row := range MaxY {
		line := strconv.Itoa(row)

		for col := range MaxX {
			line += " " + string(b.repr(row, col))
		}

		lines[row+1] = line
	}

	return lines
}

func (b Board) repr(row, col int) byte {
	switch b.Get(row, col) {
	case Black:
		return '*'
	case White:
		return 'O'
	case Unknown:
		if b.CanPlay(row, col) {
			return '.'
		}
	}
	return ' '
}

// Print writes the grid view to w.
func (b Board) Print(w io.Writer) error {
	for _, line := range b.ASCIIArtLines() {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// String returns the black and white bitsets in hex followed by the turn, e.g. "...-b".
func (b Board) String() string {
	var turn byte
	switch b.toMove {
	case Black:
		turn = 'b'
	case White:
		turn = 'w'
	default:
		turn = '?'
	}

	return fmt.Sprintf("%016x%016x-%c", b.discs[Black], b.discs[White], turn)
}
