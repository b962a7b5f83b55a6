package othello

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidGrid is returned when a grid encoding cannot be decoded.
var ErrInvalidGrid = errors.New("invalid grid")

// DecodeGrid builds a board from 64 row-major markers: 'B' for Black, 'W' for White
// and '-' or '.' for an empty square. A 128 character grid is also accepted, in
// which every marker is followed by a separator: a space, a tab, ',' or '|'.
// When toMove is Unknown the board is inspect-only.
func DecodeGrid(grid string, toMove Player) (Board, error) {
	var stride int
	switch len(grid) {
	case 64:
		stride = 1
	case 128:
		stride = 2
	default:
		return Board{}, fmt.Errorf("%w: expected 64 or 128 characters, got %d", ErrInvalidGrid, len(grid))
	}

	var black, white uint64
	for i := range 64 {
		marker := grid[stride*i]
		mask := Square(i).bit()

		if stride == 2 && !isGridSeparator(grid[stride*i+1]) {
			return Board{}, fmt.Errorf("%w: unexpected separator %q after %s", ErrInvalidGrid, grid[stride*i+1], Square(i))
		}

		switch marker {
		case 'B':
			black |= mask
		case 'W':
			white |= mask
		case '-', '.':
		default:
			return Board{}, fmt.Errorf("%w: unexpected marker %q at %s", ErrInvalidGrid, marker, Square(i))
		}
	}

	return NewBoard(black, white, toMove)
}

func isGridSeparator(c byte) bool {
	switch c {
	case ' ', '\t', ',', '|':
		return true
	default:
		return false
	}
}

// EncodeGrid returns the 64 marker encoding of a board.
func EncodeGrid(b Board) string {
	var sb strings.Builder
	sb.Grow(64)

	for i := range 64 {
		sq := Square(i)
		switch b.Get(sq.Row(), sq.Col()) {
		case Black:
			sb.WriteByte('B')
		case White:
			sb.WriteByte('W')
		case Unknown:
			sb.WriteByte('-')
		}
	}

	return sb.String()
}
