package othello

import (
	"fmt"
	"strings"
)

const (
	MaxX = 8
	MaxY = 8
)

// Square is a board index in row-major order: row*8 + col.
type Square int

// NoMove is the LastMove of the start position and of a board reached by passing.
const NoMove Square = -1

// NewSquare returns the square at row, col. It panics when outside the grid.
func NewSquare(row, col int) Square {
	if !isInside(row, col) {
		panic(fmt.Sprintf("othello: square (%d, %d) is outside the board", row, col))
	}
	return Square(row*MaxX + col)
}

func isInside(row, col int) bool {
	return row >= 0 && row < MaxY && col >= 0 && col < MaxX
}

// Row returns the zero-based row.
func (s Square) Row() int {
	return int(s) / MaxX
}

// Col returns the zero-based column.
func (s Square) Col() int {
	return int(s) % MaxX
}

func (s Square) bit() uint64 {
	return uint64(1) << uint(s)
}

// String returns field notation, e.g. "c4". NoMove is "--".
func (s Square) String() string {
	if s == NoMove {
		return "--"
	}
	if s < 0 || s >= 64 {
		return fmt.Sprintf("Square(%d)", int(s))
	}
	return fmt.Sprintf("%c%c", 'a'+s.Col(), '1'+s.Row())
}

// ParseSquare converts field notation (e.g. "a1", "h8") to a square.
// "--" and "ps" are parsed as NoMove.
func ParseSquare(field string) (Square, error) {
	if len(field) != 2 {
		return NoMove, fmt.Errorf("invalid field length: %q", field)
	}

	field = strings.ToLower(field)

	if field == "--" || field == "ps" {
		return NoMove, nil
	}

	if !('a' <= field[0] && field[0] <= 'h' && '1' <= field[1] && field[1] <= '8') {
		return NoMove, fmt.Errorf("invalid field: %q", field)
	}

	col := int(field[0] - 'a')
	row := int(field[1] - '1')
	return NewSquare(row, col), nil
}
