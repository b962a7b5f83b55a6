package othello

import "math/bits"

// Directional steps on a bitset. Each mask clears the squares a step would
// wrap into from the opposite edge of the board.
var (
	shifts = [8]int{
		1,  // right
		9,  // down-right
		8,  // down
		7,  // down-left
		-1, // left
		-9, // up-left
		-8, // up
		-7, // up-right
	}

	shiftMasks = [8]uint64{
		0xFEFEFEFEFEFEFEFE,
		0xFEFEFEFEFEFEFE00,
		0xFFFFFFFFFFFFFF00,
		0x7F7F7F7F7F7F7F00,
		0x7F7F7F7F7F7F7F7F,
		0x007F7F7F7F7F7F7F,
		0x00FFFFFFFFFFFFFF,
		0x00FEFEFEFEFEFEFE,
	}
)

// weights is the positional value of each square.
var weights = [64]int{
	120, -20, 20, 5, 5, 20, -20, 120,
	-20, -40, -5, -5, -5, -5, -40, -20,
	20, -5, 15, 3, 3, 15, -5, 20,
	5, -5, 3, 3, 3, 3, -5, 5,
	5, -5, 3, 3, 3, 3, -5, 5,
	20, -5, 15, 3, 3, 15, -5, 20,
	-20, -40, -5, -5, -5, -5, -40, -20,
	120, -20, 20, 5, 5, 20, -20, 120,
}

func shift(b uint64, dir int) uint64 {
	if s := shifts[dir]; s > 0 {
		return (b << uint(s)) & shiftMasks[dir]
	}
	return (b >> uint(-shifts[dir])) & shiftMasks[dir]
}

// run returns the opponent discs reached from start by repeated steps in dir.
// A run never exceeds 6 discs, so 5 extra steps are enough.
func run(start, oppo uint64, dir int) uint64 {
	t := shift(start, dir) & oppo
	for range 5 {
		t |= shift(t, dir) & oppo
	}
	return t
}

// legalMoves returns all empty squares where self sandwiches at least one opponent run.
func legalMoves(self, oppo uint64) uint64 {
	empty := ^(self | oppo)

	var moves uint64
	for dir := range 8 {
		moves |= shift(run(self, oppo, dir), dir) & empty
	}
	return moves
}

// flips returns the opponent discs flipped when self plays sq.
func flips(self, oppo uint64, sq Square) uint64 {
	var flipped uint64
	for dir := range 8 {
		t := run(sq.bit(), oppo, dir)
		if shift(t, dir)&self != 0 {
			flipped |= t
		}
	}
	return flipped
}

func weightedSum(discs uint64) int {
	sum := 0
	for ; discs != 0; discs &= discs - 1 {
		sum += weights[bits.TrailingZeros64(discs)]
	}
	return sum
}
