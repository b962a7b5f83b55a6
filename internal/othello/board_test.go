package othello //nolint:testpackage

import (
	"math/bits"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

// referenceMoves finds legal squares by walking from every empty square.
func referenceMoves(b Board) uint64 {
	var moves uint64
	for sq := range Square(64) {
		if referenceFlips(b, sq) != 0 {
			moves |= sq.bit()
		}
	}
	return moves
}

// referenceFlips walks the 8 compass directions from sq one step at a time.
func referenceFlips(b Board, sq Square) uint64 {
	self, oppo := b.toMove, b.toMove.Opponent()
	if b.Get(sq.Row(), sq.Col()) != Unknown {
		return 0
	}

	var flipped uint64
	for _, dr := range []int{-1, 0, 1} {
		for _, dc := range []int{-1, 0, 1} {
			if dr == 0 && dc == 0 {
				continue
			}

			var walked uint64
			row, col := sq.Row()+dr, sq.Col()+dc
			for isInside(row, col) && b.Get(row, col) == oppo {
				walked |= NewSquare(row, col).bit()
				row, col = row+dr, col+dc
			}

			if walked != 0 && isInside(row, col) && b.Get(row, col) == self {
				flipped |= walked
			}
		}
	}
	return flipped
}

// randomBoards plays random games and returns every board encountered.
func randomBoards(t *testing.T, games int) []Board {
	t.Helper()

	rng := rand.New(rand.NewSource(42)) //nolint:gosec
	boards := make([]Board, 0)

	for range games {
		board := NewBoardStart()
		for !board.IsOver() {
			boards = append(boards, board)

			if !board.HasMoves() {
				board = board.Pass()
				continue
			}

			children := slices.Collect(board.Children())
			board = children[rng.Intn(len(children))]
		}
		boards = append(boards, board)
	}

	return boards
}

func TestNewBoardStart(t *testing.T) {
	board := NewBoardStart()

	require.Equal(t, Black, board.ToMove())
	require.Equal(t, White, board.Opponent())
	require.Equal(t, NoMove, board.LastMove())
	require.Equal(t, 4, board.CountDiscs())

	require.Equal(t, Black, board.Get(3, 4))
	require.Equal(t, Black, board.Get(4, 3))
	require.Equal(t, White, board.Get(3, 3))
	require.Equal(t, White, board.Get(4, 4))

	require.True(t, board.HasMoves())
	require.False(t, board.IsOver())
	require.Equal(t, 4, board.MoveCount())
}

func TestNewBoard(t *testing.T) {
	tests := []struct {
		name    string
		black   uint64
		white   uint64
		toMove  Player
		wantErr error
	}{
		{name: "empty", black: 0, white: 0, toMove: Black},
		{name: "start", black: startBlack, white: startWhite, toMove: White},
		{name: "inspect only", black: startBlack, white: startWhite, toMove: Unknown},
		{name: "overlap", black: 1, white: 1, toMove: Black, wantErr: ErrOverlap},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			board, err := NewBoard(test.black, test.white, test.toMove)
			if test.wantErr != nil {
				require.ErrorIs(t, err, test.wantErr)
				require.Panics(t, func() { NewBoardMust(test.black, test.white, test.toMove) })
				return
			}

			require.NoError(t, err)
			require.Equal(t, test.black, board.Discs(Black))
			require.Equal(t, test.white, board.Discs(White))
			require.Equal(t, test.toMove, board.ToMove())
		})
	}

	_, err := NewBoard(0, 0, Player(7))
	require.Error(t, err)
}

func TestBoard_CanPlay(t *testing.T) {
	board := NewBoardStart()

	validMoves := []Square{19, 26, 37, 44} // d3, c4, f5, e6
	for _, move := range validMoves {
		require.True(t, board.CanPlay(move.Row(), move.Col()), "move %s should be valid", move)
	}

	invalidMoves := []Square{0, 7, 56, 63, 27, 28, 35, 36, 20, 29}
	for _, move := range invalidMoves {
		require.False(t, board.CanPlay(move.Row(), move.Col()), "move %s should be invalid", move)
	}

	outside := [][2]int{{-1, 0}, {0, -1}, {8, 0}, {0, 8}, {100, -5}}
	for _, rc := range outside {
		require.False(t, board.CanPlay(rc[0], rc[1]))
	}
}

func TestBoard_Children(t *testing.T) {
	board := NewBoardStart()

	lastMoves := make([]Square, 0)
	for child := range board.Children() {
		require.Equal(t, White, child.ToMove())
		require.Equal(t, 5, child.CountDiscs())
		lastMoves = append(lastMoves, child.LastMove())
	}
	require.Equal(t, []Square{19, 26, 37, 44}, lastMoves)

	// The sequence can be consumed again and stopped early.
	require.Len(t, slices.Collect(board.Children()), 4)
	for child := range board.Children() {
		require.Equal(t, Square(19), child.LastMove())
		break
	}
}

func TestBoard_ChildrenNoMoves(t *testing.T) {
	board := NewBoardMust(0xFFFFFFFFFFFFFFFE, 0x1, Black)

	require.False(t, board.HasMoves())
	require.Empty(t, slices.Collect(board.Children()))
}

func TestBoard_Play(t *testing.T) {
	board := NewBoardStart()

	child := board.Play(2, 3)

	require.Equal(t, White, child.ToMove())
	require.Equal(t, NewSquare(2, 3), child.LastMove())
	require.Equal(t, Black, child.Get(2, 3))
	require.Equal(t, Black, child.Get(3, 3))
	require.Equal(t, White, child.Get(4, 4))
	require.Equal(t, 4, bits.OnesCount64(child.Discs(Black)))
	require.Equal(t, 1, bits.OnesCount64(child.Discs(White)))

	// The receiver is unchanged.
	require.Equal(t, NewBoardStart(), board)
}

func TestBoard_PlayMultipleDirections(t *testing.T) {
	// Black plays a1, sandwiching b1-c1 (right), a2 (down) and b2 (down-right).
	// The white discs on c2 and a4 are not part of any sandwich.
	black := NewSquare(0, 3).bit() | NewSquare(2, 0).bit() | NewSquare(2, 2).bit()
	white := NewSquare(0, 1).bit() | NewSquare(0, 2).bit() | NewSquare(1, 0).bit() |
		NewSquare(1, 1).bit() | NewSquare(1, 2).bit() | NewSquare(3, 0).bit()

	board := NewBoardMust(black, white, Black)
	require.True(t, board.CanPlay(0, 0))

	child := board.Play(0, 0)

	wantFlipped := NewSquare(0, 1).bit() | NewSquare(0, 2).bit() | NewSquare(1, 0).bit() | NewSquare(1, 1).bit()
	require.Equal(t, black|wantFlipped|NewSquare(0, 0).bit(), child.Discs(Black))
	require.Equal(t, NewSquare(1, 2).bit()|NewSquare(3, 0).bit(), child.Discs(White))
}

func TestBoard_PlayInvalidPanics(t *testing.T) {
	board := NewBoardStart()

	require.Panics(t, func() { board.Play(0, 0) })
	require.Panics(t, func() { board.Play(3, 3) })
	require.Panics(t, func() { board.Play(-1, 4) })
	require.Panics(t, func() { board.Play(8, 8) })
	require.Panics(t, func() { board.PlaySquare(NoMove) })
	require.Panics(t, func() { board.PlaySquare(64) })
	require.Panics(t, func() { board.PlaySquare(0) })
}

func TestBoard_Pass(t *testing.T) {
	board := NewBoardStart().Play(2, 3)
	passed := board.Pass()

	require.Equal(t, Black, passed.ToMove())
	require.Equal(t, NoMove, passed.LastMove())
	require.Equal(t, board.Discs(Black), passed.Discs(Black))
	require.Equal(t, board.Discs(White), passed.Discs(White))
	require.Equal(t, legalMoves(board.Discs(Black), board.Discs(White)), passed.Moves())
}

func TestBoard_IsOver(t *testing.T) {
	t.Run("full board", func(t *testing.T) {
		board := NewBoardMust(0xFFFFFFFFFFFFFFFE, 0x1, Black)
		require.True(t, board.IsOver())
		require.True(t, board.Pass().IsOver())
	})

	t.Run("single pass is not terminal", func(t *testing.T) {
		white := NewSquare(0, 0).bit() | NewSquare(2, 0).bit()
		black := NewSquare(0, 1).bit() | NewSquare(2, 1).bit()
		board := NewBoardMust(black, white, White)

		// After White plays c1, Black cannot move but White can.
		child := board.Play(0, 2)
		require.Equal(t, Black, child.ToMove())
		require.False(t, child.HasMoves())
		require.False(t, child.IsOver())

		passed := child.Pass()
		require.True(t, passed.HasMoves())
		require.False(t, passed.IsOver())
	})

	t.Run("two passes are terminal", func(t *testing.T) {
		black := NewSquare(0, 1).bit() | NewSquare(0, 2).bit()
		white := NewSquare(0, 0).bit()
		board := NewBoardMust(black, white, White)

		// White wipes out Black, nobody can move after that.
		child := board.Play(0, 3)
		require.Zero(t, child.Discs(Black))
		require.False(t, child.IsOver())
		require.True(t, child.Pass().IsOver())
	})
}

func TestBoard_Scores(t *testing.T) {
	board := NewBoardStart()
	require.Equal(t, 0, board.AbsoluteScore())
	require.Equal(t, 0, board.WeightedScore())

	child := board.Play(2, 3)
	require.Equal(t, -3, child.AbsoluteScore())
	require.Equal(t, 3-4*3, child.WeightedScore())

	full := NewBoardMust(0xFFFFFFFFFFFFFFFE, 0x1, Black)
	require.Equal(t, 62, full.AbsoluteScore())
	require.Equal(t, -62, full.Pass().AbsoluteScore())
	require.Equal(t, -full.WeightedScore(), full.Pass().WeightedScore())
}

func TestBoard_WeightsSymmetric(t *testing.T) {
	for i := range 64 {
		sq := Square(i)
		row, col := sq.Row(), sq.Col()

		require.Equal(t, weights[i], weights[NewSquare(row, 7-col)])
		require.Equal(t, weights[i], weights[NewSquare(7-row, col)])
		require.Equal(t, weights[i], weights[NewSquare(col, row)])
	}
}

func TestBoard_UnknownMover(t *testing.T) {
	board := NewBoardMust(startBlack, startWhite, Unknown)

	require.False(t, board.HasMoves())
	require.False(t, board.CanPlay(2, 3))
	require.Panics(t, func() { board.Play(2, 3) })
	require.Panics(t, func() { board.Pass() })
	require.Panics(t, func() { board.IsOver() })
	require.Panics(t, func() { board.AbsoluteScore() })
	require.Panics(t, func() { board.WeightedScore() })
	require.Panics(t, func() { board.Children() })
}

func TestBoard_RandomGamesMatchReference(t *testing.T) {
	for _, board := range randomBoards(t, 50) {
		require.Equal(t, referenceMoves(board), board.Moves(), board.String())

		for child := range board.Children() {
			move := child.LastMove()
			wantFlipped := referenceFlips(board, move)

			self := board.ToMove()
			require.Equal(t, board.Discs(self)|wantFlipped|move.bit(), child.Discs(self))
			require.Equal(t, board.Discs(self.Opponent())&^wantFlipped, child.Discs(self.Opponent()))
		}
	}
}

func TestBoard_RandomGamesInvariants(t *testing.T) {
	for _, board := range randomBoards(t, 50) {
		black, white := board.Discs(Black), board.Discs(White)
		empties := bits.OnesCount64(board.Discs(Unknown))

		require.Zero(t, black&white)
		require.Equal(t, 64-empties, bits.OnesCount64(black)+bits.OnesCount64(white))

		for child := range board.Children() {
			require.Equal(t, empties-1, bits.OnesCount64(child.Discs(Unknown)))
			require.Zero(t, child.Discs(Black)&child.Discs(White))
		}

		if board.IsOver() {
			require.Equal(t, -board.AbsoluteScore(), board.Pass().AbsoluteScore())
		}
	}
}

func TestBoard_String(t *testing.T) {
	board := NewBoardStart()
	require.Equal(t, "00000008100000000000001008000000-b", board.String())

	parsed, err := NewBoardFromString(board.String())
	require.NoError(t, err)
	require.True(t, parsed.Equal(board))

	child := board.Play(2, 3)
	parsed, err = NewBoardFromString(child.String())
	require.NoError(t, err)
	require.Equal(t, child.Discs(Black), parsed.Discs(Black))
	require.Equal(t, White, parsed.ToMove())

	invalid := []string{
		"",
		"00000008100000000000001008000000-x",
		"00000008100000000000001008000000+b",
		"z0000008100000000000001008000000-b",
		"0000000810000000z000001008000000-b",
		"00000000000000010000000000000001-b",
	}
	for _, s := range invalid {
		_, err = NewBoardFromString(s)
		require.Error(t, err, s)
	}
}

func TestBoard_ASCIIArtLines(t *testing.T) {
	lines := NewBoardStart().ASCIIArtLines()

	want := []string{
		"  0 1 2 3 4 5 6 7",
		"0                ",
		"1                ",
		"2       .        ",
		"3     . O *      ",
		"4       * O .    ",
		"5         .      ",
		"6                ",
		"7                ",
	}
	require.Equal(t, want, lines)
}

func TestBoard_Result(t *testing.T) {
	require.Equal(t, "Draw (2 : 2)", NewBoardStart().Result())
	require.Equal(t, Unknown, NewBoardStart().Winner())

	full := NewBoardMust(0xFFFFFFFFFFFFFFFE, 0x1, Black)
	require.Equal(t, "Black wins (63 : 1)", full.Result())

	black, white := full.Tally()
	require.Equal(t, 63, black)
	require.Equal(t, 1, white)

	require.Equal(t, "White wins (1 : 63)", NewBoardMust(0x1, 0xFFFFFFFFFFFFFFFE, White).Result())
}
