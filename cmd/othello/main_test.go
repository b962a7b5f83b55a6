package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/lk16/flippy/negamax/internal/othello"
	"github.com/stretchr/testify/require"
)

func TestPlayComputerVsComputer(t *testing.T) {
	var out bytes.Buffer
	depths := map[othello.Player]int{othello.Black: 0, othello.White: 1}

	require.NoError(t, play(strings.NewReader(""), &out, depths))

	output := out.String()
	require.Contains(t, output, "Welcome to the game of Othello!")
	require.Contains(t, output, "AI is thinking... ")
	require.Contains(t, output, "Game over!")
	require.Contains(t, output, "Transcript: ")
}

func TestPlayHumanInput(t *testing.T) {
	var out bytes.Buffer
	depths := map[othello.Player]int{othello.Black: -1, othello.White: 0}

	input := "x y\n0 0\n2 3\n"
	err := play(strings.NewReader(input), &out, depths)
	require.ErrorIs(t, err, io.EOF)

	output := out.String()
	require.Contains(t, output, "Enter a row and a column, for example: 2 3")
	require.Contains(t, output, "Cannot play at this position!")
	require.Contains(t, output, "Black's turn (*)")
	require.Contains(t, output, "White's turn (O)")
	require.NotContains(t, output, "Game over!")
}
