package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lk16/flippy/negamax/internal/config"
	"github.com/lk16/flippy/negamax/internal/othello"
	"github.com/lk16/flippy/negamax/internal/search"
)

const human = -1

func main() {
	blackDepth := flag.Int("black", human, "search depth for Black, -1 for a human player")
	whiteDepth := flag.Int("white", human, "search depth for White, -1 for a human player")
	flag.Parse()

	config.SetLogLevel()

	depths := map[othello.Player]int{
		othello.Black: *blackDepth,
		othello.White: *whiteDepth,
	}

	if err := play(os.Stdin, os.Stdout, depths); err != nil {
		slog.Error("Game aborted", "error", err)
		os.Exit(1)
	}
}

func play(in io.Reader, out io.Writer, depths map[othello.Player]int) error {
	reader := bufio.NewReader(in)
	game := othello.NewGame()

	fmt.Fprintln(out, "Welcome to the game of Othello!")

	for !game.IsOver() {
		board := game.Board()

		fmt.Fprintln(out)
		if err := board.Print(out); err != nil {
			return err
		}
		fmt.Fprintf(out, "\n%s's turn (%c)\n", board.ToMove(), marker(board.ToMove()))

		var move othello.Square
		var err error
		if depth := depths[board.ToMove()]; depth >= 0 {
			move, err = computerMove(out, board, depth)
		} else {
			move, err = humanMove(reader, out, board)
		}
		if err != nil {
			return err
		}

		if err = game.PushMove(move); err != nil {
			return err
		}

		if next := game.Board(); !game.IsOver() && next.LastMove() == othello.NoMove {
			fmt.Fprintf(out, "\n%s's turn (%c)\n= PASS\n", next.Opponent(), marker(next.Opponent()))
		}
	}

	board := game.Board()

	fmt.Fprintln(out)
	if err := board.Print(out); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nGame over!\n%s\nTranscript: %s\n", board.Result(), game.Transcript())
	return nil
}

func marker(p othello.Player) byte {
	if p == othello.Black {
		return '*'
	}
	return 'O'
}

// computerMove searches depth plies below every candidate move.
func computerMove(out io.Writer, board othello.Board, depth int) (othello.Square, error) {
	fmt.Fprint(out, "AI is thinking... ")

	result, err := search.BestMove(context.Background(), board, depth+1)
	if err != nil {
		return othello.NoMove, err
	}

	fmt.Fprintf(out, "%.3fs\n= %d %d\n", result.Elapsed.Seconds(), result.Move.Row(), result.Move.Col())
	return result.Move, nil
}

func humanMove(reader *bufio.Reader, out io.Writer, board othello.Board) (othello.Square, error) {
	for {
		fmt.Fprint(out, "> ")

		line, err := reader.ReadString('\n')
		if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
			return othello.NoMove, fmt.Errorf("failed to read move: %w", err)
		}

		var row, col int
		if _, err = fmt.Sscan(line, &row, &col); err != nil {
			fmt.Fprintln(out, "Enter a row and a column, for example: 2 3")
			continue
		}

		if !board.CanPlay(row, col) {
			fmt.Fprintln(out, "Cannot play at this position!")
			continue
		}

		return othello.NewSquare(row, col), nil
	}
}
