package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/lk16/flippy/negamax/internal/client"
	"github.com/lk16/flippy/negamax/internal/config"
	"github.com/lk16/flippy/negamax/internal/othello"
	"github.com/lk16/flippy/negamax/internal/search"
)

// Reads "<turn> <grid>" from stdin and prints the best move as "<row> <col>".
// With turn "?" the board is printed to stderr instead.
func main() {
	depth := flag.Int("depth", 10, "plies searched below each candidate move")
	remote := flag.Bool("remote", false, "ask the server at NEGAMAX_SERVER_URL instead of searching locally")
	flag.Parse()

	config.SetLogLevel()

	var turn, grid string
	if _, err := fmt.Fscan(os.Stdin, &turn, &grid); err != nil {
		slog.Error("Failed to read board", "error", err)
		os.Exit(2)
	}

	if len(turn) != 1 {
		slog.Error("Turn must be a single character", "turn", turn)
		os.Exit(2)
	}

	toMove, err := othello.ParsePlayer(turn[0])
	if err != nil {
		slog.Error("Failed to parse turn", "error", err)
		os.Exit(2)
	}

	board, err := othello.DecodeGrid(grid, toMove)
	if err != nil {
		slog.Error("Failed to parse grid", "error", err)
		os.Exit(2)
	}

	if toMove == othello.Unknown {
		if err = board.Print(os.Stderr); err != nil {
			os.Exit(2)
		}
		return
	}

	if !board.HasMoves() {
		os.Exit(1)
	}

	var move othello.Square
	if *remote {
		// Without an explicit -depth the server picks its default depth.
		remoteDepth := 0
		flag.Visit(func(f *flag.Flag) {
			if f.Name == "depth" {
				remoteDepth = *depth + 1
			}
		})
		move, err = remoteBestMove(board, remoteDepth)
	} else {
		move, err = localBestMove(board, *depth+1)
	}

	if err != nil {
		slog.Error("Search failed", "error", err)
		os.Exit(2)
	}

	fmt.Printf("%d %d\n", move.Row(), move.Col())
}

func localBestMove(board othello.Board, depth int) (othello.Square, error) {
	result, err := search.BestMove(context.Background(), board, depth)
	if err != nil {
		return othello.NoMove, err
	}
	return result.Move, nil
}

func remoteBestMove(board othello.Board, depth int) (othello.Square, error) {
	apiClient := client.NewAPIClient(config.LoadClientConfig())

	analysis, err := apiClient.Analyze(context.Background(), board, depth)
	if err != nil {
		return othello.NoMove, err
	}

	slog.Debug("Remote analysis", "id", analysis.ID, "cached", analysis.Cached, "score", analysis.Score)
	return othello.NewSquare(analysis.Row, analysis.Col), nil
}
