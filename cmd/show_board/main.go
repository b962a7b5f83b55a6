package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lk16/flippy/negamax/internal/othello"
)

func main() {
	boardString := flag.String("board", "", "the board to show, as printed by the engine")
	grid := flag.String("grid", "", "the board to show, as 64 grid markers")
	turn := flag.String("turn", "?", "player to move with -grid: B, W or ?")
	flag.Parse()

	board, err := loadBoard(*boardString, *grid, *turn)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	if err = board.Print(os.Stdout); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func loadBoard(boardString, grid, turn string) (othello.Board, error) {
	if grid == "" {
		return othello.NewBoardFromString(boardString)
	}

	if len(turn) != 1 {
		return othello.Board{}, fmt.Errorf("turn must be a single character, got %q", turn)
	}

	toMove, err := othello.ParsePlayer(turn[0])
	if err != nil {
		return othello.Board{}, err
	}

	return othello.DecodeGrid(grid, toMove)
}
