// Command fish-server listens for fish-client connections during a
// 30-second join window (extended once by a second window if too few
// joined), and runs a tournament.Manager over whoever connected once there
// are enough players.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/hailam/fish/internal/board"
	"github.com/hailam/fish/internal/remote"
	"github.com/hailam/fish/internal/tournament"
)

var (
	addr        = flag.String("addr", ":16005", "address to listen on, e.g. :16005 or 0.0.0.0:16005")
	maxGameSize = flag.Int("max-game-size", tournament.DefaultMaxGameSize, "largest number of players one referee seats")
	seed        = flag.Int64("seed", 1, "seed for the per-round random board generator")
)

func main() {
	flag.Parse()

	srv, err := remote.Listen(*addr)
	if err != nil {
		log.Fatalf("fish-server: %v", err)
	}
	defer srv.Close()

	rng := rand.New(rand.NewSource(*seed))
	srv.MaxGameSize = *maxGameSize
	srv.Boards = func(n int) (*board.Board, error) {
		return gameBoard(n, rng)
	}

	log.Printf("fish-server: listening on %s", srv.Addr())
	result, err := srv.Run()
	if err != nil {
		log.Printf("fish-server: %v", err)
		os.Exit(1)
	}

	fmt.Printf("winners: %d, cheaters: %d, failing: %d, rounds: %d\n", len(result.Champions), result.Cheating, result.Failing, result.Rounds)
	os.Exit(0)
}

// gameBoard sizes a board for n players: each needs 6-n penguins, so the
// grid must hold at least n*(6-n) present tiles with no holes, generously
// padded so placement and a few rounds of movement never run out of room.
func gameBoard(n int, rng *rand.Rand) (*board.Board, error) {
	needed := n * (6 - n)
	rows := needed/3 + 3
	cols := needed/rows + 3
	return board.RandomWithHoles(rows, cols, nil, needed, rng)
}
