package fish

import (
	"github.com/hailam/fish/internal/board"
	"github.com/hailam/fish/internal/coord"
)

// Restore reconstructs a State directly from a snapshot: an explicit player
// list (each with its current penguin positions and score already filled
// in), whose turn it is, and which phase the game is in. Used by the wire
// package to hydrate a State received over the network, where only the
// current snapshot is available, not the placement/movement history that
// produced it.
func Restore(b *board.Board, players []Info, turn Color, phase Phase) (*State, error) {
	if len(players) < 2 || len(players) > 4 {
		return nil, &StateError{Msg: "a game needs 2 to 4 players"}
	}
	seen := make(map[Color]bool, len(players))
	occ := make(map[coord.Coord]bool)
	cloned := make([]Info, len(players))
	for i, p := range players {
		if seen[p.Color] {
			return nil, &StateError{Msg: "duplicate color in player list"}
		}
		seen[p.Color] = true
		for _, c := range p.Penguins {
			if occ[c] {
				return nil, &StateError{Msg: "two penguins share a coordinate"}
			}
			occ[c] = true
		}
		cloned[i] = p.clone()
	}
	if !seen[turn] {
		return nil, &StateError{Msg: "turn color is not present in the player list"}
	}
	return &State{Board: b, players: cloned, Turn: turn, Phase: phase, initialN: len(players)}, nil
}
