package referee

import (
	"github.com/hailam/fish/internal/coord"
	"github.com/hailam/fish/internal/fish"
	"github.com/hailam/fish/internal/strategy"
)

// LocalPlayer is an in-process PlayerInterface backed directly by the
// strategy package: it always acknowledges, places at the first available
// spot, and moves by running an N-ply maximin search. It is the bot a
// tournament pool can be filled with, and the core a remote client wraps
// around its socket.
type LocalPlayer struct {
	// Depth is the N passed to strategy.FindNextMove (moves looked ahead
	// for the mover). Depth <= 0 is treated as 1.
	Depth int
}

func (p *LocalPlayer) depth() int {
	if p.Depth <= 0 {
		return 1
	}
	return p.Depth
}

func (p *LocalPlayer) Start() bool                         { return true }
func (p *LocalPlayer) AssignColor(c fish.Color) bool        { return true }
func (p *LocalPlayer) Opponents(cs []fish.Color) bool       { return true }
func (p *LocalPlayer) NotifyWinners(winners []fish.Color) bool { return true }
func (p *LocalPlayer) End(isWinner bool) bool               { return true }

func (p *LocalPlayer) Place(state *fish.State) (coord.Coord, error) {
	return strategy.FindNextPlacement(state)
}

func (p *LocalPlayer) Move(state *fish.State, previous []fish.Action) (fish.Action, error) {
	return strategy.FindNextMove(state, p.depth())
}
