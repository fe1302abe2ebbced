package fish

import "github.com/hailam/fish/internal/coord"

// Info is the per-color record: placed penguins and accumulated score.
// Score is monotonically non-decreasing across the game.
type Info struct {
	Color    Color
	Penguins []coord.Coord
	Score    uint32
}

// clone deep-copies Info so mutators never alias a prior state's slice.
func (p Info) clone() Info {
	penguins := make([]coord.Coord, len(p.Penguins))
	copy(penguins, p.Penguins)
	return Info{Color: p.Color, Penguins: penguins, Score: p.Score}
}

// hasPenguinAt reports whether this player owns a penguin at c.
func (p Info) hasPenguinAt(c coord.Coord) bool {
	for _, pc := range p.Penguins {
		if pc == c {
			return true
		}
	}
	return false
}
