package fish

import "github.com/hailam/fish/internal/coord"

// Action is a single penguin move: slide the penguin at From to To.
type Action struct {
	From coord.Coord
	To   coord.Coord
}

// Less implements the total order used for deterministic tie-breaking:
// compare From.Y, then From.X, then To.Y, then To.X (row-major on both
// endpoints).
func Less(a, b Action) bool {
	if a.From.Y != b.From.Y {
		return a.From.Y < b.From.Y
	}
	if a.From.X != b.From.X {
		return a.From.X < b.From.X
	}
	if a.To.Y != b.To.Y {
		return a.To.Y < b.To.Y
	}
	return a.To.X < b.To.X
}
