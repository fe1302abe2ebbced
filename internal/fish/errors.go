package fish

import (
	"fmt"

	"github.com/hailam/fish/internal/coord"
)

// PlacementError is spec's PenguinPlacementError: the coordinate was
// off-grid, a hole, already occupied, or the player was out of placement
// quota.
type PlacementError struct {
	Color Color
	C     coord.Coord
	Msg   string
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("fish: %s cannot place at %v: %s", e.Color, e.C, e.Msg)
}

// MovementError is spec's PenguinMovementError: wrong turn, no penguin at
// source, unreachable destination, or wrong phase.
type MovementError struct {
	Color    Color
	From, To coord.Coord
	Msg      string
}

func (e *MovementError) Error() string {
	return fmt.Sprintf("fish: %s cannot move %v->%v: %s", e.Color, e.From, e.To, e.Msg)
}

// StateError is spec's StateError: a rejected phase transition, an unknown
// color, or an illegal tournament-manager pool size.
type StateError struct {
	Msg string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("fish: %s", e.Msg)
}
