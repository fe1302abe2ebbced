// Package fish implements the immutable Fish game state: phase-gated
// transitions between placement, movement, and end, driven by an ordered
// turn rotation over 2-4 players.
package fish

import (
	"github.com/hailam/fish/internal/board"
	"github.com/hailam/fish/internal/coord"
)

// State is an immutable snapshot of one game: the board, the ordered player
// list (rotation order), whose turn it is, and the current phase. Every
// mutator below consumes a *State and returns a new one; nothing is mutated
// in place, following the teacher's Position.Copy discipline.
type State struct {
	Board    *board.Board
	players  []Info // ordered by turn rotation; the "ordered map" of spec.md
	Turn     Color
	Phase    Phase
	initialN int
}

// New creates the initial placement-phase state for colors, in the given
// turn order. colors must have 2-4 distinct entries.
func New(b *board.Board, colors []Color) (*State, error) {
	if len(colors) < 2 || len(colors) > 4 {
		return nil, &StateError{Msg: "a game needs 2 to 4 players"}
	}
	seen := make(map[Color]bool, len(colors))
	players := make([]Info, 0, len(colors))
	for _, c := range colors {
		if seen[c] {
			return nil, &StateError{Msg: "duplicate color in player list"}
		}
		seen[c] = true
		players = append(players, Info{Color: c})
	}
	return &State{
		Board:    b,
		players:  players,
		Turn:     colors[0],
		Phase:    PlacePenguins,
		initialN: len(colors),
	}, nil
}

// Quota returns 6-N, the number of penguins each player must place, where N
// is the initial player count.
func (s *State) Quota() int { return 6 - s.initialN }

// Players returns the ordered player list. Callers must not mutate the
// returned slice or its Penguins fields.
func (s *State) Players() []Info { return s.players }

// PlayerInfo returns the Info for color, if still in the game.
func (s *State) PlayerInfo(c Color) (Info, bool) {
	for _, p := range s.players {
		if p.Color == c {
			return p, true
		}
	}
	return Info{}, false
}

func (s *State) indexOf(c Color) int {
	for i, p := range s.players {
		if p.Color == c {
			return i
		}
	}
	return -1
}

// nextColorAfter returns the color following c in rotation order, cycling.
// Panics if the player list is empty; callers only call it with a non-empty
// list.
func (s *State) nextColorAfter(c Color) Color {
	i := s.indexOf(c)
	if i == -1 {
		// c already left the rotation (e.g. the ejected color itself);
		// fall back to the front of the list.
		return s.players[0].Color
	}
	return s.players[(i+1)%len(s.players)].Color
}

func (s *State) clone() *State {
	players := make([]Info, len(s.players))
	for i, p := range s.players {
		players[i] = p.clone()
	}
	return &State{
		Board:    s.Board.Clone(),
		players:  players,
		Turn:     s.Turn,
		Phase:    s.Phase,
		initialN: s.initialN,
	}
}

// occupiedCoords returns the union of every surviving player's penguins.
func (s *State) occupiedCoords() map[coord.Coord]bool {
	occ := make(map[coord.Coord]bool)
	for _, p := range s.players {
		for _, c := range p.Penguins {
			occ[c] = true
		}
	}
	return occ
}

// PlacePenguin places color's next penguin at c. Valid only in
// PlacePenguins phase, on color's turn, onto a present and unoccupied tile,
// while color still has placement quota remaining.
func (s *State) PlacePenguin(c Color, at coord.Coord) (*State, error) {
	if s.Phase != PlacePenguins {
		return nil, &PlacementError{Color: c, C: at, Msg: "not in placement phase"}
	}
	if s.Turn != c {
		return nil, &PlacementError{Color: c, C: at, Msg: "not this player's turn"}
	}
	info, ok := s.PlayerInfo(c)
	if !ok {
		return nil, &PlacementError{Color: c, C: at, Msg: "unknown color"}
	}
	if len(info.Penguins) >= s.Quota() {
		return nil, &PlacementError{Color: c, C: at, Msg: "placement quota already met"}
	}
	tile, err := s.Board.TileAt(at)
	if err != nil {
		return nil, &PlacementError{Color: c, C: at, Msg: "invalid coordinate"}
	}
	if !tile.Present {
		return nil, &PlacementError{Color: c, C: at, Msg: "coordinate is a hole"}
	}
	if s.occupiedCoords()[at] {
		return nil, &PlacementError{Color: c, C: at, Msg: "coordinate already occupied"}
	}

	next := s.clone()
	idx := next.indexOf(c)
	next.players[idx].Penguins = append(next.players[idx].Penguins, at)
	next.Turn = next.nextColorAfter(c)
	return next, nil
}

// MovePenguin slides color's penguin from `from` to `to`. Valid only in
// MovePenguins phase, on color's turn, when from holds one of color's
// penguins and to is reachable from it under the current occupancy.
func (s *State) MovePenguin(c Color, from, to coord.Coord) (*State, error) {
	if s.Phase != MovePenguins {
		return nil, &MovementError{Color: c, From: from, To: to, Msg: "not in movement phase"}
	}
	if s.Turn != c {
		return nil, &MovementError{Color: c, From: from, To: to, Msg: "not this player's turn"}
	}
	info, ok := s.PlayerInfo(c)
	if !ok || !info.hasPenguinAt(from) {
		return nil, &MovementError{Color: c, From: from, To: to, Msg: "no penguin at source"}
	}

	occ := s.occupiedCoords()
	reachable := s.Board.ReachableFrom(from, occ)
	found := false
	for _, r := range reachable {
		if r == to {
			found = true
			break
		}
	}
	if !found {
		return nil, &MovementError{Color: c, From: from, To: to, Msg: "destination not reachable"}
	}

	tile, err := s.Board.TileAt(from)
	if err != nil || !tile.Present {
		return nil, &MovementError{Color: c, From: from, To: to, Msg: "source tile is not present"}
	}

	next := s.clone()
	idx := next.indexOf(c)
	for i, pc := range next.players[idx].Penguins {
		if pc == from {
			next.players[idx].Penguins[i] = to
			break
		}
	}
	next.players[idx].Score += uint32(tile.Fish)
	if _, _, err := next.Board.RemoveTile(from); err != nil {
		return nil, &MovementError{Color: c, From: from, To: to, Msg: "could not remove source tile"}
	}
	next.Turn = next.nextColorAfter(c)
	return next, nil
}

// IncreaseTurn advances Turn to the next color in rotation, cyclically.
func (s *State) IncreaseTurn() *State {
	next := s.clone()
	next.Turn = next.nextColorAfter(s.Turn)
	return next
}

// Eject removes color from the game. If it held the current turn, turn is
// advanced first, so the next state's Turn always names a surviving color
// (or is meaningless if no players remain).
func (s *State) Eject(c Color) *State {
	next := s.clone()
	if next.Turn == c && len(next.players) > 1 {
		next.Turn = next.nextColorAfter(c)
	}
	filtered := next.players[:0:0]
	for _, p := range next.players {
		if p.Color != c {
			filtered = append(filtered, p)
		}
	}
	next.players = filtered
	return next
}

// SetPhase transitions to p. Phase transitions are monotone: p must not be
// earlier than the current phase.
func (s *State) SetPhase(p Phase) (*State, error) {
	if p < s.Phase {
		return nil, &StateError{Msg: "phase transitions only move forward"}
	}
	next := s.clone()
	next.Phase = p
	return next, nil
}

// Finalize transitions to EndGame; it cannot fail since EndGame is the last
// phase.
func (s *State) Finalize() *State {
	next, _ := s.SetPhase(EndGame)
	return next
}

// AnyPlayerCanMove reports whether some surviving player owns a penguin
// whose reachable set, under the current occupancy, is non-empty.
func (s *State) AnyPlayerCanMove() bool {
	occ := s.occupiedCoords()
	for _, p := range s.players {
		for _, pc := range p.Penguins {
			if len(s.Board.ReachableFrom(pc, occ)) > 0 {
				return true
			}
		}
	}
	return false
}

// Occupied returns the set of coordinates currently holding a penguin,
// across every surviving player.
func (s *State) Occupied() map[coord.Coord]bool {
	return s.occupiedCoords()
}

// PossibleMoves returns every legal action for color given the current
// occupancy, in no particular order.
func (s *State) PossibleMoves(c Color) []Action {
	info, ok := s.PlayerInfo(c)
	if !ok {
		return nil
	}
	occ := s.occupiedCoords()
	var moves []Action
	for _, from := range info.Penguins {
		for _, to := range s.Board.ReachableFrom(from, occ) {
			moves = append(moves, Action{From: from, To: to})
		}
	}
	return moves
}

// Equal reports whether s and o are structurally equal: same board, same
// ordered player sequence, same turn, same phase.
func (s *State) Equal(o *State) bool {
	if o == nil {
		return false
	}
	if s.Turn != o.Turn || s.Phase != o.Phase {
		return false
	}
	if !s.Board.Equal(o.Board) {
		return false
	}
	if len(s.players) != len(o.players) {
		return false
	}
	for i, p := range s.players {
		q := o.players[i]
		if p.Color != q.Color || p.Score != q.Score || len(p.Penguins) != len(q.Penguins) {
			return false
		}
		for j, pc := range p.Penguins {
			if q.Penguins[j] != pc {
				return false
			}
		}
	}
	return true
}
