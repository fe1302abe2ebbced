// Package wire converts between the internal double-height representation
// (coord, board, fish) and the JSON shapes that cross a network boundary:
// [row, col] positions, row-major integer boards, and the state object
// described by the remote protocol. All conversion lives here so the rest
// of the module never has to think in row/col terms.
package wire

import (
	"fmt"

	"github.com/hailam/fish/internal/board"
	"github.com/hailam/fish/internal/coord"
	"github.com/hailam/fish/internal/fish"
)

// Coord is the wire position format: [row, col], zero-indexed.
type Coord [2]int

// ToInternal converts a wire coordinate to the internal double-height
// coordinate. Translation: x = col*2 on even rows, else col*2+1; y = row.
func (c Coord) ToInternal() coord.Coord {
	row, col := c[0], c[1]
	x := col * 2
	if row%2 != 0 {
		x = col*2 + 1
	}
	return coord.Coord{X: x, Y: row}
}

// FromInternal converts a double-height coordinate to its wire [row, col]
// form. This is the inverse of ToInternal: row = y, col = x/2.
func FromInternal(c coord.Coord) Coord {
	return Coord{c.Y, c.X / 2}
}

// Action is the wire action format: [[from_row, from_col], [to_row, to_col]].
type Action [2]Coord

func (a Action) ToInternal() fish.Action {
	return fish.Action{From: a[0].ToInternal(), To: a[1].ToInternal()}
}

func ActionFromInternal(a fish.Action) Action {
	return Action{FromInternal(a.From), FromInternal(a.To)}
}

// Board is the wire board format: row-major, 0 = hole, 1..5 = fish count.
// Rows may be ragged on input; ParseBoard right-pads short rows with holes.
type Board [][]int

// ParseBoard builds an internal board from wire rows, normalizing ragged
// rows to the maximum row length by treating missing cells as holes.
func ParseBoard(rows Board) (*board.Board, error) {
	maxCols := 0
	for _, row := range rows {
		if len(row) > maxCols {
			maxCols = len(row)
		}
	}
	fishCounts := make(map[coord.Coord]int)
	for row, cells := range rows {
		for col := 0; col < maxCols; col++ {
			v := 0
			if col < len(cells) {
				v = cells[col]
			}
			if v == 0 {
				continue
			}
			if v < 1 || v > 5 {
				return nil, fmt.Errorf("wire: fish count %d out of range at row %d col %d", v, row, col)
			}
			fishCounts[Coord{row, col}.ToInternal()] = v
		}
	}
	return board.Sparse(len(rows), maxCols, fishCounts)
}

// SerializeBoard renders an internal board back to row-major wire form.
func SerializeBoard(b *board.Board) Board {
	out := make(Board, b.Rows())
	for row := 0; row < b.Rows(); row++ {
		cells := make([]int, b.Cols())
		for col := 0; col < b.Cols(); col++ {
			c := Coord{row, col}.ToInternal()
			tile, err := b.TileAt(c)
			if err != nil || !tile.Present {
				cells[col] = 0
				continue
			}
			cells[col] = tile.Fish
		}
		out[row] = cells
	}
	return out
}

// PlayerRow is one entry of the wire state's players array.
type PlayerRow struct {
	Color  string  `json:"color"`
	Score  int     `json:"score"`
	Places []Coord `json:"places"`
}

// State is the wire state format. Players is rotated so the current turn's
// entry is first.
type State struct {
	Players []PlayerRow `json:"players"`
	Board   Board       `json:"board"`
}

// SerializeState renders s into wire form, rotating Players so s.Turn is
// first.
func SerializeState(s *fish.State) State {
	players := s.Players()
	rows := make([]PlayerRow, len(players))
	turnIdx := 0
	for i, p := range players {
		places := make([]Coord, len(p.Penguins))
		for j, pc := range p.Penguins {
			places[j] = FromInternal(pc)
		}
		rows[i] = PlayerRow{Color: p.Color.String(), Score: int(p.Score), Places: places}
		if p.Color == s.Turn {
			turnIdx = i
		}
	}
	rotated := make([]PlayerRow, len(rows))
	for i := range rows {
		rotated[i] = rows[(turnIdx+i)%len(rows)]
	}
	return State{Players: rotated, Board: SerializeBoard(s.Board)}
}

// ParseState reconstructs internal state from its wire form. phase must say
// whether w represents a PlacePenguins or MovePenguins snapshot, since the
// wire format itself carries no phase field (the enclosing RPC, "setup" or
// "take-turn", is what tells a real caller which one it is). The resulting
// state's turn rotation order is exactly w.Players' order, so the current
// player (first in the list, by wire convention) is the parsed state's Turn.
func ParseState(w State, phase fish.Phase) (*fish.State, error) {
	b, err := ParseBoard(w.Board)
	if err != nil {
		return nil, fmt.Errorf("wire: parsing board: %w", err)
	}
	if len(w.Players) == 0 {
		return nil, fmt.Errorf("wire: state has no players")
	}
	players := make([]fish.Info, len(w.Players))
	for i, p := range w.Players {
		c, err := fish.ParseColor(p.Color)
		if err != nil {
			return nil, fmt.Errorf("wire: player %d: %w", i, err)
		}
		penguins := make([]coord.Coord, len(p.Places))
		for j, place := range p.Places {
			penguins[j] = place.ToInternal()
		}
		players[i] = fish.Info{Color: c, Penguins: penguins, Score: uint32(p.Score)}
	}
	turn, err := fish.ParseColor(w.Players[0].Color)
	if err != nil {
		return nil, fmt.Errorf("wire: current player: %w", err)
	}
	s, err := fish.Restore(b, players, turn, phase)
	if err != nil {
		return nil, fmt.Errorf("wire: restoring state: %w", err)
	}
	return s, nil
}
