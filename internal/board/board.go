// Package board implements the Fish hex grid: rectangular in double-height
// coordinates, tiles carrying 1-5 fish or absent (a hole), and straight-line
// traversal along the six hex axes.
package board

import (
	"fmt"
	"math/rand"

	"github.com/hailam/fish/internal/coord"
)

// Tile is a single board slot. A zero-value Tile with Present == false is a
// hole.
type Tile struct {
	Present bool
	Fish    int // 1..5, meaningless when Present is false
}

// Error is the Board component's error kind (spec: BoardError).
type Error struct {
	Op  string
	C   coord.Coord
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("board: %s %v: %s", e.Op, e.C, e.Msg)
}

// Board is a rows x cols grid of tile slots indexed by double-height
// Coordinate. Only coordinates whose parity matches their row are valid.
type Board struct {
	rows, cols int
	tiles      map[coord.Coord]Tile
}

// valid reports whether c is in-bounds and parity-correct for this board.
func (b *Board) valid(c coord.Coord) bool {
	if c.Y < 0 || c.Y >= b.rows {
		return false
	}
	maxX := 2*b.cols - 1
	if c.X < 0 || c.X > maxX {
		return false
	}
	return coord.ParityOK(c)
}

// Rows returns the number of board rows.
func (b *Board) Rows() int { return b.rows }

// Cols returns the number of board columns.
func (b *Board) Cols() int { return b.cols }

// colFromX recovers the zero-based column for a valid coordinate's X.
func colFromX(x int) int { return x / 2 }

// xFromCol computes double-height X from a zero-based row/col pair.
func xFromCol(row, col int) int {
	if row%2 == 0 {
		return col * 2
	}
	return col*2 + 1
}

// New creates an empty board (all tiles present, 0 fish). Used only as
// scaffolding by Uniform.
func New(rows, cols int) *Board {
	b := &Board{rows: rows, cols: cols, tiles: make(map[coord.Coord]Tile, rows*cols)}
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			c := coord.Coord{X: xFromCol(row, col), Y: row}
			b.tiles[c] = Tile{Present: true, Fish: 0}
		}
	}
	return b
}

// Uniform creates a board where every tile is present with the same fish
// count k.
func Uniform(rows, cols, k int) *Board {
	b := New(rows, cols)
	for c := range b.tiles {
		b.tiles[c] = Tile{Present: true, Fish: k}
	}
	return b
}

// Sparse creates a board from a caller-supplied coordinate->fish-count map.
// Coordinates absent from fish are holes.
func Sparse(rows, cols int, fish map[coord.Coord]int) (*Board, error) {
	b := &Board{rows: rows, cols: cols, tiles: make(map[coord.Coord]Tile, rows*cols)}
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			c := coord.Coord{X: xFromCol(row, col), Y: row}
			if n, ok := fish[c]; ok {
				b.tiles[c] = Tile{Present: true, Fish: n}
			} else {
				b.tiles[c] = Tile{Present: false}
			}
		}
	}
	for c := range fish {
		if !b.valid(c) {
			return nil, &Error{Op: "Sparse", C: c, Msg: "coordinate out of grid or wrong parity"}
		}
	}
	return b, nil
}

// RandomWithHoles creates a board with holes at the given coordinates and
// random 1..5 fish counts elsewhere, guaranteeing at least minOnes tiles
// carry exactly one fish. rng must be non-nil; callers own its seeding so
// tests stay deterministic.
func RandomWithHoles(rows, cols int, holes map[coord.Coord]bool, minOnes int, rng *rand.Rand) (*Board, error) {
	total := rows * cols
	available := total - len(holes)
	if minOnes > available {
		return nil, &Error{Op: "RandomWithHoles", Msg: fmt.Sprintf("minimum one-fish count %d unsatisfiable with %d present tiles", minOnes, available)}
	}

	b := &Board{rows: rows, cols: cols, tiles: make(map[coord.Coord]Tile, total)}
	order := make([]coord.Coord, 0, available)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			c := coord.Coord{X: xFromCol(row, col), Y: row}
			if holes[c] {
				b.tiles[c] = Tile{Present: false}
				continue
			}
			order = append(order, c)
		}
	}

	rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	for i, c := range order {
		if i < minOnes {
			b.tiles[c] = Tile{Present: true, Fish: 1}
			continue
		}
		b.tiles[c] = Tile{Present: true, Fish: 1 + rng.Intn(5)}
	}
	return b, nil
}

// Clone deep-copies the board's tile storage, used by GameState's
// copy-on-write mutators.
func (b *Board) Clone() *Board {
	nb := &Board{rows: b.rows, cols: b.cols, tiles: make(map[coord.Coord]Tile, len(b.tiles))}
	for c, t := range b.tiles {
		nb.tiles[c] = t
	}
	return nb
}

// Equal reports structural equality of two boards.
func (b *Board) Equal(o *Board) bool {
	if b.rows != o.rows || b.cols != o.cols {
		return false
	}
	for c, t := range b.tiles {
		if ot, ok := o.tiles[c]; !ok || ot != t {
			return false
		}
	}
	return true
}

// TileAt returns the tile at c. It rejects invalid coordinates with an
// error distinct from simply reporting a hole.
func (b *Board) TileAt(c coord.Coord) (Tile, error) {
	if !b.valid(c) {
		return Tile{}, &Error{Op: "TileAt", C: c, Msg: "invalid coordinate"}
	}
	return b.tiles[c], nil
}

// RemoveTile replaces the tile at c with a hole, returning the tile that was
// there. If c was already a hole, ok is false.
func (b *Board) RemoveTile(c coord.Coord) (removed Tile, ok bool, err error) {
	if !b.valid(c) {
		return Tile{}, false, &Error{Op: "RemoveTile", C: c, Msg: "invalid coordinate"}
	}
	t := b.tiles[c]
	if !t.Present {
		return Tile{}, false, nil
	}
	b.tiles[c] = Tile{Present: false}
	return t, true, nil
}

// StraightLine follows dir from c, emitting coordinates of consecutive
// present tiles. It stops at the first hole or grid edge; c itself is never
// included.
func (b *Board) StraightLine(c coord.Coord, dir coord.Direction) []coord.Coord {
	var out []coord.Coord
	cur := coord.Add(c, dir)
	for b.valid(cur) {
		t := b.tiles[cur]
		if !t.Present {
			break
		}
		out = append(out, cur)
		cur = coord.Add(cur, dir)
	}
	return out
}

// ReachableFrom returns the union of StraightLine in all six directions from
// c, treating coordinates in blocked as holes (in addition to actual holes).
func (b *Board) ReachableFrom(c coord.Coord, blocked map[coord.Coord]bool) []coord.Coord {
	var out []coord.Coord
	for _, dir := range coord.All {
		cur := coord.Add(c, dir)
		for b.valid(cur) {
			t := b.tiles[cur]
			if !t.Present || blocked[cur] {
				break
			}
			out = append(out, cur)
			cur = coord.Add(cur, dir)
		}
	}
	return out
}

// AllCoords returns every valid coordinate in row-major order (by Y, then
// X), used by Strategy's placement search.
func (b *Board) AllCoords() []coord.Coord {
	out := make([]coord.Coord, 0, b.rows*b.cols)
	for row := 0; row < b.rows; row++ {
		for col := 0; col < b.cols; col++ {
			out = append(out, coord.Coord{X: xFromCol(row, col), Y: row})
		}
	}
	return out
}
