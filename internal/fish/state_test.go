package fish

import (
	"testing"

	"github.com/hailam/fish/internal/board"
	"github.com/hailam/fish/internal/coord"
)

func newTestState(t *testing.T, rows, cols, k int, colors ...Color) *State {
	t.Helper()
	b := board.Uniform(rows, cols, k)
	s, err := New(b, colors)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestPlacementRotatesTurnAndEnforcesQuota(t *testing.T) {
	s := newTestState(t, 3, 3, 3, Red, White)
	if s.Quota() != 4 {
		t.Fatalf("Quota() = %d, want 4 for 2 players", s.Quota())
	}

	s, err := s.PlacePenguin(Red, coord.Coord{X: 0, Y: 0})
	if err != nil {
		t.Fatalf("PlacePenguin: %v", err)
	}
	if s.Turn != White {
		t.Fatalf("Turn after red's placement = %v, want White", s.Turn)
	}

	if _, err := s.PlacePenguin(Red, coord.Coord{X: 2, Y: 0}); err == nil {
		t.Fatal("expected error placing out of turn")
	}
}

func TestPlacementRejectsOccupiedAndHoleAndOverQuota(t *testing.T) {
	s := newTestState(t, 3, 3, 3, Red, White)

	at := coord.Coord{X: 0, Y: 0}
	s, err := s.PlacePenguin(Red, at)
	if err != nil {
		t.Fatalf("PlacePenguin: %v", err)
	}
	s, err = s.PlacePenguin(White, coord.Coord{X: 2, Y: 0})
	if err != nil {
		t.Fatalf("PlacePenguin: %v", err)
	}

	if _, err := s.PlacePenguin(Red, at); err == nil {
		t.Fatal("expected error placing on occupied tile")
	}

	hole := coord.Coord{X: 0, Y: 2}
	if _, _, err := s.Board.RemoveTile(hole); err != nil {
		t.Fatalf("RemoveTile: %v", err)
	}
	if _, err := s.PlacePenguin(Red, hole); err == nil {
		t.Fatal("expected error placing on a hole")
	}

	full := newTestState(t, 3, 3, 3, Red, White)
	for _, c := range full.Board.AllCoords()[:8] {
		full, err = full.PlacePenguin(full.Turn, c)
		if err != nil {
			t.Fatalf("PlacePenguin: %v", err)
		}
	}
	if _, err := full.PlacePenguin(Red, full.Board.AllCoords()[8]); err == nil {
		t.Fatal("expected error placing beyond the placement quota")
	}
}

func TestMovePenguinScoresAndCreatesHole(t *testing.T) {
	s := newTestState(t, 3, 3, 3, Red, White)
	from := coord.Coord{X: 0, Y: 0}
	s, err := s.PlacePenguin(Red, from)
	if err != nil {
		t.Fatalf("PlacePenguin: %v", err)
	}
	s, err = s.PlacePenguin(White, coord.Coord{X: 2, Y: 0})
	if err != nil {
		t.Fatalf("PlacePenguin: %v", err)
	}
	s, err = s.SetPhase(MovePenguins)
	if err != nil {
		t.Fatalf("SetPhase: %v", err)
	}

	to := coord.Add(from, coord.South)
	moved, err := s.MovePenguin(Red, from, to)
	if err != nil {
		t.Fatalf("MovePenguin: %v", err)
	}
	info, _ := moved.PlayerInfo(Red)
	if info.Score != 3 {
		t.Errorf("Score after move = %d, want 3", info.Score)
	}
	if !info.hasPenguinAt(to) || info.hasPenguinAt(from) {
		t.Errorf("penguin position after move = %v, want at %v only", info.Penguins, to)
	}
	tile, err := moved.Board.TileAt(from)
	if err != nil {
		t.Fatalf("TileAt: %v", err)
	}
	if tile.Present {
		t.Error("origin tile should become a hole after moving off it")
	}
	if moved.Turn != White {
		t.Errorf("Turn after red's move = %v, want White", moved.Turn)
	}
}

func TestEjectAdvancesTurnThenRemoves(t *testing.T) {
	s := newTestState(t, 3, 3, 3, Red, White, Brown)
	s = s.IncreaseTurn() // Turn = White
	ejected := s.Eject(White)
	if ejected.Turn != Brown {
		t.Errorf("Turn after ejecting current player = %v, want Brown", ejected.Turn)
	}
	if _, ok := ejected.PlayerInfo(White); ok {
		t.Error("ejected color must not remain a key afterward")
	}
}

func TestNoTwoPenguinsShareACoordinate(t *testing.T) {
	s := newTestState(t, 3, 3, 3, Red, White)
	s, _ = s.PlacePenguin(Red, coord.Coord{X: 0, Y: 0})
	seen := map[coord.Coord]bool{}
	for _, p := range s.Players() {
		for _, c := range p.Penguins {
			if seen[c] {
				t.Fatalf("duplicate penguin coordinate %v", c)
			}
			seen[c] = true
		}
	}
}

func TestPhaseTransitionsOnlyForward(t *testing.T) {
	s := newTestState(t, 3, 3, 3, Red, White)
	s, err := s.SetPhase(MovePenguins)
	if err != nil {
		t.Fatalf("SetPhase forward: %v", err)
	}
	if _, err := s.SetPhase(PlacePenguins); err == nil {
		t.Fatal("expected error moving phase backward")
	}
}

func TestFinalizeIdempotent(t *testing.T) {
	s := newTestState(t, 3, 3, 3, Red, White)
	s = s.Finalize()
	s = s.Finalize()
	if s.Phase != EndGame {
		t.Errorf("Phase = %v, want EndGame", s.Phase)
	}
}
