package coord

import "testing"

func TestParityOK(t *testing.T) {
	tests := []struct {
		c    Coord
		want bool
	}{
		{Coord{X: 0, Y: 0}, true},
		{Coord{X: 1, Y: 0}, false},
		{Coord{X: 1, Y: 1}, true},
		{Coord{X: 0, Y: 1}, false},
		{Coord{X: 2, Y: 4}, true},
	}

	for _, tc := range tests {
		t.Run(tc.c.String(), func(t *testing.T) {
			if got := ParityOK(tc.c); got != tc.want {
				t.Errorf("ParityOK(%v) = %v, want %v", tc.c, got, tc.want)
			}
		})
	}
}

func TestAddAllDirections(t *testing.T) {
	origin := Coord{X: 2, Y: 2}
	want := map[Direction]Coord{
		North:     {X: 2, Y: 0},
		South:     {X: 2, Y: 4},
		Northeast: {X: 3, Y: 1},
		Southeast: {X: 3, Y: 3},
		Northwest: {X: 1, Y: 1},
		Southwest: {X: 1, Y: 3},
	}

	for dir, exp := range want {
		if got := Add(origin, dir); got != exp {
			t.Errorf("Add(%v, %v) = %v, want %v", origin, dir, got, exp)
		}
	}
}

func TestLess(t *testing.T) {
	a := Coord{X: 4, Y: 0}
	b := Coord{X: 0, Y: 2}
	if !Less(a, b) {
		t.Errorf("expected %v < %v (row-major)", a, b)
	}
	c := Coord{X: 0, Y: 0}
	d := Coord{X: 2, Y: 0}
	if !Less(c, d) {
		t.Errorf("expected %v < %v on tied row", c, d)
	}
}
