package sim

import (
	"math"
	"reflect"
	"testing"
)

func TestArena_DefaultWalls(t *testing.T) {
	a := NewArena(DefaultLayout)
	walls := a.Walls()
	if len(walls) != 54 {
		t.Fatalf("walls = %d, want 54", len(walls))
	}
	if walls[0] != (Tile{0, 0}) || walls[len(walls)-1] != (Tile{9, 9}) {
		t.Fatalf("walls not in row-major order: first %v last %v", walls[0], walls[len(walls)-1])
	}
}

func TestArena_CentreFormula(t *testing.T) {
	a := NewArena(DefaultLayout)
	x, z := a.Center(Tile{I: 2, J: 3})
	if math.Abs(x-(-30.8)) > 1e-9 || math.Abs(z-57.6) > 1e-9 {
		t.Fatalf("centre(2,3) = (%v,%v)", x, z)
	}
}

func TestArena_TileAtRoundTrips(t *testing.T) {
	a := NewArena(DefaultLayout)
	for i := 0; i < ArenaSize; i++ {
		for j := 0; j < ArenaSize; j++ {
			want := Tile{I: i, J: j}
			x, z := a.Center(want)
			if got := a.TileAt(x+3, z-3); got != want {
				t.Fatalf("TileAt near centre of %v = %v", want, got)
			}
		}
	}
}

func TestArena_Directions(t *testing.T) {
	a := NewArena(DefaultLayout)
	cases := []struct {
		at   Tile
		want []MoveState
	}{
		{Tile{1, 1}, []MoveState{MoveSouth, MoveEast}},
		{Tile{4, 4}, []MoveState{MoveNorth, MoveSouth, MoveWest, MoveEast}},
		{Tile{6, 6}, []MoveState{MoveNorth, MoveEast}},
		{Tile{8, 8}, []MoveState{MoveNorth, MoveWest}},
		{Tile{4, 1}, []MoveState{MoveNorth, MoveSouth, MoveEast}},
	}
	for _, c := range cases {
		if got := a.Directions(c.at); !reflect.DeepEqual(got, c.want) {
			t.Errorf("Directions(%v) = %v, want %v", c.at, got, c.want)
		}
	}
	if d := a.Directions(Tile{0, 0}); len(d) != 0 {
		t.Fatalf("wall tile has directions %v", d)
	}
}

func TestArena_EveryOpenTileHasAnExit(t *testing.T) {
	a := NewArena(DefaultLayout)
	for i := 0; i < ArenaSize; i++ {
		for j := 0; j < ArenaSize; j++ {
			tile := Tile{I: i, J: j}
			if !a.Open(tile) {
				continue
			}
			for _, m := range a.Directions(tile) {
				s := m.step()
				if !a.Open(Tile{I: i + s.I, J: j + s.J}) {
					t.Fatalf("%v -> %v leads into a wall", tile, m)
				}
			}
			if len(a.Directions(tile)) == 0 {
				t.Fatalf("open tile %v has no exits", tile)
			}
		}
	}
}

func TestArena_OutOfBounds(t *testing.T) {
	a := NewArena(DefaultLayout)
	for _, tile := range []Tile{{-1, 4}, {4, -1}, {10, 4}, {4, 10}} {
		if a.Open(tile) || a.Wall(tile) {
			t.Fatalf("%v outside the arena should be neither open nor wall", tile)
		}
	}
}

func TestMoveState_Headings(t *testing.T) {
	want := map[MoveState]float64{MoveEast: 0, MoveNorth: 90, MoveWest: 180, MoveSouth: 270}
	for m, h := range want {
		if m.Heading() != h {
			t.Errorf("%v heading = %v, want %v", m, m.Heading(), h)
		}
		// the heading must point toward the tile the step leads to
		a := NewArena(DefaultLayout)
		s := m.step()
		x0, z0 := a.Center(Tile{4, 4})
		x1, z1 := a.Center(Tile{4 + s.I, 4 + s.J})
		v := headingVector(h)
		if (x1-x0)*v.X()+(z1-z0)*v.Z() <= 0 {
			t.Errorf("%v heading does not face its step", m)
		}
	}
}
