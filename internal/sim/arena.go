package sim

import "math"

// ArenaSize is the tile count per side of the arena.
const ArenaSize = 10

// Tile centres: x = tileOriginX + j*tileStepX, z = tileOriginZ - i*tileStepZ.
const (
	tileOriginX = -119.0
	tileStepX   = 29.4
	tileOriginZ = 116.0
	tileStepZ   = 29.2
)

// DefaultLayout is the arena wall map: 1 marks a building, 0 open ground.
// Rows run north (i=0) to south, columns west (j=0) to east.
var DefaultLayout = [ArenaSize][ArenaSize]int{
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	{1, 0, 0, 0, 0, 0, 0, 0, 0, 1},
	{1, 0, 0, 0, 0, 0, 1, 1, 0, 1},
	{1, 0, 0, 1, 0, 1, 1, 1, 0, 1},
	{1, 0, 0, 0, 0, 0, 0, 0, 0, 1},
	{1, 0, 1, 1, 0, 1, 0, 1, 0, 1},
	{1, 0, 1, 1, 0, 1, 0, 0, 0, 1},
	{1, 0, 1, 1, 0, 1, 1, 1, 0, 1},
	{1, 0, 0, 0, 0, 0, 0, 0, 0, 1},
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
}

// Tile addresses one arena cell by row and column.
type Tile struct {
	I, J int
}

// MoveState is a patrol direction. The zero value means no direction chosen.
type MoveState int

const (
	MoveNone MoveState = iota
	MoveNorth
	MoveSouth
	MoveWest
	MoveEast
)

// Heading returns the fixed heading in degrees for a patrol direction.
func (m MoveState) Heading() float64 {
	switch m {
	case MoveNorth:
		return 90
	case MoveSouth:
		return 270
	case MoveWest:
		return 180
	case MoveEast:
		return 0
	default:
		return 0
	}
}

func (m MoveState) String() string {
	switch m {
	case MoveNorth:
		return "north"
	case MoveSouth:
		return "south"
	case MoveWest:
		return "west"
	case MoveEast:
		return "east"
	default:
		return "none"
	}
}

// step is the tile offset a direction leads to.
func (m MoveState) step() Tile {
	switch m {
	case MoveNorth:
		return Tile{I: -1}
	case MoveSouth:
		return Tile{I: 1}
	case MoveWest:
		return Tile{J: -1}
	case MoveEast:
		return Tile{J: 1}
	default:
		return Tile{}
	}
}

// Arena is the tile map plus the patrol table derived from it.
type Arena struct {
	layout [ArenaSize][ArenaSize]int
	// patrol lists the legal directions out of every open tile.
	patrol map[Tile][]MoveState
}

// NewArena builds the patrol table for layout once.
func NewArena(layout [ArenaSize][ArenaSize]int) *Arena {
	a := &Arena{layout: layout, patrol: make(map[Tile][]MoveState)}
	for i := 0; i < ArenaSize; i++ {
		for j := 0; j < ArenaSize; j++ {
			t := Tile{I: i, J: j}
			if !a.Open(t) {
				continue
			}
			var dirs []MoveState
			for _, m := range []MoveState{MoveNorth, MoveSouth, MoveWest, MoveEast} {
				s := m.step()
				if a.Open(Tile{I: i + s.I, J: j + s.J}) {
					dirs = append(dirs, m)
				}
			}
			a.patrol[t] = dirs
		}
	}
	return a
}

// Open reports whether t is inside the arena and free of buildings.
func (a *Arena) Open(t Tile) bool {
	if t.I < 0 || t.I >= ArenaSize || t.J < 0 || t.J >= ArenaSize {
		return false
	}
	return a.layout[t.I][t.J] == 0
}

// Wall reports whether t holds a building.
func (a *Arena) Wall(t Tile) bool {
	if t.I < 0 || t.I >= ArenaSize || t.J < 0 || t.J >= ArenaSize {
		return false
	}
	return a.layout[t.I][t.J] != 0
}

// Directions returns the legal patrol directions out of t.
func (a *Arena) Directions(t Tile) []MoveState {
	return a.patrol[t]
}

// Center returns the world-space centre of t on the ground plane.
func (a *Arena) Center(t Tile) (x, z float64) {
	return tileOriginX + float64(t.J)*tileStepX, tileOriginZ - float64(t.I)*tileStepZ
}

// TileAt returns the tile nearest to world (x, z).
func (a *Arena) TileAt(x, z float64) Tile {
	return Tile{
		I: int(math.Round((tileOriginZ - z) / tileStepZ)),
		J: int(math.Round((x - tileOriginX) / tileStepX)),
	}
}

// Walls lists every building tile in row-major order.
func (a *Arena) Walls() []Tile {
	var out []Tile
	for i := 0; i < ArenaSize; i++ {
		for j := 0; j < ArenaSize; j++ {
			if a.layout[i][j] != 0 {
				out = append(out, Tile{I: i, J: j})
			}
		}
	}
	return out
}
