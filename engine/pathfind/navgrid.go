package pathfind

import (
	"github.com/1siamBot/rts-engine/engine/geom"
	"github.com/1siamBot/rts-engine/engine/maplib"
)

// NavGrid provides a navigation grid derived from the tile map. Cell (x, y)
// covers the map points that round to (x, y).
type NavGrid struct {
	Width, Height int
	passFlags     []maplib.PassFlag
	blocked       []bool
}

// NewNavGrid builds a navigation grid from a tile map
func NewNavGrid(tm *maplib.TileMap) *NavGrid {
	ng := &NavGrid{
		Width:     tm.Width,
		Height:    tm.Height,
		passFlags: make([]maplib.PassFlag, tm.Width*tm.Height),
		blocked:   make([]bool, tm.Width*tm.Height),
	}
	for i, t := range tm.Tiles {
		ng.passFlags[i] = t.Passable
		ng.blocked[i] = t.Occupied
	}
	return ng
}

// PassableCell checks if a cell is passable for a given movement flag
func (ng *NavGrid) PassableCell(x, y int, flag maplib.PassFlag) bool {
	if x < 0 || y < 0 || x >= ng.Width || y >= ng.Height {
		return false
	}
	i := y*ng.Width + x
	return ng.passFlags[i]&flag != 0 && !ng.blocked[i]
}

// Passable checks the cell under a map point
func (ng *NavGrid) Passable(p geom.Point, flag maplib.PassFlag) bool {
	c := p.Rounded()
	return ng.PassableCell(int(c.X), int(c.Y), flag)
}

// Predicate returns the passability function FindPath expects
func (ng *NavGrid) Predicate(flag maplib.PassFlag) Passability {
	return func(p geom.Point) bool {
		return ng.Passable(p, flag)
	}
}

// Refresh rebuilds the nav grid from a tile map, picking up occupied tiles.
// Predicates taken earlier see the new state.
func (ng *NavGrid) Refresh(tm *maplib.TileMap) {
	*ng = *NewNavGrid(tm)
}
