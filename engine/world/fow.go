package world

import (
	"math"

	"github.com/1siamBot/rts-engine/engine/core"
	"github.com/1siamBot/rts-engine/engine/geom"
	"github.com/1siamBot/rts-engine/engine/unit"
)

// FogState represents visibility of a tile
type FogState uint8

const (
	FogShroud   FogState = iota // never seen
	FogExplored                 // seen before but not now
	FogVisible                  // currently visible
)

// Fog tracks what one team can see
type Fog struct {
	Width, Height int
	Grid          []FogState
	Team          core.Team
}

func NewFog(w, h int, team core.Team) *Fog {
	return &Fog{
		Width:  w,
		Height: h,
		Grid:   make([]FogState, w*h),
		Team:   team,
	}
}

// At returns the fog state of the cell under p
func (f *Fog) At(p geom.Point) FogState {
	c := p.Rounded()
	x, y := int(c.X), int(c.Y)
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return FogShroud
	}
	return f.Grid[y*f.Width+x]
}

// Visible reports whether the cell under p is currently in sight
func (f *Fog) Visible(p geom.Point) bool {
	return f.At(p) == FogVisible
}

func (f *Fog) fade() {
	for i := range f.Grid {
		if f.Grid[i] == FogVisible {
			f.Grid[i] = FogExplored
		}
	}
}

// reveal marks every cell whose centre lies within r of c
func (f *Fog) reveal(c geom.Point, r float64) {
	x0 := max(int(math.Floor(c.X-r)), 0)
	y0 := max(int(math.Floor(c.Y-r)), 0)
	x1 := min(int(math.Ceil(c.X+r)), f.Width-1)
	y1 := min(int(math.Ceil(c.Y+r)), f.Height-1)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if c.Distance(geom.Pt(float64(x), float64(y))) <= r {
				f.Grid[y*f.Width+x] = FogVisible
			}
		}
	}
}

// Fog returns the fog of a team, or nil before the team has had a unit
func (w *World) Fog(team core.Team) *Fog { return w.fog[team] }

// Visible reports whether team can currently see p. Without fog of war
// everything is visible.
func (w *World) Visible(team core.Team, p geom.Point) bool {
	if !w.cfg.FogOfWar {
		return true
	}
	f := w.fog[team]
	return f != nil && f.Visible(p)
}

func (w *World) updateFog() {
	for _, f := range w.fog {
		f.fade()
	}
	w.units.Each(func(_ core.Handle, u *unit.Unit) {
		if u.Dead() {
			return
		}
		f := w.fog[u.Team()]
		if f == nil {
			f = NewFog(w.tiles.Width, w.tiles.Height, u.Team())
			w.fog[u.Team()] = f
		}
		f.reveal(u.Centre(), u.LineOfSight())
	})
}
