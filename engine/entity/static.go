package entity

import (
	"github.com/1siamBot/rts-engine/engine/core"
	"github.com/1siamBot/rts-engine/engine/geom"
	"github.com/1siamBot/rts-engine/engine/sprites"
)

// StaticWorld is the part of the world a static entity talks to
type StaticWorld interface {
	RemoveStatic(h core.Handle)
}

// Static is a non-interactive animated entity, such as an impact effect.
// A non-looping static removes itself once its animation has played.
type Static struct {
	Base
	Sheet string
	anim  sprites.Animation
}

// NewStatic creates a static centred on c
func NewStatic(c geom.Point, size geom.Size, sheet string, anim sprites.Animation) *Static {
	return &Static{
		Base:  NewBaseCentred(c, size),
		Sheet: sheet,
		anim:  anim,
	}
}

// Tick advances the animation
func (s *Static) Tick(self core.Handle, w StaticWorld) {
	s.anim.Advance()
	if s.anim.Finished() {
		w.RemoveStatic(self)
	}
}

func (s *Static) Frame() sprites.Frame {
	return sprites.Frame{Sheet: s.Sheet, Seq: s.anim.Sequence(), Dir: geom.Down, Index: s.anim.Index()}
}

// NewDeadUnit builds the marker left behind by a dead unit. It shows the
// last frame of the dead sequence forever.
func NewDeadUnit(topLeft geom.Point, size geom.Size, sheet string, dir geom.Direction, frames int) *DeadUnit {
	return &DeadUnit{
		Base:  NewBase(topLeft, size),
		Sheet: sheet,
		Dir:   dir,
		last:  frames - 1,
	}
}

// DeadUnit marks where a unit died
type DeadUnit struct {
	Base
	Sheet string
	Dir   geom.Direction
	last  int
}

func (d *DeadUnit) Frame() sprites.Frame {
	idx := d.last
	if idx < 0 {
		idx = 0
	}
	return sprites.Frame{Sheet: d.Sheet, Seq: sprites.SeqDead, Dir: d.Dir, Index: idx}
}

// Obstacle blocks the map cells under it
type Obstacle struct {
	Base
	Kind string
}

// NewObstacle covers w x h map cells, the first one centred on cell
func NewObstacle(cell geom.Point, w, h int, kind string) *Obstacle {
	tl := cell.Rounded().Sub(geom.Pt(0.5, 0.5))
	return &Obstacle{Base: NewBase(tl, geom.Size{W: float64(w), H: float64(h)}), Kind: kind}
}

// Cells lists the cells the obstacle covers
func (o *Obstacle) Cells() []geom.Point {
	r := o.Rect()
	start := r.Min.Add(geom.Pt(0.5, 0.5))
	var out []geom.Point
	for y := start.Y; y < r.Max().Y; y++ {
		for x := start.X; x < r.Max().X; x++ {
			out = append(out, geom.Pt(x, y).Rounded())
		}
	}
	return out
}
