package entity

import "github.com/1siamBot/rts-engine/engine/geom"

// Base holds the placement shared by everything that lives on the map.
// Positions are top-left corners in map units.
type Base struct {
	topLeft     geom.Point
	prevTopLeft geom.Point
	size        geom.Size
}

// NewBase places an entity with its top-left corner at p
func NewBase(p geom.Point, s geom.Size) Base {
	return Base{topLeft: p, prevTopLeft: p, size: s}
}

// NewBaseCentred places an entity with its centre at c
func NewBaseCentred(c geom.Point, s geom.Size) Base {
	p := geom.Pt(c.X-s.W/2, c.Y-s.H/2)
	return NewBase(p, s)
}

func (b *Base) TopLeft() geom.Point     { return b.topLeft }
func (b *Base) PrevTopLeft() geom.Point { return b.prevTopLeft }
func (b *Base) Size() geom.Size         { return b.size }
func (b *Base) Rect() geom.Rect         { return geom.RectAt(b.topLeft, b.size) }
func (b *Base) Centre() geom.Point      { return b.Rect().Centre() }

// Translate moves the entity by d, remembering where it was
func (b *Base) Translate(d geom.Point) {
	b.prevTopLeft = b.topLeft
	b.topLeft = b.topLeft.Add(d)
}

// MoveCentreTo moves the entity so that its centre lands on c
func (b *Base) MoveCentreTo(c geom.Point) {
	b.Translate(c.Sub(b.Centre()))
}

// SetSize resizes the entity keeping its centre in place
func (b *Base) SetSize(s geom.Size) {
	c := b.Centre()
	b.size = s
	b.topLeft = geom.Pt(c.X-s.W/2, c.Y-s.H/2)
	b.prevTopLeft = b.topLeft
}

// Moved reports whether the entity moved on its last Translate
func (b *Base) Moved() bool { return b.topLeft != b.prevTopLeft }
