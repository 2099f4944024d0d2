package geom

// Size is a width and height in tile units
type Size struct {
	W, H float64
}

// Scale multiplies both sides, capping each side at max (max <= 0 means uncapped)
func (s Size) Scale(f, max float64) Size {
	w, h := s.W*f, s.H*f
	if max > 0 {
		w = min(w, max)
		h = min(h, max)
	}
	return Size{W: w, H: h}
}

// Rect is an axis-aligned bounding box
type Rect struct {
	Min  Point
	Size Size
}

// RectAt builds the bounding box of something at topLeft with the given size
func RectAt(topLeft Point, size Size) Rect {
	return Rect{Min: topLeft, Size: size}
}

func (r Rect) Max() Point {
	return Point{X: r.Min.X + r.Size.W, Y: r.Min.Y + r.Size.H}
}

func (r Rect) Centre() Point {
	return Point{X: r.Min.X + r.Size.W/2, Y: r.Min.Y + r.Size.H/2}
}

// Contains is inclusive of the top-left edge and exclusive of the bottom-right edge
func (r Rect) Contains(p Point) bool {
	max := r.Max()
	return p.X >= r.Min.X && p.Y >= r.Min.Y && p.X < max.X && p.Y < max.Y
}
