package geom

import (
	"fmt"
	"math"
)

// Point is a position on the map in tile units (fractional)
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Distance returns euclidean distance to another point
func (p Point) Distance(o Point) float64 {
	dx := p.X - o.X
	dy := p.Y - o.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Rounded snaps the point to the nearest grid cell
func (p Point) Rounded() Point {
	return Point{X: math.Round(p.X), Y: math.Round(p.Y)}
}

func (p Point) Add(o Point) Point { return Point{X: p.X + o.X, Y: p.Y + o.Y} }

func (p Point) Sub(o Point) Point { return Point{X: p.X - o.X, Y: p.Y - o.Y} }

func (p Point) Scale(f float64) Point { return Point{X: p.X * f, Y: p.Y * f} }

func (p Point) Top() Point    { return Point{X: p.X, Y: p.Y - 1} }
func (p Point) Bottom() Point { return Point{X: p.X, Y: p.Y + 1} }
func (p Point) Left() Point   { return Point{X: p.X - 1, Y: p.Y} }
func (p Point) Right() Point  { return Point{X: p.X + 1, Y: p.Y} }

// Sides returns the 4 orthogonal neighbours: top, right, bottom, left
func (p Point) Sides() [4]Point {
	return [4]Point{p.Top(), p.Right(), p.Bottom(), p.Left()}
}

// Corners returns the 4 diagonal neighbours: top-left, top-right, bottom-left, bottom-right
func (p Point) Corners() [4]Point {
	return [4]Point{
		{X: p.X - 1, Y: p.Y - 1},
		{X: p.X + 1, Y: p.Y - 1},
		{X: p.X - 1, Y: p.Y + 1},
		{X: p.X + 1, Y: p.Y + 1},
	}
}

// Neighbours returns all 8 surrounding cells, orthogonal first
func (p Point) Neighbours() [8]Point {
	s, c := p.Sides(), p.Corners()
	return [8]Point{s[0], s[1], s[2], s[3], c[0], c[1], c[2], c[3]}
}

// Near reports whether two points are within eps of each other
func (p Point) Near(o Point, eps float64) bool {
	return p.Distance(o) <= eps
}

func (p Point) String() string {
	return fmt.Sprintf("(%.2f,%.2f)", p.X, p.Y)
}
