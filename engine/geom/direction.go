package geom

import "math"

// Direction is the facing used to pick animation frames
type Direction uint8

const (
	Down Direction = iota
	Up
	Left
	Right
)

var directionNames = [...]string{"down", "up", "left", "right"}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return "unknown"
}

// Between returns the dominant direction of travel from one point to another.
// No movement faces Down.
func Between(from, to Point) Direction {
	dx := to.X - from.X
	dy := to.Y - from.Y
	if dx == 0 && dy == 0 {
		return Down
	}
	if math.Abs(dx) > math.Abs(dy) {
		if dx < 0 {
			return Left
		}
		return Right
	}
	if dy < 0 {
		return Up
	}
	return Down
}
