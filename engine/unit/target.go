package unit

import (
	"github.com/1siamBot/rts-engine/engine/combat"
	"github.com/1siamBot/rts-engine/engine/core"
	"github.com/1siamBot/rts-engine/engine/geom"
)

const (
	arriveDistance = 0.05
	// PickUpDistance is how close a unit's centre must be to an item
	PickUpDistance = 1.0
)

// Target is something a unit can be sent to: a point, a unit or an item
type Target interface {
	// Destination is where to walk to reach the target
	Destination(u *Unit, w World) geom.Point
	Valid(u *Unit, w World) bool
	Arrived(u *Unit, w World) bool
	arrivalState(u *Unit, w World) State
}

// PointTarget sends a unit to a map point
type PointTarget struct {
	Point geom.Point
}

func (t PointTarget) Destination(*Unit, World) geom.Point { return t.Point }
func (t PointTarget) Valid(*Unit, World) bool             { return true }

func (t PointTarget) Arrived(u *Unit, _ World) bool {
	return u.Centre().Near(t.Point, arriveDistance)
}

func (t PointTarget) arrivalState(*Unit, World) State { return newIdle() }

// UnitTarget engages another unit with an attack. A nil Attack means the
// unit type's own attack. Healing attacks target allies.
type UnitTarget struct {
	Unit   core.Handle
	Attack *combat.Attack
}

func (t UnitTarget) attack(u *Unit) *combat.Attack {
	if t.Attack != nil {
		return t.Attack
	}
	return u.kind.Attack
}

func (t UnitTarget) Destination(u *Unit, w World) geom.Point {
	if other, ok := w.Unit(t.Unit); ok {
		return other.Centre()
	}
	return u.Centre()
}

// Valid holds while the target is alive in the world and the attack's
// affinity allows hitting it.
func (t UnitTarget) Valid(u *Unit, w World) bool {
	other, ok := w.Unit(t.Unit)
	if !ok || other.dead {
		return false
	}
	return t.attack(u).CanTarget(u.team, other.team, other == u)
}

func (t UnitTarget) Arrived(u *Unit, w World) bool {
	other, ok := w.Unit(t.Unit)
	if !ok {
		return false
	}
	return u.Centre().Distance(other.Centre()) <= t.attack(u).ModifiedRange(u)
}

func (t UnitTarget) arrivalState(u *Unit, w World) State {
	return newAttacking(u, w, t, t.attack(u))
}

// ItemTarget sends a unit to pick up an item
type ItemTarget struct {
	Item core.Handle
}

func (t ItemTarget) Destination(u *Unit, w World) geom.Point {
	if it, ok := w.Item(t.Item); ok {
		return it.Centre()
	}
	return u.Centre()
}

func (t ItemTarget) Valid(_ *Unit, w World) bool {
	_, ok := w.Item(t.Item)
	return ok
}

func (t ItemTarget) Arrived(u *Unit, w World) bool {
	it, ok := w.Item(t.Item)
	return ok && u.Centre().Distance(it.Centre()) < PickUpDistance
}

func (t ItemTarget) arrivalState(u *Unit, w World) State {
	return newPickingUp(u, w, t)
}
