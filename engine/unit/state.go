package unit

import (
	"fmt"

	"github.com/1siamBot/rts-engine/engine/combat"
	"github.com/1siamBot/rts-engine/engine/core"
	"github.com/1siamBot/rts-engine/engine/geom"
	"github.com/1siamBot/rts-engine/engine/pathfind"
	"github.com/1siamBot/rts-engine/engine/sprites"
)

// State is one of Idle, Walking, Attacking, BeenHit, Dying or PickingUp.
// The set is closed; other packages can only inspect states.
type State interface {
	tick(u *Unit, w World, elapsed int64)
	updateState(u *Unit, w World) State
	frame() sprites.Frame
	request(next State)
	onTakeDamage(u *Unit, w World)
	base() *stateBase
}

// StateKind names a state for logging and inspection
type StateKind uint8

const (
	KindIdle StateKind = iota
	KindWalking
	KindAttacking
	KindBeenHit
	KindDying
	KindPickingUp
)

var kindNames = [...]string{"idle", "walking", "attacking", "been_hit", "dying", "picking_up"}

func (k StateKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// KindOf reports which state s is
func KindOf(s State) StateKind {
	switch s.(type) {
	case *Idle:
		return KindIdle
	case *Walking:
		return KindWalking
	case *Attacking:
		return KindAttacking
	case *BeenHit:
		return KindBeenHit
	case *Dying:
		return KindDying
	case *PickingUp:
		return KindPickingUp
	default:
		panic(fmt.Sprintf("unit: unknown state %T", s))
	}
}

// stateBase holds the animation and the pending transition request
type stateBase struct {
	anim sprites.Animation
	next State
}

func (s *stateBase) base() *stateBase { return s }

func (s *stateBase) request(next State) {
	if next == nil {
		panic("unit: requested nil state")
	}
	s.next = next
}

func (s *stateBase) frame() sprites.Frame {
	return sprites.Frame{Seq: s.anim.Sequence(), Index: s.anim.Index()}
}

// A hit interrupts the current state unless something else is already
// queued; the interrupted state resumes afterwards.
func (s *stateBase) interrupt(self State, u *Unit, w World) {
	if s.next != nil {
		return
	}
	s.next = newBeenHit(u, w, self)
}

// Idle waits for a target
type Idle struct {
	stateBase
	started bool
}

func newIdle() *Idle {
	return &Idle{stateBase: stateBase{anim: sprites.NewAnimation(sprites.SeqIdle, 1, 1, true)}}
}

func (s *Idle) tick(u *Unit, w World, _ int64) {
	if !s.started {
		s.anim = u.animation(w, sprites.SeqIdle, 0, true)
		s.started = true
	}
	s.anim.Advance()
}

func (s *Idle) updateState(*Unit, World) State {
	if s.next != nil {
		return s.next
	}
	return s
}

func (s *Idle) onTakeDamage(u *Unit, w World) { s.interrupt(s, u, w) }

const replanDistance = 0.5

// Walking follows a path toward a target. Arriving hands over to the
// target's arrival state, or to a fresh attack when resuming one.
type Walking struct {
	stateBase
	target  Target
	resume  *combat.Attack
	path    []geom.Point
	planned geom.Point
	hasPlan bool
	failed  bool
}

func newWalking(u *Unit, w World, t Target, resume *combat.Attack) *Walking {
	return &Walking{
		stateBase: stateBase{anim: u.animation(w, sprites.SeqWalk, 0, true)},
		target:    t,
		resume:    resume,
	}
}

// Destination is where the unit is currently heading
func (s *Walking) Destination() geom.Point { return s.planned }

// Target returns what the unit is walking to
func (s *Walking) Target() Target { return s.target }

func (s *Walking) tick(u *Unit, w World, elapsed int64) {
	s.anim.Advance()
	if !s.target.Valid(u, w) || s.target.Arrived(u, w) {
		return
	}

	dest := s.target.Destination(u, w)
	if !s.hasPlan || len(s.path) == 0 || dest.Distance(s.planned) > replanDistance {
		s.plan(u, w, dest)
		if s.failed {
			return
		}
	}

	budget := u.Speed() * float64(elapsed) / float64(w.Config().TickDelay)
	for budget > 0 && len(s.path) > 0 {
		from := u.Centre()
		step := s.path[0]
		d := from.Distance(step)
		if d <= budget {
			u.MoveCentreTo(step)
			s.path = s.path[1:]
			budget -= d
		} else {
			u.MoveCentreTo(from.Add(step.Sub(from).Scale(budget / d)))
			budget = 0
		}
		if d > 0 {
			u.facing = geom.Between(from, u.Centre())
		}
		if s.target.Arrived(u, w) {
			return
		}
	}
}

func (s *Walking) plan(u *Unit, w World, dest geom.Point) {
	s.planned = dest
	s.hasPlan = true
	path := pathfind.FindPath(w.Passability(u.kind.Pass), u.Centre(), dest)
	if len(path) == 0 {
		s.failed = true
		w.Emit(core.Event{Type: core.EvtPathNotFound, Subject: u.handle, Detail: dest.String()})
		return
	}
	// the first point is the cell the unit already stands in
	if len(path) > 1 {
		path = path[1:]
	}
	s.path = path
}

func (s *Walking) updateState(u *Unit, w World) State {
	if s.next != nil {
		return s.next
	}
	if s.failed || !s.target.Valid(u, w) {
		return newIdle()
	}
	if !s.target.Arrived(u, w) {
		return s
	}
	if ut, ok := s.target.(UnitTarget); ok && s.resume != nil {
		return newAttacking(u, w, ut, s.resume)
	}
	return s.target.arrivalState(u, w)
}

func (s *Walking) onTakeDamage(u *Unit, w World) { s.interrupt(s, u, w) }

// Attacking runs one attack cycle against a unit. The hit lands on the
// application tick; a finished cycle starts a new one while the target
// stays valid.
type Attacking struct {
	stateBase
	target          UnitTarget
	attack          *combat.Attack
	applicationTick int
	currentTick     int
}

func newAttacking(u *Unit, w World, t UnitTarget, atk *combat.Attack) *Attacking {
	if u.dead {
		panic("unit: dead unit cannot attack")
	}
	if !t.Valid(u, w) {
		panic(fmt.Sprintf("unit: invalid attack target %v", t.Unit))
	}
	cycle := atk.ModifiedAttackSpeed(u)
	return &Attacking{
		stateBase:       stateBase{anim: u.animation(w, atk.Sequence, cycle, false)},
		target:          t,
		attack:          atk,
		applicationTick: atk.ApplicationTick(u),
	}
}

// Target is the unit being attacked
func (s *Attacking) Target() core.Handle { return s.target.Unit }

// Progress is the number of ticks spent in the current cycle
func (s *Attacking) Progress() int { return s.currentTick }

func (s *Attacking) tick(u *Unit, w World, _ int64) {
	s.anim.Advance()
	s.currentTick++

	if !s.target.Valid(u, w) {
		return
	}
	if !s.target.Arrived(u, w) {
		s.request(newWalking(u, w, s.target, s.attack))
		return
	}

	victim, _ := w.Unit(s.target.Unit)
	u.facing = geom.Between(u.Centre(), victim.Centre())
	if s.currentTick == s.applicationTick {
		execute(u, w, victim, s.attack)
	}
}

func (s *Attacking) updateState(u *Unit, w World) State {
	if s.next != nil {
		return s.next
	}
	if !s.target.Valid(u, w) {
		return newIdle()
	}
	if s.anim.Finished() {
		return newAttacking(u, w, s.target, s.attack)
	}
	return s
}

func (s *Attacking) onTakeDamage(u *Unit, w World) { s.interrupt(s, u, w) }

// execute delivers one attack: melee lands now, ranged fires a projectile
func execute(u *Unit, w World, victim *Unit, atk *combat.Attack) {
	if u.dead {
		panic("unit: dead unit cannot attack")
	}
	w.Emit(core.Event{Type: core.EvtAttackExecuted, Subject: u.handle, Other: victim.handle, Detail: atk.Name})
	switch atk.Kind {
	case combat.Ranged:
		p := NewProjectile(u, victim, atk)
		h := w.AddProjectile(p)
		w.Emit(core.Event{Type: core.EvtProjectileFired, Subject: h, Other: victim.handle, Detail: atk.Name})
	default:
		applyHit(w, atk, atk.ModifiedDamage(u), u, victim)
	}
}

func applyHit(w World, atk *combat.Attack, amount float64, attacker, victim *Unit) {
	if atk.Affinity.Heals() {
		victim.GainHealth(amount, w)
		return
	}
	victim.TakeDamage(amount, w, attacker)
}

// BeenHit briefly interrupts a unit after it takes damage
type BeenHit struct {
	stateBase
	resume State
}

func newBeenHit(u *Unit, w World, resume State) *BeenHit {
	return &BeenHit{
		stateBase: stateBase{anim: u.animation(w, sprites.SeqBeenHit, w.Config().BeenHitTicks, false)},
		resume:    resume,
	}
}

func (s *BeenHit) tick(_ *Unit, _ World, _ int64) { s.anim.Advance() }

func (s *BeenHit) updateState(*Unit, World) State {
	if s.next != nil {
		return s.next
	}
	if s.anim.Finished() {
		// the interrupted state still holds the request that led here
		s.resume.base().next = nil
		return s.resume
	}
	return s
}

// Further hits while reeling are absorbed
func (s *BeenHit) onTakeDamage(*Unit, World) {}

// Dying is terminal. Once its animation is over the world replaces the unit
// with a corpse marker.
type Dying struct {
	stateBase
}

func newDying(u *Unit, w World) *Dying {
	return &Dying{stateBase: stateBase{anim: u.animation(w, sprites.SeqDying, w.Config().DyingTicks, false)}}
}

func (s *Dying) tick(_ *Unit, _ World, _ int64) { s.anim.Advance() }

func (s *Dying) updateState(*Unit, World) State { return s }

func (s *Dying) request(State) {}

func (s *Dying) onTakeDamage(*Unit, World) {}

// PickingUp takes an item into the unit's inventory once the animation ends
type PickingUp struct {
	stateBase
	target ItemTarget
	done   bool
}

func newPickingUp(u *Unit, w World, t ItemTarget) *PickingUp {
	return &PickingUp{
		stateBase: stateBase{anim: u.animation(w, sprites.SeqPickUp, w.Config().PickUpTicks, false)},
		target:    t,
	}
}

// Item is the item being picked up
func (s *PickingUp) Item() core.Handle { return s.target.Item }

func (s *PickingUp) tick(u *Unit, w World, _ int64) {
	s.anim.Advance()
	if s.done || !s.anim.Finished() {
		return
	}
	s.done = true
	item, ok := w.Item(s.target.Item)
	if !ok || !w.PickUp(s.target.Item, u) {
		return
	}
	u.inventory = append(u.inventory, item)
	w.Emit(core.Event{Type: core.EvtItemPickedUp, Subject: u.handle, Other: s.target.Item, Detail: item.Name})
}

func (s *PickingUp) updateState(*Unit, World) State {
	if s.next != nil {
		return s.next
	}
	if s.done {
		return newIdle()
	}
	return s
}

func (s *PickingUp) onTakeDamage(u *Unit, w World) { s.interrupt(s, u, w) }
