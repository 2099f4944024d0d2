package unit

import (
	"fmt"

	"github.com/1siamBot/rts-engine/engine/core"
	"github.com/1siamBot/rts-engine/engine/entity"
	"github.com/1siamBot/rts-engine/engine/geom"
	"github.com/1siamBot/rts-engine/engine/sprites"
)

const (
	levelDivisor = 10.0
	maxSpeed     = 0.12
	maxSide      = 1.0
)

// Unit is a mobile, attackable entity driven by a state machine
type Unit struct {
	entity.Base

	handle core.Handle
	team   core.Team
	kind   *UnitType

	level    int
	health   float64
	damage   float64 // baseline damage modifier
	speed    float64
	baseSize geom.Size
	facing   geom.Direction

	state       State
	effects     []Effect
	inventory   []*Item
	dead        bool
	deadCreated bool
}

// New creates a unit of the given type centred on c
func New(kind *UnitType, team core.Team, c geom.Point, level int) *Unit {
	u := &Unit{
		team:     team,
		kind:     kind,
		level:    level,
		damage:   1,
		speed:    kind.MovingSpeed,
		baseSize: kind.Size,
	}
	u.Base = entity.NewBaseCentred(c, u.levelSize())
	u.health = u.MaxHealth()
	u.state = newIdle()
	return u
}

func (u *Unit) levelMultiplier() float64 {
	return 1 + float64(u.level)/levelDivisor
}

func (u *Unit) levelSize() geom.Size {
	return u.baseSize.Scale(u.levelMultiplier(), maxSide)
}

// SetHandle records the handle the world stored the unit under
func (u *Unit) SetHandle(h core.Handle) { u.handle = h }

func (u *Unit) Handle() core.Handle        { return u.handle }
func (u *Unit) Team() core.Team            { return u.team }
func (u *Unit) Type() *UnitType            { return u.kind }
func (u *Unit) Level() int                 { return u.level }
func (u *Unit) Health() float64            { return u.health }
func (u *Unit) Dead() bool                 { return u.dead }
func (u *Unit) State() State               { return u.state }
func (u *Unit) Facing() geom.Direction     { return u.facing }
func (u *Unit) Inventory() []*Item         { return append([]*Item(nil), u.inventory...) }
func (u *Unit) Effects() []Effect          { return append([]Effect(nil), u.effects...) }
func (u *Unit) Contains(p geom.Point) bool { return u.Rect().Contains(p) }

// MaxHealth is the level-adjusted starting health
func (u *Unit) MaxHealth() float64 {
	return u.kind.StartingHealth * u.levelMultiplier()
}

func (u *Unit) HealthPercent() float64 {
	return u.health / u.MaxHealth()
}

// Speed is the level-adjusted movement per tick, capped
func (u *Unit) Speed() float64 {
	return min(u.speed*u.levelMultiplier(), maxSpeed)
}

func (u *Unit) LineOfSight() float64 {
	return u.kind.LineOfSight * u.levelMultiplier()
}

// DamageModifier runs the baseline through every active effect in order,
// then applies the level multiplier.
func (u *Unit) DamageModifier() float64 {
	m := u.damage
	for _, e := range u.effects {
		m = e.AlterDamageModifier(m)
	}
	return m * u.levelMultiplier()
}

func (u *Unit) AttackSpeedModifier() float64 { return 1 }
func (u *Unit) RangeModifier() float64       { return 1 }

// SetBaseDamage sets the baseline damage modifier
func (u *Unit) SetBaseDamage(m float64) {
	if m <= 0 {
		panic(fmt.Sprintf("unit: invalid damage modifier %v", m))
	}
	u.damage = m
}

// Translate is ignored once the unit is dead
func (u *Unit) Translate(d geom.Point) {
	if u.dead {
		return
	}
	u.Base.Translate(d)
}

func (u *Unit) MoveCentreTo(c geom.Point) {
	u.Translate(c.Sub(u.Centre()))
}

// SetTarget redirects the state machine. The new state starts on the unit's
// next tick. Dead units ignore targets.
func (u *Unit) SetTarget(w World, t Target) {
	if u.dead {
		return
	}
	if t.Arrived(u, w) && t.Valid(u, w) {
		u.state.request(t.arrivalState(u, w))
		return
	}
	u.state.request(newWalking(u, w, t, nil))
}

// Stop makes the unit go idle on its next tick
func (u *Unit) Stop() {
	if u.dead {
		return
	}
	u.state.request(newIdle())
}

// TakeDamage removes health. A killing blow moves the unit straight to
// Dying and levels up the attacker, if there is one.
func (u *Unit) TakeDamage(amount float64, w World, attacker *Unit) {
	if u.dead {
		return
	}
	if amount < 0 {
		panic(fmt.Sprintf("unit: negative damage %v", amount))
	}
	var from core.Handle
	if attacker != nil {
		from = attacker.handle
	}

	if u.health-amount > 0 {
		u.health -= amount
		w.Emit(core.Event{Type: core.EvtUnitDamaged, Subject: u.handle, Other: from, Amount: amount})
		u.state.onTakeDamage(u, w)
		return
	}

	u.dead = true
	u.health = 0
	u.changeState(w, newDying(u, w))
	w.Emit(core.Event{Type: core.EvtUnitDied, Subject: u.handle, Other: from, Amount: amount})
	if attacker != nil {
		attacker.NextLevel(w)
	}
}

// GainHealth heals up to the level-adjusted maximum
func (u *Unit) GainHealth(amount float64, w World) {
	if u.dead {
		return
	}
	if amount < 0 {
		panic(fmt.Sprintf("unit: negative heal %v", amount))
	}
	before := u.health
	u.health = min(u.health+amount, u.MaxHealth())
	w.Emit(core.Event{Type: core.EvtUnitHealed, Subject: u.handle, Amount: u.health - before})
}

// NextLevel raises the level by one, keeping the health percentage
func (u *Unit) NextLevel(w World) {
	pct := u.HealthPercent()
	u.level++
	u.Base.SetSize(u.levelSize())
	if !u.dead {
		u.health = u.MaxHealth() * pct
	}
	w.Emit(core.Event{Type: core.EvtUnitLevelUp, Subject: u.handle, Amount: float64(u.level)})
}

// AddEffect starts e and keeps it unless it is already active or expired
// straight away.
func (u *Unit) AddEffect(e Effect, w World) {
	for _, have := range u.effects {
		if have == e {
			return
		}
	}
	e.Start(u)
	if e.Expired() {
		return
	}
	u.effects = append(u.effects, e)
	w.Emit(core.Event{Type: core.EvtEffectAdded, Subject: u.handle, Detail: e.Name()})
}

// UseItem activates the ability of the i-th inventory item
func (u *Unit) UseItem(i int, w World) bool {
	if u.dead || i < 0 || i >= len(u.inventory) {
		return false
	}
	return u.inventory[i].Ability.Use(u, w)
}

// Tick advances the current state, applies at most one transition, then
// ticks the active effects.
func (u *Unit) Tick(elapsed int64, w World) {
	u.state.tick(u, w, elapsed)
	next := u.state.updateState(u, w)
	if next == nil {
		panic("unit: state transition to nil")
	}
	u.changeState(w, next)
	u.tickEffects(w)
}

func (u *Unit) changeState(w World, next State) {
	if next == u.state {
		return
	}
	prev := u.state
	u.state = next
	w.Emit(core.Event{
		Type:    core.EvtStateChanged,
		Subject: u.handle,
		Detail:  KindOf(prev).String() + "->" + KindOf(next).String(),
	})
}

func (u *Unit) tickEffects(w World) {
	kept := u.effects[:0]
	for _, e := range u.effects {
		e.Tick(u, w)
		if !e.Expired() {
			kept = append(kept, e)
		}
	}
	for i := len(kept); i < len(u.effects); i++ {
		u.effects[i] = nil
	}
	u.effects = kept
}

// DyingFinished reports whether a dead unit's dying animation is over
func (u *Unit) DyingFinished() bool {
	d, ok := u.state.(*Dying)
	return ok && d.anim.Finished()
}

// CreateDeadUnit builds the corpse marker. It may be called once, after death.
func (u *Unit) CreateDeadUnit(p sprites.Provider) *entity.DeadUnit {
	if !u.dead || u.deadCreated {
		panic("unit: dead unit marker requested twice or for a living unit")
	}
	u.deadCreated = true
	return entity.NewDeadUnit(u.TopLeft(), u.Size(), u.kind.Sheet, u.facing,
		p.FrameCount(u.kind.Sheet, sprites.SeqDead))
}

// Frame is the image to draw for the unit this tick
func (u *Unit) Frame() sprites.Frame {
	f := u.state.frame()
	f.Sheet = u.kind.Sheet
	f.Dir = u.facing
	return f
}

func (u *Unit) animation(w World, seq sprites.Sequence, length int, loop bool) sprites.Animation {
	frames := w.Sprites().FrameCount(u.kind.Sheet, seq)
	if loop {
		length = frames * w.Config().TicksPerFrame
	}
	return sprites.NewAnimation(seq, frames, length, loop)
}

func (u *Unit) String() string {
	return fmt.Sprintf("%s %s%s lvl%d %.0f/%.0f", u.team, u.kind.Name, u.handle, u.level, u.health, u.MaxHealth())
}
