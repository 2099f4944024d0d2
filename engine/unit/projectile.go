package unit

import (
	"github.com/1siamBot/rts-engine/engine/combat"
	"github.com/1siamBot/rts-engine/engine/core"
	"github.com/1siamBot/rts-engine/engine/entity"
	"github.com/1siamBot/rts-engine/engine/geom"
	"github.com/1siamBot/rts-engine/engine/sprites"
)

// ImpactDistance is how close a projectile must get to count as a hit
const ImpactDistance = 0.01

// Projectile flies from its owner to a target unit and delivers an attack
type Projectile struct {
	entity.Base

	Owner  core.Handle
	Target core.Handle

	attack  *combat.Attack
	perTick float64
	damage  float64 // owner's modified damage when fired
	facing  geom.Direction
	hit     bool
	done    bool
}

// NewProjectile launches atk from owner's centre toward target
func NewProjectile(owner, target *Unit, atk *combat.Attack) *Projectile {
	s := geom.Size{W: atk.ProjectileSize, H: atk.ProjectileSize}
	return &Projectile{
		Base:    entity.NewBaseCentred(owner.Centre(), s),
		Owner:   owner.handle,
		Target:  target.handle,
		attack:  atk,
		perTick: atk.ProjectileSpeed,
		damage:  atk.ModifiedDamage(owner),
		facing:  geom.Between(owner.Centre(), target.Centre()),
	}
}

func (p *Projectile) Attack() *combat.Attack { return p.attack }

// Hit reports whether the projectile reached its target
func (p *Projectile) Hit() bool { return p.hit }

// DistanceToTarget is the gap to the target's current centre, or -1 if
// the target is gone
func (p *Projectile) DistanceToTarget(w World) float64 {
	t, ok := w.Unit(p.Target)
	if !ok {
		return -1
	}
	return p.Centre().Distance(t.Centre())
}

// Tick moves the projectile toward its target, never past it. A projectile
// that has hit or expired must not be ticked again.
func (p *Projectile) Tick(self core.Handle, w World) {
	if p.done {
		panic("unit: projectile ticked after it finished")
	}
	target, ok := w.Unit(p.Target)
	if !ok {
		p.done = true
		w.RemoveProjectile(self)
		w.Emit(core.Event{Type: core.EvtProjectileExpired, Subject: self, Other: p.Target})
		return
	}

	from := p.Centre()
	to := target.Centre()
	dist := from.Distance(to)
	frac := 1.0
	if dist > 0 {
		frac = min(p.perTick/dist, 1)
	}
	p.MoveCentreTo(from.Add(to.Sub(from).Scale(frac)))
	if dist > 0 {
		p.facing = geom.Between(from, to)
	}

	if p.Centre().Distance(to) <= ImpactDistance {
		p.hit = true
		p.done = true
		p.impact(self, w, target)
	}
}

func (p *Projectile) impact(self core.Handle, w World, target *Unit) {
	owner, ok := w.Unit(p.Owner)
	amount := p.damage
	if ok {
		amount = p.attack.ModifiedDamage(owner)
	} else {
		owner = nil
	}
	applyHit(w, p.attack, amount, owner, target)
	w.RemoveProjectile(self)
	w.Emit(core.Event{Type: core.EvtProjectileHit, Subject: self, Other: p.Target, Amount: amount})

	if p.attack.ProjectileSheet != "" {
		frames := w.Sprites().FrameCount(p.attack.ProjectileSheet, sprites.SeqImpact)
		anim := sprites.NewAnimation(sprites.SeqImpact, frames, frames*max(w.Config().TicksPerFrame, 1), false)
		w.AddStatic(entity.NewStatic(target.Centre(), p.Size(), p.attack.ProjectileSheet, anim))
	}
}

func (p *Projectile) Frame() sprites.Frame {
	return sprites.Frame{Sheet: p.attack.ProjectileSheet, Seq: sprites.SeqFly, Dir: p.facing}
}
