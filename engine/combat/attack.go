package combat

import (
	"github.com/1siamBot/rts-engine/engine/core"
	"github.com/1siamBot/rts-engine/engine/sprites"
)

// Kind says how an attack reaches its target
type Kind uint8

const (
	Melee Kind = iota
	Ranged
)

func (k Kind) String() string {
	if k == Ranged {
		return "ranged"
	}
	return "melee"
}

// DamageType classifies what an attack deals
type DamageType uint8

const (
	Physical DamageType = iota
	Magic
)

func (d DamageType) String() string {
	if d == Magic {
		return "magic"
	}
	return "physical"
}

// Affinity decides who an attack may be used on. Attacks on enemies deal
// damage, attacks on self or allies heal.
type Affinity uint8

const (
	Enemies Affinity = iota
	Self
	Allies
)

func (a Affinity) String() string {
	switch a {
	case Self:
		return "self"
	case Allies:
		return "allies"
	}
	return "enemies"
}

// Heals reports whether the attack restores health instead of dealing damage
func (a Affinity) Heals() bool { return a != Enemies }

// Attacker supplies the modifiers an attack is scaled by
type Attacker interface {
	DamageModifier() float64
	AttackSpeedModifier() float64
	RangeModifier() float64
}

// Attack is an immutable attack template shared by every unit using it
type Attack struct {
	Name       string
	Kind       Kind
	Range      float64 // map units between centres
	Speed      int     // ticks per attack cycle
	Damage     float64
	Windup     float64 // portion of the cycle before the hit lands
	DamageType DamageType
	Affinity   Affinity
	Sequence   sprites.Sequence

	// ranged only
	ProjectileSpeed float64 // map units per tick
	ProjectileSize  float64
	ProjectileSheet string
}

// ModifiedAttackSpeed is the cycle length in ticks for a, never below 1
func (atk *Attack) ModifiedAttackSpeed(a Attacker) int {
	mod := a.AttackSpeedModifier()
	if mod <= 0 {
		mod = 1
	}
	n := int(float64(atk.Speed) / mod)
	if n < 1 {
		n = 1
	}
	return n
}

// ModifiedDamage scales the base damage by the attacker's modifier chain
func (atk *Attack) ModifiedDamage(a Attacker) float64 {
	return atk.Damage * a.DamageModifier()
}

func (atk *Attack) ModifiedRange(a Attacker) float64 {
	return atk.Range * a.RangeModifier()
}

// ApplicationTick is the tick of the cycle on which the hit lands. A zero
// windup lands on the first tick.
func (atk *Attack) ApplicationTick(a Attacker) int {
	t := int(float64(atk.ModifiedAttackSpeed(a)) * atk.Windup)
	if t < 1 {
		t = 1
	}
	return t
}

// CanTarget checks the affinity against the relation between the two teams.
// same is true when the target is the attacking unit itself.
func (atk *Attack) CanTarget(own, other core.Team, same bool) bool {
	switch atk.Affinity {
	case Self:
		return same
	case Allies:
		return own.Allied(other)
	default:
		return !same && own.Hostile(other)
	}
}
