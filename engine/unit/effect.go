package unit

// Effect is a timed status change on a unit. Effects are compared by
// identity; the same Effect value can only be active once.
type Effect interface {
	Name() string
	// Start is called once when the effect is added
	Start(u *Unit)
	Tick(u *Unit, w World)
	Expired() bool
	// Remaining is the number of ticks left
	Remaining() int
	// AlterDamageModifier composes onto the running damage modifier
	AlterDamageModifier(m float64) float64
}

type timed struct {
	duration  int
	remaining int
}

func (t *timed) Start(*Unit)    { t.remaining = t.duration }
func (t *timed) Expired() bool  { return t.remaining <= 0 }
func (t *timed) countdown()     { t.remaining-- }
func (t *timed) Remaining() int { return t.remaining }

// DamageBoost multiplies damage for a number of ticks
type DamageBoost struct {
	timed
	Factor float64
}

func NewDamageBoost(factor float64, ticks int) *DamageBoost {
	return &DamageBoost{timed: timed{duration: ticks}, Factor: factor}
}

func (e *DamageBoost) Name() string                          { return "damage_boost" }
func (e *DamageBoost) Tick(*Unit, World)                     { e.countdown() }
func (e *DamageBoost) AlterDamageModifier(m float64) float64 { return m * e.Factor }

// Regeneration heals a fixed amount every tick
type Regeneration struct {
	timed
	PerTick float64
}

func NewRegeneration(perTick float64, ticks int) *Regeneration {
	return &Regeneration{timed: timed{duration: ticks}, PerTick: perTick}
}

func (e *Regeneration) Name() string { return "regeneration" }

func (e *Regeneration) Tick(u *Unit, w World) {
	u.GainHealth(e.PerTick, w)
	e.countdown()
}

func (e *Regeneration) AlterDamageModifier(m float64) float64 { return m }
