package ai

import (
	"math"
	"math/rand"

	"github.com/1siamBot/rts-engine/engine/command"
	"github.com/1siamBot/rts-engine/engine/core"
	"github.com/1siamBot/rts-engine/engine/geom"
	"github.com/1siamBot/rts-engine/engine/unit"
	"github.com/1siamBot/rts-engine/engine/world"
)

// Difficulty controls AI behavior
type Difficulty int

const (
	DiffEasy Difficulty = iota
	DiffMedium
	DiffHard
)

// threatRadius is how far around a spot ThreatAssessment looks when
// choosing where to send a wave
const threatRadius = 4.0

// Controller plays one team by giving targets to its idle units. It runs as
// a world.Controller before each tick and only sees what its team sees.
type Controller struct {
	Team       core.Team
	Difficulty Difficulty

	rng           *rand.Rand
	tickTimer     int
	thinkInterval int
	attackTimer   int
	waveInterval  int
	waveCount     int
}

// NewController creates an AI for team. thinkTicks is the base interval
// between decisions; seed makes wave jitter reproducible.
func NewController(team core.Team, diff Difficulty, thinkTicks int, seed int64) *Controller {
	interval := thinkTicks
	wave := 600
	switch diff {
	case DiffEasy:
		interval = thinkTicks * 2
		wave = 900
	case DiffHard:
		interval = thinkTicks / 2
		wave = 400
	}
	if interval < 1 {
		interval = 1
	}
	return &Controller{
		Team:          team,
		Difficulty:    diff,
		rng:           rand.New(rand.NewSource(seed)),
		thinkInterval: interval,
		waveInterval:  wave,
	}
}

func (ai *Controller) Control(w *world.World) {
	ai.tickTimer++
	ai.attackTimer++
	if ai.tickTimer >= ai.thinkInterval {
		ai.tickTimer = 0
		ai.Think(w)
	}
}

// Waves returns how many attack waves have been launched
func (ai *Controller) Waves() int { return ai.waveCount }

// Think is the main AI decision loop
func (ai *Controller) Think(w *world.World) {
	units := w.Units()
	var idle []*unit.Unit
	for _, u := range units {
		if u.Team() != ai.Team || u.Dead() || unit.KindOf(u.State()) != unit.KindIdle {
			continue
		}
		var target *unit.Unit
		if u.Type().Attack.Affinity.Heals() {
			target = ai.mostInjuredAlly(w, u, units)
		} else {
			target = ai.nearestEnemy(w, u, units)
		}
		if target == nil {
			idle = append(idle, u)
			continue
		}
		ai.issue(w, command.Command{Kind: command.Attack, Unit: u.Handle(), Target: target.Handle()})
	}

	if ai.attackTimer >= ai.waveInterval && len(idle) >= 3 {
		ai.attackTimer = 0
		ai.launchAttack(w, idle, units)
	}
}

func (ai *Controller) issue(w *world.World, c command.Command) {
	if err := w.Command(c); err != nil {
		w.Logger().Printf("ai %s: %v", ai.Team, err)
	}
}

// nearestEnemy picks the closest hostile unit the team can see within the
// unit's line of sight
func (ai *Controller) nearestEnemy(w *world.World, u *unit.Unit, units []*unit.Unit) *unit.Unit {
	var best *unit.Unit
	bestDist := math.MaxFloat64
	for _, o := range units {
		if o.Dead() || !ai.Team.Hostile(o.Team()) || !w.Visible(ai.Team, o.Centre()) {
			continue
		}
		d := u.Centre().Distance(o.Centre())
		if d <= u.LineOfSight() && d < bestDist {
			best, bestDist = o, d
		}
	}
	return best
}

// mostInjuredAlly picks the ally in sight with the lowest health percentage
func (ai *Controller) mostInjuredAlly(w *world.World, u *unit.Unit, units []*unit.Unit) *unit.Unit {
	var best *unit.Unit
	lowest := 1.0
	for _, o := range units {
		if o == u || o.Dead() || !ai.Team.Allied(o.Team()) {
			continue
		}
		if u.Centre().Distance(o.Centre()) > u.LineOfSight() {
			continue
		}
		if p := o.HealthPercent(); p < lowest {
			best, lowest = o, p
		}
	}
	return best
}

// launchAttack sends idle units toward the least defended enemy in sight
func (ai *Controller) launchAttack(w *world.World, idle, units []*unit.Unit) {
	var goal geom.Point
	found := false
	least := math.MaxFloat64
	for _, o := range units {
		if o.Dead() || !ai.Team.Hostile(o.Team()) || !w.Visible(ai.Team, o.Centre()) {
			continue
		}
		if t := ThreatAssessment(w, ai.Team, o.Centre(), threatRadius); t < least {
			goal, least, found = o.Centre(), t, true
		}
	}
	if !found {
		return
	}

	ai.waveCount++
	for _, u := range idle {
		// spread the wave out a little
		ox := float64(ai.rng.Intn(5) - 2)
		oy := float64(ai.rng.Intn(5) - 2)
		ai.issue(w, command.Command{Kind: command.Move, Unit: u.Handle(), X: goal.X + ox, Y: goal.Y + oy})
	}
}

// ThreatAssessment returns the total threat of team's enemies near p
func ThreatAssessment(w *world.World, team core.Team, p geom.Point, radius float64) float64 {
	threat := 0.0
	for _, o := range w.Units() {
		if o.Dead() || !team.Hostile(o.Team()) || o.Type().Attack.Affinity.Heals() {
			continue
		}
		d := p.Distance(o.Centre())
		if d <= radius {
			atk := o.Type().Attack
			threat += atk.ModifiedDamage(o) * (1.0 - d/radius)
		}
	}
	return threat
}
