package unit

import (
	"github.com/1siamBot/rts-engine/engine/combat"
	"github.com/1siamBot/rts-engine/engine/config"
	"github.com/1siamBot/rts-engine/engine/core"
	"github.com/1siamBot/rts-engine/engine/entity"
	"github.com/1siamBot/rts-engine/engine/geom"
	"github.com/1siamBot/rts-engine/engine/maplib"
	"github.com/1siamBot/rts-engine/engine/pathfind"
	"github.com/1siamBot/rts-engine/engine/sprites"
)

// testWorld is a minimal World: a 20x20 open field with optional walls
type testWorld struct {
	cfg         config.Config
	units       core.Arena[*Unit]
	items       core.Arena[*Item]
	projectiles core.Arena[*Projectile]
	statics     core.Arena[*entity.Static]
	blocked     map[geom.Point]bool
	events      []core.Event
	tick        uint64
}

func newTestWorld() *testWorld {
	return &testWorld{cfg: config.Default(), blocked: map[geom.Point]bool{}}
}

func (w *testWorld) Config() config.Config     { return w.cfg }
func (w *testWorld) Sprites() sprites.Provider { return sprites.Catalog{} }
func (w *testWorld) CurrentTick() uint64       { return w.tick }

func (w *testWorld) Unit(h core.Handle) (*Unit, bool) { return w.units.Get(h) }
func (w *testWorld) Item(h core.Handle) (*Item, bool) { return w.items.Get(h) }

func (w *testWorld) Passability(maplib.PassFlag) pathfind.Passability {
	return func(p geom.Point) bool {
		p = p.Rounded()
		return p.X >= 0 && p.Y >= 0 && p.X < 20 && p.Y < 20 && !w.blocked[p]
	}
}

func (w *testWorld) AddProjectile(p *Projectile) core.Handle { return w.projectiles.Insert(p) }
func (w *testWorld) RemoveProjectile(h core.Handle)          { w.projectiles.Remove(h) }
func (w *testWorld) AddStatic(s *entity.Static) core.Handle  { return w.statics.Insert(s) }

func (w *testWorld) PickUp(h core.Handle, _ *Unit) bool { return w.items.Remove(h) }

func (w *testWorld) Emit(e core.Event) {
	e.Tick = w.tick
	w.events = append(w.events, e)
}

func (w *testWorld) add(kind *UnitType, team core.Team, x, y float64) *Unit {
	u := New(kind, team, geom.Pt(x, y), 0)
	u.SetHandle(w.units.Insert(u))
	return u
}

func (w *testWorld) addItem(name string, x, y float64) core.Handle {
	it, err := NewItem(name, geom.Pt(x, y))
	if err != nil {
		panic(err)
	}
	return w.items.Insert(it)
}

// step ticks every unit then every projectile once
func (w *testWorld) step() {
	for _, h := range w.units.Handles() {
		u, _ := w.units.Get(h)
		u.Tick(w.cfg.TickDelay, w)
	}
	for _, h := range w.projectiles.Handles() {
		if p, ok := w.projectiles.Get(h); ok {
			p.Tick(h, w)
		}
	}
	w.tick++
}

func (w *testWorld) count(t core.EventType) int {
	n := 0
	for _, e := range w.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

// Tank soaks damage in combat tests
var tank = &UnitType{
	Name: "tank", Sheet: "tank", StartingHealth: 1000, MovingSpeed: 0.1, LineOfSight: 5,
	Size: geom.Size{W: 0.8, H: 0.8}, Attack: combat.Sword, Pass: maplib.PassInfantry,
}
