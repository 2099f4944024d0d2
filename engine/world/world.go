package world

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"

	"github.com/1siamBot/rts-engine/engine/command"
	"github.com/1siamBot/rts-engine/engine/config"
	"github.com/1siamBot/rts-engine/engine/core"
	"github.com/1siamBot/rts-engine/engine/entity"
	"github.com/1siamBot/rts-engine/engine/geom"
	"github.com/1siamBot/rts-engine/engine/maplib"
	"github.com/1siamBot/rts-engine/engine/pathfind"
	"github.com/1siamBot/rts-engine/engine/sprites"
	"github.com/1siamBot/rts-engine/engine/unit"
)

var (
	ErrUnknownUnit = errors.New("world: unknown unit")
	ErrUnknownItem = errors.New("world: unknown item")
)

// World owns every entity of a match and advances them one tick at a time.
// It is not safe for concurrent use.
type World struct {
	cfg     config.Config
	tiles   *maplib.TileMap
	nav     *pathfind.NavGrid
	sprites sprites.Provider
	log     *log.Logger
	matchID uuid.UUID
	bus     *core.EventBus
	rec     *command.Recorder

	units       core.Arena[*unit.Unit]
	projectiles core.Arena[*unit.Projectile]
	statics     core.Arena[*entity.Static]
	items       core.Arena[*unit.Item]
	obstacles   []*entity.Obstacle
	corpses     []*entity.DeadUnit

	// removals requested during a tick, applied once it ends
	dropProjectiles []core.Handle
	dropStatics     []core.Handle
	dropItems       []core.Handle

	fog     map[core.Team]*Fog
	tick    uint64
	ticking bool
}

// Option configures a World
type Option func(*World)

// WithLogger sends lifecycle logs to l, prefixed with the match id
func WithLogger(l *log.Logger) Option {
	return func(w *World) { w.log = l }
}

// WithSprites sets the frame-count provider used for animations
func WithSprites(p sprites.Provider) Option {
	return func(w *World) { w.sprites = p }
}

// WithMatchID fixes the match id, for replays
func WithMatchID(id uuid.UUID) Option {
	return func(w *World) { w.matchID = id }
}

// WithRecorder records every accepted command
func WithRecorder(r *command.Recorder) Option {
	return func(w *World) { w.rec = r }
}

// New creates an empty world on the given map
func New(cfg config.Config, tiles *maplib.TileMap, opts ...Option) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("world: %w", err)
	}
	if tiles == nil || tiles.Width <= 0 || tiles.Height <= 0 {
		return nil, fmt.Errorf("world: %w: empty map", maplib.ErrBadMap)
	}
	w := &World{
		cfg:     cfg,
		tiles:   tiles,
		nav:     pathfind.NewNavGrid(tiles),
		sprites: sprites.DefaultCatalog(),
		log:     log.New(io.Discard, "", 0),
		bus:     core.NewEventBus(),
		fog:     make(map[core.Team]*Fog),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.matchID == uuid.Nil {
		w.matchID = uuid.New()
	}
	w.log = log.New(w.log.Writer(), fmt.Sprintf("[match %s] ", w.matchID), w.log.Flags()|log.Lmsgprefix)
	w.watch()
	return w, nil
}

// watch logs the events worth a line in a match log
func (w *World) watch() {
	w.bus.On(core.EvtUnitDied, func(e core.Event) {
		w.log.Printf("tick %d: %s killed by %s", e.Tick, w.describe(e.Subject), w.describe(e.Other))
	})
	w.bus.On(core.EvtUnitLevelUp, func(e core.Event) {
		w.log.Printf("tick %d: %s reached level %.0f", e.Tick, w.describe(e.Subject), e.Amount)
	})
	w.bus.On(core.EvtPathNotFound, func(e core.Event) {
		w.log.Printf("tick %d: %s found no path to %s", e.Tick, w.describe(e.Subject), e.Detail)
	})
}

func (w *World) describe(h core.Handle) string {
	if h.IsZero() {
		return "nobody"
	}
	if u, ok := w.units.Get(h); ok {
		return u.String()
	}
	return "unit" + h.String()
}

func (w *World) Config() config.Config     { return w.cfg }
func (w *World) Sprites() sprites.Provider { return w.sprites }
func (w *World) CurrentTick() uint64       { return w.tick }
func (w *World) MatchID() uuid.UUID        { return w.matchID }
func (w *World) Tiles() *maplib.TileMap    { return w.tiles }
func (w *World) Events() *core.EventBus    { return w.bus }
func (w *World) Logger() *log.Logger       { return w.log }

// Emit queues an event stamped with the current tick
func (w *World) Emit(e core.Event) {
	e.Tick = w.tick
	w.bus.Emit(e)
}

func (w *World) Passability(flag maplib.PassFlag) pathfind.Passability {
	return w.nav.Predicate(flag)
}

// AddUnit places u in the world and returns its handle
func (w *World) AddUnit(u *unit.Unit) core.Handle {
	h := w.units.Insert(u)
	u.SetHandle(h)
	w.Emit(core.Event{Type: core.EvtUnitSpawned, Subject: h, Detail: u.Type().Name})
	return h
}

func (w *World) Unit(h core.Handle) (*unit.Unit, bool) { return w.units.Get(h) }

// Units lists live units in handle order
func (w *World) Units() []*unit.Unit {
	out := make([]*unit.Unit, 0, w.units.Len())
	w.units.Each(func(_ core.Handle, u *unit.Unit) { out = append(out, u) })
	return out
}

func (w *World) AddItem(it *unit.Item) core.Handle { return w.items.Insert(it) }

// Item resolves an item still lying on the map
func (w *World) Item(h core.Handle) (*unit.Item, bool) {
	if contains(w.dropItems, h) {
		return nil, false
	}
	return w.items.Get(h)
}

func (w *World) Items() []*unit.Item {
	var out []*unit.Item
	w.items.Each(func(h core.Handle, it *unit.Item) {
		if !contains(w.dropItems, h) {
			out = append(out, it)
		}
	})
	return out
}

// PickUp claims an item for u. Only the first claim in a tick succeeds.
func (w *World) PickUp(h core.Handle, u *unit.Unit) bool {
	if _, ok := w.Item(h); !ok {
		return false
	}
	w.dropItems = append(w.dropItems, h)
	return true
}

// AddObstacle marks the tiles under o occupied and rebuilds the nav grid
// from the map, so both agree on which cells are blocked.
func (w *World) AddObstacle(o *entity.Obstacle) {
	w.obstacles = append(w.obstacles, o)
	for _, c := range o.Cells() {
		w.tiles.SetOccupied(int(c.X), int(c.Y), true)
	}
	w.nav.Refresh(w.tiles)
}

func (w *World) Obstacles() []*entity.Obstacle { return w.obstacles }

func (w *World) AddProjectile(p *unit.Projectile) core.Handle { return w.projectiles.Insert(p) }

func (w *World) RemoveProjectile(h core.Handle) {
	w.dropProjectiles = append(w.dropProjectiles, h)
}

func (w *World) Projectiles() []*unit.Projectile {
	var out []*unit.Projectile
	w.projectiles.Each(func(h core.Handle, p *unit.Projectile) {
		if !contains(w.dropProjectiles, h) {
			out = append(out, p)
		}
	})
	return out
}

func (w *World) AddStatic(s *entity.Static) core.Handle { return w.statics.Insert(s) }

func (w *World) RemoveStatic(h core.Handle) {
	w.dropStatics = append(w.dropStatics, h)
}

func (w *World) Statics() []*entity.Static {
	var out []*entity.Static
	w.statics.Each(func(_ core.Handle, s *entity.Static) { out = append(out, s) })
	return out
}

// Corpses lists the markers left by dead units, oldest first
func (w *World) Corpses() []*entity.DeadUnit { return w.corpses }

// Tick advances the simulation by one step of elapsed milliseconds. Every
// unit is ticked once in handle order, then projectiles, then statics.
// Entities added during the tick first act on the next one; removals are
// applied once every entity has ticked.
func (w *World) Tick(elapsed int64) {
	if w.ticking {
		panic("world: Tick called while already ticking")
	}
	w.ticking = true
	defer func() { w.ticking = false }()

	units := w.units.Handles()
	projectiles := w.projectiles.Handles()
	statics := w.statics.Handles()

	for _, h := range units {
		if u, ok := w.units.Get(h); ok {
			u.Tick(elapsed, w)
		}
	}
	for _, h := range projectiles {
		if p, ok := w.projectiles.Get(h); ok && !contains(w.dropProjectiles, h) {
			p.Tick(h, w)
		}
	}
	for _, h := range statics {
		if s, ok := w.statics.Get(h); ok && !contains(w.dropStatics, h) {
			s.Tick(h, w)
		}
	}

	w.buryDead()
	w.flush()
	if w.cfg.FogOfWar {
		w.updateFog()
	}
	w.tick++
	w.bus.Dispatch()
}

// buryDead swaps units whose dying animation has played for a corpse marker
func (w *World) buryDead() {
	for _, h := range w.units.Handles() {
		u, _ := w.units.Get(h)
		if !u.Dead() || !u.DyingFinished() {
			continue
		}
		w.corpses = append(w.corpses, u.CreateDeadUnit(w.sprites))
		w.units.Remove(h)
		w.Emit(core.Event{Type: core.EvtDeadUnitCreated, Subject: h, Detail: u.Type().Name})
	}
}

func (w *World) flush() {
	for _, h := range w.dropProjectiles {
		w.projectiles.Remove(h)
	}
	for _, h := range w.dropStatics {
		w.statics.Remove(h)
	}
	for _, h := range w.dropItems {
		w.items.Remove(h)
	}
	w.dropProjectiles = w.dropProjectiles[:0]
	w.dropStatics = w.dropStatics[:0]
	w.dropItems = w.dropItems[:0]
}

// Command applies a target command to a unit
func (w *World) Command(c command.Command) error {
	u, ok := w.units.Get(c.Unit)
	if !ok {
		return fmt.Errorf("%s %v: %w", c.Kind, c.Unit, ErrUnknownUnit)
	}
	switch c.Kind {
	case command.Move:
		u.SetTarget(w, unit.PointTarget{Point: geom.Pt(c.X, c.Y)})
	case command.Attack:
		if _, ok := w.units.Get(c.Target); !ok {
			return fmt.Errorf("attack %v: %w", c.Target, ErrUnknownUnit)
		}
		u.SetTarget(w, unit.UnitTarget{Unit: c.Target})
	case command.PickUp:
		if _, ok := w.Item(c.Target); !ok {
			return fmt.Errorf("pick up %v: %w", c.Target, ErrUnknownItem)
		}
		u.SetTarget(w, unit.ItemTarget{Item: c.Target})
	case command.Stop:
		u.Stop()
	default:
		return fmt.Errorf("world: unsupported command %s", c.Kind)
	}

	if w.rec != nil {
		c.Tick = w.tick
		if err := w.rec.Record(c); err != nil {
			return fmt.Errorf("world: record command: %w", err)
		}
	}
	return nil
}

// TeamAlive counts the living units of each team
func (w *World) TeamAlive() map[core.Team]int {
	out := make(map[core.Team]int)
	w.units.Each(func(_ core.Handle, u *unit.Unit) {
		if !u.Dead() {
			out[u.Team()]++
		}
	})
	return out
}

func contains(hs []core.Handle, h core.Handle) bool {
	for _, x := range hs {
		if x == h {
			return true
		}
	}
	return false
}
