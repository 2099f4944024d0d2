package unit

import (
	"github.com/1siamBot/rts-engine/engine/config"
	"github.com/1siamBot/rts-engine/engine/core"
	"github.com/1siamBot/rts-engine/engine/entity"
	"github.com/1siamBot/rts-engine/engine/maplib"
	"github.com/1siamBot/rts-engine/engine/pathfind"
	"github.com/1siamBot/rts-engine/engine/sprites"
)

// World is what units, projectiles and items need from the simulation
// that owns them. Additions and removals requested during a tick take effect
// once the tick is over.
type World interface {
	Config() config.Config
	Sprites() sprites.Provider
	CurrentTick() uint64

	Unit(h core.Handle) (*Unit, bool)
	Item(h core.Handle) (*Item, bool)
	Passability(flag maplib.PassFlag) pathfind.Passability

	AddProjectile(p *Projectile) core.Handle
	RemoveProjectile(h core.Handle)
	AddStatic(s *entity.Static) core.Handle
	// PickUp takes an item off the map for u. It fails if the item is gone.
	PickUp(item core.Handle, u *Unit) bool

	Emit(e core.Event)
}
