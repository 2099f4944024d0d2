package unit

import (
	"fmt"

	"github.com/1siamBot/rts-engine/engine/entity"
	"github.com/1siamBot/rts-engine/engine/geom"
)

// Ability applies a fresh effect to its user and then cools down
type Ability struct {
	Name      string
	Cooldown  int // ticks
	NewEffect func() Effect

	readyAt uint64
	used    bool
}

// Ready reports whether the ability can be used on the given tick
func (a *Ability) Ready(now uint64) bool {
	return !a.used || now >= a.readyAt
}

// Use applies the ability to u if it is off cooldown
func (a *Ability) Use(u *Unit, w World) bool {
	now := w.CurrentTick()
	if !a.Ready(now) {
		return false
	}
	u.AddEffect(a.NewEffect(), w)
	a.used = true
	a.readyAt = now + uint64(a.Cooldown)
	return true
}

// Item lies on the map until a unit picks it up
type Item struct {
	entity.Base
	Name    string
	Ability *Ability
}

var itemKinds = map[string]func() *Ability{
	"fury_potion": func() *Ability {
		return &Ability{Name: "fury", Cooldown: 200, NewEffect: func() Effect { return NewDamageBoost(1.5, 100) }}
	},
	"healing_herb": func() *Ability {
		return &Ability{Name: "regenerate", Cooldown: 120, NewEffect: func() Effect { return NewRegeneration(0.5, 40) }}
	},
}

// NewItem places a built-in item centred on c
func NewItem(name string, c geom.Point) (*Item, error) {
	mk, ok := itemKinds[name]
	if !ok {
		return nil, fmt.Errorf("unit: unknown item %q", name)
	}
	return &Item{
		Base:    entity.NewBaseCentred(c, geom.Size{W: 0.5, H: 0.5}),
		Name:    name,
		Ability: mk(),
	}, nil
}
