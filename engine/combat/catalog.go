package combat

import (
	"fmt"
	"sort"

	"github.com/1siamBot/rts-engine/engine/sprites"
)

var (
	Sword = &Attack{
		Name: "sword", Kind: Melee, Range: 1.2, Speed: 10, Damage: 8,
		Windup: 0.3, DamageType: Physical, Affinity: Enemies, Sequence: sprites.SeqAttack,
	}
	Spear = &Attack{
		Name: "spear", Kind: Melee, Range: 1.8, Speed: 14, Damage: 10,
		Windup: 0.5, DamageType: Physical, Affinity: Enemies, Sequence: sprites.SeqAttack,
	}
	Laser = &Attack{
		Name: "laser", Kind: Ranged, Range: 3, Speed: 1, Damage: 1,
		Windup: 0, DamageType: Magic, Affinity: Enemies, Sequence: sprites.SeqSpellCast,
		ProjectileSpeed: 0.1, ProjectileSize: 0.5, ProjectileSheet: "fireball",
	}
	Bow = &Attack{
		Name: "bow", Kind: Ranged, Range: 5, Speed: 16, Damage: 6,
		Windup: 0.6, DamageType: Physical, Affinity: Enemies, Sequence: sprites.SeqAttack,
		ProjectileSpeed: 0.4, ProjectileSize: 0.3, ProjectileSheet: "arrow",
	}
	Mend = &Attack{
		Name: "mend", Kind: Melee, Range: 2.5, Speed: 20, Damage: 4,
		Windup: 0.5, DamageType: Magic, Affinity: Allies, Sequence: sprites.SeqSpellCast,
	}
)

var catalog = map[string]*Attack{}

func init() {
	for _, a := range []*Attack{Sword, Spear, Laser, Bow, Mend} {
		catalog[a.Name] = a
	}
}

// Lookup finds a built-in attack by name
func Lookup(name string) (*Attack, error) {
	a, ok := catalog[name]
	if !ok {
		return nil, fmt.Errorf("combat: unknown attack %q", name)
	}
	return a, nil
}

// Names lists the built-in attacks alphabetically
func Names() []string {
	out := make([]string, 0, len(catalog))
	for n := range catalog {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
