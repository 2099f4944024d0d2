package sprites

import "github.com/1siamBot/rts-engine/engine/geom"

// Sequence names one animation of a sprite sheet
type Sequence uint8

const (
	SeqIdle Sequence = iota
	SeqWalk
	SeqAttack
	SeqSpellCast
	SeqBeenHit
	SeqDying
	SeqDead
	SeqPickUp
	SeqFly
	SeqImpact
	seqCount
)

var seqNames = [seqCount]string{
	"idle", "walk", "attack", "spell_cast", "been_hit",
	"dying", "dead", "pick_up", "fly", "impact",
}

func (s Sequence) String() string {
	if s < seqCount {
		return seqNames[s]
	}
	return "unknown"
}

// Frame identifies one image: which sheet, which sequence, which way the
// entity faces and which frame of the sequence. Resolving a Frame to pixels
// is the renderer's job.
type Frame struct {
	Sheet string
	Seq   Sequence
	Dir   geom.Direction
	Index int
}

// Provider knows how many frames each sequence of a sheet has
type Provider interface {
	FrameCount(sheet string, seq Sequence) int
}

// Catalog is a static Provider: sheet -> sequence -> frame count.
// Unknown sheets and sequences have a single frame.
type Catalog map[string]map[Sequence]int

func (c Catalog) FrameCount(sheet string, seq Sequence) int {
	if n := c[sheet][seq]; n > 0 {
		return n
	}
	return 1
}

// DefaultCatalog describes the built-in unit and projectile sheets
func DefaultCatalog() Catalog {
	unit := map[Sequence]int{
		SeqIdle: 4, SeqWalk: 6, SeqAttack: 6, SeqSpellCast: 7,
		SeqBeenHit: 2, SeqDying: 6, SeqDead: 1, SeqPickUp: 4,
	}
	c := Catalog{
		"fireball": {SeqFly: 4, SeqImpact: 5},
		"arrow":    {SeqFly: 1, SeqImpact: 3},
	}
	for _, sheet := range []string{"swordsman", "spearman", "archer", "mage", "cleric"} {
		c[sheet] = unit
	}
	return c
}
