package unit

import (
	"fmt"
	"sort"

	"github.com/1siamBot/rts-engine/engine/combat"
	"github.com/1siamBot/rts-engine/engine/geom"
	"github.com/1siamBot/rts-engine/engine/maplib"
)

// UnitType is the stat template shared by all units of one kind
type UnitType struct {
	Name           string
	Sheet          string
	StartingHealth float64
	MovingSpeed    float64 // map units per tick
	LineOfSight    float64
	Size           geom.Size
	Attack         *combat.Attack
	Pass           maplib.PassFlag
}

func (t *UnitType) String() string { return t.Name }

var (
	Swordsman = &UnitType{
		Name: "swordsman", Sheet: "swordsman",
		StartingHealth: 100, MovingSpeed: 0.08, LineOfSight: 6,
		Size: geom.Size{W: 0.8, H: 0.8}, Attack: combat.Sword, Pass: maplib.PassInfantry,
	}
	Spearman = &UnitType{
		Name: "spearman", Sheet: "spearman",
		StartingHealth: 90, MovingSpeed: 0.08, LineOfSight: 6,
		Size: geom.Size{W: 0.8, H: 0.8}, Attack: combat.Spear, Pass: maplib.PassInfantry,
	}
	Archer = &UnitType{
		Name: "archer", Sheet: "archer",
		StartingHealth: 60, MovingSpeed: 0.1, LineOfSight: 8,
		Size: geom.Size{W: 0.7, H: 0.7}, Attack: combat.Bow, Pass: maplib.PassInfantry,
	}
	Mage = &UnitType{
		Name: "mage", Sheet: "mage",
		StartingHealth: 50, MovingSpeed: 0.07, LineOfSight: 7,
		Size: geom.Size{W: 0.7, H: 0.7}, Attack: combat.Laser, Pass: maplib.PassInfantry,
	}
	Cleric = &UnitType{
		Name: "cleric", Sheet: "cleric",
		StartingHealth: 70, MovingSpeed: 0.07, LineOfSight: 7,
		Size: geom.Size{W: 0.7, H: 0.7}, Attack: combat.Mend, Pass: maplib.PassInfantry,
	}
)

var unitTypes = map[string]*UnitType{}

func init() {
	for _, t := range []*UnitType{Swordsman, Spearman, Archer, Mage, Cleric} {
		unitTypes[t.Name] = t
	}
}

// LookupType finds a built-in unit type by name
func LookupType(name string) (*UnitType, error) {
	t, ok := unitTypes[name]
	if !ok {
		return nil, fmt.Errorf("unit: unknown unit type %q", name)
	}
	return t, nil
}

// TypeNames lists the built-in unit types alphabetically
func TypeNames() []string {
	out := make([]string, 0, len(unitTypes))
	for n := range unitTypes {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
