package scenario

import (
	"fmt"
	"sort"

	"github.com/1siamBot/rts-engine/engine/ai"
	"github.com/1siamBot/rts-engine/engine/config"
	"github.com/1siamBot/rts-engine/engine/core"
	"github.com/1siamBot/rts-engine/engine/entity"
	"github.com/1siamBot/rts-engine/engine/geom"
	"github.com/1siamBot/rts-engine/engine/maplib"
	"github.com/1siamBot/rts-engine/engine/unit"
	"github.com/1siamBot/rts-engine/engine/world"
)

type builder func(cfg config.Config, opts []world.Option) (*world.World, error)

var builtin = map[string]builder{
	"duel":     duel,
	"skirmish": skirmish,
}

// Names lists the built-in scenarios
func Names() []string {
	out := make([]string, 0, len(builtin))
	for n := range builtin {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Build assembles a built-in scenario
func Build(name string, cfg config.Config, opts ...world.Option) (*world.World, error) {
	b, ok := builtin[name]
	if !ok {
		return nil, fmt.Errorf("scenario: unknown scenario %q", name)
	}
	return b(cfg, opts)
}

// FromMap loads a map file and places a squad on every start position
func FromMap(path string, cfg config.Config, opts ...world.Option) (*world.World, error) {
	tm, err := maplib.LoadJSON(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}
	if len(tm.StartPositions) == 0 {
		return nil, fmt.Errorf("scenario: %w: %s has no start positions", maplib.ErrBadMap, path)
	}
	w, err := world.New(cfg, tm, opts...)
	if err != nil {
		return nil, err
	}
	for _, sp := range tm.StartPositions {
		Squad(w, core.Team(sp.Team), geom.Pt(float64(sp.X), float64(sp.Y)))
	}
	return w, nil
}

// squadLayout places one of each unit type around a start position
var squadLayout = []struct {
	kind   *unit.UnitType
	dx, dy float64
}{
	{unit.Swordsman, 0, 0},
	{unit.Spearman, 1, 0},
	{unit.Archer, 0, 1},
	{unit.Mage, 1, 1},
	{unit.Cleric, -1, 1},
}

// Squad spawns the standard five-unit squad for team around c
func Squad(w *world.World, team core.Team, c geom.Point) []*unit.Unit {
	out := make([]*unit.Unit, 0, len(squadLayout))
	for _, s := range squadLayout {
		u := unit.New(s.kind, team, c.Add(geom.Pt(s.dx, s.dy)), 0)
		w.AddUnit(u)
		out = append(out, u)
	}
	return out
}

// Controllers creates an AI for every team that has units
func Controllers(w *world.World, diff ai.Difficulty, seed int64) []world.Controller {
	var teams []core.Team
	for team := range w.TeamAlive() {
		if team != core.TeamNeutral {
			teams = append(teams, team)
		}
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i] < teams[j] })

	out := make([]world.Controller, 0, len(teams))
	for i, team := range teams {
		out = append(out, ai.NewController(team, diff, w.Config().AIThinkTicks, seed+int64(i)))
	}
	return out
}

func duel(cfg config.Config, opts []world.Option) (*world.World, error) {
	w, err := world.New(cfg, maplib.NewTileMap("duel", 12, 6), opts...)
	if err != nil {
		return nil, err
	}
	w.AddUnit(unit.New(unit.Swordsman, core.TeamRed, geom.Pt(3, 3), 0))
	w.AddUnit(unit.New(unit.Spearman, core.TeamBlue, geom.Pt(8, 3), 0))
	return w, nil
}

func skirmish(cfg config.Config, opts []world.Option) (*world.World, error) {
	tm := maplib.NewTileMap("skirmish", 32, 20)
	tm.SetTerrain(14, 0, 17, 7, maplib.TerrainWater)
	tm.SetTerrain(14, 12, 17, 19, maplib.TerrainWater)
	tm.SetTerrain(0, 9, 31, 10, maplib.TerrainRoad)
	tm.StartPositions = []maplib.StartPos{
		{Team: int(core.TeamRed), X: 4, Y: 9},
		{Team: int(core.TeamBlue), X: 27, Y: 9},
	}

	w, err := world.New(cfg, tm, opts...)
	if err != nil {
		return nil, err
	}
	for _, rock := range []geom.Point{{X: 9, Y: 4}, {X: 22, Y: 14}, {X: 9, Y: 15}, {X: 22, Y: 4}} {
		w.AddObstacle(entity.NewObstacle(rock, 2, 2, "rock"))
	}
	for _, sp := range tm.StartPositions {
		Squad(w, core.Team(sp.Team), geom.Pt(float64(sp.X), float64(sp.Y)))
	}
	for _, it := range []struct {
		name string
		at   geom.Point
	}{
		{"fury_potion", geom.Pt(15.5, 9.5)},
		{"healing_herb", geom.Pt(8, 12)},
		{"healing_herb", geom.Pt(24, 7)},
	} {
		item, err := unit.NewItem(it.name, it.at)
		if err != nil {
			return nil, err
		}
		w.AddItem(item)
	}
	return w, nil
}
