package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/1siamBot/rts-engine/engine/ai"
	"github.com/1siamBot/rts-engine/engine/command"
	"github.com/1siamBot/rts-engine/engine/config"
	"github.com/1siamBot/rts-engine/engine/core"
	"github.com/1siamBot/rts-engine/engine/scenario"
	"github.com/1siamBot/rts-engine/engine/unit"
	"github.com/1siamBot/rts-engine/engine/world"
)

type options struct {
	scenario   string
	mapPath    string
	configPath string
	ticks      int
	difficulty string
	seed       int64
	record     string
	replay     string
	verbose    bool
}

func main() {
	var o options
	flag.StringVar(&o.scenario, "scenario", "skirmish", "built-in scenario ("+strings.Join(scenario.Names(), ", ")+")")
	flag.StringVar(&o.mapPath, "map", "", "JSON map file; a squad is placed on every start position")
	flag.StringVar(&o.configPath, "config", "", "JSON config file (defaults when empty)")
	flag.IntVar(&o.ticks, "ticks", 6000, "stop after this many ticks")
	flag.StringVar(&o.difficulty, "difficulty", "medium", "AI difficulty (easy, medium, hard)")
	flag.Int64Var(&o.seed, "seed", 1, "AI random seed")
	flag.StringVar(&o.record, "record", "", "write issued commands to this replay file")
	flag.StringVar(&o.replay, "replay", "", "play back a replay file instead of running the AI")
	flag.BoolVar(&o.verbose, "v", false, "log match events")
	flag.Parse()

	if o.ticks <= 0 {
		log.Fatal("error: -ticks must be > 0")
	}
	if err := run(o); err != nil {
		log.Fatal(err)
	}
}

func parseDifficulty(s string) (ai.Difficulty, error) {
	switch s {
	case "easy":
		return ai.DiffEasy, nil
	case "medium":
		return ai.DiffMedium, nil
	case "hard":
		return ai.DiffHard, nil
	}
	return 0, fmt.Errorf("unknown difficulty %q", s)
}

func run(o options) error {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return err
		}
	}
	diff, err := parseDifficulty(o.difficulty)
	if err != nil {
		return err
	}

	matchID := uuid.New()
	var replayed []command.Command
	if o.replay != "" {
		if matchID, replayed, err = command.Load(o.replay); err != nil {
			return err
		}
	}

	opts := []world.Option{world.WithMatchID(matchID)}
	if o.verbose {
		opts = append(opts, world.WithLogger(log.New(os.Stderr, "", log.Lmicroseconds)))
	}

	var rec *command.Recorder
	if o.record != "" {
		if rec, err = command.NewRecorder(o.record, matchID); err != nil {
			return err
		}
		opts = append(opts, world.WithRecorder(rec))
	}

	var w *world.World
	if o.mapPath != "" {
		w, err = scenario.FromMap(o.mapPath, cfg, opts...)
	} else {
		w, err = scenario.Build(o.scenario, cfg, opts...)
	}
	if err != nil {
		return err
	}

	var controllers []world.Controller
	if o.replay != "" {
		controllers = []world.Controller{world.NewReplay(replayed)}
	} else {
		controllers = scenario.Controllers(w, diff, o.seed)
	}

	counts := make(map[core.EventType]int)
	w.Events().OnAll(func(e core.Event) { counts[e.Type]++ })

	loop := world.NewLoop(w, controllers...)
	for loop.CurrentTick() < uint64(o.ticks) && !decided(w) {
		loop.Step()
	}

	if rec != nil {
		if err := rec.Close(); err != nil {
			return err
		}
	}
	report(w, counts)
	return nil
}

// effects lists a unit's active effects with the ticks each has left
func effects(u *unit.Unit) string {
	var b strings.Builder
	for _, e := range u.Effects() {
		fmt.Fprintf(&b, " %s:%d", e.Name(), e.Remaining())
	}
	return b.String()
}

// decided reports whether at most one team still has living units
func decided(w *world.World) bool {
	return len(w.TeamAlive()) <= 1
}

func report(w *world.World, counts map[core.EventType]int) {
	fmt.Printf("=== Match %s ===\n", w.MatchID())
	fmt.Printf("map=%s ticks=%d\n", w.Tiles().Name, w.CurrentTick())

	alive := w.TeamAlive()
	switch len(alive) {
	case 0:
		fmt.Println("result: no survivors")
	case 1:
		for team, n := range alive {
			fmt.Printf("result: %s wins with %d units left\n", team, n)
		}
	default:
		fmt.Println("result: undecided")
	}

	units := w.Units()
	sort.Slice(units, func(i, j int) bool {
		if units[i].Team() != units[j].Team() {
			return units[i].Team() < units[j].Team()
		}
		return units[i].Type().Name < units[j].Type().Name
	})
	for _, u := range units {
		fmt.Printf("  %-5s %-10s lvl=%d hp=%5.1f/%5.1f at (%.1f, %.1f)%s\n",
			u.Team(), u.Type().Name, u.Level(), u.Health(), u.MaxHealth(), u.Centre().X, u.Centre().Y, effects(u))
	}
	fmt.Printf("corpses=%d projectiles=%d\n", len(w.Corpses()), len(w.Projectiles()))

	types := make([]core.EventType, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	for _, t := range types {
		fmt.Printf("  %-16s %d\n", t, counts[t])
	}
}
