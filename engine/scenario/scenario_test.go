package scenario

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/1siamBot/rts-engine/engine/ai"
	"github.com/1siamBot/rts-engine/engine/config"
	"github.com/1siamBot/rts-engine/engine/core"
	"github.com/1siamBot/rts-engine/engine/maplib"
	"github.com/1siamBot/rts-engine/engine/world"
)

func TestBuild(t *testing.T) {
	for _, name := range Names() {
		w, err := Build(name, config.Default())
		if err != nil {
			t.Fatalf("Build(%s): %v", name, err)
		}
		alive := w.TeamAlive()
		if alive[core.TeamRed] == 0 || alive[core.TeamBlue] == 0 {
			t.Fatalf("%s: both teams need units, got %v", name, alive)
		}
	}
	if _, err := Build("siege", config.Default()); err == nil {
		t.Fatal("expected error for unknown scenario")
	}
}

func TestSkirmish_Layout(t *testing.T) {
	w, err := Build("skirmish", config.Default())
	if err != nil {
		t.Fatal(err)
	}
	if len(w.Units()) != 10 || len(w.Items()) != 3 || len(w.Obstacles()) != 4 {
		t.Fatalf("units=%d items=%d obstacles=%d", len(w.Units()), len(w.Items()), len(w.Obstacles()))
	}
	for _, u := range w.Units() {
		if !w.Passability(u.Type().Pass)(u.Centre()) {
			t.Fatalf("%v spawned on an impassable cell", u)
		}
	}
}

func TestFromMap(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "open.json")
	data := `{"name":"open","width":16,"height":8,
		"start_positions":[{"team":1,"x":2,"y":3},{"team":2,"x":13,"y":3}]}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := FromMap(path, config.Default())
	if err != nil {
		t.Fatalf("FromMap: %v", err)
	}
	if n := len(w.Units()); n != 10 {
		t.Fatalf("units = %d, want two squads", n)
	}

	empty := filepath.Join(dir, "empty.json")
	if err := os.WriteFile(empty, []byte(`{"name":"e","width":4,"height":4}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := FromMap(empty, config.Default()); !errors.Is(err, maplib.ErrBadMap) {
		t.Fatalf("err = %v, want ErrBadMap", err)
	}

	offMap := filepath.Join(dir, "offmap.json")
	data = `{"name":"o","width":6,"height":6,"start_positions":[{"team":1,"x":50,"y":-9}]}`
	if err := os.WriteFile(offMap, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := FromMap(offMap, config.Default()); !errors.Is(err, maplib.ErrBadMap) {
		t.Fatalf("err = %v, want ErrBadMap", err)
	}
}

func TestDuel_AIFinishesMatch(t *testing.T) {
	w, err := Build("duel", config.Default())
	if err != nil {
		t.Fatal(err)
	}
	l := world.NewLoop(w, Controllers(w, ai.DiffHard, 7)...)
	for i := 0; i < 2000; i++ {
		alive := w.TeamAlive()
		if alive[core.TeamRed] == 0 || alive[core.TeamBlue] == 0 {
			return
		}
		l.Step()
	}
	t.Fatalf("duel still running after 2000 ticks: %v", w.TeamAlive())
}
