package pathfind

import (
	"math"
	"testing"

	"github.com/1siamBot/rts-engine/engine/geom"
)

// box returns a predicate that is passable inside [0,w)x[0,h) except for walls
func box(w, h int, walls ...geom.Point) Passability {
	blocked := map[geom.Point]bool{}
	for _, p := range walls {
		blocked[p] = true
	}
	return func(p geom.Point) bool {
		if p.X < 0 || p.Y < 0 || p.X >= float64(w) || p.Y >= float64(h) {
			return false
		}
		return !blocked[p]
	}
}

func checkPathValid(t *testing.T, pass Passability, path []geom.Point, start, end geom.Point) {
	t.Helper()
	if len(path) == 0 {
		t.Fatal("expected a path")
	}
	if path[0] != start.Rounded() && len(path) > 1 {
		t.Fatalf("path should start at %v, starts at %v", start.Rounded(), path[0])
	}
	if last := path[len(path)-1]; last != end {
		t.Fatalf("path should end exactly at %v, ends at %v", end, last)
	}
	// Every point but the literal end is a grid cell adjacent to its predecessor
	for i := 1; i < len(path)-1; i++ {
		a, b := path[i-1], path[i]
		if !pass(b) {
			t.Fatalf("step %d %v is not passable", i, b)
		}
		if d := a.Distance(b); d > math.Sqrt2+1e-9 {
			t.Fatalf("step %d jumps %v -> %v (%.3f)", i, a, b, d)
		}
		if b != b.Rounded() {
			t.Fatalf("intermediate point %v is not a grid cell", b)
		}
	}
}

func TestFindPath_Straight(t *testing.T) {
	pass := box(10, 10)
	start, end := geom.Pt(1, 1), geom.Pt(5, 1)
	path := FindPath(pass, start, end)
	checkPathValid(t, pass, path, start, end)
	if len(path) != 5 {
		t.Fatalf("expected 5 points on a straight path, got %d: %v", len(path), path)
	}
}

func TestFindPath_EndsAtUnroundedEnd(t *testing.T) {
	pass := box(10, 10)
	start, end := geom.Pt(1.2, 1.3), geom.Pt(4.4, 1.6)
	path := FindPath(pass, start, end)
	checkPathValid(t, pass, path, start, end)
	if path[len(path)-1] != end {
		t.Fatalf("last point should be the literal end, got %v", path[len(path)-1])
	}
}

func TestFindPath_SameCell(t *testing.T) {
	end := geom.Pt(2.4, 1.9)
	path := FindPath(box(5, 5), geom.Pt(2.2, 2.1), end)
	if len(path) != 1 || path[0] != end {
		t.Fatalf("expected [%v], got %v", end, path)
	}
}

func TestFindPath_AroundWall(t *testing.T) {
	// Vertical wall at x=3 from y=0..3, gap at y=4
	walls := []geom.Point{geom.Pt(3, 0), geom.Pt(3, 1), geom.Pt(3, 2), geom.Pt(3, 3)}
	pass := box(6, 6, walls...)
	start, end := geom.Pt(1, 1), geom.Pt(5, 1)
	path := FindPath(pass, start, end)
	checkPathValid(t, pass, path, start, end)
	for _, p := range path {
		for _, w := range walls {
			if p == w {
				t.Fatalf("path crosses wall at %v", p)
			}
		}
	}
}

func TestFindPath_EnclosedGoalIsEmptyAndBounded(t *testing.T) {
	goal := geom.Pt(5, 5)
	ring := goal.Neighbours()
	inner := box(10, 10, ring[:]...)

	queried := map[geom.Point]bool{}
	pass := func(p geom.Point) bool {
		queried[p] = true
		return inner(p)
	}

	path := FindPath(pass, geom.Pt(0, 0), goal)
	if len(path) != 0 {
		t.Fatalf("expected no path to enclosed goal, got %v", path)
	}
	// Each expanded node asks about at most 8 neighbours plus 8 flanking cells
	if len(queried) > SearchLimit*16 {
		t.Fatalf("search was not bounded: %d distinct cells queried", len(queried))
	}
}

func TestFindPath_UnreachableSmallArea(t *testing.T) {
	// Two rooms with no door, fewer cells than the search limit
	walls := []geom.Point{geom.Pt(2, 0), geom.Pt(2, 1), geom.Pt(2, 2)}
	if path := FindPath(box(5, 3, walls...), geom.Pt(0, 1), geom.Pt(4, 1)); path != nil {
		t.Fatalf("expected nil path, got %v", path)
	}
}

func TestFindPath_SearchLimitAbandonsDistantGoal(t *testing.T) {
	pass := box(100, 3)
	if path := FindPath(pass, geom.Pt(0, 1), geom.Pt(80, 1)); len(path) != 0 {
		t.Fatalf("expected search to give up after %d nodes, got %d points", SearchLimit, len(path))
	}
	if path := FindPath(pass, geom.Pt(0, 1), geom.Pt(20, 1)); len(path) == 0 {
		t.Fatal("goal within the limit should be found")
	}
}

func TestPassableNeighbours_DiagonalCornerRule(t *testing.T) {
	// Only (0,0) and the diagonal (1,1) are open; both flanks are solid
	open := map[geom.Point]bool{geom.Pt(0, 0): true, geom.Pt(1, 1): true}
	pass := func(p geom.Point) bool { return open[p] }

	for _, n := range passableNeighbours(pass, geom.Pt(0, 0)) {
		if n == geom.Pt(1, 1) {
			t.Fatal("diagonal between two solid corners must not be a neighbour")
		}
	}
	if path := FindPath(pass, geom.Pt(0, 0), geom.Pt(1, 1)); len(path) != 0 {
		t.Fatalf("expected no path through a sealed corner, got %v", path)
	}

	// Opening one flank makes the diagonal reachable
	open[geom.Pt(1, 0)] = true
	found := false
	for _, n := range passableNeighbours(pass, geom.Pt(0, 0)) {
		if n == geom.Pt(1, 1) {
			found = true
		}
	}
	if !found {
		t.Fatal("diagonal with one open flank should be a neighbour")
	}
}

func TestPassableNeighbours_DiagonalMustBePassable(t *testing.T) {
	open := map[geom.Point]bool{geom.Pt(0, 0): true, geom.Pt(1, 0): true, geom.Pt(0, 1): true}
	pass := func(p geom.Point) bool { return open[p] }
	for _, n := range passableNeighbours(pass, geom.Pt(0, 0)) {
		if !pass(n) {
			t.Fatalf("neighbour %v is not passable", n)
		}
	}
}
