package pathfind

import (
	"container/heap"

	"github.com/1siamBot/rts-engine/engine/geom"
)

// SearchLimit is the number of expanded nodes after which a search gives up.
// An empty result therefore means "no path found", not "no path exists".
const SearchLimit = 50

// Passability reports whether a grid point can be walked through
type Passability func(geom.Point) bool

// FindPath finds a path from start to end using A*.
//
// Both ends are rounded to grid cells before searching. The returned path
// starts with the rounded start cell and ends with the exact (unrounded) end,
// so movement stops precisely where it was asked to. An empty path is returned
// when the goal is unreachable or the search limit is hit.
//
// FindPath keeps no state between calls and is safe for concurrent use as long
// as isPassable has no side effects.
func FindPath(isPassable Passability, start, end geom.Point) []geom.Point {
	path := findPathRounded(isPassable, start.Rounded(), end.Rounded())
	if len(path) > 0 {
		path[len(path)-1] = end
	}
	return path
}

func findPathRounded(isPassable Passability, start, goal geom.Point) []geom.Point {
	open := &nodeHeap{}
	var seq uint64
	heap.Push(open, &node{p: start, f: heuristic(start, goal), seq: seq})

	visited := make(map[geom.Point]struct{}, SearchLimit)

	for open.Len() > 0 {
		// Stop once we have explored too many nodes
		if len(visited) >= SearchLimit {
			return nil
		}

		cur := heap.Pop(open).(*node)
		if _, ok := visited[cur.p]; ok {
			continue
		}
		visited[cur.p] = struct{}{}

		if cur.p == goal {
			return cur.path()
		}

		for _, np := range passableNeighbours(isPassable, cur.p) {
			if _, ok := visited[np]; ok {
				continue
			}
			g := cur.g + cur.p.Distance(np)
			seq++
			heap.Push(open, &node{p: np, parent: cur, g: g, f: g + heuristic(np, goal), seq: seq})
		}
	}
	return nil
}

// passableNeighbours returns the passable orthogonal cells plus every passable
// diagonal cell that has at least one passable orthogonal cell beside it, so
// paths never squeeze between two solid corners.
func passableNeighbours(isPassable Passability, p geom.Point) []geom.Point {
	out := make([]geom.Point, 0, 8)
	for _, s := range p.Sides() {
		if isPassable(s) {
			out = append(out, s)
		}
	}

	corners := p.Corners()
	flanks := [4][2]geom.Point{
		{corners[0].Right(), corners[0].Bottom()}, // top-left
		{corners[1].Left(), corners[1].Bottom()},  // top-right
		{corners[2].Right(), corners[2].Top()},    // bottom-left
		{corners[3].Left(), corners[3].Top()},     // bottom-right
	}
	for i, c := range corners {
		if !isPassable(flanks[i][0]) && !isPassable(flanks[i][1]) {
			continue
		}
		if isPassable(c) {
			out = append(out, c)
		}
	}
	return out
}

func heuristic(a, b geom.Point) float64 {
	return a.Distance(b)
}

// --- Priority queue ---

type node struct {
	p      geom.Point
	parent *node
	g, f   float64
	seq    uint64 // insertion order, breaks ties
}

func (n *node) path() []geom.Point {
	depth := 0
	for cur := n; cur != nil; cur = cur.parent {
		depth++
	}
	path := make([]geom.Point, depth)
	for cur := n; cur != nil; cur = cur.parent {
		depth--
		path[depth] = cur.p
	}
	return path
}

type nodeHeap []*node

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	return h[i].seq < h[j].seq
}
func (h nodeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x interface{}) { *h = append(*h, x.(*node)) }
func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
