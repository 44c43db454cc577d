package hvlist

import (
	"sort"

	"github.com/velisar/hvarc/core"
)

// List is the sentinel-bounded circular list shared by the 3- and
// 4-objective archives. Nodes are threaded in ascending order of the
// last coordinate (ring index NObj-1); for 4-objective lists the
// z-ring (index 2) is built lazily by the sweeps.
type List struct {
	NObj  int
	Head  *Node
	Count int
}

// NewList builds a list from the given points, keeping only points
// strictly below the reference point on every coordinate, the same
// domain rule the incremental add applies. Points are sorted in
// ascending lexicographic order of reversed coordinates (last
// coordinate first); infos may be nil or must align with points.
func NewList(nObj int, points []core.Point, ref []float64, infos []any) *List {
	kept := make([]core.Point, 0, len(points))
	keptInfos := make([]any, 0, len(points))
	for i, p := range points {
		if core.StrictlyBelow(p, ref, nObj) {
			kept = append(kept, p)
			var info any
			if infos != nil {
				info = infos[i]
			}
			keptInfos = append(keptInfos, info)
		}
	}

	head := initSentinels(ref, nObj)
	l := &List{NObj: nObj, Head: head, Count: len(kept)}
	n := len(kept)
	if n == 0 {
		return l
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		pa, pb := kept[order[a]], kept[order[b]]
		for i := nObj - 1; i >= 0; i-- {
			if pa[i] != pb[i] {
				return pa[i] < pb[i]
			}
		}

		return false
	})

	di := nObj - 1
	nodes := make([]*Node, n)
	for i, idx := range order {
		nodes[i] = NewNode(kept[idx], keptInfos[idx])
	}

	s := head.Next[di]
	s.Next[di] = nodes[0]
	nodes[0].Prev[di] = s
	for i := 0; i < n-1; i++ {
		nodes[i].Next[di] = nodes[i+1]
		nodes[i+1].Prev[di] = nodes[i]
	}
	s = head.Prev[di]
	s.Prev[di] = nodes[n-1]
	nodes[n-1].Next[di] = s

	return l
}

// Iterate visits the live nodes in ring order until fn returns false.
func (l *List) Iterate(fn func(*Node) bool) {
	di := l.NObj - 1
	stop := l.Head.Prev[di]
	for p := l.Head.Next[di].Next[di]; p != stop; p = p.Next[di] {
		if !fn(p) {
			return
		}
	}
}

// Points returns the archived points in ring order.
func (l *List) Points() []core.Point {
	out := make([]core.Point, 0, l.Count)
	l.Iterate(func(n *Node) bool {
		out = append(out, core.Point(n.X[:l.NObj]).Clone())

		return true
	})

	return out
}

// Infos returns the payloads in ring order.
func (l *List) Infos() []any {
	out := make([]any, 0, l.Count)
	l.Iterate(func(n *Node) bool {
		out = append(out, n.Info)

		return true
	})

	return out
}

// Find returns the node whose coordinates equal p, or nil.
func (l *List) Find(p core.Point) *Node {
	var found *Node
	l.Iterate(func(n *Node) bool {
		if core.Point(n.X[:l.NObj]).Equal(p) {
			found = n

			return false
		}

		return true
	})

	return found
}

// Dominates reports whether some archived point weakly dominates p.
// The ring order lets the scan stop at the first node beyond p on the
// last coordinate.
func (l *List) Dominates(p core.Point) bool {
	dominated := false
	l.Iterate(func(n *Node) bool {
		if core.WeaklyDominates(n.X[:], p, l.NObj) {
			dominated = true

			return false
		}
		if p[l.NObj-1] < n.X[l.NObj-1] {
			return false
		}

		return true
	})

	return dominated
}

// Dominators returns the archived points weakly dominating p.
func (l *List) Dominators(p core.Point) []core.Point {
	var out []core.Point
	l.Iterate(func(n *Node) bool {
		if core.WeaklyDominates(n.X[:], p, l.NObj) {
			out = append(out, core.Point(n.X[:l.NObj]).Clone())
		} else if p[l.NObj-1] < n.X[l.NObj-1] {
			return false
		}

		return true
	})

	return out
}

// CountDominators returns len(Dominators(p)) without materializing it.
func (l *List) CountDominators(p core.Point) int {
	count := 0
	l.Iterate(func(n *Node) bool {
		if core.WeaklyDominates(n.X[:], p, l.NObj) {
			count++
		} else if p[l.NObj-1] < n.X[l.NObj-1] {
			return false
		}

		return true
	})

	return count
}
