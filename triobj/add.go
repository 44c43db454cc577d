package triobj

import (
	"fmt"
	"math"

	"github.com/tidwall/btree"
	"github.com/velisar/hvarc/core"
	"github.com/velisar/hvarc/hvlist"
)

// Add offers p to the archive. It returns true when p was inserted and
// false when p was weakly dominated or outside the reference domain.
// Rejected points still lower-bound HypervolumePlus by their distance
// to the reference domain.
func (a *Archive) Add(p core.Point, info any) (bool, error) {
	return a.add(p, info, true)
}

func (a *Archive) add(p core.Point, info any, updateHV bool) (bool, error) {
	if err := p.CheckDim(nObj); err != nil {
		return false, fmt.Errorf("triobj: %w", err)
	}
	if a.ref != nil {
		cand := a.policy.Final.FromFloat(-a.DistanceToHypervolumeArea(p))
		if a.hvPlus.Cmp(cand) < 0 {
			a.hvPlus = cand
		}
	}

	const di = nObj - 1
	head := a.list.Head
	u := hvlist.NewNode(p, info)

	q := head
	first := true
	dominated := false
	inserted := false
	var bestCX, bestCY *hvlist.Node
	var removed []core.Point

	// One pass over the ring, sentinels included: the sentinels encode
	// the reference-domain bounds, so an out-of-domain candidate is
	// rejected as dominated by one of them.
	for q != head || first {
		first = false

		if core.WeaklyDominates(q.X[:], u.X[:], nObj) {
			dominated = true

			break
		}
		if core.WeaklyDominates(u.X[:], q.X[:], nObj) {
			next := q.Next[di]
			hvlist.RemoveFromZ(q, nObj)
			removed = append(removed, core.Point(q.X[:nObj]).Clone())
			q = next

			continue
		}

		// Rule 1: collect u's closest delimiters among nodes preceding
		// it in the lexicographic order; prefer the smallest first
		// coordinate for Closest[0], ties by second (and symmetrically).
		if hvlist.LexLess(q.X, u.X) && q.X[0] > u.X[0] && q.X[1] < u.X[1] {
			if bestCX == nil || q.X[0] < bestCX.X[0] ||
				(q.X[0] == bestCX.X[0] && q.X[1] < bestCX.X[1]) {
				bestCX = q
			}
		}
		if hvlist.LexLess(q.X, u.X) && q.X[0] < u.X[0] && q.X[1] > u.X[1] {
			if bestCY == nil || q.X[1] < bestCY.X[1] ||
				(q.X[1] == bestCY.X[1] && q.X[0] < bestCY.X[0]) {
				bestCY = q
			}
		}

		// Rule 2: u may become the better delimiter of a later node.
		if u.X[1] < q.X[1] && hvlist.LexLess(u.X, q.X) {
			if (q.X[0] < u.X[0] && u.X[0] < q.Closest[0].X[0]) ||
				(u.X[0] == q.Closest[0].X[0] && u.X[1] <= q.Closest[0].X[1]) {
				q.Closest[0] = u
			}
		}
		if u.X[0] < q.X[0] && hvlist.LexLess(u.X, q.X) {
			if (q.X[1] < u.X[1] && u.X[1] < q.Closest[1].X[1]) ||
				(u.X[1] == q.Closest[1].X[1] && u.X[0] <= q.Closest[1].X[0]) {
				q.Closest[1] = u
			}
		}

		// Rule 3: splice u in immediately before the first
		// lexicographically greater node.
		if hvlist.LexLess(u.X, q.X) && !inserted && !dominated {
			u.Next[di] = q
			u.Prev[di] = q.Prev[di]
			q.Prev[di].Next[di] = u
			q.Prev[di] = u
			inserted = true
		}

		q = q.Next[di]
	}

	if !dominated {
		u.Closest[0] = bestCX
		u.Closest[1] = bestCY
		a.list.Count += 1 - len(removed)
	}
	a.removed = removed
	a.kinksValid = false

	if updateHV && !dominated {
		a.setHV()
	}

	return !dominated, nil
}

// AddList offers every point of the batch with the compare strategy.
func (a *Archive) AddList(points []core.Point, infos []any) error {
	return a.AddListStrategy(points, infos, core.StrategyCompare)
}

// AddListStrategy offers a batch of points. StrategyOneByOne inserts
// each point individually and recomputes the hypervolume once at the
// end; StrategyReinit rebuilds the archive from the union, which is
// cheaper for batches that are large relative to the archive;
// StrategyCompare picks between the two.
func (a *Archive) AddListStrategy(points []core.Point, infos []any, strategy core.AddStrategy) error {
	if infos != nil && len(infos) != len(points) {
		return fmt.Errorf("triobj: %w", core.ErrLengthMismatch)
	}
	for _, p := range points {
		if err := p.CheckDim(nObj); err != nil {
			return fmt.Errorf("triobj: point %v: %w", p, err)
		}
	}

	s := len(points)
	if strategy == core.StrategyCompare {
		n := a.Len()
		if s == 1 || (n > 0 && float64(s) < math.Log2(float64(n))/2) {
			strategy = core.StrategyOneByOne
		} else {
			strategy = core.StrategyReinit
		}
	}

	switch strategy {
	case core.StrategyOneByOne:
		var removed []core.Point
		for i, p := range points {
			var info any
			if infos != nil {
				info = infos[i]
			}
			if _, err := a.add(p, info, false); err != nil {
				return err
			}
			removed = append(removed, a.removed...)
		}
		a.removed = removed
		a.setHV()
	case core.StrategyReinit:
		a.reinit(points, infos)
	default:
		return fmt.Errorf("triobj: %w", core.ErrAddStrategy)
	}

	return nil
}

// reinit rebuilds the archive from the union of the current points and
// the batch, keeping the uncrowded indicator's offered-point history.
func (a *Archive) reinit(points []core.Point, infos []any) {
	merged := append(a.Points(), points...)
	mergedInfos := a.Infos()
	if infos == nil {
		infos = make([]any, len(points))
	}
	mergedInfos = append(mergedInfos, infos...)

	before := a.Points()
	hvPlus := a.hvPlus
	fresh, _ := New(merged, a.ref, a.policy, mergedInfos)
	fresh.scale = a.scale
	if hvPlus.Cmp(fresh.hvPlus) > 0 {
		fresh.hvPlus = hvPlus
	}
	fresh.removed = evicted(before, fresh)
	*a = *fresh
}

// evicted lists the members of before that did not survive into the
// rebuilt archive.
func evicted(before []core.Point, a *Archive) []core.Point {
	var out []core.Point
	for _, p := range before {
		if !a.Contains(p) {
			out = append(out, p)
		}
	}

	return out
}

// Remove deletes the archived point equal to p and returns its
// payload. Every closest pointer that referenced the removed node is
// recomputed from a (second, first)-ordered tree of the remaining
// staircase; the s2/s1 sentinels serve as outermost fallbacks.
func (a *Archive) Remove(p core.Point) (any, error) {
	if err := p.CheckDim(nObj); err != nil {
		return nil, fmt.Errorf("triobj: %w", err)
	}

	const di = nObj - 1
	head := a.list.Head
	stop := head.Prev[di]

	t := btree.NewBTreeG[*hvlist.Node](lessYX)
	t.Set(head) // s1
	t.Set(stop) // s3
	var removeNode *hvlist.Node

	for cur := head.Next[di]; cur != stop; cur = cur.Next[di] {
		if core.Point(cur.X[:nObj]).Equal(p) {
			removeNode = cur

			continue
		}
		t.Set(cur)

		// Drop tree entries the current node dominates in the first two
		// coordinates; they can no longer delimit anything ahead.
		var doomed []*hvlist.Node
		t.Scan(func(n *hvlist.Node) bool {
			if n != cur && core.StrictlyDominates(cur.X[:], n.X[:], 2) {
				doomed = append(doomed, n)
			}

			return true
		})
		for _, n := range doomed {
			t.Delete(n)
		}

		if core.Point(cur.Closest[0].X[:nObj]).Equal(p) {
			if cand := minCX(t, cur); cand != nil {
				cur.Closest[0] = cand
			} else {
				cur.Closest[0] = head.Next[di] // s2
			}
		}
		if core.Point(cur.Closest[1].X[:nObj]).Equal(p) {
			if cand := minCY(t, cur); cand != nil {
				cur.Closest[1] = cand
			} else {
				cur.Closest[1] = head // s1
			}
		}
	}

	if removeNode == nil {
		return nil, fmt.Errorf("triobj: %v: %w", p, core.ErrPointNotFound)
	}

	hvlist.RemoveFromZ(removeNode, nObj)
	a.kinksValid = false
	a.setHV()
	a.list.Count--
	if a.ref != nil && !(a.hv.Sign() > 0) {
		a.hvPlus = a.policy.Final.NegInf()
	}
	a.removed = []core.Point{core.Point(removeNode.X[:nObj]).Clone()}

	return removeNode.Info, nil
}

// minCX returns the tree node with the smallest first coordinate among
// those delimiting cur from the right, ties by second coordinate.
func minCX(t *btree.BTreeG[*hvlist.Node], cur *hvlist.Node) *hvlist.Node {
	var best *hvlist.Node
	t.Scan(func(n *hvlist.Node) bool {
		if n.X[0] > cur.X[0] && n.X[1] < cur.X[1] {
			if best == nil || n.X[0] < best.X[0] ||
				(n.X[0] == best.X[0] && n.X[1] < best.X[1]) {
				best = n
			}
		}

		return true
	})

	return best
}

// minCY is the symmetric counterpart of minCX.
func minCY(t *btree.BTreeG[*hvlist.Node], cur *hvlist.Node) *hvlist.Node {
	var best *hvlist.Node
	t.Scan(func(n *hvlist.Node) bool {
		if n.X[1] > cur.X[1] && n.X[0] < cur.X[0] {
			if best == nil || n.X[1] < best.X[1] ||
				(n.X[1] == best.X[1] && n.X[0] < best.X[0]) {
				best = n
			}
		}

		return true
	})

	return best
}
