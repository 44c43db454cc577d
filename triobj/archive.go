package triobj

import (
	"fmt"
	"math"

	"github.com/tidwall/btree"
	"github.com/velisar/hvarc/core"
	"github.com/velisar/hvarc/hvlist"
)

const nObj = 3

// Archive is a 3-objective nondominated archive. Iteration order is
// ascending third coordinate. Not safe for concurrent use.
type Archive struct {
	list   *hvlist.List
	ref    core.Point
	policy core.Policy
	scale  *core.Scaling

	hv      core.Scalar
	hvPlus  core.Scalar
	removed []core.Point

	kinks      []core.Point
	kinksValid bool
}

// New builds an archive from points, which need not be sorted and may
// contain dominated entries. ref may be nil; hypervolume queries then
// fail with core.ErrNoReferencePoint. infos may be nil or must align
// with points.
func New(points []core.Point, ref core.Point, policy core.Policy, infos []any) (*Archive, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	if ref != nil {
		if err := ref.CheckDim(nObj); err != nil {
			return nil, fmt.Errorf("triobj: reference point: %w", err)
		}
	}
	if infos != nil && len(infos) != len(points) {
		return nil, fmt.Errorf("triobj: %w", core.ErrLengthMismatch)
	}
	for _, p := range points {
		if err := p.CheckDim(nObj); err != nil {
			return nil, fmt.Errorf("triobj: point %v: %w", p, err)
		}
	}

	a := &Archive{
		ref:    ref.Clone(),
		policy: policy,
		scale:  core.NewScaling(nObj, ref),
		hv:     policy.Final.Zero(),
		hvPlus: policy.Final.NegInf(),
	}
	a.rebuild(points, infos)
	if ref != nil && !(a.hv.Sign() > 0) && len(points) > 0 {
		closest := math.Inf(1)
		for _, p := range points {
			if d := a.DistanceToHypervolumeArea(p); d < closest {
				closest = d
			}
		}
		a.hvPlus = a.policy.Final.FromFloat(-closest)
	}

	return a, nil
}

// rebuild reconstructs the linked structure from scratch: filter
// against the reference point, sort, derive the closest pointers, drop
// dominated entries and recompute the hypervolume.
func (a *Archive) rebuild(points []core.Point, infos []any) {
	a.list = hvlist.NewList(nObj, points, a.listRef(), infos)
	a.preprocess()
	a.kinksValid = false
	a.setHV()
}

// listRef returns the reference point used for the linked list, which
// substitutes +Inf sentinels when none was given.
func (a *Archive) listRef() []float64 {
	if a.ref != nil {
		return a.ref
	}
	inf := math.Inf(1)

	return []float64{inf, inf, inf}
}

// lessYX orders nodes by (second, first) coordinate; live archive
// points never collide on that key.
func lessYX(x, y *hvlist.Node) bool {
	if x.X[1] != y.X[1] {
		return x.X[1] < y.X[1]
	}

	return x.X[0] < y.X[0]
}

// nextY returns the successor of s in (second, first) order.
func nextY(t *btree.BTreeG[*hvlist.Node], s *hvlist.Node) *hvlist.Node {
	var next *hvlist.Node
	t.Ascend(s, func(n *hvlist.Node) bool {
		if n == s {
			return true
		}
		next = n

		return false
	})

	return next
}

// outerDelimiterX returns the tree node with the largest second
// coordinate below p's, i.e. p's outer delimiter in the first
// coordinate; at worst the s2 sentinel.
func outerDelimiterX(t *btree.BTreeG[*hvlist.Node], p *hvlist.Node) *hvlist.Node {
	var s *hvlist.Node
	t.Descend(p, func(n *hvlist.Node) bool {
		if n == p || n.X[1] >= p.X[1] {
			return true
		}
		s = n

		return false
	})

	return s
}

// removeDominatedY deletes from the tree every node that p dominates in
// the first two coordinates, starting after p's outer delimiter s.
func removeDominatedY(t *btree.BTreeG[*hvlist.Node], p, s *hvlist.Node) {
	var doomed []*hvlist.Node
	for e := nextY(t, s); p.X[0] <= e.X[0]; e = nextY(t, e) {
		doomed = append(doomed, e)
	}
	for _, q := range doomed {
		t.Delete(q)
	}
}

// preprocess derives the closest pointers of every freshly linked node
// and unlinks entries dominated within the batch, sweeping the ring in
// sort order with a (second, first)-ordered tree of the current
// staircase.
func (a *Archive) preprocess() {
	const di = nObj - 1
	head := a.list.Head
	t := btree.NewBTreeG[*hvlist.Node](lessYX)
	t.Set(head)          // s1
	t.Set(head.Next[di]) // s2

	stop := head.Prev[di]
	for p := head.Next[di].Next[di]; p != stop; p = p.Next[di] {
		s := outerDelimiterX(t, p)
		if core.WeaklyDominates(s.X[:], p.X[:], nObj) ||
			core.WeaklyDominates(nextY(t, s).X[:], p.X[:], nObj) {
			p.NDom = 1

			continue
		}
		removeDominatedY(t, p, s)
		p.Closest[0] = s
		p.Closest[1] = nextY(t, s)
		t.Set(p)
	}

	// Unlink the entries found dominated, rather than leaving them for
	// the first hypervolume sweep to excise.
	for p := head.Next[di].Next[di]; p != stop; {
		next := p.Next[di]
		if p.NDom > 0 {
			hvlist.RemoveFromZ(p, nObj)
			a.list.Count--
		}
		p = next
	}
}

// NumObjectives returns 3.
func (a *Archive) NumObjectives() int { return nObj }

// Len returns the number of archived points.
func (a *Archive) Len() int { return a.list.Count }

// Points returns the archived points in ascending third-coordinate
// order.
func (a *Archive) Points() []core.Point { return a.list.Points() }

// Infos returns the payloads aligned with Points.
func (a *Archive) Infos() []any { return a.list.Infos() }

// ReferencePoint returns a copy of the reference point, or nil.
func (a *Archive) ReferencePoint() core.Point { return a.ref.Clone() }

// Discarded returns the points evicted or rejected by the most recent
// mutating call.
func (a *Archive) Discarded() []core.Point {
	out := make([]core.Point, len(a.removed))
	for i, p := range a.removed {
		out[i] = p.Clone()
	}

	return out
}

// Copy returns an independent deep copy. The uncrowded indicator keeps
// its offered-point history.
func (a *Archive) Copy() core.Archive {
	c, _ := New(a.Points(), a.ref, a.policy, a.Infos())
	c.scale = a.scale.Clone()
	c.hvPlus = a.hvPlus

	return c
}

// Contains reports whether a point equal to p is archived.
func (a *Archive) Contains(p core.Point) bool {
	return len(p) == nObj && a.list.Find(p) != nil
}

// Dominates reports whether some archived point weakly dominates p.
func (a *Archive) Dominates(p core.Point) (bool, error) {
	if err := p.CheckDim(nObj); err != nil {
		return false, fmt.Errorf("triobj: %w", err)
	}

	return a.list.Dominates(p), nil
}

// Dominators returns the archived points weakly dominating p.
func (a *Archive) Dominators(p core.Point) ([]core.Point, error) {
	if err := p.CheckDim(nObj); err != nil {
		return nil, fmt.Errorf("triobj: %w", err)
	}

	return a.list.Dominators(p), nil
}

// CountDominators returns the number of archived points weakly
// dominating p.
func (a *Archive) CountDominators(p core.Point) (int, error) {
	if err := p.CheckDim(nObj); err != nil {
		return 0, fmt.Errorf("triobj: %w", err)
	}

	return a.list.CountDominators(p), nil
}

// InDomain reports whether p strictly dominates the reference point.
func (a *Archive) InDomain(p core.Point) (bool, error) {
	if err := p.CheckDim(nObj); err != nil {
		return false, fmt.Errorf("triobj: %w", err)
	}

	return a.inDomain(p), nil
}

func (a *Archive) inDomain(p core.Point) bool {
	if a.ref == nil {
		return true
	}

	return core.StrictlyBelow(p, a.ref, nObj)
}

// SetWeights installs per-objective weights for the distance measures.
func (a *Archive) SetWeights(w []float64) error {
	_, err := a.scale.SetWeights(w)

	return err
}

// SetIdealPoint normalizes the distance measures by the ideal/reference
// box.
func (a *Archive) SetIdealPoint(ideal core.Point) error {
	_, err := a.scale.SetIdealPoint(ideal)

	return err
}
