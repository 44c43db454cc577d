package quadobj

import (
	"fmt"
	"math"

	"github.com/velisar/hvarc/core"
	"github.com/velisar/hvarc/hvlist"
)

const nObj = 4

// Archive is a 4-objective nondominated archive. Iteration order is
// ascending fourth coordinate. Not safe for concurrent use.
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
			return nil, fmt.Errorf("quadobj: reference point: %w", err)
		}
	}
	if infos != nil && len(infos) != len(points) {
		return nil, fmt.Errorf("quadobj: %w", core.ErrLengthMismatch)
	}
	for _, p := range points {
		if err := p.CheckDim(nObj); err != nil {
			return nil, fmt.Errorf("quadobj: point %v: %w", p, err)
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
// against the reference point, sort, drop dominated entries and run
// the hypervolume sweep once over the fresh list.
func (a *Archive) rebuild(points []core.Point, infos []any) {
	a.list = hvlist.NewList(nObj, points, a.listRef(), infos)
	a.removeDominated()
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

	return []float64{inf, inf, inf, inf}
}

// removeDominated unlinks every entry weakly dominated within the
// freshly sorted batch. The ring is ordered by ascending fourth
// coordinate, so an earlier survivor whose first three coordinates
// weakly dominate the current entry dominates it in all four; the
// weak test also drops exact duplicates, keeping the first.
func (a *Archive) removeDominated() {
	const di = nObj - 1
	head := a.list.Head
	stop := head.Prev[di]

	var kept []*hvlist.Node
	var doomed []*hvlist.Node
	for cur := head.Next[di].Next[di]; cur != stop; cur = cur.Next[di] {
		dominated := false
		for _, n := range kept {
			if core.WeaklyDominates(n.X[:], cur.X[:], nObj-1) {
				dominated = true

				break
			}
		}
		if dominated {
			doomed = append(doomed, cur)
		} else {
			kept = append(kept, cur)
		}
	}

	for _, n := range doomed {
		hvlist.RemoveFromZ(n, nObj)
		a.list.Count--
	}
}

// NumObjectives returns 4.
func (a *Archive) NumObjectives() int { return nObj }

// Len returns the number of archived points.
func (a *Archive) Len() int { return a.list.Count }

// Points returns the archived points in ascending fourth-coordinate
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
		return false, fmt.Errorf("quadobj: %w", err)
	}

	return a.list.Dominates(p), nil
}

// Dominators returns the archived points weakly dominating p.
func (a *Archive) Dominators(p core.Point) ([]core.Point, error) {
	if err := p.CheckDim(nObj); err != nil {
		return nil, fmt.Errorf("quadobj: %w", err)
	}

	return a.list.Dominators(p), nil
}

// CountDominators returns the number of archived points weakly
// dominating p.
func (a *Archive) CountDominators(p core.Point) (int, error) {
	if err := p.CheckDim(nObj); err != nil {
		return 0, fmt.Errorf("quadobj: %w", err)
	}

	return a.list.CountDominators(p), nil
}

// InDomain reports whether p strictly dominates the reference point.
func (a *Archive) InDomain(p core.Point) (bool, error) {
	if err := p.CheckDim(nObj); err != nil {
		return false, fmt.Errorf("quadobj: %w", err)
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
