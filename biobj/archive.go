package biobj

import (
	"fmt"
	"math"
	"sort"

	"github.com/velisar/hvarc/core"
)

const nObj = 2

// Archive is a 2-objective nondominated archive. Entries are sorted in
// ascending lexicographic order; iteration and index-based access
// follow that order. Not safe for concurrent use.
type Archive struct {
	pts    []core.Point
	infos  []any
	ref    core.Point
	policy core.Policy
	scale  *core.Scaling

	hv      core.Scalar // Final mode, meaningful only with a reference point
	hvPlus  core.Scalar
	removed []core.Point
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
			return nil, fmt.Errorf("biobj: reference point: %w", err)
		}
	}
	if infos != nil && len(infos) != len(points) {
		return nil, fmt.Errorf("biobj: %w", core.ErrLengthMismatch)
	}
	for _, p := range points {
		if err := p.CheckDim(nObj); err != nil {
			return nil, fmt.Errorf("biobj: point %v: %w", p, err)
		}
	}

	a := &Archive{
		ref:    ref.Clone(),
		policy: policy,
		scale:  core.NewScaling(nObj, ref),
		pts:    make([]core.Point, 0, len(points)),
		infos:  make([]any, 0, len(points)),
		hv:     policy.Final.Zero(),
		hvPlus: policy.Final.NegInf(),
	}

	order := make([]int, len(points))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(x, y int) bool {
		return core.LexLess(points[order[x]], points[order[y]], nObj)
	})
	for _, idx := range order {
		a.pts = append(a.pts, points[idx].Clone())
		var info any
		if infos != nil {
			info = infos[idx]
		}
		a.infos = append(a.infos, info)
	}

	a.prune()
	a.setHV()
	if ref != nil && !(a.hv.Sign() > 0) && len(points) > 0 {
		// No point made it into the reference domain; seed the
		// uncrowded indicator from the closest offered point.
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

// newSorted wraps an already sorted, already nondominated slice without
// copying validation work. Used for the local sub-archives of
// HypervolumeImprovement.
func newSorted(points []core.Point, ref core.Point, policy core.Policy) *Archive {
	a := &Archive{
		ref:    ref.Clone(),
		policy: policy,
		scale:  core.NewScaling(nObj, ref),
		pts:    make([]core.Point, 0, len(points)),
		infos:  make([]any, len(points)),
		hv:     policy.Final.Zero(),
		hvPlus: policy.Final.NegInf(),
	}
	for _, p := range points {
		a.pts = append(a.pts, p.Clone())
	}
	a.prune()
	a.setHV()

	return a
}

// prune removes dominated, duplicate and out-of-domain entries from the
// sorted slice and records them (duplicates of kept entries excepted)
// in the discarded list. Returns the number of dropped entries.
func (a *Archive) prune() int {
	dropped := 0
	var removed []core.Point
	keptPts := a.pts[:0]
	keptInfos := a.infos[:0]
	for i, p := range a.pts {
		if !a.inDomain(p) {
			removed = append(removed, p)
			dropped++

			continue
		}
		if len(keptPts) > 0 {
			last := keptPts[len(keptPts)-1]
			// Sorted order guarantees p[0] >= last[0], so a second
			// coordinate at or above last's means p is weakly dominated.
			if p[1] >= last[1] {
				if !p.Equal(last) {
					removed = append(removed, p)
				}
				dropped++

				continue
			}
		}
		keptPts = append(keptPts, p)
		keptInfos = append(keptInfos, a.infos[i])
	}
	a.pts = keptPts
	a.infos = keptInfos
	a.removed = removed

	return dropped
}

// NumObjectives returns 2.
func (a *Archive) NumObjectives() int { return nObj }

// Len returns the number of archived points.
func (a *Archive) Len() int { return len(a.pts) }

// At returns the archived point at the given sort index.
func (a *Archive) At(i int) core.Point { return a.pts[i].Clone() }

// Points returns the archived points in ascending lexicographic order.
func (a *Archive) Points() []core.Point {
	out := make([]core.Point, len(a.pts))
	for i, p := range a.pts {
		out[i] = p.Clone()
	}

	return out
}

// Infos returns the payloads aligned with Points.
func (a *Archive) Infos() []any { return append([]any(nil), a.infos...) }

// ReferencePoint returns a copy of the reference point, or nil.
func (a *Archive) ReferencePoint() core.Point { return a.ref.Clone() }

// Discarded returns the points dropped by the most recent mutation.
func (a *Archive) Discarded() []core.Point {
	out := make([]core.Point, len(a.removed))
	for i, p := range a.removed {
		out[i] = p.Clone()
	}

	return out
}

// Copy returns an independent deep copy, cached indicators included.
func (a *Archive) Copy() core.Archive {
	c := &Archive{
		pts:    make([]core.Point, len(a.pts)),
		infos:  append([]any(nil), a.infos...),
		ref:    a.ref.Clone(),
		policy: a.policy,
		scale:  a.scale.Clone(),
		hv:     a.hv,
		hvPlus: a.hvPlus,
	}
	for i, p := range a.pts {
		c.pts[i] = p.Clone()
	}

	return c
}

// bisectLeft returns the lowest index at which p could be inserted
// while keeping the slice sorted.
func (a *Archive) bisectLeft(p core.Point) int {
	return sort.Search(len(a.pts), func(i int) bool {
		return !core.LexLess(a.pts[i], p, nObj)
	})
}

// dominatesWith reports whether the entry at idx weakly dominates p;
// false for out-of-range idx.
func (a *Archive) dominatesWith(idx int, p core.Point) bool {
	if idx < 0 || idx >= len(a.pts) {
		return false
	}

	return a.pts[idx][0] <= p[0] && a.pts[idx][1] <= p[1]
}

// index returns the position of the entry equal to p, or -1.
func (a *Archive) index(p core.Point) int {
	idx := a.bisectLeft(p)
	if idx < len(a.pts) && a.pts[idx].Equal(p) {
		return idx
	}

	return -1
}

// Contains reports whether an entry equal to p is archived.
func (a *Archive) Contains(p core.Point) bool {
	return len(p) == nObj && a.index(p) >= 0
}

// Dominates reports whether some archived entry weakly dominates p.
func (a *Archive) Dominates(p core.Point) (bool, error) {
	if err := p.CheckDim(nObj); err != nil {
		return false, fmt.Errorf("biobj: %w", err)
	}
	idx := a.bisectLeft(p)

	return a.dominatesWith(idx-1, p) || a.dominatesWith(idx, p), nil
}

// Dominators returns the archived entries weakly dominating p, sorted.
func (a *Archive) Dominators(p core.Point) ([]core.Point, error) {
	if err := p.CheckDim(nObj); err != nil {
		return nil, fmt.Errorf("biobj: %w", err)
	}
	idx := a.bisectLeft(p)
	lo := idx
	for lo > 0 && a.pts[lo-1][1] <= p[1] {
		lo--
	}
	var out []core.Point
	for i := lo; i < idx; i++ {
		out = append(out, a.pts[i].Clone())
	}
	if idx < len(a.pts) && a.pts[idx].Equal(p) {
		out = append(out, a.pts[idx].Clone())
	}

	return out, nil
}

// CountDominators returns the number of archived entries weakly
// dominating p.
func (a *Archive) CountDominators(p core.Point) (int, error) {
	doms, err := a.Dominators(p)
	if err != nil {
		return 0, err
	}

	return len(doms), nil
}

// InDomain reports whether p strictly dominates the reference point.
func (a *Archive) InDomain(p core.Point) (bool, error) {
	if err := p.CheckDim(nObj); err != nil {
		return false, fmt.Errorf("biobj: %w", err)
	}

	return a.inDomain(p), nil
}

func (a *Archive) inDomain(p core.Point) bool {
	if a.ref == nil {
		return true
	}

	return p[0] < a.ref[0] && p[1] < a.ref[1]
}

// SetWeights installs per-objective weights for the distance measures.
func (a *Archive) SetWeights(w []float64) error {
	_, err := a.scale.SetWeights(w)
	if err == nil {
		a.warnScaledPenalty()
	}

	return err
}

// SetIdealPoint normalizes the distance measures by the ideal/reference
// box.
func (a *Archive) SetIdealPoint(ideal core.Point) error {
	_, err := a.scale.SetIdealPoint(ideal)
	if err == nil {
		a.warnScaledPenalty()
	}

	return err
}
