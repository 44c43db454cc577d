package biobj

import (
	"fmt"

	"github.com/velisar/hvarc/core"
)

// Add offers p to the archive. It returns true when p was inserted;
// rejected points still lower-bound HypervolumePlus by their distance
// to the reference domain.
func (a *Archive) Add(p core.Point, info any) (bool, error) {
	idx, err := a.AddIndex(p, info)
	if err != nil {
		return false, err
	}

	return idx >= 0, nil
}

// AddIndex offers p and returns the index at which it was inserted, or
// -1 when p was weakly dominated or out of domain. The index variant
// exists for the kink-point sweeps of the higher-dimensional engines,
// which need the neighbors of a fresh insertion.
func (a *Archive) AddIndex(p core.Point, info any) (int, error) {
	if err := p.CheckDim(nObj); err != nil {
		return -1, fmt.Errorf("biobj: %w", err)
	}
	if !a.inDomain(p) {
		cand := a.policy.Final.FromFloat(-a.DistanceToHypervolumeArea(p))
		if a.hvPlus.Cmp(cand) < 0 {
			a.hvPlus = cand
		}
		a.removed = []core.Point{p.Clone()}

		return -1, nil
	}
	idx := a.bisectLeft(p)
	if a.dominatesWith(idx-1, p) || a.dominatesWith(idx, p) {
		a.removed = nil
		if !a.equalsNeighbor(idx, p) {
			a.removed = []core.Point{p.Clone()}
		}

		return -1, nil
	}
	a.addAt(idx, p, info)

	return idx, nil
}

// equalsNeighbor reports whether p duplicates the entry at idx-1 or
// idx. Duplicates are rejected silently, without showing up in
// Discarded.
func (a *Archive) equalsNeighbor(idx int, p core.Point) bool {
	return (idx-1 >= 0 && a.pts[idx-1].Equal(p)) ||
		(idx < len(a.pts) && a.pts[idx].Equal(p))
}

// addAt splices p in at idx, which the caller obtained from bisectLeft
// after establishing that p is not weakly dominated, and deletes the
// run of entries p dominates.
func (a *Archive) addAt(idx int, p core.Point, info any) {
	p = p.Clone()
	if idx == len(a.pts) || p[1] > a.pts[idx][1] {
		a.pts = append(a.pts, nil)
		copy(a.pts[idx+1:], a.pts[idx:])
		a.pts[idx] = p
		a.infos = append(a.infos, nil)
		copy(a.infos[idx+1:], a.infos[idx:])
		a.infos[idx] = info
		a.removed = nil
		a.addHV(idx)

		return
	}
	// p dominates the entry at idx and possibly a run after it.
	idx2 := idx + 1
	for idx2 < len(a.pts) && p[1] <= a.pts[idx2][1] {
		idx2++
	}
	a.subtractHV(idx, idx2)
	a.removed = append([]core.Point(nil), a.pts[idx:idx2]...)
	a.pts[idx] = p
	a.infos[idx] = info
	a.pts = append(a.pts[:idx+1], a.pts[idx2:]...)
	a.infos = append(a.infos[:idx+1], a.infos[idx2:]...)
	a.addHV(idx)
}

// AddList offers every point of the batch in order; Discarded
// afterwards reports the entries evicted over the whole batch.
func (a *Archive) AddList(points []core.Point, infos []any) error {
	if infos != nil && len(infos) != len(points) {
		return fmt.Errorf("biobj: %w", core.ErrLengthMismatch)
	}
	var removed []core.Point
	for i, p := range points {
		var info any
		if infos != nil {
			info = infos[i]
		}
		idx, err := a.AddIndex(p, info)
		if err != nil {
			return err
		}
		if idx >= 0 {
			removed = append(removed, a.removed...)
		}
	}
	a.removed = removed

	return nil
}

// Remove deletes the entry equal to p and returns its payload. The
// uncrowded indicator falls back to -Inf when the removal empties the
// reference domain, since the distance history is not retained.
func (a *Archive) Remove(p core.Point) (any, error) {
	if err := p.CheckDim(nObj); err != nil {
		return nil, fmt.Errorf("biobj: %w", err)
	}
	idx := a.index(p)
	if idx < 0 {
		return nil, fmt.Errorf("biobj: %v: %w", p, core.ErrPointNotFound)
	}
	a.subtractHV(idx, idx+1)
	if a.ref != nil {
		if a.hv.Sign() > 0 {
			a.hvPlus = a.hv
		} else {
			a.hvPlus = a.policy.Final.NegInf()
		}
	}
	info := a.infos[idx]
	a.removed = []core.Point{a.pts[idx]}
	a.pts = append(a.pts[:idx], a.pts[idx+1:]...)
	a.infos = append(a.infos[:idx], a.infos[idx+1:]...)

	return info, nil
}
