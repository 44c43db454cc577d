package quadobj

import (
	"fmt"
	"math"

	"github.com/velisar/hvarc/core"
)

// Add offers p to the archive. It returns true when p was inserted and
// false when p was weakly dominated or outside the reference domain.
// Rejected points still lower-bound HypervolumePlus by their distance
// to the reference domain. An accepted point triggers a full rebuild
// from the union of the current points and p.
func (a *Archive) Add(p core.Point, info any) (bool, error) {
	if err := p.CheckDim(nObj); err != nil {
		return false, fmt.Errorf("quadobj: %w", err)
	}
	if a.ref != nil {
		cand := a.policy.Final.FromFloat(-a.DistanceToHypervolumeArea(p))
		if a.hvPlus.Cmp(cand) < 0 {
			a.hvPlus = cand
		}
	}

	if a.list.Dominates(p) || !a.inDomain(p) {
		a.removed = []core.Point{p.Clone()}

		return false, nil
	}

	a.reinit([]core.Point{p}, []any{info})

	return true, nil
}

// AddList offers every point of the batch with the compare strategy.
func (a *Archive) AddList(points []core.Point, infos []any) error {
	return a.AddListStrategy(points, infos, core.StrategyCompare)
}

// AddListStrategy offers a batch of points. StrategyOneByOne offers
// each point individually, so rejected points never enter a rebuild;
// StrategyReinit rebuilds the archive from the union once;
// StrategyCompare picks between the two.
func (a *Archive) AddListStrategy(points []core.Point, infos []any, strategy core.AddStrategy) error {
	if infos != nil && len(infos) != len(points) {
		return fmt.Errorf("quadobj: %w", core.ErrLengthMismatch)
	}
	for _, p := range points {
		if err := p.CheckDim(nObj); err != nil {
			return fmt.Errorf("quadobj: point %v: %w", p, err)
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
			if _, err := a.Add(p, info); err != nil {
				return err
			}
			removed = append(removed, a.removed...)
		}
		a.removed = removed
	case core.StrategyReinit:
		a.reinit(points, infos)
	default:
		return fmt.Errorf("quadobj: %w", core.ErrAddStrategy)
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
// payload, rebuilding the archive from the remaining points.
func (a *Archive) Remove(p core.Point) (any, error) {
	if err := p.CheckDim(nObj); err != nil {
		return nil, fmt.Errorf("quadobj: %w", err)
	}

	points := a.Points()
	infos := a.Infos()
	idx := -1
	for i, q := range points {
		if q.Equal(p) {
			idx = i

			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("quadobj: %v: %w", p, core.ErrPointNotFound)
	}
	info := infos[idx]

	fresh, _ := New(append(points[:idx], points[idx+1:]...), a.ref,
		a.policy, append(infos[:idx], infos[idx+1:]...))
	fresh.scale = a.scale
	if a.ref != nil && !(fresh.hv.Sign() > 0) {
		fresh.hvPlus = a.policy.Final.NegInf()
	}
	fresh.removed = []core.Point{p.Clone()}
	*a = *fresh

	return info, nil
}
