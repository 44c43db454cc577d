package quadobj

import (
	"fmt"
	"math"

	"github.com/velisar/hvarc/core"
	"github.com/velisar/hvarc/triobj"
	"gonum.org/v1/gonum/floats"
)

// DistanceToHypervolumeArea returns the weighted Euclidean distance
// from p to the region strictly dominating the reference point.
func (a *Archive) DistanceToHypervolumeArea(p core.Point) float64 {
	return a.scale.DistanceToArea(p)
}

// KinkPoints returns the concave corners of the dominated-region
// boundary. The list is memoized and recomputed only after a mutation
// invalidated it.
func (a *Archive) KinkPoints() ([]core.Point, error) {
	if !a.kinksValid {
		a.kinks = a.computeKinks()
		a.kinksValid = true
	}
	out := make([]core.Point, len(a.kinks))
	for i, k := range a.kinks {
		out[i] = k.Clone()
	}

	return out, nil
}

// computeKinks sweeps the ring in fourth-coordinate order while
// maintaining two 3-objective sub-archives: the projected front seen
// so far and the current kink candidates. A candidate is finalized at
// the current fourth coordinate when a later projection dominates it;
// candidates surviving the sweep close against the reference
// coordinate. Without a reference point the bound is one above the
// largest projected coordinate.
func (a *Archive) computeKinks() []core.Point {
	var ref core.Point
	if a.ref != nil {
		ref = a.ref
	} else {
		if a.Len() == 0 {
			return nil
		}
		m := math.Inf(-1)
		for _, p := range a.list.Points() {
			for i := 0; i < nObj-1; i++ {
				if p[i] > m {
					m = p[i]
				}
			}
		}
		ref = core.Point{m + 1, m + 1, m + 1, m + 1}
	}

	pointsState, _ := triobj.New(nil, ref[:3], core.Floats(), nil)
	kinkCands, _ := triobj.New(
		[]core.Point{{ref[0], ref[1], ref[2]}},
		core.Point{ref[0] + 1, ref[1] + 1, ref[2] + 1}, core.Floats(), nil)
	wOf := map[[3]float64]float64{{ref[0], ref[1], ref[2]}: math.Inf(-1)}

	var kinks []core.Point
	for _, pt := range a.list.Points() {
		proj := core.Point{pt[0], pt[1], pt[2]}

		// Probing the candidate archive with the projection surfaces
		// every candidate this point dominates; those still below the
		// current height are finalized here.
		if ok, _ := kinkCands.Add(proj, nil); ok {
			for _, rp := range kinkCands.Discarded() {
				if wOf[[3]float64{rp[0], rp[1], rp[2]}] < pt[3] {
					kinks = append(kinks, core.Point{rp[0], rp[1], rp[2], pt[3]})
				}
			}
			// The projected point itself is not a kink candidate; take it back out.
			_, _ = kinkCands.Remove(proj)
		}

		// New candidates are the kinks of the projected front that the
		// projection itself contributed.
		_, _ = pointsState.Add(proj, nil)
		cands, _ := pointsState.KinkPoints()
		for _, c := range cands {
			if c[0] != pt[0] && c[1] != pt[1] && c[2] != pt[2] {
				continue
			}
			wOf[[3]float64{c[0], c[1], c[2]}] = pt[3]
			_, _ = kinkCands.Add(c, nil)
		}
	}

	for _, p := range kinkCands.Points() {
		kinks = append(kinks, core.Point{p[0], p[1], p[2], ref[3]})
	}

	return kinks
}

// DistanceToParetoFront returns the Euclidean distance from p to the
// region weakly dominated by the archive within the reference domain,
// the minimum over the kink-point orthants.
func (a *Archive) DistanceToParetoFront(p core.Point) (float64, error) {
	if err := p.CheckDim(nObj); err != nil {
		return 0, fmt.Errorf("quadobj: %w", err)
	}
	if a.inDomain(p) && !a.list.Dominates(p) {
		return 0, nil
	}

	refDi := make([]float64, nObj)
	if a.ref != nil {
		for i := 0; i < nObj; i++ {
			refDi[i] = math.Max(0, p[i]-a.ref[i])
		}
	}
	if a.Len() == 0 {
		return floats.Norm(refDi, 2), nil
	}

	kinks, err := a.KinkPoints()
	if err != nil {
		return 0, err
	}
	squared := make([]float64, len(kinks))
	for i, k := range kinks {
		s := 0.0
		for j := 0; j < nObj; j++ {
			d := math.Max(0, p[j]-k[j])
			s += d * d
		}
		squared[i] = s
	}

	return math.Sqrt(floats.Min(squared)), nil
}
