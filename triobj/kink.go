package triobj

import (
	"fmt"
	"math"

	"github.com/velisar/hvarc/biobj"
	"github.com/velisar/hvarc/core"
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

// computeKinks sweeps the ring in third-coordinate order while
// maintaining two planar sub-archives: the projected front seen so far
// and the current kink candidates. A candidate is finalized when a
// later point dominates it in the projection; candidates surviving the
// sweep close against the reference coordinate.
func (a *Archive) computeKinks() []core.Point {
	ref := a.listRef()
	ninf := math.Inf(-1)

	// The bracketing pseudo-points keep every projected point interior,
	// so each insertion has both neighbors defined.
	pointsState, _ := biobj.New(
		[]core.Point{{ref[0], ninf}, {ninf, ref[1]}}, nil, core.Floats(), nil)
	kinkCands, _ := biobj.New(
		[]core.Point{{ref[0], ref[1]}}, nil, core.Floats(), nil)
	zOf := map[[2]float64]float64{{ref[0], ref[1]}: ninf}

	var kinks []core.Point
	for _, pt := range a.list.Points() {
		proj := core.Point{pt[0], pt[1]}

		// Probing the candidate archive with the projection surfaces
		// every candidate this point dominates; those are finalized at
		// the current height.
		if idx, _ := kinkCands.AddIndex(proj, nil); idx >= 0 {
			for _, rp := range kinkCands.Discarded() {
				z := zOf[[2]float64{rp[0], rp[1]}]
				if z < pt[2] && pt[0] < rp[0] && pt[1] < rp[1] {
					kinks = append(kinks, core.Point{rp[0], rp[1], pt[2]})
				}
			}
			// The projected point itself is not a kink candidate; take it back out.
			_, _ = kinkCands.Remove(proj)
		}

		idx, _ := pointsState.AddIndex(proj, nil)
		for i := 0; i < 2; i++ {
			cand := core.Point{pointsState.At(idx + i)[0], pointsState.At(idx - 1 + i)[1]}
			zOf[[2]float64{cand[0], cand[1]}] = pt[2]
			_, _ = kinkCands.AddIndex(cand, nil)
		}
	}

	for _, p := range kinkCands.Points() {
		kinks = append(kinks, core.Point{p[0], p[1], ref[2]})
	}

	return kinks
}

// DistanceToParetoFront returns the Euclidean distance from p to the
// region weakly dominated by the archive within the reference domain,
// the minimum over the kink-point orthants.
func (a *Archive) DistanceToParetoFront(p core.Point) (float64, error) {
	if err := p.CheckDim(nObj); err != nil {
		return 0, fmt.Errorf("triobj: %w", err)
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
