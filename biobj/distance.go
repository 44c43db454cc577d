package biobj

import (
	"fmt"
	"math"

	"github.com/velisar/hvarc/core"
	"gonum.org/v1/gonum/floats"
)

// DistanceToHypervolumeArea returns the weighted Euclidean distance
// from p to the region strictly dominating the reference point; zero
// inside the region or without a reference point.
func (a *Archive) DistanceToHypervolumeArea(p core.Point) float64 {
	return a.scale.DistanceToArea(p)
}

// KinkPoints returns the concave corners of the dominated-region
// boundary in ascending order of the first coordinate. With a
// reference point the two outer corners formed against it are
// included. The 2-objective result is cheap to rebuild, so it is not
// memoized.
func (a *Archive) KinkPoints() ([]core.Point, error) {
	var kinks []core.Point
	if a.ref != nil {
		if len(a.pts) == 0 {
			return []core.Point{a.ref.Clone()}, nil
		}
		kinks = append(kinks, core.Point{a.pts[0][0], a.ref[1]})
	}
	for idx := 1; idx < len(a.pts); idx++ {
		kinks = append(kinks, core.Point{a.pts[idx][0], a.pts[idx-1][1]})
	}
	if a.ref != nil {
		kinks = append(kinks, core.Point{a.ref[0], a.pts[len(a.pts)-1][1]})
	}

	return kinks, nil
}

// DistanceToParetoFront returns the Euclidean distance from p to the
// region weakly dominated by the archive within the reference domain.
// Nondominated in-domain points are at distance zero. Only the kink
// points around p's insertion index are inspected.
func (a *Archive) DistanceToParetoFront(p core.Point) (float64, error) {
	if err := p.CheckDim(nObj); err != nil {
		return 0, fmt.Errorf("biobj: %w", err)
	}
	dominated, _ := a.Dominates(p)
	if a.inDomain(p) && !dominated {
		return 0, nil
	}

	var refD0, refD1 float64
	if a.ref != nil {
		refD0 = math.Max(0, p[0]-a.ref[0])
		refD1 = math.Max(0, p[1]-a.ref[1])
	}
	if len(a.pts) == 0 {
		return floats.Norm([]float64{refD0, refD1}, 2), nil
	}

	// Outer kink points first: the leftmost entry against the second
	// reference coordinate and the rightmost against the first.
	squared := []float64{
		sq(math.Max(0, p[0]-a.pts[0][0])) + sq(refD1),
		sq(refD0) + sq(math.Max(0, p[1]-a.pts[len(a.pts)-1][1])),
	}
	if len(a.pts) > 1 {
		for idx := a.bisectLeft(p); idx > 0; idx-- {
			if idx == len(a.pts) {
				continue
			}
			squared = append(squared,
				sq(math.Max(0, p[1]-a.pts[idx-1][1]))+sq(math.Max(0, p[0]-a.pts[idx][0])))
			if a.pts[idx][1] >= p[1] || idx == 1 {
				break
			}
		}
	}

	return math.Sqrt(floats.Min(squared)), nil
}

func sq(v float64) float64 { return v * v }
