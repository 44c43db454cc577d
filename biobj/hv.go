package biobj

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/velisar/hvarc/core"
)

// precisionLossRatio is the threshold below which an incremental
// float-mode hypervolume update is reported as losing precision.
const precisionLossRatio = 1e-9

// Hypervolume returns the dominated hypervolume w.r.t. the reference
// point.
func (a *Archive) Hypervolume() (core.Scalar, error) {
	if a.ref == nil {
		return core.Scalar{}, fmt.Errorf("biobj: hypervolume: %w", core.ErrNoReferencePoint)
	}

	return a.hv, nil
}

// HypervolumePlus returns the uncrowded hypervolume indicator.
func (a *Archive) HypervolumePlus() (core.Scalar, error) {
	if a.ref == nil {
		return core.Scalar{}, fmt.Errorf("biobj: hypervolume_plus: %w", core.ErrNoReferencePoint)
	}

	return a.hvPlus, nil
}

// setHV recomputes the cached hypervolume with a full sweep.
func (a *Archive) setHV() {
	if a.ref == nil {
		return
	}
	a.hv = a.ComputeHypervolume(a.ref)
	if a.hv.Sign() > 0 {
		a.hvPlus = a.hv
	}
}

// ComputeHypervolume sweeps the whole archive against an arbitrary
// reference point, independently of the incrementally maintained
// cache. Entries outside the given reference point contribute nothing.
func (a *Archive) ComputeHypervolume(ref core.Point) core.Scalar {
	comp := a.policy.Computation
	hv := a.policy.Final.Zero()

	idx := 0
	for idx < len(a.pts) && !(a.pts[idx][0] < ref[0] && a.pts[idx][1] < ref[1]) {
		idx++
	}
	if idx < len(a.pts) {
		first := comp.Diff(ref[0], a.pts[idx][0]).Mul(comp.Diff(ref[1], a.pts[idx][1]))
		hv = hv.Add(first.Convert(a.policy.Final))
		idx++
	}
	for idx < len(a.pts) && a.pts[idx][0] < ref[0] && a.pts[idx][1] < ref[1] {
		strip := comp.Diff(ref[0], a.pts[idx][0]).
			Mul(comp.Diff(a.pts[idx-1][1], a.pts[idx][1]))
		hv = hv.Add(strip.Convert(a.policy.Final))
		idx++
	}

	return hv
}

// contributingHypervolumeAt returns the contribution of the entry at
// idx in Computation mode: the rectangle spanned with the left/right
// neighbor, or the reference point at the boundary. Without a
// reference point boundary entries contribute +Inf.
func (a *Archive) contributingHypervolumeAt(idx int) core.Scalar {
	comp := a.policy.Computation
	y := math.Inf(1)
	if idx > 0 {
		y = a.pts[idx-1][1]
	} else if a.ref != nil {
		y = a.ref[1]
	}
	x := math.Inf(1)
	if idx < len(a.pts)-1 {
		x = a.pts[idx+1][0]
	} else if a.ref != nil {
		x = a.ref[0]
	}
	if math.IsInf(x, 1) || math.IsInf(y, 1) {
		return comp.FromFloat(math.Inf(1))
	}

	return comp.Diff(x, a.pts[idx][0]).Mul(comp.Diff(y, a.pts[idx][1]))
}

// ContributingHypervolume returns the hypervolume lost if the archived
// entry equal to p were removed; for other points it equals
// HypervolumeImprovement.
func (a *Archive) ContributingHypervolume(p core.Point) (core.Scalar, error) {
	if err := p.CheckDim(nObj); err != nil {
		return core.Scalar{}, fmt.Errorf("biobj: %w", err)
	}
	if idx := a.index(p); idx >= 0 {
		return a.contributingHypervolumeAt(idx).Convert(a.policy.Final), nil
	}

	return a.HypervolumeImprovement(p)
}

// ContributingHypervolumes returns the contribution of every entry,
// aligned with Points.
func (a *Archive) ContributingHypervolumes() ([]core.Scalar, error) {
	out := make([]core.Scalar, len(a.pts))
	for i := range a.pts {
		out[i] = a.contributingHypervolumeAt(i).Convert(a.policy.Final)
	}

	return out, nil
}

// subtractHV removes the joint contribution of the entries idx0..idx1-1
// from the cached hypervolume. The entries must form a contiguous run
// about to be deleted; their common upper bound in the second
// coordinate is the left neighbor of idx0.
func (a *Archive) subtractHV(idx0, idx1 int) {
	if a.ref == nil {
		return
	}
	if idx1-idx0 == len(a.pts) {
		a.hv = a.policy.Final.Zero()

		return
	}
	y := a.ref[1]
	if idx0 > 0 {
		y = a.pts[idx0-1][1]
	}
	comp := a.policy.Computation
	dHV := comp.Zero()
	for idx := idx0; idx < idx1; idx++ {
		x := a.ref[0]
		if idx < len(a.pts)-1 {
			x = a.pts[idx+1][0]
		}
		dHV = dHV.Sub(comp.Diff(x, a.pts[idx][0]).Mul(comp.Diff(y, a.pts[idx][1])))
	}
	a.warnPrecisionLoss("subtract", dHV)
	a.hv = a.hv.Add(dHV.Convert(a.policy.Final))
	if a.hv.Sign() < 0 {
		slog.Warn("biobj: incremental update produced a negative hypervolume",
			"hypervolume", a.hv.Float64())
	}
}

// addHV adds the contribution of the freshly inserted entry at idx to
// the cached hypervolume and refreshes the uncrowded indicator.
func (a *Archive) addHV(idx int) {
	if a.ref == nil {
		return
	}
	dHV := a.contributingHypervolumeAt(idx)
	a.warnPrecisionLoss("add", dHV)
	a.hv = a.hv.Add(dHV.Convert(a.policy.Final))
	a.hvPlus = a.hv
}

// warnPrecisionLoss reports float-mode increments that are vanishingly
// small against the running total; exact mode never loses digits.
func (a *Archive) warnPrecisionLoss(op string, dHV core.Scalar) {
	if a.policy.Final != core.ModeFloat {
		return
	}
	total := a.hv.Float64()
	if total == 0 {
		return
	}
	if math.Abs(dHV.Float64())/total < precisionLossRatio {
		slog.Warn("biobj: tiny incremental hypervolume update loses float precision",
			"op", op, "delta", dHV.Float64(), "hypervolume", total)
	}
}

// warnScaledPenalty flags that a negative uncrowded indicator computed
// under the previous scaling is kept as is when weights or the ideal
// point change. Restoring the identity scaling is silent.
func (a *Archive) warnScaledPenalty() {
	if a.scale.Identity() {
		return
	}
	if a.ref != nil && a.hvPlus.Sign() < 0 && !a.hvPlus.IsInf(-1) {
		slog.Warn("biobj: distance-based hypervolume_plus was computed under the previous scaling",
			"hypervolume_plus", a.hvPlus.Float64())
	}
}

// HypervolumeImprovement returns the hypervolume gained by adding p:
// zero for archived entries, the negated front distance for dominated
// points, the negated distance to the reference domain for points
// outside it, and otherwise the gain, computed on the minimal
// contiguous neighbor window with a local reference point.
func (a *Archive) HypervolumeImprovement(p core.Point) (core.Scalar, error) {
	if err := p.CheckDim(nObj); err != nil {
		return core.Scalar{}, fmt.Errorf("biobj: %w", err)
	}
	final := a.policy.Final
	if a.Contains(p) {
		return final.Zero(), nil
	}
	if dominated, _ := a.Dominates(p); dominated {
		d, err := a.DistanceToParetoFront(p)
		if err != nil {
			return core.Scalar{}, err
		}

		return final.FromFloat(-d), nil
	}
	if !a.inDomain(p) {
		return final.FromFloat(-a.DistanceToHypervolumeArea(p)), nil
	}

	i0 := a.bisectLeft(p)
	i1 := i0
	for i1 < len(a.pts) && p[1] <= a.pts[i1][1] {
		i1++
	}
	if a.ref == nil && (i0 == 0 || i1 == len(a.pts)) {
		// A new extreme point without a reference point improves the
		// hypervolume unboundedly.
		return final.FromFloat(math.Inf(1)), nil
	}
	r0 := a.ref.Clone()
	localRef := core.Point{0, 0}
	if i1 < len(a.pts) {
		localRef[0] = a.pts[i1][0]
	} else {
		localRef[0] = r0[0]
	}
	if i0 > 0 {
		localRef[1] = a.pts[i0-1][1]
	} else {
		localRef[1] = r0[1]
	}

	sub := newSorted(a.pts[i0:i1], localRef, a.policy)
	hv0 := sub.hv
	if _, err := sub.AddIndex(p, nil); err != nil {
		return core.Scalar{}, err
	}

	return sub.hv.Sub(hv0).Convert(final), nil
}
