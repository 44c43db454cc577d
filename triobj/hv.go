package triobj

import (
	"fmt"

	"github.com/velisar/hvarc/core"
	"github.com/velisar/hvarc/hvlist"
)

// Hypervolume returns the dominated hypervolume w.r.t. the reference
// point.
func (a *Archive) Hypervolume() (core.Scalar, error) {
	if a.ref == nil {
		return core.Scalar{}, fmt.Errorf("triobj: hypervolume: %w", core.ErrNoReferencePoint)
	}

	return a.hv, nil
}

// HypervolumePlus returns the uncrowded hypervolume indicator.
func (a *Archive) HypervolumePlus() (core.Scalar, error) {
	if a.ref == nil {
		return core.Scalar{}, fmt.Errorf("triobj: hypervolume_plus: %w", core.ErrNoReferencePoint)
	}

	return a.hvPlus, nil
}

// setHV refreshes the cached hypervolume with an hv3d+ sweep.
func (a *Archive) setHV() {
	if a.ref == nil {
		return
	}
	a.hv = hvlist.HV3DPlus(a.list.Head, a.policy.Computation).Convert(a.policy.Final)
	if a.hv.Sign() > 0 {
		a.hvPlus = a.hv
	}
}

// ComputeHypervolume runs the hv3d+ sweep, bypassing the cache.
func (a *Archive) ComputeHypervolume() (core.Scalar, error) {
	if a.ref == nil {
		return core.Scalar{}, fmt.Errorf("triobj: hypervolume: %w", core.ErrNoReferencePoint)
	}

	return hvlist.HV3DPlus(a.list.Head, a.policy.Computation).Convert(a.policy.Final), nil
}

// ContributingHypervolume returns the hypervolume lost if the archived
// point p were removed, computed as the difference of a remove/re-add
// round trip. For points not in the archive it equals
// HypervolumeImprovement.
func (a *Archive) ContributingHypervolume(p core.Point) (core.Scalar, error) {
	if err := p.CheckDim(nObj); err != nil {
		return core.Scalar{}, fmt.Errorf("triobj: %w", err)
	}
	if !a.Contains(p) {
		return a.HypervolumeImprovement(p)
	}
	if a.ref == nil {
		return core.Scalar{}, fmt.Errorf("triobj: contributing hypervolume: %w", core.ErrNoReferencePoint)
	}

	before := a.hv
	info, err := a.Remove(p)
	if err != nil {
		return core.Scalar{}, err
	}
	after := a.hv
	if _, err := a.Add(p, info); err != nil {
		return core.Scalar{}, err
	}

	return before.Sub(after), nil
}

// ContributingHypervolumes returns the contribution of every archived
// point, aligned with Points.
func (a *Archive) ContributingHypervolumes() ([]core.Scalar, error) {
	points := a.Points()
	out := make([]core.Scalar, len(points))
	for i, p := range points {
		hv, err := a.ContributingHypervolume(p)
		if err != nil {
			return nil, err
		}
		out[i] = hv
	}

	return out, nil
}

// HypervolumeImprovement returns the hypervolume gained by adding p,
// computed by the one-contribution sweep without mutating the archive:
// zero for archived points, the negated front distance for dominated
// points, the negated distance to the reference domain for points
// outside it.
func (a *Archive) HypervolumeImprovement(p core.Point) (core.Scalar, error) {
	if err := p.CheckDim(nObj); err != nil {
		return core.Scalar{}, fmt.Errorf("triobj: %w", err)
	}
	final := a.policy.Final
	if a.Contains(p) {
		return final.Zero(), nil
	}
	if a.list.Dominates(p) {
		d, err := a.DistanceToParetoFront(p)
		if err != nil {
			return core.Scalar{}, err
		}

		return final.FromFloat(-d), nil
	}
	if !a.inDomain(p) {
		return final.FromFloat(-a.DistanceToHypervolumeArea(p)), nil
	}

	u := hvlist.NewNode(p, nil)
	gain := hvlist.OneContribution(a.list.Head, u, a.policy.Computation)

	return gain.Convert(final), nil
}
