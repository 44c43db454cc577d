package quadobj

import (
	"fmt"

	"github.com/velisar/hvarc/core"
	"github.com/velisar/hvarc/hvlist"
)

// Hypervolume returns the dominated hypervolume w.r.t. the reference
// point.
func (a *Archive) Hypervolume() (core.Scalar, error) {
	if a.ref == nil {
		return core.Scalar{}, fmt.Errorf("quadobj: hypervolume: %w", core.ErrNoReferencePoint)
	}

	return a.hv, nil
}

// HypervolumePlus returns the uncrowded hypervolume indicator.
func (a *Archive) HypervolumePlus() (core.Scalar, error) {
	if a.ref == nil {
		return core.Scalar{}, fmt.Errorf("quadobj: hypervolume_plus: %w", core.ErrNoReferencePoint)
	}

	return a.hvPlus, nil
}

// setHV refreshes the cached hypervolume with an hv4d+-R sweep. The
// sweep consumes the freshly built list (it establishes the inner
// rings as it goes), so it runs exactly once per rebuild.
func (a *Archive) setHV() {
	if a.ref == nil {
		return
	}
	a.hv = hvlist.HV4DPlusR(a.list.Head, a.policy.Computation).Convert(a.policy.Final)
	if a.hv.Sign() > 0 {
		a.hvPlus = a.hv
	}
}

// ComputeHypervolume returns the hypervolume computed at the last
// rebuild. The 4-objective sweep cannot rerun on an already swept
// list, so unlike the lower-dimensional archives there is no
// cache-bypassing recomputation.
func (a *Archive) ComputeHypervolume() (core.Scalar, error) {
	if a.ref == nil {
		return core.Scalar{}, fmt.Errorf("quadobj: hypervolume: %w", core.ErrNoReferencePoint)
	}

	return a.hv, nil
}

// ContributingHypervolume returns the hypervolume lost if the archived
// point p were removed, computed as the difference of a remove/re-add
// round trip. For points not in the archive it equals
// HypervolumeImprovement.
func (a *Archive) ContributingHypervolume(p core.Point) (core.Scalar, error) {
	if err := p.CheckDim(nObj); err != nil {
		return core.Scalar{}, fmt.Errorf("quadobj: %w", err)
	}
	if !a.Contains(p) {
		return a.HypervolumeImprovement(p)
	}
	if a.ref == nil {
		return core.Scalar{}, fmt.Errorf("quadobj: contributing hypervolume: %w", core.ErrNoReferencePoint)
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
// computed as the difference against a copy that received p: zero for
// archived points, the negated front distance for dominated points,
// the negated distance to the reference domain for points outside it.
func (a *Archive) HypervolumeImprovement(p core.Point) (core.Scalar, error) {
	if err := p.CheckDim(nObj); err != nil {
		return core.Scalar{}, fmt.Errorf("quadobj: %w", err)
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

	c := a.Copy().(*Archive)
	if _, err := c.Add(p, nil); err != nil {
		return core.Scalar{}, err
	}

	return c.hv.Sub(a.hv), nil
}
