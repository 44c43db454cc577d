package cmoa

import (
	"errors"
	"fmt"
	"math"

	"github.com/velisar/hvarc/biobj"
	"github.com/velisar/hvarc/core"
	"github.com/velisar/hvarc/quadobj"
	"github.com/velisar/hvarc/triobj"
)

// ErrThreshold reports a non-positive feasibility threshold.
var ErrThreshold = errors.New("cmoa: threshold tau must be positive")

// Archive gates a nondominated archive by feasibility and maintains
// the staged HypervolumePlusConstr indicator. All unconstrained
// queries delegate to the wrapped archive. Not safe for concurrent
// use.
type Archive struct {
	arc    core.Archive
	policy core.Policy
	tau    float64

	// gMax tracks the largest violation seen per constraint; it
	// normalizes later violations of the same constraint.
	gMax []float64

	hvPlusConstr core.Scalar
}

// New builds an empty constrained archive over nObj objectives (2, 3
// or 4). ref may be nil; the constrained indicator then fails with
// core.ErrNoReferencePoint. tau must be positive.
func New(nObj int, ref core.Point, tau float64, policy core.Policy) (*Archive, error) {
	if !(tau > 0) {
		return nil, ErrThreshold
	}

	var arc core.Archive
	var err error
	switch nObj {
	case 2:
		arc, err = biobj.New(nil, ref, policy, nil)
	case 3:
		arc, err = triobj.New(nil, ref, policy, nil)
	case 4:
		arc, err = quadobj.New(nil, ref, policy, nil)
	default:
		return nil, fmt.Errorf("cmoa: %d objectives: %w", nObj, core.ErrObjectiveCount)
	}
	if err != nil {
		return nil, err
	}

	return &Archive{
		arc:          arc,
		policy:       policy,
		tau:          tau,
		hvPlusConstr: policy.Final.NegInf(),
	}, nil
}

// violation returns the normalized violation of g against the given
// per-constraint maxima: the sum of the positive constraint values,
// each divided by the largest violation of that constraint.
func violation(g Constraints, gMax []float64) float64 {
	v := 0.0
	for i, gi := range g.vals {
		if gi > 0 && gMax[i] > 0 {
			v += gi / gMax[i]
		}
	}

	return v
}

// observe folds g into the running per-constraint maxima and returns
// its normalized violation.
func (a *Archive) observe(g Constraints) (float64, error) {
	if a.gMax == nil {
		a.gMax = make([]float64, g.Len())
	}
	if g.Len() != len(a.gMax) {
		return 0, fmt.Errorf("cmoa: constraint vector: %w", core.ErrLengthMismatch)
	}
	for i, gi := range g.vals {
		if gi > a.gMax[i] {
			a.gMax[i] = gi
		}
	}

	return violation(g, a.gMax), nil
}

// Add offers the objective vector f with constraints g. A feasible
// point is offered to the wrapped archive; an infeasible point only
// raises the constrained indicator toward -(violation + tau). The
// returned bool reports whether f entered the archive.
func (a *Archive) Add(f core.Point, g Constraints, info any) (bool, error) {
	v, err := a.observe(g)
	if err != nil {
		return false, err
	}

	if v > 0 {
		if a.arc.ReferencePoint() != nil {
			cand := a.policy.Final.FromFloat(-(v + a.tau))
			if cand.Cmp(a.hvPlusConstr) > 0 {
				a.hvPlusConstr = cand
			}
		}

		return false, nil
	}

	added, err := a.arc.Add(f, info)
	if err != nil {
		return false, err
	}
	if a.arc.ReferencePoint() != nil {
		hvp, err := a.arc.HypervolumePlus()
		if err != nil {
			return false, err
		}
		a.hvPlusConstr = hvp
		if floor := a.policy.Final.FromFloat(-a.tau); floor.Cmp(a.hvPlusConstr) > 0 {
			a.hvPlusConstr = floor
		}
	}

	return added, nil
}

// AddList offers a batch of points with their constraints. While the
// constrained indicator is still negative every point is offered one
// by one, so infeasible points keep raising it; afterwards only the
// feasible points are batched into the wrapped archive.
func (a *Archive) AddList(points []core.Point, gs []Constraints, infos []any) error {
	if len(gs) != len(points) {
		return fmt.Errorf("cmoa: %w", core.ErrLengthMismatch)
	}
	if infos != nil && len(infos) != len(points) {
		return fmt.Errorf("cmoa: %w", core.ErrLengthMismatch)
	}

	if a.hvPlusConstr.Sign() < 0 {
		for i, f := range points {
			var info any
			if infos != nil {
				info = infos[i]
			}
			if _, err := a.Add(f, gs[i], info); err != nil {
				return err
			}
		}

		return nil
	}

	var feasible []core.Point
	var feasibleInfos []any
	for i, f := range points {
		v, err := a.observe(gs[i])
		if err != nil {
			return err
		}
		if v > 0 {
			continue
		}
		feasible = append(feasible, f)
		if infos != nil {
			feasibleInfos = append(feasibleInfos, infos[i])
		} else {
			feasibleInfos = append(feasibleInfos, nil)
		}
	}

	if err := a.arc.AddList(feasible, feasibleInfos); err != nil {
		return err
	}
	if a.arc.ReferencePoint() != nil {
		hvp, err := a.arc.HypervolumePlus()
		if err != nil {
			return err
		}
		a.hvPlusConstr = hvp
	}

	return nil
}

// Remove deletes a feasible archived point and returns its payload.
func (a *Archive) Remove(f core.Point) (any, error) {
	info, err := a.arc.Remove(f)
	if err != nil {
		return nil, err
	}
	if a.arc.ReferencePoint() != nil {
		hvp, err := a.arc.HypervolumePlus()
		if err != nil {
			return nil, err
		}
		a.hvPlusConstr = hvp
	}

	return info, nil
}

// HypervolumePlusConstr returns the staged constrained indicator:
// -(violation + tau) of the least infeasible point while no feasible
// point is known, at least -tau once one is, and the uncrowded
// hypervolume of the wrapped archive as usual.
func (a *Archive) HypervolumePlusConstr() (core.Scalar, error) {
	if a.arc.ReferencePoint() == nil {
		return core.Scalar{}, fmt.Errorf("cmoa: hypervolume_plus_constr: %w", core.ErrNoReferencePoint)
	}

	return a.hvPlusConstr, nil
}

// HypervolumePlusConstrImprovement returns the amount by which the
// constrained indicator would rise if f with constraints g were
// offered. The query does not mutate the archive; normalization uses
// the violations seen so far, extended locally by g itself.
func (a *Archive) HypervolumePlusConstrImprovement(f core.Point, g Constraints) (core.Scalar, error) {
	final := a.policy.Final
	gMax := append([]float64(nil), a.gMax...)
	for len(gMax) < g.Len() {
		gMax = append(gMax, 0)
	}
	if g.Len() != len(gMax) {
		return core.Scalar{}, fmt.Errorf("cmoa: constraint vector: %w", core.ErrLengthMismatch)
	}
	for i, gi := range g.vals {
		if gi > gMax[i] {
			gMax[i] = gi
		}
	}
	v := violation(g, gMax)

	if v > 0 {
		cand := final.FromFloat(-(v + a.tau))
		if cand.Cmp(a.hvPlusConstr) > 0 {
			return cand.Sub(a.hvPlusConstr), nil
		}

		return final.Zero(), nil
	}

	inDomain, err := a.arc.InDomain(f)
	if err != nil {
		return core.Scalar{}, fmt.Errorf("cmoa: %w", err)
	}
	if !inDomain {
		if a.hvPlusConstr.Sign() > 0 {
			return final.Zero(), nil
		}
		d := math.Min(a.arc.DistanceToHypervolumeArea(f), a.tau)
		cand := final.FromFloat(-d)
		if cand.Cmp(a.hvPlusConstr) > 0 {
			return cand.Sub(a.hvPlusConstr), nil
		}

		return final.Zero(), nil
	}

	dominated, err := a.arc.Dominates(f)
	if err != nil {
		return core.Scalar{}, fmt.Errorf("cmoa: %w", err)
	}
	if dominated {
		return final.Zero(), nil
	}

	improvement, err := a.arc.HypervolumeImprovement(f)
	if err != nil {
		return core.Scalar{}, err
	}
	if a.hvPlusConstr.Sign() < 0 {
		return improvement.Sub(a.hvPlusConstr), nil
	}

	return improvement, nil
}

// Tau returns the feasibility threshold.
func (a *Archive) Tau() float64 { return a.tau }

// Inner returns the wrapped unconstrained archive.
func (a *Archive) Inner() core.Archive { return a.arc }

// Copy returns an independent deep copy, including the normalization
// state and the constrained indicator.
func (a *Archive) Copy() *Archive {
	return &Archive{
		arc:          a.arc.Copy(),
		policy:       a.policy,
		tau:          a.tau,
		gMax:         append([]float64(nil), a.gMax...),
		hvPlusConstr: a.hvPlusConstr,
	}
}

// NumObjectives returns the objective count of the wrapped archive.
func (a *Archive) NumObjectives() int { return a.arc.NumObjectives() }

// Len returns the number of feasible archived points.
func (a *Archive) Len() int { return a.arc.Len() }

// Points returns the feasible archived points in archive order.
func (a *Archive) Points() []core.Point { return a.arc.Points() }

// Infos returns the payloads aligned with Points.
func (a *Archive) Infos() []any { return a.arc.Infos() }

// ReferencePoint returns a copy of the reference point, or nil.
func (a *Archive) ReferencePoint() core.Point { return a.arc.ReferencePoint() }

// Contains reports whether a point equal to f is archived.
func (a *Archive) Contains(f core.Point) bool { return a.arc.Contains(f) }

// Dominates reports whether some archived point weakly dominates f.
func (a *Archive) Dominates(f core.Point) (bool, error) { return a.arc.Dominates(f) }

// Dominators returns the archived points weakly dominating f.
func (a *Archive) Dominators(f core.Point) ([]core.Point, error) { return a.arc.Dominators(f) }

// CountDominators returns the number of archived points weakly
// dominating f.
func (a *Archive) CountDominators(f core.Point) (int, error) { return a.arc.CountDominators(f) }

// InDomain reports whether f strictly dominates the reference point.
func (a *Archive) InDomain(f core.Point) (bool, error) { return a.arc.InDomain(f) }

// Hypervolume returns the dominated hypervolume of the feasible
// archive.
func (a *Archive) Hypervolume() (core.Scalar, error) { return a.arc.Hypervolume() }

// HypervolumePlus returns the uncrowded hypervolume of the feasible
// archive.
func (a *Archive) HypervolumePlus() (core.Scalar, error) { return a.arc.HypervolumePlus() }

// ContributingHypervolume returns the hypervolume contribution of f.
func (a *Archive) ContributingHypervolume(f core.Point) (core.Scalar, error) {
	return a.arc.ContributingHypervolume(f)
}

// ContributingHypervolumes returns the contribution of every archived
// point, aligned with Points.
func (a *Archive) ContributingHypervolumes() ([]core.Scalar, error) {
	return a.arc.ContributingHypervolumes()
}

// HypervolumeImprovement returns the unconstrained hypervolume gain of
// adding f to the feasible archive.
func (a *Archive) HypervolumeImprovement(f core.Point) (core.Scalar, error) {
	return a.arc.HypervolumeImprovement(f)
}

// KinkPoints returns the concave corners of the feasible archive's
// dominated-region boundary.
func (a *Archive) KinkPoints() ([]core.Point, error) { return a.arc.KinkPoints() }

// DistanceToHypervolumeArea returns the weighted Euclidean distance
// from f to the region strictly dominating the reference point.
func (a *Archive) DistanceToHypervolumeArea(f core.Point) float64 {
	return a.arc.DistanceToHypervolumeArea(f)
}

// DistanceToParetoFront returns the Euclidean distance from f to the
// region weakly dominated by the feasible archive.
func (a *Archive) DistanceToParetoFront(f core.Point) (float64, error) {
	return a.arc.DistanceToParetoFront(f)
}

// SetWeights installs per-objective weights for the distance measures.
func (a *Archive) SetWeights(w []float64) error { return a.arc.SetWeights(w) }

// SetIdealPoint normalizes the distance measures by the ideal/reference
// box.
func (a *Archive) SetIdealPoint(ideal core.Point) error { return a.arc.SetIdealPoint(ideal) }
