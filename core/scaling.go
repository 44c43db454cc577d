package core

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Scaling normalizes how the uncrowded distance measures weigh each
// objective. An optional ideal point rescales every objective i by
// 1/(ref[i]-ideal[i]); optional weights multiply on top of that. Both
// default to the identity and can be changed at any time.
type Scaling struct {
	nObj         int
	ref          Point
	ideal        Point
	weights      []float64
	idealWeights []float64
	factor       float64
}

// NewScaling returns the identity scaling for nObj objectives. ref may
// be nil when the owning archive has no reference point; setting an
// ideal point then becomes an error.
func NewScaling(nObj int, ref Point) *Scaling {
	s := &Scaling{
		nObj:         nObj,
		ref:          ref.Clone(),
		weights:      make([]float64, nObj),
		idealWeights: make([]float64, nObj),
		factor:       1,
	}
	for i := range s.weights {
		s.weights[i] = 1
		s.idealWeights[i] = 1
	}

	return s
}

// SetWeights installs per-objective weights and returns the previous
// vector. Weights must be positive and match the objective count.
func (s *Scaling) SetWeights(w []float64) ([]float64, error) {
	if len(w) != s.nObj {
		return nil, ErrWeights
	}
	for _, v := range w {
		if !(v > 0) {
			return nil, ErrWeights
		}
	}
	prev := s.weights
	s.weights = append([]float64(nil), w...)
	s.updateFactor()

	return prev, nil
}

// Weights returns a copy of the current weight vector.
func (s *Scaling) Weights() []float64 { return append([]float64(nil), s.weights...) }

// SetIdealPoint installs an ideal point and returns the previous one
// (nil when none was set). Every coordinate must be strictly below the
// reference point.
func (s *Scaling) SetIdealPoint(ideal Point) (Point, error) {
	if s.ref == nil {
		return nil, ErrNoReferencePoint
	}
	if len(ideal) != s.nObj {
		return nil, ErrDimension
	}
	for i := range ideal {
		if !(ideal[i] < s.ref[i]) {
			return nil, ErrIdealPoint
		}
	}
	prev := s.ideal
	s.ideal = ideal.Clone()
	for i := range s.idealWeights {
		s.idealWeights[i] = 1 / (s.ref[i] - s.ideal[i])
	}
	s.updateFactor()

	return prev, nil
}

// IdealPoint returns a copy of the ideal point, or nil when unset.
func (s *Scaling) IdealPoint() Point { return s.ideal.Clone() }

// Identity reports whether the scaling is still the default identity.
func (s *Scaling) Identity() bool { return s.factor == 1 && s.ideal == nil && s.uniform() }

func (s *Scaling) uniform() bool {
	for _, w := range s.weights {
		if w != 1 {
			return false
		}
	}

	return true
}

// updateFactor caches the product of weight vectors as a quick
// identity test; distances always use the per-objective values.
func (s *Scaling) updateFactor() {
	s.factor = 1
	for i := range s.weights {
		s.factor *= s.weights[i] * s.idealWeights[i]
	}
}

// DistanceToArea returns the weighted Euclidean distance from p to the
// region weakly dominating the reference point, zero when p is already
// inside (or when no reference point is set). Each positive excess
// p[i]-ref[i] is scaled by the combined weight of objective i before
// the norm is taken.
func (s *Scaling) DistanceToArea(p Point) float64 {
	if s.ref == nil {
		return 0
	}
	d := make([]float64, s.nObj)
	for i := 0; i < s.nObj; i++ {
		d[i] = math.Max(0, p[i]-s.ref[i]) * s.weights[i] * s.idealWeights[i]
	}

	return floats.Norm(d, 2)
}

// Clone returns an independent copy of s.
func (s *Scaling) Clone() *Scaling {
	c := &Scaling{
		nObj:         s.nObj,
		ref:          s.ref.Clone(),
		ideal:        s.ideal.Clone(),
		weights:      append([]float64(nil), s.weights...),
		idealWeights: append([]float64(nil), s.idealWeights...),
		factor:       s.factor,
	}

	return c
}
