package cmoa

// Constraints is a tagged constraint input: either a single value or a
// vector, resolved once at the call boundary. Values at or below zero
// are satisfied; positive values measure the violation.
type Constraints struct {
	vals []float64
}

// FromScalar wraps a single constraint value.
func FromScalar(g float64) Constraints {
	return Constraints{vals: []float64{g}}
}

// FromVector wraps a constraint vector. The slice is copied.
func FromVector(g []float64) Constraints {
	vals := make([]float64, len(g))
	copy(vals, g)

	return Constraints{vals: vals}
}

// Len returns the number of constraint values.
func (c Constraints) Len() int { return len(c.vals) }

// Feasible reports whether no constraint is violated.
func (c Constraints) Feasible() bool {
	for _, g := range c.vals {
		if g > 0 {
			return false
		}
	}

	return true
}
