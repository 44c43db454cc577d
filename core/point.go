package core

// Point is an objective vector under minimization. Coordinates are
// plain float64 values; archives compare them exactly (no epsilon), so
// two points are the same point iff they are coordinate-wise equal.
type Point []float64

// Clone returns an independent copy of p.
func (p Point) Clone() Point {
	if p == nil {
		return nil
	}
	q := make(Point, len(p))
	copy(q, p)

	return q
}

// Equal reports coordinate-wise equality of p and q.
func (p Point) Equal(q Point) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}

	return true
}

// CheckDim validates that p has exactly n coordinates.
func (p Point) CheckDim(n int) error {
	if len(p) != n {
		return ErrDimension
	}

	return nil
}

// WeaklyDominates reports whether a[i] <= b[i] for the first n
// objectives. A point weakly dominates itself.
func WeaklyDominates(a, b []float64, n int) bool {
	for i := 0; i < n; i++ {
		if a[i] > b[i] {
			return false
		}
	}

	return true
}

// StrictlyDominates reports whether a weakly dominates b over the first
// n objectives and improves on at least one of them.
func StrictlyDominates(a, b []float64, n int) bool {
	strict := false
	for i := 0; i < n; i++ {
		if a[i] > b[i] {
			return false
		}
		if a[i] < b[i] {
			strict = true
		}
	}

	return strict
}

// StrictlyBelow reports whether a is strictly below b on the first n
// coordinates. This is the in-domain test against a reference point: a
// point on the reference boundary dominates no positive volume and is
// kept out of the archives.
func StrictlyBelow(a, b []float64, n int) bool {
	for i := 0; i < n; i++ {
		if a[i] >= b[i] {
			return false
		}
	}

	return true
}

// LexLess orders a before b lexicographically, comparing the first n
// coordinates left to right. Used to keep planar archives sorted.
func LexLess(a, b []float64, n int) bool {
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}

	return false
}
