package core

// AddStrategy selects how AddListStrategy inserts a batch of points
// into a 3- or 4-objective archive.
type AddStrategy uint8

const (
	// StrategyCompare picks between one-by-one insertion and a full
	// rebuild based on the batch size relative to the archive size.
	StrategyCompare AddStrategy = iota
	// StrategyOneByOne inserts each point individually.
	StrategyOneByOne
	// StrategyReinit rebuilds the archive from the union of the current
	// points and the batch.
	StrategyReinit
)

// Archive is a set of mutually non-dominated objective vectors under
// minimization, with hypervolume-based quality indicators. The three
// implementations (2, 3 and 4 objectives) satisfy it; the hvarc.New
// factory dispatches on the objective count.
//
// Mutating operations keep the set non-dominated at all times and keep
// the hypervolume indicator incrementally up to date when a reference
// point is present. Implementations are not safe for concurrent use.
type Archive interface {
	// NumObjectives returns the number of objectives (2, 3 or 4).
	NumObjectives() int

	// Len returns the number of archived points.
	Len() int

	// Points returns the archived points in the archive's canonical
	// iteration order: ascending first coordinate for 2 objectives,
	// ascending last coordinate otherwise.
	Points() []Point

	// Infos returns the payloads attached to the archived points, in the
	// same order as Points. Points added without a payload yield nil.
	Infos() []any

	// ReferencePoint returns a copy of the reference point, or nil.
	ReferencePoint() Point

	// Contains reports whether a point coordinate-wise equal to p is
	// archived.
	Contains(p Point) bool

	// Add offers p to the archive. It returns true when p was inserted
	// and false when p was weakly dominated or outside the region
	// bounded by the reference point. Any archived points that p weakly
	// dominates are evicted and reported by Discarded.
	Add(p Point, info any) (bool, error)

	// AddList offers every point of the batch in order. infos may be nil
	// or must align with points. Discarded reports the union of points
	// evicted over the whole batch.
	AddList(points []Point, infos []any) error

	// Remove deletes the archived point coordinate-wise equal to p and
	// returns its payload, or ErrPointNotFound.
	Remove(p Point) (any, error)

	// Discarded returns the points evicted or rejected by the most
	// recent mutating call.
	Discarded() []Point

	// Copy returns an independent deep copy, caches included.
	Copy() Archive

	// Dominates reports whether some archived point weakly dominates p.
	Dominates(p Point) (bool, error)

	// Dominators returns the archived points weakly dominating p.
	Dominators(p Point) ([]Point, error)

	// CountDominators returns len(Dominators(p)) without materializing
	// the slice.
	CountDominators(p Point) (int, error)

	// InDomain reports whether p strictly dominates the reference point,
	// i.e. whether p could contribute positive hypervolume. Without a
	// reference point every point is in domain.
	InDomain(p Point) (bool, error)

	// DistanceToHypervolumeArea returns the weighted Euclidean distance
	// from p to the region dominating the reference point; zero inside
	// the region or without a reference point. p must have exactly
	// NumObjectives coordinates.
	DistanceToHypervolumeArea(p Point) float64

	// DistanceToParetoFront returns the Euclidean distance from p to the
	// region of the domain weakly dominated by the archived points. It
	// is zero iff p is in domain and weakly dominated.
	DistanceToParetoFront(p Point) (float64, error)

	// Hypervolume returns the dominated hypervolume with respect to the
	// reference point, in the archive's Final mode.
	Hypervolume() (Scalar, error)

	// HypervolumePlus returns the uncrowded hypervolume indicator: the
	// hypervolume when positive, otherwise the negated smallest
	// DistanceToHypervolumeArea over every point ever offered to Add,
	// and -Inf before any point has been offered.
	HypervolumePlus() (Scalar, error)

	// ContributingHypervolume returns the hypervolume lost if the
	// archived point p were removed. For points not in the archive it
	// equals HypervolumeImprovement.
	ContributingHypervolume(p Point) (Scalar, error)

	// ContributingHypervolumes returns the contribution of every
	// archived point, aligned with Points.
	ContributingHypervolumes() ([]Scalar, error)

	// HypervolumeImprovement returns the hypervolume gained by adding p:
	// zero for archived points, the negated DistanceToParetoFront for
	// dominated points, the negated DistanceToHypervolumeArea for points
	// outside the domain, and the positive gain otherwise.
	HypervolumeImprovement(p Point) (Scalar, error)

	// KinkPoints returns the inner corners of the dominated region's
	// boundary, the candidate locations for DistanceToParetoFront. The
	// result is memoized until the next mutation.
	KinkPoints() ([]Point, error)

	// SetWeights installs per-objective weights for the distance
	// measures.
	SetWeights(w []float64) error

	// SetIdealPoint normalizes the distance measures by the box spanned
	// by the ideal and reference points.
	SetIdealPoint(ideal Point) error
}
