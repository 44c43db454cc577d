// Package core defines the shared vocabulary of the hvarc module:
// objective vectors, Pareto dominance predicates, the numeric precision
// policy, exact/float scalars, objective scaling, and the Archive
// interface that every dimension-specific engine implements.
//
// # Points and dominance
//
//   - Point is an objective vector under minimization. A point p weakly
//     dominates q when p[i] <= q[i] for every objective; it strictly
//     dominates q when additionally p[i] < q[i] for some objective.
//   - Archives store mutually non-dominated points only. Offering a
//     weakly dominated point leaves the archive unchanged; offering a
//     dominating point evicts every point it weakly dominates.
//
// # Precision policy
//
// Hypervolume sums accumulate many small products and float64 addition
// alone can lose the low bits of tiny contributions. Every archive is
// therefore constructed with an explicit Policy naming the arithmetic
// used while accumulating (Computation) and the arithmetic of reported
// results (Final). ModeExact runs on math/big.Rat and is the default
// recommendation; ModeFloat trades exactness for speed.
//
// Scalar is the carrier type for indicator values. It holds either a
// rational (exact, finite) or a float64, and float64 infinities are
// representable in both modes because hypervolume_plus starts at -Inf
// before any point has been offered.
//
// # Scaling
//
// Scaling holds per-objective weights and an optional ideal point used
// to normalize distance-to-domain measurements. Both are optional and
// default to the identity.
//
// # Errors
//
// All failures are reported through sentinel errors (ErrObjectiveCount,
// ErrDimension, ErrLengthMismatch, ErrNoReferencePoint, ErrPointNotFound,
// ErrPolicy, ErrIdealPoint, ErrWeights, ErrAddStrategy) so callers can
// match with errors.Is.
package core
