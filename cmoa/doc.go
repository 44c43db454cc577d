// Package cmoa wraps a nondominated archive with constraint handling
// for constrained multi-objective optimization. Only feasible points
// enter the wrapped archive; infeasible points feed a separate
// indicator, HypervolumePlusConstr, that extends the uncrowded
// hypervolume below the feasibility boundary.
//
// A point's constraint violation is the sum of its positive constraint
// values, each normalized by the largest violation seen so far for
// that constraint, so constraints on different scales weigh equally.
// The indicator is staged: -(violation + tau) while no feasible point
// is known, then at least -tau once one is, then the uncrowded
// hypervolume of the wrapped archive as usual. The threshold tau
// separates the infeasible stage from the feasible one.
package cmoa
