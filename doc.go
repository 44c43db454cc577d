// Package hvarc maintains archives of mutually non-dominated objective
// vectors (Pareto archives) for 2, 3 and 4 objectives under
// minimization, with exact hypervolume-based quality indicators.
//
// The top-level New factory dispatches on the objective count to the
// dimension-specific engines:
//
//   - biobj maintains a sorted slice with O(log n) lookups and O(1)
//     incremental hypervolume updates per insertion.
//   - triobj maintains the hv3d+ linked structure of Guerreiro and
//     Fonseca with incremental insertion and removal.
//   - quadobj slices the fourth dimension over the 3-objective sweep
//     (hv4d+) and rebuilds on mutation.
//
// All three satisfy core.Archive. NewConstrained wraps an engine with
// the feasibility gate and staged indicator of package cmoa.
//
// Indicator arithmetic runs under a core.Policy choosing exact
// rational (math/big) or float64 computation per stage; core.Exact()
// and core.Floats() build the two standard policies.
package hvarc
