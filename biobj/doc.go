// Package biobj implements the 2-objective nondominated archive: a
// slice kept sorted in ascending lexicographic order of (first, second)
// coordinate, which makes the second coordinate strictly descending.
//
// # Operations
//
//   - Add binary-searches the insertion index, rejects weakly dominated
//     candidates against the two neighboring entries, splices the point
//     in and deletes the contiguous run of entries it dominates. The
//     cached hypervolume is updated in O(1) per affected entry from the
//     rectangle spanned with the left/right neighbor (or the reference
//     point at the boundary).
//   - Remove subtracts the entry's contributing rectangle and splices
//     it out.
//   - HypervolumeImprovement isolates the minimal neighbor window
//     affected by the candidate and computes the gain on a small
//     sub-archive with a local reference point, avoiding tiny
//     differences of large hypervolume totals.
//   - DistanceToParetoFront iterates only the kink points adjacent to
//     the query's insertion index.
//
// The archive carries an explicit core.Policy; with core.Exact all
// hypervolume bookkeeping is exact rational arithmetic. In float mode
// the incremental updates emit a structured-log warning when an update
// is so small relative to the running total that most of its digits
// are lost.
package biobj
