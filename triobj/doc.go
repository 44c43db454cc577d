// Package triobj implements the 3-objective nondominated archive on a
// circular doubly linked list sorted by the third coordinate, following
// the hv3d+ algorithm of Guerreiro and Fonseca.
//
// Each node keeps two "closest" pointers: the nearest lexicographically
// earlier node with a larger first and smaller second coordinate, and
// the symmetric counterpart. The pointers let a single linear sweep
// maintain the cross-sectional staircase area and accumulate the exact
// hypervolume; they are established by a B-tree assisted preprocessing
// pass at construction and maintained incrementally by Add and Remove.
//
//   - Add walks the ring once: it rejects a weakly dominated candidate,
//     excises every node the candidate dominates, collects the
//     candidate's closest delimiters, repairs the delimiters of later
//     nodes and splices the candidate in at its lexicographic position.
//   - Remove rescans the ring with an auxiliary (second, first)-ordered
//     B-tree to recompute the closest pointers that referenced the
//     removed node. The sentinels s2 and s1 act as the outermost
//     delimiter fallbacks.
//   - HypervolumeImprovement runs the one-contribution sweep without
//     mutating the ring.
//   - KinkPoints sweeps the ring while maintaining two 2-objective
//     sub-archives (front projection and kink candidates); the result
//     feeds DistanceToParetoFront and is memoized behind an explicit
//     dirty flag.
package triobj
