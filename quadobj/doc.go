// Package quadobj implements the 4-objective nondominated archive on a
// circular doubly linked list sorted by the fourth coordinate,
// following the hv4d+ algorithm of Guerreiro and Fonseca.
//
// The fourth dimension is handled by slicing: the list is swept in
// ascending fourth coordinate while the first three coordinates feed
// the 3-objective machinery of package hvlist, so each slab between
// consecutive fourth coordinates contributes its cross-sectional
// volume times the slab height. The sweep rebuilds the inner links as
// it goes and therefore runs once per list construction; mutations
// rebuild the archive from the surviving points instead of patching
// the structure in place.
//
//   - Add and Remove reconstruct the archive from the union or the
//     remainder of the current points; the uncrowded indicator keeps
//     its offered-point history across reconstructions.
//   - KinkPoints sweeps the ring in fourth-coordinate order while
//     maintaining two 3-objective sub-archives (front projection and
//     kink candidates); the result feeds DistanceToParetoFront and is
//     memoized behind an explicit dirty flag.
package quadobj
