// Package hvlist implements the sentinel-bounded circular doubly
// linked list and plane-sweep routines behind the 3- and 4-objective
// archives: the hv3d+ hypervolume sweep, the single-point contribution
// sweep, and the two 4-objective algorithms that reduce to them.
//
// # Structure
//
// Nodes carry up to four coordinates and are threaded through two link
// dimensions at once: index 2 orders nodes by the third coordinate (the
// sweep axis of hv3d+), index 3 by the fourth. Three sentinel nodes
// derived from the reference point bound every ring:
//
//	s1 = (-Inf, ref1, -Inf, ...)   rejects points with y >= ref1
//	s2 = (ref0, -Inf, -Inf, ...)   rejects points with x >= ref0
//	s3 = (-Inf, -Inf, ref2, ...)   rejects points with z >= ref2
//
// and double as default closest-delimiter candidates during sweeps.
//
// Closest[0]/Closest[1] hold each node's best known delimiter in the
// first/second coordinate among lexicographically earlier nodes; CNext
// are the working copies a sweep links into the current staircase. NDom
// counts known dominators; sweeps skip and unlink nodes with NDom > 0.
//
// The sweeps follow the hv3d+/hv4d+ algorithms of Guerreiro and
// Fonseca, with areas and volumes accumulated in a caller-chosen
// arithmetic Mode.
package hvlist
