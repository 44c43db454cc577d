package hvlist

import "math"

// Node is an element of the circular doubly linked lists used by the
// 3- and 4-objective archives. X always has four slots; 3-objective
// archives store 0 in the last one.
type Node struct {
	X       [4]float64
	Info    any
	Closest [2]*Node
	CNext   [2]*Node
	Next    [4]*Node
	Prev    [4]*Node
	NDom    int
}

// NewNode returns an unlinked node holding the given coordinates,
// padded with zeros beyond len(x).
func NewNode(x []float64, info any) *Node {
	n := &Node{Info: info}
	copy(n.X[:], x)

	return n
}

// LexLess orders a before b by (third, second, first) coordinate. The
// tie on all three coordinates resolves to true, so a node never sorts
// after an equal node; sweeps rely on this to detect duplicates as
// dominators.
func LexLess(a, b [4]float64) bool {
	if a[2] != b[2] {
		return a[2] < b[2]
	}
	if a[1] != b[1] {
		return a[1] < b[1]
	}

	return a[0] <= b[0]
}

// initSentinels wires the three sentinel rings for the given reference
// point and dimension and returns s1, the list head.
func initSentinels(ref []float64, dim int) *Node {
	s1, s2, s3 := &Node{}, &Node{}, &Node{}
	inf := math.Inf(1)

	s1.X = [4]float64{-inf, ref[1], -inf, -inf}
	s1.Closest = [2]*Node{s2, s1}
	s1.Next = [4]*Node{nil, nil, s2, s2}
	s1.Prev = [4]*Node{nil, nil, s3, s3}

	s2.X = [4]float64{ref[0], -inf, -inf, -inf}
	s2.Closest = [2]*Node{s2, s1}
	s2.Next = [4]*Node{nil, nil, s3, s3}
	s2.Prev = [4]*Node{nil, nil, s1, s1}

	s3.X = [4]float64{-inf, -inf, ref[2], -inf}
	if dim == 4 {
		s3.X[3] = ref[3]
	}
	s3.Closest = [2]*Node{s2, s1}
	s3.Next = [4]*Node{nil, nil, s1, nil}
	s3.Prev = [4]*Node{nil, nil, s2, s2}

	return s1
}

// AddToZ links new into the ring sorted by the third coordinate, after
// new.Prev[2] which the caller has already positioned.
func AddToZ(n *Node) {
	n.Next[2] = n.Prev[2].Next[2]
	n.Next[2].Prev[2] = n
	n.Prev[2].Next[2] = n
}

// RemoveFromZ unlinks old from the ring of the given archive dimension
// (ring index dim-1).
func RemoveFromZ(old *Node, dim int) {
	di := dim - 1
	old.Prev[di].Next[di] = old.Next[di]
	old.Next[di].Prev[di] = old.Prev[di]
}
