package hvlist

import "github.com/velisar/hvarc/core"

// RestartListY resets the working staircase pointers before a sweep:
// the s1/s2 sentinels become the initial outer delimiters.
func RestartListY(head *Node) {
	head.Next[2].CNext[1] = head
	head.CNext[0] = head.Next[2]
}

// SetupZAndClosest determines the closest delimiters of new among the
// nodes preceding it in z-order, counts dominators into new.NDom, and
// positions new.Prev[2]/new.Next[2] for a later AddToZ.
func SetupZAndClosest(head, new *Node) {
	closest1 := head
	closest0 := head.Next[2]

	q := head.Next[2].Next[2]
	newx := new.X

	for q != nil && LexLess(q.X, newx) {
		switch {
		case q.X[0] <= newx[0] && q.X[1] <= newx[1]:
			new.NDom++
		case q.X[1] < newx[1] &&
			(q.X[0] < closest0.X[0] || (q.X[0] == closest0.X[0] && q.X[1] < closest0.X[1])):
			closest0 = q
		case q.X[0] < newx[0] &&
			(q.X[1] < closest1.X[1] || (q.X[1] == closest1.X[1] && q.X[0] < closest1.X[0])):
			closest1 = q
		}
		q = q.Next[2]
	}

	new.Closest[0], new.CNext[0] = closest0, closest0
	new.Closest[1], new.CNext[1] = closest1, closest1
	if q != nil {
		new.Prev[2] = q.Prev[2]
	} else {
		new.Prev[2] = nil
	}
	new.Next[2] = q
}

// UpdateLinks repairs the closest pointers of the nodes following new
// in z-order, unlinking any that new dominates. p is the first node to
// inspect; the walk stops at the last sentinel or once a delimiter of
// new on both coordinates has been seen. Returns the number of nodes
// new dominated.
func UpdateLinks(head, new, p *Node) int {
	stop := head.Prev[2]
	ndom := 0

	for p != stop {
		if p.X[0] <= new.X[0] && p.X[1] <= new.X[1] && (p.X[0] < new.X[0] || p.X[1] < new.X[1]) {
			break
		}
		if new.X[0] <= p.X[0] {
			if new.X[1] <= p.X[1] {
				p.NDom++
				ndom++
				RemoveFromZ(p, 3)
			} else if new.X[0] < p.X[0] &&
				(new.X[1] < p.Closest[1].X[1] || (new.X[1] == p.Closest[1].X[1] &&
					(new.X[0] < p.Closest[1].X[0] || (new.X[0] == p.Closest[1].X[0] && new.X[2] < p.Closest[1].X[2])))) {
				p.Closest[1] = new
			}
		} else if new.X[1] < p.X[1] &&
			(new.X[0] < p.Closest[0].X[0] || (new.X[0] == p.Closest[0].X[0] &&
				(new.X[1] < p.Closest[0].X[1] || (new.X[1] == p.Closest[0].X[1] && new.X[2] < p.Closest[0].X[2])))) {
			p.Closest[0] = new
		}
		p = p.Next[2]
	}

	return ndom
}

// ComputeArea accumulates the staircase area dominated by p (in the
// plane of the first two coordinates) relative to the chain of CNext
// delimiters starting at s and u, walking coordinate di. Coordinate
// differences go through Mode.Diff so exact mode never rounds.
func ComputeArea(p [4]float64, di int, s, u *Node, m core.Mode) core.Scalar {
	dj := 1 - di
	q := s
	area := m.Diff(q.X[dj], p[dj]).Mul(m.Diff(u.X[di], p[di]))

	for p[dj] < u.X[dj] {
		q = u
		u = u.CNext[di]
		area = area.Add(m.Diff(q.X[dj], p[dj]).Mul(m.Diff(u.X[di], q.X[di])))
	}

	return area
}

// HV3DPlus computes the hypervolume of the z-ring in linear time.
// Nodes with dominators are unlinked from the z-ring as the sweep
// passes them.
func HV3DPlus(head *Node, m core.Mode) core.Scalar {
	area := m.Zero()
	volume := m.Zero()

	RestartListY(head)
	p := head.Next[2].Next[2]
	stop := head.Prev[2]

	for p != stop {
		if p.NDom < 1 {
			p.CNext[0] = p.Closest[0]
			p.CNext[1] = p.Closest[1]

			area = area.Add(ComputeArea(p.X, 1, p.CNext[0], p.CNext[0].CNext[1], m))
			p.CNext[0].CNext[1] = p
			p.CNext[1].CNext[0] = p
		} else {
			RemoveFromZ(p, 3)
		}

		volume = volume.Add(area.Mul(m.Diff(p.Next[2].X[2], p.X[2])))
		p = p.Next[2]
	}

	return volume
}

// restartSetupZAndClosest is SetupZAndClosest with the staircase CNext
// chain rebuilt on the fly, as required before a single-contribution
// sweep over an already linked z-ring.
func restartSetupZAndClosest(head, new *Node) {
	p := head.Next[2].Next[2]
	closest1 := head
	closest0 := head.Next[2]

	newx := new.X

	RestartListY(head)

	for p != nil && LexLess(p.X, newx) {
		p.CNext[0] = p.Closest[0]
		p.CNext[1] = p.Closest[1]

		p.CNext[0].CNext[1] = p
		p.CNext[1].CNext[0] = p

		switch {
		case p.X[0] <= newx[0] && p.X[1] <= newx[1]:
			new.NDom++
		case p.X[1] < newx[1] &&
			(p.X[0] < closest0.X[0] || (p.X[0] == closest0.X[0] && p.X[1] < closest0.X[1])):
			closest0 = p
		case p.X[0] < newx[0] &&
			(p.X[1] < closest1.X[1] || (p.X[1] == closest1.X[1] && p.X[0] < closest1.X[0])):
			closest1 = p
		}

		p = p.Next[2]
	}

	new.Closest[0] = closest0
	new.Closest[1] = closest1
	if p != nil {
		new.Prev[2] = p.Prev[2]
	} else {
		new.Prev[2] = nil
	}
	new.Next[2] = p
}

// OneContribution computes the hypervolume that linking new into the
// z-ring would add. The ring itself is left unchanged; only transient
// CNext pointers are touched. Returns zero when new is dominated.
func OneContribution(head, new *Node, m core.Mode) core.Scalar {
	restartSetupZAndClosest(head, new)
	if new.NDom > 0 {
		return m.Zero()
	}

	new.CNext[0] = new.Closest[0]
	new.CNext[1] = new.Closest[1]
	area := ComputeArea(new.X, 1, new.CNext[0], new.CNext[0].CNext[1], m)

	p := new.Next[2]
	lastz := new.X[2]
	volume := m.Zero()

	for p != nil && (p.X[0] > new.X[0] || p.X[1] > new.X[1]) {
		volume = volume.Add(area.Mul(m.Diff(p.X[2], lastz)))
		p.CNext[0] = p.Closest[0]
		p.CNext[1] = p.Closest[1]

		if p.X[0] >= new.X[0] && p.X[1] >= new.X[1] {
			area = area.Sub(ComputeArea(p.X, 1, p.CNext[0], p.CNext[0].CNext[1], m))
			p.CNext[1].CNext[0] = p
			p.CNext[0].CNext[1] = p
		} else if p.X[0] >= new.X[0] {
			if p.X[0] <= new.CNext[0].X[0] {
				x := [4]float64{p.X[0], new.X[1], p.X[2]}
				area = area.Sub(ComputeArea(x, 1, new.CNext[0], new.CNext[0].CNext[1], m))
				p.CNext[0] = new.CNext[0]
				p.CNext[1].CNext[0] = p
				new.CNext[0] = p
			}
		} else {
			if p.X[1] <= new.CNext[1].X[1] {
				x := [4]float64{new.X[0], p.X[1], p.X[2]}
				area = area.Sub(ComputeArea(x, 0, new.CNext[1], new.CNext[1].CNext[0], m))
				p.CNext[1] = new.CNext[1]
				p.CNext[0].CNext[1] = p
				new.CNext[1] = p
			}
		}

		lastz = p.X[2]
		p = p.Next[2]
	}

	if p != nil {
		volume = volume.Add(area.Mul(m.Diff(p.X[2], lastz)))
	}

	return volume
}

// HV4DPlusR computes the 4-objective hypervolume by sweeping the
// w-ring and recomputing a full 3-objective hypervolume after each
// insertion (algorithm hv4d+-R). The z-ring is (re)built as a side
// effect; run once per list build.
func HV4DPlusR(head *Node, m core.Mode) core.Scalar {
	hv := m.Zero()

	stop := head.Prev[3]
	new := head.Next[3].Next[3]

	for new != stop {
		SetupZAndClosest(head, new)
		AddToZ(new)
		UpdateLinks(head, new, new.Next[2])

		volume := HV3DPlus(head, m)

		height := m.Diff(new.Next[3].X[3], new.X[3])
		hv = hv.Add(volume.Mul(height))

		new = new.Next[3]
	}

	return hv
}

// HV4DPlusU computes the same quantity as HV4DPlusR but accumulates
// the running 3-objective volume from single-point contributions
// (algorithm hv4d+-U), avoiding the full hv3d+ sweep per step.
func HV4DPlusU(head *Node, m core.Mode) core.Scalar {
	volume := m.Zero()
	hv := m.Zero()

	last := head.Prev[3]
	new := head.Next[3].Next[3]

	for new != last {
		volume = volume.Add(OneContribution(head, new, m))
		AddToZ(new)
		UpdateLinks(head, new, new.Next[2])

		height := m.Diff(new.Next[3].X[3], new.X[3])
		hv = hv.Add(volume.Mul(height))

		new = new.Next[3]
	}

	return hv
}
