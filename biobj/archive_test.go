package biobj_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/velisar/hvarc/biobj"
	"github.com/velisar/hvarc/core"
)

// TestArchive_HypervolumeBasic verifies the staircase hypervolume of a
// two-point archive in both precision policies.
func TestArchive_HypervolumeBasic(t *testing.T) {
	for _, policy := range []core.Policy{core.Exact(), core.Floats()} {
		a, err := biobj.New([]core.Point{{1, 2}, {2, 1}}, core.Point{3, 3}, policy, nil)
		require.NoError(t, err)

		hv, err := a.Hypervolume()
		require.NoError(t, err)
		assert.Equal(t, 3.0, hv.Float64())
		assert.Equal(t, []core.Point{{1, 2}, {2, 1}}, a.Points(),
			"iteration ascends by the first coordinate")
	}
}

// TestArchive_AddOutOfDomain verifies that a point at or beyond the
// reference point is rejected and leaves length and hypervolume
// unchanged.
func TestArchive_AddOutOfDomain(t *testing.T) {
	a, err := biobj.New([]core.Point{{1, 2}, {2, 1}}, core.Point{3, 3}, core.Exact(), nil)
	require.NoError(t, err)

	added, err := a.Add(core.Point{4, 4}, nil)
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, 2, a.Len())
	hv, err := a.Hypervolume()
	require.NoError(t, err)
	assert.Equal(t, 3.0, hv.Float64())
	assert.Equal(t, []core.Point{{4, 4}}, a.Discarded())
}

// TestArchive_HypervolumePlusStaircase walks the uncrowded indicator
// from -Inf through rejected offers up to a positive hypervolume, and
// checks it never decreases.
func TestArchive_HypervolumePlusStaircase(t *testing.T) {
	a, err := biobj.New(nil, core.Point{1, 1}, core.Floats(), nil)
	require.NoError(t, err)

	hvp, err := a.HypervolumePlus()
	require.NoError(t, err)
	assert.True(t, hvp.IsInf(-1), "empty archive starts at -Inf")

	added, err := a.Add(core.Point{1, 2}, nil)
	require.NoError(t, err)
	assert.False(t, added)
	hvp, _ = a.HypervolumePlus()
	assert.Equal(t, -1.0, hvp.Float64(), "rejected offer raises the indicator to its distance")

	added, err = a.Add(core.Point{1, 1}, nil)
	require.NoError(t, err)
	assert.False(t, added, "the reference point itself is out of domain")
	hvp, _ = a.HypervolumePlus()
	assert.Equal(t, 0, hvp.Sign())

	added, err = a.Add(core.Point{0.5, 0.5}, nil)
	require.NoError(t, err)
	assert.True(t, added)
	hvp, _ = a.HypervolumePlus()
	assert.Equal(t, 0.25, hvp.Float64(), "with positive hypervolume the indicators coincide")
}

// TestArchive_PruneRecordsDiscarded verifies construction-time pruning
// of dominated points, duplicates included.
func TestArchive_PruneRecordsDiscarded(t *testing.T) {
	a, err := biobj.New([]core.Point{{0.1, 1}, {-2, 3}, {-4, 5}, {-4, 5}, {-4, 4.9}},
		nil, core.Exact(), nil)
	require.NoError(t, err)

	assert.Equal(t, []core.Point{{-4, 4.9}, {-2, 3}, {0.1, 1}}, a.Points())
	assert.Equal(t, []core.Point{{-4, 5}, {-4, 5}}, a.Discarded())
}

// TestArchive_AddEvictsDominatedRun verifies that one insertion can
// evict a contiguous run of entries and that they show up in
// Discarded.
func TestArchive_AddEvictsDominatedRun(t *testing.T) {
	a, err := biobj.New([]core.Point{{1, 4}, {2, 3}, {3, 2}, {4, 1}},
		core.Point{5, 5}, core.Exact(), []any{"a", "b", "c", "d"})
	require.NoError(t, err)

	added, err := a.Add(core.Point{1.5, 1.5}, "e")
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, []core.Point{{1, 4}, {1.5, 1.5}, {4, 1}}, a.Points())
	assert.Equal(t, []any{"a", "e", "d"}, a.Infos())
	assert.Equal(t, []core.Point{{2, 3}, {3, 2}}, a.Discarded())

	hv, err := a.Hypervolume()
	require.NoError(t, err)
	got := a.ComputeHypervolume(core.Point{5, 5})
	assert.Equal(t, 0, hv.Cmp(got), "incremental hypervolume matches the full sweep")
}

// TestArchive_DuplicateIsIdempotent verifies that re-adding a member
// changes nothing and is not reported as discarded.
func TestArchive_DuplicateIsIdempotent(t *testing.T) {
	a, err := biobj.New([]core.Point{{1, 2}, {2, 1}}, core.Point{3, 3}, core.Exact(), nil)
	require.NoError(t, err)
	hvBefore, _ := a.Hypervolume()

	added, err := a.Add(core.Point{1, 2}, nil)
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, 2, a.Len())
	assert.Empty(t, a.Discarded())
	hvAfter, _ := a.Hypervolume()
	assert.Equal(t, 0, hvBefore.Cmp(hvAfter))
}

// TestArchive_RemoveRoundTrip verifies that add followed by remove
// restores the point set and the exact hypervolume.
func TestArchive_RemoveRoundTrip(t *testing.T) {
	a, err := biobj.New([]core.Point{{1, 2}, {2, 1}}, core.Point{3, 3}, core.Exact(), []any{"A", "B"})
	require.NoError(t, err)
	hvBefore, _ := a.Hypervolume()

	added, err := a.Add(core.Point{1.5, 1.5}, "C")
	require.NoError(t, err)
	require.True(t, added)

	info, err := a.Remove(core.Point{1.5, 1.5})
	require.NoError(t, err)
	assert.Equal(t, "C", info)
	assert.Equal(t, []core.Point{{1, 2}, {2, 1}}, a.Points())
	hvAfter, _ := a.Hypervolume()
	assert.Equal(t, 0, hvBefore.Cmp(hvAfter), "round trip restores the hypervolume exactly")

	_, err = a.Remove(core.Point{9, 9})
	assert.ErrorIs(t, err, core.ErrPointNotFound)
}

// TestArchive_ContributingHypervolumes verifies the per-point
// contributions against the rectangles they span with their neighbors.
func TestArchive_ContributingHypervolumes(t *testing.T) {
	a, err := biobj.New([]core.Point{{1, 2}, {2, 1}}, core.Point{3, 3}, core.Exact(), nil)
	require.NoError(t, err)

	contribs, err := a.ContributingHypervolumes()
	require.NoError(t, err)
	require.Len(t, contribs, 2)
	assert.Equal(t, 1.0, contribs[0].Float64())
	assert.Equal(t, 1.0, contribs[1].Float64())

	// For a non-member the contribution equals the improvement.
	c, err := a.ContributingHypervolume(core.Point{1.5, 1.5})
	require.NoError(t, err)
	assert.Equal(t, 0.25, c.Float64())
}

// TestArchive_HypervolumeImprovement covers the four cases of the
// improvement indicator: member, dominated, out of domain, and a
// genuine gain.
func TestArchive_HypervolumeImprovement(t *testing.T) {
	a, err := biobj.New([]core.Point{{1, 2}, {2, 1}}, core.Point{3, 3}, core.Floats(), nil)
	require.NoError(t, err)

	imp, err := a.HypervolumeImprovement(core.Point{1, 2})
	require.NoError(t, err)
	assert.Equal(t, 0, imp.Sign(), "members improve nothing")

	imp, err = a.HypervolumeImprovement(core.Point{2.5, 2.5})
	require.NoError(t, err)
	assert.InDelta(t, -math.Sqrt(0.5), imp.Float64(), 1e-12,
		"dominated points yield the negated front distance")

	imp, err = a.HypervolumeImprovement(core.Point{4, 4})
	require.NoError(t, err)
	assert.InDelta(t, -math.Sqrt(2), imp.Float64(), 1e-12,
		"out-of-domain points yield the negated domain distance")

	imp, err = a.HypervolumeImprovement(core.Point{1.5, 1.5})
	require.NoError(t, err)
	assert.InDelta(t, 0.25, imp.Float64(), 1e-12)
}

// TestArchive_KinkPoints verifies the corners of the dominated-region
// boundary.
func TestArchive_KinkPoints(t *testing.T) {
	a, err := biobj.New([]core.Point{{1, 2}, {2, 1}}, core.Point{3, 3}, core.Exact(), nil)
	require.NoError(t, err)

	kinks, err := a.KinkPoints()
	require.NoError(t, err)
	assert.ElementsMatch(t,
		[]core.Point{{1, 3}, {2, 2}, {3, 1}}, kinks)

	empty, err := biobj.New(nil, core.Point{3, 3}, core.Exact(), nil)
	require.NoError(t, err)
	kinks, err = empty.KinkPoints()
	require.NoError(t, err)
	assert.Equal(t, []core.Point{{3, 3}}, kinks, "an empty archive kinks at the reference point")
}

// TestArchive_DistanceToParetoFront verifies the distance measure on
// both sides of the front.
func TestArchive_DistanceToParetoFront(t *testing.T) {
	a, err := biobj.New([]core.Point{{1, 2}, {2, 1}}, core.Point{3, 3}, core.Floats(), nil)
	require.NoError(t, err)

	d, err := a.DistanceToParetoFront(core.Point{0, 0})
	require.NoError(t, err)
	assert.Equal(t, 0.0, d, "nondominated in-domain points sit on or before the front")

	d, err = a.DistanceToParetoFront(core.Point{2.5, 2.5})
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(0.5), d, 1e-12)
}

// TestArchive_DominanceQueries covers Contains, Dominates, Dominators
// and CountDominators.
func TestArchive_DominanceQueries(t *testing.T) {
	a, err := biobj.New([]core.Point{{1, 2}, {2, 1}}, core.Point{3, 3}, core.Exact(), nil)
	require.NoError(t, err)

	assert.True(t, a.Contains(core.Point{1, 2}))
	assert.False(t, a.Contains(core.Point{1, 1}))

	dominated, err := a.Dominates(core.Point{2, 2})
	require.NoError(t, err)
	assert.True(t, dominated)

	dom, err := a.Dominators(core.Point{2, 2})
	require.NoError(t, err)
	assert.ElementsMatch(t, []core.Point{{1, 2}, {2, 1}}, dom)

	n, err := a.CountDominators(core.Point{2, 2})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = a.CountDominators(core.Point{0, 0})
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	_, err = a.Dominates(core.Point{1, 2, 3})
	assert.ErrorIs(t, err, core.ErrDimension)
}

// TestArchive_NoReferencePoint verifies that hypervolume queries
// require a reference point while dominance queries do not.
func TestArchive_NoReferencePoint(t *testing.T) {
	a, err := biobj.New([]core.Point{{1, 2}, {2, 1}}, nil, core.Exact(), nil)
	require.NoError(t, err)

	_, err = a.Hypervolume()
	assert.ErrorIs(t, err, core.ErrNoReferencePoint)
	_, err = a.HypervolumePlus()
	assert.ErrorIs(t, err, core.ErrNoReferencePoint)

	dominated, err := a.Dominates(core.Point{2, 2})
	require.NoError(t, err)
	assert.True(t, dominated)
	inDomain, err := a.InDomain(core.Point{1e9, 1e9})
	require.NoError(t, err)
	assert.True(t, inDomain, "without a reference point everything is in domain")
}

// TestArchive_CopyIndependence verifies that a copy does not share
// state with its source.
func TestArchive_CopyIndependence(t *testing.T) {
	a, err := biobj.New([]core.Point{{1, 2}, {2, 1}}, core.Point{3, 3}, core.Exact(), []any{"A", "B"})
	require.NoError(t, err)

	c := a.Copy()
	_, err = a.Remove(core.Point{1, 2})
	require.NoError(t, err)

	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 2, c.Len(), "the copy is unaffected by the removal")
	assert.Equal(t, []any{"A", "B"}, c.Infos())
}

// TestArchive_InputValidation covers the constructor preconditions.
func TestArchive_InputValidation(t *testing.T) {
	_, err := biobj.New([]core.Point{{1, 2, 3}}, core.Point{3, 3}, core.Exact(), nil)
	assert.ErrorIs(t, err, core.ErrDimension)

	_, err = biobj.New([]core.Point{{1, 2}}, core.Point{3, 3, 3}, core.Exact(), nil)
	assert.ErrorIs(t, err, core.ErrDimension)

	_, err = biobj.New([]core.Point{{1, 2}}, core.Point{3, 3}, core.Exact(), []any{"A", "B"})
	assert.ErrorIs(t, err, core.ErrLengthMismatch)

	_, err = biobj.New(nil, core.Point{3, 3}, core.Policy{}, nil)
	assert.ErrorIs(t, err, core.ErrPolicy)
}

// TestArchive_ExactIncrementalMatchesSweep adds points with long
// significands one by one and checks that the incrementally maintained
// rational hypervolume equals a from-scratch sweep exactly; the
// rectangle decompositions differ, so the coordinate differences must
// be taken in rational arithmetic.
func TestArchive_ExactIncrementalMatchesSweep(t *testing.T) {
	ref := core.Point{5, 5}
	a, err := biobj.New(nil, ref, core.Exact(), nil)
	require.NoError(t, err)

	offers := []core.Point{
		{0.8235718305481392, 4.102394801483374},
		{2.517390284710293, 1.2398471029384711},
		{4.091827364556473, 0.7182736455647382},
		{1.902837465102938, 2.8374651029384716},
		{2.0310760328091577, 2.587231414305855},
		{1.5173902847102932, 2.6029384710293847}, // evicts a dominated entry
	}
	for _, p := range offers {
		_, err := a.Add(p, nil)
		require.NoError(t, err)
	}

	hv, err := a.Hypervolume()
	require.NoError(t, err)
	assert.Equal(t, 0, hv.Cmp(a.ComputeHypervolume(ref)),
		"incremental cache equals a full sweep exactly")
}
