package quadobj_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/velisar/hvarc/core"
	"github.com/velisar/hvarc/quadobj"
	"github.com/velisar/hvarc/triobj"
)

// TestArchive_HypervolumeCyclicFront verifies the exact hypervolume of
// the four-point cyclic front.
func TestArchive_HypervolumeCyclicFront(t *testing.T) {
	points := []core.Point{{0, 1, 2, 3}, {1, 2, 3, 0}, {2, 3, 0, 1}, {3, 0, 1, 2}}
	for _, policy := range []core.Policy{core.Exact(), core.Floats()} {
		a, err := quadobj.New(points, core.Point{4, 4, 4, 4}, policy, nil)
		require.NoError(t, err)
		require.Equal(t, 4, a.Len())

		hv, err := a.Hypervolume()
		require.NoError(t, err)
		assert.Equal(t, 71.0, hv.Float64())
	}
}

// TestArchive_AddSequence verifies acceptance, rejection and the
// iteration order over a sequence of inserts.
func TestArchive_AddSequence(t *testing.T) {
	a, err := quadobj.New(nil, core.Point{5, 5, 5, 5}, core.Exact(), nil)
	require.NoError(t, err)

	added, err := a.Add(core.Point{2, 3, 4, 5}, nil)
	require.NoError(t, err)
	assert.False(t, added, "boundary point is out of domain")

	added, err = a.Add(core.Point{1, 2, 3, 4}, nil)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = a.Add(core.Point{4, 3, 2, 1}, nil)
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, []core.Point{{4, 3, 2, 1}, {1, 2, 3, 4}}, a.Points(),
		"iteration ascends by the fourth coordinate")

	hv, err := a.Hypervolume()
	require.NoError(t, err)
	assert.Equal(t, 44.0, hv.Float64())

	added, err = a.Add(core.Point{2, 2, 2, 2}, nil)
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, []core.Point{{4, 3, 2, 1}, {2, 2, 2, 2}, {1, 2, 3, 4}}, a.Points())

	hv, err = a.Hypervolume()
	require.NoError(t, err)
	assert.Equal(t, 93.0, hv.Float64())
}

// TestArchive_AddListKeepsInfosAligned verifies batch insertion with
// payloads, including a batch point dominating another.
func TestArchive_AddListKeepsInfosAligned(t *testing.T) {
	a, err := quadobj.New(nil, core.Point{5, 5, 5, 5}, core.Exact(), nil)
	require.NoError(t, err)

	require.NoError(t, a.AddList([]core.Point{{1, 2, 4, 4}, {1, 2, 3, 4}}, []any{"A", "B"}))
	assert.Equal(t, []core.Point{{1, 2, 3, 4}}, a.Points())
	assert.Equal(t, []any{"B"}, a.Infos())

	require.NoError(t, a.AddList([]core.Point{{4, 3, 2, 1}, {2, 2, 2, 2}, {3, 3, 3, 3}},
		[]any{"C", "D", "E"}))
	assert.Equal(t, []core.Point{{4, 3, 2, 1}, {2, 2, 2, 2}, {1, 2, 3, 4}}, a.Points())
	assert.Equal(t, []any{"C", "D", "B"}, a.Infos())

	require.NoError(t, a.AddList([]core.Point{{1, 1, 1, 1}}, nil))
	assert.Equal(t, []core.Point{{1, 1, 1, 1}}, a.Points())
	assert.Equal(t, []any{nil}, a.Infos())
}

// TestArchive_AddListStrategiesAgree verifies that one-by-one offers
// and the single rebuild end in the same point set and hypervolume.
func TestArchive_AddListStrategiesAgree(t *testing.T) {
	initial := []core.Point{{3, 3, 3, 3}, {1, 4, 4, 4}}
	batch := []core.Point{{2, 2, 4, 4}, {4, 1, 2, 3}, {2, 2, 2, 2}, {5, 5, 5, 5}, {1, 1, 4, 1}}

	one, err := quadobj.New(initial, core.Point{5, 5, 5, 5}, core.Exact(), nil)
	require.NoError(t, err)
	re, err := quadobj.New(initial, core.Point{5, 5, 5, 5}, core.Exact(), nil)
	require.NoError(t, err)

	require.NoError(t, one.AddListStrategy(batch, nil, core.StrategyOneByOne))
	require.NoError(t, re.AddListStrategy(batch, nil, core.StrategyReinit))

	assert.Equal(t, re.Points(), one.Points())
	hvOne, err := one.Hypervolume()
	require.NoError(t, err)
	hvRe, err := re.Hypervolume()
	require.NoError(t, err)
	assert.Equal(t, 0, hvOne.Cmp(hvRe), "both strategies reach the same exact hypervolume")
}

// TestArchive_RemoveRoundTrip verifies removal with payloads and the
// restored hypervolume on re-adding.
func TestArchive_RemoveRoundTrip(t *testing.T) {
	a, err := quadobj.New([]core.Point{{1, 2, 3, 4}, {2, 2, 2, 2}, {4, 3, 2, 1}},
		core.Point{5, 5, 5, 5}, core.Exact(), []any{"A", "B", "C"})
	require.NoError(t, err)
	hvAll, _ := a.Hypervolume()

	info, err := a.Remove(core.Point{2, 2, 2, 2})
	require.NoError(t, err)
	assert.Equal(t, "B", info)
	assert.Equal(t, []core.Point{{4, 3, 2, 1}, {1, 2, 3, 4}}, a.Points())
	hv, _ := a.Hypervolume()
	assert.Equal(t, 44.0, hv.Float64())

	added, err := a.Add(core.Point{2, 2, 2, 2}, "B")
	require.NoError(t, err)
	require.True(t, added)
	hv, _ = a.Hypervolume()
	assert.Equal(t, 0, hvAll.Cmp(hv), "round trip restores the hypervolume exactly")

	_, err = a.Remove(core.Point{9, 9, 9, 9})
	assert.ErrorIs(t, err, core.ErrPointNotFound)
}

// TestArchive_HypervolumeImprovement covers the gain, dominated and
// member cases.
func TestArchive_HypervolumeImprovement(t *testing.T) {
	a, err := quadobj.New([]core.Point{{1, 2, 3, 4}, {4, 3, 2, 1}},
		core.Point{5, 5, 5, 5}, core.Floats(), nil)
	require.NoError(t, err)

	imp, err := a.HypervolumeImprovement(core.Point{2, 2, 2, 2})
	require.NoError(t, err)
	assert.Equal(t, 49.0, imp.Float64())
	assert.Equal(t, 2, a.Len(), "the improvement query does not mutate the archive")

	imp, err = a.HypervolumeImprovement(core.Point{3, 3, 4, 5})
	require.NoError(t, err)
	assert.Equal(t, -1.0, imp.Float64(), "dominated and out of domain, one away from the boundary")

	imp, err = a.HypervolumeImprovement(core.Point{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, 0, imp.Sign(), "members improve nothing")
}

// TestArchive_KinkPoints verifies the corner set of a two-point
// archive.
func TestArchive_KinkPoints(t *testing.T) {
	a, err := quadobj.New([]core.Point{{1, 2, 3, 4}, {4, 3, 2, 1}},
		core.Point{5, 5, 5, 5}, core.Floats(), nil)
	require.NoError(t, err)

	kinks, err := a.KinkPoints()
	require.NoError(t, err)
	assert.ElementsMatch(t, []core.Point{
		{5, 5, 5, 1}, {5, 3, 5, 4}, {4, 5, 5, 4}, {5, 5, 2, 5},
		{5, 3, 3, 5}, {4, 5, 3, 5}, {5, 2, 5, 5}, {1, 5, 5, 5},
	}, kinks)
}

// TestArchive_DistanceToParetoFront verifies the distance on both
// sides of the front.
func TestArchive_DistanceToParetoFront(t *testing.T) {
	a, err := quadobj.New([]core.Point{{1, 2, 3, 4}, {4, 3, 2, 1}},
		core.Point{5, 5, 5, 5}, core.Floats(), nil)
	require.NoError(t, err)

	d, err := a.DistanceToParetoFront(core.Point{0, 0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, 0.0, d)

	d, err = a.DistanceToParetoFront(core.Point{3, 3, 4, 5})
	require.NoError(t, err)
	assert.Equal(t, 1.0, d)
}

// TestArchive_DimensionalCrossCheck verifies that a 4-objective
// archive with a constant fourth coordinate reproduces the native
// 3-objective results on the projection: the hypervolume scales by the
// slab height and dominance agrees.
func TestArchive_DimensionalCrossCheck(t *testing.T) {
	proj := []core.Point{{1, 2, 3}, {2, 2, 2}, {3, 2, 1}}
	lifted := make([]core.Point, len(proj))
	for i, p := range proj {
		lifted[i] = core.Point{p[0], p[1], p[2], 1}
	}

	a3, err := triobj.New(proj, core.Point{4, 4, 4}, core.Exact(), nil)
	require.NoError(t, err)
	a4, err := quadobj.New(lifted, core.Point{4, 4, 4, 4}, core.Exact(), nil)
	require.NoError(t, err)

	hv3, err := a3.Hypervolume()
	require.NoError(t, err)
	hv4, err := a4.Hypervolume()
	require.NoError(t, err)
	// The slab height is ref[3] - 1 = 3.
	assert.Equal(t, 0, hv4.Cmp(hv3.Mul(core.ModeExact.FromFloat(3))))

	dom3, err := a3.Dominates(core.Point{3, 3, 3})
	require.NoError(t, err)
	dom4, err := a4.Dominates(core.Point{3, 3, 3, 1})
	require.NoError(t, err)
	assert.Equal(t, dom3, dom4)
}

// TestArchive_CopyIndependence verifies that a copy evolves
// independently of its source.
func TestArchive_CopyIndependence(t *testing.T) {
	a, err := quadobj.New([]core.Point{{1, 2, 3, 4}, {2, 2, 2, 2}, {4, 3, 2, 1}},
		core.Point{5, 5, 5, 5}, core.Exact(), []any{"A", "B", "C"})
	require.NoError(t, err)

	c := a.Copy()
	_, err = a.Remove(core.Point{2, 2, 2, 2})
	require.NoError(t, err)
	added, err := c.Add(core.Point{0, 1, 3, 1.5}, "D")
	require.NoError(t, err)
	require.True(t, added)

	assert.Equal(t, []core.Point{{4, 3, 2, 1}, {1, 2, 3, 4}}, a.Points())
	assert.Equal(t, []core.Point{{4, 3, 2, 1}, {0, 1, 3, 1.5}, {2, 2, 2, 2}}, c.Points())
	assert.Equal(t, []any{"C", "D", "B"}, c.Infos())
}

// TestArchive_DuplicateIsIdempotent verifies that re-adding a member
// changes nothing.
func TestArchive_DuplicateIsIdempotent(t *testing.T) {
	a, err := quadobj.New([]core.Point{{1, 2, 3, 4}, {4, 3, 2, 1}},
		core.Point{5, 5, 5, 5}, core.Exact(), nil)
	require.NoError(t, err)
	hvBefore, _ := a.Hypervolume()

	added, err := a.Add(core.Point{1, 2, 3, 4}, nil)
	require.NoError(t, err)
	assert.False(t, added, "a member weakly dominates its duplicate")
	assert.Equal(t, 2, a.Len())
	hvAfter, _ := a.Hypervolume()
	assert.Equal(t, 0, hvBefore.Cmp(hvAfter))
}

// TestArchive_BoundaryPointRejectedEverywhere verifies that a point
// touching the reference boundary on one coordinate is dropped by
// construction and by both add-list strategies alike.
func TestArchive_BoundaryPointRejectedEverywhere(t *testing.T) {
	ref := core.Point{5, 5, 5, 5}
	boundary := core.Point{0.5, 0, 0, 5}

	a, err := quadobj.New([]core.Point{{1, 1, 1, 1}, boundary}, ref, core.Exact(), nil)
	require.NoError(t, err)
	assert.Equal(t, []core.Point{{1, 1, 1, 1}}, a.Points(),
		"construction applies the same domain rule as add")

	one, err := quadobj.New([]core.Point{{1, 1, 1, 1}}, ref, core.Exact(), nil)
	require.NoError(t, err)
	re, err := quadobj.New([]core.Point{{1, 1, 1, 1}}, ref, core.Exact(), nil)
	require.NoError(t, err)

	require.NoError(t, one.AddListStrategy([]core.Point{boundary}, nil, core.StrategyOneByOne))
	require.NoError(t, re.AddListStrategy([]core.Point{boundary}, nil, core.StrategyReinit))

	assert.Equal(t, []core.Point{{1, 1, 1, 1}}, one.Points())
	assert.Equal(t, one.Points(), re.Points())
}
