package hvlist_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/velisar/hvarc/core"
	"github.com/velisar/hvarc/hvlist"
)

// TestNewList_OrderAndFiltering verifies that construction sorts by
// the last coordinate and drops points not strictly inside the
// reference box.
func TestNewList_OrderAndFiltering(t *testing.T) {
	points := []core.Point{
		{1, 2, 3},
		{2, 3, 4}, // last coordinate ties the reference point
		{3, 2, 1},
	}
	l := hvlist.NewList(3, points, []float64{4, 4, 4}, []any{"A", "B", "C"})

	assert.Equal(t, 2, l.Count, "the boundary point is filtered out")
	assert.Equal(t, []core.Point{{3, 2, 1}, {1, 2, 3}}, l.Points(),
		"iteration ascends by the last coordinate")
	assert.Equal(t, []any{"C", "A"}, l.Infos())
}

// TestList_FindAndDominates covers membership and weak dominance
// queries on the ring.
func TestList_FindAndDominates(t *testing.T) {
	l := hvlist.NewList(3, []core.Point{{1, 2, 3}, {3, 2, 1}}, []float64{4, 4, 4}, nil)

	assert.NotNil(t, l.Find(core.Point{1, 2, 3}))
	assert.Nil(t, l.Find(core.Point{2, 2, 2}))
	assert.True(t, l.Dominates(core.Point{1, 2, 3}), "a member weakly dominates itself")
	assert.True(t, l.Dominates(core.Point{2, 3, 3}))
	assert.False(t, l.Dominates(core.Point{0, 0, 0}))

	dom := l.Dominators(core.Point{3, 2, 3})
	assert.Equal(t, []core.Point{{3, 2, 1}, {1, 2, 3}}, dom)
	assert.Equal(t, 2, l.CountDominators(core.Point{3, 2, 3}))
	assert.Equal(t, 0, l.CountDominators(core.Point{0, 0, 0}))
}

// TestLexLess_NodeOrder verifies the (third, second, first) node order
// with its weak tie, which sweeps rely on to treat duplicates as
// dominators.
func TestLexLess_NodeOrder(t *testing.T) {
	assert.True(t, hvlist.LexLess([4]float64{9, 9, 1, 0}, [4]float64{0, 0, 2, 0}))
	assert.True(t, hvlist.LexLess([4]float64{9, 1, 2, 0}, [4]float64{0, 2, 2, 0}))
	assert.True(t, hvlist.LexLess([4]float64{1, 2, 3, 0}, [4]float64{1, 2, 3, 0}),
		"full ties compare less")
	assert.False(t, hvlist.LexLess([4]float64{2, 2, 3, 0}, [4]float64{1, 2, 3, 0}))
}

// TestHV4DPlus_VariantsAgree verifies that the recomputing (R) and the
// contribution-accumulating (U) 4-objective sweeps produce the same
// hypervolume. Each sweep builds the inner links itself, so each runs
// on its own fresh list.
func TestHV4DPlus_VariantsAgree(t *testing.T) {
	points := []core.Point{{1, 2, 3, 4}, {4, 3, 2, 1}, {2, 2, 2, 2}}
	ref := []float64{5, 5, 5, 5}

	lr := hvlist.NewList(4, points, ref, nil)
	lu := hvlist.NewList(4, points, ref, nil)

	hvR := hvlist.HV4DPlusR(lr.Head, core.ModeExact)
	hvU := hvlist.HV4DPlusU(lu.Head, core.ModeExact)

	assert.Equal(t, 0, hvR.Cmp(hvU), "both sweep variants agree exactly")
	assert.Equal(t, 93.0, hvR.Float64())
}

// TestHV4DPlus_VariantsAgreeOnContinuousCoordinates repeats the
// variant comparison on coordinates whose differences are not exactly
// representable as float64; the two sweeps decompose the volume
// differently, so exact agreement requires rational coordinate
// differences throughout.
func TestHV4DPlus_VariantsAgreeOnContinuousCoordinates(t *testing.T) {
	points := []core.Point{
		{0.9182736455647382, 3.1029384710293847, 2.2834715189273403, 1.4027365102938472},
		{2.5173902847102932, 1.2398471029384711, 3.9018273645564732, 0.8374651029384716},
		{3.3721094857102935, 2.8374651029384716, 0.7182736455647382, 2.1029384710293847},
		{1.4092837465102938, 0.9182736455647382, 1.9283746510293847, 3.2830174650293846},
	}
	ref := []float64{5, 5, 5, 5}

	lr := hvlist.NewList(4, points, ref, nil)
	lu := hvlist.NewList(4, points, ref, nil)

	hvR := hvlist.HV4DPlusR(lr.Head, core.ModeExact)
	hvU := hvlist.HV4DPlusU(lu.Head, core.ModeExact)

	assert.Equal(t, 0, hvR.Cmp(hvU), "both sweep variants agree exactly")
}

// TestNewList_DropsReferenceBoundaryPoints checks that a point with a
// single coordinate equal to the reference point is filtered, matching
// the incremental add's domain rule.
func TestNewList_DropsReferenceBoundaryPoints(t *testing.T) {
	l := hvlist.NewList(3, []core.Point{{0.5, 0, 5}, {1, 1, 1}}, []float64{5, 5, 5}, nil)

	assert.Equal(t, 1, l.Count)
	assert.Equal(t, []core.Point{{1, 1, 1}}, l.Points())
}
