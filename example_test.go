package hvarc_test

import (
	"fmt"

	"github.com/velisar/hvarc"
	"github.com/velisar/hvarc/cmoa"
	"github.com/velisar/hvarc/core"
)

// ExampleNew demonstrates building an archive, offering points and
// reading the hypervolume indicators.
func ExampleNew() {
	// 1) Build a 3-objective archive with a reference point:
	arc, _ := hvarc.New(nil, core.Point{4, 4, 4}, core.Exact())

	// 2) Offer points; dominated offers are rejected:
	added, _ := arc.Add(core.Point{1, 2, 3}, "first")
	fmt.Println("added [1 2 3]:", added)
	added, _ = arc.Add(core.Point{2, 3, 3}, "worse")
	fmt.Println("added [2 3 3]:", added)
	added, _ = arc.Add(core.Point{3, 2, 1}, "second")
	fmt.Println("added [3 2 1]:", added)

	// 3) Inspect the archive and its hypervolume:
	fmt.Println("points:", arc.Points())
	hv, _ := arc.Hypervolume()
	fmt.Println("hypervolume:", hv)

	// Output:
	// added [1 2 3]: true
	// added [2 3 3]: false
	// added [3 2 1]: true
	// points: [[3 2 1] [1 2 3]]
	// hypervolume: 10
}

// ExampleNewConstrained demonstrates the feasibility gate of the
// constrained archive.
func ExampleNewConstrained() {
	arc, _ := hvarc.NewConstrained(nil, nil, core.Point{5, 5}, 10, core.Floats())

	// A violated constraint keeps the point out of the archive:
	arc.Add(core.Point{3, 4}, cmoa.FromScalar(1), nil)
	arc.Add(core.Point{4, 4}, cmoa.FromScalar(0), nil)
	fmt.Println("points:", arc.Points())

	// Output:
	// points: [[4 4]]
}
