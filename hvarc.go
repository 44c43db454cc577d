package hvarc

import (
	"fmt"

	"github.com/velisar/hvarc/biobj"
	"github.com/velisar/hvarc/cmoa"
	"github.com/velisar/hvarc/core"
	"github.com/velisar/hvarc/quadobj"
	"github.com/velisar/hvarc/triobj"
)

// The engines implement the shared archive contract.
var (
	_ core.Archive = (*biobj.Archive)(nil)
	_ core.Archive = (*triobj.Archive)(nil)
	_ core.Archive = (*quadobj.Archive)(nil)
)

// Option configures the New and NewConstrained factories.
type Option func(*config)

type config struct {
	infos []any
	nObj  int
}

// WithInfos attaches a payload to each initial point, aligned with the
// points slice.
func WithInfos(infos []any) Option {
	return func(c *config) { c.infos = infos }
}

// WithObjectives fixes the objective count explicitly, for archives
// built without initial points and without a reference point.
func WithObjectives(n int) Option {
	return func(c *config) { c.nObj = n }
}

// objectives infers the objective count from the configuration, the
// reference point or the first initial point, in that order.
func objectives(c config, points []core.Point, ref core.Point) (int, error) {
	n := c.nObj
	if n == 0 && ref != nil {
		n = len(ref)
	}
	if n == 0 && len(points) > 0 {
		n = len(points[0])
	}
	if n < 2 || n > 4 {
		return 0, fmt.Errorf("hvarc: %d objectives: %w", n, core.ErrObjectiveCount)
	}

	return n, nil
}

// New builds a nondominated archive for 2, 3 or 4 objectives. The
// objective count is taken from WithObjectives, the reference point or
// the first initial point; anything outside 2..4 fails with
// core.ErrObjectiveCount. ref may be nil, disabling the hypervolume
// indicators.
func New(points []core.Point, ref core.Point, policy core.Policy, opts ...Option) (core.Archive, error) {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	n, err := objectives(c, points, ref)
	if err != nil {
		return nil, err
	}

	switch n {
	case 2:
		return biobj.New(points, ref, policy, c.infos)
	case 3:
		return triobj.New(points, ref, policy, c.infos)
	case 4:
		return quadobj.New(points, ref, policy, c.infos)
	}

	panic("unreachable")
}

// NewConstrained builds a constrained archive with feasibility
// threshold tau over the engine New would pick. gs must align with
// points; only feasible points enter the archive.
func NewConstrained(points []core.Point, gs []cmoa.Constraints, ref core.Point,
	tau float64, policy core.Policy, opts ...Option) (*cmoa.Archive, error) {

	var c config
	for _, opt := range opts {
		opt(&c)
	}
	n, err := objectives(c, points, ref)
	if err != nil {
		return nil, err
	}

	a, err := cmoa.New(n, ref, tau, policy)
	if err != nil {
		return nil, err
	}
	if len(points) > 0 {
		if err := a.AddList(points, gs, c.infos); err != nil {
			return nil, err
		}
	}

	return a, nil
}
