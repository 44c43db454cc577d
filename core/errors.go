package core

import "errors"

// Sentinel errors shared by every archive implementation. Wrap with
// fmt.Errorf("...: %w", err) when adding context; match with errors.Is.
var (
	// ErrObjectiveCount is returned when an archive is requested for an
	// objective count outside the supported range of 2, 3 or 4.
	ErrObjectiveCount = errors.New("core: objective count must be 2, 3 or 4")

	// ErrDimension is returned when a point's length does not match the
	// archive's objective count.
	ErrDimension = errors.New("core: point dimension mismatch")

	// ErrLengthMismatch is returned when a list of info payloads does not
	// align one-to-one with the list of points it annotates.
	ErrLengthMismatch = errors.New("core: infos length does not match points length")

	// ErrNoReferencePoint is returned by hypervolume-dependent operations
	// on an archive constructed without a reference point.
	ErrNoReferencePoint = errors.New("core: operation requires a reference point")

	// ErrPointNotFound is returned by Remove when no archived point is
	// coordinate-wise equal to the argument.
	ErrPointNotFound = errors.New("core: point not found in archive")

	// ErrPolicy is returned when a Policy with unset or unknown modes is
	// passed to an archive constructor.
	ErrPolicy = errors.New("core: invalid numeric precision policy")

	// ErrIdealPoint is returned when an ideal point does not strictly
	// improve on the reference point in every objective.
	ErrIdealPoint = errors.New("core: ideal point must be strictly below the reference point")

	// ErrWeights is returned for weight vectors of the wrong length or
	// with non-positive entries.
	ErrWeights = errors.New("core: weights must be positive and match the objective count")

	// ErrAddStrategy is returned for an unknown bulk-insertion strategy.
	ErrAddStrategy = errors.New("core: unknown add-list strategy")
)
