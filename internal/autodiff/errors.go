package autodiff

import "github.com/pkg/errors"

// Sentinel errors returned by the backward pass and gradient lookups.
// Callers match them with errors.Is.
var (
	// ErrMissingSeed is returned by Backward on a terminal with more than
	// one element: the implicit seed of ones is only defined for scalars,
	// so the caller must provide one via BackwardWithSeed.
	ErrMissingSeed = errors.New("autodiff: non-scalar terminal requires an explicit seed gradient")

	// ErrSeedShape is returned when an explicit seed's shape does not
	// match the terminal's shape.
	ErrSeedShape = errors.New("autodiff: seed gradient shape does not match terminal shape")

	// ErrNoGradient is returned by gradient lookups for tensors that did
	// not participate in the backward pass or were pruned from it.
	ErrNoGradient = errors.New("autodiff: no gradient recorded for tensor")
)
