package threshold

import "errors"

var (
	// ErrInvalidInput reports an empty image, an out-of-range sample or
	// threshold, or an unknown strategy name.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDegenerateGroup reports an iteration whose partition left one group
	// empty. Only returned when Options.FailOnDegenerate is set.
	ErrDegenerateGroup = errors.New("degenerate group")

	// ErrNonConvergence reports that the iteration cap was reached before the
	// stopping criterion held.
	ErrNonConvergence = errors.New("threshold did not converge")
)
