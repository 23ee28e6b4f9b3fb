package threshold

import (
	"errors"
	"fmt"
	"image"
	"math"
)

const (
	// InitialThreshold is the starting guess for every solve.
	InitialThreshold = 127.0

	// Tolerance is the largest change between iterations that counts as converged.
	Tolerance = 1.0

	// DefaultMaxIterations caps the iteration when Options.MaxIterations is 0.
	DefaultMaxIterations = 100
)

// Options tunes Solve. The zero value is ready to use.
type Options struct {
	// MaxIterations bounds the number of iterations. 0 means DefaultMaxIterations.
	MaxIterations int

	// Workers is the number of concurrent row bands for PixelRescan.
	// 0 or 1 scans on the calling goroutine.
	Workers int

	// FailOnDegenerate makes an empty partition an ErrDegenerateGroup error
	// instead of falling back to the populated group's mean.
	FailOnDegenerate bool
}

func (o Options) maxIterations() int {
	if o.MaxIterations <= 0 {
		return DefaultMaxIterations
	}
	return o.MaxIterations
}

// Result describes a solve.
type Result struct {
	// Threshold is the converged threshold, truncated to an integer in [0,255].
	Threshold int `json:"threshold"`

	// Iterations is the number of mean-update steps performed.
	Iterations int `json:"iterations"`

	// Converged is false when the iteration cap was reached.
	Converged bool `json:"converged"`

	// DegenerateSteps counts iterations where one group was empty.
	DegenerateSteps int `json:"degenerate_steps"`

	// Strategy is the strategy that produced the result.
	Strategy Strategy `json:"strategy"`
}

// Solve finds the global threshold of img with the given strategy.
//
// On ErrNonConvergence the returned Result is still populated with the last
// computed threshold, so callers can warn and carry on. Every other error
// returns a zero Result.
func Solve(img *image.Gray, strategy Strategy, opts Options) (Result, error) {
	stats, err := NewGroupStats(img, strategy, opts.Workers)
	if err != nil {
		return Result{}, err
	}
	res, err := Iterate(stats, opts)
	return tagResult(res, err, strategy)
}

// SolveHistogram finds the global threshold from a precomputed histogram using
// the CumulativeSum strategy. Errors follow the same contract as Solve.
func SolveHistogram(h Histogram, opts Options) (Result, error) {
	if h.Total() == 0 {
		return Result{}, fmt.Errorf("%w: histogram is empty", ErrInvalidInput)
	}
	res, err := Iterate(newCumulativeLookup(h), opts)
	return tagResult(res, err, CumulativeSum)
}

// tagResult records strategy on a usable result. Errors other than
// ErrNonConvergence yield a zero Result.
func tagResult(res Result, err error, strategy Strategy) (Result, error) {
	if err != nil && !errors.Is(err, ErrNonConvergence) {
		return Result{}, err
	}
	res.Strategy = strategy
	return res, err
}

// Iterate runs the class-mean fixed-point iteration over stats.
//
// Starting from InitialThreshold, each step computes the midpoint of the two
// group means and stops once it moves by at most Tolerance.
func Iterate(stats GroupStats, opts Options) (Result, error) {
	limit := opts.maxIterations()
	res := Result{}

	t := InitialThreshold
	next := t
	for {
		res.Iterations++
		t = next

		lower, upper := stats.Split(t)
		switch {
		case lower.Count == 0 && upper.Count == 0:
			return Result{}, fmt.Errorf("%w: no pixels to partition", ErrInvalidInput)
		case lower.Count == 0 || upper.Count == 0:
			if opts.FailOnDegenerate {
				return Result{}, fmt.Errorf("%w: iteration %d at threshold %.3f left a group empty",
					ErrDegenerateGroup, res.Iterations, t)
			}
			res.DegenerateSteps++
			all := lower.add(upper)
			next = all.Mean()
		default:
			next = (lower.Mean() + upper.Mean()) / 2
		}

		if math.Abs(next-t) <= Tolerance {
			res.Converged = true
			break
		}
		if res.Iterations >= limit {
			break
		}
	}

	res.Threshold = clampLevel(int(next))
	if !res.Converged {
		return res, fmt.Errorf("%w after %d iterations (last threshold %.3f, previous %.3f)",
			ErrNonConvergence, res.Iterations, next, t)
	}
	return res, nil
}

func clampLevel(v int) int {
	if v < 0 {
		return 0
	}
	if v > Levels-1 {
		return Levels - 1
	}
	return v
}
