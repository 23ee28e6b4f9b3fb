// Package threshold implements basic global thresholding of 8-bit grayscale images.
//
// The package selects a single intensity threshold that separates an image into
// foreground and background, then applies it to produce a two-level image.
// Everything here is pure computation: no file I/O and no logging. Callers in
// the imaging and server packages handle decoding, encoding and reporting.
//
// # Pipeline
//
//	image -> BuildHistogram -> BuildCumulativeTables -> Solve -> Binarize -> output
//
// # Threshold Selection
//
// Solve runs a fixed-point iteration over class means, starting from
// InitialThreshold (127):
//
//  1. Split the samples into group 1 (intensity <= T) and group 2 (intensity > T).
//  2. Compute the mean of each group, m1 and m2.
//  3. T' = (m1 + m2) / 2.
//  4. Stop when |T' - T| <= 1, otherwise T = T' and repeat.
//
// The result is T' truncated to an integer.
//
// # Strategies
//
// Step 1 can be computed three ways, selected by Strategy:
//   - PixelRescan: scan every pixel on every iteration, O(rows*cols) per step.
//   - HistogramRescan: scan the 256 histogram bins on every iteration.
//   - CumulativeSum: O(1) lookups into prefix sums of counts and weighted counts.
//
// All three accumulate integer counts and sums, so they produce identical
// thresholds and iteration counts for the same image.
//
// # Error Handling
//
// Errors wrap one of three sentinels, matched with errors.Is:
//   - ErrInvalidInput: empty image, sample outside [0,255], bad threshold or strategy.
//   - ErrDegenerateGroup: an empty partition, only when Options.FailOnDegenerate is set.
//     By default an empty group takes the populated group's mean and the step
//     is counted in Result.DegenerateSteps.
//   - ErrNonConvergence: the iteration cap was reached. The accompanying Result
//     still carries the best-effort threshold.
//
// # Thread Safety
//
// All functions are safe for concurrent use on distinct or shared inputs; none
// of them mutate their arguments.
package threshold
