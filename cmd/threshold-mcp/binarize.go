package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/ironsheep/threshold-mcp/internal/config"
	"github.com/ironsheep/threshold-mcp/internal/imaging"
	"github.com/ironsheep/threshold-mcp/internal/logger"
	"github.com/ironsheep/threshold-mcp/internal/threshold"
)

// runBinarize loads an image, solves its threshold, binarizes it and saves the
// result. Flags override cfg. A one-line summary is written to out.
func runBinarize(args []string, cfg config.Config, log logger.Logger, out io.Writer) error {
	fs := flag.NewFlagSet("binarize", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	strategy := fs.String("strategy", cfg.Strategy.String(), "cumulative, histogram or pixel")
	maxIter := fs.Int("max-iterations", cfg.MaxIterations, "iteration cap")
	workers := fs.Int("workers", cfg.Workers, "row bands for the pixel strategy")
	grayMethod := fs.String("gray-method", string(cfg.GrayMethod), "luma or lightness")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("binarize: %w", err)
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("binarize: want input and output paths, got %d argument(s)", fs.NArg())
	}
	in, dst := fs.Arg(0), fs.Arg(1)

	st, err := threshold.ParseStrategy(*strategy)
	if err != nil {
		return err
	}
	method, err := imaging.ParseGrayMethod(*grayMethod)
	if err != nil {
		return err
	}
	if *maxIter < 1 || *workers < 1 {
		return fmt.Errorf("binarize: -max-iterations and -workers must be positive")
	}
	cfg.MaxIterations = *maxIter
	cfg.Workers = *workers

	cache := imaging.NewImageCache()
	gray, err := cache.LoadGray(in, method, nil)
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := threshold.Solve(gray, st, cfg.SolveOptions())
	elapsed := time.Since(start)

	fields := map[string]interface{}{
		"input":      in,
		"strategy":   st.String(),
		"threshold":  res.Threshold,
		"iterations": res.Iterations,
		"elapsed_ms": float64(elapsed.Microseconds()) / 1000,
	}
	switch {
	case errors.Is(err, threshold.ErrNonConvergence):
		log.Warning("cli", err.Error(), fields)
	case err != nil:
		return err
	default:
		log.Info("cli", "threshold computed", fields)
	}

	bin, err := threshold.Binarize(gray, res.Threshold)
	if err != nil {
		return err
	}
	if err := imaging.Save(dst, bin); err != nil {
		return err
	}

	fmt.Fprintf(out, "threshold %d (%s, %d iterations, %s) -> %s\n",
		res.Threshold, st, res.Iterations, elapsed.Round(time.Microsecond), dst)
	return nil
}
