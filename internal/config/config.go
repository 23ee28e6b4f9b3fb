// Package config reads runtime settings from the environment.
//
// Variables may also come from a .env file; values already set in the
// environment take precedence over the file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/ironsheep/threshold-mcp/internal/imaging"
	"github.com/ironsheep/threshold-mcp/internal/logger"
	"github.com/ironsheep/threshold-mcp/internal/threshold"
)

// Environment variable names.
const (
	EnvLogLevel      = "THRESHOLD_MCP_LOG_LEVEL"
	EnvLogFormat     = "THRESHOLD_MCP_LOG_FORMAT"
	EnvStrategy      = "THRESHOLD_MCP_STRATEGY"
	EnvMaxIterations = "THRESHOLD_MCP_MAX_ITERATIONS"
	EnvWorkers       = "THRESHOLD_MCP_WORKERS"
	EnvGrayMethod    = "THRESHOLD_MCP_GRAY_METHOD"
)

// Config holds the resolved settings.
type Config struct {
	LogLevel      zerolog.Level
	LogFormat     string
	Strategy      threshold.Strategy
	MaxIterations int
	Workers       int
	GrayMethod    imaging.GrayMethod
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		LogLevel:      zerolog.InfoLevel,
		LogFormat:     "json",
		Strategy:      threshold.CumulativeSum,
		MaxIterations: threshold.DefaultMaxIterations,
		Workers:       1,
		GrayMethod:    imaging.GrayLuma,
	}
}

// SolveOptions converts the solver settings to threshold.Options.
func (c Config) SolveOptions() threshold.Options {
	return threshold.Options{
		MaxIterations: c.MaxIterations,
		Workers:       c.Workers,
	}
}

// Load reads the .env files (default ".env") into the environment and then
// resolves Config from it. Missing files are skipped; malformed files and
// invalid values are errors.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv resolves Config using getenv for lookups.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Default()
	var err error

	if v := getenv(EnvLogLevel); v != "" {
		if cfg.LogLevel, err = logger.ParseLevel(v); err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
	}

	if v := strings.ToLower(strings.TrimSpace(getenv(EnvLogFormat))); v != "" {
		if v != "json" && v != "console" {
			return Config{}, fmt.Errorf("%s: unknown format %q (want json or console)", EnvLogFormat, v)
		}
		cfg.LogFormat = v
	}

	if v := getenv(EnvStrategy); v != "" {
		if cfg.Strategy, err = threshold.ParseStrategy(v); err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvStrategy, err)
		}
	}

	if v := getenv(EnvMaxIterations); v != "" {
		if cfg.MaxIterations, err = positiveInt(v); err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvMaxIterations, err)
		}
	}

	if v := getenv(EnvWorkers); v != "" {
		if cfg.Workers, err = positiveInt(v); err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvWorkers, err)
		}
	}

	if v := getenv(EnvGrayMethod); v != "" {
		if cfg.GrayMethod, err = imaging.ParseGrayMethod(v); err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvGrayMethod, err)
		}
	}

	return cfg, nil
}

func positiveInt(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", s)
	}
	if n < 1 {
		return 0, fmt.Errorf("must be at least 1, got %d", n)
	}
	return n, nil
}
