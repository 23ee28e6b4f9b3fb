package threshold

import (
	"fmt"
	"strings"
)

// Strategy selects how the solver computes group statistics each iteration.
type Strategy int

const (
	// CumulativeSum looks up prefix sums, O(1) per iteration.
	CumulativeSum Strategy = iota
	// HistogramRescan scans the 256 histogram bins each iteration.
	HistogramRescan
	// PixelRescan scans every pixel each iteration.
	PixelRescan
)

// Strategies lists every strategy, fastest first.
var Strategies = []Strategy{CumulativeSum, HistogramRescan, PixelRescan}

var strategyNames = map[Strategy]string{
	CumulativeSum:   "cumulative",
	HistogramRescan: "histogram",
	PixelRescan:     "pixel",
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// ParseStrategy maps a name ("cumulative", "histogram" or "pixel",
// case-insensitive) to its Strategy.
func ParseStrategy(name string) (Strategy, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for s, sn := range strategyNames {
		if sn == n {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown strategy %q (want cumulative, histogram or pixel)", ErrInvalidInput, name)
}

func invalidStrategy(s Strategy) error {
	return fmt.Errorf("%w: unknown strategy %s", ErrInvalidInput, s)
}

// MarshalText encodes the strategy by name.
func (s Strategy) MarshalText() ([]byte, error) {
	if _, ok := strategyNames[s]; !ok {
		return nil, invalidStrategy(s)
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes a strategy name accepted by ParseStrategy.
func (s *Strategy) UnmarshalText(text []byte) error {
	v, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
