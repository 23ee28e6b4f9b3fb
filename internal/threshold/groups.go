package threshold

import (
	"image"
	"math"
	"sync"
)

// Group is the pixel count and intensity sum of one side of a partition.
type Group struct {
	Count int64
	Sum   int64
}

// Mean returns Sum/Count. The caller must check Count first.
func (g Group) Mean() float64 {
	return float64(g.Sum) / float64(g.Count)
}

func (g Group) add(o Group) Group {
	return Group{Count: g.Count + o.Count, Sum: g.Sum + o.Sum}
}

// GroupStats splits an image's pixels at a candidate threshold.
//
// Split returns the pixels with intensity <= t as lower and the rest as upper.
// Implementations differ only in cost; for the same image they return the same
// groups for every t.
type GroupStats interface {
	Split(t float64) (lower, upper Group)
}

// NewGroupStats returns the GroupStats implementation for strategy.
//
// workers only affects PixelRescan, which splits the rows of img into that
// many bands and scans them concurrently. Values below 1 mean 1.
func NewGroupStats(img *image.Gray, strategy Strategy, workers int) (GroupStats, error) {
	if err := validate(img); err != nil {
		return nil, err
	}
	switch strategy {
	case PixelRescan:
		return newPixelScanner(img, workers), nil
	case HistogramRescan:
		h, err := BuildHistogram(img)
		if err != nil {
			return nil, err
		}
		return &histogramScanner{hist: h}, nil
	case CumulativeSum:
		h, err := BuildHistogram(img)
		if err != nil {
			return nil, err
		}
		return newCumulativeLookup(h), nil
	default:
		return nil, invalidStrategy(strategy)
	}
}

// pixelScanner re-examines every pixel on each Split.
type pixelScanner struct {
	img   *image.Gray
	bands []image.Rectangle
}

func newPixelScanner(img *image.Gray, workers int) *pixelScanner {
	b := img.Bounds()
	if workers < 1 {
		workers = 1
	}
	if workers > b.Dy() {
		workers = b.Dy()
	}

	bands := make([]image.Rectangle, 0, workers)
	step := b.Dy() / workers
	extra := b.Dy() % workers
	y := b.Min.Y
	for i := 0; i < workers; i++ {
		h := step
		if i < extra {
			h++
		}
		bands = append(bands, image.Rect(b.Min.X, y, b.Max.X, y+h))
		y += h
	}
	return &pixelScanner{img: img, bands: bands}
}

func (p *pixelScanner) Split(t float64) (lower, upper Group) {
	if len(p.bands) == 1 {
		return p.scan(p.bands[0], t)
	}

	type partial struct{ lower, upper Group }
	parts := make([]partial, len(p.bands))
	var wg sync.WaitGroup
	for i, band := range p.bands {
		wg.Add(1)
		go func(i int, band image.Rectangle) {
			defer wg.Done()
			l, u := p.scan(band, t)
			parts[i] = partial{l, u}
		}(i, band)
	}
	wg.Wait()

	for _, part := range parts {
		lower = lower.add(part.lower)
		upper = upper.add(part.upper)
	}
	return lower, upper
}

func (p *pixelScanner) scan(band image.Rectangle, t float64) (lower, upper Group) {
	for y := band.Min.Y; y < band.Max.Y; y++ {
		for _, v := range row(p.img, y) {
			if float64(v) <= t {
				lower.Count++
				lower.Sum += int64(v)
			} else {
				upper.Count++
				upper.Sum += int64(v)
			}
		}
	}
	return lower, upper
}

// histogramScanner re-examines all 256 bins on each Split.
type histogramScanner struct {
	hist Histogram
}

func (s *histogramScanner) Split(t float64) (lower, upper Group) {
	for i, c := range s.hist {
		if float64(i) <= t {
			lower.Count += c
			lower.Sum += int64(i) * c
		} else {
			upper.Count += c
			upper.Sum += int64(i) * c
		}
	}
	return lower, upper
}

// cumulativeLookup answers each Split with two table lookups.
type cumulativeLookup struct {
	tables CumulativeTables
}

func newCumulativeLookup(h Histogram) *cumulativeLookup {
	return &cumulativeLookup{tables: BuildCumulativeTables(h)}
}

func (c *cumulativeLookup) Split(t float64) (lower, upper Group) {
	// Integer intensity i satisfies i <= t exactly when i <= floor(t).
	lower.Count, lower.Sum = c.tables.Below(int(math.Floor(t)))
	total, sum := c.tables.Total()
	upper = Group{Count: total - lower.Count, Sum: sum - lower.Sum}
	return lower, upper
}
