package threshold

import "image"

// Histogram holds the number of pixels at each intensity, indexed by value.
type Histogram [Levels]int64

// BuildHistogram counts the intensities of img.
//
// The counts sum to the pixel count of img. Returns ErrInvalidInput if img is
// nil or has no pixels.
func BuildHistogram(img *image.Gray) (Histogram, error) {
	var h Histogram
	if err := validate(img); err != nil {
		return h, err
	}

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for _, v := range row(img, y) {
			h[v]++
		}
	}
	return h, nil
}

// Total returns the number of pixels counted.
func (h *Histogram) Total() int64 {
	var n int64
	for _, c := range h {
		n += c
	}
	return n
}

// WeightedSum returns the sum of all intensities, i*h[i] over every bin.
func (h *Histogram) WeightedSum() int64 {
	var s int64
	for i, c := range h {
		s += int64(i) * c
	}
	return s
}

// Mean returns the mean intensity, or 0 for an empty histogram.
func (h *Histogram) Mean() float64 {
	n := h.Total()
	if n == 0 {
		return 0
	}
	return float64(h.WeightedSum()) / float64(n)
}
