package threshold

// CumulativeTables are prefix sums over a Histogram.
//
// Count[i] is the number of pixels with intensity <= i and WeightedSum[i] the
// sum of their intensities. Both are non-decreasing, and the last entries hold
// the image totals.
type CumulativeTables struct {
	Count       [Levels]int64
	WeightedSum [Levels]int64
}

// BuildCumulativeTables derives the prefix sums of h.
func BuildCumulativeTables(h Histogram) CumulativeTables {
	var t CumulativeTables
	t.Count[0] = h[0]
	t.WeightedSum[0] = 0
	for i := 1; i < Levels; i++ {
		t.Count[i] = t.Count[i-1] + h[i]
		t.WeightedSum[i] = t.WeightedSum[i-1] + int64(i)*h[i]
	}
	return t
}

// Below returns the count and intensity sum of pixels with intensity <= i.
// i is clamped to [0,255].
func (t *CumulativeTables) Below(i int) (count, sum int64) {
	if i < 0 {
		return 0, 0
	}
	if i >= Levels {
		i = Levels - 1
	}
	return t.Count[i], t.WeightedSum[i]
}

// Total returns the pixel count and intensity sum of the whole image.
func (t *CumulativeTables) Total() (count, sum int64) {
	return t.Count[Levels-1], t.WeightedSum[Levels-1]
}
