package threshold

import (
	"fmt"
	"image"
)

const (
	// Background is the output level for pixels at or below the threshold.
	Background uint8 = 0
	// Foreground is the output level for pixels above the threshold.
	Foreground uint8 = 255
)

// Binarize maps every pixel of img to Background if its intensity is <= t and
// to Foreground otherwise.
//
// The output has the same bounds as img and its own pixel buffer; img is not
// modified. Returns ErrInvalidInput if img is empty or t is outside [0,255].
func Binarize(img *image.Gray, t int) (*image.Gray, error) {
	if err := validate(img); err != nil {
		return nil, err
	}
	if t < 0 || t >= Levels {
		return nil, fmt.Errorf("%w: threshold %d outside [0,255]", ErrInvalidInput, t)
	}

	b := img.Bounds()
	out := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		src := row(img, y)
		dst := row(out, y)
		for x, v := range src {
			if int(v) <= t {
				dst[x] = Background
			} else {
				dst[x] = Foreground
			}
		}
	}
	return out, nil
}

// Partition counts the pixels Binarize would map to each level for threshold t.
func (h *Histogram) Partition(t int) (background, foreground int64) {
	for i, c := range h {
		if i <= t {
			background += c
		} else {
			foreground += c
		}
	}
	return background, foreground
}
