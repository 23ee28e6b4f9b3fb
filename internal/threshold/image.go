package threshold

import (
	"fmt"
	"image"
)

// Levels is the number of distinct 8-bit intensities.
const Levels = 256

// FromSamples builds a grayscale image from a row-major grid of integer samples.
//
// Parameters:
//   - rows, cols: Image dimensions. Both must be positive.
//   - samples: rows*cols intensities, each in [0,255].
//
// The returned image owns a fresh pixel buffer; samples is not retained.
func FromSamples(rows, cols int, samples []int) (*image.Gray, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: image is %dx%d", ErrInvalidInput, cols, rows)
	}
	if len(samples) != rows*cols {
		return nil, fmt.Errorf("%w: got %d samples for a %dx%d image", ErrInvalidInput, len(samples), cols, rows)
	}

	img := image.NewGray(image.Rect(0, 0, cols, rows))
	for i, v := range samples {
		if v < 0 || v >= Levels {
			return nil, fmt.Errorf("%w: sample %d at row %d col %d outside [0,255]", ErrInvalidInput, v, i/cols, i%cols)
		}
		img.Pix[(i/cols)*img.Stride+i%cols] = uint8(v)
	}
	return img, nil
}

// validate rejects nil and empty images.
func validate(img *image.Gray) error {
	if img == nil {
		return fmt.Errorf("%w: image is nil", ErrInvalidInput)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return fmt.Errorf("%w: image is %dx%d", ErrInvalidInput, b.Dx(), b.Dy())
	}
	return nil
}

// row returns the pixels of row y (absolute coordinate) of img.
func row(img *image.Gray, y int) []uint8 {
	b := img.Bounds()
	off := img.PixOffset(b.Min.X, y)
	return img.Pix[off : off+b.Dx()]
}
