package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Region is a rectangle in image coordinates. (X1,Y1) is inclusive and
// (X2,Y2) exclusive.
type Region struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Rect converts r to an image.Rectangle.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X1, r.Y1, r.X2, r.Y2)
}

// Crop extracts region from img.
//
// The region must lie inside the image bounds and have x1 < x2 and y1 < y2.
// The result has a zero origin.
func Crop(img image.Image, region Region) (image.Image, error) {
	bounds := img.Bounds()

	if region.X1 >= region.X2 || region.Y1 >= region.Y2 {
		return nil, fmt.Errorf("invalid region: x1 must be < x2, y1 must be < y2")
	}
	if !region.Rect().In(bounds) {
		return nil, fmt.Errorf("region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			region.X1, region.Y1, region.X2, region.Y2, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}

	if g, ok := img.(*image.Gray); ok {
		// Keep a single channel; ToGray normalises the origin.
		return g.SubImage(region.Rect()), nil
	}
	return imaging.Crop(img, region.Rect()), nil
}
