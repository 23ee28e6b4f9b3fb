package imaging

import (
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// GrayMethod selects how colour images are reduced to one intensity channel.
type GrayMethod string

const (
	// GrayLuma weights R, G and B by ITU-R BT.601 (0.299, 0.587, 0.114).
	GrayLuma GrayMethod = "luma"

	// GrayLightness uses CIE L* scaled to [0,255], which tracks perceived
	// brightness more closely than luma for saturated colours.
	GrayLightness GrayMethod = "lightness"
)

// ParseGrayMethod maps a method name to a GrayMethod. An empty name is GrayLuma.
func ParseGrayMethod(name string) (GrayMethod, error) {
	switch m := GrayMethod(strings.ToLower(strings.TrimSpace(name))); m {
	case "", GrayLuma:
		return GrayLuma, nil
	case GrayLightness:
		return GrayLightness, nil
	default:
		return "", fmt.Errorf("unknown gray method %q (want luma or lightness)", name)
	}
}

// ToGray reduces img to an 8-bit single-channel image with a zero origin.
//
// A *image.Gray source is copied unchanged, whatever the method.
func ToGray(img image.Image, method GrayMethod) (*image.Gray, error) {
	if img == nil {
		return nil, fmt.Errorf("image is nil")
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("image is empty (%dx%d)", b.Dx(), b.Dy())
	}

	if src, ok := img.(*image.Gray); ok {
		out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
		for y := 0; y < b.Dy(); y++ {
			copy(out.Pix[y*out.Stride:(y+1)*out.Stride], src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):])
		}
		return out, nil
	}

	switch method {
	case "", GrayLuma:
		return lumaGray(img), nil
	case GrayLightness:
		return lightnessGray(img), nil
	default:
		return nil, fmt.Errorf("unknown gray method %q", method)
	}
}

// lumaGray relies on imaging.Grayscale, which leaves R=G=B=luma.
func lumaGray(img image.Image) *image.Gray {
	g := imaging.Grayscale(img)
	b := g.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			out.Pix[y*out.Stride+x] = g.Pix[g.PixOffset(b.Min.X+x, b.Min.Y+y)]
		}
	}
	return out
}

func lightnessGray(img image.Image) *image.Gray {
	b := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			r, g, bl, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			if a != 0 && a != 0xffff {
				// Un-premultiply so colorful sees the straight colour.
				r, g, bl = r*0xffff/a, g*0xffff/a, bl*0xffff/a
			}
			c := colorful.Color{R: float64(r) / 0xffff, G: float64(g) / 0xffff, B: float64(bl) / 0xffff}
			l, _, _ := c.Lab()
			out.Pix[y*out.Stride+x] = uint8(math.Round(math.Max(0, math.Min(1, l)) * 255))
		}
	}
	return out
}
