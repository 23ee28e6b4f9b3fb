package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/anthonynsimon/bild/imgio"
)

// JPEGQuality is used when saving to .jpg/.jpeg.
const JPEGQuality = 95

// EncodedImage is an image encoded as base64 PNG.
type EncodedImage struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodeBase64PNG encodes img as PNG and wraps it in base64.
func EncodeBase64PNG(img image.Image) (*EncodedImage, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return &EncodedImage{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// Save writes img to path, choosing the encoder from the file extension
// (png, jpg/jpeg or bmp). The parent directory must exist.
func Save(path string, img image.Image) error {
	var enc imgio.Encoder
	switch FormatFromPath(path) {
	case "png":
		enc = imgio.PNGEncoder()
	case "jpeg":
		enc = imgio.JPEGEncoder(JPEGQuality)
	case "bmp":
		enc = imgio.BMPEncoder()
	default:
		return fmt.Errorf("unsupported output format %q (want .png, .jpg, .jpeg or .bmp)", filepath.Ext(path))
	}

	if dir := filepath.Dir(path); dir != "" {
		if _, err := os.Stat(dir); err != nil {
			return fmt.Errorf("output directory: %w", err)
		}
	}
	if err := imgio.Save(path, img, enc); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}
