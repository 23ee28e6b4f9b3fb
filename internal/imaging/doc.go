// Package imaging is the file and pixel-format layer around the threshold package.
//
// It decodes images from disk (with a path-keyed cache), reduces colour images
// to a single 8-bit channel, crops regions of interest, and encodes results
// back to disk or to base64 PNG. It also renders histogram charts. The threshold package only ever sees the
// *image.Gray values produced here.
//
// # Coordinate System
//
// Pixel coordinates are 0-based with (0,0) at the top-left. For a Region,
// (X1,Y1) is inclusive and (X2,Y2) is exclusive.
//
// # Grayscale Reduction
//
// ToGray supports two methods:
//   - luma: ITU-R BT.601 weights via github.com/disintegration/imaging
//   - lightness: CIE L* via github.com/lucasb-eyer/go-colorful
//
// Images that decode as *image.Gray are copied without conversion.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. The other functions are stateless and
// never modify their inputs.
package imaging
