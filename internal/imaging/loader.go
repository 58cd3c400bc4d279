package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder

	"github.com/disintegration/imaging"
)

// Decode parses raw image bytes into an image.Image.
//
// Supported formats are PNG, JPEG, and GIF. The concrete return type
// depends on the source format (e.g. *image.NRGBA, *image.YCbCr).
func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// Downscale resizes an image so its longer side is at most maxDim,
// preserving aspect ratio. It returns the (possibly unchanged) image
// and the applied scale factor (newWidth / oldWidth, 1.0 when no
// resizing happened).
//
// Mask and contour work is quadratic in pixel count, so very large
// aerial tiles are reduced before analysis. The scale factor lets the
// caller correct the ground sample distance: a tile downscaled by s
// covers gsd/s meters per pixel afterward.
//
// A maxDim of zero or less disables downscaling.
func Downscale(img image.Image, maxDim int) (image.Image, float64) {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		return img, 1.0
	}

	var resized image.Image
	if w >= h {
		resized = imaging.Resize(img, maxDim, 0, imaging.Lanczos)
	} else {
		resized = imaging.Resize(img, 0, maxDim, imaging.Lanczos)
	}
	scale := float64(resized.Bounds().Dx()) / float64(w)
	return resized, scale
}
