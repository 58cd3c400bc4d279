package imaging

import (
	"image"
	"math"
)

// Luminance converts an image to a grayscale grid on the 0-255 scale
// using ITU-R BT.601 weights (0.299*R + 0.587*G + 0.114*B).
func Luminance(img image.Image) [][]float64 {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	gray := make([][]float64, height)
	for y := 0; y < height; y++ {
		gray[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			gray[y][x] = 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8)
		}
	}
	return gray
}

// VerticalSobel computes the absolute vertical gradient magnitude of a
// grayscale grid using the 3x3 Sobel Y operator.
//
// The output keeps the raw (unnormalized) Sobel scale: a hard black/
// white boundary produces values near 1020. The pitch estimator
// averages these magnitudes over a facet's pixels, so the scale is part
// of the calibration and must not be normalized away.
func VerticalSobel(gray [][]float64) [][]float64 {
	height := len(gray)
	if height == 0 {
		return nil
	}
	width := len(gray[0])

	sobelY := [][]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}

	out := make([][]float64, height)
	for y := 0; y < height; y++ {
		out[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			var gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					py := clampInt(y+ky, 0, height-1)
					px := clampInt(x+kx, 0, width-1)
					gy += gray[py][px] * sobelY[ky+1][kx+1]
				}
			}
			out[y][x] = math.Abs(gy)
		}
	}
	return out
}
