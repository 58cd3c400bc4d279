package segment

import (
	"image"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/roofscope/roofmeasure/internal/geometry"
)

// Pitch estimation bounds in degrees.
const (
	minPitchDeg = 5.0
	maxPitchDeg = 45.0

	// gradientToPitch maps mean vertical gradient magnitude to degrees.
	gradientToPitch = 2.0
)

// estimatePitch derives a facet's slope from the vertical brightness
// gradient averaged over the facet's pixels.
//
// This is a coarse heuristic: a steeper plane shades more strongly
// across its run, so a larger mean gradient suggests a steeper pitch.
// True pitch requires stereo imagery or elevation data; treat the
// result as an estimate, not ground truth. Returns nil when the facet
// has no pixels to sample.
func estimatePitch(gradY [][]float64, pixels []image.Point) *float64 {
	if len(pixels) == 0 || len(gradY) == 0 {
		return nil
	}

	samples := make([]float64, 0, len(pixels))
	for _, p := range pixels {
		if p.Y >= 0 && p.Y < len(gradY) && p.X >= 0 && p.X < len(gradY[p.Y]) {
			samples = append(samples, gradY[p.Y][p.X])
		}
	}
	if len(samples) == 0 {
		return nil
	}

	pitch := stat.Mean(samples, nil) * gradientToPitch
	pitch = math.Min(maxPitchDeg, math.Max(minPitchDeg, pitch))
	return &pitch
}

// estimateAspect returns the compass-style direction a facet faces, in
// degrees [0, 360).
//
// The longest polygon edge is usually the eave, and a roof plane faces
// perpendicular to its eave, so the aspect is the longest edge's angle
// rotated by 90°.
func estimateAspect(poly geometry.Polygon) float64 {
	longest, ok := poly.LongestEdge()
	if !ok || len(poly) < 3 {
		return 0
	}

	dx, dy := longest.Delta()
	angle := math.Atan2(dy, dx) * 180 / math.Pi

	aspect := math.Mod(angle+90, 360)
	if aspect < 0 {
		aspect += 360
	}
	return aspect
}
