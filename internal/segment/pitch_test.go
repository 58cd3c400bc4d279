package segment

import (
	"image"
	"math"
	"testing"

	"github.com/roofscope/roofmeasure/internal/geometry"
)

// uniformGradient builds a gradient grid filled with one value.
func uniformGradient(w, h int, v float64) [][]float64 {
	g := make([][]float64, h)
	for y := range g {
		g[y] = make([]float64, w)
		for x := range g[y] {
			g[y][x] = v
		}
	}
	return g
}

func regionPixels(x0, y0, x1, y1 int) []image.Point {
	var pts []image.Point
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			pts = append(pts, image.Point{X: x, Y: y})
		}
	}
	return pts
}

func TestEstimatePitch(t *testing.T) {
	pixels := regionPixels(2, 2, 8, 8)

	// Mean gradient 10 maps to 20 degrees.
	p := estimatePitch(uniformGradient(10, 10, 10), pixels)
	if p == nil {
		t.Fatal("estimatePitch returned nil")
	}
	if math.Abs(*p-20) > 1e-9 {
		t.Errorf("pitch = %v, want 20", *p)
	}
}

func TestEstimatePitchClamps(t *testing.T) {
	pixels := regionPixels(0, 0, 5, 5)

	low := estimatePitch(uniformGradient(5, 5, 0), pixels)
	if low == nil || *low != minPitchDeg {
		t.Errorf("flat gradient pitch = %v, want clamp to %v", low, minPitchDeg)
	}

	high := estimatePitch(uniformGradient(5, 5, 500), pixels)
	if high == nil || *high != maxPitchDeg {
		t.Errorf("extreme gradient pitch = %v, want clamp to %v", high, maxPitchDeg)
	}
}

func TestEstimatePitchNoSamples(t *testing.T) {
	if p := estimatePitch(uniformGradient(5, 5, 10), nil); p != nil {
		t.Errorf("pitch without pixels = %v, want nil", *p)
	}

	// Pixels entirely outside the grid contribute nothing.
	outside := []image.Point{{X: 50, Y: 50}, {X: -1, Y: 2}}
	if p := estimatePitch(uniformGradient(5, 5, 10), outside); p != nil {
		t.Errorf("pitch from out-of-grid pixels = %v, want nil", *p)
	}
}

func TestEstimateAspect(t *testing.T) {
	// Longest edge horizontal: the facet faces perpendicular to it.
	wide := geometry.Polygon{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 2}, {X: 0, Y: 2}}
	if got := estimateAspect(wide); math.Abs(got-90) > 1e-9 {
		t.Errorf("wide rectangle aspect = %v, want 90", got)
	}

	// Longest edge vertical.
	tall := geometry.Polygon{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 10}, {X: 0, Y: 10}}
	if got := estimateAspect(tall); math.Abs(got-180) > 1e-9 {
		t.Errorf("tall rectangle aspect = %v, want 180", got)
	}
}

func TestEstimateAspectRange(t *testing.T) {
	polys := []geometry.Polygon{
		{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 8}},
		{{X: 0, Y: 8}, {X: 10, Y: 0}, {X: 12, Y: 9}},
		{{X: 3, Y: 3}, {X: 0, Y: 9}, {X: 9, Y: 9}, {X: 9, Y: 0}},
	}
	for i, p := range polys {
		got := estimateAspect(p)
		if got < 0 || got >= 360 {
			t.Errorf("polygon %d aspect = %v outside [0, 360)", i, got)
		}
	}
}

func TestEstimateAspectDegenerate(t *testing.T) {
	if got := estimateAspect(geometry.Polygon{{X: 1, Y: 1}}); got != 0 {
		t.Errorf("single-vertex aspect = %v, want 0", got)
	}
	if got := estimateAspect(nil); got != 0 {
		t.Errorf("nil polygon aspect = %v, want 0", got)
	}
}
