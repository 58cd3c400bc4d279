package geometry

import (
	"math"
	"testing"
)

// rectContour builds the dense pixel boundary of an axis-aligned
// rectangle, one point per boundary pixel, clockwise.
func rectContour(x0, y0, x1, y1 float64) []Point {
	var pts []Point
	for x := x0; x < x1; x++ {
		pts = append(pts, Point{x, y0})
	}
	for y := y0; y < y1; y++ {
		pts = append(pts, Point{x1, y})
	}
	for x := x1; x > x0; x-- {
		pts = append(pts, Point{x, y1})
	}
	for y := y1; y > y0; y-- {
		pts = append(pts, Point{x0, y})
	}
	return pts
}

func TestSimplifyRectangle(t *testing.T) {
	contour := rectContour(0, 0, 40, 30)
	poly := Simplify(contour, 1.5)

	if len(poly) != 4 {
		t.Fatalf("Simplify() kept %d vertices, want 4 (got %v)", len(poly), poly)
	}

	// All four rectangle corners must survive.
	corners := []Point{{0, 0}, {40, 0}, {40, 30}, {0, 30}}
	for _, c := range corners {
		found := false
		for _, v := range poly {
			if v == c {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("corner %+v missing from simplified polygon %v", c, poly)
		}
	}
}

func TestSimplifyPreservesArea(t *testing.T) {
	contour := rectContour(0, 0, 50, 50)
	orig := Polygon(contour).Area()
	simplified := Simplify(contour, 2).Area()

	if math.Abs(orig-simplified)/orig > 0.05 {
		t.Errorf("area changed from %v to %v, more than 5%%", orig, simplified)
	}
}

func TestSimplifyNoisyLine(t *testing.T) {
	// A jagged near-horizontal run collapses with a tolerance above the
	// jitter amplitude.
	var pts []Point
	for x := 0.0; x < 30; x++ {
		y := 0.0
		if int(x)%2 == 1 {
			y = 0.5
		}
		pts = append(pts, Point{x, y})
	}
	pts = append(pts, Point{29, 20}, Point{0, 20})

	poly := Simplify(pts, 1.0)
	if len(poly) > 6 {
		t.Errorf("Simplify() kept %d vertices, want at most 6", len(poly))
	}
}

func TestSimplifyShortInputUnchanged(t *testing.T) {
	tri := []Point{{0, 0}, {10, 0}, {5, 8}}
	poly := Simplify(tri, 5)
	if len(poly) != 3 {
		t.Fatalf("triangle simplified to %d vertices", len(poly))
	}
	for i, p := range tri {
		if poly[i] != p {
			t.Errorf("vertex %d = %+v, want %+v", i, poly[i], p)
		}
	}
}

func TestSimplifyNeverBelowTriangle(t *testing.T) {
	contour := rectContour(0, 0, 10, 10)
	poly := Simplify(contour, 1e6)
	if len(poly) < 3 {
		t.Errorf("Simplify() with huge tolerance returned %d vertices, want >= 3", len(poly))
	}
}

func TestPerpendicularDistance(t *testing.T) {
	d := perpendicularDistance(Point{5, 3}, Point{0, 0}, Point{10, 0})
	if !almostEqual(d, 3, 1e-9) {
		t.Errorf("perpendicularDistance = %v, want 3", d)
	}

	// Coincident line endpoints fall back to point distance.
	d = perpendicularDistance(Point{3, 4}, Point{0, 0}, Point{0, 0})
	if !almostEqual(d, 5, 1e-9) {
		t.Errorf("degenerate perpendicularDistance = %v, want 5", d)
	}
}
