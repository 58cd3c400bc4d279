package segment

import (
	"math"
	"testing"

	"github.com/roofscope/roofmeasure/internal/imaging"
)

// blockMask builds a mask with a solid rectangle of set pixels.
func blockMask(w, h, x0, y0, x1, y1 int) *imaging.Mask {
	m := imaging.NewMask(w, h)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			m.Set(x, y, true)
		}
	}
	return m
}

func TestExtractContoursSingleBlock(t *testing.T) {
	m := blockMask(30, 30, 10, 10, 20, 20)
	contours := extractContours(m)

	if len(contours) != 1 {
		t.Fatalf("extracted %d contours, want 1", len(contours))
	}

	c := contours[0]
	if len(c.pixels) != 100 {
		t.Errorf("region has %d pixels, want 100", len(c.pixels))
	}

	// The external boundary of a 10x10 block is its 36-pixel ring, and
	// the shoelace area of the pixel-center ring is 9x9.
	if len(c.points) != 36 {
		t.Errorf("boundary has %d points, want 36", len(c.points))
	}
	if math.Abs(c.area-81) > 1e-9 {
		t.Errorf("contour area = %v, want 81", c.area)
	}
	if math.Abs(c.perimeter-36) > 1e-9 {
		t.Errorf("contour perimeter = %v, want 36", c.perimeter)
	}
}

func TestExtractContoursSeparateRegions(t *testing.T) {
	m := blockMask(40, 40, 2, 2, 10, 10)
	for y := 25; y < 35; y++ {
		for x := 25; x < 35; x++ {
			m.Set(x, y, true)
		}
	}

	contours := extractContours(m)
	if len(contours) != 2 {
		t.Errorf("extracted %d contours, want 2", len(contours))
	}
}

func TestExtractContoursDiagonalConnectivity(t *testing.T) {
	// Two blocks touching only at a corner are 8-connected, so they form
	// a single region.
	m := blockMask(20, 20, 2, 2, 6, 6)
	for y := 6; y < 10; y++ {
		for x := 6; x < 10; x++ {
			m.Set(x, y, true)
		}
	}

	contours := extractContours(m)
	if len(contours) != 1 {
		t.Errorf("corner-touching blocks gave %d contours, want 1", len(contours))
	}
}

func TestExtractContoursIsolatedPixel(t *testing.T) {
	m := imaging.NewMask(10, 10)
	m.Set(4, 4, true)

	contours := extractContours(m)
	if len(contours) != 1 {
		t.Fatalf("extracted %d contours, want 1", len(contours))
	}
	c := contours[0]
	if len(c.points) != 1 || len(c.pixels) != 1 {
		t.Errorf("isolated pixel traced %d boundary points, %d pixels", len(c.points), len(c.pixels))
	}
	if c.area != 0 || c.compactness() != 0 {
		t.Errorf("isolated pixel area = %v, compactness = %v", c.area, c.compactness())
	}
}

func TestExtractContoursEmptyMask(t *testing.T) {
	if contours := extractContours(imaging.NewMask(15, 15)); len(contours) != 0 {
		t.Errorf("empty mask gave %d contours", len(contours))
	}
}

func TestTraceBoundaryStaysOnRing(t *testing.T) {
	m := blockMask(25, 25, 5, 5, 15, 15)
	boundary := traceBoundary(m, 5, 5)

	for i, p := range boundary {
		x, y := int(p.X), int(p.Y)
		if !m.At(x, y) {
			t.Fatalf("boundary point %d = (%d,%d) is background", i, x, y)
		}
		onRing := x == 5 || x == 14 || y == 5 || y == 14
		if !onRing {
			t.Errorf("boundary point %d = (%d,%d) is interior", i, x, y)
		}
	}

	// No point visited twice.
	seen := make(map[[2]int]bool)
	for _, p := range boundary {
		key := [2]int{int(p.X), int(p.Y)}
		if seen[key] {
			t.Fatalf("boundary revisits (%d,%d)", key[0], key[1])
		}
		seen[key] = true
	}
}

func TestContourToMaskRoundTrip(t *testing.T) {
	m := blockMask(20, 20, 3, 3, 9, 12)
	contours := extractContours(m)
	if len(contours) != 1 {
		t.Fatalf("extracted %d contours, want 1", len(contours))
	}

	back := contours[0].toMask()
	if back.Count() != m.Count() {
		t.Errorf("round trip count = %d, want %d", back.Count(), m.Count())
	}
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			if back.At(x, y) != m.At(x, y) {
				t.Fatalf("round trip differs at (%d,%d)", x, y)
			}
		}
	}
}

func TestContourCompactness(t *testing.T) {
	square := extractContours(blockMask(40, 40, 5, 5, 25, 25))[0]
	road := extractContours(blockMask(60, 40, 2, 18, 58, 21))[0]

	if square.compactness() <= road.compactness() {
		t.Errorf("square compactness %v not above road compactness %v",
			square.compactness(), road.compactness())
	}
	if square.compactness() < 0.7 {
		t.Errorf("square compactness = %v, want >= 0.7", square.compactness())
	}
	if road.compactness() > 0.5 {
		t.Errorf("elongated strip compactness = %v, want <= 0.5", road.compactness())
	}
}
