package imaging

import (
	"math"
	"sort"

	"github.com/roofscope/roofmeasure/internal/geometry"
)

// FillPolygon rasterizes a closed polygon into a mask of the given
// dimensions using even-odd scanline filling.
//
// Used to constrain the roof mask to an optional building footprint
// and to render per-facet masks for pitch estimation. Polygons with
// fewer than three vertices produce an empty mask.
func FillPolygon(poly geometry.Polygon, width, height int) *Mask {
	m := NewMask(width, height)
	n := len(poly)
	if n < 3 {
		return m
	}

	bounds := poly.Bounds()
	yStart := clampInt(int(math.Floor(bounds.MinY)), 0, height-1)
	yEnd := clampInt(int(math.Ceil(bounds.MaxY)), 0, height-1)

	for y := yStart; y <= yEnd; y++ {
		cy := float64(y) + 0.5

		// Collect crossings of the scanline with every polygon edge.
		var xs []float64
		for i := 0; i < n; i++ {
			a := poly[i]
			b := poly[(i+1)%n]
			if (a.Y <= cy && b.Y > cy) || (b.Y <= cy && a.Y > cy) {
				t := (cy - a.Y) / (b.Y - a.Y)
				xs = append(xs, a.X+t*(b.X-a.X))
			}
		}
		sort.Float64s(xs)

		for i := 0; i+1 < len(xs); i += 2 {
			x0 := clampInt(int(math.Ceil(xs[i]-0.5)), 0, width-1)
			x1 := clampInt(int(math.Floor(xs[i+1]-0.5)), 0, width-1)
			for x := x0; x <= x1; x++ {
				m.Set(x, y, true)
			}
		}
	}
	return m
}
