package segment

import (
	"image"
	"math"

	"github.com/roofscope/roofmeasure/internal/geometry"
	"github.com/roofscope/roofmeasure/internal/imaging"
)

// contour is a connected mask region: its traced external boundary plus
// the raster pixels it covers. Transient; consumed by facet assembly.
type contour struct {
	points    []geometry.Point // ordered closed boundary (pixel centers)
	pixels    []image.Point    // every pixel of the region
	area      float64          // shoelace area of the traced boundary
	perimeter float64
	width     int // dimensions of the source mask
	height    int
}

// compactness returns 4π·Area/Perimeter² for the traced boundary,
// or 0 when the boundary is degenerate.
func (c contour) compactness() float64 {
	if c.perimeter == 0 {
		return 0
	}
	return 4 * math.Pi * c.area / (c.perimeter * c.perimeter)
}

// toMask rasterizes the region's pixels back into a full-size mask.
func (c contour) toMask() *imaging.Mask {
	m := imaging.NewMask(c.width, c.height)
	for _, p := range c.pixels {
		m.Set(p.X, p.Y, true)
	}
	return m
}

// extractContours finds every connected region in the mask and traces
// its external boundary. Regions are 8-connected; holes inside a region
// do not produce separate contours.
func extractContours(m *imaging.Mask) []contour {
	visited := imaging.NewMask(m.Width, m.Height)
	var out []contour

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if !m.At(x, y) || visited.At(x, y) {
				continue
			}
			pixels := floodFill(m, visited, x, y)
			boundary := traceBoundary(m, x, y)
			out = append(out, contour{
				points:    boundary,
				pixels:    pixels,
				area:      geometry.Polygon(boundary).Area(),
				perimeter: geometry.Polygon(boundary).Perimeter(),
				width:     m.Width,
				height:    m.Height,
			})
		}
	}
	return out
}

// floodFill collects all pixels of the 8-connected region containing
// (startX, startY), marking them visited. Stack-based to avoid deep
// recursion on large regions.
func floodFill(m, visited *imaging.Mask, startX, startY int) []image.Point {
	var region []image.Point
	stack := []image.Point{{X: startX, Y: startY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !m.At(p.X, p.Y) || visited.At(p.X, p.Y) {
			continue
		}
		visited.Set(p.X, p.Y, true)
		region = append(region, p)

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				stack = append(stack, image.Point{X: p.X + dx, Y: p.Y + dy})
			}
		}
	}
	return region
}

// mooreDirs lists the 8-neighborhood clockwise in screen coordinates
// (y grows downward): E, SE, S, SW, W, NW, N, NE.
var mooreDirs = [8]image.Point{
	{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: -1, Y: 1},
	{X: -1, Y: 0}, {X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1},
}

// dirIndex maps a unit offset back to its position in mooreDirs.
func dirIndex(d image.Point) int {
	for i, md := range mooreDirs {
		if md == d {
			return i
		}
	}
	return 0
}

// traceBoundary walks the external boundary of the region containing
// the start pixel using Moore neighbor tracing with the Jacob stopping
// criterion.
//
// The start pixel must be the first region pixel in scan order
// (topmost, then leftmost), which guarantees its west neighbor is
// background. The returned boundary is ordered clockwise and closed
// implicitly (the last point connects back to the first).
func traceBoundary(m *imaging.Mask, startX, startY int) []geometry.Point {
	start := image.Point{X: startX, Y: startY}

	// An isolated pixel has no neighbors to walk.
	isolated := true
	for _, d := range mooreDirs {
		if m.At(startX+d.X, startY+d.Y) {
			isolated = false
			break
		}
	}
	if isolated {
		return []geometry.Point{{X: float64(startX), Y: float64(startY)}}
	}

	boundary := []geometry.Point{{X: float64(startX), Y: float64(startY)}}

	initialBack := image.Point{X: startX - 1, Y: startY} // known background
	cur := start
	back := initialBack

	// The boundary cannot exceed the mask size; the cap guards against
	// pathological masks.
	maxSteps := 4 * (m.Width*m.Height + 8)

	for step := 0; step < maxSteps; step++ {
		// Scan the Moore neighborhood clockwise, starting just after
		// the backtrack pixel. The background neighbor examined right
		// before the first foreground pixel becomes the next backtrack.
		startIdx := dirIndex(image.Point{X: back.X - cur.X, Y: back.Y - cur.Y})
		found := -1
		prev := back
		for i := 1; i <= 8; i++ {
			idx := (startIdx + i) % 8
			n := image.Point{X: cur.X + mooreDirs[idx].X, Y: cur.Y + mooreDirs[idx].Y}
			if m.At(n.X, n.Y) {
				found = idx
				break
			}
			prev = n
		}
		if found < 0 {
			break
		}

		back = prev
		cur = image.Point{X: cur.X + mooreDirs[found].X, Y: cur.Y + mooreDirs[found].Y}

		// Jacob's criterion: the walk repeats once we re-enter the
		// start pixel from the original backtrack position.
		if cur == start && back == initialBack {
			break
		}
		if cur != start {
			boundary = append(boundary, geometry.Point{X: float64(cur.X), Y: float64(cur.Y)})
		}
	}

	return boundary
}
