package geometry

import "math"

// Point represents a 2D coordinate in pixel space.
//
// Coordinates are float64 because polygon vertices produced by contour
// simplification and edge midpoints fall between pixel centers.
type Point struct {
	X float64 `json:"x"` // Horizontal position (0 = leftmost)
	Y float64 `json:"y"` // Vertical position (0 = topmost)
}

// Segment is a directed line segment between two points.
type Segment struct {
	Start Point `json:"start"`
	End   Point `json:"end"`
}

// Delta returns the segment's displacement vector (dx, dy).
func (s Segment) Delta() (float64, float64) {
	return s.End.X - s.Start.X, s.End.Y - s.Start.Y
}

// Length returns the Euclidean length of the segment.
func (s Segment) Length() float64 {
	dx, dy := s.Delta()
	return math.Hypot(dx, dy)
}

// Orientation returns the segment's angle in degrees, normalized to
// [0, 180). Direction is intentionally discarded: a ridge line and an
// eave line are distinguished by position, not by which endpoint the
// tracer happened to visit first.
func (s Segment) Orientation() float64 {
	dx, dy := s.Delta()
	deg := math.Atan2(dy, dx) * 180 / math.Pi
	deg = math.Mod(deg, 180)
	if deg < 0 {
		deg += 180
	}
	return deg
}

// Midpoint returns the point halfway along the segment.
func (s Segment) Midpoint() Point {
	return Point{
		X: (s.Start.X + s.End.X) / 2,
		Y: (s.Start.Y + s.End.Y) / 2,
	}
}

// Rect is an axis-aligned bounding rectangle.
type Rect struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Polygon is a closed polygon given as an ordered vertex list.
//
// The closing edge from the last vertex back to the first is implicit:
// edge i connects vertex i to vertex (i+1) mod n. All methods treat the
// polygon as closed so callers never index past the wrap boundary
// themselves.
type Polygon []Point

// Edges returns the polygon's n edges in vertex order, including the
// closing edge from the last vertex back to the first.
func (p Polygon) Edges() []Segment {
	n := len(p)
	if n < 2 {
		return nil
	}
	edges := make([]Segment, n)
	for i := 0; i < n; i++ {
		edges[i] = Segment{Start: p[i], End: p[(i+1)%n]}
	}
	return edges
}

// Edge returns edge i of the closed polygon, wrapping at the boundary.
func (p Polygon) Edge(i int) Segment {
	n := len(p)
	return Segment{Start: p[i%n], End: p[(i+1)%n]}
}

// Centroid returns the arithmetic mean of the vertices.
//
// This is the vertex centroid, not the area centroid; edge
// classification only needs a stable interior reference point.
func (p Polygon) Centroid() Point {
	if len(p) == 0 {
		return Point{}
	}
	var sx, sy float64
	for _, v := range p {
		sx += v.X
		sy += v.Y
	}
	n := float64(len(p))
	return Point{X: sx / n, Y: sy / n}
}

// Bounds returns the axis-aligned bounding rectangle of the vertices.
func (p Polygon) Bounds() Rect {
	if len(p) == 0 {
		return Rect{}
	}
	r := Rect{MinX: p[0].X, MinY: p[0].Y, MaxX: p[0].X, MaxY: p[0].Y}
	for _, v := range p[1:] {
		if v.X < r.MinX {
			r.MinX = v.X
		}
		if v.X > r.MaxX {
			r.MaxX = v.X
		}
		if v.Y < r.MinY {
			r.MinY = v.Y
		}
		if v.Y > r.MaxY {
			r.MaxY = v.Y
		}
	}
	return r
}

// Area returns the enclosed area computed with the shoelace formula.
// The result is always non-negative regardless of winding order.
func (p Polygon) Area() float64 {
	n := len(p)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += p[i].X*p[j].Y - p[j].X*p[i].Y
	}
	return math.Abs(sum) / 2
}

// Perimeter returns the total length of all edges.
func (p Polygon) Perimeter() float64 {
	var total float64
	for _, e := range p.Edges() {
		total += e.Length()
	}
	return total
}

// Compactness returns 4π·Area/Perimeter², a shape regularity measure in
// (0, 1]. A circle scores 1.0, a square ~0.785, and elongated shapes
// such as roads score near zero. Returns 0 for a degenerate polygon
// with zero perimeter.
func (p Polygon) Compactness() float64 {
	perim := p.Perimeter()
	if perim == 0 {
		return 0
	}
	return 4 * math.Pi * p.Area() / (perim * perim)
}

// LongestEdge returns the polygon's longest edge. The boolean is false
// when the polygon has fewer than two vertices.
func (p Polygon) LongestEdge() (Segment, bool) {
	edges := p.Edges()
	if len(edges) == 0 {
		return Segment{}, false
	}
	longest := edges[0]
	maxLen := longest.Length()
	for _, e := range edges[1:] {
		if l := e.Length(); l > maxLen {
			maxLen = l
			longest = e
		}
	}
	return longest, true
}
