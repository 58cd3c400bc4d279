package geometry

import "math"

// Simplify reduces a closed contour to a simpler polygon using the
// Douglas–Peucker algorithm.
//
// Parameters:
//   - points: Ordered vertices of a closed contour. The closing edge is
//     implicit; the input must not repeat the first point at the end.
//   - tolerance: Maximum perpendicular deviation, in pixels, allowed
//     between the original contour and the simplified polygon.
//
// Because Douglas–Peucker operates on open polylines, the closed
// contour is split at its two mutually farthest vertices and each half
// is simplified independently. This avoids the degenerate case where
// the algorithm collapses a closed loop whose endpoints coincide.
//
// Contours with three or fewer points are returned unchanged.
func Simplify(points []Point, tolerance float64) Polygon {
	n := len(points)
	if n <= 3 {
		return Polygon(points)
	}

	// Split at the farthest-apart vertex pair.
	a, b := farthestPair(points)
	if a > b {
		a, b = b, a
	}

	first := simplifyOpen(points[a:b+1], tolerance)
	second := append(append([]Point{}, points[b:]...), points[:a+1]...)
	second = simplifyOpen(second, tolerance)

	// Each half includes both split vertices; drop the duplicates when
	// joining.
	out := make(Polygon, 0, len(first)+len(second)-2)
	out = append(out, first...)
	if len(second) > 2 {
		out = append(out, second[1:len(second)-1]...)
	}
	if len(out) < 3 {
		return Polygon(points)
	}
	return out
}

// farthestPair returns the indices of the two vertices with the
// greatest pairwise distance. Quadratic, but simplified contours are
// short and raw contours are split long before this dominates.
func farthestPair(points []Point) (int, int) {
	bestA, bestB := 0, len(points)/2
	var bestDist float64
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			dx := points[j].X - points[i].X
			dy := points[j].Y - points[i].Y
			if d := dx*dx + dy*dy; d > bestDist {
				bestDist = d
				bestA, bestB = i, j
			}
		}
	}
	return bestA, bestB
}

// simplifyOpen applies Douglas–Peucker to an open polyline.
func simplifyOpen(points []Point, tolerance float64) []Point {
	if len(points) <= 2 {
		return points
	}

	maxDist := 0.0
	maxIdx := 0
	for i := 1; i < len(points)-1; i++ {
		d := perpendicularDistance(points[i], points[0], points[len(points)-1])
		if d > maxDist {
			maxDist = d
			maxIdx = i
		}
	}

	if maxDist <= tolerance {
		return []Point{points[0], points[len(points)-1]}
	}

	left := simplifyOpen(points[:maxIdx+1], tolerance)
	right := simplifyOpen(points[maxIdx:], tolerance)

	out := make([]Point, 0, len(left)+len(right)-1)
	out = append(out, left[:len(left)-1]...)
	out = append(out, right...)
	return out
}

// perpendicularDistance returns the distance from p to the line through
// a and b. Falls back to point distance when a and b coincide.
func perpendicularDistance(p, a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	return math.Abs(dy*p.X-dx*p.Y+b.X*a.Y-b.Y*a.X) / length
}
