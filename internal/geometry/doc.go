// Package geometry provides 2D pixel-space primitives for roof
// analysis: points, segments, closed polygons with wrap-safe edge
// iteration, shoelace area, compactness, and Douglas–Peucker contour
// simplification.
package geometry
