package segment

import (
	"math"

	"github.com/roofscope/roofmeasure/internal/geometry"
)

// Classification thresholds. Fixed configuration constants, not learned
// values; they were tuned against reference roof reports.
const (
	horizontalToleranceDeg = 25.0 // orientation within this of 0°/180° is horizontal
	verticalMinDeg         = 65.0 // orientation range treated as vertical
	verticalMaxDeg         = 115.0
	polyBandFraction       = 0.25 // top/bottom/side band of the polygon's own bbox
	imageSideFraction      = 0.25 // left/right quartile of the whole image
	longDiagonalFraction   = 0.4  // of polygon height; longer diagonals are gable ends
	radialCrossFactor      = 10.0 // |cross| < length×this means roughly radial

	baseEdgeConfidence      = 0.7
	bandedHorizConfidence   = 0.85 // horizontal edge cleanly in the top/bottom band
	perimeterEdgeConfidence = 0.75 // edge near the image's side quartiles
)

// edgeContext carries everything the classification rules look at for
// one polygon edge, precomputed so each rule stays a trivial predicate.
type edgeContext struct {
	length      float64
	orientation float64 // degrees, [0, 180)

	atImageSide  bool // midpoint in the image's left/right quartile
	atPolyTop    bool
	atPolyBottom bool
	atPolySide   bool

	belowCentroid bool
	longDiagonal  bool    // length > longDiagonalFraction × polygon height
	radialCross   float64 // cross product of edge direction and centroid→midpoint
}

func (c edgeContext) horizontal() bool {
	return c.orientation < horizontalToleranceDeg ||
		math.Abs(c.orientation-180) < horizontalToleranceDeg
}

func (c edgeContext) vertical() bool {
	return c.orientation > verticalMinDeg && c.orientation < verticalMaxDeg
}

// classifyRule pairs a predicate with the edge type it assigns. Rules
// are evaluated in order; the first match wins, which makes every
// branch of the cascade testable in isolation.
type classifyRule struct {
	name  string
	match func(edgeContext) bool
	kind  EdgeType
}

// classifyRules is the ordered decision table for edge roles.
//
// Horizontal edges are ridge or eave by vertical position; vertical
// edges read as hips in an overhead view; diagonals split into rakes
// (at the perimeter, or long gable-end runs), valleys (roughly radial
// to the centroid), and hips (everything else).
var classifyRules = []classifyRule{
	{"horizontal-bottom-band", func(c edgeContext) bool { return c.horizontal() && c.atPolyBottom }, Eave},
	{"horizontal-top-band", func(c edgeContext) bool { return c.horizontal() && c.atPolyTop }, Ridge},
	{"horizontal-below-centroid", func(c edgeContext) bool { return c.horizontal() && c.belowCentroid }, Eave},
	{"horizontal-above-centroid", func(c edgeContext) bool { return c.horizontal() }, Ridge},
	{"vertical", func(c edgeContext) bool { return c.vertical() }, Hip},
	{"diagonal-perimeter", func(c edgeContext) bool { return c.atImageSide || c.atPolySide }, Rake},
	{"diagonal-gable-run", func(c edgeContext) bool { return c.longDiagonal }, Rake},
	{"diagonal-radial", func(c edgeContext) bool { return math.Abs(c.radialCross) < c.length*radialCrossFactor }, Valley},
	{"diagonal-default", func(c edgeContext) bool { return true }, Hip},
}

// classifyEdges labels every edge of a facet polygon with its roofing
// role and a confidence. The returned slice has exactly len(poly)
// entries; edge i connects vertex i to vertex (i+1) mod n.
func classifyEdges(poly geometry.Polygon, imageWidth, imageHeight int) []Edge {
	centroid := poly.Centroid()
	bounds := poly.Bounds()

	out := make([]Edge, 0, len(poly))
	for _, seg := range poly.Edges() {
		ctx := buildEdgeContext(seg, centroid, bounds, imageWidth)

		kind := Unknown
		for _, rule := range classifyRules {
			if rule.match(ctx) {
				kind = rule.kind
				break
			}
		}

		out = append(out, Edge{
			Type:       kind,
			Start:      seg.Start,
			End:        seg.End,
			LengthPx:   ctx.length,
			Confidence: edgeConfidence(ctx),
		})
	}
	return out
}

// buildEdgeContext precomputes the rule inputs for one edge.
//
// Degenerate polygons (zero height or width) default the relative
// position to 0.5 rather than dividing by zero.
func buildEdgeContext(seg geometry.Segment, centroid geometry.Point, bounds geometry.Rect, imageWidth int) edgeContext {
	mid := seg.Midpoint()
	length := seg.Length()

	relX, relY := 0.5, 0.5
	if w := bounds.Width(); w > 0 {
		relX = (mid.X - bounds.MinX) / w
	}
	if h := bounds.Height(); h > 0 {
		relY = (mid.Y - bounds.MinY) / h
	}

	dx, dy := seg.Delta()
	toMidX := mid.X - centroid.X
	toMidY := mid.Y - centroid.Y

	return edgeContext{
		length:      length,
		orientation: seg.Orientation(),
		atImageSide: mid.X < float64(imageWidth)*imageSideFraction ||
			mid.X > float64(imageWidth)*(1-imageSideFraction),
		atPolyTop:     relY < polyBandFraction,
		atPolyBottom:  relY > 1-polyBandFraction,
		atPolySide:    relX < polyBandFraction || relX > 1-polyBandFraction,
		belowCentroid: mid.Y > centroid.Y,
		longDiagonal:  length > bounds.Height()*longDiagonalFraction,
		radialCross:   dx*toMidY - dy*toMidX,
	}
}

// edgeConfidence scores how clearly the edge matched its rule.
func edgeConfidence(c edgeContext) float64 {
	switch {
	case c.horizontal() && (c.atPolyTop || c.atPolyBottom):
		return bandedHorizConfidence
	case c.atImageSide:
		return perimeterEdgeConfidence
	default:
		return baseEdgeConfidence
	}
}
