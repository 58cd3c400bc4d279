package segment

import "math"

// The segmentation confidence score combines four sub-scores, each a
// pure function so every factor can be property-tested on its own.
// Weights are equal (0.25 each).

// FacetCountFactor scores the plausibility of the facet count. A
// typical residential roof segments into a handful of planes, peaking
// around three; counts above nine usually mean the mask picked up
// noise.
func FacetCountFactor(count int) float64 {
	switch {
	case count >= 1 && count <= 6:
		return 0.8 + 0.2*(1-math.Abs(float64(count)-3)/3)
	case count < 10:
		return 0.5
	default:
		return 0.3
	}
}

// RegularityFactor averages a per-facet vertex-count score. Real roof
// planes simplify to 3-6 vertices; polygons with many vertices suggest
// a ragged, unreliable contour.
func RegularityFactor(facets []Facet) float64 {
	if len(facets) == 0 {
		return 0
	}
	var sum float64
	for _, f := range facets {
		switch v := len(f.Vertices); {
		case v >= 3 && v <= 6:
			sum += 1.0
		case v <= 8:
			sum += 0.7
		default:
			sum += 0.4
		}
	}
	return sum / float64(len(facets))
}

// SizeFactor scores total detected coverage as a fraction of the image.
// A typical aerial view has the roof around 15% of the frame; almost
// nothing detected, or almost half the frame, are both suspect.
func SizeFactor(totalAreaPx float64, imagePixels int) float64 {
	if imagePixels <= 0 {
		return 0
	}
	coverage := totalAreaPx / float64(imagePixels)
	switch {
	case coverage >= 0.02 && coverage <= 0.40:
		return 0.8 + 0.2*math.Min(1.0, coverage/0.15)
	case coverage < 0.02:
		return coverage / 0.02 * 0.5
	default:
		return 0.4
	}
}

// EdgeDiversityFactor rewards finding several distinct edge roles. A
// segmentation that produced ridges, eaves, and rakes is far more
// likely to be a real roof than one where every edge classified the
// same way. Diminishing returns past three distinct types.
func EdgeDiversityFactor(facets []Facet) float64 {
	types := make(map[EdgeType]struct{})
	for _, f := range facets {
		for _, e := range f.Edges {
			types[e.Type] = struct{}{}
		}
	}
	diversity := math.Min(1.0, float64(len(types))/3)
	return 0.6 + 0.4*diversity
}

// scoreConfidence combines the four sub-scores at equal weight,
// clamping to [0.1, 1.0] when at least one facet exists. With no
// facets the segmentation is empty and confidence is exactly zero.
func scoreConfidence(facets []Facet, totalAreaPx float64, imagePixels int) float64 {
	if len(facets) == 0 {
		return 0
	}

	confidence := 0.25*FacetCountFactor(len(facets)) +
		0.25*RegularityFactor(facets) +
		0.25*SizeFactor(totalAreaPx, imagePixels) +
		0.25*EdgeDiversityFactor(facets)

	return math.Min(1.0, math.Max(0.1, confidence))
}
