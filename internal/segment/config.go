package segment

import "github.com/roofscope/roofmeasure/internal/imaging"

// Config holds the static tuning tables for the segmentation pipeline.
// A Config is immutable once constructed and is passed explicitly into
// the Segmenter; nothing in the pipeline reads hidden globals, so tests
// can run with alternate tables deterministically.
type Config struct {
	// Bands are the HSV inclusion ranges treated as roof material.
	Bands []imaging.ColorBand

	// MaxFacetAreaRatio rejects any facet larger than this fraction of
	// the image; a single roof plane should not dominate an aerial view.
	MaxFacetAreaRatio float64

	// MinFacetAreaM2 is the smallest physical roof plane worth keeping.
	// Together with the GSD it yields the pixel-area noise floor.
	MinFacetAreaM2 float64

	// MorphRadius is the structuring radius for mask closing/opening
	// (2 approximates a 5x5 element).
	MorphRadius float64

	// CannyLow and CannyHigh are hysteresis thresholds (0-255 scale)
	// for the edge map used to split oversized regions.
	CannyLow  float64
	CannyHigh float64

	// EdgeDilateRadius grows the edge map before it is subtracted from
	// an oversized region, so thin boundaries fully sever it.
	EdgeDilateRadius float64

	// SplitCompactness is the minimum compactness for sub-contours
	// produced by splitting; NormalCompactness is the looser bar for
	// regions that were within size bounds to begin with.
	SplitCompactness  float64
	NormalCompactness float64

	// MaxSplitPasses bounds the splitting work: oversized regions get
	// exactly this many split attempts, and oversized sub-contours left
	// afterwards are discarded rather than re-split.
	MaxSplitPasses int

	// SimplifyTolerance is the Douglas–Peucker tolerance as a fraction
	// of each contour's perimeter.
	SimplifyTolerance float64

	// MaxDimension caps analysis resolution; larger images are
	// downscaled (with GSD correction) before masking. Zero disables.
	MaxDimension int
}

// DefaultConfig returns the production tuning table.
func DefaultConfig() Config {
	return Config{
		Bands:             imaging.DefaultRoofBands(),
		MaxFacetAreaRatio: 0.40,
		MinFacetAreaM2:    10,
		MorphRadius:       2,
		CannyLow:          50,
		CannyHigh:         150,
		EdgeDilateRadius:  1,
		SplitCompactness:  0.15,
		NormalCompactness: 0.10,
		MaxSplitPasses:    1,
		SimplifyTolerance: 0.02,
		MaxDimension:      2048,
	}
}
