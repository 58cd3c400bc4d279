package segment

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/roofscope/roofmeasure/internal/geometry"
	"github.com/roofscope/roofmeasure/internal/imaging"
)

// Segmenter runs the roof segmentation pipeline. It holds only
// immutable configuration and a logger; Segment is a pure function of
// its arguments and safe to call concurrently.
type Segmenter struct {
	cfg Config
	log *zap.SugaredLogger
}

// New creates a Segmenter with the given configuration. A nil logger
// keeps the pipeline silent.
func New(cfg Config, log *zap.SugaredLogger) *Segmenter {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Segmenter{cfg: cfg, log: log}
}

// Segment extracts roof facets and classified edges from raw aerial
// image bytes.
//
// Parameters:
//   - imageData: PNG/JPEG/GIF bytes of an oblique or top-down aerial
//     view.
//   - gsdMeters: Ground sample distance, the real-world meters covered by
//     one pixel. Must be positive.
//   - footprint: Optional building outline in pixel coordinates of the
//     supplied image; when present, detection is constrained to it.
//     Pass nil to search the whole frame.
//
// An image with no roof-colored regions is not an error: the result has
// no facets and confidence 0.0, and the measurement calculator accepts
// it.
func (s *Segmenter) Segment(imageData []byte, gsdMeters float64, footprint geometry.Polygon) (*Result, error) {
	start := time.Now()

	if gsdMeters <= 0 {
		return nil, fmt.Errorf("ground sample distance must be positive, got %g", gsdMeters)
	}

	img, err := imaging.Decode(imageData)
	if err != nil {
		return nil, fmt.Errorf("decode aerial image: %w", err)
	}

	img, scale := imaging.Downscale(img, s.cfg.MaxDimension)
	if scale != 1.0 {
		gsdMeters /= scale
		footprint = scalePolygon(footprint, scale)
		s.log.Debugw("downscaled input image", "scale", scale, "effective_gsd_m", gsdMeters)
	}

	width := img.Bounds().Dx()
	height := img.Bounds().Dy()

	// Stage 1: color mask.
	mask := imaging.BuildRoofMask(img, s.cfg.Bands)
	mask = imaging.CloseOpen(mask, s.cfg.MorphRadius)
	if len(footprint) >= 3 {
		mask = mask.And(imaging.FillPolygon(footprint, width, height))
	}

	// Stage 2: contours, with edge-guided splitting of oversized
	// regions. The edge map covers the whole image, not just the mask,
	// so boundaries against same-colored non-roof surfaces still sever.
	edgeMap := imaging.Dilate(
		imaging.CannyMask(img, s.cfg.CannyLow, s.cfg.CannyHigh),
		s.cfg.EdgeDilateRadius,
	)

	minAreaPx := math.Pow(s.cfg.MinFacetAreaM2/gsdMeters, 2)
	maxAreaPx := float64(width*height) * s.cfg.MaxFacetAreaRatio

	contours := s.collectContours(mask, edgeMap, minAreaPx, maxAreaPx)
	s.log.Debugw("contour extraction complete",
		"accepted", len(contours), "min_area_px", minAreaPx, "max_area_px", maxAreaPx)

	if len(contours) == 0 {
		return &Result{
			Facets:           []Facet{},
			Edges:            []Edge{},
			BoundingBox:      BoundingBox{Width: float64(width), Height: float64(height)},
			Confidence:       0.0,
			ProcessingTimeMs: float64(time.Since(start).Microseconds()) / 1000,
			ImageWidth:       width,
			ImageHeight:      height,
			GSDMeters:        gsdMeters,
		}, nil
	}

	// Stages 3-5: polygons, edge roles, pitch and aspect.
	gradY := imaging.VerticalSobel(imaging.Luminance(img))

	facets := make([]Facet, 0, len(contours))
	allEdges := make([]Edge, 0)
	var totalArea float64

	for i, c := range contours {
		tolerance := s.cfg.SimplifyTolerance * c.perimeter
		poly := geometry.Simplify(c.points, tolerance)

		edges := classifyEdges(poly, width, height)
		allEdges = append(allEdges, edges...)

		facets = append(facets, Facet{
			ID:            i,
			Vertices:      poly,
			AreaPx:        c.area,
			PitchDegrees:  estimatePitch(gradY, c.pixels),
			AspectDegrees: estimateAspect(poly),
			Edges:         edges,
		})
		totalArea += c.area
	}

	return &Result{
		Facets:           facets,
		Edges:            allEdges,
		TotalAreaPx:      totalArea,
		BoundingBox:      facetsBoundingBox(facets),
		Confidence:       scoreConfidence(facets, totalArea, width*height),
		ProcessingTimeMs: float64(time.Since(start).Microseconds()) / 1000,
		ImageWidth:       width,
		ImageHeight:      height,
		GSDMeters:        gsdMeters,
	}, nil
}

// collectContours filters raw mask contours by size and compactness,
// splitting oversized regions along the dilated edge map.
//
// Splitting runs at most cfg.MaxSplitPasses times per region (one, by
// default); sub-contours that are still oversized afterwards are
// discarded rather than re-split, which bounds worst-case work on
// pathological masks.
func (s *Segmenter) collectContours(mask, edgeMap *imaging.Mask, minAreaPx, maxAreaPx float64) []contour {
	var valid []contour

	for _, c := range extractContours(mask) {
		switch {
		case c.area < minAreaPx:
			// Noise.
		case c.area > maxAreaPx:
			if s.cfg.MaxSplitPasses > 0 {
				subs := s.splitContour(c, edgeMap, minAreaPx, maxAreaPx)
				s.log.Debugw("split oversized region", "area_px", c.area, "kept_subcontours", len(subs))
				valid = append(valid, subs...)
			}
		default:
			// Compactness separates roof planes from elongated
			// same-colored surfaces like roads. Degenerate contours
			// (zero perimeter) are kept by default.
			if c.perimeter == 0 || c.compactness() > s.cfg.NormalCompactness {
				valid = append(valid, c)
			}
		}
	}
	return valid
}

// splitContour severs an oversized region along strong visual
// boundaries: the dilated edge map is subtracted from the region's
// raster and the remainder is re-traced. Sub-contours are kept only
// when sized like a facet and compact enough not to be a road.
func (s *Segmenter) splitContour(c contour, edgeMap *imaging.Mask, minAreaPx, maxAreaPx float64) []contour {
	remainder := c.toMask().Subtract(edgeMap)

	var out []contour
	for _, sc := range extractContours(remainder) {
		if sc.area >= minAreaPx && sc.area <= maxAreaPx && sc.compactness() > s.cfg.SplitCompactness {
			out = append(out, sc)
		}
	}
	return out
}

// facetsBoundingBox returns the axis-aligned box around every facet
// vertex, as (x, y, width, height).
func facetsBoundingBox(facets []Facet) BoundingBox {
	first := true
	var minX, minY, maxX, maxY float64
	for _, f := range facets {
		for _, v := range f.Vertices {
			if first {
				minX, maxX = v.X, v.X
				minY, maxY = v.Y, v.Y
				first = false
				continue
			}
			minX = math.Min(minX, v.X)
			maxX = math.Max(maxX, v.X)
			minY = math.Min(minY, v.Y)
			maxY = math.Max(maxY, v.Y)
		}
	}
	if first {
		return BoundingBox{}
	}
	return BoundingBox{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// scalePolygon scales footprint coordinates after image downscaling.
func scalePolygon(poly geometry.Polygon, scale float64) geometry.Polygon {
	if len(poly) == 0 {
		return poly
	}
	out := make(geometry.Polygon, len(poly))
	for i, p := range poly {
		out[i] = geometry.Point{X: p.X * scale, Y: p.Y * scale}
	}
	return out
}
