package measure

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/roofscope/roofmeasure/internal/segment"
	"github.com/roofscope/roofmeasure/internal/solar"
)

// ErrInvalidSegmentation marks a segmentation input missing required
// structure. Detect with errors.Is.
var ErrInvalidSegmentation = errors.New("invalid segmentation input")

const metersToFeet = 3.28084

// Config holds the calculator's static factors. Immutable once
// constructed; pass alternate tables for testing.
type Config struct {
	// Waste factors for material ordering.
	ShingleWasteFactor      float64 // shingles, applied to roof squares
	UnderlaymentWasteFactor float64 // underlayment, applied to area
	LinearWasteFactor       float64 // all linear materials

	// AreaCalibrationFactor compensates for eave/rake overhangs not
	// visible from directly overhead and for systematic segmentation
	// undercount. Calibrated against reference roof reports. Applied
	// only when ApplyCalibration is set.
	AreaCalibrationFactor float64
	ApplyCalibration      bool

	// DefaultPitchDegrees is used when neither hints nor facets nor an
	// elevation grid yield a pitch. 26.57° is the 6-in-12 equivalent.
	DefaultPitchDegrees float64

	// Warning thresholds for implausible total areas, in sqft.
	MinPlausibleAreaSqft float64
	MaxPlausibleAreaSqft float64
}

// DefaultConfig returns the production factors.
func DefaultConfig() Config {
	return Config{
		ShingleWasteFactor:      1.15,
		UnderlaymentWasteFactor: 1.10,
		LinearWasteFactor:       1.10,
		AreaCalibrationFactor:   1.13,
		ApplyCalibration:        true,
		DefaultPitchDegrees:     26.57,
		MinPlausibleAreaSqft:    500,
		MaxPlausibleAreaSqft:    10000,
	}
}

// Calculator converts segmentations into real-world measurements.
// Stateless between calls; safe for concurrent use.
type Calculator struct {
	cfg       Config
	gsdMeters float64
	log       *zap.SugaredLogger
}

// New creates a Calculator. gsdMeters is the fallback ground sample
// distance, used when a segmentation does not carry its own effective
// GSD. A nil logger keeps the calculator silent.
func New(gsdMeters float64, cfg Config, log *zap.SugaredLogger) *Calculator {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Calculator{cfg: cfg, gsdMeters: gsdMeters, log: log}
}

// pitchInfo bundles the three representations of one pitch value.
type pitchInfo struct {
	degrees  float64
	notation string  // rise/run, e.g. "6/12"
	factor   float64 // 1 / cos(degrees)
}

// pitchDegreesToInfo derives notation and slope factor from degrees.
func pitchDegreesToInfo(degrees float64) pitchInfo {
	rise := int(math.Round(math.Tan(degrees*math.Pi/180) * 12))
	return pitchInfo{
		degrees:  degrees,
		notation: fmt.Sprintf("%d/12", rise),
		factor:   1 / math.Cos(degrees*math.Pi/180),
	}
}

// Calculate converts a segmentation into calibrated measurements.
//
// hints and elevation are optional and read-only; pass nil when absent.
// The elevation grid is a square, odd-sized grid of meter elevations
// centered on the property, with cell spacing equal to the GSD.
//
// Identical inputs always produce identical output, including all
// rounding, so repeated calls are byte-comparable.
func (c *Calculator) Calculate(seg *segment.Result, hints *solar.BuildingInsights, elevation [][]float64) (*Result, error) {
	if err := validateSegmentation(seg); err != nil {
		return nil, err
	}

	gsdMeters := c.gsdMeters
	if seg.GSDMeters > 0 {
		gsdMeters = seg.GSDMeters
	}
	if gsdMeters <= 0 {
		return nil, fmt.Errorf("%w: no usable ground sample distance", ErrInvalidSegmentation)
	}
	gsdFeet := gsdMeters * metersToFeet
	pixelsToSqft := gsdFeet * gsdFeet

	dataSources := []string{"aerial_imagery"}
	if hints != nil {
		dataSources = append(dataSources, "solar_api")
	}

	pitch, pitchSource := c.resolvePitch(seg.Facets, hints, elevation, gsdMeters)
	if pitchSource == "elevation_grid" {
		dataSources = append(dataSources, "elevation_grid")
	}

	flatAreaSqft := seg.TotalAreaPx * pixelsToSqft
	totalAreaSqft := flatAreaSqft * pitch.factor
	if c.cfg.ApplyCalibration {
		totalAreaSqft *= c.cfg.AreaCalibrationFactor
		dataSources = append(dataSources, "calibration_applied")
	}
	roofSquares := totalAreaSqft / 100

	linear := c.linearMeasurements(seg.Edges, gsdFeet)

	result := &Result{
		TotalAreaSqft:    round1(totalAreaSqft),
		RoofSquares:      round2(roofSquares),
		PredominantPitch: pitch.notation,
		PitchDegrees:     round1(pitch.degrees),
		PitchFactor:      round3(pitch.factor),
		FacetCount:       len(seg.Facets),
		Facets:           facetDetails(seg.Facets, pitch, pixelsToSqft),
		Ridge:            linear[segment.Ridge],
		Hip:              linear[segment.Hip],
		Valley:           linear[segment.Valley],
		Eave:             linear[segment.Eave],
		Rake:             linear[segment.Rake],
		StepFlashing:     linear[segment.StepFlashing],
		Features:         featureCounts(seg.Features),
		DataSources:      dataSources,
	}

	// Derived linear quantities.
	eaveFt := linear[segment.Eave].LengthFt
	rakeFt := linear[segment.Rake].LengthFt
	result.DripEdge = LinearMeasurement{
		LengthFt:   round1(eaveFt + rakeFt),
		Confidence: ConfidenceEstimated,
		Source:     SourceCalculated,
	}
	result.Starter = LinearMeasurement{
		LengthFt:   round1(eaveFt),
		Confidence: ConfidenceEstimated,
		Source:     SourceCalculated,
	}

	// Material recommendations with waste factors.
	ridgeHipFt := linear[segment.Ridge].LengthFt + linear[segment.Hip].LengthFt
	result.RecommendedShinglesSquares = round1(roofSquares * c.cfg.ShingleWasteFactor)
	result.RecommendedUnderlaymentSqft = round0(totalAreaSqft * c.cfg.UnderlaymentWasteFactor)
	result.RecommendedRidgeCapLf = round0(ridgeHipFt * c.cfg.LinearWasteFactor)
	result.RecommendedStarterLf = round0(eaveFt * c.cfg.LinearWasteFactor)
	result.RecommendedDripEdgeLf = round0(result.DripEdge.LengthFt * c.cfg.LinearWasteFactor)
	result.RecommendedIceWaterLf = round0((eaveFt + linear[segment.Valley].LengthFt) * c.cfg.LinearWasteFactor)

	result.Warnings = c.validate(result)
	result.OverallConfidence = overallConfidence(seg.Confidence, dataSources, result)

	c.log.Debugw("measurements calculated",
		"total_area_sqft", result.TotalAreaSqft,
		"pitch", result.PredominantPitch,
		"confidence", result.OverallConfidence)

	return result, nil
}

// validateSegmentation rejects structurally broken inputs. Optional
// fields may be absent, but facet/edge structure must be coherent.
func validateSegmentation(seg *segment.Result) error {
	if seg == nil {
		return fmt.Errorf("%w: nil result", ErrInvalidSegmentation)
	}
	if math.IsNaN(seg.TotalAreaPx) || seg.TotalAreaPx < 0 {
		return fmt.Errorf("%w: total area %g", ErrInvalidSegmentation, seg.TotalAreaPx)
	}
	for _, f := range seg.Facets {
		if len(f.Vertices) < 3 {
			return fmt.Errorf("%w: facet %d has %d vertices", ErrInvalidSegmentation, f.ID, len(f.Vertices))
		}
		if len(f.Edges) != len(f.Vertices) {
			return fmt.Errorf("%w: facet %d has %d edges for %d vertices",
				ErrInvalidSegmentation, f.ID, len(f.Edges), len(f.Vertices))
		}
	}
	return nil
}

// resolvePitch picks the predominant pitch from the best available
// source: solar hints (area-weighted), then facet estimates, then the
// elevation grid, then the residential default.
func (c *Calculator) resolvePitch(facets []segment.Facet, hints *solar.BuildingInsights, elevation [][]float64, gsdMeters float64) (pitchInfo, string) {
	if weighted, ok := hints.AreaWeightedPitch(); ok {
		return pitchDegreesToInfo(weighted), "solar_api"
	}

	var pitches []float64
	for _, f := range facets {
		if f.PitchDegrees != nil {
			pitches = append(pitches, *f.PitchDegrees)
		}
	}
	if len(pitches) > 0 {
		return pitchDegreesToInfo(stat.Mean(pitches, nil)), "segmentation"
	}

	if deg, ok := elevationPitch(elevation, gsdMeters); ok {
		return pitchDegreesToInfo(deg), "elevation_grid"
	}

	return pitchDegreesToInfo(c.cfg.DefaultPitchDegrees), "default"
}

// elevationPitch estimates slope from an elevation grid: the mean
// absolute rise between adjacent cells over the cell spacing, as an
// angle, clamped to the same [5°, 45°] band as the image-based
// estimate. Returns false for grids too small to differentiate.
func elevationPitch(grid [][]float64, spacingMeters float64) (float64, bool) {
	if len(grid) < 2 || spacingMeters <= 0 {
		return 0, false
	}

	var slopes []float64
	for y := 0; y < len(grid); y++ {
		for x := 0; x < len(grid[y]); x++ {
			if x+1 < len(grid[y]) {
				slopes = append(slopes, math.Abs(grid[y][x+1]-grid[y][x])/spacingMeters)
			}
			if y+1 < len(grid) && x < len(grid[y+1]) {
				slopes = append(slopes, math.Abs(grid[y+1][x]-grid[y][x])/spacingMeters)
			}
		}
	}
	if len(slopes) == 0 {
		return 0, false
	}

	deg := math.Atan(stat.Mean(slopes, nil)) * 180 / math.Pi
	return math.Min(45, math.Max(5, deg)), true
}

// linearMeasurements sums classified edge lengths per type and grades
// each total by the mean detection confidence of its edges.
func (c *Calculator) linearMeasurements(edges []segment.Edge, gsdFeet float64) map[segment.EdgeType]LinearMeasurement {
	totals := make(map[segment.EdgeType]float64)
	confidences := make(map[segment.EdgeType][]float64)

	for _, e := range edges {
		switch e.Type {
		case segment.Ridge, segment.Hip, segment.Valley, segment.Eave, segment.Rake, segment.StepFlashing:
			totals[e.Type] += e.LengthPx * gsdFeet
			confidences[e.Type] = append(confidences[e.Type], e.Confidence)
		case segment.Unknown:
			// Unclassified edges contribute to no linear total.
		}
	}

	out := make(map[segment.EdgeType]LinearMeasurement)
	for _, t := range []segment.EdgeType{
		segment.Ridge, segment.Hip, segment.Valley,
		segment.Eave, segment.Rake, segment.StepFlashing,
	} {
		confs := confidences[t]
		var avg float64
		if len(confs) > 0 {
			avg = stat.Mean(confs, nil)
		}

		level := ConfidenceNone
		if avg > 0.7 {
			level = ConfidenceHigh
		} else if avg > 0.4 {
			level = ConfidenceEstimated
		}

		source := SourceEstimated
		if len(confs) > 0 {
			source = SourceEdgeDetection
		}

		out[t] = LinearMeasurement{
			LengthFt:   round1(totals[t]),
			Confidence: level,
			Source:     source,
		}
	}
	return out
}

// facetDetails converts facets to real-world detail rows. Facets
// without their own pitch estimate inherit the predominant pitch.
func facetDetails(facets []segment.Facet, pitch pitchInfo, pixelsToSqft float64) []FacetDetail {
	details := make([]FacetDetail, 0, len(facets))
	for _, f := range facets {
		deg := pitch.degrees
		if f.PitchDegrees != nil {
			deg = *f.PitchDegrees
		}
		details = append(details, FacetDetail{
			FacetID:       f.ID,
			AreaSqft:      round1(f.AreaPx * pixelsToSqft * pitch.factor),
			PitchDegrees:  round1(deg),
			AspectDegrees: round1(f.AspectDegrees),
			EdgeCount:     len(f.Edges),
		})
	}
	return details
}

// featureCounts reads optional feature tallies from the segmentation.
func featureCounts(features map[string]int) FeatureCounts {
	return FeatureCounts{
		Chimneys:  features["chimneys"],
		Skylights: features["skylights"],
		Vents:     features["vents"],
		Pipes:     features["pipes"],
	}
}

// validate flags implausible results for manual review.
func (c *Calculator) validate(r *Result) []string {
	warnings := []string{}

	if r.TotalAreaSqft < c.cfg.MinPlausibleAreaSqft {
		warnings = append(warnings, fmt.Sprintf("Total roof area seems low (<%.0f sqft)", c.cfg.MinPlausibleAreaSqft))
	} else if r.TotalAreaSqft > c.cfg.MaxPlausibleAreaSqft {
		warnings = append(warnings, fmt.Sprintf("Total roof area seems high (>%.0f sqft)", c.cfg.MaxPlausibleAreaSqft))
	}

	if r.Ridge.LengthFt == 0 {
		warnings = append(warnings, "Ridge length not detected - manual verification recommended")
	}
	if r.Eave.LengthFt == 0 {
		warnings = append(warnings, "Eave length not detected - manual verification recommended")
	}

	return warnings
}

// overallConfidence combines segmentation confidence with a bonus for
// corroborating data sources and a penalty per missing linear
// measurement, clamped to [0, 1].
func overallConfidence(segConfidence float64, dataSources []string, r *Result) float64 {
	confidence := segConfidence
	if len(dataSources) > 1 {
		confidence += 0.1
	}

	for _, m := range []LinearMeasurement{
		r.Ridge, r.Hip, r.Valley, r.Eave, r.Rake, r.DripEdge, r.Starter, r.StepFlashing,
	} {
		if m.Confidence == ConfidenceNone {
			confidence -= 0.05
		}
	}

	return round2(math.Min(1.0, math.Max(0.0, confidence)))
}

func round0(v float64) float64 { return math.Round(v) }
func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
