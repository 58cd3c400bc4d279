package solar

import "gonum.org/v1/gonum/stat"

// AreaStats carries the measured area of one roof segment.
type AreaStats struct {
	AreaMeters2 float64 `json:"areaMeters2"`
}

// SegmentStats describes one roof segment as seen by the solar API.
type SegmentStats struct {
	PitchDegrees float64   `json:"pitchDegrees"`
	Stats        AreaStats `json:"stats"`
}

// BuildingStats carries whole-building ground-truth figures.
type BuildingStats struct {
	AreaMeters2 float64 `json:"areaMeters2"`
}

// BuildingInsights is the subset of the solar API response the
// measurement calculator consumes.
type BuildingInsights struct {
	RoofSegmentStats []SegmentStats `json:"roofSegmentStats"`
	BuildingStats    *BuildingStats `json:"buildingStats,omitempty"`
	ImageryQuality   string         `json:"imageryQuality,omitempty"`
}

// AreaWeightedPitch returns the per-segment pitch averaged by segment
// area. The boolean is false when no segment contributes positive
// area, in which case the pitch value is meaningless.
func (b *BuildingInsights) AreaWeightedPitch() (float64, bool) {
	if b == nil || len(b.RoofSegmentStats) == 0 {
		return 0, false
	}

	pitches := make([]float64, 0, len(b.RoofSegmentStats))
	areas := make([]float64, 0, len(b.RoofSegmentStats))
	var totalArea float64
	for _, s := range b.RoofSegmentStats {
		pitches = append(pitches, s.PitchDegrees)
		areas = append(areas, s.Stats.AreaMeters2)
		totalArea += s.Stats.AreaMeters2
	}
	if totalArea <= 0 {
		return 0, false
	}
	return stat.Mean(pitches, areas), true
}
