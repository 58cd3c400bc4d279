package solar

import (
	"encoding/json"
	"math"
	"testing"
)

func TestAreaWeightedPitch(t *testing.T) {
	b := &BuildingInsights{
		RoofSegmentStats: []SegmentStats{
			{PitchDegrees: 20, Stats: AreaStats{AreaMeters2: 100}},
			{PitchDegrees: 30, Stats: AreaStats{AreaMeters2: 300}},
		},
	}

	pitch, ok := b.AreaWeightedPitch()
	if !ok {
		t.Fatal("AreaWeightedPitch reported no data")
	}
	// (20*100 + 30*300) / 400 = 27.5
	if math.Abs(pitch-27.5) > 1e-9 {
		t.Errorf("weighted pitch = %v, want 27.5", pitch)
	}
}

func TestAreaWeightedPitchSingleValued(t *testing.T) {
	// Equal pitches must average to exactly that pitch.
	b := &BuildingInsights{
		RoofSegmentStats: []SegmentStats{
			{PitchDegrees: 25, Stats: AreaStats{AreaMeters2: 150}},
			{PitchDegrees: 25, Stats: AreaStats{AreaMeters2: 150}},
		},
	}
	pitch, ok := b.AreaWeightedPitch()
	if !ok || pitch != 25.0 {
		t.Errorf("pitch = %v/%v, want exactly 25.0", pitch, ok)
	}
}

func TestAreaWeightedPitchNoData(t *testing.T) {
	var nilInsights *BuildingInsights
	if _, ok := nilInsights.AreaWeightedPitch(); ok {
		t.Error("nil receiver reported data")
	}

	if _, ok := (&BuildingInsights{}).AreaWeightedPitch(); ok {
		t.Error("empty insights reported data")
	}

	zeroArea := &BuildingInsights{
		RoofSegmentStats: []SegmentStats{{PitchDegrees: 25}},
	}
	if _, ok := zeroArea.AreaWeightedPitch(); ok {
		t.Error("zero-area segments reported data")
	}
}

func TestBuildingInsightsJSON(t *testing.T) {
	// Field names match the upstream response.
	raw := `{
		"roofSegmentStats": [
			{"pitchDegrees": 18.5, "stats": {"areaMeters2": 42.0}}
		],
		"buildingStats": {"areaMeters2": 120.5},
		"imageryQuality": "HIGH"
	}`

	var b BuildingInsights
	if err := json.Unmarshal([]byte(raw), &b); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(b.RoofSegmentStats) != 1 || b.RoofSegmentStats[0].PitchDegrees != 18.5 {
		t.Errorf("segments = %+v", b.RoofSegmentStats)
	}
	if b.BuildingStats == nil || b.BuildingStats.AreaMeters2 != 120.5 {
		t.Errorf("building stats = %+v", b.BuildingStats)
	}
	if b.ImageryQuality != "HIGH" {
		t.Errorf("imagery quality = %q", b.ImageryQuality)
	}
}
