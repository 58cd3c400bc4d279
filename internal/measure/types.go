package measure

// ConfidenceLevel grades how much trust a linear measurement deserves.
type ConfidenceLevel string

const (
	ConfidenceHigh      ConfidenceLevel = "HIGH"
	ConfidenceEstimated ConfidenceLevel = "ESTIMATED"
	ConfidenceNone      ConfidenceLevel = "NONE"
)

// Source records where a linear measurement came from.
type Source string

const (
	SourceEdgeDetection Source = "edge_detection" // summed from classified edges
	SourceCalculated    Source = "calculated"     // derived from other measurements
	SourceEstimated     Source = "estimated"      // no detected edges of this type
)

// LinearMeasurement is one linear roof quantity in feet with its
// provenance and confidence grade.
type LinearMeasurement struct {
	LengthFt   float64         `json:"length_ft"`
	Confidence ConfidenceLevel `json:"confidence"`
	Source     Source          `json:"source"`
}

// FacetDetail summarizes one facet in real-world units.
type FacetDetail struct {
	FacetID       int     `json:"facet_id"`
	AreaSqft      float64 `json:"area_sqft"`
	PitchDegrees  float64 `json:"pitch_degrees"`
	AspectDegrees float64 `json:"aspect_degrees"`
	EdgeCount     int     `json:"edge_count"`
}

// FeatureCounts tallies roof penetrations and obstructions.
type FeatureCounts struct {
	Chimneys  int `json:"chimneys"`
	Skylights int `json:"skylights"`
	Vents     int `json:"vents"`
	Pipes     int `json:"pipes"`
}

// Result is the complete measurement report for one roof.
type Result struct {
	// Area.
	TotalAreaSqft float64 `json:"total_area_sqft"`
	RoofSquares   float64 `json:"roof_squares"` // total area / 100

	// Pitch.
	PredominantPitch string  `json:"predominant_pitch"` // rise/run, e.g. "6/12"
	PitchDegrees     float64 `json:"pitch_degrees"`
	PitchFactor      float64 `json:"pitch_factor"` // flat-to-slope area multiplier

	// Facets.
	FacetCount int           `json:"facet_count"`
	Facets     []FacetDetail `json:"facets"`

	// Linear measurements.
	Ridge        LinearMeasurement `json:"ridge"`
	Hip          LinearMeasurement `json:"hip"`
	Valley       LinearMeasurement `json:"valley"`
	Eave         LinearMeasurement `json:"eave"`
	Rake         LinearMeasurement `json:"rake"`
	DripEdge     LinearMeasurement `json:"drip_edge"` // eave + rake
	Starter      LinearMeasurement `json:"starter"`   // eave
	StepFlashing LinearMeasurement `json:"step_flashing"`

	// Features.
	Features FeatureCounts `json:"features"`

	// Material recommendations, waste factors applied.
	RecommendedShinglesSquares  float64 `json:"recommended_shingles_squares"`
	RecommendedUnderlaymentSqft float64 `json:"recommended_underlayment_sqft"`
	RecommendedRidgeCapLf       float64 `json:"recommended_ridge_cap_lf"`
	RecommendedStarterLf        float64 `json:"recommended_starter_lf"`
	RecommendedDripEdgeLf       float64 `json:"recommended_drip_edge_lf"`
	RecommendedIceWaterLf       float64 `json:"recommended_ice_water_lf"`

	// Quality.
	OverallConfidence float64  `json:"overall_confidence"`
	DataSources       []string `json:"data_sources"`
	Warnings          []string `json:"warnings"`
}
