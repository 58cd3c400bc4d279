package segment

import "github.com/roofscope/roofmeasure/internal/geometry"

// EdgeType is the roofing role of a polygon edge. The set is closed;
// every consumer switches exhaustively over these values.
type EdgeType string

const (
	// Ridge is the horizontal top edge where two roof planes meet.
	Ridge EdgeType = "ridge"
	// Hip is a sloped edge where two planes meet at an outward corner.
	Hip EdgeType = "hip"
	// Valley is a sloped edge where two planes meet at an inward corner.
	Valley EdgeType = "valley"
	// Eave is the horizontal bottom edge of a roof plane (gutter line).
	Eave EdgeType = "eave"
	// Rake is a sloped edge along a gable end.
	Rake EdgeType = "rake"
	// StepFlashing is an edge running against a wall.
	StepFlashing EdgeType = "step_flashing"
	// Unknown marks an edge no rule matched.
	Unknown EdgeType = "unknown"
)

// Edge is a classified facet boundary segment.
type Edge struct {
	Type       EdgeType       `json:"edge_type"`
	Start      geometry.Point `json:"start"`
	End        geometry.Point `json:"end"`
	LengthPx   float64        `json:"length_px"`
	Confidence float64        `json:"confidence"` // 0..1
}

// Facet is a single planar roof surface bounded by a simplified
// polygon.
//
// Invariant: len(Edges) == len(Vertices); edge i connects vertex i to
// vertex (i+1) mod n. AreaPx is the area of the original traced
// contour, not the simplified polygon, so simplification never loses
// area precision.
type Facet struct {
	ID            int              `json:"facet_id"`
	Vertices      geometry.Polygon `json:"vertices"`
	AreaPx        float64          `json:"area_px"`
	PitchDegrees  *float64         `json:"pitch_degrees"` // nil when not estimable
	AspectDegrees float64          `json:"aspect_degrees"`
	Edges         []Edge           `json:"edges"`
}

// BoundingBox is the axis-aligned box around all detected facets,
// as (x, y, width, height) in pixels.
type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Result is the complete segmentation of one image.
//
// Invariant: TotalAreaPx equals the sum of all facet areas; each mask
// pixel belongs to at most one accepted facet, so there is no double
// counting.
type Result struct {
	Facets           []Facet        `json:"facets"`
	Edges            []Edge         `json:"edges"` // flattened across facets
	TotalAreaPx      float64        `json:"total_area_pixels"`
	BoundingBox      BoundingBox    `json:"bounding_box"`
	Confidence       float64        `json:"confidence"` // 0..1, 0 when no facets
	ProcessingTimeMs float64        `json:"processing_time_ms"`
	ImageWidth       int            `json:"image_width"`
	ImageHeight      int            `json:"image_height"`
	GSDMeters        float64        `json:"gsd_meters"`
	Features         map[string]int `json:"features,omitempty"` // chimneys, skylights, vents, pipes
}
