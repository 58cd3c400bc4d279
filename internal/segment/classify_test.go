package segment

import (
	"testing"

	"github.com/roofscope/roofmeasure/internal/geometry"
)

// applyRules runs the classification cascade on a prebuilt context.
func applyRules(ctx edgeContext) EdgeType {
	for _, rule := range classifyRules {
		if rule.match(ctx) {
			return rule.kind
		}
	}
	return Unknown
}

func TestClassifyRuleCascade(t *testing.T) {
	tests := []struct {
		name string
		ctx  edgeContext
		want EdgeType
	}{
		{
			"horizontal edge in the bottom band is an eave",
			edgeContext{orientation: 5, atPolyBottom: true},
			Eave,
		},
		{
			"horizontal edge in the top band is a ridge",
			edgeContext{orientation: 176, atPolyTop: true},
			Ridge,
		},
		{
			"horizontal edge below the centroid is an eave",
			edgeContext{orientation: 10, belowCentroid: true},
			Eave,
		},
		{
			"horizontal edge above the centroid is a ridge",
			edgeContext{orientation: 10},
			Ridge,
		},
		{
			"bottom band wins over centroid position",
			edgeContext{orientation: 0, atPolyBottom: true, belowCentroid: false},
			Eave,
		},
		{
			"vertical edge is a hip",
			edgeContext{orientation: 90},
			Hip,
		},
		{
			"vertical edge at the image side is still a hip",
			edgeContext{orientation: 80, atImageSide: true},
			Hip,
		},
		{
			"diagonal at the image side is a rake",
			edgeContext{orientation: 45, atImageSide: true},
			Rake,
		},
		{
			"diagonal at the polygon side is a rake",
			edgeContext{orientation: 45, atPolySide: true},
			Rake,
		},
		{
			"long diagonal gable run is a rake",
			edgeContext{orientation: 45, longDiagonal: true},
			Rake,
		},
		{
			"short radial diagonal is a valley",
			edgeContext{orientation: 45, length: 10, radialCross: 50},
			Valley,
		},
		{
			"short non-radial diagonal is a hip",
			edgeContext{orientation: 45, length: 10, radialCross: 500},
			Hip,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := applyRules(tt.ctx); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestClassifyEdgesRectangle(t *testing.T) {
	// A centered axis-aligned rectangle: top is a ridge, bottom an eave,
	// and the vertical sides read as hips in an overhead view.
	poly := geometry.Polygon{{X: 30, Y: 20}, {X: 70, Y: 20}, {X: 70, Y: 60}, {X: 30, Y: 60}}
	edges := classifyEdges(poly, 200, 200)

	if len(edges) != 4 {
		t.Fatalf("classifyEdges returned %d edges, want 4", len(edges))
	}

	want := []EdgeType{Ridge, Hip, Eave, Hip}
	for i, e := range edges {
		if e.Type != want[i] {
			t.Errorf("edge %d classified %s, want %s", i, e.Type, want[i])
		}
	}
}

func TestClassifyEdgesConfidence(t *testing.T) {
	poly := geometry.Polygon{{X: 30, Y: 20}, {X: 70, Y: 20}, {X: 70, Y: 60}, {X: 30, Y: 60}}
	edges := classifyEdges(poly, 200, 200)

	// Banded horizontal edges score highest; the rest get the base.
	if edges[0].Confidence != bandedHorizConfidence {
		t.Errorf("ridge confidence = %v, want %v", edges[0].Confidence, bandedHorizConfidence)
	}
	if edges[2].Confidence != bandedHorizConfidence {
		t.Errorf("eave confidence = %v, want %v", edges[2].Confidence, bandedHorizConfidence)
	}
	if edges[1].Confidence != baseEdgeConfidence {
		t.Errorf("hip confidence = %v, want %v", edges[1].Confidence, baseEdgeConfidence)
	}

	for i, e := range edges {
		if e.Confidence < 0 || e.Confidence > 1 {
			t.Errorf("edge %d confidence %v outside [0, 1]", i, e.Confidence)
		}
	}
}

func TestClassifyEdgesLengths(t *testing.T) {
	poly := geometry.Polygon{{X: 30, Y: 20}, {X: 70, Y: 20}, {X: 70, Y: 60}, {X: 30, Y: 60}}
	edges := classifyEdges(poly, 200, 200)

	for i, e := range edges {
		want := poly.Edge(i).Length()
		if e.LengthPx != want {
			t.Errorf("edge %d length = %v, want %v", i, e.LengthPx, want)
		}
	}
}

func TestClassifyEdgesDegeneratePolygon(t *testing.T) {
	// Zero-height polygon: relative positions default to the middle
	// instead of dividing by zero.
	poly := geometry.Polygon{{X: 10, Y: 50}, {X: 40, Y: 50}, {X: 25, Y: 50}}
	edges := classifyEdges(poly, 100, 100)
	if len(edges) != 3 {
		t.Fatalf("got %d edges, want 3", len(edges))
	}
	for i, e := range edges {
		if e.Type == Unknown {
			t.Errorf("edge %d classified Unknown", i)
		}
	}
}

func TestBuildEdgeContext(t *testing.T) {
	poly := geometry.Polygon{{X: 30, Y: 20}, {X: 70, Y: 20}, {X: 70, Y: 60}, {X: 30, Y: 60}}
	centroid := poly.Centroid()
	bounds := poly.Bounds()

	top := buildEdgeContext(poly.Edge(0), centroid, bounds, 200)
	if !top.horizontal() || top.vertical() {
		t.Error("top edge not recognized as horizontal")
	}
	if !top.atPolyTop || top.atPolyBottom {
		t.Error("top edge band flags wrong")
	}
	if top.belowCentroid {
		t.Error("top edge flagged below centroid")
	}

	right := buildEdgeContext(poly.Edge(1), centroid, bounds, 200)
	if !right.vertical() {
		t.Error("right edge not recognized as vertical")
	}
	if right.atImageSide {
		t.Error("centered edge flagged at image side")
	}

	// The same edge near the image's right quartile is flagged.
	narrow := buildEdgeContext(poly.Edge(1), centroid, bounds, 80)
	if !narrow.atImageSide {
		t.Error("edge at x=70 of an 80px image not flagged at image side")
	}
}
