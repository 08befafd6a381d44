package specfill

import (
	"encoding/json"
	"testing"
)

func TestPrepareWKTLinestring(t *testing.T) {
	path := []Coord{{1.5, 2.5}, {3.5, 4.5}}
	correct := "LINESTRING(1.5 2.5,3.5 4.5)"
	wktStr := PrepareWKTLinestring(path)
	if wktStr != correct {
		t.Errorf("WKT line should be '%s', but got '%s'", correct, wktStr)
	}
}

func TestPrepareGeoJSONRoutes(t *testing.T) {
	spec := &EvalSpec{
		EvaluationTrips: []*Trip{
			{
				Leg: Leg{
					ID:          "ready",
					Mode:        MODE_CAR,
					RouteCoords: []Coord{{1, 2}, {3, 4}, {5, 6}},
				},
			},
			{
				Leg: Leg{ID: "unresolved"},
			},
		},
	}
	data, err := PrepareGeoJSONRoutes(spec)
	if err != nil {
		t.Error(err)
		return
	}
	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Type        string      `json:"type"`
				Coordinates [][]float64 `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]interface{} `json:"properties"`
		} `json:"features"`
	}
	if err := json.Unmarshal(data, &fc); err != nil {
		t.Error(err)
		return
	}
	if fc.Type != "FeatureCollection" {
		t.Errorf("Type must be FeatureCollection, but got '%s'", fc.Type)
	}
	if len(fc.Features) != 1 {
		t.Errorf("Only resolved legs must be exported, expected 1 feature but got %d", len(fc.Features))
		return
	}
	feature := fc.Features[0]
	if feature.Geometry.Type != "LineString" {
		t.Errorf("Geometry must be LineString, but got '%s'", feature.Geometry.Type)
	}
	if len(feature.Geometry.Coordinates) != 3 {
		t.Errorf("Geometry must carry 3 points, but got %d", len(feature.Geometry.Coordinates))
	}
	if feature.Properties["leg"] != "ready" {
		t.Errorf("Feature must carry leg id 'ready', but got %v", feature.Properties["leg"])
	}
	if feature.Properties["mode"] != "CAR" {
		t.Errorf("Feature must carry mode CAR, but got %v", feature.Properties["mode"])
	}
}
