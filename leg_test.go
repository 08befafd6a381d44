package specfill

import (
	"encoding/json"
	"testing"
)

func TestLegSourcePrecedence(t *testing.T) {
	data := []byte(`{
		"id": "mixed",
		"mode": "CAR",
		"waypoint_coords": [[-122.08, 37.39]],
		"polyline": "_p~iF~ps|U",
		"relation": 9605483
	}`)
	leg := &Leg{}
	if err := json.Unmarshal(data, leg); err != nil {
		t.Error(err)
		return
	}
	if _, ok := leg.Source().(WaypointSource); !ok {
		t.Errorf("Waypoints must win over polyline and relation, but got %T", leg.Source())
	}

	data = []byte(`{"id": "poly", "polyline": "_p~iF~ps|U", "relation": 9605483}`)
	leg = &Leg{}
	if err := json.Unmarshal(data, leg); err != nil {
		t.Error(err)
		return
	}
	if _, ok := leg.Source().(PolylineSource); !ok {
		t.Errorf("Polyline must win over relation, but got %T", leg.Source())
	}

	data = []byte(`{"id": "rel", "mode": "BUS", "relation": 9605483}`)
	leg = &Leg{}
	if err := json.Unmarshal(data, leg); err != nil {
		t.Error(err)
		return
	}
	relationSource, ok := leg.Source().(RelationSource)
	if !ok {
		t.Errorf("Expected RelationSource, but got %T", leg.Source())
		return
	}
	if relationSource.RelationID != 9605483 {
		t.Errorf("Relation id must be 9605483, but got %d", relationSource.RelationID)
	}

	data = []byte(`{"id": "none", "mode": "WALKING"}`)
	leg = &Leg{}
	if err := json.Unmarshal(data, leg); err != nil {
		t.Error(err)
		return
	}
	if leg.Source() != nil {
		t.Errorf("Leg without route fields must have nil source, but got %T", leg.Source())
	}
}

func TestTripUnmarshal(t *testing.T) {
	data := []byte(`{
		"id": "multimodal",
		"legs": [
			{"id": "walk", "mode": "WALKING", "waypoint_coords": [[1, 2]]},
			{"id": "ride", "mode": "BUS", "relation": 42}
		]
	}`)
	trip := &Trip{}
	if err := json.Unmarshal(data, trip); err != nil {
		t.Error(err)
		return
	}
	if trip.Unimodal() {
		t.Errorf("Trip with legs must not be unimodal")
	}
	if len(trip.Legs) != 2 {
		t.Errorf("Trip must carry 2 legs, but got %d", len(trip.Legs))
		return
	}
	if trip.Legs[1].Mode != MODE_BUS {
		t.Errorf("Second leg mode must be BUS, but got %s", trip.Legs[1].Mode)
	}
	if _, ok := trip.Legs[1].Source().(RelationSource); !ok {
		t.Errorf("Second leg must have a relation source, but got %T", trip.Legs[1].Source())
	}

	data = []byte(`{"id": "single", "mode": "CAR", "polyline": "_p~iF~ps|U"}`)
	trip = &Trip{}
	if err := json.Unmarshal(data, trip); err != nil {
		t.Error(err)
		return
	}
	if !trip.Unimodal() {
		t.Errorf("Trip without legs must be unimodal")
	}
	if _, ok := trip.Leg.Source().(PolylineSource); !ok {
		t.Errorf("Unimodal trip must expose the inline leg's source, but got %T", trip.Leg.Source())
	}
}

func TestModeJSONRoundTrip(t *testing.T) {
	for _, mode := range []Mode{MODE_CAR, MODE_WALKING, MODE_BICYCLING, MODE_BUS, MODE_TRAIN, MODE_SUBWAY, MODE_LIGHT_RAIL} {
		data, err := json.Marshal(mode)
		if err != nil {
			t.Error(err)
			continue
		}
		var parsed Mode
		if err := json.Unmarshal(data, &parsed); err != nil {
			t.Error(err)
			continue
		}
		if parsed != mode {
			t.Errorf("Mode %s must survive a JSON round trip, but got %s", mode, parsed)
		}
	}
	var parsed Mode
	if err := json.Unmarshal([]byte(`"TELEPORT"`), &parsed); err == nil {
		t.Errorf("Unknown mode string must fail to parse")
	}
}
