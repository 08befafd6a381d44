package specfill

import (
	"encoding/json"

	"github.com/paulmach/osm"
)

// RouteSource is the declared source of a leg's route geometry. Exactly one
// variant is picked per leg, at parse time.
type RouteSource interface {
	isRouteSource()
}

// WaypointSource routes the leg through an ordered waypoint chain. NodeIDs
// hold unresolved OSM node references, Coords already concrete (lon, lat)
// pairs; NodeIDs win when both are present.
type WaypointSource struct {
	NodeIDs []osm.NodeID
	Coords  []Coord
}

// PolylineSource carries route geometry as an encoded polyline, e.g. copied
// from an external trip planner response.
type PolylineSource struct {
	Encoded string
}

// RelationSource derives route geometry from a public-transit route relation,
// trimmed between the leg's start and end stop nodes.
type RelationSource struct {
	RelationID osm.RelationID
}

func (WaypointSource) isRouteSource() {}
func (PolylineSource) isRouteSource() {}
func (RelationSource) isRouteSource() {}

// Leg One unimodal segment of a trip: single travel mode, single route
type Leg struct {
	ID       string    `json:"id,omitempty"`
	Name     string    `json:"name,omitempty"`
	Mode     Mode      `json:"mode,omitempty"`
	StartLoc *Location `json:"start_loc,omitempty"`
	EndLoc   *Location `json:"end_loc,omitempty"`

	RouteWaypoints []osm.NodeID   `json:"route_waypoints,omitempty"`
	WaypointCoords []Coord        `json:"waypoint_coords,omitempty"`
	Polyline       string         `json:"polyline,omitempty"`
	Relation       osm.RelationID `json:"relation,omitempty"`

	// RouteCoords is the resolved route geometry in (lon, lat) order. Set
	// once by the resolver, never mutated afterwards.
	RouteCoords []Coord `json:"route_coords,omitempty"`

	source RouteSource
}

func (leg *Leg) UnmarshalJSON(data []byte) error {
	type legAlias Leg
	var alias legAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	*leg = Leg(alias)
	leg.source = leg.buildSource()
	return nil
}

// buildSource picks the declared route source by field presence. Precedence
// when a leg declares several: waypoints over polyline over relation.
func (leg *Leg) buildSource() RouteSource {
	switch {
	case len(leg.RouteWaypoints) > 0 || len(leg.WaypointCoords) > 0:
		return WaypointSource{NodeIDs: leg.RouteWaypoints, Coords: leg.WaypointCoords}
	case leg.Polyline != "":
		return PolylineSource{Encoded: leg.Polyline}
	case leg.Relation != 0:
		return RelationSource{RelationID: leg.Relation}
	}
	return nil
}

// Source returns the leg's route source variant, or nil when the leg declares
// none. Legs built in code rather than parsed get their variant on first use.
func (leg *Leg) Source() RouteSource {
	if leg.source == nil {
		leg.source = leg.buildSource()
	}
	return leg.source
}

// Trip One evaluation trip. Multimodal trips carry explicit legs; a unimodal trip is itself a single leg.
type Trip struct {
	Leg
	Legs []*Leg `json:"legs,omitempty"`
}

// UnmarshalJSON fills both the inline leg fields and the legs list. Needed
// explicitly since the embedded Leg's unmarshaler would otherwise be promoted
// and the legs list never read.
func (trip *Trip) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &trip.Leg); err != nil {
		return err
	}
	var aux struct {
		Legs []*Leg `json:"legs,omitempty"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	trip.Legs = aux.Legs
	return nil
}

// Unimodal reports whether the trip is a single leg described inline
func (trip *Trip) Unimodal() bool {
	return len(trip.Legs) == 0
}
