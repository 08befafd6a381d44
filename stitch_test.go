package specfill

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/paulmach/osm"
)

// transitSource builds relation 9605483 out of two ways already oriented in
// travel direction: [10 11 12] followed by [12 13 14].
func transitSource() *mockOSMSource {
	return &mockOSMSource{
		nodes: map[osm.NodeID]Coord{
			11: {2, 1},
			13: {4, 1},
		},
		relations: map[osm.RelationID]*osm.Relation{
			9605483: {
				ID: 9605483,
				Members: osm.Members{
					{Type: osm.TypeWay, Ref: 100},
					{Type: osm.TypeWay, Ref: 200},
				},
			},
		},
		ways: map[osm.WayID]*osm.OSM{
			100: wayDoc(100, []osm.NodeID{10, 11, 12}, []Coord{{1, 1}, {1, 2}, {1, 3}}),
			200: wayDoc(200, []osm.NodeID{12, 13, 14}, []Coord{{1, 3}, {1, 4}, {1, 5}}),
		},
	}
}

func TestStitchTrimsToStopRange(t *testing.T) {
	resolver := NewRouteResolver(transitSource(), &mockRouteService{})
	path, err := resolver.stitchRelation(context.Background(), 9605483, 11, 13)
	if err != nil {
		t.Error(err)
		return
	}
	correct := []Coord{{1, 2}, {1, 3}, {1, 4}}
	if !reflect.DeepEqual(path, correct) {
		t.Errorf("Stitched path must be %v, but got %v", correct, path)
	}
}

func TestStitchFullRangeLength(t *testing.T) {
	resolver := NewRouteResolver(transitSource(), &mockRouteService{})
	path, err := resolver.stitchRelation(context.Background(), 9605483, 10, 14)
	if err != nil {
		t.Error(err)
		return
	}
	// master path is [10 11 12 13 14]: the boundary node 12 shared by both
	// ways appears once, start index 0 to end index 4 inclusive
	correct := []Coord{{1, 1}, {1, 2}, {1, 3}, {1, 4}, {1, 5}}
	if !reflect.DeepEqual(path, correct) {
		t.Errorf("Full range must be %v, but got %v", correct, path)
	}
}

func TestResolveRelationLeg(t *testing.T) {
	resolver := NewRouteResolver(transitSource(), &mockRouteService{})
	leg := &Leg{
		ID:       "bus",
		Mode:     MODE_BUS,
		StartLoc: &Location{OSMID: 11},
		EndLoc:   &Location{OSMID: 13},
		Relation: 9605483,
	}
	resolved, err := resolver.ResolveLeg(context.Background(), leg)
	if err != nil {
		t.Error(err)
		return
	}
	correct := []Coord{{2, 1}, {3, 1}, {4, 1}}
	if !reflect.DeepEqual(resolved.RouteCoords, correct) {
		t.Errorf("Route coords must be %v, but got %v", correct, resolved.RouteCoords)
	}
}

func TestStitchReversesBackwardWay(t *testing.T) {
	source := transitSource()
	// second way stored against travel direction: its last node matches the
	// previous way's last node
	source.ways[200] = wayDoc(200, []osm.NodeID{14, 13, 12}, []Coord{{1, 5}, {1, 4}, {1, 3}})
	resolver := NewRouteResolver(source, &mockRouteService{})
	path, err := resolver.stitchRelation(context.Background(), 9605483, 10, 14)
	if err != nil {
		t.Error(err)
		return
	}
	correct := []Coord{{1, 1}, {1, 2}, {1, 3}, {1, 4}, {1, 5}}
	if !reflect.DeepEqual(path, correct) {
		t.Errorf("Re-oriented path must be %v, but got %v", correct, path)
	}
}

func TestStitchSkipsPlatformMembers(t *testing.T) {
	source := transitSource()
	source.relations[9605483].Members = osm.Members{
		{Type: osm.TypeWay, Ref: 999, Role: "platform"},
		{Type: osm.TypeWay, Ref: 100},
		{Type: osm.TypeNode, Ref: 11, Role: "stop"},
		{Type: osm.TypeWay, Ref: 200},
	}
	resolver := NewRouteResolver(source, &mockRouteService{})
	_, err := resolver.stitchRelation(context.Background(), 9605483, 11, 13)
	if err != nil {
		t.Error(err)
		return
	}
	if source.wayCalls != 2 {
		t.Errorf("Platform and node members must not be fetched, expected 2 way fetches but got %d", source.wayCalls)
	}
}

func TestStitchRejectsNestedRelation(t *testing.T) {
	source := transitSource()
	source.relations[9605483].Members = append(osm.Members{
		{Type: osm.TypeRelation, Ref: 777},
	}, source.relations[9605483].Members...)
	resolver := NewRouteResolver(source, &mockRouteService{})
	_, err := resolver.stitchRelation(context.Background(), 9605483, 11, 13)
	var topologyErr *UnsupportedTopologyError
	if !errors.As(err, &topologyErr) {
		t.Errorf("Expected UnsupportedTopologyError, but got %v", err)
		return
	}
	if topologyErr.MemberRef != 777 {
		t.Errorf("Error must carry member ref 777, but got %d", topologyErr.MemberRef)
	}
	if source.wayCalls != 0 {
		t.Errorf("Nested relation must be rejected before any way fetch, but got %d fetches", source.wayCalls)
	}
}

func TestStitchWayIDMismatch(t *testing.T) {
	source := transitSource()
	source.ways[100] = wayDoc(101, []osm.NodeID{10, 11, 12}, []Coord{{1, 1}, {1, 2}, {1, 3}})
	resolver := NewRouteResolver(source, &mockRouteService{})
	_, err := resolver.stitchRelation(context.Background(), 9605483, 11, 13)
	var mismatchErr *WayIDMismatchError
	if !errors.As(err, &mismatchErr) {
		t.Errorf("Expected WayIDMismatchError, but got %v", err)
		return
	}
	if mismatchErr.Requested != 100 || mismatchErr.Got != 101 {
		t.Errorf("Error must carry 100 != 101, but got %d != %d", mismatchErr.Requested, mismatchErr.Got)
	}
}

func TestStitchStartNodeNotFound(t *testing.T) {
	resolver := NewRouteResolver(transitSource(), &mockRouteService{})
	path, err := resolver.stitchRelation(context.Background(), 9605483, 99, 13)
	var notFoundErr *NodeNotFoundError
	if !errors.As(err, &notFoundErr) {
		t.Errorf("Expected NodeNotFoundError, but got %v", err)
		return
	}
	if notFoundErr.NodeID != 99 {
		t.Errorf("Error must carry node 99, but got %d", notFoundErr.NodeID)
	}
	if path != nil {
		t.Errorf("Failed stitch must give no partial output, but got %v", path)
	}
}

func TestStitchInvertedRange(t *testing.T) {
	resolver := NewRouteResolver(transitSource(), &mockRouteService{})
	_, err := resolver.stitchRelation(context.Background(), 9605483, 13, 11)
	var rangeErr *InvalidRangeError
	if !errors.As(err, &rangeErr) {
		t.Errorf("Expected InvalidRangeError, but got %v", err)
	}
}

func TestStitchStrictContinuity(t *testing.T) {
	source := transitSource()
	// gap between the two ways: 12 -> 13 boundary is not shared
	source.ways[200] = wayDoc(200, []osm.NodeID{13, 14, 15}, []Coord{{1, 4}, {1, 5}, {1, 6}})

	lenient := NewRouteResolver(source, &mockRouteService{})
	path, err := lenient.stitchRelation(context.Background(), 9605483, 10, 15)
	if err != nil {
		t.Error(err)
		return
	}
	if len(path) != 6 {
		t.Errorf("Lenient stitch must keep all 6 pairs, but got %d", len(path))
	}

	strict := NewRouteResolver(source, &mockRouteService{}, WithStrictContinuity(true))
	_, err = strict.stitchRelation(context.Background(), 9605483, 10, 15)
	var discontinuityErr *DiscontinuityError
	if !errors.As(err, &discontinuityErr) {
		t.Errorf("Expected DiscontinuityError, but got %v", err)
		return
	}
	if discontinuityErr.WayID != 200 || discontinuityErr.PrevLastNode != 12 || discontinuityErr.FirstNode != 13 {
		t.Errorf("Error must describe the 12/13 gap on way 200, but got %+v", discontinuityErr)
	}
}
