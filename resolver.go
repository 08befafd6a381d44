package specfill

import (
	"context"
	"fmt"

	"github.com/paulmach/osm"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// RouteResolver resolves the route geometry of trip legs. All fetching goes
// through the injected collaborators, so the resolver itself carries no
// network configuration. Legs are independent; a resolver may be shared by
// concurrent callers resolving different legs.
type RouteResolver struct {
	osm              OSMSource
	router           RouteService
	strictContinuity bool
	log              zerolog.Logger
}

func NewRouteResolver(osmSource OSMSource, routeService RouteService, options ...func(*RouteResolver)) *RouteResolver {
	resolver := &RouteResolver{
		osm:    osmSource,
		router: routeService,
		log:    zerolog.Nop(),
	}
	for _, option := range options {
		option(resolver)
	}
	return resolver
}

// WithStrictContinuity makes the stitcher fail on segments that do not start
// where the previous one ended, instead of trusting relation member order.
func WithStrictContinuity(strictContinuity bool) func(*RouteResolver) {
	return func(resolver *RouteResolver) {
		resolver.strictContinuity = strictContinuity
	}
}

func WithLogger(log zerolog.Logger) func(*RouteResolver) {
	return func(resolver *RouteResolver) {
		resolver.log = log
	}
}

// ResolveLeg returns a copy of the leg with locations resolved and
// route_coords attached in (lon, lat) order. The input leg is left untouched
// and no partially filled leg is ever returned: any failure aborts the whole
// leg. Resolving an already resolved leg again yields the same route_coords.
func (resolver *RouteResolver) ResolveLeg(ctx context.Context, leg *Leg) (*Leg, error) {
	resolved := *leg
	startLoc, startCoord, err := resolver.resolveLocation(ctx, leg.StartLoc)
	if err != nil {
		return nil, errors.Wrapf(err, "Resolve start location of leg '%s'", leg.ID)
	}
	endLoc, endCoord, err := resolver.resolveLocation(ctx, leg.EndLoc)
	if err != nil {
		return nil, errors.Wrapf(err, "Resolve end location of leg '%s'", leg.ID)
	}
	resolved.StartLoc = startLoc
	resolved.EndLoc = endLoc

	// Strategy output stays (lat, lon) until the single swap below.
	var path []Coord
	switch source := leg.Source().(type) {
	case WaypointSource:
		waypointCoords, err := resolver.resolveWaypoints(ctx, source)
		if err != nil {
			return nil, errors.Wrapf(err, "Resolve waypoints of leg '%s'", leg.ID)
		}
		resolved.WaypointCoords = waypointCoords
		chain := make([]Coord, 0, len(waypointCoords)+2)
		chain = append(chain, startCoord)
		chain = append(chain, waypointCoords...)
		chain = append(chain, endCoord)
		path, err = resolver.routeWaypoints(ctx, leg.Mode, chain)
		if err != nil {
			return nil, err
		}
	case PolylineSource:
		path, err = DecodePolyline(source.Encoded)
		if err != nil {
			return nil, errors.Wrapf(err, "Decode polyline of leg '%s'", leg.ID)
		}
	case RelationSource:
		startNode, endNode, err := legStopNodes(leg)
		if err != nil {
			return nil, err
		}
		path, err = resolver.stitchRelation(ctx, source.RelationID, startNode, endNode)
		if err != nil {
			return nil, errors.Wrapf(err, "Stitch relation of leg '%s'", leg.ID)
		}
	default:
		return nil, &AmbiguousLegSpecError{LegID: leg.ID}
	}

	resolved.RouteCoords = swapAll(path)
	resolver.log.Info().
		Str("leg", leg.ID).
		Int("points", len(resolved.RouteCoords)).
		Float64("length_km", pathLengthKm(resolved.RouteCoords)).
		Msg("leg resolved")
	return &resolved, nil
}

// resolveLocation returns the location with concrete coordinates plus the
// (lon, lat) pair itself. Locations that already carry coordinates pass
// through unchanged, without a lookup.
func (resolver *RouteResolver) resolveLocation(ctx context.Context, loc *Location) (*Location, Coord, error) {
	if loc == nil {
		return nil, Coord{}, fmt.Errorf("location is missing")
	}
	if loc.Resolved() {
		return loc, *loc.Coordinates, nil
	}
	if loc.OSMID == 0 {
		return nil, Coord{}, fmt.Errorf("location '%s' has neither osm_id nor coordinates", loc.Name)
	}
	coord, err := resolver.osm.NodeCoord(ctx, loc.OSMID)
	if err != nil {
		return nil, Coord{}, errors.Wrapf(err, "Look up node %d", loc.OSMID)
	}
	resolved := *loc
	resolved.Coordinates = &coord
	return &resolved, coord, nil
}

// resolveWaypoints turns a waypoint source into concrete (lon, lat) pairs,
// looking up node-id waypoints when needed.
func (resolver *RouteResolver) resolveWaypoints(ctx context.Context, source WaypointSource) ([]Coord, error) {
	if len(source.NodeIDs) == 0 {
		return source.Coords, nil
	}
	coords := make([]Coord, len(source.NodeIDs))
	for i, nodeID := range source.NodeIDs {
		coord, err := resolver.osm.NodeCoord(ctx, nodeID)
		if err != nil {
			return nil, errors.Wrapf(err, "Look up waypoint node %d", nodeID)
		}
		coords[i] = coord
	}
	return coords, nil
}

// routeWaypoints sends the waypoint chain to the routing service. Unroutable
// modes are rejected up front; no call is made for them.
func (resolver *RouteResolver) routeWaypoints(ctx context.Context, mode Mode, chain []Coord) ([]Coord, error) {
	if !mode.Routable() {
		return nil, &UnsupportedModeError{Mode: mode}
	}
	if len(chain) > 0 {
		resolver.log.Debug().Str("mode", mode.String()).Interface("head", chain[:minInt(3, len(chain))]).Msg("routing waypoint chain")
	}
	return resolver.router.Route(ctx, mode, chain)
}

// legStopNodes returns the OSM node ids of the leg's stops. Relation legs
// need them even when coordinates are already known, since trimming works on
// node identity.
func legStopNodes(leg *Leg) (osm.NodeID, osm.NodeID, error) {
	if leg.StartLoc == nil || leg.StartLoc.OSMID == 0 || leg.EndLoc == nil || leg.EndLoc.OSMID == 0 {
		return 0, 0, fmt.Errorf("relation leg '%s' needs OSM node ids on both stops", leg.ID)
	}
	return leg.StartLoc.OSMID, leg.EndLoc.OSMID, nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
