package specfill

import (
	"context"
	"fmt"

	"github.com/paulmach/osm"
	"github.com/pkg/errors"
)

// wayChunk One fetched way of a relation: node ids in traversal order plus the matching (lat, lon) coordinates
type wayChunk struct {
	nodes  []osm.NodeID
	coords []Coord
}

// stitchRelation reassembles one continuous (lat, lon) path from the way
// members of a transit-route relation and trims it to the inclusive sub-range
// between the two stop nodes.
//
// The relation's declared member order is the authoritative approximate travel
// direction. Individual ways may be stored in either direction, so each chunk
// is re-oriented by chaining on the previous chunk's last node.
func (resolver *RouteResolver) stitchRelation(ctx context.Context, relationID osm.RelationID, startNode, endNode osm.NodeID) ([]Coord, error) {
	relation, err := resolver.osm.Relation(ctx, relationID)
	if err != nil {
		return nil, errors.Wrapf(err, "Fetch relation %d", relationID)
	}
	wayIDs, err := routeWayIDs(relation)
	if err != nil {
		return nil, err
	}
	resolver.log.Debug().Int64("relation_id", int64(relationID)).Int("ways", len(wayIDs)).Msg("relation mapped to ways")

	nodeIDs := []osm.NodeID{}
	coords := []Coord{}
	prevLastNode := osm.NodeID(0)
	for _, wayID := range wayIDs {
		chunk, err := resolver.fetchWayChunk(ctx, wayID, prevLastNode)
		if err != nil {
			return nil, err
		}
		if len(chunk.nodes) == 0 {
			continue
		}
		if resolver.strictContinuity && prevLastNode != 0 && chunk.nodes[0] != prevLastNode {
			return nil, &DiscontinuityError{RelationID: relationID, WayID: wayID, PrevLastNode: prevLastNode, FirstNode: chunk.nodes[0]}
		}
		chunkNodes := chunk.nodes
		chunkCoords := chunk.coords
		if prevLastNode != 0 && chunkNodes[0] == prevLastNode {
			// shared boundary node is already the master path's tail
			chunkNodes = chunkNodes[1:]
			chunkCoords = chunkCoords[1:]
		}
		nodeIDs = append(nodeIDs, chunkNodes...)
		coords = append(coords, chunkCoords...)
		prevLastNode = chunk.nodes[len(chunk.nodes)-1]
	}

	startIndex := indexOfNode(nodeIDs, startNode)
	if startIndex < 0 {
		return nil, &NodeNotFoundError{RelationID: relationID, NodeID: startNode}
	}
	endIndex := indexOfNode(nodeIDs, endNode)
	if endIndex < 0 {
		return nil, &NodeNotFoundError{RelationID: relationID, NodeID: endNode}
	}
	if startIndex > endIndex {
		return nil, &InvalidRangeError{RelationID: relationID, StartIndex: startIndex, EndIndex: endIndex}
	}
	return coords[startIndex : endIndex+1], nil
}

// fetchWayChunk loads full way detail and builds its chunk. The way entry's nd
// list defines traversal order; when that list's last node equals prevLastNode
// the way is stored against travel direction and gets reversed. A last node
// that matches nothing means the way is assumed already correctly oriented.
func (resolver *RouteResolver) fetchWayChunk(ctx context.Context, wayID osm.WayID, prevLastNode osm.NodeID) (*wayChunk, error) {
	detail, err := resolver.osm.WayFull(ctx, wayID)
	if err != nil {
		return nil, errors.Wrapf(err, "Fetch way %d", wayID)
	}
	lat := make(map[osm.NodeID]float64, len(detail.Nodes))
	lon := make(map[osm.NodeID]float64, len(detail.Nodes))
	for _, node := range detail.Nodes {
		lat[node.ID] = node.Lat
		lon[node.ID] = node.Lon
	}
	if len(detail.Ways) != 1 {
		return nil, fmt.Errorf("Full detail of way %d carries %d way entries, expected exactly 1", wayID, len(detail.Ways))
	}
	way := detail.Ways[0]
	if way.ID != wayID {
		return nil, &WayIDMismatchError{Requested: wayID, Got: way.ID}
	}
	ordered := make([]osm.NodeID, len(way.Nodes))
	for i, wayNode := range way.Nodes {
		ordered[i] = wayNode.ID
	}
	if prevLastNode != 0 && len(ordered) > 0 && ordered[len(ordered)-1] == prevLastNode {
		resolver.log.Debug().Int64("way_id", int64(wayID)).Int64("shared_node", int64(prevLastNode)).Msg("way stored against travel direction, reversing")
		reverseNodeIDs(ordered)
	}
	chunk := &wayChunk{nodes: ordered, coords: make([]Coord, 0, len(ordered))}
	for _, nodeID := range ordered {
		if _, ok := lat[nodeID]; !ok {
			return nil, fmt.Errorf("Missing node with id: %d in full detail of way %d", nodeID, wayID)
		}
		chunk.coords = append(chunk.coords, Coord{lat[nodeID], lon[nodeID]})
	}
	return chunk, nil
}

// routeWayIDs filters relation members down to the route's way segments in
// declared order. Platform members are the stops' physical platforms, not part
// of the traveled path.
func routeWayIDs(relation *osm.Relation) ([]osm.WayID, error) {
	wayIDs := make([]osm.WayID, 0, len(relation.Members))
	for _, member := range relation.Members {
		if member.Type == osm.TypeRelation {
			return nil, &UnsupportedTopologyError{RelationID: relation.ID, MemberRef: member.Ref}
		}
		if member.Type != osm.TypeWay || member.Role == "platform" {
			continue
		}
		wayIDs = append(wayIDs, osm.WayID(member.Ref))
	}
	return wayIDs, nil
}

func reverseNodeIDs(nodeIDs []osm.NodeID) {
	for i, j := 0, len(nodeIDs)-1; i < j; i, j = i+1, j-1 {
		nodeIDs[i], nodeIDs[j] = nodeIDs[j], nodeIDs[i]
	}
}

func indexOfNode(nodeIDs []osm.NodeID, nodeID osm.NodeID) int {
	for i := range nodeIDs {
		if nodeIDs[i] == nodeID {
			return i
		}
	}
	return -1
}
