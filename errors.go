package specfill

import (
	"fmt"

	"github.com/paulmach/osm"
)

// UnsupportedModeError Routing service can not serve the requested travel mode
type UnsupportedModeError struct {
	Mode Mode
}

func (e *UnsupportedModeError) Error() string {
	return fmt.Sprintf("routing service does not support mode '%s'", e.Mode)
}

// UnsupportedTopologyError Relation contains a nested relation member. Only flat single-level route relations are supported.
type UnsupportedTopologyError struct {
	RelationID osm.RelationID
	MemberRef  int64
}

func (e *UnsupportedTopologyError) Error() string {
	return fmt.Sprintf("relation %d has nested relation member %d, expected ways only", e.RelationID, e.MemberRef)
}

// WayIDMismatchError Fetched way entry does not match the requested way id
type WayIDMismatchError struct {
	Requested osm.WayID
	Got       osm.WayID
}

func (e *WayIDMismatchError) Error() string {
	return fmt.Sprintf("way id mismatch: %d != %d", e.Got, e.Requested)
}

// NodeNotFoundError Stop node is absent from the stitched path of a relation
type NodeNotFoundError struct {
	RelationID osm.RelationID
	NodeID     osm.NodeID
}

func (e *NodeNotFoundError) Error() string {
	return fmt.Sprintf("node %d is not on the path of relation %d", e.NodeID, e.RelationID)
}

// InvalidRangeError Start stop comes after end stop in the relation's member order
type InvalidRangeError struct {
	RelationID osm.RelationID
	StartIndex int
	EndIndex   int
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("start index %d is after end index %d in relation %d", e.StartIndex, e.EndIndex, e.RelationID)
}

// DiscontinuityError Re-oriented segment does not start where the previous one ended (strict continuity mode only)
type DiscontinuityError struct {
	RelationID   osm.RelationID
	WayID        osm.WayID
	PrevLastNode osm.NodeID
	FirstNode    osm.NodeID
}

func (e *DiscontinuityError) Error() string {
	return fmt.Sprintf("way %d of relation %d starts at node %d but previous segment ended at node %d", e.WayID, e.RelationID, e.FirstNode, e.PrevLastNode)
}

// AmbiguousLegSpecError Leg declares none of the recognized route sources
type AmbiguousLegSpecError struct {
	LegID string
}

func (e *AmbiguousLegSpecError) Error() string {
	return fmt.Sprintf("leg '%s' declares no route source (waypoints, polyline or relation)", e.LegID)
}

// DecodeError Malformed encoded polyline
type DecodeError struct {
	Pos    int
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("malformed polyline at byte %d: %s", e.Pos, e.Reason)
}

// RoutingServiceError Routing service call failed (transport, status or payload)
type RoutingServiceError struct {
	Err error
}

func (e *RoutingServiceError) Error() string {
	return fmt.Sprintf("routing service: %s", e.Err)
}

func (e *RoutingServiceError) Unwrap() error {
	return e.Err
}

// NotFoundError Location lookup does not know the given node id
type NotFoundError struct {
	NodeID osm.NodeID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("node %d is unknown upstream", e.NodeID)
}

// UnknownConfigError Sensing config id is absent from the loaded registry
type UnknownConfigError struct {
	ID string
}

func (e *UnknownConfigError) Error() string {
	return fmt.Sprintf("unknown sensing config '%s'", e.ID)
}
