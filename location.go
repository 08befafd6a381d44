package specfill

import (
	"github.com/paulmach/osm"
)

// Location Either a reference to an OSM node or an already resolved coordinate pair in (lon, lat) order
type Location struct {
	Name        string     `json:"name,omitempty"`
	OSMID       osm.NodeID `json:"osm_id,omitempty"`
	Coordinates *Coord     `json:"coordinates,omitempty"`
}

// Resolved reports whether the location already carries concrete coordinates
func (loc *Location) Resolved() bool {
	return loc != nil && loc.Coordinates != nil
}
