package specfill

import (
	"github.com/paulmach/orb"
)

// Coord is a single coordinate pair. Component order is positional and depends
// on the producer: OSM node lookups and the final route_coords carry
// (lon, lat), while raw strategy output (decoded polylines, stitched relations,
// routed geometry) carries (lat, lon) until the final Swap.
type Coord [2]float64

// Swap returns the pair with its two components reversed.
func (c Coord) Swap() Coord {
	return Coord{c[1], c[0]}
}

// swapAll applies Swap to every pair of the path, returning a new slice.
func swapAll(path []Coord) []Coord {
	swapped := make([]Coord, len(path))
	for i := range path {
		swapped[i] = path[i].Swap()
	}
	return swapped
}

// RouteLineString converts a (lon, lat) path to orb.LineString
func RouteLineString(path []Coord) orb.LineString {
	line := make(orb.LineString, len(path))
	for i := range path {
		line[i] = orb.Point{path[i][0], path[i][1]}
	}
	return line
}
