package specfill

import (
	"math"
)

const (
	earthRadius = 6370.986884258304
	pi180       = math.Pi / 180.0
)

// degreesToRadians deg = r * pi / 180
func degreesToRadians(d float64) float64 {
	return d * pi180
}

// greatCircleDistance Returns distance between two (lon, lat) geo-points (kilometers)
func greatCircleDistance(p, q Coord) float64 {
	lat1 := degreesToRadians(p[1])
	lon1 := degreesToRadians(p[0])
	lat2 := degreesToRadians(q[1])
	lon2 := degreesToRadians(q[0])
	diffLat := lat2 - lat1
	diffLon := lon2 - lon1
	a := math.Pow(math.Sin(diffLat/2), 2) + math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(diffLon/2), 2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return c * earthRadius
}

// pathLengthKm sums segment great-circle distances of a (lon, lat) path
func pathLengthKm(path []Coord) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		total += greatCircleDistance(path[i-1], path[i])
	}
	return total
}
