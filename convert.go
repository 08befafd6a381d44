package specfill

import (
	geojson "github.com/paulmach/go.geojson"
	"github.com/paulmach/orb/encoding/wkt"
)

// PrepareWKTLinestring returns WKT representation of a (lon, lat) path
func PrepareWKTLinestring(path []Coord) string {
	return wkt.MarshalString(RouteLineString(path))
}

// PrepareGeoJSONRoutes builds a GeoJSON FeatureCollection of all resolved leg
// geometries, one LineString feature per leg.
func PrepareGeoJSONRoutes(spec *EvalSpec) ([]byte, error) {
	fc := geojson.NewFeatureCollection()
	for _, trip := range spec.EvaluationTrips {
		legs := trip.Legs
		if trip.Unimodal() {
			legs = []*Leg{&trip.Leg}
		}
		for _, leg := range legs {
			if len(leg.RouteCoords) == 0 {
				continue
			}
			pts2d := make([][]float64, len(leg.RouteCoords))
			for i := range leg.RouteCoords {
				pts2d[i] = []float64{leg.RouteCoords[i][0], leg.RouteCoords[i][1]}
			}
			feature := geojson.NewLineStringFeature(pts2d)
			feature.SetProperty("leg", leg.ID)
			if leg.Mode != 0 {
				feature.SetProperty("mode", leg.Mode.String())
			}
			feature.SetProperty("length_km", pathLengthKm(leg.RouteCoords))
			fc.AddFeature(feature)
		}
	}
	return fc.MarshalJSON()
}
