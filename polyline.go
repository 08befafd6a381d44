package specfill

import (
	"fmt"
	"math"
	"strings"
)

// Encoded polylines store coordinates at 5 decimal digits of precision.
const polylineScale = 1e5

// DecodePolyline decodes a Google-format encoded polyline into an ordered
// (lat, lon) path. Malformed input (unterminated chunk, out-of-range byte,
// trailing latitude without a longitude) fails with *DecodeError.
func DecodePolyline(encoded string) ([]Coord, error) {
	path := []Coord{}
	index := 0
	lat, lon := 0, 0
	for index < len(encoded) {
		dLat, next, err := decodePolylineValue(encoded, index)
		if err != nil {
			return nil, err
		}
		if next >= len(encoded) {
			return nil, &DecodeError{Pos: next, Reason: "odd number of value chunks, latitude without longitude"}
		}
		dLon, next, err := decodePolylineValue(encoded, next)
		if err != nil {
			return nil, err
		}
		index = next
		lat += dLat
		lon += dLon
		path = append(path, Coord{float64(lat) / polylineScale, float64(lon) / polylineScale})
	}
	return path, nil
}

// decodePolylineValue reads one zigzag-encoded delta starting at index and
// returns the delta plus the index just past it.
func decodePolylineValue(encoded string, index int) (int, int, error) {
	shift, result := 0, 0
	for {
		if index >= len(encoded) {
			return 0, 0, &DecodeError{Pos: index, Reason: "unterminated chunk"}
		}
		b := int(encoded[index]) - 63
		if b < 0 {
			return 0, 0, &DecodeError{Pos: index, Reason: fmt.Sprintf("byte 0x%02x below value range", encoded[index])}
		}
		index++
		result |= (b & 0x1f) << shift
		shift += 5
		if b < 0x20 {
			break
		}
	}
	delta := result >> 1
	if result&1 != 0 {
		delta = ^delta
	}
	return delta, index, nil
}

// EncodePolyline encodes an ordered (lat, lon) path into Google polyline
// format at 5 decimal digits of precision.
func EncodePolyline(path []Coord) string {
	var buf strings.Builder
	prevLat, prevLon := 0, 0
	for _, pt := range path {
		lat := int(math.Round(pt[0] * polylineScale))
		lon := int(math.Round(pt[1] * polylineScale))
		encodePolylineValue(&buf, lat-prevLat)
		encodePolylineValue(&buf, lon-prevLon)
		prevLat, prevLon = lat, lon
	}
	return buf.String()
}

func encodePolylineValue(buf *strings.Builder, value int) {
	v := value << 1
	if value < 0 {
		v = ^v
	}
	for v >= 0x20 {
		buf.WriteByte(byte((0x20 | (v & 0x1f)) + 63))
		v >>= 5
	}
	buf.WriteByte(byte(v + 63))
}
