// Package geo converts the raw CAP polygon-ring strings kept by the
// parsers into numeric coordinates and s2 geometry for map consumers. The
// ingestion core never calls this package; it is the boundary where
// geometry concerns start.
package geo

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/golang/geo/s2"
)

// Point is one WGS-84 coordinate.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// ParseRing converts a CAP polygon string (whitespace-separated "lat,lon"
// pairs) into points in input order. An empty string yields no points and
// no error; a malformed pair fails the whole ring.
func ParseRing(ring string) ([]Point, error) {
	fields := strings.Fields(ring)
	if len(fields) == 0 {
		return nil, nil
	}

	points := make([]Point, 0, len(fields))
	for _, field := range fields {
		latStr, lonStr, ok := strings.Cut(field, ",")
		if !ok {
			return nil, fmt.Errorf("coordinate pair %q: missing comma", field)
		}
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			return nil, fmt.Errorf("coordinate pair %q: %w", field, err)
		}
		lon, err := strconv.ParseFloat(lonStr, 64)
		if err != nil {
			return nil, fmt.Errorf("coordinate pair %q: %w", field, err)
		}
		points = append(points, Point{Lat: lat, Lon: lon})
	}
	return points, nil
}

// Centroid returns the arithmetic mean of the ring's vertices, with an
// explicit closing vertex dropped first. Good enough for placing a map
// marker; not a true geodesic centroid.
func Centroid(points []Point) Point {
	points = dropClosure(points)
	if len(points) == 0 {
		return Point{}
	}

	var lat, lon float64
	for _, p := range points {
		lat += p.Lat
		lon += p.Lon
	}
	n := float64(len(points))
	return Point{Lat: lat / n, Lon: lon / n}
}

// Loop builds an s2 loop from ring points. CAP rings repeat the first
// vertex at the end; s2 loops are implicitly closed, so the duplicate is
// dropped. Loops spanning more than half the sphere are inverted, assuming
// the ring was wound the wrong way.
func Loop(points []Point) *s2.Loop {
	points = dropClosure(points)

	s2points := make([]s2.Point, 0, len(points))
	for _, p := range points {
		s2points = append(s2points, s2.PointFromLatLng(s2.LatLngFromDegrees(p.Lat, p.Lon)))
	}

	loop := s2.LoopFromPoints(s2points)
	if loop.Area() > 2*math.Pi {
		loop.Invert()
	}
	return loop
}

// RingContains reports whether the coordinate lies inside the polygon ring.
func RingContains(ring string, lat, lon float64) (bool, error) {
	points, err := ParseRing(ring)
	if err != nil {
		return false, err
	}
	if len(points) < 3 {
		return false, nil
	}

	target := s2.PointFromLatLng(s2.LatLngFromDegrees(lat, lon))
	return Loop(points).ContainsPoint(target), nil
}

func dropClosure(points []Point) []Point {
	if len(points) > 1 && points[0] == points[len(points)-1] {
		return points[:len(points)-1]
	}
	return points
}
