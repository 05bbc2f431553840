// Package sphere projects geographic cell boundaries onto the unit sphere
// and turns them into flat-shaded triangle fans.
package sphere

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// GeoPoint is a geographic coordinate in radians.
type GeoPoint struct {
	Lat float64
	Lng float64
}

// GeoPointFromDegrees builds a GeoPoint from degrees.
func GeoPointFromDegrees(lat, lng float64) GeoPoint {
	return GeoPoint{Lat: lat * math.Pi / 180, Lng: lng * math.Pi / 180}
}

// UpAxis selects which Cartesian axis points to the north pole.
type UpAxis string

// Supported axis conventions.
const (
	// UpZ is the standard spherical transform: z = sin(lat).
	UpZ UpAxis = "z"
	// UpY swaps y and z so the pole is +Y, the glTF up direction.
	UpY UpAxis = "y"
)

// ParseUpAxis validates an axis name from configuration.
func ParseUpAxis(s string) (UpAxis, error) {
	switch UpAxis(s) {
	case UpZ, UpY:
		return UpAxis(s), nil
	case "":
		return UpZ, nil
	default:
		return "", fmt.Errorf("unknown up axis %q (want \"y\" or \"z\")", s)
	}
}

// Projector maps geographic points to unit vectors. The zero value uses UpZ.
type Projector struct {
	Up UpAxis
}

// NewProjector returns a projector for the given axis convention.
func NewProjector(up UpAxis) Projector {
	return Projector{Up: up}
}

// Project converts a geographic point to a point on the unit sphere.
func (p Projector) Project(g GeoPoint) r3.Vector {
	v := s2.PointFromLatLng(s2.LatLng{Lat: s1.Angle(g.Lat), Lng: s1.Angle(g.Lng)}).Vector
	if p.Up == UpY {
		return r3.Vector{X: v.X, Y: v.Z, Z: v.Y}
	}
	return v
}

// Centroid returns the normalized mean of points, re-projected onto the
// unit sphere. It returns the zero vector for an empty or antipodal set.
func Centroid(points []r3.Vector) r3.Vector {
	var sum r3.Vector
	for _, pt := range points {
		sum = sum.Add(pt)
	}
	if sum.Norm2() == 0 {
		return r3.Vector{}
	}
	return sum.Normalize()
}
