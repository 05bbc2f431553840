package sphere

import (
	"errors"
	"fmt"

	"github.com/golang/geo/r3"
)

// ErrDegenerateBoundary is returned for a boundary ring with fewer than
// three points. The grid never produces one, so callers treat it as fatal.
var ErrDegenerateBoundary = errors.New("degenerate cell boundary")

// Shading selects how vertex normals are assigned.
type Shading string

// Shading modes.
const (
	// ShadingFlat gives every vertex of a cell the cell's radial direction.
	ShadingFlat Shading = "flat"
	// ShadingSmooth gives every vertex its own radial direction, which lets
	// shared boundary vertices of same-colored cells merge.
	ShadingSmooth Shading = "smooth"
)

// ParseShading validates a shading name from configuration.
func ParseShading(s string) (Shading, error) {
	switch Shading(s) {
	case ShadingFlat, ShadingSmooth:
		return Shading(s), nil
	case "":
		return ShadingFlat, nil
	default:
		return "", fmt.Errorf("unknown shading %q (want \"flat\" or \"smooth\")", s)
	}
}

// Corner is one triangle vertex with its normal.
type Corner struct {
	Position r3.Vector
	Normal   r3.Vector
}

// Facet is the triangulated fan of one cell.
// Triangles are counter-clockwise seen from outside the sphere.
type Facet struct {
	Center    r3.Vector
	Triangles [][3]Corner
	Color     Color
}

// Triangulate fans a cell boundary around its centroid: one triangle per
// boundary edge.
func (p Projector) Triangulate(boundary []GeoPoint, color Color) (Facet, error) {
	return p.TriangulateShaded(boundary, color, ShadingFlat)
}

// TriangulateShaded is Triangulate with an explicit shading mode.
func (p Projector) TriangulateShaded(boundary []GeoPoint, color Color, shading Shading) (Facet, error) {
	if len(boundary) < 3 {
		return Facet{}, fmt.Errorf("%w: %d points", ErrDegenerateBoundary, len(boundary))
	}

	ring := make([]r3.Vector, len(boundary))
	for i, g := range boundary {
		ring[i] = p.Project(g)
	}

	center := Centroid(ring)
	if center.Norm2() == 0 {
		return Facet{}, fmt.Errorf("%w: boundary centroid at origin", ErrDegenerateBoundary)
	}

	normalOf := func(v r3.Vector) r3.Vector {
		if shading == ShadingSmooth {
			return v.Normalize()
		}
		return center
	}

	facet := Facet{
		Center:    center,
		Triangles: make([][3]Corner, 0, len(ring)),
		Color:     color,
	}
	for i := range ring {
		a, b := ring[i], ring[(i+1)%len(ring)]
		// Orientation is fixed geometrically so it does not depend on the
		// ring direction or on the axis convention (UpY is a reflection).
		if b.Sub(center).Cross(a.Sub(center)).Dot(center) > 0 {
			a, b = b, a
		}
		facet.Triangles = append(facet.Triangles, [3]Corner{
			{Position: center, Normal: normalOf(center)},
			{Position: a, Normal: normalOf(a)},
			{Position: b, Normal: normalOf(b)},
		})
	}
	return facet, nil
}
