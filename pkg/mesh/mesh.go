// Package mesh accumulates chunk geometry into a deduplicated vertex/index mesh.
package mesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/hexsphere/pkg/sphere"
)

// Vertex is a mesh vertex with all exported attributes.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	Color    sphere.Color
}

// Triangle holds three vertex indices, counter-clockwise from outside.
type Triangle [3]uint32

// Bounds holds the axis-aligned bounding box of the vertex positions.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Mesh is the finished geometry of one chunk.
type Mesh struct {
	Vertices  []Vertex
	Triangles []Triangle
	Bounds    Bounds
}

// Stats counts what went into a mesh.
type Stats struct {
	Cells     int
	Pentagons int
	Hexagons  int
	Vertices  int
	Triangles int
	DedupHits int
}

// Add accumulates other into s.
func (s *Stats) Add(other Stats) {
	s.Cells += other.Cells
	s.Pentagons += other.Pentagons
	s.Hexagons += other.Hexagons
	s.Vertices += other.Vertices
	s.Triangles += other.Triangles
	s.DedupHits += other.DedupHits
}

// New returns a mesh over vertices and triangles with its bounds computed.
func New(vertices []Vertex, triangles []Triangle) *Mesh {
	return &Mesh{Vertices: vertices, Triangles: triangles, Bounds: computeBounds(vertices)}
}

// Indices returns the triangle list flattened to a single index slice.
func (m *Mesh) Indices() []uint32 {
	out := make([]uint32, 0, len(m.Triangles)*3)
	for _, t := range m.Triangles {
		out = append(out, t[0], t[1], t[2])
	}
	return out
}

// computeBounds returns the bounding box of vertex positions.
func computeBounds(vertices []Vertex) Bounds {
	if len(vertices) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: vertices[0].Position, Max: vertices[0].Position}
	for _, v := range vertices[1:] {
		for i := 0; i < 3; i++ {
			b.Min[i] = min(b.Min[i], v.Position[i])
			b.Max[i] = max(b.Max[i], v.Position[i])
		}
	}
	return b
}
