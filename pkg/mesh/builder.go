package mesh

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/golang/geo/r3"

	"github.com/Faultbox/hexsphere/pkg/sphere"
)

// quantum is the grid every vertex component is snapped to before keys are
// compared, so boundary vertices computed independently by neighboring
// cells still match.
const quantum = 1e6

type vertexKey [9]int64

func quantize(f float32) int64 {
	return int64(math.Round(float64(f) * quantum))
}

func keyOf(v Vertex) vertexKey {
	return vertexKey{
		quantize(v.Position[0]), quantize(v.Position[1]), quantize(v.Position[2]),
		quantize(v.Normal[0]), quantize(v.Normal[1]), quantize(v.Normal[2]),
		quantize(v.Color[0]), quantize(v.Color[1]), quantize(v.Color[2]),
	}
}

// Builder collects the vertices and triangles of one chunk.
// A Builder is not safe for concurrent use.
type Builder struct {
	vertices  []Vertex
	triangles []Triangle
	index     map[vertexKey]uint32
	stats     Stats
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{index: make(map[vertexKey]uint32)}
}

// VertexCount returns the number of unique vertices inserted so far.
func (b *Builder) VertexCount() int {
	return len(b.vertices)
}

// InsertVertex returns the index of an equal vertex if one was inserted
// before, otherwise it appends v and returns its new index.
func (b *Builder) InsertVertex(v Vertex) uint32 {
	k := keyOf(v)
	if idx, ok := b.index[k]; ok {
		b.stats.DedupHits++
		return idx
	}
	idx := uint32(len(b.vertices))
	b.vertices = append(b.vertices, v)
	b.index[k] = idx
	return idx
}

// AddTriangle appends a triangle. It panics if an index does not refer to
// an inserted vertex.
func (b *Builder) AddTriangle(i0, i1, i2 uint32) {
	n := uint32(len(b.vertices))
	if i0 >= n || i1 >= n || i2 >= n {
		panic(fmt.Sprintf("mesh: triangle (%d, %d, %d) out of range for %d vertices", i0, i1, i2, n))
	}
	b.triangles = append(b.triangles, Triangle{i0, i1, i2})
}

// AddFacet inserts every triangle of a triangulated cell and counts the cell.
func (b *Builder) AddFacet(f sphere.Facet, pentagon bool) {
	for _, tri := range f.Triangles {
		var idx [3]uint32
		for i, c := range tri {
			idx[i] = b.InsertVertex(Vertex{
				Position: toVec3(c.Position),
				Normal:   toVec3(c.Normal),
				Color:    f.Color,
			})
		}
		b.AddTriangle(idx[0], idx[1], idx[2])
	}
	b.stats.Cells++
	if pentagon {
		b.stats.Pentagons++
	} else {
		b.stats.Hexagons++
	}
}

// Finalize returns the finished mesh and its stats. The builder is reset
// and holds no references to the returned mesh.
func (b *Builder) Finalize() (*Mesh, Stats) {
	m := New(b.vertices, b.triangles)
	stats := b.stats
	stats.Vertices = len(m.Vertices)
	stats.Triangles = len(m.Triangles)

	*b = Builder{index: make(map[vertexKey]uint32)}
	return m, stats
}

func toVec3(v r3.Vector) mgl32.Vec3 {
	return mgl32.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}
