package gltf

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	gltfdoc "github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/hexsphere/pkg/mesh"
)

// DefaultGenerator is written to asset.generator when Options leaves it empty.
const DefaultGenerator = "hexsphere"

// ErrEmptyMesh is returned for a mesh without vertices or triangles, which
// glTF cannot describe.
var ErrEmptyMesh = errors.New("empty mesh")

// Options tune the emitted descriptor.
type Options struct {
	Generator string
	// NodeName names the scene node, e.g. after the chunk cell.
	NodeName string
	// Scale is applied as a uniform node scale; 0 and 1 mean none.
	Scale float64
}

// Files are the paths of one exported chunk.
type Files struct {
	GLTF string
	Bin  string
}

// ExportError reports a failed chunk write.
type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("exporting %s: %v", e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// ChunkFiles returns the file pair for 1-based chunk n.
func ChunkFiles(dir, prefix string, n int) Files {
	stem := fmt.Sprintf("%s-chunk%d", prefix, n)
	return Files{
		GLTF: filepath.Join(dir, stem+".gltf"),
		Bin:  filepath.Join(dir, stem+".bin"),
	}
}

// Export writes m as <dir>/<prefix>-chunk<n>.gltf and .bin. Any failure is
// returned as an *ExportError naming the file that could not be written
// and may leave a partial pair behind.
func Export(m *mesh.Mesh, dir, prefix string, n int, opts Options) (Files, error) {
	files := ChunkFiles(dir, prefix, n)

	doc, err := Encode(m, filepath.Base(files.Bin), opts)
	if err != nil {
		return files, &ExportError{Path: files.GLTF, Err: err}
	}

	if err := gltfdoc.Save(doc, files.GLTF); err != nil {
		path := files.GLTF
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			path = pathErr.Path
		}
		return files, &ExportError{Path: path, Err: err}
	}
	return files, nil
}

// Encode builds the descriptor for m with its binary buffer attached.
// binURI is stored as the buffer URI and should be the bare bin file name.
//
// Buffer layout: positions, normals and colors as consecutive float32 VEC3
// arrays, then the index array.
func Encode(m *mesh.Mesh, binURI string, opts Options) (*gltfdoc.Document, error) {
	if len(m.Vertices) == 0 || len(m.Triangles) == 0 {
		return nil, ErrEmptyMesh
	}

	positions := make([][3]float32, len(m.Vertices))
	normals := make([][3]float32, len(m.Vertices))
	colors := make([][3]float32, len(m.Vertices))
	for i, v := range m.Vertices {
		positions[i] = v.Position
		normals[i] = v.Normal
		colors[i] = v.Color
	}

	generator := opts.Generator
	if generator == "" {
		generator = DefaultGenerator
	}

	doc := &gltfdoc.Document{
		Asset:   gltfdoc.Asset{Version: "2.0", Generator: generator},
		Buffers: []*gltfdoc.Buffer{{URI: binURI}},
	}
	pos := modeler.WritePosition(doc, positions)
	nrm := modeler.WriteNormal(doc, normals)
	col := modeler.WriteColor(doc, colors)
	idx := modeler.WriteIndices(doc, indexData(m))
	doc.Buffers[0].ByteLength = len(doc.Buffers[0].Data)

	doc.Meshes = []*gltfdoc.Mesh{{
		Name: MeshName,
		Primitives: []*gltfdoc.Primitive{{
			Attributes: map[string]int{AttrPosition: pos, AttrNormal: nrm, AttrColor: col},
			Indices:    gltfdoc.Index(idx),
			Mode:       gltfdoc.PrimitiveTriangles,
		}},
	}}

	node := &gltfdoc.Node{
		Name:     opts.NodeName,
		Mesh:     gltfdoc.Index(0),
		Matrix:   identity,
		Rotation: [4]float64{0, 0, 0, 1},
		Scale:    [3]float64{1, 1, 1},
	}
	if s := opts.Scale; s != 0 {
		node.Scale = [3]float64{s, s, s}
	}
	doc.Nodes = []*gltfdoc.Node{node}
	doc.Scenes = []*gltfdoc.Scene{{Name: SceneName, Nodes: []int{0}}}
	doc.Scene = gltfdoc.Index(0)
	return doc, nil
}

// indexData flattens the triangles into the slice type IndexComponentType
// picks for the mesh.
func indexData(m *mesh.Mesh) any {
	flat := m.Indices()
	switch IndexComponentType(len(m.Vertices)) {
	case gltfdoc.ComponentUbyte:
		out := make([]uint8, len(flat))
		for i, v := range flat {
			out[i] = uint8(v)
		}
		return out
	case gltfdoc.ComponentUshort:
		out := make([]uint16, len(flat))
		for i, v := range flat {
			out[i] = uint16(v)
		}
		return out
	default:
		return flat
	}
}
