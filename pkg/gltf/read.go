package gltf

import (
	"errors"
	"fmt"

	gltfdoc "github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/hexsphere/pkg/mesh"
)

// Read errors.
var (
	ErrUnsupportedDocument = errors.New("unsupported glTF document")
	ErrTruncatedBuffer     = errors.New("truncated glTF buffer")
	ErrIndexOutOfRange     = errors.New("glTF index out of range")
)

// Load reads a descriptor and the buffer it references (resolved relative
// to the descriptor's directory) and rebuilds the mesh.
func Load(path string) (*mesh.Mesh, *gltfdoc.Document, error) {
	doc, err := gltfdoc.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", path, err)
	}

	m, err := Decode(doc)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return m, doc, nil
}

// Decode rebuilds a mesh from a document with one buffer holding one
// indexed triangle primitive.
func Decode(doc *gltfdoc.Document) (*mesh.Mesh, error) {
	if len(doc.Buffers) != 1 {
		return nil, fmt.Errorf("%w: %d buffers", ErrUnsupportedDocument, len(doc.Buffers))
	}
	if buf := doc.Buffers[0]; int(buf.ByteLength) != len(buf.Data) {
		return nil, fmt.Errorf("%w: %d of %d bytes", ErrTruncatedBuffer, len(buf.Data), buf.ByteLength)
	}
	if len(doc.Meshes) != 1 || len(doc.Meshes[0].Primitives) != 1 {
		return nil, fmt.Errorf("%w: expected one mesh with one primitive", ErrUnsupportedDocument)
	}
	prim := doc.Meshes[0].Primitives[0]
	if prim.Mode != gltfdoc.PrimitiveTriangles || prim.Indices == nil {
		return nil, fmt.Errorf("%w: primitive is not indexed triangles", ErrUnsupportedDocument)
	}

	posAcc, err := vec3Accessor(doc, prim.Attributes, AttrPosition)
	if err != nil {
		return nil, err
	}
	positions, err := modeler.ReadPosition(doc, posAcc, nil)
	if err != nil {
		return nil, err
	}

	nrmAcc, err := vec3Accessor(doc, prim.Attributes, AttrNormal)
	if err != nil {
		return nil, err
	}
	normals, err := modeler.ReadNormal(doc, nrmAcc, nil)
	if err != nil {
		return nil, err
	}

	colAcc, err := vec3Accessor(doc, prim.Attributes, AttrColor)
	if err != nil {
		return nil, err
	}
	raw, err := modeler.ReadAccessor(doc, colAcc, nil)
	if err != nil {
		return nil, err
	}
	colors, ok := raw.([][3]float32)
	if !ok {
		return nil, fmt.Errorf("%w: %s must be float VEC3", ErrUnsupportedDocument, AttrColor)
	}

	if len(normals) != len(positions) || len(colors) != len(positions) {
		return nil, fmt.Errorf("%w: attribute counts differ", ErrUnsupportedDocument)
	}

	idxAcc, err := checkedAccessor(doc, *prim.Indices)
	if err != nil {
		return nil, err
	}
	if idxAcc.Type != gltfdoc.AccessorScalar || idxAcc.ComponentType == gltfdoc.ComponentFloat {
		return nil, fmt.Errorf("%w: indices must be unsigned SCALAR", ErrUnsupportedDocument)
	}
	indices, err := modeler.ReadIndices(doc, idxAcc, nil)
	if err != nil {
		return nil, err
	}
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("%w: %d indices is not a triangle list", ErrUnsupportedDocument, len(indices))
	}

	vertices := make([]mesh.Vertex, len(positions))
	for i := range positions {
		vertices[i] = mesh.Vertex{Position: positions[i], Normal: normals[i], Color: colors[i]}
	}
	triangles := make([]mesh.Triangle, 0, len(indices)/3)
	for i := 0; i < len(indices); i += 3 {
		tri := mesh.Triangle{indices[i], indices[i+1], indices[i+2]}
		for _, idx := range tri {
			if int(idx) >= len(vertices) {
				return nil, fmt.Errorf("%w: %d >= %d", ErrIndexOutOfRange, idx, len(vertices))
			}
		}
		triangles = append(triangles, tri)
	}
	return mesh.New(vertices, triangles), nil
}

func vec3Accessor(doc *gltfdoc.Document, attrs map[string]int, name string) (*gltfdoc.Accessor, error) {
	accIdx, ok := attrs[name]
	if !ok {
		return nil, fmt.Errorf("%w: missing %s attribute", ErrUnsupportedDocument, name)
	}
	acc, err := checkedAccessor(doc, accIdx)
	if err != nil {
		return nil, err
	}
	if acc.Type != gltfdoc.AccessorVec3 || acc.ComponentType != gltfdoc.ComponentFloat {
		return nil, fmt.Errorf("%w: %s must be float VEC3", ErrUnsupportedDocument, name)
	}
	return acc, nil
}

// checkedAccessor returns accessor accIdx after checking that its view lies
// inside the buffer and that its elements lie inside the view.
func checkedAccessor(doc *gltfdoc.Document, accIdx int) (*gltfdoc.Accessor, error) {
	if accIdx < 0 || accIdx >= len(doc.Accessors) {
		return nil, fmt.Errorf("%w: accessor %d", ErrUnsupportedDocument, accIdx)
	}
	acc := doc.Accessors[accIdx]
	if acc.BufferView == nil || *acc.BufferView < 0 || *acc.BufferView >= len(doc.BufferViews) {
		return nil, fmt.Errorf("%w: accessor %d has no valid buffer view", ErrUnsupportedDocument, accIdx)
	}
	view := doc.BufferViews[*acc.BufferView]
	if int(view.Buffer) != 0 {
		return nil, fmt.Errorf("%w: buffer %d", ErrUnsupportedDocument, view.Buffer)
	}

	size := componentSize(acc.ComponentType)
	width := typeWidth(acc.Type)
	if size == 0 || width == 0 {
		return nil, fmt.Errorf("%w: accessor %d has type %v/%v", ErrUnsupportedDocument, accIdx, acc.Type, acc.ComponentType)
	}
	stride := int(view.ByteStride)
	if stride == 0 {
		stride = size * width
	}

	viewOffset, viewLen := int(view.ByteOffset), int(view.ByteLength)
	if viewOffset < 0 || viewOffset+viewLen > len(doc.Buffers[0].Data) {
		return nil, fmt.Errorf("%w: view %d ends at %d of %d", ErrTruncatedBuffer, *acc.BufferView, viewOffset+viewLen, len(doc.Buffers[0].Data))
	}
	offset, count := int(acc.ByteOffset), int(acc.Count)
	if offset < 0 || offset > viewLen || count < 0 {
		return nil, fmt.Errorf("%w: accessor %d offset %d", ErrTruncatedBuffer, accIdx, offset)
	}
	if count > 0 && offset+(count-1)*stride+size*width > viewLen {
		return nil, fmt.Errorf("%w: accessor %d overruns its view", ErrTruncatedBuffer, accIdx)
	}
	return acc, nil
}
