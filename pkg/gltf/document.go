// Package gltf writes chunk meshes as glTF 2.0 descriptor/binary pairs and
// reads them back.
package gltf

import (
	gltfdoc "github.com/qmuntal/gltf"
)

// Attribute names.
const (
	AttrPosition = "POSITION"
	AttrNormal   = "NORMAL"
	AttrColor    = "COLOR_0"
)

// Scene object names.
const (
	SceneName = "H3_Scene"
	MeshName  = "H3_Chunk"
)

// IndexComponentType returns the smallest index type that can address
// vertexCount vertices. The largest value of each type is reserved for
// primitive restart, so it never appears as an index.
func IndexComponentType(vertexCount int) gltfdoc.ComponentType {
	switch {
	case vertexCount < 1<<8:
		return gltfdoc.ComponentUbyte
	case vertexCount < 1<<16:
		return gltfdoc.ComponentUshort
	default:
		return gltfdoc.ComponentUint
	}
}

// componentSize returns the byte size of a component type, or 0.
func componentSize(c gltfdoc.ComponentType) int {
	switch c {
	case gltfdoc.ComponentUbyte:
		return 1
	case gltfdoc.ComponentUshort:
		return 2
	case gltfdoc.ComponentUint, gltfdoc.ComponentFloat:
		return 4
	default:
		return 0
	}
}

// typeWidth returns the number of components of an accessor type, or 0.
func typeWidth(t gltfdoc.AccessorType) int {
	switch t {
	case gltfdoc.AccessorScalar:
		return 1
	case gltfdoc.AccessorVec3:
		return 3
	default:
		return 0
	}
}

// identity is the node matrix glTF assumes when none is given.
var identity = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
