package model

import (
	"errors"
	"fmt"
)

// Mesh validation errors.
var (
	ErrIndexCount  = errors.New("index count is not a multiple of 3")
	ErrIndexBounds = errors.New("index out of vertex range")
)

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Validate checks the index buffer invariants: three indices per triangle,
// each one below the vertex count.
func (m *Mesh) Validate() error {
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("mesh %q: %w (%d)", m.Name, ErrIndexCount, len(m.Indices))
	}
	n := uint32(len(m.Vertices))
	for i, idx := range m.Indices {
		if idx >= n {
			return fmt.Errorf("mesh %q: %w: indices[%d] = %d, %d vertices", m.Name, ErrIndexBounds, i, idx, n)
		}
	}
	return nil
}

// ModelBounds returns the union of the bounds of all meshes.
func ModelBounds(meshes []*Mesh) Bounds {
	if len(meshes) == 0 {
		return Bounds{}
	}
	b := meshes[0].Bounds
	for _, m := range meshes[1:] {
		b = b.Union(m.Bounds)
	}
	return b
}
