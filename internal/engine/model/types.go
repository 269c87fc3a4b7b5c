// Package model builds indexed triangle meshes from OBJ model files,
// resolving materials and generating tangent-space vectors for normal mapping.
package model

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/objscene/internal/assets"
	"github.com/Faultbox/objscene/pkg/formats"
	"github.com/Faultbox/objscene/pkg/math"
)

// Vertex is one output vertex, laid out for interleaved GPU upload.
type Vertex struct {
	Position  math.Vec3
	Normal    math.Vec3
	TexCoord  math.Vec2
	Tangent   math.Vec3
	Bitangent math.Vec3
}

// TextureBinding is a material texture with its handle in a TextureCache.
type TextureBinding struct {
	Slot   formats.TextureSlot
	Path   string
	Handle assets.Handle
}

// Mesh holds one material segment of a model, ready for GPU upload.
// Vertices and Indices are owned by the mesh; Material is shared with
// every other mesh of the same import that uses it.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
	Material *formats.Material
	Textures []TextureBinding // only filled when ImportOptions.Textures is set
	Bounds   Bounds
}

// Bounds holds the axis-aligned bounding box of a mesh.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// TangentPolicy selects how a vertex shared by several triangles
// receives its tangent.
type TangentPolicy int

const (
	// TangentAccumulate sums the contribution of every triangle, then normalizes.
	TangentAccumulate TangentPolicy = iota
	// TangentOverwrite keeps the contribution of the last triangle.
	TangentOverwrite
)

// String returns the policy name as used in config files.
func (p TangentPolicy) String() string {
	switch p {
	case TangentAccumulate:
		return "accumulate"
	case TangentOverwrite:
		return "overwrite"
	default:
		return fmt.Sprintf("Unknown(%d)", int(p))
	}
}

// ParseTangentPolicy parses "accumulate" or "overwrite".
func ParseTangentPolicy(s string) (TangentPolicy, error) {
	switch s {
	case "accumulate", "":
		return TangentAccumulate, nil
	case "overwrite":
		return TangentOverwrite, nil
	default:
		return 0, fmt.Errorf("unknown tangent policy %q", s)
	}
}

// ImportOptions configures the import pipeline.
type ImportOptions struct {
	// Quads accepts 4-corner faces, split along the 0-2 diagonal.
	Quads bool
	// GroupByMaterial emits one mesh per usemtl segment. When false the whole
	// file becomes a single mesh bound to the first material referenced.
	GroupByMaterial bool
	// Lenient skips malformed attribute and face lines (logging a warning)
	// instead of failing the import.
	Lenient bool
	// Tangents selects the tangent accumulation policy.
	Tangents TangentPolicy
	// Textures, if set, registers every material texture path and records
	// the handles on each mesh.
	Textures *assets.TextureCache
	// Logger receives import diagnostics. Nil disables logging.
	Logger *zap.Logger
}

// DefaultImportOptions returns quad support, material grouping and
// strict parsing.
func DefaultImportOptions() ImportOptions {
	return ImportOptions{
		Quads:           true,
		GroupByMaterial: true,
		Tangents:        TangentAccumulate,
	}
}
