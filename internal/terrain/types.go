// Package terrain builds triangle meshes from generated heightmaps and
// exports them as Wavefront OBJ.
package terrain

import "github.com/Faultbox/midgard-terrain/pkg/math"

// Vertex is one grid cell in exported space.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
	TexCoord math.Vec2
}

// Face is a triangle of 0-based vertex indices, counter-clockwise when
// viewed from above (+Z).
type Face [3]int

// Mesh holds a triangulated heightmap. Vertices are row-major, one per cell.
type Mesh struct {
	Size         int
	Vertices     []Vertex
	Faces        []Face
	Bounds       Bounds
	HasNormals   bool
	HasTexCoords bool
}

// Bounds holds the axis-aligned bounding box of the mesh.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Options controls mesh building and export.
type Options struct {
	// XScale and YScale must be non-zero. A negative value mirrors the mesh
	// along that axis; face winding is adjusted so faces stay
	// counter-clockwise from above.
	XScale      float32
	YScale      float32
	HeightScale float32
	Normals     bool
	TexCoords   bool
	// Workers bounds row-parallel vertex building (0 = GOMAXPROCS).
	Workers int
	// Header lines are written as comments before any record.
	Header []string
}

// DefaultOptions matches the scales of a 4x4 unit terrain tile.
func DefaultOptions() Options {
	return Options{
		XScale:      4,
		YScale:      4,
		HeightScale: 1,
		Normals:     true,
		TexCoords:   true,
	}
}
