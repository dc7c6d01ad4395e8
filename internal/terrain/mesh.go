package terrain

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/midgard-terrain/pkg/heightmap"
	"github.com/Faultbox/midgard-terrain/pkg/math"
)

// BuildMesh converts a finished grid into a mesh. The grid is only read.
func BuildMesh(g *heightmap.Grid, opts Options) *Mesh {
	size := g.Size()
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var normals []math.Vec3
	if opts.Normals {
		est := heightmap.NewNormalEstimator(size, opts.XScale, opts.YScale, opts.HeightScale)
		normals = est.Estimate(g, workers)
	}

	// Grid coordinates in [0, 1] map to [-1, 1] before export scaling.
	transform := math.Scale(opts.XScale, opts.YScale, opts.HeightScale).
		Mul(math.Translate(-1, -1, 0)).
		Mul(math.Scale(2, 2, 1))
	denom := float32(size - 1)
	vertices := make([]Vertex, size*size)

	var eg errgroup.Group
	eg.SetLimit(workers)
	for row := range size {
		eg.Go(func() error {
			heights := g.Row(row)
			v := float32(row) / denom
			for col, h := range heights {
				u := float32(col) / denom
				i := row*size + col
				vertices[i].Position = transform.TransformVec3(math.Vec3{X: u, Y: v, Z: h})
				if opts.TexCoords {
					vertices[i].TexCoord = math.Vec2{X: u, Y: v}
				}
				if normals != nil {
					vertices[i].Normal = normals[i]
				}
			}
			return nil
		})
	}
	_ = eg.Wait()

	faces := Triangulate(size)
	if opts.XScale*opts.YScale < 0 {
		// A single negative horizontal scale mirrors the mesh, which would
		// turn every face clockwise when viewed from above.
		for i := range faces {
			faces[i][1], faces[i][2] = faces[i][2], faces[i][1]
		}
	}

	return &Mesh{
		Size:         size,
		Vertices:     vertices,
		Faces:        faces,
		Bounds:       computeBounds(vertices),
		HasNormals:   opts.Normals,
		HasTexCoords: opts.TexCoords,
	}
}

// Triangulate splits every cell of a size x size vertex grid into two
// triangles along the diagonal from (row, col) to (row+1, col+1).
func Triangulate(size int) []Face {
	faces := make([]Face, 0, 2*(size-1)*(size-1))
	for row := 0; row < size-1; row++ {
		for col := 0; col < size-1; col++ {
			i0 := row*size + col
			i1 := i0 + 1
			i2 := i0 + size + 1
			i3 := i0 + size
			faces = append(faces, Face{i0, i1, i2}, Face{i0, i2, i3})
		}
	}
	return faces
}

func computeBounds(vertices []Vertex) Bounds {
	if len(vertices) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: vertices[0].Position, Max: vertices[0].Position}
	for _, v := range vertices[1:] {
		b.Min = b.Min.Min(v.Position)
		b.Max = b.Max.Max(v.Position)
	}
	return b
}
