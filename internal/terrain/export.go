package terrain

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-terrain/pkg/formats"
	"github.com/Faultbox/midgard-terrain/pkg/heightmap"
)

// Exporter writes heightmaps as OBJ meshes.
type Exporter struct {
	opts Options
	log  *zap.Logger
}

// NewExporter returns an exporter. A nil logger disables logging.
func NewExporter(opts Options, log *zap.Logger) *Exporter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Exporter{opts: opts, log: log}
}

// Export builds the mesh for g and writes it to w: positions, then normals
// and texture coordinates if enabled, then faces.
func (e *Exporter) Export(w io.Writer, g *heightmap.Grid) (*Mesh, error) {
	mesh := BuildMesh(g, e.opts)
	ow := formats.NewOBJWriter(w)
	if err := mesh.encode(ow, e.opts.Header); err != nil {
		return nil, err
	}
	e.log.Debug("mesh written",
		zap.Int("v", ow.Count("v")),
		zap.Int("vn", ow.Count("vn")),
		zap.Int("vt", ow.Count("vt")),
		zap.Int("f", ow.Count("f")),
		zap.Stringer("face_layout", mesh.FaceLayout()),
	)
	return mesh, nil
}

// FaceLayout returns the face record shape matching the mesh attributes.
func (m *Mesh) FaceLayout() formats.FaceLayout {
	return formats.NewFaceLayout(m.HasTexCoords, m.HasNormals)
}

// WriteOBJ writes the mesh records in order. Any write failure is returned
// wrapped in formats.ErrWrite.
func (m *Mesh) WriteOBJ(w io.Writer, header ...string) error {
	return m.encode(formats.NewOBJWriter(w), header)
}

func (m *Mesh) encode(ow *formats.OBJWriter, header []string) error {
	for _, line := range header {
		if err := ow.Comment(line); err != nil {
			return err
		}
	}
	for _, v := range m.Vertices {
		if err := ow.Vertex(v.Position); err != nil {
			return err
		}
	}
	if m.HasNormals {
		for _, v := range m.Vertices {
			if err := ow.Normal(v.Normal); err != nil {
				return err
			}
		}
	}
	if m.HasTexCoords {
		for _, v := range m.Vertices {
			if err := ow.TexCoord(v.TexCoord); err != nil {
				return err
			}
		}
	}

	layout := m.FaceLayout()
	for _, f := range m.Faces {
		// OBJ indices are 1-based.
		if err := ow.Face(layout, [3]int{f[0] + 1, f[1] + 1, f[2] + 1}); err != nil {
			return err
		}
	}

	if err := ow.Flush(); err != nil {
		return fmt.Errorf("exporting %dx%d mesh: %w", m.Size, m.Size, err)
	}
	return nil
}
