package formats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/Faultbox/midgard-terrain/pkg/math"
)

// OBJ format errors.
var (
	ErrWrite           = errors.New("writing OBJ record")
	ErrMalformedRecord = errors.New("malformed OBJ record")
	ErrFaceIndex       = errors.New("OBJ face index out of range")
)

// FaceLayout selects which attribute indices a face record carries.
type FaceLayout int

const (
	FacePositions                 FaceLayout = iota // f v v v
	FacePositionsTexCoords                          // f v/t v/t v/t
	FacePositionsNormals                            // f v//n v//n v//n
	FacePositionsTexCoordsNormals                   // f v/t/n v/t/n v/t/n
)

// NewFaceLayout returns the layout for the given attribute combination.
func NewFaceLayout(texCoords, normals bool) FaceLayout {
	switch {
	case texCoords && normals:
		return FacePositionsTexCoordsNormals
	case normals:
		return FacePositionsNormals
	case texCoords:
		return FacePositionsTexCoords
	default:
		return FacePositions
	}
}

// String returns the record shape of one face corner.
func (l FaceLayout) String() string {
	switch l {
	case FacePositionsTexCoords:
		return "v/t"
	case FacePositionsNormals:
		return "v//n"
	case FacePositionsTexCoordsNormals:
		return "v/t/n"
	default:
		return "v"
	}
}

// OBJWriter encodes Wavefront OBJ records, one per line.
// Indices passed to Face are 1-based, as the format requires.
// After the first failed write every call returns the same error.
type OBJWriter struct {
	w       *bufio.Writer
	buf     []byte
	err     error
	records map[string]int
}

// NewOBJWriter returns a buffered writer. Call Flush when done.
func NewOBJWriter(w io.Writer) *OBJWriter {
	return &OBJWriter{
		w:       bufio.NewWriterSize(w, 64*1024),
		buf:     make([]byte, 0, 128),
		records: make(map[string]int),
	}
}

// Comment writes a "# text" line.
func (o *OBJWriter) Comment(text string) error {
	o.buf = append(o.buf[:0], "# "...)
	o.buf = append(o.buf, text...)
	return o.emit("#")
}

// Vertex writes a "v x y z" record.
func (o *OBJWriter) Vertex(p math.Vec3) error {
	o.buf = append(o.buf[:0], 'v')
	o.buf = appendFloats(o.buf, p.X, p.Y, p.Z)
	return o.emit("v")
}

// Normal writes a "vn x y z" record.
func (o *OBJWriter) Normal(n math.Vec3) error {
	o.buf = append(o.buf[:0], "vn"...)
	o.buf = appendFloats(o.buf, n.X, n.Y, n.Z)
	return o.emit("vn")
}

// TexCoord writes a "vt u v" record.
func (o *OBJWriter) TexCoord(t math.Vec2) error {
	o.buf = append(o.buf[:0], "vt"...)
	o.buf = appendFloats(o.buf, t.X, t.Y)
	return o.emit("vt")
}

// Face writes a triangle. Each corner uses the same index for every
// attribute the layout carries.
func (o *OBJWriter) Face(layout FaceLayout, idx [3]int) error {
	o.buf = append(o.buf[:0], 'f')
	for _, i := range idx {
		o.buf = append(o.buf, ' ')
		o.buf = strconv.AppendInt(o.buf, int64(i), 10)
		switch layout {
		case FacePositionsTexCoords:
			o.buf = append(o.buf, '/')
			o.buf = strconv.AppendInt(o.buf, int64(i), 10)
		case FacePositionsNormals:
			o.buf = append(o.buf, "//"...)
			o.buf = strconv.AppendInt(o.buf, int64(i), 10)
		case FacePositionsTexCoordsNormals:
			o.buf = append(o.buf, '/')
			o.buf = strconv.AppendInt(o.buf, int64(i), 10)
			o.buf = append(o.buf, '/')
			o.buf = strconv.AppendInt(o.buf, int64(i), 10)
		}
	}
	return o.emit("f")
}

// Flush writes any buffered records to the underlying writer.
func (o *OBJWriter) Flush() error {
	if o.err != nil {
		return o.err
	}
	if err := o.w.Flush(); err != nil {
		o.err = fmt.Errorf("%w: flush: %w", ErrWrite, err)
	}
	return o.err
}

// Count returns how many records of kind ("v", "vn", "vt", "f", "#") were written.
func (o *OBJWriter) Count(kind string) int {
	return o.records[kind]
}

func (o *OBJWriter) emit(kind string) error {
	if o.err != nil {
		return o.err
	}
	o.buf = append(o.buf, '\n')
	n := o.records[kind] + 1
	if _, err := o.w.Write(o.buf); err != nil {
		o.err = fmt.Errorf("%w: %s record %d: %w", ErrWrite, kind, n, err)
		return o.err
	}
	o.records[kind] = n
	return nil
}

func appendFloats(b []byte, vs ...float32) []byte {
	for _, v := range vs {
		b = append(b, ' ')
		b = strconv.AppendFloat(b, float64(v), 'f', -1, 32)
	}
	return b
}
