package formats

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Faultbox/midgard-terrain/pkg/math"
)

// OBJFace is a triangle. Indices are 1-based; 0 means the attribute is absent.
type OBJFace struct {
	V [3]int
	T [3]int
	N [3]int
}

// OBJ holds the records of a parsed Wavefront OBJ file.
type OBJ struct {
	Vertices  []math.Vec3
	Normals   []math.Vec3
	TexCoords []math.Vec2
	Faces     []OBJFace
	Comments  []string
	Ignored   int // records of unsupported kinds (o, g, s, usemtl, ...)
}

// ParseOBJ reads triangle-mesh OBJ records and checks that every face index
// refers to an existing record.
func ParseOBJ(r io.Reader) (*OBJ, error) {
	obj := &OBJ{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		if strings.HasPrefix(text, "#") {
			obj.Comments = append(obj.Comments, strings.TrimSpace(text[1:]))
			continue
		}

		fields := strings.Fields(text)
		var err error
		switch fields[0] {
		case "v":
			var p [3]float32
			p, err = parseFloats3(fields[1:])
			obj.Vertices = append(obj.Vertices, math.Vec3{X: p[0], Y: p[1], Z: p[2]})
		case "vn":
			var n [3]float32
			n, err = parseFloats3(fields[1:])
			obj.Normals = append(obj.Normals, math.Vec3{X: n[0], Y: n[1], Z: n[2]})
		case "vt":
			var t math.Vec2
			t, err = parseTexCoord(fields[1:])
			obj.TexCoords = append(obj.TexCoords, t)
		case "f":
			var f OBJFace
			f, err = parseFace(fields[1:])
			obj.Faces = append(obj.Faces, f)
		default:
			obj.Ignored++
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedRecord, line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading OBJ: %w", err)
	}

	if err := obj.validate(); err != nil {
		return nil, err
	}
	return obj, nil
}

func (o *OBJ) validate() error {
	for i, f := range o.Faces {
		for c := range 3 {
			if err := checkIndex(i, "vertex", f.V[c], len(o.Vertices), false); err != nil {
				return err
			}
			if err := checkIndex(i, "texcoord", f.T[c], len(o.TexCoords), true); err != nil {
				return err
			}
			if err := checkIndex(i, "normal", f.N[c], len(o.Normals), true); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkIndex(face int, kind string, idx, count int, optional bool) error {
	if idx == 0 && optional {
		return nil
	}
	if idx < 1 || idx > count {
		return fmt.Errorf("%w: face %d %s index %d not in [1, %d]", ErrFaceIndex, face+1, kind, idx, count)
	}
	return nil
}

func parseFloats3(fields []string) ([3]float32, error) {
	var out [3]float32
	if len(fields) < 3 {
		return out, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	for i := range 3 {
		v, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return out, err
		}
		out[i] = float32(v)
	}
	return out, nil
}

func parseTexCoord(fields []string) (math.Vec2, error) {
	if len(fields) < 2 {
		return math.Vec2{}, fmt.Errorf("expected 2 components, got %d", len(fields))
	}
	u, err := strconv.ParseFloat(fields[0], 32)
	if err != nil {
		return math.Vec2{}, err
	}
	v, err := strconv.ParseFloat(fields[1], 32)
	if err != nil {
		return math.Vec2{}, err
	}
	return math.Vec2{X: float32(u), Y: float32(v)}, nil
}

// parseFace accepts "v", "v/t", "v//n" and "v/t/n" corners.
func parseFace(fields []string) (OBJFace, error) {
	var f OBJFace
	if len(fields) != 3 {
		return f, fmt.Errorf("expected triangle, got %d corners", len(fields))
	}
	for c, field := range fields {
		parts := strings.Split(field, "/")
		if len(parts) > 3 {
			return f, fmt.Errorf("corner %q has too many parts", field)
		}
		dst := [3]*int{&f.V[c], &f.T[c], &f.N[c]}
		for i, part := range parts {
			if part == "" {
				if i == 0 {
					return f, fmt.Errorf("corner %q has no vertex index", field)
				}
				continue
			}
			n, err := strconv.Atoi(part)
			if err != nil {
				return f, err
			}
			*dst[i] = n
		}
	}
	return f, nil
}
