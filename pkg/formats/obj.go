package formats

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Faultbox/objscene/pkg/math"
)

// OBJLineType classifies one line of an OBJ file by its leading keyword.
type OBJLineType int

const (
	OBJUnknown  OBJLineType = iota // unrecognized or blank, ignored
	OBJComment                     // # ...
	OBJVertex                      // v x y z
	OBJTexCoord                    // vt u v
	OBJNormal                      // vn x y z
	OBJFace                        // f corner corner corner [corner]
	OBJMtlLib                      // mtllib file.mtl
	OBJUseMtl                      // usemtl name
	OBJObject                      // o name
	OBJGroup                       // g name
)

// String returns the OBJ keyword for the line type.
func (t OBJLineType) String() string {
	switch t {
	case OBJComment:
		return "#"
	case OBJVertex:
		return "v"
	case OBJTexCoord:
		return "vt"
	case OBJNormal:
		return "vn"
	case OBJFace:
		return "f"
	case OBJMtlLib:
		return "mtllib"
	case OBJUseMtl:
		return "usemtl"
	case OBJObject:
		return "o"
	case OBJGroup:
		return "g"
	default:
		return "unknown"
	}
}

var objKeywords = map[string]OBJLineType{
	"v":      OBJVertex,
	"vt":     OBJTexCoord,
	"vn":     OBJNormal,
	"f":      OBJFace,
	"mtllib": OBJMtlLib,
	"usemtl": OBJUseMtl,
	"o":      OBJObject,
	"g":      OBJGroup,
}

// SplitOBJLine returns the line's type and the trimmed text after its
// keyword. Keywords are case-sensitive.
func SplitOBJLine(line string) (OBJLineType, string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return OBJUnknown, ""
	}
	if line[0] == '#' {
		return OBJComment, strings.TrimSpace(line[1:])
	}

	keyword, value := line, ""
	if i := strings.IndexAny(line, " \t"); i != -1 {
		keyword = line[:i]
		value = strings.TrimSpace(line[i+1:])
	}
	if t, ok := objKeywords[keyword]; ok {
		return t, value
	}
	return OBJUnknown, value
}

// OBJStreams holds the raw attribute tuples of an OBJ file in the order
// they were declared. Face corners index into these slices.
type OBJStreams struct {
	Positions []math.Vec3
	TexCoords []math.Vec2
	Normals   []math.Vec3
}

// Append parses the value of a v, vt or vn line and appends it to the
// matching stream. Extra components (w, third texture coordinate) are ignored.
func (s *OBJStreams) Append(t OBJLineType, value string) error {
	switch t {
	case OBJVertex:
		f, err := parseFloats(value, 3)
		if err != nil {
			return err
		}
		s.Positions = append(s.Positions, math.Vec3{X: f[0], Y: f[1], Z: f[2]})
	case OBJTexCoord:
		f, err := parseFloats(value, 2)
		if err != nil {
			return err
		}
		s.TexCoords = append(s.TexCoords, math.Vec2{X: f[0], Y: f[1]})
	case OBJNormal:
		f, err := parseFloats(value, 3)
		if err != nil {
			return err
		}
		s.Normals = append(s.Normals, math.Vec3{X: f[0], Y: f[1], Z: f[2]})
	default:
		return fmt.Errorf("not an attribute line: %s", t)
	}
	return nil
}

// parseFloats reads the first n whitespace separated floats of value.
func parseFloats(value string, n int) ([]float32, error) {
	fields := strings.Fields(value)
	if len(fields) < n {
		return nil, fmt.Errorf("%w: want %d, got %d", ErrMissingValues, n, len(fields))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrMalformedNumber, fields[i])
		}
		out[i] = float32(f)
	}
	return out, nil
}
