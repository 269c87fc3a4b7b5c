package formats

import (
	"fmt"
	"strconv"
	"strings"
)

// CornerFormat is the grammar of a face corner token.
type CornerFormat int

const (
	CornerInvalid                CornerFormat = iota
	CornerPosition                            // v
	CornerPositionTexCoord                    // v/vt
	CornerPositionTexCoordNormal              // v/vt/vn
	CornerPositionNormal                      // v//vn
)

// String returns the corner grammar in OBJ notation.
func (f CornerFormat) String() string {
	switch f {
	case CornerPosition:
		return "v"
	case CornerPositionTexCoord:
		return "v/vt"
	case CornerPositionTexCoordNormal:
		return "v/vt/vn"
	case CornerPositionNormal:
		return "v//vn"
	default:
		return "invalid"
	}
}

// NoIndex marks an attribute a corner does not reference.
const NoIndex = -1

// Corner is one vertex reference of a face, with 0-based indices into
// OBJStreams. TexCoord and Normal are NoIndex when the corner omits them.
type Corner struct {
	Position int
	TexCoord int
	Normal   int
}

// HasTexCoord reports whether the corner references a texture coordinate.
func (c Corner) HasTexCoord() bool {
	return c.TexCoord != NoIndex
}

// HasNormal reports whether the corner references a normal.
func (c Corner) HasNormal() bool {
	return c.Normal != NoIndex
}

// FaceOptions controls which faces ParseFace accepts.
type FaceOptions struct {
	// Quads allows 4-corner faces; otherwise only triangles are accepted.
	Quads bool
}

// ParseFace parses the corner tokens of an f line, validates every index
// against streams and returns the face as triangle corners, three per
// triangle. All corners must share the grammar of the first one.
func ParseFace(value string, streams *OBJStreams, opts FaceOptions) ([]Corner, error) {
	tokens := strings.Fields(value)
	maxCorners := 3
	if opts.Quads {
		maxCorners = 4
	}
	if len(tokens) < 3 || len(tokens) > maxCorners {
		return nil, fmt.Errorf("%w: %d", ErrCornerCount, len(tokens))
	}

	corners := make([]Corner, len(tokens))
	var format CornerFormat
	for i, tok := range tokens {
		c, f, err := parseCorner(tok, streams)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			format = f
		} else if f != format {
			return nil, fmt.Errorf("%w: %q is %s, first corner is %s", ErrMixedCorners, tok, f, format)
		}
		corners[i] = c
	}
	return Triangulate(corners), nil
}

// Triangulate splits a 3 or 4 corner polygon into triangles. A quad
// (A,B,C,D) always becomes (A,B,C) then (A,C,D), splitting along the 0-2
// diagonal so convex quads keep their winding.
func Triangulate(corners []Corner) []Corner {
	switch len(corners) {
	case 3:
		return []Corner{corners[0], corners[1], corners[2]}
	case 4:
		return []Corner{
			corners[0], corners[1], corners[2],
			corners[0], corners[2], corners[3],
		}
	default:
		return nil
	}
}

// parseCorner parses one corner token and converts its 1-based indices to
// 0-based ones.
func parseCorner(tok string, streams *OBJStreams) (Corner, CornerFormat, error) {
	c := Corner{Position: NoIndex, TexCoord: NoIndex, Normal: NoIndex}
	parts := strings.Split(tok, "/")

	var format CornerFormat
	switch {
	case len(parts) == 1:
		format = CornerPosition
	case len(parts) == 2 && parts[1] != "":
		format = CornerPositionTexCoord
	case len(parts) == 3 && parts[1] == "" && parts[2] != "":
		format = CornerPositionNormal
	case len(parts) == 3 && parts[1] != "" && parts[2] != "":
		format = CornerPositionTexCoordNormal
	default:
		return c, CornerInvalid, fmt.Errorf("%w: %q", ErrUnsupportedFace, tok)
	}

	var err error
	if c.Position, err = resolveIndex(parts[0], len(streams.Positions), "position"); err != nil {
		return c, format, err
	}
	if format == CornerPositionTexCoord || format == CornerPositionTexCoordNormal {
		if c.TexCoord, err = resolveIndex(parts[1], len(streams.TexCoords), "texcoord"); err != nil {
			return c, format, err
		}
	}
	if format == CornerPositionNormal || format == CornerPositionTexCoordNormal {
		if c.Normal, err = resolveIndex(parts[2], len(streams.Normals), "normal"); err != nil {
			return c, format, err
		}
	}
	return c, format, nil
}

// resolveIndex converts a 1-based raw index to a 0-based one, checking it
// against the number of attributes declared so far. Relative (negative)
// indices are not supported.
func resolveIndex(s string, count int, attr string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s index %q", ErrMalformedNumber, attr, s)
	}
	if n < 1 || n > count {
		return 0, fmt.Errorf("%w: %s %d of %d", ErrIndexOutOfRange, attr, n, count)
	}
	return n - 1, nil
}
