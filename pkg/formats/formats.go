// Package formats provides parsers for the Wavefront OBJ model format and
// its companion MTL material library format.
//
// The parsers here are deliberately low level: they classify lines, store raw
// attribute streams and turn face lines into triangle corners. Assembling
// renderable meshes is done by internal/engine/model.
package formats

import (
	"errors"
	"fmt"
)

// Parse errors. They are wrapped with detail, so test with errors.Is.
var (
	ErrUnsupportedFace = errors.New("unsupported face corner grammar")
	ErrMixedCorners    = errors.New("face mixes corner grammars")
	ErrCornerCount     = errors.New("unsupported face corner count")
	ErrIndexOutOfRange = errors.New("face index out of range")
	ErrMalformedNumber = errors.New("malformed number")
	ErrMissingValues   = errors.New("too few values")
)

// ParseError identifies the file and line a parse failure came from.
type ParseError struct {
	File string // file the line was read from
	Line int    // 1-based line number
	Text string // offending line, trimmed
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %v: %q", e.File, e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
