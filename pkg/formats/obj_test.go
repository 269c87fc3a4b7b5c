package formats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/objscene/pkg/math"
)

func TestSplitOBJLine(t *testing.T) {
	tests := []struct {
		line      string
		wantType  OBJLineType
		wantValue string
	}{
		{"v 1 2 3", OBJVertex, "1 2 3"},
		{"vt 0.5 0.25", OBJTexCoord, "0.5 0.25"},
		{"vn 0 1 0", OBJNormal, "0 1 0"},
		{"f 1 2 3", OBJFace, "1 2 3"},
		{"f\t1//1 2//1 3//1", OBJFace, "1//1 2//1 3//1"},
		{"mtllib scene.mtl", OBJMtlLib, "scene.mtl"},
		{"mtllib my scene.mtl", OBJMtlLib, "my scene.mtl"},
		{"usemtl brick", OBJUseMtl, "brick"},
		{"o Cube", OBJObject, "Cube"},
		{"g wall", OBJGroup, "wall"},
		{"# exported by hand", OBJComment, "exported by hand"},
		{"#", OBJComment, ""},
		{"   v  1 2 3  \r", OBJVertex, "1 2 3"},
		{"", OBJUnknown, ""},
		{"s off", OBJUnknown, "off"},
		{"V 1 2 3", OBJUnknown, "1 2 3"},
		{"vp 0.1", OBJUnknown, "0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			gotType, gotValue := SplitOBJLine(tt.line)
			assert.Equal(t, tt.wantType, gotType)
			assert.Equal(t, tt.wantValue, gotValue)
		})
	}
}

func TestOBJLineType_String(t *testing.T) {
	assert.Equal(t, "usemtl", OBJUseMtl.String())
	assert.Equal(t, "vt", OBJTexCoord.String())
	assert.Equal(t, "unknown", OBJUnknown.String())
}

func TestOBJStreams_Append(t *testing.T) {
	var s OBJStreams

	require.NoError(t, s.Append(OBJVertex, "1 2 3"))
	require.NoError(t, s.Append(OBJVertex, "4 5 6 1.0")) // w is ignored
	require.NoError(t, s.Append(OBJTexCoord, "0.5 0.25 0"))
	require.NoError(t, s.Append(OBJNormal, "0 0 1"))

	assert.Equal(t, []math.Vec3{{X: 1, Y: 2, Z: 3}, {X: 4, Y: 5, Z: 6}}, s.Positions)
	assert.Equal(t, []math.Vec2{{X: 0.5, Y: 0.25}}, s.TexCoords)
	assert.Equal(t, []math.Vec3{{X: 0, Y: 0, Z: 1}}, s.Normals)
}

func TestOBJStreams_AppendErrors(t *testing.T) {
	tests := []struct {
		name    string
		typ     OBJLineType
		value   string
		wantErr error
	}{
		{"short vertex", OBJVertex, "1 2", ErrMissingValues},
		{"short texcoord", OBJTexCoord, "0.5", ErrMissingValues},
		{"bad normal", OBJNormal, "0 x 1", ErrMalformedNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s OBJStreams
			err := s.Append(tt.typ, tt.value)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, s.Positions)
			assert.Empty(t, s.TexCoords)
			assert.Empty(t, s.Normals)
		})
	}

	var s OBJStreams
	assert.Error(t, s.Append(OBJFace, "1 2 3"))
}

func TestParseError(t *testing.T) {
	err := &ParseError{File: "cube.obj", Line: 7, Text: "f 1 2", Err: ErrCornerCount}
	assert.ErrorIs(t, err, ErrCornerCount)
	assert.Contains(t, err.Error(), "cube.obj:7")
	assert.Contains(t, err.Error(), `"f 1 2"`)
}
