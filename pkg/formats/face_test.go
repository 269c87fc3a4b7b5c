package formats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/objscene/pkg/math"
)

// makeStreams returns streams with n positions, texcoords and normals.
func makeStreams(n int) *OBJStreams {
	s := &OBJStreams{}
	for i := 0; i < n; i++ {
		s.Positions = append(s.Positions, math.Vec3{X: float32(i)})
		s.TexCoords = append(s.TexCoords, math.Vec2{X: float32(i)})
		s.Normals = append(s.Normals, math.Vec3{Y: 1})
	}
	return s
}

func TestParseFace_Grammars(t *testing.T) {
	streams := makeStreams(4)

	tests := []struct {
		name  string
		value string
		want  []Corner
	}{
		{
			name:  "position only",
			value: "1 2 3",
			want: []Corner{
				{0, NoIndex, NoIndex}, {1, NoIndex, NoIndex}, {2, NoIndex, NoIndex},
			},
		},
		{
			name:  "position texcoord normal",
			value: "1/2/3 2/3/4 3/4/1",
			want:  []Corner{{0, 1, 2}, {1, 2, 3}, {2, 3, 0}},
		},
		{
			name:  "position normal",
			value: "1//4 2//4 3//4",
			want:  []Corner{{0, NoIndex, 3}, {1, NoIndex, 3}, {2, NoIndex, 3}},
		},
		{
			name:  "position texcoord",
			value: "1/1 2/2 3/3",
			want:  []Corner{{0, 0, NoIndex}, {1, 1, NoIndex}, {2, 2, NoIndex}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFace(tt.value, streams, FaceOptions{Quads: true})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFace_QuadSplit(t *testing.T) {
	streams := makeStreams(4)

	got, err := ParseFace("1//1 2//1 3//1 4//1", streams, FaceOptions{Quads: true})
	require.NoError(t, err)

	a := Corner{0, NoIndex, 0}
	b := Corner{1, NoIndex, 0}
	c := Corner{2, NoIndex, 0}
	d := Corner{3, NoIndex, 0}
	assert.Equal(t, []Corner{a, b, c, a, c, d}, got)
}

func TestParseFace_Errors(t *testing.T) {
	streams := makeStreams(4)

	tests := []struct {
		name    string
		value   string
		opts    FaceOptions
		wantErr error
	}{
		{"two corners", "1 2", FaceOptions{Quads: true}, ErrCornerCount},
		{"pentagon", "1 2 3 4 1", FaceOptions{Quads: true}, ErrCornerCount},
		{"quad without quads", "1 2 3 4", FaceOptions{}, ErrCornerCount},
		{"mixed grammars", "1/1/1 2//1 3/3/1", FaceOptions{Quads: true}, ErrMixedCorners},
		{"mixed position only", "1 2//1 3//1", FaceOptions{Quads: true}, ErrMixedCorners},
		{"trailing slash", "1/ 2/ 3/", FaceOptions{Quads: true}, ErrUnsupportedFace},
		{"empty normal", "1// 2// 3//", FaceOptions{Quads: true}, ErrUnsupportedFace},
		{"too many parts", "1/1/1/1 2/2/2/2 3/3/3/3", FaceOptions{Quads: true}, ErrUnsupportedFace},
		{"zero index", "0 1 2", FaceOptions{Quads: true}, ErrIndexOutOfRange},
		{"negative index", "-1 -2 -3", FaceOptions{Quads: true}, ErrIndexOutOfRange},
		{"position past end", "1 2 5", FaceOptions{Quads: true}, ErrIndexOutOfRange},
		{"normal past end", "1//9 2//1 3//1", FaceOptions{Quads: true}, ErrIndexOutOfRange},
		{"texcoord past end", "1/9/1 2/1/1 3/1/1", FaceOptions{Quads: true}, ErrIndexOutOfRange},
		{"not a number", "a b c", FaceOptions{Quads: true}, ErrMalformedNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFace(tt.value, streams, tt.opts)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, got)
		})
	}
}

func TestParseFace_IndexAgainstDeclaredSoFar(t *testing.T) {
	streams := makeStreams(3)
	_, err := ParseFace("1 2 4", streams, FaceOptions{})
	require.ErrorIs(t, err, ErrIndexOutOfRange)

	streams.Positions = append(streams.Positions, math.Vec3{})
	_, err = ParseFace("1 2 4", streams, FaceOptions{})
	assert.NoError(t, err)
}

func TestTriangulate(t *testing.T) {
	c := func(i int) Corner { return Corner{i, NoIndex, NoIndex} }

	assert.Equal(t, []Corner{c(0), c(1), c(2)}, Triangulate([]Corner{c(0), c(1), c(2)}))
	assert.Equal(t,
		[]Corner{c(5), c(6), c(7), c(5), c(7), c(8)},
		Triangulate([]Corner{c(5), c(6), c(7), c(8)}))
	assert.Nil(t, Triangulate([]Corner{c(0), c(1)}))
}

func TestCornerFormat_String(t *testing.T) {
	assert.Equal(t, "v//vn", CornerPositionNormal.String())
	assert.Equal(t, "v/vt/vn", CornerPositionTexCoordNormal.String())
	assert.Equal(t, "invalid", CornerInvalid.String())
}
