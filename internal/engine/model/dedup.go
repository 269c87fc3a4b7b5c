package model

import "github.com/Faultbox/objscene/pkg/formats"

// vertexKey is the raw (position, texcoord, normal) index triple of a corner.
type vertexKey struct {
	pos, uv, norm int
}

// dedup assigns output vertex indices to corners. Corners citing the same
// raw triple share a vertex; any difference (a UV or normal seam) yields a
// new one.
type dedup struct {
	streams  *formats.OBJStreams
	index    map[vertexKey]uint32
	vertices []Vertex
}

func newDedup(streams *formats.OBJStreams) *dedup {
	return &dedup{
		streams: streams,
		index:   make(map[vertexKey]uint32),
	}
}

// resolve returns the output index for c, appending a vertex the first
// time its triple is seen. c must already be validated against the streams.
func (d *dedup) resolve(c formats.Corner) uint32 {
	key := vertexKey{c.Position, c.TexCoord, c.Normal}
	if idx, ok := d.index[key]; ok {
		return idx
	}

	v := Vertex{Position: d.streams.Positions[c.Position]}
	if c.HasTexCoord() {
		v.TexCoord = d.streams.TexCoords[c.TexCoord].FlipV()
	}
	if c.HasNormal() {
		v.Normal = d.streams.Normals[c.Normal]
	}

	idx := uint32(len(d.vertices))
	d.vertices = append(d.vertices, v)
	d.index[key] = idx
	return idx
}

// len returns the number of distinct vertices emitted so far.
func (d *dedup) len() int {
	return len(d.vertices)
}
