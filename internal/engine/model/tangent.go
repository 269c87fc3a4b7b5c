package model

import "github.com/Faultbox/objscene/pkg/math"

// ComputeTangents fills the Tangent and Bitangent of every vertex from the
// UV gradients of the triangles that use it, then normalizes them.
//
// Triangles whose UVs span no area cannot define a tangent direction and
// are skipped; a vertex touched only by such triangles keeps a zero tangent.
// The number of skipped triangles is returned.
//
// Under TangentAccumulate, contributions from mirrored UV islands can cancel
// at a shared vertex. Such a vertex falls back to the last triangle's
// direction so it still ends with a unit tangent.
func ComputeTangents(vertices []Vertex, indices []uint32, policy TangentPolicy) int {
	for i := range vertices {
		vertices[i].Tangent = math.Vec3{}
		vertices[i].Bitangent = math.Vec3{}
	}

	var acc []tangentSum
	if policy != TangentOverwrite {
		acc = make([]tangentSum, len(vertices))
	}

	skipped := 0
	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		v0, v1, v2 := vertices[i0], vertices[i1], vertices[i2]

		e1 := v1.Position.Sub(v0.Position)
		e2 := v2.Position.Sub(v0.Position)
		d1 := v1.TexCoord.Sub(v0.TexCoord)
		d2 := v2.TexCoord.Sub(v0.TexCoord)

		det := d1.Cross(d2)
		if det == 0 {
			skipped++
			continue
		}
		f := 1 / det

		tangent := e1.Scale(d2.Y).Sub(e2.Scale(d1.Y)).Scale(f)
		bitangent := e2.Scale(d1.X).Sub(e1.Scale(d2.X)).Scale(f)
		if !tangent.IsFinite() || !bitangent.IsFinite() {
			skipped++
			continue
		}

		for _, idx := range [3]uint32{i0, i1, i2} {
			v := &vertices[idx]
			if policy == TangentOverwrite {
				v.Tangent = tangent
				v.Bitangent = bitangent
			} else {
				v.Tangent = v.Tangent.Add(tangent)
				v.Bitangent = v.Bitangent.Add(bitangent)
				acc[idx].add(tangent, bitangent)
			}
		}
	}

	for i := range vertices {
		v := &vertices[i]
		if acc != nil {
			v.Tangent = acc[i].tangent.resolve(v.Tangent)
			v.Bitangent = acc[i].bitangent.resolve(v.Bitangent)
		}
		v.Tangent = v.Tangent.Normalize()
		v.Bitangent = v.Bitangent.Normalize()
	}
	return skipped
}

// cancelRatio is how small a sum may get relative to the total length of
// its contributions before it is treated as cancelled.
const cancelRatio = 1e-4

// directionSum tracks what an accumulated direction was built from.
type directionSum struct {
	weight float32   // sum of contribution lengths
	last   math.Vec3 // most recent contribution
}

func (d *directionSum) add(v math.Vec3) {
	d.weight += v.Length()
	d.last = v
}

// resolve returns sum, or the last contribution if the contributions
// cancelled out.
func (d directionSum) resolve(sum math.Vec3) math.Vec3 {
	if d.weight > 0 && sum.Length() <= d.weight*cancelRatio {
		return d.last
	}
	return sum
}

type tangentSum struct {
	tangent, bitangent directionSum
}

func (s *tangentSum) add(tangent, bitangent math.Vec3) {
	s.tangent.add(tangent)
	s.bitangent.add(bitangent)
}
