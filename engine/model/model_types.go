package model

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Geometry is CPU-side indexed triangle data.
type Geometry struct {
	Vertices []GPUVertex
	Indices  []uint32
}

// Transformed returns a copy of the geometry with positions transformed by m and normals by its rotation part.
// m must not contain non-uniform scale.
//
// Parameters:
//   - m: the transform to apply
//
// Returns:
//   - Geometry: the transformed copy
func (g Geometry) Transformed(m mgl32.Mat4) Geometry {
	out := Geometry{
		Vertices: make([]GPUVertex, len(g.Vertices)),
		Indices:  append([]uint32(nil), g.Indices...),
	}
	for i, v := range g.Vertices {
		p := m.Mul4x1(mgl32.Vec3(v.Position).Vec4(1)).Vec3()
		n := m.Mul4x1(mgl32.Vec3(v.Normal).Vec4(0)).Vec3()
		if n.Len() > 0 {
			n = n.Normalize()
		}
		out.Vertices[i] = GPUVertex{Position: p, Normal: n}
	}
	return out
}

// Merge concatenates geometries into one, rebasing each part's indices onto the combined vertex list.
//
// Parameters:
//   - parts: the geometries to merge, in order
//
// Returns:
//   - Geometry: the merged geometry
func Merge(parts ...Geometry) Geometry {
	var nv, ni int
	for _, p := range parts {
		nv += len(p.Vertices)
		ni += len(p.Indices)
	}
	out := Geometry{
		Vertices: make([]GPUVertex, 0, nv),
		Indices:  make([]uint32, 0, ni),
	}
	for _, p := range parts {
		base := uint32(len(out.Vertices))
		out.Vertices = append(out.Vertices, p.Vertices...)
		for _, idx := range p.Indices {
			out.Indices = append(out.Indices, base+idx)
		}
	}
	return out
}

// BoundingRadius returns the largest distance of any vertex from the model origin.
//
// Returns:
//   - float32: the bounding sphere radius around the origin
func (g Geometry) BoundingRadius() float32 {
	var r float32
	for _, v := range g.Vertices {
		r = max(r, mgl32.Vec3(v.Position).Len())
	}
	return r
}
