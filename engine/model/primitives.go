package model

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Carmen-Shannon/oxy-trackside/common"
)

// Path is the subset of a curve that swept geometry needs.
type Path interface {
	// PointAt returns the position at normalized arc length u in [0, 1].
	PointAt(u float64) mgl64.Vec3

	// TangentAt returns the unit tangent at normalized arc length u in [0, 1].
	TangentAt(u float64) mgl64.Vec3
}

// Box returns an axis-aligned box of the given size centred on the origin, with flat per-face normals.
//
// Parameters:
//   - w, h, d: extents along X, Y and Z
//
// Returns:
//   - Geometry: 24 vertices, 36 indices
func Box(w, h, d float32) Geometry {
	hx, hy, hz := w/2, h/2, d/2
	faces := []struct {
		n       mgl32.Vec3
		corners [4]mgl32.Vec3
	}{
		{mgl32.Vec3{1, 0, 0}, [4]mgl32.Vec3{{hx, -hy, hz}, {hx, -hy, -hz}, {hx, hy, -hz}, {hx, hy, hz}}},
		{mgl32.Vec3{-1, 0, 0}, [4]mgl32.Vec3{{-hx, -hy, -hz}, {-hx, -hy, hz}, {-hx, hy, hz}, {-hx, hy, -hz}}},
		{mgl32.Vec3{0, 1, 0}, [4]mgl32.Vec3{{-hx, hy, hz}, {hx, hy, hz}, {hx, hy, -hz}, {-hx, hy, -hz}}},
		{mgl32.Vec3{0, -1, 0}, [4]mgl32.Vec3{{-hx, -hy, -hz}, {hx, -hy, -hz}, {hx, -hy, hz}, {-hx, -hy, hz}}},
		{mgl32.Vec3{0, 0, 1}, [4]mgl32.Vec3{{-hx, -hy, hz}, {hx, -hy, hz}, {hx, hy, hz}, {-hx, hy, hz}}},
		{mgl32.Vec3{0, 0, -1}, [4]mgl32.Vec3{{hx, -hy, -hz}, {-hx, -hy, -hz}, {-hx, hy, -hz}, {hx, hy, -hz}}},
	}

	g := Geometry{
		Vertices: make([]GPUVertex, 0, 24),
		Indices:  make([]uint32, 0, 36),
	}
	for _, f := range faces {
		base := uint32(len(g.Vertices))
		for _, c := range f.corners {
			g.Vertices = append(g.Vertices, GPUVertex{Position: c, Normal: f.n})
		}
		g.Indices = append(g.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return g
}

// Plane returns a horizontal rectangle facing +Y, centred on the origin.
//
// Parameters:
//   - w: extent along X
//   - l: extent along Z
//
// Returns:
//   - Geometry: 4 vertices, 6 indices
func Plane(w, l float32) Geometry {
	hx, hz := w/2, l/2
	up := [3]float32{0, 1, 0}
	return Geometry{
		Vertices: []GPUVertex{
			{Position: [3]float32{-hx, 0, hz}, Normal: up},
			{Position: [3]float32{hx, 0, hz}, Normal: up},
			{Position: [3]float32{hx, 0, -hz}, Normal: up},
			{Position: [3]float32{-hx, 0, -hz}, Normal: up},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
}

// Cylinder returns a closed cylinder centred on the origin with its axis along X.
//
// Parameters:
//   - radius: the cylinder radius
//   - length: extent along X
//   - segments: radial subdivisions (minimum 3)
//
// Returns:
//   - Geometry: the cylinder mesh
func Cylinder(radius, length float32, segments int) Geometry {
	segments = max(segments, 3)
	hl := length / 2
	var g Geometry

	// side wall
	for i := 0; i <= segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		cy, cz := float32(math.Cos(a)), float32(math.Sin(a))
		n := [3]float32{0, cy, cz}
		g.Vertices = append(g.Vertices,
			GPUVertex{Position: [3]float32{-hl, cy * radius, cz * radius}, Normal: n},
			GPUVertex{Position: [3]float32{hl, cy * radius, cz * radius}, Normal: n},
		)
	}
	for i := range segments {
		a := uint32(i * 2)
		g.Indices = append(g.Indices, a, a+2, a+1, a+1, a+2, a+3)
	}

	// caps
	for _, side := range []float32{-1, 1} {
		centre := uint32(len(g.Vertices))
		n := [3]float32{side, 0, 0}
		g.Vertices = append(g.Vertices, GPUVertex{Position: [3]float32{side * hl, 0, 0}, Normal: n})
		for i := range segments {
			a := 2 * math.Pi * float64(i) / float64(segments)
			g.Vertices = append(g.Vertices, GPUVertex{
				Position: [3]float32{side * hl, float32(math.Cos(a)) * radius, float32(math.Sin(a)) * radius},
				Normal:   n,
			})
		}
		for i := range segments {
			next := (i + 1) % segments
			g.Indices = append(g.Indices, centre, centre+1+uint32(i), centre+1+uint32(next))
		}
	}
	return g
}

// Cone returns a closed cone centred on the origin with its apex along +Y.
//
// Parameters:
//   - radius: the base radius
//   - height: extent along Y
//   - segments: radial subdivisions (minimum 3)
//
// Returns:
//   - Geometry: the cone mesh
func Cone(radius, height float32, segments int) Geometry {
	segments = max(segments, 3)
	hh := height / 2
	slope := radius / height
	var g Geometry

	for i := range segments {
		a0 := 2 * math.Pi * float64(i) / float64(segments)
		a1 := 2 * math.Pi * float64(i+1) / float64(segments)
		mid := (a0 + a1) / 2
		n := mgl32.Vec3{float32(math.Cos(mid)), slope, float32(math.Sin(mid))}.Normalize()
		base := uint32(len(g.Vertices))
		g.Vertices = append(g.Vertices,
			GPUVertex{Position: [3]float32{0, hh, 0}, Normal: n},
			GPUVertex{Position: [3]float32{float32(math.Cos(a1)) * radius, -hh, float32(math.Sin(a1)) * radius}, Normal: n},
			GPUVertex{Position: [3]float32{float32(math.Cos(a0)) * radius, -hh, float32(math.Sin(a0)) * radius}, Normal: n},
		)
		g.Indices = append(g.Indices, base, base+1, base+2)
	}

	centre := uint32(len(g.Vertices))
	down := [3]float32{0, -1, 0}
	g.Vertices = append(g.Vertices, GPUVertex{Position: [3]float32{0, -hh, 0}, Normal: down})
	for i := range segments {
		a := 2 * math.Pi * float64(i) / float64(segments)
		g.Vertices = append(g.Vertices, GPUVertex{
			Position: [3]float32{float32(math.Cos(a)) * radius, -hh, float32(math.Sin(a)) * radius},
			Normal:   down,
		})
	}
	for i := range segments {
		next := (i + 1) % segments
		g.Indices = append(g.Indices, centre, centre+1+uint32(i), centre+1+uint32(next))
	}
	return g
}

// Ribbon sweeps a flat horizontal strip of the given half-width along a path, facing +Y.
// Each of the segments+1 cross-sections is centred on the path at a fixed height.
//
// Parameters:
//   - path: the centre line
//   - segments: number of lengthwise subdivisions (minimum 1)
//   - halfWidth: distance from the centre line to each edge
//   - y: the strip height
//
// Returns:
//   - Geometry: (segments+1)*2 vertices
func Ribbon(path Path, segments int, halfWidth, y float64) Geometry {
	segments = max(segments, 1)
	g := Geometry{
		Vertices: make([]GPUVertex, 0, (segments+1)*2),
		Indices:  make([]uint32, 0, segments*6),
	}
	up := [3]float32{0, 1, 0}
	for i := 0; i <= segments; i++ {
		u := float64(i) / float64(segments)
		p := path.PointAt(u)
		p[1] = y
		n := sideVector(path.TangentAt(u))
		g.Vertices = append(g.Vertices,
			GPUVertex{Position: common.Vec3f(p.Add(n.Mul(halfWidth))), Normal: up},
			GPUVertex{Position: common.Vec3f(p.Sub(n.Mul(halfWidth))), Normal: up},
		)
	}
	for i := range segments {
		a := uint32(i * 2)
		g.Indices = append(g.Indices, a, a+1, a+2, a+1, a+3, a+2)
	}
	return g
}

// Tube sweeps a circular cross-section of the given radius along a path lifted to a fixed height.
//
// Parameters:
//   - path: the centre line
//   - segments: number of lengthwise subdivisions (minimum 1)
//   - radius: the tube radius
//   - radial: number of subdivisions around the tube (minimum 3)
//   - y: the height of the tube axis
//
// Returns:
//   - Geometry: (segments+1)*(radial+1) vertices
func Tube(path Path, segments int, radius float64, radial int, y float64) Geometry {
	segments = max(segments, 1)
	radial = max(radial, 3)
	var g Geometry
	for i := 0; i <= segments; i++ {
		u := float64(i) / float64(segments)
		p := path.PointAt(u)
		p[1] = y
		t := path.TangentAt(u)
		n := sideVector(t)
		b := n.Cross(t)
		if b.Len() < 1e-9 {
			b = mgl64.Vec3{0, 1, 0}
		} else {
			b = b.Normalize()
		}
		for j := 0; j <= radial; j++ {
			a := 2 * math.Pi * float64(j) / float64(radial)
			dir := n.Mul(math.Cos(a)).Add(b.Mul(math.Sin(a)))
			g.Vertices = append(g.Vertices, GPUVertex{
				Position: common.Vec3f(p.Add(dir.Mul(radius))),
				Normal:   common.Vec3f(dir),
			})
		}
	}
	ring := uint32(radial + 1)
	for i := range segments {
		for j := range radial {
			a := uint32(i)*ring + uint32(j)
			b := a + ring
			g.Indices = append(g.Indices, a, b, a+1, b, b+1, a+1)
		}
	}
	return g
}

// sideVector is the horizontal unit normal (-t.z, 0, t.x) of a tangent, or +X when the tangent is vertical.
func sideVector(t mgl64.Vec3) mgl64.Vec3 {
	n := mgl64.Vec3{-t.Z(), 0, t.X()}
	if l := n.Len(); l > 1e-9 {
		return n.Mul(1 / l)
	}
	return mgl64.Vec3{1, 0, 0}
}
