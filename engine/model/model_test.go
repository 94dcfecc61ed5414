package model

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

type straightPath struct{}

func (straightPath) PointAt(u float64) mgl64.Vec3 { return mgl64.Vec3{0, 0, -100 * u} }
func (straightPath) TangentAt(float64) mgl64.Vec3 { return mgl64.Vec3{0, 0, -1} }

func checkIndices(t *testing.T, g Geometry) {
	t.Helper()
	if len(g.Indices)%3 != 0 {
		t.Fatalf("index count %d is not a multiple of 3", len(g.Indices))
	}
	for i, idx := range g.Indices {
		if int(idx) >= len(g.Vertices) {
			t.Fatalf("index %d = %d out of range (%d vertices)", i, idx, len(g.Vertices))
		}
	}
}

func TestBox(t *testing.T) {
	g := Box(2, 4, 6)
	if len(g.Vertices) != 24 || len(g.Indices) != 36 {
		t.Fatalf("got %d vertices %d indices", len(g.Vertices), len(g.Indices))
	}
	checkIndices(t, g)
	for _, v := range g.Vertices {
		if math.Abs(float64(v.Position[0])) != 1 || math.Abs(float64(v.Position[1])) != 2 || math.Abs(float64(v.Position[2])) != 3 {
			t.Fatalf("vertex %v is not a box corner", v.Position)
		}
	}
}

func TestPlaneFacesUp(t *testing.T) {
	g := Plane(0.6, 2)
	checkIndices(t, g)
	for _, v := range g.Vertices {
		if v.Normal != [3]float32{0, 1, 0} || v.Position[1] != 0 {
			t.Fatalf("vertex %+v is not on a +Y facing plane", v)
		}
	}
}

func TestCylinder(t *testing.T) {
	g := Cylinder(0.5, 0.4, 12)
	checkIndices(t, g)
	for _, v := range g.Vertices {
		if math.Abs(float64(v.Position[0])) > 0.2+1e-6 {
			t.Fatalf("vertex %v outside the cylinder length", v.Position)
		}
		r := math.Hypot(float64(v.Position[1]), float64(v.Position[2]))
		if r > 0.5+1e-6 {
			t.Fatalf("vertex %v outside the cylinder radius", v.Position)
		}
	}
}

func TestConeApexAndBase(t *testing.T) {
	g := Cone(0.7, 1.5, 4)
	checkIndices(t, g)
	var top, bottom float32 = -1, 1
	for _, v := range g.Vertices {
		top = max(top, v.Position[1])
		bottom = min(bottom, v.Position[1])
		if r := math.Hypot(float64(v.Position[0]), float64(v.Position[2])); r > 0.7+1e-5 {
			t.Fatalf("vertex outside base radius: %v", v.Position)
		}
	}
	if top != 0.75 || bottom != -0.75 {
		t.Fatalf("cone spans y %f..%f, want -0.75..0.75", bottom, top)
	}
	if len(g.Indices) != 4*3*2 {
		t.Fatalf("index count = %d", len(g.Indices))
	}
}

func TestRibbonWidth(t *testing.T) {
	g := Ribbon(straightPath{}, 10, 8, 0.01)
	if len(g.Vertices) != 22 || len(g.Indices) != 60 {
		t.Fatalf("got %d vertices %d indices", len(g.Vertices), len(g.Indices))
	}
	checkIndices(t, g)
	for i := 0; i < len(g.Vertices); i += 2 {
		a, b := mgl32.Vec3(g.Vertices[i].Position), mgl32.Vec3(g.Vertices[i+1].Position)
		if w := a.Sub(b).Len(); math.Abs(float64(w)-16) > 1e-4 {
			t.Fatalf("cross-section %d width = %v, want 16", i/2, w)
		}
		if a.Y() != 0.01 || b.Y() != 0.01 {
			t.Fatalf("cross-section %d not at the requested height", i/2)
		}
	}
}

func TestTubeRadius(t *testing.T) {
	g := Tube(straightPath{}, 4, 0.2, 8, 1)
	checkIndices(t, g)
	for _, v := range g.Vertices {
		p := mgl32.Vec3(v.Position)
		r := math.Hypot(float64(p.X()), float64(p.Y()-1))
		if math.Abs(r-0.2) > 1e-5 {
			t.Fatalf("vertex %v is %v from the axis, want 0.2", p, r)
		}
		if n := mgl32.Vec3(v.Normal).Len(); math.Abs(float64(n)-1) > 1e-5 {
			t.Fatalf("normal %v is not unit length", v.Normal)
		}
	}
}

func TestMergeRebasesIndices(t *testing.T) {
	a := Plane(1, 1)
	b := Box(1, 1, 1).Transformed(mgl32.Translate3D(0, 2, 0))
	m := Merge(a, b)
	if len(m.Vertices) != 28 || len(m.Indices) != 42 {
		t.Fatalf("got %d vertices %d indices", len(m.Vertices), len(m.Indices))
	}
	checkIndices(t, m)
	if m.Indices[6] != 4 {
		t.Fatalf("first index of the second part = %d, want 4", m.Indices[6])
	}
	if r := m.BoundingRadius(); r < 2.5 {
		t.Fatalf("bounding radius %v does not enclose the lifted box", r)
	}
}

func TestTransformedRotatesNormals(t *testing.T) {
	g := Plane(1, 1).Transformed(mgl32.HomogRotate3DX(math.Pi / 2))
	for _, v := range g.Vertices {
		if !mgl32.Vec3(v.Normal).ApproxEqualThreshold(mgl32.Vec3{0, 0, 1}, 1e-6) {
			t.Fatalf("rotated normal = %v, want +Z", v.Normal)
		}
	}
}

func TestModelData(t *testing.T) {
	m := NewModel(WithName("post"), WithGeometry(Box(0.3, 1.5, 0.3)))
	if m.IndexCount() != 36 {
		t.Fatalf("IndexCount = %d", m.IndexCount())
	}
	if len(m.VertexData()) != 24*GPUVertexStride || len(m.IndexData()) != 36*4 {
		t.Fatalf("vertex bytes %d index bytes %d", len(m.VertexData()), len(m.IndexData()))
	}
	if m.MeshProvider().Label() != "geometry_post" {
		t.Fatalf("provider label = %q", m.MeshProvider().Label())
	}
	v := GPUVertex{}
	if v.Size() != GPUVertexStride {
		t.Fatalf("GPUVertex size = %d, want %d", v.Size(), GPUVertexStride)
	}
}
