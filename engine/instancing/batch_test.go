package instancing

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Carmen-Shannon/oxy-trackside/engine/track"
)

// lineSampler is a straight path from origin along dir with the given length.
type lineSampler struct {
	dir    mgl64.Vec3
	length float64
}

func (l lineSampler) PointAt(u float64) mgl64.Vec3 {
	return l.dir.Mul(u * l.length)
}

func (l lineSampler) TangentAt(float64) mgl64.Vec3 {
	return l.dir
}

func TestBuildSpacing(t *testing.T) {
	b := Build(LaneMarkers, lineSampler{dir: mgl64.Vec3{0, 0, -1}, length: 100}, 4)
	if b.Name() != LaneMarkers || b.Len() != 4 {
		t.Fatalf("got name=%q len=%d", b.Name(), b.Len())
	}
	for i := range b.Len() {
		want := mgl64.Vec3{0, 0, -25 * float64(i)}
		got := b.At(i)
		if !got.Position.ApproxEqualThreshold(want, 1e-9) {
			t.Errorf("instance %d position = %v, want %v", i, got.Position, want)
		}
		if math.Abs(got.Heading-math.Pi) > 1e-9 {
			t.Errorf("instance %d heading = %v, want pi", i, got.Heading)
		}
	}
}

func TestBuildWithHeight(t *testing.T) {
	b := Build("posts", lineSampler{dir: mgl64.Vec3{1, 0, 0}, length: 10}, 5, WithHeight(0.75))
	for i, tr := range b.Transforms() {
		if tr.Position.Y() != 0.75 {
			t.Errorf("instance %d y = %v, want 0.75", i, tr.Position.Y())
		}
		if math.Abs(tr.Heading-math.Pi/2) > 1e-9 {
			t.Errorf("instance %d heading = %v, want pi/2", i, tr.Heading)
		}
	}
}

func TestBuildEmpty(t *testing.T) {
	for _, n := range []int{0, -3} {
		if b := Build("none", lineSampler{dir: mgl64.Vec3{1, 0, 0}, length: 1}, n); b.Len() != 0 {
			t.Errorf("Build(count=%d) has %d instances, want 0", n, b.Len())
		}
	}
}

func TestTransformsAreCopied(t *testing.T) {
	b := Build("copy", lineSampler{dir: mgl64.Vec3{1, 0, 0}, length: 10}, 2)
	tr := b.Transforms()
	tr[0].Heading = 42
	if b.At(0).Heading == 42 {
		t.Fatal("mutating Transforms() result changed the batch")
	}
}

func TestTransformMatrix(t *testing.T) {
	tr := Transform{Position: mgl64.Vec3{1, 2, 3}, Heading: math.Pi / 2}
	got := tr.Matrix().Mul4x1(mgl32.Vec4{0, 0, 1, 1})
	want := mgl32.Vec4{2, 2, 3, 1}
	if !got.ApproxEqualThreshold(want, 1e-5) {
		t.Fatalf("Matrix()*(0,0,1,1) = %v, want %v", got, want)
	}
}

func TestHeadingFollowsTrackTangent(t *testing.T) {
	c, err := track.Generate(track.DefaultSegments)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b := Build(LaneMarkers, c, 100, WithHeight(0.42))
	mats := b.Matrices()
	if len(mats) != 100 {
		t.Fatalf("len(Matrices) = %d, want 100", len(mats))
	}
	for i := range b.Len() {
		u := float64(i) / 100
		tan := c.TangentAt(u)
		horizontal := mgl32.Vec3{float32(tan.X()), 0, float32(tan.Z())}.Normalize()

		// the rotated local +Z axis is the third column of the matrix
		forward := mats[i].Col(2).Vec3()
		if !forward.ApproxEqualThreshold(horizontal, 1e-4) {
			t.Fatalf("instance %d faces %v, want %v", i, forward, horizontal)
		}
		if y := mats[i].Col(3).Y(); math.Abs(float64(y)-0.42) > 1e-6 {
			t.Fatalf("instance %d height %v, want 0.42", i, y)
		}
	}
}
