package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestFollowBlendsTowardGoal(t *testing.T) {
	fc := NewFollowController(WithPosition(mgl32.Vec3{0, 0, 0}))
	subject := mgl32.Vec3{10, 0, -50}
	forward := mgl32.Vec3{0, 0, -1}

	goal := fc.Follow(subject, forward)
	wantGoal := mgl32.Vec3{10, DefaultFollowHeight, -50 + DefaultFollowBehind}
	if !goal.ApproxEqualThreshold(wantGoal, 1e-5) {
		t.Fatalf("goal = %v, want %v", goal, wantGoal)
	}
	if got, want := fc.Position(), wantGoal.Mul(DefaultFollowBlend); !got.ApproxEqualThreshold(want, 1e-5) {
		t.Fatalf("position after one step = %v, want %v", got, want)
	}
	if got := fc.Target(); !got.ApproxEqualThreshold(mgl32.Vec3{10, 0, -50}, 1e-6) {
		t.Fatalf("target = %v, want the ground projection of the subject", got)
	}
}

func TestFollowConvergesWithoutOvershoot(t *testing.T) {
	fc := NewFollowController(WithPosition(mgl32.Vec3{0, 40, 20}))
	subject := mgl32.Vec3{5, 2, -30}
	forward := mgl32.Vec3{1, 0, -1}

	var goal mgl32.Vec3
	prev := float32(math.MaxFloat32)
	for range 200 {
		goal = fc.Follow(subject, forward)
		d := fc.Position().Sub(goal).Len()
		if d > prev+1e-5 {
			t.Fatalf("distance to goal grew: %v -> %v", prev, d)
		}
		prev = d
	}
	if prev > 1e-3 {
		t.Fatalf("camera did not converge, still %v from goal", prev)
	}
	if got := fc.Target(); got.Y() != 0 {
		t.Fatalf("target y = %v, want ground level", got.Y())
	}
}

func TestFollowVerticalForwardGoesOverhead(t *testing.T) {
	fc := NewFollowController()
	goal := fc.Follow(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{0, 1, 0})
	if want := (mgl32.Vec3{1, 2 + DefaultFollowHeight, 3}); !goal.ApproxEqualThreshold(want, 1e-6) {
		t.Fatalf("goal = %v, want %v", goal, want)
	}
}

func TestFollowControllerOptions(t *testing.T) {
	fc := NewFollowController(WithFollowHeight(12), WithFollowBehind(0), WithFollowBlend(1), WithTarget(mgl32.Vec3{1, 1, 1}))
	if fc.Height() != 12 || fc.Behind() != 0 || fc.Blend() != 1 {
		t.Fatalf("height=%v behind=%v blend=%v", fc.Height(), fc.Behind(), fc.Blend())
	}
	if fc.Target() != (mgl32.Vec3{1, 1, 1}) {
		t.Fatalf("target = %v", fc.Target())
	}
	fc.Follow(mgl32.Vec3{4, 0, 4}, mgl32.Vec3{0, 0, 1})
	if got := fc.Position(); got != (mgl32.Vec3{4, 12, 4}) {
		t.Fatalf("blend of 1 should snap to the goal, got %v", got)
	}

	for _, bad := range []float32{0, -1, 1.5} {
		if got := NewFollowController(WithFollowBlend(bad)).Blend(); got != DefaultFollowBlend {
			t.Errorf("blend %v fell back to %v, want %v", bad, got, DefaultFollowBlend)
		}
	}
}

func TestSetAspectUpdatesProjection(t *testing.T) {
	c := NewCamera(WithController(NewFollowController()))
	before := c.ProjectionMatrix()
	c.SetAspect(2)
	after := c.ProjectionMatrix()
	if c.Aspect() != 2 {
		t.Fatalf("aspect = %v, want 2", c.Aspect())
	}
	if math.Abs(float64(after[0]-before[0]/2)) > 1e-6 {
		t.Fatalf("x scale = %v, want %v", after[0], before[0]/2)
	}
	if after[5] != before[5] {
		t.Fatalf("y scale changed from %v to %v", before[5], after[5])
	}
	if want := after.Mul4(c.ViewMatrix()); !c.ViewProjectionMatrix().ApproxEqualThreshold(want, 1e-5) {
		t.Fatal("view-projection was not rebuilt after the aspect change")
	}

	for _, bad := range []float32{0, -3, float32(math.Inf(1)), float32(math.NaN())} {
		c.SetAspect(bad)
		if c.Aspect() != 2 {
			t.Fatalf("SetAspect(%v) changed aspect to %v", bad, c.Aspect())
		}
	}
}

func TestUpdateFollowsController(t *testing.T) {
	fc := NewFollowController(WithPosition(mgl32.Vec3{0, 10, 10}))
	c := NewCamera(WithController(fc))

	// the target is in front of the eye, so it lands on the negative view axis
	view := c.ViewMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if view.Z() >= 0 {
		t.Fatalf("origin in view space = %v, want negative z", view)
	}

	fc.SetPosition(mgl32.Vec3{0, 10, -10})
	c.Update()
	eye := c.ViewMatrix().Mul4x1(mgl32.Vec4{0, 10, -10, 1})
	if !eye.Vec3().ApproxEqualThreshold(mgl32.Vec3{}, 1e-5) {
		t.Fatalf("eye in view space = %v, want origin", eye)
	}
	if u := c.Uniform(); u.CameraPosition != (mgl32.Vec3{0, 10, -10}) {
		t.Fatalf("uniform eye = %v", u.CameraPosition)
	}
}

func TestUpdateKeepsViewWhenDegenerate(t *testing.T) {
	fc := NewFollowController(WithPosition(mgl32.Vec3{0, 10, 10}))
	c := NewCamera(WithController(fc))
	before := c.ViewMatrix()

	fc.SetPosition(mgl32.Vec3{0, 10, 0})
	c.Update()
	after := c.ViewMatrix()
	for i := range after {
		if math.IsNaN(float64(after[i])) {
			t.Fatalf("view matrix has NaN at %d", i)
		}
	}
	if after != before {
		t.Fatal("view should be kept when looking straight down the up axis")
	}
}

func TestUniformMarshalLayout(t *testing.T) {
	u := GPUCameraUniform{ViewProj: mgl32.Ident4(), CameraPosition: mgl32.Vec3{1, 2, 3}}
	buf := u.Marshal()
	if len(buf) != 80 || u.Size() != 80 {
		t.Fatalf("marshalled %d bytes, size %d, want 80", len(buf), u.Size())
	}
	if got := math.Float32frombits(uint32(buf[68]) | uint32(buf[69])<<8 | uint32(buf[70])<<16 | uint32(buf[71])<<24); got != 2 {
		t.Fatalf("camera y at offset 68 = %v, want 2", got)
	}
}
