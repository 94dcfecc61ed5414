package track

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const eps = 1e-6

func straightLine(t *testing.T) *Curve {
	t.Helper()
	c, err := NewCurve([]mgl64.Vec3{{0, 0, 0}, {0, 0, -10}, {0, 0, -20}})
	if err != nil {
		t.Fatalf("NewCurve: %v", err)
	}
	return c
}

func finite(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

func TestNewCurveRejectsTooFewPoints(t *testing.T) {
	for _, pts := range [][]mgl64.Vec3{nil, {{1, 2, 3}}} {
		if _, err := NewCurve(pts); !errors.Is(err, ErrTooFewPoints) {
			t.Errorf("NewCurve(%d points) error = %v, want ErrTooFewPoints", len(pts), err)
		}
	}
}

func TestCurvePassesThroughControlPoints(t *testing.T) {
	pts := ControlPoints(12)
	c, err := NewCurve(pts)
	if err != nil {
		t.Fatalf("NewCurve: %v", err)
	}
	for i, want := range pts {
		got := c.Point(float64(i) / float64(len(pts)-1))
		if !got.ApproxEqualThreshold(want, eps) {
			t.Errorf("Point(%d/%d) = %v, want %v", i, len(pts)-1, got, want)
		}
	}
}

func TestControlPointsAreCopied(t *testing.T) {
	pts := []mgl64.Vec3{{0, 0, 0}, {0, 0, -10}}
	c, err := NewCurve(pts)
	if err != nil {
		t.Fatalf("NewCurve: %v", err)
	}
	pts[1] = mgl64.Vec3{100, 100, 100}
	if got := c.PointAt(1); !got.ApproxEqualThreshold(mgl64.Vec3{0, 0, -10}, eps) {
		t.Fatalf("PointAt(1) = %v after caller mutation, want (0,0,-10)", got)
	}
}

func TestStraightLineIsArcLengthParameterised(t *testing.T) {
	c := straightLine(t)

	if got := c.Length(); math.Abs(got-20) > eps {
		t.Fatalf("Length() = %v, want 20", got)
	}
	tests := []struct {
		u    float64
		want mgl64.Vec3
	}{
		{0, mgl64.Vec3{0, 0, 0}},
		{0.25, mgl64.Vec3{0, 0, -5}},
		{0.5, mgl64.Vec3{0, 0, -10}},
		{0.9, mgl64.Vec3{0, 0, -18}},
		{1, mgl64.Vec3{0, 0, -20}},
	}
	for _, tt := range tests {
		if got := c.PointAt(tt.u); !got.ApproxEqualThreshold(tt.want, 1e-4) {
			t.Errorf("PointAt(%v) = %v, want %v", tt.u, got, tt.want)
		}
		if got := c.TangentAt(tt.u); !got.ApproxEqualThreshold(mgl64.Vec3{0, 0, -1}, eps) {
			t.Errorf("TangentAt(%v) = %v, want (0,0,-1)", tt.u, got)
		}
	}
}

func TestSamplingClampsParameter(t *testing.T) {
	c, err := Generate(DefaultSegments)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, u := range []float64{-5, -0.001, 1.001, 7, math.NaN(), math.Inf(1), math.Inf(-1)} {
		p := c.PointAt(u)
		tan := c.TangentAt(u)
		if !finite(p) || !finite(tan) {
			t.Errorf("u=%v produced non-finite values: point %v tangent %v", u, p, tan)
		}
	}
	if !c.PointAt(-1).ApproxEqualThreshold(c.PointAt(0), eps) {
		t.Error("PointAt(-1) should clamp to PointAt(0)")
	}
	if !c.PointAt(2).ApproxEqualThreshold(c.PointAt(1), eps) {
		t.Error("PointAt(2) should clamp to PointAt(1)")
	}
}

func TestTangentIsUnitLengthEverywhere(t *testing.T) {
	c, err := Generate(DefaultSegments)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for i := 0; i <= 1000; i++ {
		u := float64(i) / 1000
		tan := c.TangentAt(u)
		if math.Abs(tan.Len()-1) > eps {
			t.Fatalf("|TangentAt(%v)| = %v, want 1", u, tan.Len())
		}
		if !finite(c.PointAt(u)) {
			t.Fatalf("PointAt(%v) is not finite", u)
		}
	}
}

func TestTangentOnDegenerateCurve(t *testing.T) {
	c, err := NewCurve([]mgl64.Vec3{{1, 1, 1}, {1, 1, 1}})
	if err != nil {
		t.Fatalf("NewCurve: %v", err)
	}
	tan := c.TangentAt(0.5)
	if math.Abs(tan.Len()-1) > eps {
		t.Fatalf("TangentAt on a point curve = %v, want a unit vector", tan)
	}
}

func TestSpacedPointsAreEvenlySpaced(t *testing.T) {
	c, err := Generate(DefaultSegments)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	const divisions = 50
	pts := c.SpacedPoints(divisions)
	if len(pts) != divisions+1 {
		t.Fatalf("len(SpacedPoints) = %d, want %d", len(pts), divisions+1)
	}
	want := c.Length() / divisions
	for i := 1; i < len(pts); i++ {
		d := pts[i].Sub(pts[i-1]).Len()
		if math.Abs(d-want)/want > 0.02 {
			t.Errorf("spacing %d = %v, want ~%v", i, d, want)
		}
	}
}

func TestPointsSamplesRawParameter(t *testing.T) {
	c := straightLine(t)
	pts := c.Points(4)
	if len(pts) != 5 {
		t.Fatalf("len(Points(4)) = %d, want 5", len(pts))
	}
	if !pts[2].ApproxEqualThreshold(mgl64.Vec3{0, 0, -10}, eps) {
		t.Fatalf("Points(4)[2] = %v, want (0,0,-10)", pts[2])
	}
	if got := len(c.Points(0)); got != 2 {
		t.Fatalf("len(Points(0)) = %d, want 2", got)
	}
}

func TestWithArcLengthDivisions(t *testing.T) {
	coarse, err := Generate(DefaultSegments, WithCurveOptions(WithArcLengthDivisions(10)))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	fine, err := Generate(DefaultSegments)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(coarse.arcLengths) != 11 {
		t.Fatalf("coarse table has %d entries, want 11", len(coarse.arcLengths))
	}
	if coarse.Length() > fine.Length()+eps {
		t.Fatalf("coarse length %v exceeds fine length %v", coarse.Length(), fine.Length())
	}
}
