package track

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrVerticalTangent is returned when a curve sample has no horizontal direction, which leaves the
// horizontal normal undefined. Tracks with vertical relief steep enough to trigger this need a full
// rotation-minimising frame instead.
var ErrVerticalTangent = errors.New("track: tangent has no horizontal component")

const (
	// DefaultOffsetResolution is the number of samples taken along the base curve for each offset curve.
	DefaultOffsetResolution = 600

	// DefaultBarrierOffset is the lateral distance from the centre line to each barrier.
	DefaultBarrierOffset = 9.5

	horizontalEpsilon = 1e-9
)

// HorizontalNormal returns the unit vector perpendicular to the tangent in the horizontal plane.
//
// Parameters:
//   - tangent: the curve tangent at the sample
//
// Returns:
//   - mgl64.Vec3: the horizontal normal (-t.z, 0, t.x), normalized
//   - bool: false if the tangent is vertical and the normal is undefined
func HorizontalNormal(tangent mgl64.Vec3) (mgl64.Vec3, bool) {
	n := mgl64.Vec3{-tangent.Z(), 0, tangent.X()}
	l := n.Len()
	if l < horizontalEpsilon {
		return mgl64.Vec3{}, false
	}
	return n.Mul(1 / l), true
}

// Offset derives the left and right curves lying at a fixed lateral distance from the base curve.
// The base curve is sampled at resolution+1 evenly spaced arc lengths; each sample is pushed along
// its horizontal normal by +distance (left) and -distance (right).
//
// Parameters:
//   - base: the centre curve
//   - resolution: number of sample intervals (values below 1 are treated as 1)
//   - distance: lateral offset in world units
//   - options: curve options for the derived curves
//
// Returns:
//   - left: the curve offset along +normal
//   - right: the curve offset along -normal
//   - err: ErrVerticalTangent if any sample has no horizontal tangent
func Offset(base *Curve, resolution int, distance float64, options ...CurveBuilderOption) (left, right *Curve, err error) {
	resolution = max(resolution, 1)
	leftPoints := make([]mgl64.Vec3, 0, resolution+1)
	rightPoints := make([]mgl64.Vec3, 0, resolution+1)

	for i := 0; i <= resolution; i++ {
		u := float64(i) / float64(resolution)
		p := base.PointAt(u)
		n, ok := HorizontalNormal(base.TangentAt(u))
		if !ok {
			return nil, nil, fmt.Errorf("offset sample %d (u=%.4f): %w", i, u, ErrVerticalTangent)
		}
		leftPoints = append(leftPoints, p.Add(n.Mul(distance)))
		rightPoints = append(rightPoints, p.Sub(n.Mul(distance)))
	}

	if left, err = NewCurve(leftPoints, options...); err != nil {
		return nil, nil, fmt.Errorf("failed to build left offset curve: %w", err)
	}
	if right, err = NewCurve(rightPoints, options...); err != nil {
		return nil, nil, fmt.Errorf("failed to build right offset curve: %w", err)
	}
	return left, right, nil
}
