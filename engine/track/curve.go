package track

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrTooFewPoints is returned when a curve is built from fewer than two control points.
var ErrTooFewPoints = errors.New("track: a curve needs at least two control points")

const (
	// DefaultArcLengthDivisions is the number of samples used to build the arc-length table.
	DefaultArcLengthDivisions = 200

	// tangentDelta is the half-width of the central difference used for tangents, in curve-parameter space.
	tangentDelta = 0.0001

	// centripetalExponent is applied to squared chord lengths (0.25 = sqrt of chord length).
	centripetalExponent = 0.25

	// minKnotSpacing guards against coincident control points collapsing a knot interval.
	minKnotSpacing = 1e-4
)

// Curve is an immutable, interpolating centripetal Catmull-Rom space curve.
// The curve passes through every control point in order. Point samples the raw
// curve parameter, PointAt and TangentAt sample by normalized arc length so that
// equal parameter steps cover equal travel distance.
type Curve struct {
	points     []mgl64.Vec3
	arcLengths []float64
}

// NewCurve builds a curve through the given control points.
//
// Parameters:
//   - points: control points in travel order (copied)
//   - options: functional options to configure the curve
//
// Returns:
//   - *Curve: the newly created curve
//   - error: ErrTooFewPoints if fewer than two points were provided
func NewCurve(points []mgl64.Vec3, options ...CurveBuilderOption) (*Curve, error) {
	if len(points) < 2 {
		return nil, ErrTooFewPoints
	}

	cfg := curveConfig{arcLengthDivisions: DefaultArcLengthDivisions}
	for _, opt := range options {
		opt(&cfg)
	}

	c := &Curve{
		points: make([]mgl64.Vec3, len(points)),
	}
	copy(c.points, points)
	c.arcLengths = c.buildArcLengths(max(cfg.arcLengthDivisions, 1))
	return c, nil
}

// ControlPoints returns a copy of the curve's control points.
func (c *Curve) ControlPoints() []mgl64.Vec3 {
	out := make([]mgl64.Vec3, len(c.points))
	copy(out, c.points)
	return out
}

// Length returns the approximate arc length of the curve.
func (c *Curve) Length() float64 {
	return c.arcLengths[len(c.arcLengths)-1]
}

// Point returns the position at raw curve parameter t. Parameters outside [0, 1] are clamped.
//
// Parameters:
//   - t: curve parameter in [0, 1]
//
// Returns:
//   - mgl64.Vec3: the interpolated position
func (c *Curve) Point(t float64) mgl64.Vec3 {
	t = clamp01(t)
	n := len(c.points)

	p := float64(n-1) * t
	seg := int(math.Floor(p))
	weight := p - float64(seg)
	if seg >= n-1 {
		seg = n - 2
		weight = 1
	}

	var p0, p3 mgl64.Vec3
	if seg > 0 {
		p0 = c.points[seg-1]
	} else {
		p0 = c.points[0].Sub(c.points[1]).Add(c.points[0])
	}
	p1 := c.points[seg]
	p2 := c.points[seg+1]
	if seg+2 < n {
		p3 = c.points[seg+2]
	} else {
		p3 = c.points[n-1].Sub(c.points[n-2]).Add(c.points[n-1])
	}

	dt0 := math.Pow(sqDist(p0, p1), centripetalExponent)
	dt1 := math.Pow(sqDist(p1, p2), centripetalExponent)
	dt2 := math.Pow(sqDist(p2, p3), centripetalExponent)
	if dt1 < minKnotSpacing {
		dt1 = 1
	}
	if dt0 < minKnotSpacing {
		dt0 = dt1
	}
	if dt2 < minKnotSpacing {
		dt2 = dt1
	}

	var out mgl64.Vec3
	for axis := range 3 {
		var poly cubicPoly
		poly.initNonuniform(p0[axis], p1[axis], p2[axis], p3[axis], dt0, dt1, dt2)
		out[axis] = poly.calc(weight)
	}
	return out
}

// PointAt returns the position at normalized arc length u. Values outside [0, 1] are clamped.
//
// Parameters:
//   - u: fraction of the total curve length in [0, 1]
//
// Returns:
//   - mgl64.Vec3: the position u of the way along the curve
func (c *Curve) PointAt(u float64) mgl64.Vec3 {
	return c.Point(c.arcToParam(u))
}

// TangentAt returns the unit tangent at normalized arc length u. Values outside [0, 1] are clamped.
// The tangent is a central difference of the curve around the mapped parameter; if the curve is
// locally degenerate the overall chord direction is returned instead.
//
// Parameters:
//   - u: fraction of the total curve length in [0, 1]
//
// Returns:
//   - mgl64.Vec3: unit-length tangent pointing in the direction of travel
func (c *Curve) TangentAt(u float64) mgl64.Vec3 {
	t := c.arcToParam(u)
	t1 := max(t-tangentDelta, 0)
	t2 := min(t+tangentDelta, 1)

	d := c.Point(t2).Sub(c.Point(t1))
	if l := d.Len(); l > 1e-12 {
		return d.Mul(1 / l)
	}

	chord := c.points[len(c.points)-1].Sub(c.points[0])
	if l := chord.Len(); l > 1e-12 {
		return chord.Mul(1 / l)
	}
	return mgl64.Vec3{1, 0, 0}
}

// Points samples divisions+1 positions at evenly spaced raw curve parameters.
//
// Parameters:
//   - divisions: number of intervals (minimum 1)
//
// Returns:
//   - []mgl64.Vec3: the sampled positions including both end points
func (c *Curve) Points(divisions int) []mgl64.Vec3 {
	divisions = max(divisions, 1)
	out := make([]mgl64.Vec3, divisions+1)
	for i := range out {
		out[i] = c.Point(float64(i) / float64(divisions))
	}
	return out
}

// SpacedPoints samples divisions+1 positions at evenly spaced arc lengths.
//
// Parameters:
//   - divisions: number of intervals (minimum 1)
//
// Returns:
//   - []mgl64.Vec3: the sampled positions including both end points
func (c *Curve) SpacedPoints(divisions int) []mgl64.Vec3 {
	divisions = max(divisions, 1)
	out := make([]mgl64.Vec3, divisions+1)
	for i := range out {
		out[i] = c.PointAt(float64(i) / float64(divisions))
	}
	return out
}

// buildArcLengths accumulates chord lengths over evenly spaced raw parameters.
func (c *Curve) buildArcLengths(divisions int) []float64 {
	lengths := make([]float64, divisions+1)
	last := c.Point(0)
	sum := 0.0
	for i := 1; i <= divisions; i++ {
		current := c.Point(float64(i) / float64(divisions))
		sum += current.Sub(last).Len()
		lengths[i] = sum
		last = current
	}
	return lengths
}

// arcToParam maps a normalized arc length to the raw curve parameter by binary search
// over the arc-length table followed by linear interpolation inside the bracketing interval.
func (c *Curve) arcToParam(u float64) float64 {
	u = clamp01(u)
	lengths := c.arcLengths
	il := len(lengths)
	total := lengths[il-1]
	if total == 0 {
		return u
	}
	target := u * total

	low, high := 0, il-1
	for low <= high {
		i := low + (high-low)/2
		switch cmp := lengths[i] - target; {
		case cmp < 0:
			low = i + 1
		case cmp > 0:
			high = i - 1
		default:
			return float64(i) / float64(il-1)
		}
	}

	i := max(high, 0)
	if i >= il-1 {
		return 1
	}
	before := lengths[i]
	segment := lengths[i+1] - before
	if segment == 0 {
		return float64(i) / float64(il-1)
	}
	return (float64(i) + (target-before)/segment) / float64(il-1)
}

// cubicPoly is a cubic Hermite polynomial in one dimension.
type cubicPoly struct {
	c0, c1, c2, c3 float64
}

func (p *cubicPoly) init(x0, x1, t0, t1 float64) {
	p.c0 = x0
	p.c1 = t0
	p.c2 = -3*x0 + 3*x1 - 2*t0 - t1
	p.c3 = 2*x0 - 2*x1 + t0 + t1
}

// initNonuniform sets up the segment x1..x2 with tangents derived from non-uniform knot spacing.
func (p *cubicPoly) initNonuniform(x0, x1, x2, x3, dt0, dt1, dt2 float64) {
	t1 := (x1-x0)/dt0 - (x2-x0)/(dt0+dt1) + (x2-x1)/dt1
	t2 := (x2-x1)/dt1 - (x3-x1)/(dt1+dt2) + (x3-x2)/dt2
	p.init(x1, x2, t1*dt1, t2*dt1)
}

func (p *cubicPoly) calc(t float64) float64 {
	t2 := t * t
	return p.c0 + p.c1*t + p.c2*t2 + p.c3*t2*t
}

func sqDist(a, b mgl64.Vec3) float64 {
	d := a.Sub(b)
	return d.Dot(d)
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return min(max(v, 0), 1)
}
