package instancing

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// Sampler is the subset of a path that instance placement needs.
type Sampler interface {
	// PointAt returns the position at normalized arc length u in [0, 1].
	PointAt(u float64) mgl64.Vec3

	// TangentAt returns the unit tangent at normalized arc length u in [0, 1].
	TangentAt(u float64) mgl64.Vec3
}

// Transform is one instance record: a position and a rotation about the vertical axis.
type Transform struct {
	Position mgl64.Vec3
	Heading  float64
}

// Matrix returns the model matrix translate(Position) * rotateY(Heading) in single precision.
//
// Returns:
//   - mgl32.Mat4: the column-major model matrix
func (t Transform) Matrix() mgl32.Mat4 {
	p := t.Position
	return mgl32.Translate3D(float32(p.X()), float32(p.Y()), float32(p.Z())).
		Mul4(mgl32.HomogRotate3DY(float32(t.Heading)))
}

// Batch is an immutable, fixed-size arena of instance transforms indexed by instance number.
type Batch struct {
	name       string
	transforms []Transform
}

// Build samples count evenly spaced parameters t_i = i/count along the curve and records a transform
// for each: the sampled position (optionally with a fixed height) and the heading atan2(tangent.x, tangent.z).
//
// Parameters:
//   - name: the set name (e.g. "lane_markers")
//   - curve: the path to place instances along
//   - count: number of instances (negative values are treated as 0)
//   - options: functional options to configure placement
//
// Returns:
//   - *Batch: the computed batch
func Build(name string, curve Sampler, count int, options ...BatchBuilderOption) *Batch {
	cfg := batchConfig{}
	for _, opt := range options {
		opt(&cfg)
	}

	count = max(count, 0)
	b := &Batch{
		name:       name,
		transforms: make([]Transform, count),
	}
	for i := range count {
		u := float64(i) / float64(count)
		p := curve.PointAt(u)
		tan := curve.TangentAt(u)
		if cfg.height != nil {
			p[1] = *cfg.height
		}
		b.transforms[i] = Transform{
			Position: p,
			Heading:  Heading(tan),
		}
	}
	return b
}

// Heading returns the rotation about +Y that turns the local +Z axis onto the tangent's horizontal direction.
//
// Parameters:
//   - tangent: the direction to face
//
// Returns:
//   - float64: atan2(tangent.x, tangent.z) in radians
func Heading(tangent mgl64.Vec3) float64 {
	return math.Atan2(tangent.X(), tangent.Z())
}

// Name returns the set name of the batch.
func (b *Batch) Name() string {
	return b.name
}

// Len returns the number of instances in the batch.
func (b *Batch) Len() int {
	return len(b.transforms)
}

// At returns the transform of instance i.
func (b *Batch) At(i int) Transform {
	return b.transforms[i]
}

// Transforms returns a copy of every transform in instance order.
func (b *Batch) Transforms() []Transform {
	out := make([]Transform, len(b.transforms))
	copy(out, b.transforms)
	return out
}

// Matrices returns the model matrix of every instance, in instance order, ready for an instance buffer.
//
// Returns:
//   - []mgl32.Mat4: one matrix per instance
func (b *Batch) Matrices() []mgl32.Mat4 {
	out := make([]mgl32.Mat4, len(b.transforms))
	for i, t := range b.transforms {
		out[i] = t.Matrix()
	}
	return out
}
