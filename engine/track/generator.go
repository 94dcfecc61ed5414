package track

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// DefaultSegments is the number of intervals between generated control points.
	DefaultSegments = 300

	// DefaultLength is how far the generated track runs along -Z.
	DefaultLength = 600.0
)

// ControlPoints generates segments+1 control points for a winding track.
// Point i sits at t = i/segments with z = -t*length and x given by the sum of the two lateral waves.
// The generator is deterministic: the same options always produce the same points.
//
// Parameters:
//   - segments: number of intervals (values below 1 are treated as 1)
//   - options: functional options to shape the track
//
// Returns:
//   - []mgl64.Vec3: the generated control points in travel order
func ControlPoints(segments int, options ...GeneratorBuilderOption) []mgl64.Vec3 {
	cfg := defaultGeneratorConfig()
	for _, opt := range options {
		opt(&cfg)
	}
	return cfg.points(max(segments, 1))
}

// Generate builds the track curve from generated control points.
//
// Parameters:
//   - segments: number of intervals between control points
//   - options: functional options to shape the track
//
// Returns:
//   - *Curve: the track centre line
//   - error: an error if the curve could not be built
func Generate(segments int, options ...GeneratorBuilderOption) (*Curve, error) {
	cfg := defaultGeneratorConfig()
	for _, opt := range options {
		opt(&cfg)
	}
	return NewCurve(cfg.points(max(segments, 1)), cfg.curveOpts...)
}

func defaultGeneratorConfig() generatorConfig {
	return generatorConfig{
		length:    DefaultLength,
		primary:   wave{frequency: 4, amplitude: 40},
		secondary: wave{frequency: 2, amplitude: 20},
	}
}

func (g generatorConfig) points(segments int) []mgl64.Vec3 {
	out := make([]mgl64.Vec3, 0, segments+1)
	for i := 0; i <= segments; i++ {
		t := float64(i) / float64(segments)
		x := math.Sin(t*math.Pi*g.primary.frequency)*g.primary.amplitude +
			math.Cos(t*math.Pi*g.secondary.frequency)*g.secondary.amplitude
		out = append(out, mgl64.Vec3{x, 0, -t * g.length})
	}
	return out
}
