package track

type curveConfig struct {
	arcLengthDivisions int
}

// CurveBuilderOption is a function that configures a Curve at construction time.
type CurveBuilderOption func(*curveConfig)

// WithArcLengthDivisions sets how many samples are used to build the arc-length lookup table.
// Higher values give a more even arc-length parameterisation at a higher construction cost.
//
// Parameters:
//   - divisions: number of samples (values below 1 are treated as 1)
//
// Returns:
//   - CurveBuilderOption: a function that applies the division count to the curve
func WithArcLengthDivisions(divisions int) CurveBuilderOption {
	return func(c *curveConfig) {
		c.arcLengthDivisions = divisions
	}
}

type generatorConfig struct {
	length    float64
	primary   wave
	secondary wave
	curveOpts []CurveBuilderOption
}

// wave is one lateral sinusoid term: amplitude * fn(t * pi * frequency).
type wave struct {
	frequency float64
	amplitude float64
}

// GeneratorBuilderOption is a function that configures the procedural track generator.
type GeneratorBuilderOption func(*generatorConfig)

// WithLength sets the distance the track covers along -Z.
//
// Parameters:
//   - length: the track depth in world units
//
// Returns:
//   - GeneratorBuilderOption: a function that applies the length to the generator
func WithLength(length float64) GeneratorBuilderOption {
	return func(g *generatorConfig) {
		g.length = length
	}
}

// WithPrimaryWave sets the sine term of the lateral offset.
//
// Parameters:
//   - frequency: half-periods over the full track
//   - amplitude: peak lateral offset in world units
//
// Returns:
//   - GeneratorBuilderOption: a function that applies the wave to the generator
func WithPrimaryWave(frequency, amplitude float64) GeneratorBuilderOption {
	return func(g *generatorConfig) {
		g.primary = wave{frequency: frequency, amplitude: amplitude}
	}
}

// WithSecondaryWave sets the cosine term of the lateral offset.
//
// Parameters:
//   - frequency: half-periods over the full track
//   - amplitude: peak lateral offset in world units
//
// Returns:
//   - GeneratorBuilderOption: a function that applies the wave to the generator
func WithSecondaryWave(frequency, amplitude float64) GeneratorBuilderOption {
	return func(g *generatorConfig) {
		g.secondary = wave{frequency: frequency, amplitude: amplitude}
	}
}

// WithCurveOptions forwards options to the curve built from the generated points.
//
// Parameters:
//   - options: the curve options to apply
//
// Returns:
//   - GeneratorBuilderOption: a function that records the curve options
func WithCurveOptions(options ...CurveBuilderOption) GeneratorBuilderOption {
	return func(g *generatorConfig) {
		g.curveOpts = append(g.curveOpts, options...)
	}
}
