package vignette

import (
	"github.com/Carmen-Shannon/oxy-trackside/engine"
	"github.com/Carmen-Shannon/oxy-trackside/engine/camera"
	"github.com/Carmen-Shannon/oxy-trackside/engine/instancing"
	"github.com/Carmen-Shannon/oxy-trackside/engine/progress"
	"github.com/Carmen-Shannon/oxy-trackside/engine/track"
)

type config struct {
	name             string
	engine           engine.Engine
	segments         int
	generatorOptions []track.GeneratorBuilderOption
	offsetResolution int
	barrierOffset    float64
	buildWorkers     int
	progressOptions  []progress.ControllerBuilderOption
	followOptions    []camera.CameraControllerOption
	lookAhead        float64
	safeLimit        float64
}

func defaultConfig() *config {
	return &config{
		name:             DefaultName,
		segments:         track.DefaultSegments,
		offsetResolution: track.DefaultOffsetResolution,
		barrierOffset:    track.DefaultBarrierOffset,
		buildWorkers:     instancing.DefaultBuildWorkers,
		lookAhead:        DefaultLookAhead,
		safeLimit:        DefaultSafeLimit,
	}
}

// VignetteBuilderOption is a functional option for configuring a Vignette.
// Use the With* functions to create options.
type VignetteBuilderOption func(c *config)

// WithName sets the scene name used in logs and GPU labels.
//
// Parameters:
//   - name: the scene name
//
// Returns:
//   - VignetteBuilderOption: option function to apply
func WithName(name string) VignetteBuilderOption {
	return func(c *config) {
		c.name = name
	}
}

// WithEngine sets the engine whose loop drives the vignette's frames.
// Without it the vignette creates a headless engine at the default tick rate.
//
// Parameters:
//   - e: the engine to drive frames
//
// Returns:
//   - VignetteBuilderOption: option function to apply
func WithEngine(e engine.Engine) VignetteBuilderOption {
	return func(c *config) {
		c.engine = e
	}
}

// WithSegments sets the number of control point intervals of the generated track.
//
// Parameters:
//   - segments: the segment count
//
// Returns:
//   - VignetteBuilderOption: option function to apply
func WithSegments(segments int) VignetteBuilderOption {
	return func(c *config) {
		c.segments = segments
	}
}

// WithGeneratorOptions passes options through to the track generator.
//
// Parameters:
//   - options: track generator options
//
// Returns:
//   - VignetteBuilderOption: option function to apply
func WithGeneratorOptions(options ...track.GeneratorBuilderOption) VignetteBuilderOption {
	return func(c *config) {
		c.generatorOptions = append(c.generatorOptions, options...)
	}
}

// WithBarriers sets the barrier distance from the centre line and the offset sampling resolution.
//
// Parameters:
//   - offset: lateral distance of each barrier line
//   - resolution: number of samples along the centre line
//
// Returns:
//   - VignetteBuilderOption: option function to apply
func WithBarriers(offset float64, resolution int) VignetteBuilderOption {
	return func(c *config) {
		c.barrierOffset = offset
		c.offsetResolution = resolution
	}
}

// WithBuildWorkers bounds how many instance sets are sampled concurrently at construction.
//
// Parameters:
//   - workers: the worker count
//
// Returns:
//   - VignetteBuilderOption: option function to apply
func WithBuildWorkers(workers int) VignetteBuilderOption {
	return func(c *config) {
		c.buildWorkers = workers
	}
}

// WithProgressOptions passes options through to the progress controller.
//
// Parameters:
//   - options: progress controller options
//
// Returns:
//   - VignetteBuilderOption: option function to apply
func WithProgressOptions(options ...progress.ControllerBuilderOption) VignetteBuilderOption {
	return func(c *config) {
		c.progressOptions = append(c.progressOptions, options...)
	}
}

// WithFollowOptions passes options through to the follow camera controller.
//
// Parameters:
//   - options: follow controller options
//
// Returns:
//   - VignetteBuilderOption: option function to apply
func WithFollowOptions(options ...camera.CameraControllerOption) VignetteBuilderOption {
	return func(c *config) {
		c.followOptions = append(c.followOptions, options...)
	}
}

// WithLookAhead sets how far ahead of the car, in track fraction, its heading is sampled.
//
// Parameters:
//   - lookAhead: the look-ahead distance as a fraction of the track
//
// Returns:
//   - VignetteBuilderOption: option function to apply
func WithLookAhead(lookAhead float64) VignetteBuilderOption {
	return func(c *config) {
		c.lookAhead = lookAhead
	}
}
