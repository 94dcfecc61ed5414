package progress

import (
	"sync"
)

const (
	// DefaultStep is the fraction of the track covered per frame while travelling.
	DefaultStep = 0.002

	// DefaultMaxTravel caps how far along the track a target may lie.
	DefaultMaxTravel = 0.9

	// snapTolerance absorbs accumulated floating point error when approaching the target.
	snapTolerance = 1e-9
)

// Controller holds the travel progress of a tracked object along a path.
// The target is written by navigation events and the current value is advanced by the render loop.
// All access is guarded by a single mutex so that a target change is atomic relative to a frame.
type Controller interface {
	// SetTarget computes a new travel target from a navigation position and restarts travel from zero.
	// The target is clamp(index / max(total-1, 1), 0, 1) scaled by the maximum travel fraction.
	// Calling this again with the same values still resets the current progress, replaying the approach.
	//
	// Parameters:
	//   - index: the zero-based navigation position (clamped to [0, total-1])
	//   - total: the number of navigation positions (values below 1 behave like 1)
	//
	// Returns:
	//   - float64: the newly assigned target
	SetTarget(index, total int) float64

	// Advance moves the current progress one step toward the target.
	// The current value never exceeds the target. Once within floating point tolerance it snaps to the
	// target exactly, after which Advance is a no-op until the next SetTarget.
	//
	// Returns:
	//   - float64: the current progress after the step
	Advance() float64

	// Current returns the current progress in [0, target].
	//
	// Returns:
	//   - float64: the current progress
	Current() float64

	// Target returns the progress value travel is heading toward.
	//
	// Returns:
	//   - float64: the target progress
	Target() float64

	// Settled reports whether the current progress has reached the target.
	//
	// Returns:
	//   - bool: true if no further advance will change the current progress
	Settled() bool

	// Step returns the per-advance increment.
	//
	// Returns:
	//   - float64: the step size
	Step() float64

	// MaxTravel returns the fraction of the path that the furthest target maps to.
	//
	// Returns:
	//   - float64: the maximum travel fraction
	MaxTravel() float64
}

type controller struct {
	mu *sync.Mutex

	step      float64
	maxTravel float64

	current float64
	target  float64
}

var _ Controller = &controller{}

// NewController creates a progress controller at rest at the start of the path.
// A non-positive step falls back to DefaultStep and a max travel outside (0, 1) falls back to DefaultMaxTravel.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - Controller: the newly created controller
func NewController(options ...ControllerBuilderOption) Controller {
	c := &controller{
		mu:        &sync.Mutex{},
		step:      DefaultStep,
		maxTravel: DefaultMaxTravel,
	}
	for _, opt := range options {
		opt(c)
	}
	if !(c.step > 0) {
		c.step = DefaultStep
	}
	if !(c.maxTravel > 0 && c.maxTravel < 1) {
		c.maxTravel = DefaultMaxTravel
	}
	return c
}

func (c *controller) SetTarget(index, total int) float64 {
	target := TargetFraction(index, total) * c.maxTravel

	c.mu.Lock()
	defer c.mu.Unlock()
	c.target = target
	c.current = 0
	return target
}

func (c *controller) Advance() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current >= c.target {
		return c.current
	}
	next := c.current + c.step
	if next >= c.target-snapTolerance {
		next = c.target
	}
	c.current = next
	return c.current
}

func (c *controller) Current() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *controller) Target() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

func (c *controller) Settled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current >= c.target
}

func (c *controller) Step() float64 {
	return c.step
}

func (c *controller) MaxTravel() float64 {
	return c.maxTravel
}

// TargetFraction maps a navigation position onto [0, 1] as index / max(total-1, 1).
// Out-of-range indices are clamped so the result never leaves [0, 1].
//
// Parameters:
//   - index: the zero-based navigation position
//   - total: the number of navigation positions
//
// Returns:
//   - float64: the unscaled fraction of the path
func TargetFraction(index, total int) float64 {
	denom := max(total-1, 1)
	index = min(max(index, 0), denom)
	return float64(index) / float64(denom)
}
