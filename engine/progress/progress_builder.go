package progress

// ControllerBuilderOption is a functional option for configuring a Controller.
type ControllerBuilderOption func(*controller)

// WithStep sets the per-frame progress increment.
//
// Parameters:
//   - step: the fraction of the path covered per advance (must be > 0)
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithStep(step float64) ControllerBuilderOption {
	return func(c *controller) {
		c.step = step
	}
}

// WithMaxTravel sets the fraction of the path that the last navigation position maps to.
// It must stay below 1 so the look-ahead sample never runs past the end of the path.
//
// Parameters:
//   - fraction: the maximum travel fraction in (0, 1)
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithMaxTravel(fraction float64) ControllerBuilderOption {
	return func(c *controller) {
		c.maxTravel = fraction
	}
}
