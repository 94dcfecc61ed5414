package instancing

type batchConfig struct {
	height *float64
}

// BatchBuilderOption is a functional option for configuring how a Batch is placed along its curve.
type BatchBuilderOption func(*batchConfig)

// WithHeight places every instance at a fixed height instead of the sampled curve height.
//
// Parameters:
//   - y: the world-space height of every instance
//
// Returns:
//   - BatchBuilderOption: option function to apply
func WithHeight(y float64) BatchBuilderOption {
	return func(c *batchConfig) {
		c.height = &y
	}
}
