package material

import (
	"github.com/Carmen-Shannon/oxy-trackside/common"
	"github.com/Carmen-Shannon/oxy-trackside/engine/renderer/bind_group_provider"
)

// MaterialBuilderOption is a functional option for configuring a Material during construction.
type MaterialBuilderOption func(*material)

// WithName sets the material name.
//
// Parameters:
//   - name: the material identifier
//
// Returns:
//   - MaterialBuilderOption: option function to apply
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithBaseColor sets the albedo RGBA color.
//
// Parameters:
//   - color: RGBA values in [0, 1]
//
// Returns:
//   - MaterialBuilderOption: option function to apply
func WithBaseColor(color [4]float32) MaterialBuilderOption {
	return func(m *material) {
		m.baseColor = color
	}
}

// WithHexColor sets the albedo color from a packed 0xRRGGBB value with full opacity.
//
// Parameters:
//   - hex: the packed colour
//
// Returns:
//   - MaterialBuilderOption: option function to apply
func WithHexColor(hex uint32) MaterialBuilderOption {
	return func(m *material) {
		m.baseColor = common.ColorFromHex(hex)
	}
}

// WithEmissive sets the emissive glow from a packed 0xRRGGBB value and an intensity.
//
// Parameters:
//   - hex: the packed emissive colour
//   - intensity: the emissive strength (0 disables emission)
//
// Returns:
//   - MaterialBuilderOption: option function to apply
func WithEmissive(hex uint32, intensity float32) MaterialBuilderOption {
	return func(m *material) {
		c := common.ColorFromHex(hex)
		m.emissive = [3]float32{c[0], c[1], c[2]}
		m.emissiveIntensity = intensity
	}
}

// WithBindGroupProvider overrides the provider that will hold the material's GPU resources.
//
// Parameters:
//   - provider: the bind group provider to use
//
// Returns:
//   - MaterialBuilderOption: option function to apply
func WithBindGroupProvider(provider bind_group_provider.BindGroupProvider) MaterialBuilderOption {
	return func(m *material) {
		m.bindGroupProvider = provider
	}
}
