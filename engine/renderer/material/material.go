package material

import (
	"github.com/Carmen-Shannon/oxy-trackside/engine/renderer/bind_group_provider"
)

// material is the implementation of the Material interface.
type material struct {
	name              string
	baseColor         [4]float32
	emissive          [3]float32
	emissiveIntensity float32
	bindGroupProvider bind_group_provider.BindGroupProvider
}

// Material defines a flat-shaded surface: a base colour plus an optional emissive glow,
// with the GPU resources needed to bind it during a draw.
//
// Surface properties are fixed at construction. The bind group provider is populated by the
// Renderer and released by the scene that owns the material.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// BaseColor retrieves the albedo RGBA color of the material.
	//
	// Returns:
	//   - [4]float32: the base color as RGBA values
	BaseColor() [4]float32

	// Emissive retrieves the emissive RGB color and its intensity.
	//
	// Returns:
	//   - [3]float32: the emissive color
	//   - float32: the emissive intensity (0 disables emission)
	Emissive() ([3]float32, float32)

	// Params packs the material into its GPU uniform layout.
	//
	// Returns:
	//   - GPUMaterialParams: the uniform ready to marshal
	Params() GPUMaterialParams

	// BindGroupProvider retrieves the bind group provider holding GPU-side resources for this material.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the provider
	BindGroupProvider() bind_group_provider.BindGroupProvider
}

var _ Material = &material{}

// NewMaterial creates a new Material. The default is opaque white with no emission.
//
// Parameters:
//   - options: functional options to configure the material
//
// Returns:
//   - Material: the newly created material
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		baseColor: [4]float32{1, 1, 1, 1},
	}
	for _, opt := range options {
		opt(m)
	}
	if m.bindGroupProvider == nil {
		m.bindGroupProvider = bind_group_provider.NewBindGroupProvider("material_" + m.name)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) BaseColor() [4]float32 {
	return m.baseColor
}

func (m *material) Emissive() ([3]float32, float32) {
	return m.emissive, m.emissiveIntensity
}

func (m *material) Params() GPUMaterialParams {
	return GPUMaterialParams{
		BaseColor: m.baseColor,
		Emissive:  [4]float32{m.emissive[0], m.emissive[1], m.emissive[2], m.emissiveIntensity},
	}
}

func (m *material) BindGroupProvider() bind_group_provider.BindGroupProvider {
	return m.bindGroupProvider
}
