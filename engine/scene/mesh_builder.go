package scene

import (
	"github.com/Carmen-Shannon/oxy-trackside/engine/renderer/bind_group_provider"
	"github.com/go-gl/mathgl/mgl32"
)

// MeshBuilderOption is a functional option for configuring a Mesh.
// Use the With* functions to create options.
type MeshBuilderOption func(m *mesh)

// WithInstances sets the instance matrices of the mesh. An empty slice leaves the single identity instance.
//
// Parameters:
//   - matrices: one model matrix per instance
//
// Returns:
//   - MeshBuilderOption: option function to apply
func WithInstances(matrices []mgl32.Mat4) MeshBuilderOption {
	return func(m *mesh) {
		if len(matrices) == 0 {
			return
		}
		m.instances = append([]mgl32.Mat4(nil), matrices...)
	}
}

// WithVisible sets whether the mesh is drawn.
//
// Parameters:
//   - visible: whether the mesh is drawn
//
// Returns:
//   - MeshBuilderOption: option function to apply
func WithVisible(visible bool) MeshBuilderOption {
	return func(m *mesh) {
		m.visible = visible
	}
}

// WithInstanceProvider overrides the provider holding the instance storage buffer.
//
// Parameters:
//   - provider: the provider to use
//
// Returns:
//   - MeshBuilderOption: option function to apply
func WithInstanceProvider(provider bind_group_provider.BindGroupProvider) MeshBuilderOption {
	return func(m *mesh) {
		m.instanceProvider = provider
	}
}
