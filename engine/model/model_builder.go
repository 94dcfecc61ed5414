package model

import (
	"github.com/Carmen-Shannon/oxy-trackside/engine/renderer/bind_group_provider"
)

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithGeometry is an option builder that sets the vertex and index data of the Model.
//
// Parameters:
//   - g: the geometry to use
//
// Returns:
//   - ModelBuilderOption: a function that applies the geometry option to a model
func WithGeometry(g Geometry) ModelBuilderOption {
	return func(m *model) {
		m.geometry = g
	}
}

// WithMeshProvider is an option builder that overrides the provider for the GPU vertex and index buffers.
//
// Parameters:
//   - provider: the bind group provider to use
//
// Returns:
//   - ModelBuilderOption: a function that applies the provider option to a model
func WithMeshProvider(provider bind_group_provider.BindGroupProvider) ModelBuilderOption {
	return func(m *model) {
		m.meshProvider = provider
	}
}
