package model

import (
	"github.com/Carmen-Shannon/oxy-trackside/engine/renderer/bind_group_provider"
)

type model struct {
	name         string
	geometry     Geometry
	meshProvider bind_group_provider.BindGroupProvider
}

// Model is a geometry handle: CPU-side vertex and index data plus the provider that holds the
// uploaded vertex and index buffers once the Renderer has initialized it.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Geometry returns the CPU-side geometry.
	//
	// Returns:
	//   - Geometry: the vertices and indices
	Geometry() Geometry

	// VertexData returns the vertex buffer contents ready for upload.
	//
	// Returns:
	//   - []byte: the serialized vertices
	VertexData() []byte

	// IndexData returns the index buffer contents ready for upload.
	//
	// Returns:
	//   - []byte: the serialized 32-bit indices
	IndexData() []byte

	// IndexCount returns the number of indices drawn per instance.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// BoundingRadius returns the radius of a sphere around the model origin enclosing every vertex.
	//
	// Returns:
	//   - float32: the bounding radius
	BoundingRadius() float32

	// MeshProvider returns the provider holding the GPU vertex and index buffers.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the mesh provider
	MeshProvider() bind_group_provider.BindGroupProvider
}

var _ Model = &model{}

// NewModel creates a new Model from the given options.
//
// Parameters:
//   - options: functional options to configure the model
//
// Returns:
//   - Model: the newly created model
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{}
	for _, opt := range options {
		opt(m)
	}
	if m.meshProvider == nil {
		m.meshProvider = bind_group_provider.NewBindGroupProvider("geometry_" + m.name)
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Geometry() Geometry {
	return m.geometry
}

func (m *model) VertexData() []byte {
	return MarshalVertices(m.geometry.Vertices)
}

func (m *model) IndexData() []byte {
	return MarshalIndices(m.geometry.Indices)
}

func (m *model) IndexCount() int {
	return len(m.geometry.Indices)
}

func (m *model) BoundingRadius() float32 {
	return m.geometry.BoundingRadius()
}

func (m *model) MeshProvider() bind_group_provider.BindGroupProvider {
	return m.meshProvider
}
