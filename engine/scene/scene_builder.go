package scene

import (
	"log"

	"github.com/Carmen-Shannon/oxy-trackside/engine/renderer/bind_group_provider"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithMeshes adds initial meshes to the scene in draw order.
// Meshes whose name is already taken are logged and skipped.
//
// Parameters:
//   - meshes: the meshes to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithMeshes(meshes ...Mesh) SceneBuilderOption {
	return func(s *scene) {
		for _, m := range meshes {
			if err := s.add(m); err != nil {
				log.Printf("[scene] skipping mesh: %v", err)
			}
		}
	}
}

// WithCameraProvider overrides the provider holding the camera uniform buffer.
//
// Parameters:
//   - provider: the provider to use
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCameraProvider(provider bind_group_provider.BindGroupProvider) SceneBuilderOption {
	return func(s *scene) {
		s.cameraProvider = provider
	}
}

// WithFrustumCulling skips drawing meshes whose bounding sphere lies entirely outside the camera frustum.
//
// Parameters:
//   - enabled: whether to cull
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithFrustumCulling(enabled bool) SceneBuilderOption {
	return func(s *scene) {
		s.culling = enabled
	}
}
