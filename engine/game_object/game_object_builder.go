package game_object

import "github.com/go-gl/mathgl/mgl32"

// GameObjectBuilderOption is a functional option for configuring a GameObject during construction.
type GameObjectBuilderOption func(*gameObject)

// WithID sets the ID of the GameObject.
//
// Parameters:
//   - id: unique identifier for the GameObject
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the ID
func WithID(id uint64) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.id = id
	}
}

// WithEnabled sets whether the GameObject is enabled for rendering.
//
// Parameters:
//   - enabled: true to render the object, false to skip it
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Enabled state
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.enabled.Store(enabled)
	}
}

// WithPosition sets the initial world-space position.
//
// Parameters:
//   - p: the starting position
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the position
func WithPosition(p mgl32.Vec3) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.position = p
	}
}

// WithForwardCorrection sets the fixed rotation about +Y applied in model space after orientation.
// Use 0 for models authored facing +Z and pi (the default) for models authored facing -Z.
//
// Parameters:
//   - radians: the correction angle
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the forward correction
func WithForwardCorrection(radians float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.forwardCorrection = radians
	}
}

// WithInstance binds the GameObject to an instance slot at construction.
//
// Parameters:
//   - sink: the receiver of the model matrix
//   - index: the instance slot within the sink
//
// Returns:
//   - GameObjectBuilderOption: functional option to bind the instance slot
func WithInstance(sink InstanceSink, index uint32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.sink = sink
		obj.instanceIndex = index
	}
}
