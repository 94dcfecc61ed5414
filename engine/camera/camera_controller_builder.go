package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraControllerOption is a functional option for configuring a FollowController.
type CameraControllerOption func(*followControllerImpl)

// WithPosition sets the initial camera position.
//
// Parameters:
//   - p: world-space starting position
//
// Returns:
//   - CameraControllerOption: functional option to set the position
func WithPosition(p mgl32.Vec3) CameraControllerOption {
	return func(fc *followControllerImpl) {
		fc.position = p
	}
}

// WithTarget sets the initial look-at point.
//
// Parameters:
//   - t: world-space look-at point
//
// Returns:
//   - CameraControllerOption: functional option to set the target position
func WithTarget(t mgl32.Vec3) CameraControllerOption {
	return func(fc *followControllerImpl) {
		fc.target = t
	}
}

// WithFollowHeight sets how far above the subject the camera goal sits.
//
// Parameters:
//   - height: vertical offset in world units
//
// Returns:
//   - CameraControllerOption: functional option to set the follow height
func WithFollowHeight(height float32) CameraControllerOption {
	return func(fc *followControllerImpl) {
		fc.height = height
	}
}

// WithFollowBehind sets how far behind the subject, horizontally, the camera goal sits.
// Zero places the goal straight above the subject.
//
// Parameters:
//   - distance: trailing distance in world units
//
// Returns:
//   - CameraControllerOption: functional option to set the trailing distance
func WithFollowBehind(distance float32) CameraControllerOption {
	return func(fc *followControllerImpl) {
		fc.behind = distance
	}
}

// WithFollowBlend sets the fraction of the remaining distance covered per Follow call.
//
// Parameters:
//   - blend: the blend factor in (0, 1]
//
// Returns:
//   - CameraControllerOption: functional option to set the blend factor
func WithFollowBlend(blend float32) CameraControllerOption {
	return func(fc *followControllerImpl) {
		fc.blend = blend
	}
}
