package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraController owns the positional state (position, target) that a Camera reads each frame.
// Camera reads from the controller and computes view/projection matrices.
type CameraController interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: world-space camera position
	Position() mgl32.Vec3

	// Target returns the look-at point.
	//
	// Returns:
	//   - mgl32.Vec3: world-space target position
	Target() mgl32.Vec3

	// SetPosition sets the camera's world-space position directly.
	//
	// Parameters:
	//   - p: world-space coordinates
	SetPosition(p mgl32.Vec3)

	// SetTarget sets the look-at point directly.
	//
	// Parameters:
	//   - t: world-space coordinates
	SetTarget(t mgl32.Vec3)
}

// FollowController is a CameraController that trails a moving subject from above and behind.
// Each call to Follow blends the position a constant fraction of the way toward a goal above and
// behind the subject and aims at the subject's ground projection. The blend is applied per call and
// is not normalized by elapsed time, so the apparent smoothing speed depends on the call rate.
type FollowController interface {
	CameraController

	// Follow moves the camera one blend step toward its goal for the given subject.
	// The goal is subject + (0, height, 0) - horizontal(forward) * behind. When forward has no horizontal
	// component the goal sits directly above the subject.
	//
	// Parameters:
	//   - subject: the world-space point being followed
	//   - forward: the subject's direction of travel
	//
	// Returns:
	//   - mgl32.Vec3: the goal the camera is blending toward
	Follow(subject, forward mgl32.Vec3) mgl32.Vec3

	// Height returns how far above the subject the goal sits.
	//
	// Returns:
	//   - float32: the goal height
	Height() float32

	// Behind returns how far behind the subject, horizontally, the goal sits.
	//
	// Returns:
	//   - float32: the trailing distance
	Behind() float32

	// Blend returns the fraction of the remaining distance covered per Follow call.
	//
	// Returns:
	//   - float32: the blend factor in (0, 1]
	Blend() float32
}
