package camera

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-trackside/common"
)

const (
	// DefaultFollowHeight is the goal height above the followed subject.
	DefaultFollowHeight = float32(30)

	// DefaultFollowBehind is the horizontal trailing distance behind the subject.
	DefaultFollowBehind = float32(8)

	// DefaultFollowBlend is the per-call exponential blend factor.
	DefaultFollowBlend = float32(0.1)
)

// followControllerImpl is the single implementation of FollowController.
type followControllerImpl struct {
	mu *sync.Mutex

	position mgl32.Vec3
	target   mgl32.Vec3

	height float32
	behind float32
	blend  float32
}

// Compile-time interface compliance check
var _ FollowController = &followControllerImpl{}

// NewFollowController creates a follow controller starting at (0, 40, 20) looking at the origin.
// Blend factors outside (0, 1] fall back to DefaultFollowBlend.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - FollowController: the newly created controller
func NewFollowController(options ...CameraControllerOption) FollowController {
	fc := &followControllerImpl{
		mu:       &sync.Mutex{},
		position: mgl32.Vec3{0, 40, 20},
		height:   DefaultFollowHeight,
		behind:   DefaultFollowBehind,
		blend:    DefaultFollowBlend,
	}

	for _, option := range options {
		option(fc)
	}
	if !(fc.blend > 0 && fc.blend <= 1) {
		fc.blend = DefaultFollowBlend
	}
	return fc
}

func (fc *followControllerImpl) Position() mgl32.Vec3 {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.position
}

func (fc *followControllerImpl) Target() mgl32.Vec3 {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.target
}

func (fc *followControllerImpl) SetPosition(p mgl32.Vec3) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.position = p
}

func (fc *followControllerImpl) SetTarget(t mgl32.Vec3) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.target = t
}

func (fc *followControllerImpl) Follow(subject, forward mgl32.Vec3) mgl32.Vec3 {
	goal := subject.Add(mgl32.Vec3{0, fc.height, 0})
	if flat := (mgl32.Vec3{forward.X(), 0, forward.Z()}); flat.Len() > 1e-6 {
		goal = goal.Sub(flat.Normalize().Mul(fc.behind))
	}

	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.position = common.Lerp3(fc.position, goal, fc.blend)
	fc.target = mgl32.Vec3{subject.X(), 0, subject.Z()}
	return goal
}

func (fc *followControllerImpl) Height() float32 {
	return fc.height
}

func (fc *followControllerImpl) Behind() float32 {
	return fc.behind
}

func (fc *followControllerImpl) Blend() float32 {
	return fc.blend
}
