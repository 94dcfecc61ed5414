package game_object

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultForwardCorrection turns a model authored with its nose along -Z to face its look-at target.
const DefaultForwardCorrection = float32(math.Pi)

// InstanceSink receives the model matrix of one instance slot, typically a mesh's instance buffer.
type InstanceSink interface {
	// SetInstance stores the model matrix for the given instance slot.
	SetInstance(index uint32, m mgl32.Mat4)
}

type gameObject struct {
	mu *sync.Mutex

	id      uint64
	enabled atomic.Bool

	sink          InstanceSink
	instanceIndex uint32

	position          mgl32.Vec3
	yaw               float32
	pitch             float32
	forwardCorrection float32
	dirty             bool
}

// GameObject defines the interface for a scene entity placed by position and look-at orientation.
// Its model matrix is translate(position) * rotateY(yaw) * rotateX(pitch) * rotateY(forwardCorrection),
// where yaw and pitch turn local +Z toward the last look-at target. The forward correction aligns the
// model's authored forward axis with that direction.
type GameObject interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Enabled returns whether this object is enabled for rendering.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetEnabled sets whether the object is enabled for rendering.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// Position returns the object's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// SetPosition moves the object without changing its orientation.
	//
	// Parameters:
	//   - p: the new world-space position
	SetPosition(p mgl32.Vec3)

	// LookAt orients the object so its local +Z axis (before the forward correction) points at target.
	// If target coincides with the position the orientation is left unchanged.
	//
	// Parameters:
	//   - target: the world-space point to face
	LookAt(target mgl32.Vec3)

	// Yaw returns the rotation about +Y in radians, excluding the forward correction.
	//
	// Returns:
	//   - float32: the yaw angle
	Yaw() float32

	// Pitch returns the rotation about the local X axis in radians.
	//
	// Returns:
	//   - float32: the pitch angle
	Pitch() float32

	// Forward returns the unit direction the object is facing in world space.
	//
	// Returns:
	//   - mgl32.Vec3: the facing direction
	Forward() mgl32.Vec3

	// ForwardCorrection returns the fixed extra rotation about +Y applied in model space.
	//
	// Returns:
	//   - float32: the correction angle in radians
	ForwardCorrection() float32

	// ModelMatrix returns the object's current model matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the column-major model matrix
	ModelMatrix() mgl32.Mat4

	// Flush writes the model matrix to the bound instance slot if the transform changed since the last flush.
	// It does nothing when no instance sink is bound.
	//
	// Returns:
	//   - bool: true if a matrix was written
	Flush() bool

	// Bind attaches the object to an instance slot. The next Flush always writes.
	//
	// Parameters:
	//   - sink: the receiver of the model matrix
	//   - index: the instance slot within the sink
	Bind(sink InstanceSink, index uint32)
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new GameObject configured with the given options.
// Objects are enabled by default.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		mu:                &sync.Mutex{},
		forwardCorrection: DefaultForwardCorrection,
		dirty:             true,
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	return obj
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) Position() mgl32.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.position
}

func (g *gameObject) SetPosition(p mgl32.Vec3) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.position = p
	g.dirty = true
}

func (g *gameObject) LookAt(target mgl32.Vec3) {
	g.mu.Lock()
	defer g.mu.Unlock()

	d := target.Sub(g.position)
	horizontal := float32(math.Hypot(float64(d.X()), float64(d.Z())))
	if horizontal < 1e-9 && math.Abs(float64(d.Y())) < 1e-9 {
		return
	}
	g.yaw = float32(math.Atan2(float64(d.X()), float64(d.Z())))
	g.pitch = -float32(math.Atan2(float64(d.Y()), float64(horizontal)))
	g.dirty = true
}

func (g *gameObject) Yaw() float32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.yaw
}

func (g *gameObject) Pitch() float32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pitch
}

func (g *gameObject) Forward() mgl32.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	rot := mgl32.HomogRotate3DY(g.yaw).Mul4(mgl32.HomogRotate3DX(g.pitch))
	return rot.Mul4x1(mgl32.Vec4{0, 0, 1, 0}).Vec3()
}

func (g *gameObject) ForwardCorrection() float32 {
	return g.forwardCorrection
}

func (g *gameObject) ModelMatrix() mgl32.Mat4 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.modelMatrix()
}

func (g *gameObject) Flush() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.sink == nil || !g.dirty {
		return false
	}
	g.sink.SetInstance(g.instanceIndex, g.modelMatrix())
	g.dirty = false
	return true
}

func (g *gameObject) Bind(sink InstanceSink, index uint32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sink = sink
	g.instanceIndex = index
	g.dirty = true
}

// modelMatrix composes the transform. Caller must hold the mutex.
func (g *gameObject) modelMatrix() mgl32.Mat4 {
	p := g.position
	return mgl32.Translate3D(p.X(), p.Y(), p.Z()).
		Mul4(mgl32.HomogRotate3DY(g.yaw)).
		Mul4(mgl32.HomogRotate3DX(g.pitch)).
		Mul4(mgl32.HomogRotate3DY(g.forwardCorrection))
}
