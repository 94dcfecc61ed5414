package renderer

import (
	_ "embed"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-trackside/engine/model"
	"github.com/Carmen-Shannon/oxy-trackside/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-trackside/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-trackside/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// TrackPipelineKey is the key of the flat-shaded instanced pipeline every mesh is drawn with.
const TrackPipelineKey = "track"

//go:embed assets/track.wgsl
var trackShaderSource string

// ErrReleased is returned by operations on a released Renderer.
var ErrReleased = errors.New("renderer released")

// SurfaceTarget is anything a WebGPU surface can be created for, typically a window.Window.
type SurfaceTarget interface {
	// SurfaceDescriptor returns the platform-specific surface descriptor.
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// Width returns the drawable width in pixels.
	Width() int

	// Height returns the drawable height in pixels.
	Height() int
}

type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend
	trackPipe   pipeline.Pipeline

	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount
	pendingClearColor    *[4]float32
	forceFallbackAdapter bool

	released bool
}

// Renderer draws the vignette with a single instanced pipeline. Every draw binds the camera uniform
// at group 0, a material uniform at group 1 and an instance matrix array at group 2.
//
// GPU resources are created on the BindGroupProvider handles of the scene's leaves via the Init*
// methods and released by the scene; the Renderer only owns the device-level objects (surface,
// attachments, pipeline) which Release frees.
type Renderer interface {
	// Resize reconfigures the surface and recreates the size-dependent attachments.
	// Zero-area sizes are ignored.
	//
	// Parameters:
	//   - width: the new surface width in pixels
	//   - height: the new surface height in pixels
	Resize(width, height int)

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	// A call to Resize is required after changing this for the new mode to take effect.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// SetClearColor sets the background colour the frame is cleared to.
	//
	// Parameters:
	//   - color: RGBA in [0, 1]
	SetClearColor(color [4]float32)

	// Pipeline returns the registered track pipeline.
	//
	// Returns:
	//   - pipeline.Pipeline: the pipeline every DrawCall uses
	Pipeline() pipeline.Pipeline

	// InitMesh uploads a model's vertex and index data into its mesh provider.
	//
	// Parameters:
	//   - m: the model to upload
	//
	// Returns:
	//   - error: an error if the buffers could not be created
	InitMesh(m model.Model) error

	// InitMaterial creates the material uniform and bind group on the material's provider.
	//
	// Parameters:
	//   - m: the material to upload
	//
	// Returns:
	//   - error: an error if the bind group could not be created
	InitMaterial(m material.Material) error

	// InitCamera creates the camera uniform and bind group on the given provider.
	//
	// Parameters:
	//   - provider: the camera's bind group provider
	//   - data: the initial uniform contents (CameraUniformSize bytes)
	//
	// Returns:
	//   - error: an error if the bind group could not be created
	InitCamera(provider bind_group_provider.BindGroupProvider, data []byte) error

	// InitInstances creates the instance storage buffer and bind group on the given provider.
	//
	// Parameters:
	//   - provider: the instance set's bind group provider
	//   - capacity: the number of instance matrices the buffer holds (minimum 1)
	//   - data: the initial matrices, InstanceStride bytes each
	//
	// Returns:
	//   - error: an error if the bind group could not be created
	InitInstances(provider bind_group_provider.BindGroupProvider, capacity int, data []byte) error

	// WriteBuffers writes all staged buffer writes to the GPU queue.
	//
	// Parameters:
	//   - writes: a slice of BufferWrite structs describing the data to write
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginFrame acquires the next swapchain texture and begins the main render pass.
	// Must be paired with EndFrame after all DrawCall invocations.
	//
	// Returns:
	//   - error: ErrNoFrame (wrapped) if there is no swapchain texture to draw into, or an error
	//     if the renderer is released
	BeginFrame() error

	// DrawCall encodes one instanced draw of a mesh with the track pipeline.
	//
	// Parameters:
	//   - meshProvider: the BindGroupProvider holding vertex and index buffers
	//   - instanceCount: the number of instances to draw
	//   - bindGroups: camera, material and instance providers, in group order
	//
	// Returns:
	//   - error: an error if no frame is in progress or a resource is missing
	DrawCall(meshProvider bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error

	// EndFrame ends the current render pass and submits the command buffer to the GPU.
	EndFrame()

	// Present presents the surface to the display and releases the swapchain texture.
	Present()

	// Release frees the pipeline and every device-level resource. Safe to call more than once.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer for the given surface target, configures the surface at the target's
// current size and registers the track pipeline.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - target: the surface target, typically a window.Window
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the ready-to-draw renderer
//   - error: an error if the adapter, device, surface or pipeline could not be created
func NewRenderer(backendType RendererBackendType, target SurfaceTarget, options ...RendererBuilderOption) (Renderer, error) {
	if target == nil {
		return nil, errors.New("renderer: nil surface target")
	}
	if target.Width() <= 0 || target.Height() <= 0 {
		return nil, fmt.Errorf("renderer: surface has zero area (%dx%d)", target.Width(), target.Height())
	}

	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	msaa := MSAA4x
	if r.pendingMSAA != nil {
		msaa = *r.pendingMSAA
	}

	var err error
	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend, err = newWGPURendererBackend(target.SurfaceDescriptor(), r.forceFallbackAdapter, msaa)
	}
	if err != nil {
		return nil, fmt.Errorf("renderer: %w", err)
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}
	if r.pendingClearColor != nil {
		r.backend.SetClearColor(*r.pendingClearColor)
	}

	if err := r.backend.ConfigureSurface(target.Width(), target.Height()); err != nil {
		r.backend.Release()
		return nil, fmt.Errorf("renderer: %w", err)
	}

	r.trackPipe = pipeline.NewPipeline(TrackPipelineKey, trackShaderSource)
	if err := r.backend.RegisterRenderPipeline(r.trackPipe); err != nil {
		r.backend.Release()
		return nil, fmt.Errorf("renderer: %w", err)
	}
	return r, nil
}

func (r *renderer) Resize(width, height int) {
	if err := r.backend.ConfigureSurface(width, height); err != nil {
		log.Printf("[renderer] resize to %dx%d failed: %v", width, height, err)
	}
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) SetClearColor(color [4]float32) {
	r.backend.SetClearColor(color)
}

func (r *renderer) Pipeline() pipeline.Pipeline {
	return r.trackPipe
}

func (r *renderer) InitMesh(m model.Model) error {
	if r.isReleased() {
		return ErrReleased
	}
	return r.backend.InitMeshBuffers(m.MeshProvider(), m.VertexData(), m.IndexData(), m.IndexCount())
}

func (r *renderer) InitMaterial(m material.Material) error {
	if r.isReleased() {
		return ErrReleased
	}
	params := m.Params()
	return r.backend.InitBindGroup(m.BindGroupProvider(), GroupMaterial, MaterialUniformSize, params.Marshal())
}

func (r *renderer) InitCamera(provider bind_group_provider.BindGroupProvider, data []byte) error {
	if r.isReleased() {
		return ErrReleased
	}
	return r.backend.InitBindGroup(provider, GroupCamera, CameraUniformSize, data)
}

func (r *renderer) InitInstances(provider bind_group_provider.BindGroupProvider, capacity int, data []byte) error {
	if r.isReleased() {
		return ErrReleased
	}
	capacity = max(capacity, 1)
	return r.backend.InitBindGroup(provider, GroupInstances, uint64(capacity*InstanceStride), data)
}

func (r *renderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	r.backend.WriteBuffers(writes)
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) DrawCall(meshProvider bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error {
	return r.backend.DrawCall(r.trackPipe, meshProvider, instanceCount, bindGroups)
}

func (r *renderer) EndFrame() {
	r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) Release() {
	r.mu.Lock()
	if r.released {
		r.mu.Unlock()
		return
	}
	r.released = true
	r.mu.Unlock()

	if r.trackPipe != nil {
		r.trackPipe.Release()
	}
	r.backend.Release()
}

func (r *renderer) isReleased() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.released
}
