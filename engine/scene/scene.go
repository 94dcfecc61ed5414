package scene

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-trackside/common"
	"github.com/Carmen-Shannon/oxy-trackside/engine/camera"
	"github.com/Carmen-Shannon/oxy-trackside/engine/model"
	"github.com/Carmen-Shannon/oxy-trackside/engine/renderer"
	"github.com/Carmen-Shannon/oxy-trackside/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-trackside/engine/renderer/material"
)

var (
	// ErrReleased is returned by operations on a released Scene.
	ErrReleased = errors.New("scene released")

	// ErrNotInitialized is returned by Render before Init has succeeded.
	ErrNotInitialized = errors.New("scene not initialized")

	// ErrDuplicateMesh is returned by Add when a mesh name is already taken.
	ErrDuplicateMesh = errors.New("duplicate mesh name")
)

// Renderer is the subset of renderer.Renderer a Scene initializes and draws through.
type Renderer interface {
	InitMesh(m model.Model) error
	InitMaterial(m material.Material) error
	InitCamera(provider bind_group_provider.BindGroupProvider, data []byte) error
	InitInstances(provider bind_group_provider.BindGroupProvider, capacity int, data []byte) error
	WriteBuffers(writes []bind_group_provider.BufferWrite)
	BeginFrame() error
	DrawCall(meshProvider bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error
	EndFrame()
	Present()
}

var _ Renderer = renderer.Renderer(nil)

type scene struct {
	mu *sync.RWMutex

	name string
	cam  camera.Camera

	cameraProvider bind_group_provider.BindGroupProvider

	meshes []Mesh
	byName map[string]Mesh

	r           Renderer
	initialized bool
	released    bool

	// culling skips meshes whose bounds fall outside the camera frustum; culled counts them per frame.
	culling bool
	culled  int

	// writesPool and bindGroupsPool are reused across frames.
	writesPool     []bind_group_provider.BufferWrite
	bindGroupsPool []bind_group_provider.BindGroupProvider
}

// Scene is the root of the vignette's resource ownership tree. It owns the camera uniform and a set
// of meshes; each mesh owns its geometry, material and instance buffers. Releasing the scene walks the
// tree once and frees every GPU handle exactly once, even when meshes share a model or material.
//
// Thread-safe: Render and Release are serialized so a release waits for an in-flight frame.
type Scene interface {
	// Name returns the scene's identifier.
	//
	// Returns:
	//   - string: the scene name
	Name() string

	// Camera returns the camera the scene is drawn from.
	//
	// Returns:
	//   - camera.Camera: the scene camera
	Camera() camera.Camera

	// Add registers meshes in draw order. Must be called before Init.
	//
	// Parameters:
	//   - meshes: the meshes to add
	//
	// Returns:
	//   - error: ErrDuplicateMesh, ErrReleased, or an error when the scene is already initialized
	Add(meshes ...Mesh) error

	// Mesh retrieves a mesh by name.
	//
	// Parameters:
	//   - name: the mesh name
	//
	// Returns:
	//   - Mesh: the mesh or nil if not found
	Mesh(name string) Mesh

	// Meshes returns the meshes in draw order.
	//
	// Returns:
	//   - []Mesh: a copy of the mesh list
	Meshes() []Mesh

	// Init creates the GPU resources of every node through the renderer. Shared models and
	// materials are uploaded once.
	//
	// Parameters:
	//   - r: the renderer to initialize and draw through
	//
	// Returns:
	//   - error: the first initialization error, wrapped with the failing node
	Init(r Renderer) error

	// Render uploads the camera uniform and changed instance slots, then draws every visible mesh in
	// one frame: BeginFrame, DrawCall per mesh, EndFrame, Present.
	//
	// Returns:
	//   - error: ErrReleased, ErrNotInitialized, a frame acquisition error, or the first draw error
	Render() error

	// Release frees every GPU handle in the tree. Safe to call more than once and before Init.
	Release()

	// Released reports whether Release has been called.
	//
	// Returns:
	//   - bool: true once released
	Released() bool

	// Culled returns how many visible meshes the last Render skipped as outside the camera frustum.
	//
	// Returns:
	//   - int: the culled mesh count, always 0 when culling is disabled
	Culled() int
}

var _ Scene = &scene{}

// NewScene creates an empty scene viewed through cam.
//
// Parameters:
//   - name: the scene identifier
//   - cam: the camera the scene is drawn from
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the new scene
func NewScene(name string, cam camera.Camera, options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:             &sync.RWMutex{},
		name:           name,
		cam:            cam,
		cameraProvider: bind_group_provider.NewBindGroupProvider("camera_" + name),
		byName:         make(map[string]Mesh),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Camera() camera.Camera {
	return s.cam
}

func (s *scene) Add(meshes ...Mesh) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(meshes...)
}

// add registers meshes. Caller holds s.mu.
func (s *scene) add(meshes ...Mesh) error {
	if s.released {
		return ErrReleased
	}
	if s.initialized {
		return fmt.Errorf("scene %q: meshes must be added before Init", s.name)
	}
	for _, m := range meshes {
		if _, exists := s.byName[m.Name()]; exists {
			return fmt.Errorf("scene %q: %w: %q", s.name, ErrDuplicateMesh, m.Name())
		}
		s.byName[m.Name()] = m
		s.meshes = append(s.meshes, m)
	}
	return nil
}

func (s *scene) Mesh(name string) Mesh {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byName[name]
}

func (s *scene) Meshes() []Mesh {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Mesh(nil), s.meshes...)
}

func (s *scene) Init(r Renderer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return ErrReleased
	}
	if r == nil {
		return fmt.Errorf("scene %q: nil renderer", s.name)
	}

	uniform := s.cam.Uniform()
	if err := r.InitCamera(s.cameraProvider, uniform.Marshal()); err != nil {
		return fmt.Errorf("scene %q: camera: %w", s.name, err)
	}

	models := make(map[bind_group_provider.BindGroupProvider]bool)
	materials := make(map[bind_group_provider.BindGroupProvider]bool)
	for _, m := range s.meshes {
		if p := m.Model().MeshProvider(); !models[p] {
			if err := r.InitMesh(m.Model()); err != nil {
				return fmt.Errorf("scene %q: mesh %q geometry: %w", s.name, m.Name(), err)
			}
			models[p] = true
		}
		if p := m.Material().BindGroupProvider(); !materials[p] {
			if err := r.InitMaterial(m.Material()); err != nil {
				return fmt.Errorf("scene %q: mesh %q material: %w", s.name, m.Name(), err)
			}
			materials[p] = true
		}
		if err := r.InitInstances(m.InstanceProvider(), m.InstanceCount(), m.InstanceData()); err != nil {
			return fmt.Errorf("scene %q: mesh %q instances: %w", s.name, m.Name(), err)
		}
		m.MarkUploaded()
	}

	s.r = r
	s.initialized = true
	log.Printf("[scene] %q initialized with %d meshes", s.name, len(s.meshes))
	return nil
}

func (s *scene) Render() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return ErrReleased
	}
	if !s.initialized {
		return ErrNotInitialized
	}

	uniform := s.cam.Uniform()
	writes := append(s.writesPool[:0], bind_group_provider.BufferWrite{
		Provider: s.cameraProvider,
		Data:     uniform.Marshal(),
	})
	for _, m := range s.meshes {
		writes = m.PendingWrites(writes)
	}
	s.r.WriteBuffers(writes)
	s.writesPool = writes[:0]

	if err := s.r.BeginFrame(); err != nil {
		return fmt.Errorf("scene %q: begin frame: %w", s.name, err)
	}

	var frustum common.Frustum
	if s.culling {
		frustum = common.ExtractFrustum(s.cam.ViewProjectionMatrix())
	}
	s.culled = 0

	var drawErr error
	for _, m := range s.meshes {
		if !m.Visible() || m.InstanceCount() == 0 {
			continue
		}
		if s.culling {
			if centre, radius := m.Bounds(); !frustum.IntersectsSphere(centre, radius) {
				s.culled++
				continue
			}
		}
		bindGroups := append(s.bindGroupsPool[:0], s.cameraProvider, m.Material().BindGroupProvider(), m.InstanceProvider())
		if err := s.r.DrawCall(m.Model().MeshProvider(), uint32(m.InstanceCount()), bindGroups); err != nil && drawErr == nil {
			drawErr = fmt.Errorf("scene %q: draw %q: %w", s.name, m.Name(), err)
		}
		s.bindGroupsPool = bindGroups[:0]
	}

	s.r.EndFrame()
	s.r.Present()
	return drawErr
}

func (s *scene) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return
	}
	s.released = true

	seen := make(map[bind_group_provider.BindGroupProvider]bool)
	release := func(p bind_group_provider.BindGroupProvider) {
		if p == nil || seen[p] {
			return
		}
		seen[p] = true
		p.Release()
	}

	for _, m := range s.meshes {
		release(m.InstanceProvider())
		release(m.Model().MeshProvider())
		release(m.Material().BindGroupProvider())
	}
	release(s.cameraProvider)

	s.r = nil
	log.Printf("[scene] %q released %d GPU handles", s.name, len(seen))
}

func (s *scene) Released() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.released
}

func (s *scene) Culled() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.culled
}
