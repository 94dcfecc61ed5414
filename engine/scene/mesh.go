package scene

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-trackside/common"
	"github.com/Carmen-Shannon/oxy-trackside/engine/game_object"
	"github.com/Carmen-Shannon/oxy-trackside/engine/model"
	"github.com/Carmen-Shannon/oxy-trackside/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-trackside/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
)

// instanceStride is the size in bytes of one instance matrix in the storage buffer.
const instanceStride = 64

type mesh struct {
	mu *sync.Mutex

	name     string
	model    model.Model
	material material.Material

	instances        []mgl32.Mat4
	instanceProvider bind_group_provider.BindGroupProvider

	// dirty holds the instance slots changed since the last upload; allDirty forces a full upload.
	dirty    map[uint32]struct{}
	allDirty bool

	// boundsCenter and boundsRadius enclose every instance; stale while boundsDirty is set.
	boundsCenter mgl32.Vec3
	boundsRadius float32
	boundsDirty  bool

	visible bool
}

// Mesh is one drawable node of the scene: a geometry and a material shared by a fixed number of
// instances, each placed by its own model matrix. Static sets (lane markers, posts) are built once;
// dynamic meshes (the car) have their slots rewritten through SetInstance and re-uploaded on the
// next render.
type Mesh interface {
	game_object.InstanceSink

	// Name returns the mesh identifier.
	//
	// Returns:
	//   - string: the mesh name
	Name() string

	// Model returns the geometry drawn for every instance.
	//
	// Returns:
	//   - model.Model: the shared geometry
	Model() model.Model

	// Material returns the surface shading every instance.
	//
	// Returns:
	//   - material.Material: the shared material
	Material() material.Material

	// InstanceProvider returns the provider holding the instance storage buffer.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the instance provider
	InstanceProvider() bind_group_provider.BindGroupProvider

	// InstanceCount returns the number of instances drawn.
	//
	// Returns:
	//   - int: the instance count
	InstanceCount() int

	// Instance returns the model matrix of one slot.
	//
	// Parameters:
	//   - index: the instance slot
	//
	// Returns:
	//   - mgl32.Mat4: the matrix, or identity when index is out of range
	Instance(index uint32) mgl32.Mat4

	// Visible reports whether the mesh is drawn.
	//
	// Returns:
	//   - bool: true when drawn
	Visible() bool

	// SetVisible toggles drawing of the mesh without releasing anything.
	//
	// Parameters:
	//   - visible: whether to draw the mesh
	SetVisible(visible bool)

	// InstanceData returns every instance matrix serialized for upload.
	//
	// Returns:
	//   - []byte: InstanceCount * 64 bytes
	InstanceData() []byte

	// PendingWrites appends the uploads for instance slots changed since the last call and clears them.
	//
	// Parameters:
	//   - dst: the slice to append to
	//
	// Returns:
	//   - []bind_group_provider.BufferWrite: dst with this mesh's writes appended
	PendingWrites(dst []bind_group_provider.BufferWrite) []bind_group_provider.BufferWrite

	// MarkUploaded clears all pending writes, used after InstanceData has been uploaded in full.
	MarkUploaded()

	// Bounds returns a world-space sphere enclosing every instance, assuming rigid instance transforms.
	//
	// Returns:
	//   - mgl32.Vec3: the sphere centre
	//   - float32: the sphere radius
	Bounds() (mgl32.Vec3, float32)
}

var _ Mesh = &mesh{}

// NewMesh creates a mesh drawing mdl with mat. Without WithInstances it holds a single identity instance.
//
// Parameters:
//   - name: the mesh identifier, also used to label its instance provider
//   - mdl: the geometry
//   - mat: the material
//   - options: functional options to configure the mesh
//
// Returns:
//   - Mesh: the new mesh
func NewMesh(name string, mdl model.Model, mat material.Material, options ...MeshBuilderOption) Mesh {
	m := &mesh{
		mu:          &sync.Mutex{},
		name:        name,
		model:       mdl,
		material:    mat,
		instances:   []mgl32.Mat4{mgl32.Ident4()},
		dirty:       make(map[uint32]struct{}),
		allDirty:    true,
		boundsDirty: true,
		visible:     true,
	}
	for _, opt := range options {
		opt(m)
	}
	if m.instanceProvider == nil {
		m.instanceProvider = bind_group_provider.NewBindGroupProvider("instances_" + name)
	}
	return m
}

func (m *mesh) Name() string {
	return m.name
}

func (m *mesh) Model() model.Model {
	return m.model
}

func (m *mesh) Material() material.Material {
	return m.material
}

func (m *mesh) InstanceProvider() bind_group_provider.BindGroupProvider {
	return m.instanceProvider
}

func (m *mesh) InstanceCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.instances)
}

func (m *mesh) Instance(index uint32) mgl32.Mat4 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if int(index) >= len(m.instances) {
		return mgl32.Ident4()
	}
	return m.instances[index]
}

func (m *mesh) SetInstance(index uint32, mat mgl32.Mat4) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if int(index) >= len(m.instances) {
		return
	}
	m.instances[index] = mat
	m.dirty[index] = struct{}{}
	m.boundsDirty = true
}

func (m *mesh) Visible() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.visible
}

func (m *mesh) SetVisible(visible bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.visible = visible
}

func (m *mesh) InstanceData() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return common.MatricesToBytes(m.instances)
}

func (m *mesh) PendingWrites(dst []bind_group_provider.BufferWrite) []bind_group_provider.BufferWrite {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.allDirty {
		dst = append(dst, bind_group_provider.BufferWrite{
			Provider: m.instanceProvider,
			Data:     common.MatricesToBytes(m.instances),
		})
	} else {
		for idx := range m.dirty {
			dst = append(dst, bind_group_provider.BufferWrite{
				Provider: m.instanceProvider,
				Offset:   uint64(idx) * instanceStride,
				Data:     common.MatricesToBytes(m.instances[idx : idx+1]),
			})
		}
	}
	m.allDirty = false
	clear(m.dirty)
	return dst
}

func (m *mesh) MarkUploaded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.allDirty = false
	clear(m.dirty)
}

func (m *mesh) Bounds() (mgl32.Vec3, float32) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.boundsDirty {
		var centre mgl32.Vec3
		for _, inst := range m.instances {
			centre = centre.Add(inst.Col(3).Vec3())
		}
		centre = centre.Mul(1 / float32(len(m.instances)))

		var spread float32
		for _, inst := range m.instances {
			spread = max(spread, inst.Col(3).Vec3().Sub(centre).Len())
		}
		m.boundsCenter = centre
		m.boundsRadius = spread + m.model.BoundingRadius()
		m.boundsDirty = false
	}
	return m.boundsCenter, m.boundsRadius
}
