package scene

import (
	"errors"
	"sync"
	"testing"

	"github.com/Carmen-Shannon/oxy-trackside/engine/camera"
	"github.com/Carmen-Shannon/oxy-trackside/engine/model"
	"github.com/Carmen-Shannon/oxy-trackside/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-trackside/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
)

type drawRecord struct {
	mesh      string
	instances uint32
	groups    []string
}

type recordingRenderer struct {
	mu sync.Mutex

	meshInits     map[string]int
	materialInits map[string]int
	instanceInits map[string]int
	cameraInits   int

	writes  []bind_group_provider.BufferWrite
	draws   []drawRecord
	frames  int
	ended   int
	present int

	beginErr error
	drawErr  error
}

func newRecordingRenderer() *recordingRenderer {
	return &recordingRenderer{
		meshInits:     make(map[string]int),
		materialInits: make(map[string]int),
		instanceInits: make(map[string]int),
	}
}

func (r *recordingRenderer) InitMesh(m model.Model) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.meshInits[m.Name()]++
	return nil
}

func (r *recordingRenderer) InitMaterial(m material.Material) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.materialInits[m.Name()]++
	return nil
}

func (r *recordingRenderer) InitCamera(bind_group_provider.BindGroupProvider, []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cameraInits++
	return nil
}

func (r *recordingRenderer) InitInstances(p bind_group_provider.BindGroupProvider, capacity int, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(data) != capacity*instanceStride {
		return errors.New("instance data does not match capacity")
	}
	r.instanceInits[p.Label()]++
	return nil
}

func (r *recordingRenderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes = append(r.writes, writes...)
}

func (r *recordingRenderer) BeginFrame() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.beginErr != nil {
		return r.beginErr
	}
	r.frames++
	return nil
}

func (r *recordingRenderer) DrawCall(mesh bind_group_provider.BindGroupProvider, count uint32, groups []bind_group_provider.BindGroupProvider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec := drawRecord{mesh: mesh.Label(), instances: count}
	for _, g := range groups {
		rec.groups = append(rec.groups, g.Label())
	}
	r.draws = append(r.draws, rec)
	return r.drawErr
}

func (r *recordingRenderer) EndFrame() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ended++
}

func (r *recordingRenderer) Present() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.present++
}

func testScene(t *testing.T) (Scene, Mesh, Mesh, Mesh) {
	t.Helper()
	post := model.NewModel(model.WithName("post"), model.WithGeometry(model.Box(0.3, 1.5, 0.3)))
	white := material.NewMaterial(material.WithName("post_white"), material.WithHexColor(0xffffff))

	left := NewMesh("posts_left", post, white, WithInstances([]mgl32.Mat4{
		mgl32.Translate3D(1, 0, 0), mgl32.Translate3D(2, 0, 0), mgl32.Translate3D(3, 0, 0),
	}))
	right := NewMesh("posts_right", post, white, WithInstances([]mgl32.Mat4{
		mgl32.Translate3D(-1, 0, 0), mgl32.Translate3D(-2, 0, 0),
	}))
	car := NewMesh("car_body",
		model.NewModel(model.WithName("car_body"), model.WithGeometry(model.Box(2, 0.5, 4))),
		material.NewMaterial(material.WithName("car_red"), material.WithHexColor(0xff0000)),
	)

	s := NewScene("vignette", camera.NewCamera(), WithMeshes(left, right, car))
	return s, left, right, car
}

func TestInitUploadsSharedResourcesOnce(t *testing.T) {
	s, _, _, _ := testScene(t)
	r := newRecordingRenderer()
	if err := s.Init(r); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if r.cameraInits != 1 {
		t.Fatalf("camera initialized %d times", r.cameraInits)
	}
	if r.meshInits["post"] != 1 || r.meshInits["car_body"] != 1 {
		t.Fatalf("mesh inits = %v", r.meshInits)
	}
	if r.materialInits["post_white"] != 1 || r.materialInits["car_red"] != 1 {
		t.Fatalf("material inits = %v", r.materialInits)
	}
	if len(r.instanceInits) != 3 {
		t.Fatalf("instance inits = %v", r.instanceInits)
	}
}

func TestRenderDrawsVisibleMeshesInOrder(t *testing.T) {
	s, _, right, _ := testScene(t)
	r := newRecordingRenderer()
	if err := s.Init(r); err != nil {
		t.Fatalf("Init: %v", err)
	}
	right.SetVisible(false)

	if err := s.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if r.frames != 1 || r.ended != 1 || r.present != 1 {
		t.Fatalf("frame lifecycle = %d/%d/%d", r.frames, r.ended, r.present)
	}
	if len(r.draws) != 2 {
		t.Fatalf("got %d draws, want 2", len(r.draws))
	}
	if r.draws[0].mesh != "geometry_post" || r.draws[0].instances != 3 {
		t.Fatalf("first draw = %+v", r.draws[0])
	}
	want := []string{"camera_vignette", "material_car_red", "instances_car_body"}
	for i, g := range r.draws[1].groups {
		if g != want[i] {
			t.Fatalf("car bind groups = %v, want %v", r.draws[1].groups, want)
		}
	}
}

func TestRenderUploadsOnlyChangedInstances(t *testing.T) {
	s, left, _, _ := testScene(t)
	r := newRecordingRenderer()
	if err := s.Init(r); err != nil {
		t.Fatalf("Init: %v", err)
	}

	if err := s.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(r.writes) != 1 || r.writes[0].Provider.Label() != "camera_vignette" {
		t.Fatalf("first frame writes = %d, want camera only", len(r.writes))
	}

	r.writes = nil
	left.SetInstance(2, mgl32.Translate3D(9, 0, 0))
	if err := s.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(r.writes) != 2 {
		t.Fatalf("got %d writes, want camera + one instance", len(r.writes))
	}
	w := r.writes[1]
	if w.Provider != left.InstanceProvider() || w.Offset != 2*instanceStride || len(w.Data) != instanceStride {
		t.Fatalf("instance write = offset %d len %d", w.Offset, len(w.Data))
	}
}

func TestRenderErrors(t *testing.T) {
	s, _, _, _ := testScene(t)
	if err := s.Render(); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("Render before Init = %v", err)
	}

	r := newRecordingRenderer()
	if err := s.Init(r); err != nil {
		t.Fatalf("Init: %v", err)
	}
	r.beginErr = errors.New("surface lost")
	if err := s.Render(); err == nil || r.ended != 0 {
		t.Fatalf("Render with failed BeginFrame = %v (ended %d)", err, r.ended)
	}

	r.beginErr = nil
	r.drawErr = errors.New("bad mesh")
	if err := s.Render(); !errors.Is(err, r.drawErr) {
		t.Fatalf("Render with failing draw = %v", err)
	}
	if r.ended != 1 || r.present != 1 {
		t.Fatal("frame must still be ended and presented after a draw error")
	}
}

func TestReleaseWalksTreeOnce(t *testing.T) {
	s, left, right, car := testScene(t)
	r := newRecordingRenderer()
	if err := s.Init(r); err != nil {
		t.Fatalf("Init: %v", err)
	}

	s.Release()
	s.Release()

	if !s.Released() {
		t.Fatal("scene not marked released")
	}
	for _, m := range []Mesh{left, right, car} {
		if !m.InstanceProvider().Released() || !m.Model().MeshProvider().Released() || !m.Material().BindGroupProvider().Released() {
			t.Fatalf("mesh %q still holds GPU handles", m.Name())
		}
	}
	if err := s.Render(); !errors.Is(err, ErrReleased) {
		t.Fatalf("Render after Release = %v", err)
	}
	if err := s.Init(r); !errors.Is(err, ErrReleased) {
		t.Fatalf("Init after Release = %v", err)
	}
}

func TestReleaseBeforeInit(t *testing.T) {
	s, _, _, car := testScene(t)
	s.Release()
	if !car.InstanceProvider().Released() {
		t.Fatal("release before init should still mark handles released")
	}
}

func TestAddRejectsDuplicates(t *testing.T) {
	s, left, _, _ := testScene(t)
	if err := s.Add(left); !errors.Is(err, ErrDuplicateMesh) {
		t.Fatalf("Add duplicate = %v", err)
	}
	if s.Mesh("posts_left") != left || len(s.Meshes()) != 3 {
		t.Fatal("mesh lookup broken")
	}
}

func TestMeshInstanceBounds(t *testing.T) {
	_, _, _, car := testScene(t)
	if car.InstanceCount() != 1 || car.Instance(0) != mgl32.Ident4() {
		t.Fatal("default mesh should hold one identity instance")
	}
	car.SetInstance(5, mgl32.Translate3D(1, 1, 1))
	if car.Instance(5) != mgl32.Ident4() {
		t.Fatal("out of range slot should read as identity")
	}
	if writes := car.PendingWrites(nil); len(writes) != 1 || writes[0].Offset != 0 || len(writes[0].Data) != instanceStride {
		t.Fatalf("initial pending writes = %+v", writes)
	}
	if writes := car.PendingWrites(nil); len(writes) != 0 {
		t.Fatal("out of range SetInstance should not schedule a write")
	}
}

func TestFrustumCullingSkipsMeshesBehindCamera(t *testing.T) {
	box := model.NewModel(model.WithName("box"), model.WithGeometry(model.Box(1, 1, 1)))
	grey := material.NewMaterial(material.WithName("grey"))
	ahead := NewMesh("ahead", box, grey, WithInstances([]mgl32.Mat4{mgl32.Translate3D(0, 0, -20)}))
	behind := NewMesh("behind", box, grey, WithInstances([]mgl32.Mat4{mgl32.Translate3D(0, 0, 20)}))

	// Without a controller the camera sits at the origin looking down -Z.
	s := NewScene("culled", camera.NewCamera(), WithMeshes(ahead, behind), WithFrustumCulling(true))
	r := newRecordingRenderer()
	if err := s.Init(r); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := s.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(r.draws) != 1 || r.draws[0].mesh != "geometry_box" || r.draws[0].groups[2] != "instances_ahead" {
		t.Fatalf("draws = %+v", r.draws)
	}
	if s.Culled() != 1 {
		t.Fatalf("culled = %d, want 1", s.Culled())
	}

	// Moving the instance in front of the camera brings it back.
	behind.SetInstance(0, mgl32.Translate3D(1, 0, -30))
	r.draws = nil
	if err := s.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(r.draws) != 2 || s.Culled() != 0 {
		t.Fatalf("draws = %d culled = %d", len(r.draws), s.Culled())
	}
}

func TestMeshBoundsEncloseInstances(t *testing.T) {
	box := model.NewModel(model.WithName("box"), model.WithGeometry(model.Box(2, 2, 2)))
	m := NewMesh("pair", box, material.NewMaterial(), WithInstances([]mgl32.Mat4{
		mgl32.Translate3D(-4, 0, 0), mgl32.Translate3D(4, 0, 0),
	}))
	centre, radius := m.Bounds()
	if centre != (mgl32.Vec3{}) {
		t.Fatalf("centre = %v", centre)
	}
	if want := 4 + box.BoundingRadius(); radius != want {
		t.Fatalf("radius = %f, want %f", radius, want)
	}
}
