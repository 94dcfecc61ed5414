package vignette

import (
	"errors"
	"fmt"
	"log"
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-trackside/common"
	"github.com/Carmen-Shannon/oxy-trackside/engine"
	"github.com/Carmen-Shannon/oxy-trackside/engine/camera"
	"github.com/Carmen-Shannon/oxy-trackside/engine/game_object"
	"github.com/Carmen-Shannon/oxy-trackside/engine/progress"
	"github.com/Carmen-Shannon/oxy-trackside/engine/renderer"
	"github.com/Carmen-Shannon/oxy-trackside/engine/scene"
	"github.com/Carmen-Shannon/oxy-trackside/engine/track"
	"github.com/Carmen-Shannon/oxy-trackside/engine/viewport"
)

const (
	// DefaultName is the scene name of a vignette.
	DefaultName = "trackside"

	// DefaultLookAhead is how far ahead of the car, in track fraction, its heading is sampled.
	DefaultLookAhead = 0.005

	// DefaultSafeLimit is the largest track fraction the car is sampled at.
	DefaultSafeLimit = 0.99
)

var (
	// ErrNoSurface is returned by New when the display surface is missing or has zero area.
	ErrNoSurface = errors.New("vignette: no usable display surface")

	// ErrNoRenderer is returned by New when no renderer is supplied.
	ErrNoRenderer = errors.New("vignette: no renderer")
)

// Renderer is what a vignette draws through. renderer.Renderer satisfies it.
type Renderer interface {
	scene.Renderer
	viewport.Target
	Release()
}

var _ Renderer = renderer.Renderer(nil)

type vignette struct {
	mu *sync.Mutex

	name      string
	lookAhead float64
	safeLimit float64

	layout   *trackLayout
	progress progress.Controller
	car      game_object.GameObject
	follow   camera.FollowController
	cam      camera.Camera
	scene    scene.Scene
	viewport viewport.Manager
	renderer Renderer
	engine   engine.Engine

	frames   uint64
	lastErr  string
	disposed bool

	disposeOnce sync.Once
}

// Vignette is the trackside animation: a generated track, a car that drives to a target fraction of
// it, and a camera that follows the car from above. Frames are driven by an engine loop; every
// frame applies pending viewport changes, advances progress, repositions the car and the camera,
// and renders the scene.
//
// Thread-safe: SetTarget may be called from any goroutine while frames run.
type Vignette interface {
	// SetTarget points the car at a navigation position and replays its travel from the start.
	//
	// Parameters:
	//   - index: the zero-based navigation position
	//   - total: the number of navigation positions
	//
	// Returns:
	//   - float64: the new target progress in [0, max travel]
	SetTarget(index, total int) float64

	// Frame runs one frame. It is a no-op after Dispose.
	//
	// Returns:
	//   - error: the scene render error, if any
	Frame() error

	// Start launches the engine loop that calls Frame at the tick rate.
	Start()

	// Engine returns the engine driving the vignette.
	//
	// Returns:
	//   - engine.Engine: the frame scheduler
	Engine() engine.Engine

	// Track returns the centre line the car follows.
	//
	// Returns:
	//   - *track.Curve: the track curve
	Track() *track.Curve

	// Progress returns the car's progress controller.
	//
	// Returns:
	//   - progress.Controller: the controller
	Progress() progress.Controller

	// Car returns the tracked object.
	//
	// Returns:
	//   - game_object.GameObject: the car
	Car() game_object.GameObject

	// Camera returns the following camera.
	//
	// Returns:
	//   - camera.Camera: the camera
	Camera() camera.Camera

	// Scene returns the resource ownership tree.
	//
	// Returns:
	//   - scene.Scene: the scene
	Scene() scene.Scene

	// Frames returns the number of frames run.
	//
	// Returns:
	//   - uint64: completed frame count
	Frames() uint64

	// Dispose stops the loop, waits for the frame in flight, unsubscribes from resize notifications
	// and releases the scene and the renderer. Safe to call more than once, and immediately after New.
	// Must not be called from inside a frame.
	Dispose()

	// Disposed reports whether Dispose has completed.
	//
	// Returns:
	//   - bool: true once disposed
	Disposed() bool
}

var _ Vignette = &vignette{}

// New builds the track, the car and the scene, uploads every GPU resource through r, and wires
// the viewport to surface. The loop is not started; call Start.
//
// On success the vignette owns r and releases it in Dispose. On failure r is left to the caller.
//
// Parameters:
//   - surface: the display surface to draw into and observe for resizes
//   - r: the renderer to draw through
//   - options: functional options to configure the vignette
//
// Returns:
//   - Vignette: the ready vignette
//   - error: ErrNoSurface, ErrNoRenderer, or a wrapped build or upload error
func New(surface viewport.Surface, r Renderer, options ...VignetteBuilderOption) (Vignette, error) {
	if surface == nil || surface.Width() <= 0 || surface.Height() <= 0 {
		return nil, ErrNoSurface
	}
	if r == nil {
		return nil, ErrNoRenderer
	}

	cfg := defaultConfig()
	for _, opt := range options {
		opt(cfg)
	}

	layout, err := buildLayout(cfg)
	if err != nil {
		return nil, fmt.Errorf("vignette: %w", err)
	}

	follow := camera.NewFollowController(cfg.followOptions...)
	cam := camera.NewCamera(
		camera.WithController(follow),
		camera.WithAspect(float32(surface.Width())/float32(surface.Height())),
	)

	carParts := carMeshes()
	meshes := append(layout.meshes(cfg.segments), carParts...)
	scn := scene.NewScene(cfg.name, cam, scene.WithMeshes(meshes...), scene.WithFrustumCulling(true))

	car := game_object.NewGameObject(game_object.WithInstance(instanceFanout(carParts), 0))

	if err := scn.Init(r); err != nil {
		scn.Release()
		return nil, fmt.Errorf("vignette: %w", err)
	}

	vp, err := viewport.NewManager(surface, cam, r)
	if err != nil {
		scn.Release()
		return nil, fmt.Errorf("vignette: %w", err)
	}

	v := &vignette{
		mu:        &sync.Mutex{},
		name:      cfg.name,
		lookAhead: cfg.lookAhead,
		safeLimit: cfg.safeLimit,
		layout:    layout,
		progress:  progress.NewController(cfg.progressOptions...),
		car:       car,
		follow:    follow,
		cam:       cam,
		scene:     scn,
		viewport:  vp,
		renderer:  r,
		engine:    cfg.engine,
	}
	if v.engine == nil {
		v.engine = engine.NewEngine()
	}
	v.engine.SetFrameCallback(func(float32) {
		v.report(v.Frame())
	})

	log.Printf("[vignette] %q ready: track %.1f long, %d meshes", v.name, layout.centre.Length(), len(meshes))
	return v, nil
}

func (v *vignette) SetTarget(index, total int) float64 {
	return v.progress.SetTarget(index, total)
}

func (v *vignette) Frame() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.disposed {
		return nil
	}

	v.viewport.Apply()

	u := math.Max(0, math.Min(v.safeLimit, v.progress.Advance()))
	here := common.Vec3f(v.layout.centre.PointAt(u))
	ahead := common.Vec3f(v.layout.centre.PointAt(math.Min(u+v.lookAhead, 1)))

	v.car.SetPosition(here)
	v.car.LookAt(ahead)
	v.car.Flush()

	v.follow.Follow(here, ahead.Sub(here))
	v.cam.Update()

	v.frames++
	return v.scene.Render()
}

// report logs a frame error once per distinct message so a persistent failure does not flood the log.
func (v *vignette) report(err error) {
	if err == nil {
		v.lastErr = ""
		return
	}
	if msg := err.Error(); msg != v.lastErr {
		v.lastErr = msg
		if errors.Is(err, renderer.ErrNoFrame) {
			log.Printf("[vignette] %q skipped frame: %v", v.name, err)
			return
		}
		log.Printf("[vignette] %q frame failed: %v", v.name, err)
	}
}

func (v *vignette) Start() {
	v.engine.Start()
}

func (v *vignette) Engine() engine.Engine {
	return v.engine
}

func (v *vignette) Track() *track.Curve {
	return v.layout.centre
}

func (v *vignette) Progress() progress.Controller {
	return v.progress
}

func (v *vignette) Car() game_object.GameObject {
	return v.car
}

func (v *vignette) Camera() camera.Camera {
	return v.cam
}

func (v *vignette) Scene() scene.Scene {
	return v.scene
}

func (v *vignette) Frames() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.frames
}

func (v *vignette) Dispose() {
	v.disposeOnce.Do(func() {
		v.engine.Quit()
		v.engine.Wait()

		v.mu.Lock()
		defer v.mu.Unlock()
		v.disposed = true
		v.viewport.Dispose()
		v.scene.Release()
		v.renderer.Release()
		log.Printf("[vignette] %q disposed after %d frames", v.name, v.frames)
	})
}

func (v *vignette) Disposed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.disposed
}
