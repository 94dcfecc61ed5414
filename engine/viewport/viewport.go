package viewport

import (
	"errors"
	"sync"
)

// ErrNoSurface is returned by NewManager when no surface is supplied.
var ErrNoSurface = errors.New("viewport: nil surface")

// Surface is a resizable display surface with readable pixel dimensions.
// window.Window satisfies it.
type Surface interface {
	Width() int
	Height() int
	OnResize(callback func(width, height int)) func()
	OnFramebufferResize(callback func(width, height int)) func()
}

// Projection receives the aspect ratio of the viewport. camera.Camera satisfies it.
type Projection interface {
	SetAspect(aspect float32)
}

// Target is an output surface resized to the viewport's pixel dimensions. renderer.Renderer satisfies it.
type Target interface {
	Resize(width, height int)
}

type manager struct {
	mu *sync.Mutex

	surface    Surface
	projection Projection
	target     Target

	pendingWidth, pendingHeight int
	dirty                       bool

	width, height int

	immediate bool
	disposed  bool

	unsubscribe []func()
}

// Manager keeps a camera projection and an output surface sized to a display surface.
//
// Size changes are observed from two sources: window-level resize notifications and framebuffer
// resize notifications. Either records the surface's latest pixel size; Apply pushes it to the
// projection and target. Zero-area sizes, such as a minimised window, are recorded but never applied.
type Manager interface {
	// Apply pushes the most recent pending size to the projection and the target.
	// Called once at the start of every frame.
	//
	// Returns:
	//   - bool: true if a new size was applied
	Apply() bool

	// Size returns the last applied size.
	//
	// Returns:
	//   - int: width in pixels
	//   - int: height in pixels
	Size() (int, int)

	// Pending reports whether a size change is waiting for Apply.
	//
	// Returns:
	//   - bool: true if a new size has been recorded since the last Apply
	Pending() bool

	// Dispose unsubscribes from both resize sources. Safe to call more than once.
	Dispose()

	// Disposed reports whether Dispose has been called.
	//
	// Returns:
	//   - bool: true once disposed
	Disposed() bool
}

var _ Manager = &manager{}

// NewManager subscribes to the surface's resize notifications and records its current size as pending,
// so the first Apply sizes the projection and target.
//
// Parameters:
//   - surface: the display surface to observe
//   - projection: the camera whose aspect ratio tracks the surface (may be nil)
//   - target: the output surface resized to the surface's pixel size (may be nil)
//   - options: functional options to configure the manager
//
// Returns:
//   - Manager: the subscribed manager
//   - error: ErrNoSurface if surface is nil
func NewManager(surface Surface, projection Projection, target Target, options ...ManagerBuilderOption) (Manager, error) {
	if surface == nil {
		return nil, ErrNoSurface
	}
	m := &manager{
		mu:            &sync.Mutex{},
		surface:       surface,
		projection:    projection,
		target:        target,
		pendingWidth:  surface.Width(),
		pendingHeight: surface.Height(),
		dirty:         true,
	}
	for _, opt := range options {
		opt(m)
	}

	m.unsubscribe = []func(){
		surface.OnResize(func(int, int) {
			// The window size is in screen coordinates; re-read the pixel size.
			m.record(surface.Width(), surface.Height())
		}),
		surface.OnFramebufferResize(m.record),
	}
	return m, nil
}

// record stores a pending size and applies it straight away in immediate mode.
func (m *manager) record(width, height int) {
	m.mu.Lock()
	if m.disposed {
		m.mu.Unlock()
		return
	}
	m.pendingWidth, m.pendingHeight = width, height
	m.dirty = true
	immediate := m.immediate
	m.mu.Unlock()

	if immediate {
		m.Apply()
	}
}

func (m *manager) Apply() bool {
	m.mu.Lock()
	if m.disposed || !m.dirty {
		m.mu.Unlock()
		return false
	}
	m.dirty = false
	w, h := m.pendingWidth, m.pendingHeight
	if w <= 0 || h <= 0 || (w == m.width && h == m.height) {
		m.mu.Unlock()
		return false
	}
	m.width, m.height = w, h
	m.mu.Unlock()

	if m.projection != nil {
		m.projection.SetAspect(float32(w) / float32(h))
	}
	if m.target != nil {
		m.target.Resize(w, h)
	}
	return true
}

func (m *manager) Size() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.width, m.height
}

func (m *manager) Pending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dirty
}

func (m *manager) Dispose() {
	m.mu.Lock()
	if m.disposed {
		m.mu.Unlock()
		return
	}
	m.disposed = true
	unsubscribe := m.unsubscribe
	m.unsubscribe = nil
	m.mu.Unlock()

	for _, fn := range unsubscribe {
		fn()
	}
}

func (m *manager) Disposed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.disposed
}
