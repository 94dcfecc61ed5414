package window

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

// DefaultTitle is the window title used when none is configured.
const DefaultTitle = "oxy-trackside"

// Window provides platform windowing and input event handling.
// Wraps platform-specific window implementations with a common interface.
//
// Resize notifications come from two sources: the window (client area in screen coordinates) and the
// framebuffer (drawable pixels). They differ on high-DPI displays, and a consumer that sizes a GPU
// surface should subscribe to both.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// OnResize subscribes to window size changes.
	//
	// Parameters:
	//   - callback: function receiving the new client area width and height
	//
	// Returns:
	//   - func(): unsubscribes the callback; safe to call more than once
	OnResize(callback func(width, height int)) func()

	// OnFramebufferResize subscribes to framebuffer size changes.
	//
	// Parameters:
	//   - callback: function receiving the new framebuffer width and height in pixels
	//
	// Returns:
	//   - func(): unsubscribes the callback; safe to call more than once
	OnFramebufferResize(callback func(width, height int)) func()

	// SetKeyDownCallback sets the callback for key press and repeat events.
	//
	// Parameters:
	//   - callback: function receiving the key code (see common.Key*)
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetKeyUpCallback sets the callback for key release events.
	//
	// Parameters:
	//   - callback: function receiving the key code
	SetKeyUpCallback(callback func(keyCode uint32))

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop on the calling goroutine.
	// Blocks until the window is closed. Calls the update callback each iteration.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and event callbacks.
type engineWindow struct {
	mu *sync.Mutex

	// title is the window title displayed in the title bar.
	title string

	// minWidth and minHeight bound the client area during resize.
	minWidth, minHeight int

	// width and height are the current framebuffer size in pixels.
	width, height int

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	// onUpdate is called each iteration of the message loop (if set).
	onUpdate func()

	// resizeSubs and framebufferSubs hold the resize subscribers keyed by subscription id.
	resizeSubs      map[uint64]func(width, height int)
	framebufferSubs map[uint64]func(width, height int)
	nextSubID       uint64

	// onKeyDown is called when a key is pressed or repeats.
	onKeyDown func(keyCode uint32)

	// onKeyUp is called when a key is released.
	onKeyUp func(keyCode uint32)
}

var _ Window = &engineWindow{}

// NewWindow creates and shows a new Window with the specified options.
// Applies default values first, then each option in order.
// Must be called from the main goroutine; the calling OS thread is locked.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the created window
//   - error: an error if the platform window could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := newEngineWindow(options...)
	if err := newPlatformWindow(w); err != nil {
		return nil, fmt.Errorf("failed to create platform window: %w", err)
	}
	return w, nil
}

// newEngineWindow builds the platform-independent window state.
func newEngineWindow(options ...WindowBuilderOption) *engineWindow {
	w := &engineWindow{
		mu:              &sync.Mutex{},
		minWidth:        320,
		minHeight:       200,
		width:           1280,
		height:          720,
		resizeSubs:      make(map[uint64]func(width, height int)),
		framebufferSubs: make(map[uint64]func(width, height int)),
	}
	for _, opt := range options {
		opt(w)
	}
	if w.title == "" {
		w.title = DefaultTitle
	}
	return w
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) OnResize(callback func(width, height int)) func() {
	return w.subscribe(w.resizeSubs, callback)
}

func (w *engineWindow) OnFramebufferResize(callback func(width, height int)) func() {
	return w.subscribe(w.framebufferSubs, callback)
}

// subscribe registers callback in subs and returns its idempotent unsubscribe function.
func (w *engineWindow) subscribe(subs map[uint64]func(width, height int), callback func(width, height int)) func() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.nextSubID++
	id := w.nextSubID
	subs[id] = callback

	var once sync.Once
	return func() {
		once.Do(func() {
			w.mu.Lock()
			defer w.mu.Unlock()
			delete(subs, id)
		})
	}
}

// notify calls every subscriber in subs. Subscribers are copied out first so a callback may unsubscribe.
func (w *engineWindow) notify(subs map[uint64]func(width, height int), width, height int) {
	w.mu.Lock()
	callbacks := make([]func(int, int), 0, len(subs))
	for _, cb := range subs {
		callbacks = append(callbacks, cb)
	}
	w.mu.Unlock()

	for _, cb := range callbacks {
		cb(width, height)
	}
}

// handleResize fans a window size change out to the resize subscribers.
func (w *engineWindow) handleResize(width, height int) {
	w.notify(w.resizeSubs, width, height)
}

// handleFramebufferResize records the new framebuffer size and fans it out to the framebuffer subscribers.
func (w *engineWindow) handleFramebufferResize(width, height int) {
	w.mu.Lock()
	w.width, w.height = width, height
	w.mu.Unlock()
	w.notify(w.framebufferSubs, width, height)
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetKeyUpCallback(callback func(keyCode uint32)) {
	w.onKeyUp = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width
}

func (w *engineWindow) Height() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.height
}
