package engine

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-trackside/engine/profiler"
	"github.com/Carmen-Shannon/oxy-trackside/engine/window"
)

// DefaultTickRate is the frame rate of the loop when none is configured, roughly one display refresh.
const DefaultTickRate = 60.0

// engine implements the Engine interface.
// Drives a single fixed-rate frame goroutine and coordinates it with the window thread.
type engine struct {
	mu *sync.Mutex

	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running atomic.Bool
	started bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window window.Window

	profiler         *profiler.Profiler
	profilingEnabled atomic.Bool

	tickRate      time.Duration
	frameCallback func(deltaTime float32)
	frames        atomic.Uint64
}

// Engine is the frame scheduler of the vignette.
// It runs a frame callback at a fixed rate on its own goroutine until quit, and optionally pumps a
// window's message loop on the calling goroutine.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance, or nil when the engine runs headless
	Window() window.Window

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the frame rate in frames per second.
	// If the loop is running, the change takes effect on the next tick.
	//
	// Parameters:
	//   - fps: target frames per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetFrameCallback registers the function called once per frame.
	// May be called while the loop runs; the new callback takes effect on the next tick.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds since the previous frame
	SetFrameCallback(callback func(deltaTime float32))

	// Start launches the frame goroutine. Subsequent calls, and calls after Quit, are no-ops.
	Start()

	// Run starts the loop and pumps window messages on the calling goroutine until the window closes,
	// then quits and waits for the loop to stop. Without a window it blocks until Quit.
	Run()

	// Quit signals the frame goroutine to stop. The frame in flight, if any, completes; no further
	// frame starts. Safe to call multiple times and before Start.
	Quit()

	// Wait blocks until the frame goroutine has exited. Returns immediately if the loop never started.
	Wait()

	// Running reports whether the frame goroutine is active.
	//
	// Returns:
	//   - bool: true between Start and the loop exiting
	Running() bool

	// Frames returns the number of frame callbacks completed.
	//
	// Returns:
	//   - uint64: completed frame count
	Frames() uint64
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
// Options are applied directly to the engine struct via the option-builder pattern.
//
// Parameters:
//   - options: functional options for engine configuration (profiling, tick rate, window)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:              &sync.Mutex{},
		tickRateChannel: make(chan time.Duration, 1),
		quitChannel:     make(chan struct{}),
		profiler:        profiler.NewProfiler(),
		tickRate:        tickInterval(DefaultTickRate),
	}

	for _, opt := range options {
		opt(e)
	}

	return e
}

// tickInterval converts a frame rate to a ticker interval, treating non-positive rates as the default.
func tickInterval(fps float64) time.Duration {
	if fps <= 0 {
		fps = DefaultTickRate
	}
	return time.Duration(float64(time.Second) / fps)
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled.Store(true)
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled.Store(false)
}

func (e *engine) SetTickRate(fps float64) {
	newRate := tickInterval(fps)

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.started {
		e.tickRate = newRate
		return
	}

	// Non-blocking send; a pending update is replaced by the newest rate.
	select {
	case e.tickRateChannel <- newRate:
	default:
		select {
		case <-e.tickRateChannel:
		default:
		}
		e.tickRateChannel <- newRate
	}
}

func (e *engine) SetFrameCallback(callback func(deltaTime float32)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.frameCallback = callback
}

func (e *engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.started || e.quitting() {
		return
	}
	e.started = true
	e.running.Store(true)

	e.wg.Add(1)
	go e.handleFrames(e.tickRate)
}

func (e *engine) Run() {
	e.Start()
	if e.window == nil {
		e.Wait()
		return
	}
	e.window.ProcessMessages()
	e.Quit()
	e.Wait()
}

// Quit signals the frame goroutine to exit.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

func (e *engine) Wait() {
	e.wg.Wait()
}

func (e *engine) Running() bool {
	return e.running.Load()
}

func (e *engine) Frames() uint64 {
	return e.frames.Load()
}

func (e *engine) callback() func(deltaTime float32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frameCallback
}

// quitting reports whether Quit has been called.
func (e *engine) quitting() bool {
	select {
	case <-e.quitChannel:
		return true
	default:
		return false
	}
}

// handleFrames runs the fixed-rate frame loop in its own goroutine.
// Fires the frame callback on every tick and listens for rate changes via tickRateChannel.
// Cancellation is checked again after each tick fires, so no frame starts once Quit has been called.
// Recovers from panics to avoid crashing the process and signals quit on recovery.
func (e *engine) handleFrames(rate time.Duration) {
	defer e.wg.Done()
	defer e.running.Store(false)
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[engine] frame goroutine recovered from panic: %v", r)
			e.Quit()
		}
	}()

	ticker := time.NewTicker(rate)
	defer ticker.Stop()

	lastFrame := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
		case <-ticker.C:
			if e.quitting() {
				return
			}

			now := time.Now()
			dt := float32(now.Sub(lastFrame).Seconds())
			lastFrame = now

			if callback := e.callback(); callback != nil {
				callback(dt)
			}
			e.frames.Add(1)

			if e.profilingEnabled.Load() && e.profiler != nil {
				e.profiler.Tick(time.Since(now))
			}
		}
	}
}
