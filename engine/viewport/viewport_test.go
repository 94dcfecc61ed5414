package viewport

import (
	"errors"
	"sync"
	"testing"
)

type fakeSurface struct {
	mu            sync.Mutex
	width, height int
	resize        map[int]func(int, int)
	framebuffer   map[int]func(int, int)
	next          int
}

func newFakeSurface(w, h int) *fakeSurface {
	return &fakeSurface{
		width:       w,
		height:      h,
		resize:      make(map[int]func(int, int)),
		framebuffer: make(map[int]func(int, int)),
	}
}

func (s *fakeSurface) Width() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width
}

func (s *fakeSurface) Height() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.height
}

func (s *fakeSurface) subscribe(subs map[int]func(int, int), cb func(int, int)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	id := s.next
	subs[id] = cb
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(subs, id)
	}
}

func (s *fakeSurface) OnResize(cb func(int, int)) func() {
	return s.subscribe(s.resize, cb)
}

func (s *fakeSurface) OnFramebufferResize(cb func(int, int)) func() {
	return s.subscribe(s.framebuffer, cb)
}

// resizeWindow changes the pixel size and fires only the window-level notification,
// reporting screen coordinates at half the pixel size.
func (s *fakeSurface) resizeWindow(w, h int) {
	s.mu.Lock()
	s.width, s.height = w, h
	subs := make([]func(int, int), 0, len(s.resize))
	for _, cb := range s.resize {
		subs = append(subs, cb)
	}
	s.mu.Unlock()
	for _, cb := range subs {
		cb(w/2, h/2)
	}
}

// resizeFramebuffer changes the pixel size and fires only the framebuffer notification.
func (s *fakeSurface) resizeFramebuffer(w, h int) {
	s.mu.Lock()
	s.width, s.height = w, h
	subs := make([]func(int, int), 0, len(s.framebuffer))
	for _, cb := range s.framebuffer {
		subs = append(subs, cb)
	}
	s.mu.Unlock()
	for _, cb := range subs {
		cb(w, h)
	}
}

func (s *fakeSurface) subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.resize) + len(s.framebuffer)
}

type fakeProjection struct {
	aspects []float32
}

func (p *fakeProjection) SetAspect(a float32) {
	p.aspects = append(p.aspects, a)
}

type fakeTarget struct {
	sizes [][2]int
}

func (t *fakeTarget) Resize(w, h int) {
	t.sizes = append(t.sizes, [2]int{w, h})
}

func TestNewManagerRequiresSurface(t *testing.T) {
	if _, err := NewManager(nil, nil, nil); !errors.Is(err, ErrNoSurface) {
		t.Fatalf("err = %v, want ErrNoSurface", err)
	}
}

func TestFirstApplyUsesInitialSize(t *testing.T) {
	s := newFakeSurface(800, 400)
	p, tg := &fakeProjection{}, &fakeTarget{}
	m, err := NewManager(s, p, tg)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if !m.Pending() || !m.Apply() {
		t.Fatal("initial size should be pending and applied")
	}
	if len(p.aspects) != 1 || p.aspects[0] != 2 {
		t.Fatalf("aspects = %v", p.aspects)
	}
	if w, h := m.Size(); w != 800 || h != 400 || tg.sizes[0] != [2]int{800, 400} {
		t.Fatalf("size = %dx%d, target = %v", w, h, tg.sizes)
	}
	if m.Apply() {
		t.Fatal("second Apply without a change should be a no-op")
	}
}

func TestBothResizeSourcesApplyPixelSize(t *testing.T) {
	s := newFakeSurface(800, 600)
	p, tg := &fakeProjection{}, &fakeTarget{}
	m, _ := NewManager(s, p, tg)
	m.Apply()

	s.resizeWindow(1024, 512)
	if !m.Apply() {
		t.Fatal("window resize not applied")
	}
	if got := tg.sizes[len(tg.sizes)-1]; got != [2]int{1024, 512} {
		t.Fatalf("window resize applied %v, want pixel size", got)
	}

	s.resizeFramebuffer(300, 300)
	if !m.Apply() {
		t.Fatal("framebuffer resize not applied")
	}
	if p.aspects[len(p.aspects)-1] != 1 {
		t.Fatalf("aspect = %f, want 1", p.aspects[len(p.aspects)-1])
	}
}

func TestLatestSizeWinsAndDuplicatesSkipped(t *testing.T) {
	s := newFakeSurface(800, 600)
	tg := &fakeTarget{}
	m, _ := NewManager(s, nil, tg)
	m.Apply()

	s.resizeFramebuffer(100, 100)
	s.resizeFramebuffer(640, 480)
	s.resizeWindow(640, 480)
	m.Apply()
	if len(tg.sizes) != 2 || tg.sizes[1] != [2]int{640, 480} {
		t.Fatalf("sizes = %v", tg.sizes)
	}

	s.resizeFramebuffer(640, 480)
	if m.Apply() {
		t.Fatal("unchanged size should not be reapplied")
	}
}

func TestZeroAreaIgnored(t *testing.T) {
	s := newFakeSurface(800, 600)
	p, tg := &fakeProjection{}, &fakeTarget{}
	m, _ := NewManager(s, p, tg)
	m.Apply()

	s.resizeFramebuffer(0, 0)
	if m.Apply() {
		t.Fatal("zero-area size applied")
	}
	if w, h := m.Size(); w != 800 || h != 600 {
		t.Fatalf("size changed to %dx%d", w, h)
	}

	s.resizeFramebuffer(800, 600)
	if m.Apply() {
		t.Fatal("restoring the applied size should be a no-op")
	}
	if len(p.aspects) != 1 || len(tg.sizes) != 1 {
		t.Fatalf("aspects = %v sizes = %v", p.aspects, tg.sizes)
	}
}

func TestDisposeUnsubscribes(t *testing.T) {
	s := newFakeSurface(800, 600)
	tg := &fakeTarget{}
	m, _ := NewManager(s, nil, tg)
	if s.subscribers() != 2 {
		t.Fatalf("subscribers = %d, want 2", s.subscribers())
	}

	m.Dispose()
	m.Dispose()
	if !m.Disposed() || s.subscribers() != 0 {
		t.Fatal("dispose left subscriptions behind")
	}
	s.resizeFramebuffer(10, 10)
	if m.Apply() || len(tg.sizes) != 0 {
		t.Fatal("disposed manager applied a size")
	}
}

func TestImmediateMode(t *testing.T) {
	s := newFakeSurface(800, 600)
	tg := &fakeTarget{}
	NewManager(s, nil, tg, WithImmediate(true))

	s.resizeFramebuffer(320, 200)
	if len(tg.sizes) != 1 || tg.sizes[0] != [2]int{320, 200} {
		t.Fatalf("immediate resize = %v", tg.sizes)
	}
}
