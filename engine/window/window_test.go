package window

import "testing"

func TestNewEngineWindowDefaults(t *testing.T) {
	w := newEngineWindow()
	if w.title != DefaultTitle {
		t.Fatalf("title = %q, want %q", w.title, DefaultTitle)
	}
	if w.Width() != 1280 || w.Height() != 720 {
		t.Fatalf("size = %dx%d", w.Width(), w.Height())
	}

	w = newEngineWindow(WithTitle("pit lane"), WithWidth(640), WithHeight(480), WithMinSize(100, 50))
	if w.title != "pit lane" || w.Width() != 640 || w.Height() != 480 || w.minWidth != 100 || w.minHeight != 50 {
		t.Fatalf("options not applied: %+v", w)
	}

	if w = newEngineWindow(WithTitle("")); w.title != DefaultTitle {
		t.Fatalf("empty title = %q, want %q", w.title, DefaultTitle)
	}
}

func TestResizeSubscriptions(t *testing.T) {
	w := newEngineWindow()

	var windowCalls, fbCalls int
	var lastW, lastH int
	unsubWindow := w.OnResize(func(width, height int) {
		windowCalls++
	})
	unsubFB := w.OnFramebufferResize(func(width, height int) {
		fbCalls++
		lastW, lastH = width, height
	})

	w.handleResize(800, 600)
	w.handleFramebufferResize(1600, 1200)
	if windowCalls != 1 || fbCalls != 1 {
		t.Fatalf("calls = %d/%d, want 1/1", windowCalls, fbCalls)
	}
	if lastW != 1600 || lastH != 1200 || w.Width() != 1600 || w.Height() != 1200 {
		t.Fatalf("framebuffer size not tracked: %dx%d", w.Width(), w.Height())
	}

	unsubWindow()
	unsubWindow()
	unsubFB()
	w.handleResize(10, 10)
	w.handleFramebufferResize(20, 20)
	if windowCalls != 1 || fbCalls != 1 {
		t.Fatalf("callbacks fired after unsubscribe: %d/%d", windowCalls, fbCalls)
	}
	if len(w.resizeSubs) != 0 || len(w.framebufferSubs) != 0 {
		t.Fatal("subscriptions leaked")
	}
}

func TestCallbackMayUnsubscribeItself(t *testing.T) {
	w := newEngineWindow()
	calls := 0
	var unsub func()
	unsub = w.OnResize(func(int, int) {
		calls++
		unsub()
	})
	w.handleResize(1, 1)
	w.handleResize(2, 2)
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestUninitializedPlatformWindow(t *testing.T) {
	w := newEngineWindow()
	if w.IsRunning() {
		t.Fatal("window without a platform handle should not be running")
	}
	if w.SurfaceDescriptor() != nil {
		t.Fatal("surface descriptor should be nil before creation")
	}
	if err := w.Close(); err == nil {
		t.Fatal("Close without a platform handle should fail")
	}
}
