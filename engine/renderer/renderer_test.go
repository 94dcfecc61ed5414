package renderer

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/Carmen-Shannon/oxy-trackside/common"
	"github.com/cogentcore/webgpu/wgpu"
)

type sizedTarget struct{ w, h int }

func (t sizedTarget) SurfaceDescriptor() *wgpu.SurfaceDescriptor { return nil }
func (t sizedTarget) Width() int                                 { return t.w }
func (t sizedTarget) Height() int                                { return t.h }

func TestNewRendererRejectsMissingSurface(t *testing.T) {
	if _, err := NewRenderer(BackendTypeWGPU, nil); err == nil {
		t.Fatal("expected an error for a nil target")
	}
	for _, target := range []sizedTarget{{0, 600}, {800, 0}, {-1, -1}} {
		if _, err := NewRenderer(BackendTypeWGPU, target); err == nil {
			t.Fatalf("expected an error for a %dx%d target", target.w, target.h)
		}
	}
}

func TestNewRendererRejectsNilDescriptor(t *testing.T) {
	if _, err := NewRenderer(BackendTypeWGPU, sizedTarget{800, 600}); err == nil {
		t.Fatal("expected an error for a target without a surface descriptor")
	}
}

func TestTrackShaderBindings(t *testing.T) {
	for _, want := range []string{
		"fn vs_main", "fn fs_main",
		"@group(0) @binding(0) var<uniform> camera",
		"@group(1) @binding(0) var<uniform> material",
		"@group(2) @binding(0) var<storage, read> instances",
	} {
		if !strings.Contains(trackShaderSource, want) {
			t.Errorf("track shader is missing %q", want)
		}
	}
}

func TestDefaultClearColor(t *testing.T) {
	if DefaultClearColor != common.ColorFromHex(0x0a0a0a) {
		t.Fatalf("DefaultClearColor = %v", DefaultClearColor)
	}
}

func TestBuilderOptions(t *testing.T) {
	r := &renderer{}
	for _, opt := range []RendererBuilderOption{
		WithPresentMode(PresentModeUncapped),
		WithMSAA(MSAAOff),
		WithClearColor([4]float32{1, 0, 0, 1}),
		WithForceSoftwareRenderer(true),
	} {
		opt(r)
	}
	if *r.pendingPresentMode != PresentModeUncapped || *r.pendingMSAA != MSAAOff {
		t.Fatal("present mode / MSAA options not applied")
	}
	if *r.pendingClearColor != [4]float32{1, 0, 0, 1} || !r.forceFallbackAdapter {
		t.Fatal("clear colour / fallback options not applied")
	}
}

func TestUnconfiguredSurfaceHasNoFrame(t *testing.T) {
	b := &wgpuRendererBackendImpl{mu: &sync.Mutex{}}

	if err := b.BeginFrame(); !errors.Is(err, ErrNoFrame) {
		t.Fatalf("BeginFrame on an unconfigured surface = %v, want ErrNoFrame", err)
	}
	if err := b.DrawCall(nil, nil, 1, nil); !errors.Is(err, ErrNoFrame) {
		t.Fatalf("DrawCall outside a frame = %v, want ErrNoFrame", err)
	}
}
