package pipeline

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

func TestNewPipelineDefaults(t *testing.T) {
	p := NewPipeline("track", "// wgsl")
	if p.PipelineKey() != "track" || p.Source() != "// wgsl" {
		t.Fatalf("key/source = %q/%q", p.PipelineKey(), p.Source())
	}
	if p.VertexEntryPoint() != DefaultVertexEntryPoint || p.FragmentEntryPoint() != DefaultFragmentEntryPoint {
		t.Fatalf("entry points = %q/%q", p.VertexEntryPoint(), p.FragmentEntryPoint())
	}
	if !p.DepthWriteEnabled() || p.DepthCompare() != wgpu.CompareFunctionLess {
		t.Fatal("depth state should default to write + less")
	}
	if p.CullMode() != wgpu.CullModeNone || p.Topology() != wgpu.PrimitiveTopologyTriangleList {
		t.Fatal("unexpected primitive defaults")
	}
	if p.RenderPipeline() != nil {
		t.Fatal("render pipeline should be nil before registration")
	}
	p.Release()
	p.Release()
}

func TestPipelineOptions(t *testing.T) {
	p := NewPipeline("track", "",
		WithEntryPoints("vert", ""),
		WithCullMode(wgpu.CullModeBack),
		WithDepthWriteEnabled(false),
		WithFrontFace(wgpu.FrontFaceCW),
	)
	if p.VertexEntryPoint() != "vert" || p.FragmentEntryPoint() != DefaultFragmentEntryPoint {
		t.Fatalf("entry points = %q/%q", p.VertexEntryPoint(), p.FragmentEntryPoint())
	}
	if p.CullMode() != wgpu.CullModeBack || p.DepthWriteEnabled() || p.FrontFace() != wgpu.FrontFaceCW {
		t.Fatal("options were not applied")
	}
}
