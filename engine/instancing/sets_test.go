package instancing

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestBuildSetsMatchesSequentialBuild(t *testing.T) {
	left := lineSampler{dir: mgl64.Vec3{0, 0, -1}, length: 50}
	right := lineSampler{dir: mgl64.Vec3{1, 0, 0}, length: 20}
	specs := []SetSpec{
		{Name: LaneMarkers, Curve: left, Count: 100, Options: []BatchBuilderOption{WithHeight(0.42)}},
		{Name: PostsLeft, Curve: left, Count: 200, Options: []BatchBuilderOption{WithHeight(0.75)}},
		{Name: PostsRight, Curve: right, Count: 200, Options: []BatchBuilderOption{WithHeight(0.75)}},
	}

	sets, err := BuildSets(2, specs...)
	if err != nil {
		t.Fatalf("BuildSets: %v", err)
	}
	if len(sets) != len(specs) {
		t.Fatalf("got %d sets, want %d", len(sets), len(specs))
	}
	for _, s := range specs {
		got, ok := sets[s.Name]
		if !ok {
			t.Fatalf("missing set %q", s.Name)
		}
		want := Build(s.Name, s.Curve, s.Count, s.Options...)
		if got.Len() != want.Len() {
			t.Fatalf("set %q has %d instances, want %d", s.Name, got.Len(), want.Len())
		}
		for i := range want.Len() {
			if got.At(i) != want.At(i) {
				t.Fatalf("set %q instance %d = %+v, want %+v", s.Name, i, got.At(i), want.At(i))
			}
		}
	}
}

func TestBuildSetsRejectsInvalidSpecs(t *testing.T) {
	line := lineSampler{dir: mgl64.Vec3{1, 0, 0}, length: 1}
	tests := []struct {
		name  string
		specs []SetSpec
	}{
		{"nil curve", []SetSpec{{Name: "a", Count: 1}}},
		{"duplicate name", []SetSpec{{Name: "a", Curve: line, Count: 1}, {Name: "a", Curve: line, Count: 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := BuildSets(1, tt.specs...); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestBuildSetsNoSpecs(t *testing.T) {
	sets, err := BuildSets(0)
	if err != nil {
		t.Fatalf("BuildSets: %v", err)
	}
	if len(sets) != 0 {
		t.Fatalf("got %d sets, want 0", len(sets))
	}
}
