package bind_group_provider

import "testing"

func TestReleaseIsIdempotent(t *testing.T) {
	p := NewBindGroupProvider("geometry_road", WithIndexCount(36))
	if p.Label() != "geometry_road" || p.IndexCount() != 36 {
		t.Fatalf("label=%q indexCount=%d", p.Label(), p.IndexCount())
	}
	if p.Released() {
		t.Fatal("new provider reports released")
	}

	p.Release()
	p.Release()

	if !p.Released() {
		t.Fatal("provider not marked released")
	}
	if p.IndexCount() != 0 || p.BindGroup() != nil || p.Buffer(0) != nil || p.VertexBuffer() != nil || p.IndexBuffer() != nil {
		t.Fatal("released provider still exposes resources")
	}
}

func TestBufferWriteValid(t *testing.T) {
	live := NewBindGroupProvider("instances_car")
	dead := NewBindGroupProvider("instances_old")
	dead.Release()

	cases := []struct {
		name  string
		write BufferWrite
		want  bool
	}{
		{"live", BufferWrite{Provider: live, Data: []byte{1}}, true},
		{"nil provider", BufferWrite{Data: []byte{1}}, false},
		{"released", BufferWrite{Provider: dead, Data: []byte{1}}, false},
		{"empty", BufferWrite{Provider: live}, false},
	}
	for _, c := range cases {
		if got := c.write.Valid(); got != c.want {
			t.Errorf("%s: Valid() = %v, want %v", c.name, got, c.want)
		}
	}
}
