package material

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUMaterialParams is the GPU-aligned representation of the material uniform.
// Matches the WGSL MaterialParams struct in the renderer's track shader.
// Size: 32 bytes (std140 compatible, no padding required).
type GPUMaterialParams struct {
	BaseColor [4]float32 // offset  0: albedo RGBA (vec4<f32>)
	Emissive  [4]float32 // offset 16: emissive RGB + intensity in w (vec4<f32>)
}

// Size returns the size of the GPUMaterialParams struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (32)
func (g *GPUMaterialParams) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUMaterialParams struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUMaterialParams) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.BaseColor[i]))
		binary.LittleEndian.PutUint32(buf[16+i*4:], math.Float32bits(g.Emissive[i]))
	}
	return buf
}
