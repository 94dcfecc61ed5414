package common

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// MatricesToBytes serializes column-major matrices into a little-endian byte buffer,
// 64 bytes per matrix, matching a WGSL array<mat4x4<f32>>.
//
// Parameters:
//   - mats: the matrices to serialize
//
// Returns:
//   - []byte: the serialized buffer (len(mats) * 64 bytes)
func MatricesToBytes(mats []mgl32.Mat4) []byte {
	buf := make([]byte, len(mats)*64)
	for i, m := range mats {
		for j, v := range m {
			binary.LittleEndian.PutUint32(buf[i*64+j*4:], math.Float32bits(v))
		}
	}
	return buf
}

// Perspective creates a perspective projection matrix for WebGPU clip space, where depth maps to [0, 1].
// mgl32.Perspective targets the OpenGL [-1, 1] depth range and would clip the near half of the scene.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the column-major projection matrix
func Perspective(fovY, aspect, near, far float32) mgl32.Mat4 {
	f := 1.0 / float32(math.Tan(float64(fovY)/2.0))

	var out mgl32.Mat4
	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	return out
}

// Vec3f narrows a double-precision vector to single precision for GPU-facing math.
//
// Parameters:
//   - v: the vector to convert
//
// Returns:
//   - mgl32.Vec3: the converted vector
func Vec3f(v mgl64.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(v[0]), float32(v[1]), float32(v[2])}
}

// Lerp3 moves from toward to by factor t, component-wise.
//
// Parameters:
//   - from: the starting vector
//   - to: the goal vector
//   - t: the blend factor (0 = from, 1 = to)
//
// Returns:
//   - mgl32.Vec3: from + (to - from) * t
func Lerp3(from, to mgl32.Vec3, t float32) mgl32.Vec3 {
	return from.Add(to.Sub(from).Mul(t))
}

// ColorFromHex splits a 0xRRGGBB colour into normalized RGBA components with alpha 1.
//
// Parameters:
//   - hex: the packed colour
//
// Returns:
//   - [4]float32: red, green, blue and alpha in [0, 1]
func ColorFromHex(hex uint32) [4]float32 {
	return [4]float32{
		float32((hex>>16)&0xFF) / 255,
		float32((hex>>8)&0xFF) / 255,
		float32(hex&0xFF) / 255,
		1,
	}
}
