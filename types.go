// Copyright (c) 2025, The Helia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package helia

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// Types is the list of GPU data types used for vertex attributes,
// index buffers, textures, and depth buffers.
type Types int32

const (
	UndefinedType Types = iota

	Uint16
	Uint32

	Float32
	Float32Vector2
	Float32Vector3 // only for vertex data: not aligned for uniforms
	Float32Vector4

	Float32Matrix4 // std transform matrix: math32.Matrix4 works directly

	TextureRGBA32 // 32 bits with 8 bits per component of R,G,B,A: std image format

	Depth32         // standard float32 depth buffer
	Depth24Stencil8 // standard 24 bit float with 8 bit stencil
)

// VertexFormat returns the WebGPU VertexFormat for given type.
func (tp Types) VertexFormat() wgpu.VertexFormat {
	return TypeToVertexFormat[tp]
}

// TextureFormat returns the WebGPU TextureFormat for given type.
func (tp Types) TextureFormat() wgpu.TextureFormat {
	return TypeToTextureFormat[tp]
}

// IndexType returns the WebGPU IndexFormat for an index buffer of
// this type, which must be either Uint16 or Uint32.
func (tp Types) IndexType() wgpu.IndexFormat {
	if tp == Uint16 {
		return wgpu.IndexFormatUint16
	}
	return wgpu.IndexFormatUint32
}

// Bytes returns number of bytes for this type
func (tp Types) Bytes() int {
	return TypeSizes[tp]
}

var TypeToTextureFormat = map[Types]wgpu.TextureFormat{
	TextureRGBA32:   wgpu.TextureFormatRGBA8UnormSrgb,
	Depth32:         wgpu.TextureFormatDepth32Float,
	Depth24Stencil8: wgpu.TextureFormatDepth24PlusStencil8,
}

// TextureFormatSizes gives size of known WebGPU
// TextureFormats in bytes
var TextureFormatSizes = map[wgpu.TextureFormat]int{
	wgpu.TextureFormatUndefined:           0,
	wgpu.TextureFormatRGBA8Unorm:          4,
	wgpu.TextureFormatRGBA8UnormSrgb:      4,
	wgpu.TextureFormatBGRA8Unorm:          4,
	wgpu.TextureFormatBGRA8UnormSrgb:      4,
	wgpu.TextureFormatDepth32Float:        4,
	wgpu.TextureFormatDepth24PlusStencil8: 4,
}

// TypeSizes gives the data type sizes in bytes
var TypeSizes = map[Types]int{
	Uint16: 2,
	Uint32: 4,

	Float32:        4,
	Float32Vector2: 8,
	Float32Vector3: 12,
	Float32Vector4: 16,

	Float32Matrix4: 64,

	TextureRGBA32: 4,

	Depth32:         4,
	Depth24Stencil8: 4,
}

// TypeToVertexFormat maps Types to WebGPU VertexFormat
var TypeToVertexFormat = map[Types]wgpu.VertexFormat{
	UndefinedType:  wgpu.VertexFormatUndefined,
	Uint32:         wgpu.VertexFormatUint32,
	Float32:        wgpu.VertexFormatFloat32,
	Float32Vector2: wgpu.VertexFormatFloat32x2,
	Float32Vector3: wgpu.VertexFormatFloat32x3,
	Float32Vector4: wgpu.VertexFormatFloat32x4,
}
