// Copyright (c) 2025, The Helia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package helia

import (
	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/math32"
	"github.com/cogentcore/webgpu/wgpu"
)

// Vertex is the vertex format used by all shading programs:
// a position and texture coordinates, 20 bytes per vertex.
type Vertex struct {
	// Position in model space, @location(0) in the shader.
	Position math32.Vector3

	// TexCoords are the texture coordinates, @location(1) in the shader.
	TexCoords math32.Vector2
}

// VertexLayout returns the WebGPU vertex buffer layout for [Vertex]:
// Float32x3 position at location 0, Float32x2 tex coords at location 1.
func VertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: uint64(Float32Vector3.Bytes() + Float32Vector2.Bytes()),
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{
				Format:         Float32Vector3.VertexFormat(),
				Offset:         0,
				ShaderLocation: 0,
			},
			{
				Format:         Float32Vector2.VertexFormat(),
				Offset:         uint64(Float32Vector3.Bytes()),
				ShaderLocation: 1,
			},
		},
	}
}

// Mesh holds the vertex and index buffers for one piece of geometry,
// shared across any number of entities. Indexes are uint16.
type Mesh struct {
	// Name of the mesh, for debugging.
	Name string

	// IndexCount is the number of indexes to draw.
	IndexCount uint32

	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
}

// NewMesh returns a new mesh with the given vertex and index data
// uploaded to device buffers.
func NewMesh(dev *Device, name string, vtxs []Vertex, idxs []uint16) (*Mesh, error) {
	ms := &Mesh{Name: name, IndexCount: uint32(len(idxs))}
	vb, err := dev.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    name + "-vertex",
		Contents: wgpu.ToBytes(vtxs),
		Usage:    wgpu.BufferUsageVertex,
	})
	if errors.Log(err) != nil {
		return nil, err
	}
	ms.vertexBuffer = vb
	ib, err := dev.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    name + "-index",
		Contents: wgpu.ToBytes(idxs),
		Usage:    wgpu.BufferUsageIndex,
	})
	if errors.Log(err) != nil {
		ms.Release()
		return nil, err
	}
	ms.indexBuffer = ib
	return ms, nil
}

// NewQuadMesh returns a new unit quad centered on the origin in the
// XY plane, scaled by width and height and translated by offset,
// with texture coordinates covering the full [0, 1] range.
func NewQuadMesh(dev *Device, name string, width, height float32, offset math32.Vector2) (*Mesh, error) {
	vtxs := []Vertex{
		{Position: math32.Vec3(width*-0.5+offset.X, height*-0.5+offset.Y, 0), TexCoords: math32.Vec2(0, 1)},
		{Position: math32.Vec3(width*0.5+offset.X, height*-0.5+offset.Y, 0), TexCoords: math32.Vec2(1, 1)},
		{Position: math32.Vec3(width*0.5+offset.X, height*0.5+offset.Y, 0), TexCoords: math32.Vec2(1, 0)},
		{Position: math32.Vec3(width*-0.5+offset.X, height*0.5+offset.Y, 0), TexCoords: math32.Vec2(0, 0)},
	}
	idxs := []uint16{0, 1, 2, 0, 2, 3}
	return NewMesh(dev, name, vtxs, idxs)
}

// bindBuffers sets the mesh vertex and index buffers on the render pass.
func (ms *Mesh) bindBuffers(rp *wgpu.RenderPassEncoder) {
	rp.SetVertexBuffer(0, ms.vertexBuffer, 0, wgpu.WholeSize)
	rp.SetIndexBuffer(ms.indexBuffer, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
}

func (ms *Mesh) Release() {
	if ms.vertexBuffer != nil {
		ms.vertexBuffer.Release()
		ms.vertexBuffer = nil
	}
	if ms.indexBuffer != nil {
		ms.indexBuffer.Release()
		ms.indexBuffer = nil
	}
}
