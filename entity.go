// Copyright (c) 2025, The Helia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package helia

import (
	"image/color"
	"log/slog"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/colors"
	"cogentcore.org/core/math32"
	"github.com/cogentcore/webgpu/wgpu"
)

// Entity is one drawable item: a mesh rendered with a material at a
// transform, with a color tint and a UV window into the material's
// texture. Entities are plain data: they hold no GPU resources of
// their own, and their per-draw uniforms are uploaded by the
// [Renderer] at draw time.
type Entity struct {
	// Mesh is the geometry to draw.
	Mesh *Mesh

	// Material is the shading program and texture to draw with.
	Material *Material

	// Transform is the model (local-to-world) matrix.
	Transform math32.Matrix4

	// Color multiplies the sampled texture color in the shader.
	// Defaults to white (no tint).
	Color color.Color

	// UVOffset and UVScale select the window of the texture that the
	// mesh texture coordinates address: uv' = UVOffset + uv * UVScale.
	// Defaults select the full texture.
	UVOffset math32.Vector2
	UVScale  math32.Vector2
}

// NewEntity returns a new entity for the given mesh and material,
// with an identity transform, white color, and the full texture window.
func NewEntity(ms *Mesh, mt *Material) *Entity {
	en := &Entity{Mesh: ms, Material: mt}
	en.Defaults()
	return en
}

func (en *Entity) Defaults() {
	en.Transform.SetIdentity()
	en.Color = colors.White
	en.UVOffset = math32.Vec2(0, 0)
	en.UVScale = math32.Vec2(1, 1)
}

// EntityUniforms is the per-draw uniform block at [EntityGroup],
// binding 0, accessed through a dynamic offset. It is 96 bytes,
// matching the WGSL struct layout exactly.
type EntityUniforms struct {
	// Model is the local-to-world transform.
	Model math32.Matrix4

	// Color is the RGBA tint, premultiplied into the sampled
	// texture color.
	Color math32.Vector4

	// UVOffset and UVScale window the texture coordinates.
	UVOffset math32.Vector2
	UVScale  math32.Vector2
}

// SetFromEntity sets the uniform values from the entity.
func (eu *EntityUniforms) SetFromEntity(en *Entity) {
	eu.Model = en.Transform
	r, g, b, a := colors.ToFloat32(en.Color)
	eu.Color = math32.Vec4(r, g, b, a)
	eu.UVOffset = en.UVOffset
	eu.UVScale = en.UVScale
}

// entityArenaStartCapacity is the number of entity uniform slots the
// arena starts with; it doubles whenever a frame needs more.
const entityArenaStartCapacity = 32

// entityBindGroup is a growable uniform arena for per-draw entity
// uniforms (group 1). Each draw gets the next aligned slot in the
// buffer, bound via a dynamic offset, so all draws in a frame share
// one buffer and one bind group. When a frame needs more slots than
// the arena has, the buffer doubles; the replaced buffer and bind
// group are parked until after the frame's commands are submitted,
// because earlier recorded draws still reference them.
type entityBindGroup struct {
	buffer    *wgpu.Buffer
	bindGroup *wgpu.BindGroup

	// alignedStride is EntityUniformSize rounded up to the device
	// minimum uniform buffer offset alignment.
	alignedStride int

	// capacity is the number of slots in the buffer.
	capacity int

	// used is the number of slots consumed so far this frame.
	used int

	layout *wgpu.BindGroupLayout
	device Device

	// replaced buffers and bind groups awaiting release after submit
	oldBuffers    []*wgpu.Buffer
	oldBindGroups []*wgpu.BindGroup
}

func newEntityBindGroup(gp *GPU, dev *Device, layout *wgpu.BindGroupLayout) (*entityBindGroup, error) {
	eb := &entityBindGroup{
		alignedStride: MemSizeAlign(EntityUniformSize, gp.UniformAlignment()),
		capacity:      entityArenaStartCapacity,
		layout:        layout,
		device:        *dev,
	}
	if err := eb.config(); err != nil {
		return nil, err
	}
	return eb, nil
}

// config creates the buffer and bind group at the current capacity,
// parking any existing ones for release after submit.
func (eb *entityBindGroup) config() error {
	if eb.buffer != nil {
		eb.oldBuffers = append(eb.oldBuffers, eb.buffer)
		eb.buffer = nil
	}
	if eb.bindGroup != nil {
		eb.oldBindGroups = append(eb.oldBindGroups, eb.bindGroup)
		eb.bindGroup = nil
	}
	buf, err := eb.device.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "entity-uniforms",
		Size:  uint64(eb.capacity * eb.alignedStride),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if errors.Log(err) != nil {
		return err
	}
	eb.buffer = buf
	bg, err := eb.device.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "entity-bind-group",
		Layout: eb.layout,
		Entries: []wgpu.BindGroupEntry{{
			Binding: 0,
			Buffer:  buf,
			Offset:  0,
			Size:    EntityUniformSize,
		}},
	})
	if errors.Log(err) != nil {
		return err
	}
	eb.bindGroup = bg
	return nil
}

// beginFrame resets the slot counter for a new frame.
func (eb *entityBindGroup) beginFrame() {
	eb.used = 0
}

// push writes the uniforms into the next slot and returns the dynamic
// offset to bind it with, growing the arena if full.
func (eb *entityBindGroup) push(eu *EntityUniforms) (uint32, error) {
	if eb.used >= eb.capacity {
		eb.capacity *= 2
		if Debug {
			slog.Info("helia: entity uniform arena growing", "capacity", eb.capacity)
		}
		if err := eb.config(); err != nil {
			return 0, err
		}
	}
	off := uint32(eb.used * eb.alignedStride)
	eb.device.Queue.WriteBuffer(eb.buffer, uint64(off), wgpu.ToBytes([]EntityUniforms{*eu}))
	eb.used++
	return off, nil
}

// releaseOld releases buffers and bind groups that were replaced by
// mid-frame growth. Call only after the frame's commands have been
// submitted.
func (eb *entityBindGroup) releaseOld() {
	for _, bg := range eb.oldBindGroups {
		bg.Release()
	}
	eb.oldBindGroups = nil
	for _, buf := range eb.oldBuffers {
		buf.Release()
	}
	eb.oldBuffers = nil
}

func (eb *entityBindGroup) Release() {
	eb.releaseOld()
	if eb.bindGroup != nil {
		eb.bindGroup.Release()
		eb.bindGroup = nil
	}
	if eb.buffer != nil {
		eb.buffer.Release()
		eb.buffer = nil
	}
}
