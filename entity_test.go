// Copyright (c) 2025, The Helia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package helia

import (
	"image/color"
	"testing"
	"unsafe"

	"cogentcore.org/core/math32"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

func TestEntityUniformsSize(t *testing.T) {
	assert.Equal(t, uintptr(EntityUniformSize), unsafe.Sizeof(EntityUniforms{}))
	assert.Equal(t, uintptr(0), unsafe.Offsetof(EntityUniforms{}.Model))
	assert.Equal(t, uintptr(64), unsafe.Offsetof(EntityUniforms{}.Color))
	assert.Equal(t, uintptr(80), unsafe.Offsetof(EntityUniforms{}.UVOffset))
	assert.Equal(t, uintptr(88), unsafe.Offsetof(EntityUniforms{}.UVScale))
}

func TestCameraUniformsSize(t *testing.T) {
	assert.Equal(t, uintptr(CameraUniformSize), unsafe.Sizeof(math32.Matrix4{}))
}

func TestEntityUniformsRoundTrip(t *testing.T) {
	en := &Entity{}
	en.Defaults()
	en.Transform.SetRotationY(0.7)
	en.Color = color.RGBA{255, 128, 0, 255}
	en.UVOffset = math32.Vec2(0.25, 0.5)
	en.UVScale = math32.Vec2(0.5, 0.25)

	var eu EntityUniforms
	eu.SetFromEntity(en)
	b := wgpu.ToBytes([]EntityUniforms{eu})
	assert.Len(t, b, EntityUniformSize)

	back := *(*EntityUniforms)(unsafe.Pointer(&b[0]))
	assert.Equal(t, eu, back)
	assert.Equal(t, en.Transform, back.Model)
	assert.Equal(t, en.UVOffset, back.UVOffset)
	assert.Equal(t, en.UVScale, back.UVScale)
	assert.InDelta(t, 1, back.Color.X, 0.005)
	assert.InDelta(t, 0.5, back.Color.Y, 0.005)
	assert.InDelta(t, 0, back.Color.Z, 0.005)
	assert.InDelta(t, 1, back.Color.W, 0.005)
}

func TestEntityDefaults(t *testing.T) {
	en := NewEntity(nil, nil)
	var ident math32.Matrix4
	ident.SetIdentity()
	assert.Equal(t, ident, en.Transform)
	assert.Equal(t, math32.Vec2(0, 0), en.UVOffset)
	assert.Equal(t, math32.Vec2(1, 1), en.UVScale)
	var eu EntityUniforms
	eu.SetFromEntity(en)
	assert.Equal(t, math32.Vec4(1, 1, 1, 1), eu.Color)
}

func TestEntityArenaStride(t *testing.T) {
	assert.Equal(t, 256, MemSizeAlign(EntityUniformSize, 256))
	assert.Equal(t, 96, MemSizeAlign(EntityUniformSize, 32))
	assert.Equal(t, 128, MemSizeAlign(EntityUniformSize, 64))
}
