// Copyright (c) 2025, The Helia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package helia

import (
	"testing"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

func TestVertexLayout(t *testing.T) {
	assert.Equal(t, uintptr(20), unsafe.Sizeof(Vertex{}))

	vl := VertexLayout()
	assert.Equal(t, uint64(20), vl.ArrayStride)
	assert.Equal(t, wgpu.VertexStepModeVertex, vl.StepMode)
	assert.Len(t, vl.Attributes, 2)

	pos := vl.Attributes[0]
	assert.Equal(t, wgpu.VertexFormatFloat32x3, pos.Format)
	assert.Equal(t, uint64(0), pos.Offset)
	assert.Equal(t, uint32(0), pos.ShaderLocation)

	uv := vl.Attributes[1]
	assert.Equal(t, wgpu.VertexFormatFloat32x2, uv.Format)
	assert.Equal(t, uint64(12), uv.Offset)
	assert.Equal(t, uint32(1), uv.ShaderLocation)
}

func TestVertexBytes(t *testing.T) {
	vtxs := []Vertex{{}, {}, {}}
	assert.Len(t, wgpu.ToBytes(vtxs), 60)
}
