// Copyright (c) 2025, The Helia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package helia

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextureBufferDims(t *testing.T) {
	td := NewTextureBufferDims(image.Point{16, 16})
	assert.Equal(t, uint64(64), td.UnpaddedRowSize)
	assert.Equal(t, uint64(256), td.PaddedRowSize)
	assert.Equal(t, uint64(256*16), td.PaddedSize())
	assert.False(t, td.HasNoPadding())

	td = NewTextureBufferDims(image.Point{64, 4})
	assert.Equal(t, uint64(256), td.UnpaddedRowSize)
	assert.Equal(t, uint64(256), td.PaddedRowSize)
	assert.True(t, td.HasNoPadding())
}

func TestTextureFormat(t *testing.T) {
	tf := NewTextureFormat(640, 480)
	assert.True(t, tf.IsStdRGBA())
	assert.Equal(t, 4, tf.BytesPerPixel())
	assert.Equal(t, 640*4, tf.Stride())
	assert.Equal(t, image.Rect(0, 0, 640, 480), tf.Bounds())
	assert.InDelta(t, float32(640)/480, tf.Aspect(), 1e-6)

	ex := tf.Extent3D()
	assert.Equal(t, uint32(640), ex.Width)
	assert.Equal(t, uint32(480), ex.Height)
	assert.Equal(t, uint32(1), ex.DepthOrArrayLayers)
}

func TestMemSizeAlign(t *testing.T) {
	assert.Equal(t, 16, MemSizeAlign(12, 16))
	assert.Equal(t, 16, MemSizeAlign(16, 16))
	assert.Equal(t, 512, MemSizeAlign(257, 256))
}
