// Copyright (c) 2025, The Helia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package helia

import (
	"fmt"
	"image"

	"github.com/cogentcore/webgpu/wgpu"
)

// TextureFormat describes the size and WebGPU format of a Texture
// or render target.
type TextureFormat struct {
	// Size of image
	Size image.Point

	// Texture format: RGBA8UnormSrgb is default
	Format wgpu.TextureFormat

	// number of samples: 1 = no multisampling
	Samples int
}

// NewTextureFormat returns a new TextureFormat with default format
// and given size.
func NewTextureFormat(width, height int) *TextureFormat {
	tf := &TextureFormat{}
	tf.Defaults()
	tf.Size = image.Point{width, height}
	return tf
}

func (tf *TextureFormat) Defaults() {
	tf.Format = wgpu.TextureFormatRGBA8UnormSrgb
	tf.Samples = 1
}

// String returns human-readable version of format
func (tf *TextureFormat) String() string {
	return fmt.Sprintf("Size: %v  Format: %d  MultiSample: %d", tf.Size, tf.Format, tf.Samples)
}

// IsStdRGBA returns true if the format is the standard
// wgpu.TextureFormatRGBA8UnormSrgb, which is compatible with the
// Go image.RGBA format.
func (tf *TextureFormat) IsStdRGBA() bool {
	return tf.Format == wgpu.TextureFormatRGBA8UnormSrgb
}

// SetSize sets the width, height
func (tf *TextureFormat) SetSize(w, h int) {
	tf.Size = image.Point{X: w, Y: h}
}

// Set sets width, height and format
func (tf *TextureFormat) Set(w, h int, ft wgpu.TextureFormat) {
	tf.SetSize(w, h)
	tf.Format = ft
}

// Size32 returns size as uint32 values
func (tf *TextureFormat) Size32() (width, height uint32) {
	return uint32(tf.Size.X), uint32(tf.Size.Y)
}

// Extent3D returns the size as a WebGPU Extent3D, with one layer.
func (tf *TextureFormat) Extent3D() wgpu.Extent3D {
	return wgpu.Extent3D{
		Width:              uint32(tf.Size.X),
		Height:             uint32(tf.Size.Y),
		DepthOrArrayLayers: 1,
	}
}

// Aspect returns the aspect ratio X / Y
func (tf *TextureFormat) Aspect() float32 {
	if tf.Size.Y > 0 {
		return float32(tf.Size.X) / float32(tf.Size.Y)
	}
	return 1
}

// Bounds returns the rectangle defining this image: 0,0,w,h
func (tf *TextureFormat) Bounds() image.Rectangle {
	return image.Rectangle{Max: tf.Size}
}

// BytesPerPixel returns number of bytes required to represent
// one pixel, for known formats.
func (tf *TextureFormat) BytesPerPixel() int {
	return TextureFormatSizes[tf.Format]
}

// ImageByteSize returns the total number of bytes to represent the
// image in host memory.
func (tf *TextureFormat) ImageByteSize() int {
	return tf.BytesPerPixel() * tf.Size.X * tf.Size.Y
}

// Stride returns number of bytes per image row.
func (tf *TextureFormat) Stride() int {
	return tf.BytesPerPixel() * tf.Size.X
}

////////

// TextureBufferDims represents the sizes required in a Buffer to
// represent a texture of a given size, padding rows to the WebGPU
// copy alignment.
type TextureBufferDims struct {
	Width           uint64
	Height          uint64
	UnpaddedRowSize uint64
	PaddedRowSize   uint64
}

func NewTextureBufferDims(size image.Point) *TextureBufferDims {
	td := &TextureBufferDims{}
	td.Set(size)
	return td
}

func (td *TextureBufferDims) Set(size image.Point) {
	td.Width = uint64(size.X)
	td.Height = uint64(size.Y)
	const bytesPerPixel = 4
	td.UnpaddedRowSize = td.Width * bytesPerPixel
	align := uint64(wgpu.CopyBytesPerRowAlignment)
	padding := (align - td.UnpaddedRowSize%align) % align
	td.PaddedRowSize = td.UnpaddedRowSize + padding
}

// PaddedSize returns the total padded size of data
func (td *TextureBufferDims) PaddedSize() uint64 {
	return td.PaddedRowSize * td.Height
}

// UnpaddedSize returns the total unpadded size of data
func (td *TextureBufferDims) UnpaddedSize() uint64 {
	return td.UnpaddedRowSize * td.Height
}

// HasNoPadding returns true if the Unpadded and Padded row sizes
// are the same.
func (td *TextureBufferDims) HasNoPadding() bool {
	return td.UnpaddedRowSize == td.PaddedRowSize
}
