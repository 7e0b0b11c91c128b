// Copyright (c) 2025, The Helia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package helia

import (
	"image"

	"github.com/cogentcore/webgpu/wgpu"
)

// RenderTarget is the interface for rendering destinations,
// implemented by the window-backed [Surface] and the offscreen
// [RenderTexture].
type RenderTarget interface {
	// Device returns the device for this target, which is owned by
	// the target (Surface) or shared (RenderTexture).
	Device() *Device

	// Render returns the Render object managing the color format,
	// depth buffer, and clear values for this target.
	Render() *Render

	// GetCurrentTexture returns the texture view to render to
	// for the current frame.
	GetCurrentTexture() (*wgpu.TextureView, error)

	// Present presents the rendered frame to the display,
	// and is a no-op for offscreen targets.
	Present()

	// Discard releases the texture acquired for the current frame
	// without presenting it, so a new frame can be started after a
	// frame is abandoned. No-op for offscreen targets and when no
	// texture is held.
	Discard()

	// SetSize sets the size of the target, which is a no-op if the
	// size is unchanged.
	SetSize(size image.Point)

	// Release releases the target's resources.
	Release()
}
