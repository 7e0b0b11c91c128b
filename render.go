// Copyright (c) 2025, The Helia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package helia

import (
	"image"
	"image/color"

	"cogentcore.org/core/colors"
	"github.com/cogentcore/webgpu/wgpu"
)

// Render manages the elements needed for rendering to a target:
// the color format, the depth buffer if one is used, and the clear
// values used when starting a render pass. The Render object lives on
// the render target ([Surface] or [RenderTexture]) and is shared by
// the [Renderer] that draws to it.
type Render struct {
	// image format information for the framebuffer we render to
	Format TextureFormat

	// the associated depth buffer, if set
	Depth Texture

	// ClearColor is the color used to clear the framebuffer
	// when starting a render pass. Defaults to black.
	ClearColor color.Color

	// ClearDepth is the depth buffer clear value. Defaults to 1
	// (the far plane, with CompareFunctionLess).
	ClearDepth float32

	// depth buffer format, UndefinedType = no depth buffer
	depthType Types

	device *Device
}

// Config configures the Render for the given device, color format,
// and depth format (pass UndefinedType for no depth buffer).
func (rd *Render) Config(dev *Device, fmt *TextureFormat, depthFmt Types) {
	rd.device = dev
	rd.Format = *fmt
	rd.ClearColor = colors.Black
	rd.ClearDepth = 1
	rd.depthType = depthFmt
	if rd.HasDepth() {
		rd.Depth.ConfigDepth(dev, rd.depthType, &rd.Format)
	}
}

// HasDepth returns true if configured with a depth buffer.
func (rd *Render) HasDepth() bool {
	return rd.depthType != UndefinedType
}

// SetSize sets the size of the render target, recreating the depth
// buffer if present. No-op if the size is unchanged.
func (rd *Render) SetSize(size image.Point) {
	if rd.Format.Size == size {
		return
	}
	rd.Format.Size = size
	if rd.HasDepth() {
		rd.Depth.ConfigDepth(rd.device, rd.depthType, &rd.Format)
	}
}

// ClearRenderPass returns a render pass descriptor that clears the
// framebuffer to the ClearColor, and the depth buffer to ClearDepth.
func (rd *Render) ClearRenderPass(view *wgpu.TextureView) *wgpu.RenderPassDescriptor {
	r, g, b, a := colors.ToFloat32(rd.ClearColor)
	return &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			ClearValue: wgpu.Color{R: float64(r), G: float64(g), B: float64(b), A: float64(a)},
			StoreOp:    wgpu.StoreOpStore,
		}},
		DepthStencilAttachment: rd.depthStencilAttachment(true),
	}
}

// LoadRenderPass returns a render pass descriptor that loads the
// previous framebuffer and depth contents.
func (rd *Render) LoadRenderPass(view *wgpu.TextureView) *wgpu.RenderPassDescriptor {
	return &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:    view,
			LoadOp:  wgpu.LoadOpLoad,
			StoreOp: wgpu.StoreOpStore,
		}},
		DepthStencilAttachment: rd.depthStencilAttachment(false),
	}
}

func (rd *Render) depthStencilAttachment(clear bool) *wgpu.RenderPassDepthStencilAttachment {
	if !rd.HasDepth() {
		return nil
	}
	att := &wgpu.RenderPassDepthStencilAttachment{
		View:            rd.Depth.view,
		DepthLoadOp:     wgpu.LoadOpClear,
		DepthStoreOp:    wgpu.StoreOpStore,
		DepthClearValue: rd.ClearDepth,
	}
	if !clear {
		att.DepthLoadOp = wgpu.LoadOpLoad
	}
	return att
}

// BeginRenderPass starts the render pass on the given view,
// clearing the color and depth buffers first.
// See [Render.BeginRenderPassNoClear] for a non-clearing version.
func (rd *Render) BeginRenderPass(cmd *wgpu.CommandEncoder, view *wgpu.TextureView) *wgpu.RenderPassEncoder {
	return cmd.BeginRenderPass(rd.ClearRenderPass(view))
}

// BeginRenderPassNoClear starts the render pass on the given view,
// loading the prior framebuffer contents.
func (rd *Render) BeginRenderPassNoClear(cmd *wgpu.CommandEncoder, view *wgpu.TextureView) *wgpu.RenderPassEncoder {
	return cmd.BeginRenderPass(rd.LoadRenderPass(view))
}

func (rd *Render) Release() {
	rd.Depth.Release()
}
