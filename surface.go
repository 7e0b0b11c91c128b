// Copyright (c) 2025, The Helia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package helia

import (
	"fmt"
	"image"
	"log/slog"

	"cogentcore.org/core/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// Surface manages the physical device for the visible image
// of a window surface, and the rendering render target for it.
// It owns its logical device, which outlives any reconfiguration
// of the surface.
type Surface struct {
	// Format has the current surface format and dimensions.
	Format TextureFormat

	// pointer to gpu
	GPU *GPU

	// render helper for this surface
	render Render

	// device for this surface, which we own
	device *Device

	// the WebGPU window surface
	surface *wgpu.Surface

	// compositing alpha mode, from surface capabilities
	alphaMode wgpu.CompositeAlphaMode

	// surface texture acquired for the current frame,
	// released on Present
	curTexture *wgpu.Texture
	curView    *wgpu.TextureView
}

// NewSurface returns a new surface initialized for the given window
// surface, of the given initial size, with a depth buffer in given
// format (UndefinedType for none). It creates a new device for the
// surface, which it owns.
func NewSurface(gp *GPU, wsurf *wgpu.Surface, size image.Point, depthFmt Types) (*Surface, error) {
	if wsurf == nil {
		return nil, errors.Log(configErrorf("nil window surface"))
	}
	if size.X <= 0 || size.Y <= 0 {
		return nil, errors.Log(configErrorf("invalid surface size %v", size))
	}
	dev, err := NewDevice(gp)
	if err != nil {
		return nil, err
	}
	sf := &Surface{GPU: gp, surface: wsurf, device: dev}
	sf.Format.Defaults()
	sf.Format.Size = size
	caps := wsurf.GetCapabilities(gp.Adapter)
	sf.Format.Format = caps.Formats[0]
	sf.alphaMode = caps.AlphaModes[0]
	sf.configure()
	sf.render.Config(dev, &sf.Format, depthFmt)
	return sf, nil
}

func (sf *Surface) Device() *Device { return sf.device }
func (sf *Surface) Render() *Render { return &sf.render }

// configure (re)configures the underlying surface at the current
// format and size.
func (sf *Surface) configure() {
	sf.surface.Configure(sf.GPU.Adapter, sf.device.Device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      sf.Format.Format,
		Width:       uint32(sf.Format.Size.X),
		Height:      uint32(sf.Format.Size.Y),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   sf.alphaMode,
	})
}

// GetCurrentTexture returns the surface texture view to render to
// for this frame. If the surface has been lost (e.g., window resized
// or the swapchain invalidated), it reconfigures the surface at the
// current size and retries once; if that also fails, it returns an
// error wrapping [ErrSurfaceLost] and the frame should be dropped.
func (sf *Surface) GetCurrentTexture() (*wgpu.TextureView, error) {
	if sf.curTexture != nil {
		return nil, errors.Log(configErrorf("previous frame surface texture not yet presented"))
	}
	tx, err := sf.surface.GetCurrentTexture()
	if err != nil {
		if Debug {
			slog.Warn("helia: surface lost, reconfiguring", "err", err, "size", sf.Format.Size)
		}
		sf.configure()
		tx, err = sf.surface.GetCurrentTexture()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSurfaceLost, err)
		}
	}
	view, err := tx.CreateView(nil)
	if err != nil {
		tx.Release()
		return nil, fmt.Errorf("%w: %v", ErrSurfaceLost, err)
	}
	sf.curTexture = tx
	sf.curView = view
	return view, nil
}

// Present presents the current frame to the window and releases the
// acquired surface texture.
func (sf *Surface) Present() {
	if sf.curTexture == nil {
		return
	}
	sf.surface.Present()
	sf.Discard()
}

// Discard releases the acquired surface texture without presenting
// it, allowing a new texture to be acquired for the next frame.
// Called when a frame is abandoned after submission fails.
func (sf *Surface) Discard() {
	if sf.curTexture == nil {
		return
	}
	sf.curView.Release()
	sf.curView = nil
	sf.curTexture.Release()
	sf.curTexture = nil
}

// SetSize reconfigures the surface and depth buffer for the new size.
// No-op if the size is unchanged; invalid sizes are logged and ignored.
func (sf *Surface) SetSize(size image.Point) {
	if size.X <= 0 || size.Y <= 0 {
		errors.Log(configErrorf("invalid surface size %v", size))
		return
	}
	if sf.Format.Size == size {
		return
	}
	sf.render.SetSize(size)
	sf.Format.Size = size
	sf.configure()
}

func (sf *Surface) Release() {
	sf.Discard()
	sf.render.Release()
	if sf.surface != nil {
		sf.surface.Release()
		sf.surface = nil
	}
	if sf.device != nil {
		sf.device.Release()
		sf.device = nil
	}
}
