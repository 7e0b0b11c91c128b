// Copyright (c) 2025, The Helia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package helia

import (
	"image"

	"cogentcore.org/core/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// RenderTexture is an offscreen, non-window-backed rendering target,
// functioning like a Surface. Rendered frames can be read back to a
// Go image with [RenderTexture.ReadGoImage], which is how rendering
// output is verified in tests.
type RenderTexture struct {
	// Format has the current image format and dimensions.
	Format TextureFormat

	// number of frames to maintain in the simulated swapchain.
	// e.g., 2 = double-buffering, 3 = triple-buffering.
	NFrames int

	// Textures that we iterate through in rendering subsequent frames.
	Frames []*Texture

	// pointer to gpu, for convenience
	GPU *GPU

	// render helper for this target
	render Render

	// current frame number
	curFrame int

	// device, which we do NOT own: provided in init.
	device Device
}

// NewRenderTexture returns a new offscreen render target for the given
// GPU and device, suitable for headless rendering and testing.
//   - size should reflect the actual size desired; can be updated
//     with SetSize.
//   - depthFmt is the depth buffer format: UndefinedType for none,
//     Depth32 recommended otherwise.
func NewRenderTexture(gp *GPU, dev *Device, size image.Point, depthFmt Types) *RenderTexture {
	rt := &RenderTexture{}
	rt.Defaults()
	rt.init(gp, dev, size, depthFmt)
	return rt
}

func (rt *RenderTexture) Defaults() {
	rt.NFrames = 1
	rt.Format.Defaults()
	// Srgb gives screen-correct results, same as direct surface rendering.
	rt.Format.Set(1024, 768, wgpu.TextureFormatRGBA8UnormSrgb)
}

func (rt *RenderTexture) init(gp *GPU, dev *Device, size image.Point, depthFmt Types) {
	rt.GPU = gp
	rt.device = *dev
	rt.Format.Size = size
	rt.render.Config(&rt.device, &rt.Format, depthFmt)
	rt.ConfigFrames()
}

func (rt *RenderTexture) Device() *Device { return &rt.device }
func (rt *RenderTexture) Render() *Render { return &rt.render }

// GetCurrentTexture returns a TextureView that is the current
// target for rendering.
func (rt *RenderTexture) GetCurrentTexture() (*wgpu.TextureView, error) {
	cf := rt.curFrame
	rt.curFrame = (rt.curFrame + 1) % rt.NFrames
	return rt.Frames[cf].view, nil
}

// LastFrame returns the texture that was most recently rendered to.
func (rt *RenderTexture) LastFrame() *Texture {
	lf := (rt.curFrame - 1 + rt.NFrames) % rt.NFrames
	return rt.Frames[lf]
}

// ConfigFrames configures the frames, calling ReleaseFrames
// so it is safe for re-use.
func (rt *RenderTexture) ConfigFrames() {
	rt.ReleaseFrames()
	rt.Frames = make([]*Texture, rt.NFrames)
	for i := range rt.NFrames {
		fr := NewTexture(&rt.device)
		fr.ConfigRenderTexture(&rt.device, &rt.Format)
		rt.Frames[i] = fr
	}
}

// SetSize sets the size for the render frames,
// doesn't do anything if already that size.
func (rt *RenderTexture) SetSize(size image.Point) {
	if rt.Format.Size == size {
		return
	}
	rt.render.SetSize(size)
	rt.Format.Size = size
	rt.ConfigFrames()
}

func (rt *RenderTexture) ReleaseFrames() {
	for _, fr := range rt.Frames {
		fr.Release()
	}
	rt.Frames = nil
}

func (rt *RenderTexture) Release() {
	rt.ReleaseFrames()
	rt.render.Release()
}

func (rt *RenderTexture) Present() {
	// no-op
}

func (rt *RenderTexture) Discard() {
	// no-op: frames are owned textures, nothing is held per frame
}

// ReadGoImage reads the most recently rendered frame back from the
// device into a Go image. It must be called after rendering has been
// submitted, and waits for the device to be done.
func (rt *RenderTexture) ReadGoImage() (*image.RGBA, error) {
	fr := rt.LastFrame()
	if fr == nil || fr.texture == nil {
		return nil, errors.Log(errors.New("helia: RenderTexture has no rendered frame"))
	}
	dims := NewTextureBufferDims(rt.Format.Size)
	buf, err := rt.device.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "render-texture-read",
		Size:  dims.PaddedSize(),
		Usage: wgpu.BufferUsageCopyDst | wgpu.BufferUsageMapRead,
	})
	if errors.Log(err) != nil {
		return nil, err
	}
	defer buf.Release()

	cmd, err := rt.device.Device.CreateCommandEncoder(nil)
	if errors.Log(err) != nil {
		return nil, err
	}
	size := rt.Format.Extent3D()
	err = cmd.CopyTextureToBuffer(
		&wgpu.ImageCopyTexture{
			Aspect:  wgpu.TextureAspectAll,
			Texture: fr.texture,
			Origin:  wgpu.Origin3D{},
		},
		&wgpu.ImageCopyBuffer{
			Buffer: buf,
			Layout: wgpu.TextureDataLayout{
				Offset:       0,
				BytesPerRow:  uint32(dims.PaddedRowSize),
				RowsPerImage: uint32(dims.Height),
			},
		},
		&size,
	)
	if errors.Log(err) != nil {
		return nil, err
	}
	cb, err := cmd.Finish(nil)
	if errors.Log(err) != nil {
		return nil, err
	}
	rt.device.Queue.Submit(cb)
	cb.Release()
	cmd.Release()

	if err := BufferReadSync(&rt.device, int(dims.PaddedSize()), buf); err != nil {
		return nil, err
	}
	data := buf.GetMappedRange(0, uint(dims.PaddedSize()))
	img := image.NewRGBA(rt.Format.Bounds())
	for y := range int(dims.Height) {
		src := data[uint64(y)*dims.PaddedRowSize:]
		dst := img.Pix[y*img.Stride:]
		copy(dst[:dims.UnpaddedRowSize], src[:dims.UnpaddedRowSize])
	}
	buf.Unmap()
	return img, nil
}
