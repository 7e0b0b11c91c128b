// Copyright (c) 2025, The Helia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package helia

import (
	"image"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/base/iox/imagex"
	"github.com/cogentcore/webgpu/wgpu"
)

// Texture represents a WebGPU Texture with an associated TextureView,
// and optionally a Sampler for material use.
// The WebGPU Texture is in device memory, in an optimized format.
type Texture struct {
	// Name of the texture, helpful for debugging. Auto-set to the
	// filename if loaded from a file, otherwise empty.
	Name string

	// Format & size of texture
	Format TextureFormat

	// WebGPU texture handle, in device memory
	texture *wgpu.Texture

	// WebGPU texture view
	view *wgpu.TextureView

	// sampler, only created for material textures
	sampler *wgpu.Sampler

	// keep track of device for creating and destroying
	device Device
}

func NewTexture(dev *Device) *Texture {
	tx := &Texture{}
	tx.device = *dev
	tx.Format.Defaults()
	return tx
}

// View returns the texture view.
func (tx *Texture) View() *wgpu.TextureView { return tx.view }

// Sampler returns the sampler, creating a default one if needed.
func (tx *Texture) Sampler() (*wgpu.Sampler, error) {
	if tx.sampler != nil {
		return tx.sampler, nil
	}
	err := tx.ConfigSampler()
	return tx.sampler, err
}

// SetFromGoImage sets texture data from a standard Go image.
// This is most efficiently done using an image.RGBA, but other
// formats will be converted as necessary.
// This does the full WriteTexture call to upload to the device.
func (tx *Texture) SetFromGoImage(img image.Image) error {
	rimg := imagex.AsRGBA(img)
	sz := rimg.Rect.Size()

	tx.Format.Size = sz
	tx.Format.Format = wgpu.TextureFormatRGBA8UnormSrgb

	err := tx.CreateTexture(wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst)
	if err != nil { // already logged
		return err
	}

	size := tx.Format.Extent3D()
	tx.device.Queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Aspect:   wgpu.TextureAspectAll,
			Texture:  tx.texture,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{X: 0, Y: 0, Z: 0},
		},
		rimg.Pix,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  4 * uint32(sz.X),
			RowsPerImage: uint32(sz.Y),
		},
		&size,
	)
	return nil
}

// CreateTexture creates the texture based on current settings,
// and a view of that texture.  Calls ReleaseTexture first.
func (tx *Texture) CreateTexture(usage wgpu.TextureUsage) error {
	tx.ReleaseTexture()

	samples := tx.Format.Samples
	if samples <= 0 {
		samples = 1
	}
	t, err := tx.device.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         tx.Name,
		Size:          tx.Format.Extent3D(),
		MipLevelCount: 1,
		SampleCount:   uint32(samples),
		Dimension:     wgpu.TextureDimension2D,
		Format:        tx.Format.Format,
		Usage:         usage,
	})
	if errors.Log(err) != nil {
		return err
	}
	tx.texture = t
	vw, err := t.CreateView(nil)
	if errors.Log(err) != nil {
		return err
	}
	tx.view = vw
	return nil
}

// ConfigSampler makes a standard filtering sampler for this texture:
// linear mag / min filters with clamp-to-edge addressing, matching the
// filterable material bind group layout.
func (tx *Texture) ConfigSampler() error {
	if tx.sampler != nil {
		tx.sampler.Release()
		tx.sampler = nil
	}
	sp, err := tx.device.Device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         tx.Name,
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMinClamp:   0,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	})
	if errors.Log(err) != nil {
		return err
	}
	tx.sampler = sp
	return nil
}

// ConfigDepth configures this texture as a depth texture
// using given depth texture format, and other format information
// from the given render target format.
// If the current texture is already in the identical format,
// it does not recreate it.
func (tx *Texture) ConfigDepth(dev *Device, depthType Types, imgFmt *TextureFormat) error {
	tx.device = *dev
	nfmt := *imgFmt
	nfmt.Format = depthType.TextureFormat()
	if tx.texture != nil && tx.Format == nfmt {
		return nil
	}
	tx.Format = nfmt
	return tx.CreateTexture(wgpu.TextureUsageRenderAttachment)
}

// ConfigRenderTexture configures this texture as an offscreen render
// target in the given format, which can also be copied from for
// reading rendered output back to the host.
func (tx *Texture) ConfigRenderTexture(dev *Device, imgFmt *TextureFormat) error {
	tx.device = *dev
	if tx.texture != nil && tx.Format == *imgFmt {
		return nil
	}
	tx.Format = *imgFmt
	return tx.CreateTexture(wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageCopySrc)
}

// ReleaseView destroys any existing view
func (tx *Texture) ReleaseView() {
	if tx.view == nil {
		return
	}
	tx.view.Release()
	tx.view = nil
}

// ReleaseTexture frees device memory version of texture that we own
func (tx *Texture) ReleaseTexture() {
	tx.ReleaseView()
	if tx.texture == nil {
		return
	}
	tx.texture.Release()
	tx.texture = nil
}

// Release destroys the texture, view, and sampler.
func (tx *Texture) Release() {
	tx.ReleaseTexture()
	if tx.sampler != nil {
		tx.sampler.Release()
		tx.sampler = nil
	}
}
