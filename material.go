// Copyright (c) 2025, The Helia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package helia

import (
	"cogentcore.org/core/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// Material pairs a shading program with a texture, and holds the
// group 2 bind group (texture view + sampler) for it. Materials are
// validated and their bind group created at construction, so an
// invalid combination fails immediately rather than at draw time.
type Material struct {
	// Name of the material, for debugging.
	Name string

	// Shader is the shading program this material draws with.
	Shader *Shader

	// Texture is the texture sampled by the shader.
	Texture *Texture

	bindGroup *wgpu.BindGroup
}

// NewMaterial returns a new material binding the given texture for
// use with the given shading program, creating its texture and
// sampler bind group on the given layout (see [MaterialGroup]).
func NewMaterial(dev *Device, layout *wgpu.BindGroupLayout, name string, sh *Shader, tx *Texture) (*Material, error) {
	if sh == nil {
		return nil, errors.Log(configErrorf("material %q: nil shader", name))
	}
	if tx == nil {
		return nil, errors.Log(configErrorf("material %q: nil texture", name))
	}
	view := tx.View()
	if view == nil {
		return nil, errors.Log(configErrorf("material %q: texture %q has no image data", name, tx.Name))
	}
	samp, err := tx.Sampler()
	if err != nil {
		return nil, err
	}
	mt := &Material{Name: name, Shader: sh, Texture: tx}
	bg, err := dev.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  name + "-bind-group",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding:     0,
				TextureView: view,
			},
			{
				Binding: 1,
				Sampler: samp,
			},
		},
	})
	if errors.Log(err) != nil {
		return nil, err
	}
	mt.bindGroup = bg
	return mt, nil
}

func (mt *Material) Release() {
	if mt.bindGroup != nil {
		mt.bindGroup.Release()
		mt.bindGroup = nil
	}
}
