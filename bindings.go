// Copyright (c) 2025, The Helia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package helia

import (
	"fmt"

	"cogentcore.org/core/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// BindGroupIndex identifies one of the fixed bind groups in the render
// pipeline layout. The groups are ordered from least to most frequently
// rebound: the camera is bound once per frame, the entity uniform buffer
// is rebound per draw at a new dynamic offset, and the material is
// rebound whenever it changes between draws. The pipeline layout order
// must match the @group declarations in the shader.
type BindGroupIndex int32

const (
	// CameraGroup is bind group 0, holding the camera view-projection
	// uniform at binding 0, visible to the vertex stage.
	CameraGroup BindGroupIndex = iota

	// EntityGroup is bind group 1, holding per-entity uniforms in a
	// single dynamically-offset uniform buffer at binding 0, visible to
	// the vertex and fragment stages.
	EntityGroup

	// MaterialGroup is bind group 2, holding the material's 2D texture
	// at binding 0 and its filtering sampler at binding 1, visible to
	// the fragment stage.
	MaterialGroup

	// NumBindGroups is the fixed number of bind groups in the layout.
	NumBindGroups
)

var bindGroupNames = map[BindGroupIndex]string{
	CameraGroup:   "camera",
	EntityGroup:   "entity",
	MaterialGroup: "material",
}

func (gi BindGroupIndex) String() string {
	if nm, ok := bindGroupNames[gi]; ok {
		return nm
	}
	return fmt.Sprintf("BindGroupIndex(%d)", int32(gi))
}

const (
	// CameraUniformSize is the byte size of the camera uniform block:
	// one 4x4 float32 view-projection matrix.
	CameraUniformSize = 64

	// EntityUniformSize is the byte size of the per-entity uniform
	// block: 4x4 model matrix (64) + color vec4 (16) + uv offset
	// vec2 (8) + uv scale vec2 (8).
	EntityUniformSize = 96
)

// Describe returns the bind group layout descriptor for this group.
// It is a pure function of the index: the same index always yields an
// identical descriptor. Indices outside the fixed layout return an
// error wrapping [ErrConfiguration].
func (gi BindGroupIndex) Describe() (*wgpu.BindGroupLayoutDescriptor, error) {
	switch gi {
	case CameraGroup:
		return &wgpu.BindGroupLayoutDescriptor{
			Label: "camera-bind-group-layout",
			Entries: []wgpu.BindGroupLayoutEntry{{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:             wgpu.BufferBindingTypeUniform,
					HasDynamicOffset: false,
					MinBindingSize:   CameraUniformSize,
				},
			}},
		}, nil
	case EntityGroup:
		return &wgpu.BindGroupLayoutDescriptor{
			Label: "entity-bind-group-layout",
			Entries: []wgpu.BindGroupLayoutEntry{{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:             wgpu.BufferBindingTypeUniform,
					HasDynamicOffset: true,
					MinBindingSize:   EntityUniformSize,
				},
			}},
		}, nil
	case MaterialGroup:
		return &wgpu.BindGroupLayoutDescriptor{
			Label: "material-bind-group-layout",
			Entries: []wgpu.BindGroupLayoutEntry{
				{
					Binding:    0,
					Visibility: wgpu.ShaderStageFragment,
					Texture: wgpu.TextureBindingLayout{
						Multisampled:  false,
						ViewDimension: wgpu.TextureViewDimension2D,
						SampleType:    wgpu.TextureSampleTypeFloat,
					},
				},
				{
					Binding:    1,
					Visibility: wgpu.ShaderStageFragment,
					Sampler: wgpu.SamplerBindingLayout{
						Type: wgpu.SamplerBindingTypeFiltering,
					},
				},
			},
		}, nil
	}
	return nil, configErrorf("no bind group at index %d: fixed layout has groups 0..%d", gi, NumBindGroups-1)
}

// bindGroupLayouts creates the WebGPU bind group layouts for all groups,
// in group index order, suitable for building a pipeline layout.
// The caller owns the returned layouts and must release them.
func bindGroupLayouts(dev *Device) ([]*wgpu.BindGroupLayout, error) {
	lays := make([]*wgpu.BindGroupLayout, NumBindGroups)
	for gi := range NumBindGroups {
		desc, err := gi.Describe()
		if err != nil {
			return nil, err
		}
		lay, err := dev.Device.CreateBindGroupLayout(desc)
		if err != nil {
			releaseBindGroupLayouts(lays)
			return nil, errors.Log(err)
		}
		lays[gi] = lay
	}
	return lays, nil
}

func releaseBindGroupLayouts(lays []*wgpu.BindGroupLayout) {
	for i, lay := range lays {
		if lay != nil {
			lay.Release()
			lays[i] = nil
		}
	}
}
