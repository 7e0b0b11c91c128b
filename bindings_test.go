// Copyright (c) 2025, The Helia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package helia

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

func TestBindGroupDescribeDeterministic(t *testing.T) {
	for gi := range NumBindGroups {
		a, err := gi.Describe()
		assert.NoError(t, err)
		b, err := gi.Describe()
		assert.NoError(t, err)
		assert.Equal(t, a, b, "group %v must describe identically every time", gi)
	}
}

func TestBindGroupLayoutContents(t *testing.T) {
	cam, err := CameraGroup.Describe()
	assert.NoError(t, err)
	assert.Len(t, cam.Entries, 1)
	assert.Equal(t, wgpu.ShaderStageVertex, cam.Entries[0].Visibility)
	assert.Equal(t, uint64(CameraUniformSize), cam.Entries[0].Buffer.MinBindingSize)
	assert.False(t, cam.Entries[0].Buffer.HasDynamicOffset)

	ent, err := EntityGroup.Describe()
	assert.NoError(t, err)
	assert.Len(t, ent.Entries, 1)
	assert.Equal(t, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment, ent.Entries[0].Visibility)
	assert.Equal(t, uint64(EntityUniformSize), ent.Entries[0].Buffer.MinBindingSize)
	assert.True(t, ent.Entries[0].Buffer.HasDynamicOffset)

	mat, err := MaterialGroup.Describe()
	assert.NoError(t, err)
	assert.Len(t, mat.Entries, 2)
	assert.Equal(t, wgpu.TextureSampleTypeFloat, mat.Entries[0].Texture.SampleType)
	assert.Equal(t, wgpu.TextureViewDimension2D, mat.Entries[0].Texture.ViewDimension)
	assert.Equal(t, wgpu.SamplerBindingTypeFiltering, mat.Entries[1].Sampler.Type)
	for _, e := range mat.Entries {
		assert.Equal(t, wgpu.ShaderStageFragment, e.Visibility)
	}
}

func TestBindGroupDescribeOutOfRange(t *testing.T) {
	for _, gi := range []BindGroupIndex{-1, NumBindGroups, NumBindGroups + 5} {
		desc, err := gi.Describe()
		assert.Nil(t, desc)
		assert.ErrorIs(t, err, ErrConfiguration)
	}
}

func TestBindGroupNames(t *testing.T) {
	assert.Equal(t, "camera", CameraGroup.String())
	assert.Equal(t, "entity", EntityGroup.String())
	assert.Equal(t, "material", MaterialGroup.String())
}
