// Copyright (c) 2025, The Helia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package helia

import (
	_ "embed"

	"cogentcore.org/core/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed shaders/unlit_textured.wgsl
var unlitTexturedWGSL string

// Shader is a shading program: a WGSL module with vs_main and fs_main
// entry points over the fixed three-group binding layout, and the
// render pipeline compiled from it for a particular render target.
type Shader struct {
	// Name of the program, for debugging.
	Name string

	// AlphaBlend selects alpha blending instead of opaque output.
	// Alpha-blended programs do not write depth, so entities drawn
	// with them must be submitted back to front.
	AlphaBlend bool

	module   *wgpu.ShaderModule
	pipeline *wgpu.RenderPipeline

	// inputs the pipeline was built with, so using the program with a
	// different renderer or target format rebuilds it
	builtLayout *wgpu.PipelineLayout
	builtFormat wgpu.TextureFormat
	builtDepth  wgpu.TextureFormat
}

// NewShader returns a new shading program compiled from the given
// WGSL source, which must declare vs_main and fs_main entry points
// over the fixed bind group layout (see [BindGroupIndex]).
// The render pipeline is built when the program is first used by a
// [Renderer].
func NewShader(dev *Device, name, wgsl string, alphaBlend bool) (*Shader, error) {
	mod, err := dev.Device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          name,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: wgsl},
	})
	if errors.Log(err) != nil {
		return nil, err
	}
	return &Shader{Name: name, AlphaBlend: alphaBlend, module: mod}, nil
}

// NewUnlitTexturedShader returns the built-in program that draws
// geometry with a texture modulated by the entity color, without
// lighting. The alphaBlend variant blends over prior output instead
// of writing depth.
func NewUnlitTexturedShader(dev *Device, alphaBlend bool) (*Shader, error) {
	name := "unlit-textured"
	if alphaBlend {
		name = "unlit-textured-alpha"
	}
	return NewShader(dev, name, unlitTexturedWGSL, alphaBlend)
}

// RequiresOrdering returns true if entities drawn with this program
// must be submitted in back-to-front order for correct output.
func (sh *Shader) RequiresOrdering() bool {
	return sh.AlphaBlend
}

// alphaBlendState blends the fragment over the prior output using the
// fragment's alpha, accumulating alpha as One, OneMinusSrcAlpha.
var alphaBlendState = wgpu.BlendState{
	Color: wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorSrcAlpha,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		Operation: wgpu.BlendOperationAdd,
	},
	Alpha: wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorOne,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		Operation: wgpu.BlendOperationAdd,
	},
}

// depthFormat returns the depth buffer format of the render target,
// or TextureFormatUndefined if it has none.
func depthFormat(rd *Render) wgpu.TextureFormat {
	if !rd.HasDepth() {
		return wgpu.TextureFormatUndefined
	}
	return rd.Depth.Format.Format
}

// pipelineCurrent returns true if the existing pipeline was built for
// the given pipeline layout and render target configuration.
func (sh *Shader) pipelineCurrent(lay *wgpu.PipelineLayout, rd *Render) bool {
	return sh.pipeline != nil && sh.builtLayout == lay &&
		sh.builtFormat == rd.Format.Format && sh.builtDepth == depthFormat(rd)
}

// config builds the render pipeline for this program against the
// given pipeline layout and render target configuration.
// Opaque programs write depth; alpha-blended ones test but do not
// write it. Replaces any existing pipeline.
func (sh *Shader) config(dev *Device, lay *wgpu.PipelineLayout, rd *Render) error {
	if sh.pipeline != nil {
		sh.pipeline.Release()
		sh.pipeline = nil
	}
	blend := &wgpu.BlendStateReplace
	if sh.AlphaBlend {
		blend = &alphaBlendState
	}
	var depth *wgpu.DepthStencilState
	if rd.HasDepth() {
		depth = &wgpu.DepthStencilState{
			Format:            rd.Depth.Format.Format,
			DepthWriteEnabled: !sh.AlphaBlend,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		}
	}
	pl, err := dev.Device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  sh.Name,
		Layout: lay,
		Vertex: wgpu.VertexState{
			Module:     sh.module,
			EntryPoint: "vs_main",
			Buffers:    []wgpu.VertexBufferLayout{VertexLayout()},
		},
		Fragment: &wgpu.FragmentState{
			Module:     sh.module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    rd.Format.Format,
				Blend:     blend,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeBack,
		},
		DepthStencil: depth,
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if errors.Log(err) != nil {
		return err
	}
	sh.pipeline = pl
	sh.builtLayout = lay
	sh.builtFormat = rd.Format.Format
	sh.builtDepth = depthFormat(rd)
	return nil
}

func (sh *Shader) Release() {
	if sh.pipeline != nil {
		sh.pipeline.Release()
		sh.pipeline = nil
	}
	if sh.module != nil {
		sh.module.Release()
		sh.module = nil
	}
}
