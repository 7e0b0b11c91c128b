// Copyright (c) 2025, The Helia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package helia

import (
	"fmt"
	"image"

	"cogentcore.org/core/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// RenderStates are the states of the [Renderer] frame lifecycle.
type RenderStates int32

const (
	// RendererUninitialized is the zero state, before NewRenderer.
	RendererUninitialized RenderStates = iota

	// RendererReady means the renderer is between frames:
	// BeginFrame is the only valid frame operation.
	RendererReady

	// RendererFrameInProgress means a frame has begun: Draw and
	// EndFrame are valid, BeginFrame is not.
	RendererFrameInProgress
)

var renderStateNames = map[RenderStates]string{
	RendererUninitialized:   "uninitialized",
	RendererReady:           "ready",
	RendererFrameInProgress: "frame-in-progress",
}

func (rs RenderStates) String() string {
	if nm, ok := renderStateNames[rs]; ok {
		return nm
	}
	return fmt.Sprintf("RenderStates(%d)", int32(rs))
}

// RenderStats counts the work recorded in the current or most
// recently completed frame. Reset by BeginFrame.
type RenderStats struct {
	// Draws is the number of entities drawn.
	Draws int

	// CameraUploads is the number of camera uniform uploads:
	// 1 for any frame with at least one draw, else 0.
	CameraUploads int

	// PipelineBinds, MaterialBinds, and MeshBinds count actual state
	// changes recorded: consecutive draws sharing a pipeline,
	// material, or mesh do not rebind it.
	PipelineBinds int
	MaterialBinds int
	MeshBinds     int
}

// Renderer draws entities to a [RenderTarget] through a
// BeginFrame / Draw / EndFrame cycle. It owns the fixed bind group
// layouts, the camera and entity uniform buffers, and the frame
// command recording state. The camera uniforms are uploaded once per
// frame on the first draw; pipeline, material, and mesh bindings are
// only re-recorded when they change between draws.
type Renderer struct {
	// Camera provides the view-projection matrix and the frame
	// clear color. Its aspect ratio is synced to the target size
	// at BeginFrame.
	Camera *Camera

	// Stats has binding and draw counts for the current or most
	// recent frame.
	Stats RenderStats

	// pointer to gpu, for alignment limits
	GPU *GPU

	// target we render to; not owned
	target RenderTarget

	device Device
	state  RenderStates

	layouts        []*wgpu.BindGroupLayout
	pipelineLayout *wgpu.PipelineLayout

	camera *cameraBindGroup

	// entity uniform arenas, alternated by frame parity so that the
	// arena for a frame is not rewritten while the prior frame may
	// still be in flight.
	entity [2]*entityBindGroup
	parity int

	// recording state for the frame in progress
	cmd            *wgpu.CommandEncoder
	pass           *wgpu.RenderPassEncoder
	cameraUploaded bool
	curPipeline    *wgpu.RenderPipeline
	curMaterial    *Material
	curMesh        *Mesh
}

// NewRenderer returns a new renderer drawing to the given target,
// with a default perspective camera. The target is not owned and
// must outlive the renderer.
func NewRenderer(gp *GPU, target RenderTarget) (*Renderer, error) {
	if gp == nil || target == nil {
		return nil, errors.Log(initErrorf("nil gpu or render target"))
	}
	rr := &Renderer{GPU: gp, target: target, device: *target.Device()}
	rr.Camera = NewCamera()

	lays, err := bindGroupLayouts(&rr.device)
	if err != nil {
		return nil, err
	}
	rr.layouts = lays
	pl, err := rr.device.Device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "helia-pipeline-layout",
		BindGroupLayouts: lays,
	})
	if errors.Log(err) != nil {
		rr.Release()
		return nil, err
	}
	rr.pipelineLayout = pl

	cb, err := newCameraBindGroup(&rr.device, lays[CameraGroup])
	if err != nil {
		rr.Release()
		return nil, err
	}
	rr.camera = cb
	for i := range rr.entity {
		eb, err := newEntityBindGroup(gp, &rr.device, lays[EntityGroup])
		if err != nil {
			rr.Release()
			return nil, err
		}
		rr.entity[i] = eb
	}
	rr.state = RendererReady
	return rr, nil
}

// Target returns the render target this renderer draws to.
func (rr *Renderer) Target() RenderTarget { return rr.target }

// MaterialLayout returns the bind group layout for material texture
// bindings (group 2), for use with [NewMaterial].
func (rr *Renderer) MaterialLayout() *wgpu.BindGroupLayout {
	return rr.layouts[MaterialGroup]
}

// BeginFrame acquires the target's current texture and starts
// recording a frame, clearing the framebuffer to the camera's clear
// color and the depth buffer to the far plane. If the target surface
// has been lost and could not be restored, it returns an error
// wrapping [ErrSurfaceLost]: drop the frame and call BeginFrame again
// next frame; the renderer remains ready.
func (rr *Renderer) BeginFrame() error {
	switch rr.state {
	case RendererUninitialized:
		return errors.Log(initErrorf("renderer not initialized"))
	case RendererFrameInProgress:
		return errors.Log(configErrorf("BeginFrame called with frame already in progress"))
	}
	rd := rr.target.Render()
	sz := rd.Format.Size
	if sz.Y > 0 {
		rr.Camera.Aspect = float32(sz.X) / float32(sz.Y)
	}
	rd.ClearColor = rr.Camera.ClearColor

	view, err := rr.target.GetCurrentTexture()
	if err != nil {
		return err
	}
	cmd, err := rr.device.Device.CreateCommandEncoder(nil)
	if errors.Log(err) != nil {
		rr.target.Discard()
		return err
	}
	rr.cmd = cmd
	rr.pass = rd.BeginRenderPass(cmd, view)

	rr.Stats = RenderStats{}
	rr.parity = 1 - rr.parity
	rr.entity[rr.parity].beginFrame()
	rr.cameraUploaded = false
	rr.curPipeline = nil
	rr.curMaterial = nil
	rr.curMesh = nil
	rr.state = RendererFrameInProgress
	return nil
}

// Draw records one entity into the current frame. The camera uniforms
// are uploaded on the first draw of the frame; the entity's uniforms
// are written to the next slot of the per-frame uniform arena and
// bound via dynamic offset. Pipeline, material, and mesh are only
// rebound if they differ from the previous draw, so submitting draws
// sorted by material minimizes binding work. Entities using an
// alpha-blended program must be submitted back to front.
func (rr *Renderer) Draw(en *Entity) error {
	if rr.state != RendererFrameInProgress {
		return errors.Log(configErrorf("Draw called in state %v: frame not in progress", rr.state))
	}
	if en == nil || en.Mesh == nil || en.Material == nil {
		return errors.Log(configErrorf("Draw: entity must have a mesh and a material"))
	}
	mt := en.Material
	sh := mt.Shader

	if !rr.cameraUploaded {
		rr.camera.update(rr.Camera)
		rr.pass.SetBindGroup(uint32(CameraGroup), rr.camera.bindGroup, nil)
		rr.cameraUploaded = true
		rr.Stats.CameraUploads++
	}
	if !sh.pipelineCurrent(rr.pipelineLayout, rr.target.Render()) {
		if err := sh.config(&rr.device, rr.pipelineLayout, rr.target.Render()); err != nil {
			return err
		}
	}
	if sh.pipeline != rr.curPipeline {
		rr.pass.SetPipeline(sh.pipeline)
		rr.curPipeline = sh.pipeline
		rr.Stats.PipelineBinds++
	}
	if mt != rr.curMaterial {
		rr.pass.SetBindGroup(uint32(MaterialGroup), mt.bindGroup, nil)
		rr.curMaterial = mt
		rr.Stats.MaterialBinds++
	}
	if en.Mesh != rr.curMesh {
		en.Mesh.bindBuffers(rr.pass)
		rr.curMesh = en.Mesh
		rr.Stats.MeshBinds++
	}

	var eu EntityUniforms
	eu.SetFromEntity(en)
	eb := rr.entity[rr.parity]
	off, err := eb.push(&eu)
	if err != nil {
		return err
	}
	rr.pass.SetBindGroup(uint32(EntityGroup), eb.bindGroup, []uint32{off})
	rr.pass.DrawIndexed(en.Mesh.IndexCount, 1, 0, 0, 0)
	rr.Stats.Draws++
	return nil
}

// EndFrame finishes recording, submits the frame's commands to the
// queue, and presents the target. Uniform arena buffers replaced by
// mid-frame growth are released here, after submission. If submission
// fails, the frame is discarded (the acquired target texture is
// released without presenting) and the renderer returns to ready, so
// the next BeginFrame starts a fresh frame.
func (rr *Renderer) EndFrame() error {
	if rr.state != RendererFrameInProgress {
		return errors.Log(configErrorf("EndFrame called in state %v: no frame in progress", rr.state))
	}
	rr.pass.End()
	rr.pass.Release()
	rr.pass = nil

	cb, err := rr.cmd.Finish(nil)
	rr.cmd.Release()
	rr.cmd = nil
	if err != nil {
		rr.abandonFrame()
		return errors.Log(fmt.Errorf("%w: %v", ErrFrameSubmission, err))
	}
	rr.device.Queue.Submit(cb)
	cb.Release()
	rr.target.Present()
	rr.entity[rr.parity].releaseOld()
	rr.state = RendererReady
	return nil
}

// abandonFrame discards a frame that cannot be completed: any
// recording state is released, the acquired target texture is
// discarded without presenting, and the renderer returns to ready so
// the next BeginFrame starts cleanly.
func (rr *Renderer) abandonFrame() {
	if rr.pass != nil {
		rr.pass.End()
		rr.pass.Release()
		rr.pass = nil
	}
	if rr.cmd != nil {
		rr.cmd.Release()
		rr.cmd = nil
	}
	rr.target.Discard()
	rr.entity[rr.parity].releaseOld()
	rr.state = RendererReady
}

// SetSize resizes the render target; a no-op if the size is
// unchanged. The camera aspect ratio follows at the next BeginFrame.
// Not valid while a frame is in progress.
func (rr *Renderer) SetSize(size image.Point) {
	if rr.state == RendererFrameInProgress {
		errors.Log(configErrorf("SetSize called with frame in progress"))
		return
	}
	rr.target.SetSize(size)
}

func (rr *Renderer) Release() {
	if rr.state == RendererFrameInProgress && rr.target != nil {
		rr.abandonFrame()
	}
	if rr.pass != nil {
		rr.pass.Release()
		rr.pass = nil
	}
	if rr.cmd != nil {
		rr.cmd.Release()
		rr.cmd = nil
	}
	for i, eb := range rr.entity {
		if eb != nil {
			eb.Release()
			rr.entity[i] = nil
		}
	}
	if rr.camera != nil {
		rr.camera.Release()
		rr.camera = nil
	}
	if rr.pipelineLayout != nil {
		rr.pipelineLayout.Release()
		rr.pipelineLayout = nil
	}
	releaseBindGroupLayouts(rr.layouts)
	rr.state = RendererUninitialized
}
