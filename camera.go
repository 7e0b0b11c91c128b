// Copyright (c) 2025, The Helia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package helia

import (
	"image/color"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/colors"
	"cogentcore.org/core/math32"
	"github.com/cogentcore/webgpu/wgpu"
)

// Projections are the supported camera projection types.
type Projections int32

const (
	// Perspective projects with a vertical field of view,
	// for 3D content.
	Perspective Projections = iota

	// Orthographic projects a fixed world-unit view volume with no
	// perspective, for 2D and sprite content.
	Orthographic
)

// Camera specifies the view and projection of the scene.
// Its view-projection matrix is uploaded to [CameraGroup] once per
// frame, on the first draw after BeginFrame.
type Camera struct {
	// Eye is the position of the camera in world coordinates.
	Eye math32.Vector3

	// Target is the world position the camera is looking at.
	Target math32.Vector3

	// Up is the up direction for the camera. Defaults to positive Y.
	Up math32.Vector3

	// FOV is the vertical field of view in degrees,
	// for Perspective projection.
	FOV float32

	// Aspect is the width / height aspect ratio.
	Aspect float32

	// Near and Far are the clipping plane distances.
	Near float32
	Far  float32

	// Size is the world-unit width and height of the view volume,
	// centered on the view axis, for Orthographic projection.
	Size math32.Vector2

	// ClearColor is the color the framebuffer is cleared to at the
	// start of each frame rendered with this camera.
	ClearColor color.Color

	// Projection selects Perspective or Orthographic projection.
	Projection Projections
}

// NewCamera returns a new perspective camera with default parameters,
// at (0, 0, 2) looking at the origin.
func NewCamera() *Camera {
	cm := &Camera{}
	cm.Defaults()
	return cm
}

func (cm *Camera) Defaults() {
	cm.Eye = math32.Vec3(0, 0, 2)
	cm.Target = math32.Vec3(0, 0, 0)
	cm.Up = math32.Vec3(0, 1, 0)
	cm.FOV = 60
	cm.Aspect = 1
	cm.Near = 0.01
	cm.Far = 1000
	cm.Size = math32.Vec2(1, 1)
	cm.ClearColor = colors.Black
	cm.Projection = Perspective
}

// depthRange maps clip-space depth from the OpenGL [-1, 1] convention
// produced by the projection matrices to the WebGPU [0, 1] range:
// z' = 0.5*z + 0.5*w.
var depthRange = func() math32.Matrix4 {
	var m math32.Matrix4
	m.Set(
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 0.5, 0.5,
		0, 0, 0, 1,
	)
	return m
}()

// ViewMatrix returns the world-to-camera view matrix, the inverse of
// the camera pose at Eye looking at Target with the Up direction.
func (cm *Camera) ViewMatrix() *math32.Matrix4 {
	var lookq math32.Quat
	lookq.SetFromRotationMatrix(math32.NewLookAt(cm.Eye, cm.Target, cm.Up))
	scale := math32.Vec3(1, 1, 1)
	var cview math32.Matrix4
	cview.SetTransform(cm.Eye, lookq, scale)
	view, _ := cview.Inverse()
	return view
}

// ProjectionMatrix returns the projection matrix per the Projection
// type, in the OpenGL depth convention (see ViewProjectionMatrix for
// the WebGPU-adjusted result).
func (cm *Camera) ProjectionMatrix() *math32.Matrix4 {
	var proj math32.Matrix4
	switch cm.Projection {
	case Orthographic:
		proj.SetOrthographic(cm.Size.X, cm.Size.Y, cm.Near, cm.Far)
	default:
		proj.SetPerspective(cm.FOV, cm.Aspect, cm.Near, cm.Far)
	}
	return &proj
}

// ViewProjectionMatrix returns the full camera matrix uploaded to the
// shader: depth-range adjustment * projection * view. A point at the
// center of the near plane maps to clip depth 0.
func (cm *Camera) ViewProjectionMatrix() *math32.Matrix4 {
	var vp, out math32.Matrix4
	vp.MulMatrices(cm.ProjectionMatrix(), cm.ViewMatrix())
	out.MulMatrices(&depthRange, &vp)
	return &out
}

// cameraBindGroup holds the camera uniform buffer and its bind group
// (group 0), with the view-projection matrix as its only content.
type cameraBindGroup struct {
	buffer    *wgpu.Buffer
	bindGroup *wgpu.BindGroup
	device    Device
}

func newCameraBindGroup(dev *Device, layout *wgpu.BindGroupLayout) (*cameraBindGroup, error) {
	cb := &cameraBindGroup{device: *dev}
	buf, err := dev.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "camera-uniforms",
		Size:  CameraUniformSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if errors.Log(err) != nil {
		return nil, err
	}
	cb.buffer = buf
	bg, err := dev.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "camera-bind-group",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{{
			Binding: 0,
			Buffer:  buf,
			Offset:  0,
			Size:    wgpu.WholeSize,
		}},
	})
	if errors.Log(err) != nil {
		cb.Release()
		return nil, err
	}
	cb.bindGroup = bg
	return cb, nil
}

// update writes the camera view-projection matrix to the uniform buffer.
func (cb *cameraBindGroup) update(cm *Camera) {
	vp := cm.ViewProjectionMatrix()
	cb.device.Queue.WriteBuffer(cb.buffer, 0, wgpu.ToBytes([]math32.Matrix4{*vp}))
}

func (cb *cameraBindGroup) Release() {
	if cb.bindGroup != nil {
		cb.bindGroup.Release()
		cb.bindGroup = nil
	}
	if cb.buffer != nil {
		cb.buffer.Release()
		cb.buffer = nil
	}
}
