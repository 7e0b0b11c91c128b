// Copyright (c) 2025, The Helia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package helia

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
)

// clipDepth projects a world point through the camera and returns the
// normalized device depth z/w.
func clipDepth(cm *Camera, pt math32.Vector3) float32 {
	vp := cm.ViewProjectionMatrix()
	v := math32.Vector4{X: pt.X, Y: pt.Y, Z: pt.Z, W: 1}.MulMatrix4(vp)
	return v.Z / v.W
}

func TestCameraDefaults(t *testing.T) {
	cm := NewCamera()
	assert.Equal(t, math32.Vec3(0, 0, 2), cm.Eye)
	assert.Equal(t, float32(60), cm.FOV)
	assert.Equal(t, float32(0.01), cm.Near)
	assert.Equal(t, float32(1000), cm.Far)
	assert.Equal(t, Perspective, cm.Projection)
}

func TestPerspectiveDepthRange(t *testing.T) {
	cm := NewCamera()
	// default camera at (0,0,2) looking down -Z: near plane center
	// is at z = 2 - Near and must map to clip depth 0.
	near := clipDepth(cm, math32.Vec3(0, 0, 2-cm.Near))
	assert.InDelta(t, 0, near, 1e-5)
	far := clipDepth(cm, math32.Vec3(0, 0, 2-cm.Far))
	assert.InDelta(t, 1, far, 1e-4)
}

func TestOrthographicDepthRange(t *testing.T) {
	cm := NewCamera()
	cm.Projection = Orthographic
	cm.Size = math32.Vec2(4, 3)
	near := clipDepth(cm, math32.Vec3(0, 0, 2-cm.Near))
	assert.InDelta(t, 0, near, 1e-5)
	far := clipDepth(cm, math32.Vec3(0, 0, 2-cm.Far))
	assert.InDelta(t, 1, far, 1e-4)
}

func TestOrthographicExtents(t *testing.T) {
	cm := NewCamera()
	cm.Projection = Orthographic
	cm.Size = math32.Vec2(10, 10)
	cm.Far = 100
	vp := cm.ViewProjectionMatrix()
	// view volume edge at x = +5 maps to clip x = +1
	v := math32.Vector4{X: 5, Y: 0, Z: 0, W: 1}.MulMatrix4(vp)
	assert.InDelta(t, 1, v.X/v.W, 1e-5)
	// and the center stays centered
	c := math32.Vector4{X: 0, Y: 0, Z: 0, W: 1}.MulMatrix4(vp)
	assert.InDelta(t, 0, c.X/c.W, 1e-6)
	assert.InDelta(t, 0, c.Y/c.W, 1e-6)
}

func TestViewMatrixLooksAtTarget(t *testing.T) {
	cm := NewCamera()
	cm.Eye = math32.Vec3(3, 4, 5)
	cm.Target = math32.Vec3(1, 1, 1)
	view := cm.ViewMatrix()
	// the target must land on the view-space -Z axis
	v := math32.Vector4{X: 1, Y: 1, Z: 1, W: 1}.MulMatrix4(view)
	assert.InDelta(t, 0, v.X, 1e-5)
	assert.InDelta(t, 0, v.Y, 1e-5)
	assert.Less(t, v.Z, float32(0))
	// and the eye on the origin
	e := math32.Vector4{X: 3, Y: 4, Z: 5, W: 1}.MulMatrix4(view)
	assert.InDelta(t, 0, e.X, 1e-5)
	assert.InDelta(t, 0, e.Y, 1e-5)
	assert.InDelta(t, 0, e.Z, 1e-5)
}
