// Copyright (c) 2025, The Helia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package helia

import (
	"image"
	"image/color"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testScene bundles the offscreen rendering setup shared by the
// renderer tests: a software GPU, a RenderTexture target, and a
// renderer with an orthographic unit camera so a unit quad at the
// origin exactly covers the viewport.
type testScene struct {
	gp  *GPU
	dev *Device
	rt  *RenderTexture
	rr  *Renderer
	sh  *Shader
	ms  *Mesh
}

func newTestScene(t *testing.T, sz image.Point, depthFmt Types) *testScene {
	ts := &testScene{}
	var err error
	ts.gp, ts.dev, err = NoDisplayGPU()
	require.NoError(t, err)
	ts.rt = NewRenderTexture(ts.gp, ts.dev, sz, depthFmt)
	ts.rr, err = NewRenderer(ts.gp, ts.rt)
	require.NoError(t, err)
	ts.rr.Camera.Projection = Orthographic
	ts.rr.Camera.Size = math32.Vec2(1, 1)
	ts.sh, err = NewUnlitTexturedShader(ts.dev, false)
	require.NoError(t, err)
	ts.ms, err = NewQuadMesh(ts.dev, "quad", 1, 1, math32.Vec2(0, 0))
	require.NoError(t, err)
	t.Cleanup(func() {
		ts.ms.Release()
		ts.sh.Release()
		ts.rr.Release()
		ts.rt.Release()
		ts.dev.Release()
		ts.gp.Release()
	})
	return ts
}

// solidMaterial returns a material over a 2x2 single-color texture.
func (ts *testScene) solidMaterial(t *testing.T, name string, c color.RGBA) *Material {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := range img.Pix {
		switch i % 4 {
		case 0:
			img.Pix[i] = c.R
		case 1:
			img.Pix[i] = c.G
		case 2:
			img.Pix[i] = c.B
		case 3:
			img.Pix[i] = c.A
		}
	}
	tx := NewTexture(ts.dev)
	tx.Name = name
	require.NoError(t, tx.SetFromGoImage(img))
	mt, err := NewMaterial(ts.dev, ts.rr.MaterialLayout(), name, ts.sh, tx)
	require.NoError(t, err)
	t.Cleanup(func() {
		mt.Release()
		tx.Release()
	})
	return mt
}

func TestRenderWhiteQuad(t *testing.T) {
	t.Skip("Need software GPU on CI")
	ts := newTestScene(t, image.Point{16, 16}, Depth32)
	ts.rr.Camera.ClearColor = color.RGBA{255, 0, 0, 255}
	mt := ts.solidMaterial(t, "white", color.RGBA{255, 255, 255, 255})
	en := NewEntity(ts.ms, mt)

	require.NoError(t, ts.rr.BeginFrame())
	require.NoError(t, ts.rr.Draw(en))
	require.NoError(t, ts.rr.EndFrame())

	img, err := ts.rt.ReadGoImage()
	require.NoError(t, err)
	white := color.RGBA{255, 255, 255, 255}
	for _, pt := range []image.Point{{0, 0}, {8, 8}, {15, 15}, {15, 0}} {
		assert.Equal(t, white, img.RGBAAt(pt.X, pt.Y), "pixel %v", pt)
	}
}

func TestClearColorOnly(t *testing.T) {
	t.Skip("Need software GPU on CI")
	ts := newTestScene(t, image.Point{8, 8}, Depth32)
	clear := color.RGBA{0, 0, 255, 255}
	ts.rr.Camera.ClearColor = clear

	require.NoError(t, ts.rr.BeginFrame())
	require.NoError(t, ts.rr.EndFrame())

	img, err := ts.rt.ReadGoImage()
	require.NoError(t, err)
	assert.Equal(t, clear, img.RGBAAt(4, 4))
	assert.Equal(t, 0, ts.rr.Stats.Draws)
	assert.Equal(t, 0, ts.rr.Stats.CameraUploads)
}

func TestDrawOrder(t *testing.T) {
	t.Skip("Need software GPU on CI")
	// without a depth buffer, the later opaque draw wins
	ts := newTestScene(t, image.Point{8, 8}, UndefinedType)
	red := NewEntity(ts.ms, ts.solidMaterial(t, "red", color.RGBA{255, 0, 0, 255}))
	green := NewEntity(ts.ms, ts.solidMaterial(t, "green", color.RGBA{0, 255, 0, 255}))

	require.NoError(t, ts.rr.BeginFrame())
	require.NoError(t, ts.rr.Draw(red))
	require.NoError(t, ts.rr.Draw(green))
	require.NoError(t, ts.rr.EndFrame())

	img, err := ts.rt.ReadGoImage()
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{0, 255, 0, 255}, img.RGBAAt(4, 4))
}

func TestRebindStats(t *testing.T) {
	t.Skip("Need software GPU on CI")
	ts := newTestScene(t, image.Point{8, 8}, Depth32)
	a := NewEntity(ts.ms, ts.solidMaterial(t, "a", color.RGBA{255, 255, 255, 255}))
	b := NewEntity(ts.ms, ts.solidMaterial(t, "b", color.RGBA{128, 128, 128, 255}))

	// sorted by material: one bind per material
	require.NoError(t, ts.rr.BeginFrame())
	for _, en := range []*Entity{a, a, b, b} {
		require.NoError(t, ts.rr.Draw(en))
	}
	require.NoError(t, ts.rr.EndFrame())
	assert.Equal(t, 4, ts.rr.Stats.Draws)
	assert.Equal(t, 1, ts.rr.Stats.CameraUploads)
	assert.Equal(t, 1, ts.rr.Stats.PipelineBinds)
	assert.Equal(t, 2, ts.rr.Stats.MaterialBinds)
	assert.Equal(t, 1, ts.rr.Stats.MeshBinds)

	// interleaved: every draw rebinds the material
	require.NoError(t, ts.rr.BeginFrame())
	for _, en := range []*Entity{a, b, a, b} {
		require.NoError(t, ts.rr.Draw(en))
	}
	require.NoError(t, ts.rr.EndFrame())
	assert.Equal(t, 4, ts.rr.Stats.MaterialBinds)
	assert.Equal(t, 1, ts.rr.Stats.CameraUploads)
}

func TestRendererStateMachine(t *testing.T) {
	t.Skip("Need software GPU on CI")
	ts := newTestScene(t, image.Point{8, 8}, Depth32)
	mt := ts.solidMaterial(t, "white", color.RGBA{255, 255, 255, 255})
	en := NewEntity(ts.ms, mt)

	// operations outside a frame fail with a configuration error
	assert.ErrorIs(t, ts.rr.Draw(en), ErrConfiguration)
	assert.ErrorIs(t, ts.rr.EndFrame(), ErrConfiguration)

	require.NoError(t, ts.rr.BeginFrame())
	assert.ErrorIs(t, ts.rr.BeginFrame(), ErrConfiguration)
	assert.ErrorIs(t, ts.rr.Draw(&Entity{}), ErrConfiguration)
	require.NoError(t, ts.rr.Draw(en))
	require.NoError(t, ts.rr.EndFrame())

	// the renderer is ready again after a full frame
	require.NoError(t, ts.rr.BeginFrame())
	require.NoError(t, ts.rr.EndFrame())

	var zero Renderer
	assert.ErrorIs(t, zero.BeginFrame(), ErrInitialization)
}

func TestResizeIdempotent(t *testing.T) {
	t.Skip("Need software GPU on CI")
	ts := newTestScene(t, image.Point{8, 8}, Depth32)
	frame := ts.rt.Frames[0]

	// same size: no reallocation
	ts.rr.SetSize(image.Point{8, 8})
	assert.Same(t, frame, ts.rt.Frames[0])

	// new size: frames and depth buffer follow
	ts.rr.SetSize(image.Point{32, 16})
	assert.Equal(t, image.Point{32, 16}, ts.rt.Format.Size)
	assert.NotSame(t, frame, ts.rt.Frames[0])

	require.NoError(t, ts.rr.BeginFrame())
	require.NoError(t, ts.rr.EndFrame())
	img, err := ts.rt.ReadGoImage()
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 32, 16), img.Bounds())
}

func TestAbandonedFrameRecovery(t *testing.T) {
	t.Skip("Need software GPU on CI")
	ts := newTestScene(t, image.Point{8, 8}, Depth32)
	mt := ts.solidMaterial(t, "white", color.RGBA{255, 255, 255, 255})
	en := NewEntity(ts.ms, mt)

	// a frame abandoned mid-recording must release the acquired
	// target texture and leave the renderer ready
	require.NoError(t, ts.rr.BeginFrame())
	require.NoError(t, ts.rr.Draw(en))
	ts.rr.abandonFrame()
	assert.Equal(t, RendererReady, ts.rr.state)

	// the next frame starts cleanly and renders normally
	require.NoError(t, ts.rr.BeginFrame())
	require.NoError(t, ts.rr.Draw(en))
	require.NoError(t, ts.rr.EndFrame())
	img, err := ts.rt.ReadGoImage()
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, img.RGBAAt(4, 4))
}

func TestShaderSharedAcrossTargets(t *testing.T) {
	t.Skip("Need software GPU on CI")
	ts := newTestScene(t, image.Point{8, 8}, Depth32)
	mt := ts.solidMaterial(t, "white", color.RGBA{255, 255, 255, 255})
	en := NewEntity(ts.ms, mt)

	// second renderer on a target without a depth buffer, sharing the
	// same shading program: the pipeline must be rebuilt per target
	rt2 := NewRenderTexture(ts.gp, ts.dev, image.Point{8, 8}, UndefinedType)
	rr2, err := NewRenderer(ts.gp, rt2)
	require.NoError(t, err)
	rr2.Camera.Projection = Orthographic
	rr2.Camera.Size = math32.Vec2(1, 1)
	t.Cleanup(func() {
		rr2.Release()
		rt2.Release()
	})
	mt2, err := NewMaterial(ts.dev, rr2.MaterialLayout(), "white2", ts.sh, mt.Texture)
	require.NoError(t, err)
	t.Cleanup(mt2.Release)
	en2 := NewEntity(ts.ms, mt2)

	frame := func(rr *Renderer, en *Entity) {
		require.NoError(t, rr.BeginFrame())
		require.NoError(t, rr.Draw(en))
		require.NoError(t, rr.EndFrame())
	}
	// alternate targets so a stale pipeline would surface immediately
	frame(ts.rr, en)
	frame(rr2, en2)
	frame(ts.rr, en)

	white := color.RGBA{255, 255, 255, 255}
	img, err := ts.rt.ReadGoImage()
	require.NoError(t, err)
	assert.Equal(t, white, img.RGBAAt(4, 4))
	img2, err := rt2.ReadGoImage()
	require.NoError(t, err)
	assert.Equal(t, white, img2.RGBAAt(4, 4))
}

func TestEntityArenaGrowth(t *testing.T) {
	t.Skip("Need software GPU on CI")
	ts := newTestScene(t, image.Point{8, 8}, Depth32)
	mt := ts.solidMaterial(t, "white", color.RGBA{255, 255, 255, 255})
	en := NewEntity(ts.ms, mt)

	// draw more entities than the arena's starting capacity so it
	// grows mid-frame
	require.NoError(t, ts.rr.BeginFrame())
	for range entityArenaStartCapacity * 3 {
		require.NoError(t, ts.rr.Draw(en))
	}
	require.NoError(t, ts.rr.EndFrame())
	assert.Equal(t, entityArenaStartCapacity*3, ts.rr.Stats.Draws)

	img, err := ts.rt.ReadGoImage()
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, img.RGBAAt(4, 4))
}
