// Copyright (c) 2025, The Helia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package helia

import (
	"log/slog"

	"cogentcore.org/core/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// Debug enables verbose logging of adapter, device, and renderer activity.
var Debug = false

var theInstance *wgpu.Instance

// Instance returns the shared WebGPU instance, creating it on first call.
func Instance() *wgpu.Instance {
	if theInstance == nil {
		theInstance = wgpu.CreateInstance(nil)
	}
	return theInstance
}

// GPU represents the physical GPU hardware, holding the WebGPU adapter
// and its limits, which determine uniform buffer offset alignment
// among other constraints.
type GPU struct {
	// Instance is the shared WebGPU instance.
	Instance *wgpu.Instance

	// Adapter is the adapter for the physical GPU in use.
	Adapter *wgpu.Adapter

	// Limits are the adapter's supported limits.
	Limits wgpu.SupportedLimits
}

// NewGPU returns a new GPU with an adapter compatible with the given
// surface, which can be nil for offscreen-only rendering.
// Returns an error wrapping [ErrInitialization] if no adapter is available.
func NewGPU(sf *wgpu.Surface) (*GPU, error) {
	return newGPU(sf, false)
}

// NoDisplayGPU returns a GPU and Device usable without any display surface,
// using a fallback (software) adapter if no hardware adapter is available.
// This is what tests use for offscreen rendering.
func NoDisplayGPU() (*GPU, *Device, error) {
	gp, err := newGPU(nil, false)
	if err != nil {
		gp, err = newGPU(nil, true)
	}
	if err != nil {
		return nil, nil, err
	}
	dev, err := NewDevice(gp)
	if err != nil {
		return nil, nil, err
	}
	return gp, dev, nil
}

func newGPU(sf *wgpu.Surface, fallback bool) (*GPU, error) {
	gp := &GPU{Instance: Instance()}
	ad, err := gp.Instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface:    sf,
		ForceFallbackAdapter: fallback,
	})
	if err != nil {
		return nil, errors.Log(initErrorf("no suitable adapter: %v", err))
	}
	gp.Adapter = ad
	gp.Limits = ad.GetLimits()
	if Debug {
		slog.Info("helia: adapter acquired",
			"maxBindGroups", gp.Limits.Limits.MaxBindGroups,
			"uniformAlign", gp.Limits.Limits.MinUniformBufferOffsetAlignment)
	}
	return gp, nil
}

// UniformAlignment returns the required byte alignment for dynamic
// uniform buffer offsets on this GPU.
func (gp *GPU) UniformAlignment() int {
	return int(gp.Limits.Limits.MinUniformBufferOffsetAlignment)
}

// Release releases the adapter. Call after all devices are released.
func (gp *GPU) Release() {
	if gp.Adapter == nil {
		return
	}
	gp.Adapter.Release()
	gp.Adapter = nil
}

// MemSizeAlign returns the size aligned according to align byte increments,
// e.g., if align = 16 and size = 12, it returns 16.
func MemSizeAlign(size, align int) int {
	if size%align == 0 {
		return size
	}
	nb := size / align
	return (nb + 1) * align
}
