// Copyright (c) 2025, The Helia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package helia

import (
	"cogentcore.org/core/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// Device holds the logical Device and associated Queue.
type Device struct {
	// Device is the logical device.
	Device *wgpu.Device

	// Queue is the command submission queue for this device.
	Queue *wgpu.Queue
}

// NewDevice returns a new device for the given GPU, requesting the
// WebGPU default limits. Returns an error wrapping [ErrInitialization]
// if the device cannot be created.
func NewDevice(gp *GPU) (*Device, error) {
	wdev, err := gp.Adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label:          "helia",
		RequiredLimits: &wgpu.RequiredLimits{Limits: wgpu.DefaultLimits()},
	})
	if err != nil {
		return nil, errors.Log(initErrorf("no device: %v", err))
	}
	return &Device{Device: wdev, Queue: wdev.GetQueue()}, nil
}

// WaitDone waits until the device is idle, i.e., all queued work
// has completed.
func (dv *Device) WaitDone() {
	if dv.Device == nil {
		return
	}
	dv.Device.Poll(true, nil)
}

func (dv *Device) Release() {
	if dv.Device == nil {
		return
	}
	dv.Device.Release()
	dv.Device = nil
	dv.Queue = nil
}
