// Copyright (c) 2025, The Helia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package helia is the rendering core of the Helia engine, built on WebGPU
// via github.com/cogentcore/webgpu/wgpu.
//
// Rendering uses a fixed, layered binding model with three bind groups,
// ordered from least to most frequently rebound:
//
//   - [CameraGroup] (0): the camera view-projection uniform, bound once
//     per frame.
//   - [EntityGroup] (1): per-entity uniforms (model matrix, color, UV
//     offset/scale), stored in a single dynamically-offset uniform buffer
//     and rebound per draw at a new offset.
//   - [MaterialGroup] (2): the material texture and sampler, rebound only
//     when the material changes between draws.
//
// The [Renderer] drives frames through a small state machine:
// BeginFrame acquires the target texture and opens a render pass,
// Draw records one entity, and EndFrame submits and presents.
// Both window [Surface] and offscreen [RenderTexture] targets are
// supported; the latter allows rendered frames to be read back for
// testing.
package helia
