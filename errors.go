// Copyright (c) 2025, The Helia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package helia

import (
	"errors"
	"fmt"
)

// The error categories used throughout the package. Callers can test for
// them with [errors.Is] on any error returned from renderer operations.
var (
	// ErrConfiguration indicates caller misuse: an invalid size, a bind
	// group index outside the fixed layout, or an operation invoked in
	// the wrong renderer state. These are programming errors and are
	// never retried internally.
	ErrConfiguration = errors.New("helia: invalid configuration")

	// ErrInitialization indicates that the GPU instance, adapter, or
	// device could not be acquired. Not recoverable.
	ErrInitialization = errors.New("helia: initialization failed")

	// ErrSurfaceLost indicates the surface texture could not be acquired
	// even after reconfiguring the surface once. The frame is dropped;
	// the renderer remains usable.
	ErrSurfaceLost = errors.New("helia: surface lost")

	// ErrFrameSubmission indicates command submission or presentation
	// failed. The frame is dropped; the renderer remains usable.
	ErrFrameSubmission = errors.New("helia: frame submission failed")
)

func configErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}

func initErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInitialization, fmt.Sprintf(format, args...))
}
