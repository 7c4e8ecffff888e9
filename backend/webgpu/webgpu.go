// Copyright 2025 Ember ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides the GPU backend for tensor operations, built
// on WebGPU compute shaders via zero-CGO bindings.
//
// Float32 element-wise math, scalar ops, and matrix multiplication run
// on the GPU; the remaining catalog entries run on an embedded host
// engine so the full capability interface is always available.
package webgpu

import (
	internalwebgpu "github.com/ember-ml/ember/internal/backend/webgpu"
	"github.com/ember-ml/ember/tensor"
)

// Backend is the WebGPU backend implementation.
type Backend = internalwebgpu.Backend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a WebGPU backend. Returns an error when the native
// library or a GPU adapter is unavailable.
//
// Example:
//
//	backend, err := webgpu.New()
//	if err != nil {
//	    backend := cpu.New() // fall back to CPU
//	    _ = backend
//	}
func New() (*Backend, error) {
	return internalwebgpu.New()
}

// IsAvailable reports whether a WebGPU adapter can be acquired.
func IsAvailable() bool {
	return internalwebgpu.IsAvailable()
}
