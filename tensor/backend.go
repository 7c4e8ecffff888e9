// Copyright 2025 Ember ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/ember-ml/ember/internal/tensor"
)

// Backend is the capability interface every device backend implements.
// A tensor is bound to one backend; operations dispatch through this
// interface, so higher layers (including autodiff) never depend on a
// concrete engine.
type Backend = tensor.Backend

// RawTensor is the low-level dtype-erased tensor backends operate on.
// Buffers are reference counted with copy-on-write semantics: backends
// may reuse a buffer in place only while it has a single reference.
type RawTensor = tensor.RawTensor

// MockBackend is a call-recording backend for tests.
type MockBackend = tensor.MockBackend

// NewMockBackend creates a call-recording backend for tests.
func NewMockBackend() *MockBackend {
	return tensor.NewMockBackend()
}
