// Copyright 2025 Ember ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides the public API for reverse-mode automatic
// differentiation in the Ember ML framework.
//
// A differentiable Tensor wraps a computation graph node. Forward
// operations run eagerly on the tensor's backend and record their
// provenance; Backward replays the recorded subgraph in reverse and
// returns a Gradients store keyed by node id. There is no global state:
// graphs live in the tensors that reference them.
//
// Example:
//
//	backend := cpu.New()
//	x, _ := autodiff.FromSlice([]float32{3}, tensor.Shape{1}, backend)
//	y, _ := autodiff.FromSlice([]float32{2}, tensor.Shape{1}, backend)
//	x.RequireGrad()
//	y.RequireGrad()
//
//	z := x.Mul(y).Sum()
//	grads, err := z.Backward()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	gx, _ := autodiff.GradOf(grads, x) // dz/dx = y = [2]
//	gy, _ := autodiff.GradOf(grads, y) // dz/dy = x = [3]
package autodiff

import (
	"github.com/ember-ml/ember/internal/autodiff"
	"github.com/ember-ml/ember/internal/tensor"
)

// DType is a constraint for tensor data types.
type DType = tensor.DType

// Backend is the capability interface gradients flow through.
type Backend = tensor.Backend

// Tensor is a differentiable tensor bound to a computation graph node.
type Tensor[T DType, B Backend] = autodiff.Tensor[T, B]

// Node is one vertex of the computation graph.
type Node = autodiff.Node

// Gradients is the result of one backward pass, keyed by node id.
type Gradients = autodiff.Gradients

// Sentinel errors; match with errors.Is.
var (
	// ErrMissingSeed: Backward on a non-scalar terminal without a seed.
	ErrMissingSeed = autodiff.ErrMissingSeed
	// ErrSeedShape: explicit seed does not match the terminal's shape.
	ErrSeedShape = autodiff.ErrSeedShape
	// ErrNoGradient: gradient lookup for a tensor outside the backward pass.
	ErrNoGradient = autodiff.ErrNoGradient
)

// FromSlice creates a leaf tensor from a Go slice. The leaf does not
// require grad until RequireGrad is called.
func FromSlice[T DType, B Backend](data []T, shape tensor.Shape, b B) (*Tensor[T, B], error) {
	return autodiff.FromSlice[T, B](data, shape, b)
}

// FromTensor wraps an existing eager tensor as a graph leaf.
func FromTensor[T DType, B Backend](t *tensor.Tensor[T, B]) *Tensor[T, B] {
	return autodiff.FromTensor(t)
}

// Zeros creates a leaf tensor filled with zeros.
func Zeros[T DType, B Backend](shape tensor.Shape, b B) *Tensor[T, B] {
	return autodiff.Zeros[T, B](shape, b)
}

// Ones creates a leaf tensor filled with ones.
func Ones[T DType, B Backend](shape tensor.Shape, b B) *Tensor[T, B] {
	return autodiff.Ones[T, B](shape, b)
}

// Randn creates a leaf tensor with standard normal values.
func Randn[T DType, B Backend](shape tensor.Shape, b B) *Tensor[T, B] {
	return autodiff.Randn[T, B](shape, b)
}

// GradOf looks up the gradient of t in g as a typed tensor.
// Returns ErrNoGradient if t has no recorded gradient.
func GradOf[T DType, B Backend](g *Gradients, t *Tensor[T, B]) (*tensor.Tensor[T, B], error) {
	return autodiff.GradOf(g, t)
}
