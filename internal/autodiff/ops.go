package autodiff

import (
	"github.com/ember-ml/ember/internal/autodiff/ops"
	"github.com/ember-ml/ember/internal/tensor"
)

// record wraps a forward result in a graph node. When no parent requires
// grad the result becomes a plain leaf: no descriptor is built and the
// parents are not linked, so untracked computation stays off the graph.
func record[T DType, B Backend](backend B, out *tensor.RawTensor, build func() ops.Operation, parents ...*Tensor[T, B]) *Tensor[T, B] {
	needsGrad := false
	for _, p := range parents {
		if p.node.requiresGrad {
			needsGrad = true
			break
		}
	}
	if !needsGrad {
		return &Tensor[T, B]{node: newLeaf(out, false), backend: backend}
	}

	nodes := make([]*Node, len(parents))
	for i, p := range parents {
		nodes[i] = p.node
	}
	return &Tensor[T, B]{node: newNode(out, build(), nodes...), backend: backend}
}

// Add performs element-wise addition with broadcasting.
func (t *Tensor[T, B]) Add(other *Tensor[T, B]) *Tensor[T, B] {
	a, b := t.node.value, other.node.value
	out := t.backend.Add(a, b)
	return record(t.backend, out, func() ops.Operation { return ops.NewAddOp(a, b) }, t, other)
}

// Sub performs element-wise subtraction with broadcasting.
func (t *Tensor[T, B]) Sub(other *Tensor[T, B]) *Tensor[T, B] {
	a, b := t.node.value, other.node.value
	out := t.backend.Sub(a, b)
	return record(t.backend, out, func() ops.Operation { return ops.NewSubOp(a, b) }, t, other)
}

// Mul performs element-wise multiplication with broadcasting.
func (t *Tensor[T, B]) Mul(other *Tensor[T, B]) *Tensor[T, B] {
	a, b := t.node.value, other.node.value
	out := t.backend.Mul(a, b)
	return record(t.backend, out, func() ops.Operation { return ops.NewMulOp(a, b) }, t, other)
}

// Div performs element-wise division with broadcasting.
func (t *Tensor[T, B]) Div(other *Tensor[T, B]) *Tensor[T, B] {
	a, b := t.node.value, other.node.value
	out := t.backend.Div(a, b)
	return record(t.backend, out, func() ops.Operation { return ops.NewDivOp(a, b) }, t, other)
}

// Neg returns the element-wise negation.
func (t *Tensor[T, B]) Neg() *Tensor[T, B] {
	out := t.backend.Neg(t.node.value)
	return record(t.backend, out, func() ops.Operation { return ops.NewNegOp() }, t)
}

// Exp returns the element-wise exponential.
func (t *Tensor[T, B]) Exp() *Tensor[T, B] {
	out := t.backend.Exp(t.node.value)
	return record(t.backend, out, func() ops.Operation { return ops.NewExpOp(out) }, t)
}

// Log returns the element-wise natural logarithm.
func (t *Tensor[T, B]) Log() *Tensor[T, B] {
	x := t.node.value
	out := t.backend.Log(x)
	return record(t.backend, out, func() ops.Operation { return ops.NewLogOp(x) }, t)
}

// Sqrt returns the element-wise square root.
func (t *Tensor[T, B]) Sqrt() *Tensor[T, B] {
	out := t.backend.Sqrt(t.node.value)
	return record(t.backend, out, func() ops.Operation { return ops.NewSqrtOp(out) }, t)
}

// AddScalar adds a scalar to every element.
func (t *Tensor[T, B]) AddScalar(scalar any) *Tensor[T, B] {
	out := t.backend.AddScalar(t.node.value, scalar)
	return record(t.backend, out, func() ops.Operation { return ops.NewAddScalarOp() }, t)
}

// MulScalar multiplies every element by a scalar.
func (t *Tensor[T, B]) MulScalar(scalar any) *Tensor[T, B] {
	out := t.backend.MulScalar(t.node.value, scalar)
	return record(t.backend, out, func() ops.Operation { return ops.NewMulScalarOp(scalar) }, t)
}

// MatMul performs matrix multiplication: (M, K) @ (K, N) → (M, N).
func (t *Tensor[T, B]) MatMul(other *Tensor[T, B]) *Tensor[T, B] {
	a, b := t.node.value, other.node.value
	out := t.backend.MatMul(a, b)
	return record(t.backend, out, func() ops.Operation { return ops.NewMatMulOp(a, b) }, t, other)
}

// Sum reduces all elements to a single-element tensor.
func (t *Tensor[T, B]) Sum() *Tensor[T, B] {
	x := t.node.value
	out := t.backend.Sum(x)
	return record(t.backend, out, func() ops.Operation { return ops.NewSumOp(x) }, t)
}

// SumDim sums along a dimension.
func (t *Tensor[T, B]) SumDim(dim int, keepDim bool) *Tensor[T, B] {
	x := t.node.value
	out := t.backend.SumDim(x, dim, keepDim)
	return record(t.backend, out, func() ops.Operation { return ops.NewSumDimOp(x, dim, keepDim) }, t)
}

// MeanDim averages along a dimension.
func (t *Tensor[T, B]) MeanDim(dim int, keepDim bool) *Tensor[T, B] {
	x := t.node.value
	out := t.backend.MeanDim(x, dim, keepDim)
	return record(t.backend, out, func() ops.Operation { return ops.NewMeanDimOp(x, dim, keepDim) }, t)
}

// Reshape returns a tensor with the same data but a different shape.
func (t *Tensor[T, B]) Reshape(newShape ...int) *Tensor[T, B] {
	x := t.node.value
	out := t.backend.Reshape(x, tensor.Shape(newShape))
	return record(t.backend, out, func() ops.Operation { return ops.NewReshapeOp(x) }, t)
}

// Transpose permutes the tensor's dimensions. If axes is empty, all
// dimensions are reversed.
func (t *Tensor[T, B]) Transpose(axes ...int) *Tensor[T, B] {
	// Resolve the default here so the descriptor records the actual
	// permutation and can invert it.
	if len(axes) == 0 {
		ndim := len(t.Shape())
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}
	out := t.backend.Transpose(t.node.value, axes...)
	return record(t.backend, out, func() ops.Operation { return ops.NewTransposeOp(axes) }, t)
}

// T is a shortcut for 2D transpose. Panics if the tensor is not 2D.
func (t *Tensor[T, B]) T() *Tensor[T, B] {
	if len(t.Shape()) != 2 {
		panic("T() only works for 2D tensors")
	}
	return t.Transpose(1, 0)
}

// Expand broadcasts the tensor to the given shape.
func (t *Tensor[T, B]) Expand(shape tensor.Shape) *Tensor[T, B] {
	x := t.node.value
	out := t.backend.Expand(x, shape)
	return record(t.backend, out, func() ops.Operation { return ops.NewExpandOp(x) }, t)
}

// Comparisons produce Bool tensors, and booleans have no useful
// derivative, so comparison results leave the graph as eager tensors.

// Greater compares element-wise: t > other.
func (t *Tensor[T, B]) Greater(other *Tensor[T, B]) *tensor.Tensor[bool, B] {
	return tensor.New[bool, B](t.backend.Greater(t.node.value, other.node.value), t.backend)
}

// Lower compares element-wise: t < other.
func (t *Tensor[T, B]) Lower(other *Tensor[T, B]) *tensor.Tensor[bool, B] {
	return tensor.New[bool, B](t.backend.Lower(t.node.value, other.node.value), t.backend)
}

// GreaterEqual compares element-wise: t >= other.
func (t *Tensor[T, B]) GreaterEqual(other *Tensor[T, B]) *tensor.Tensor[bool, B] {
	return tensor.New[bool, B](t.backend.GreaterEqual(t.node.value, other.node.value), t.backend)
}

// LowerEqual compares element-wise: t <= other.
func (t *Tensor[T, B]) LowerEqual(other *Tensor[T, B]) *tensor.Tensor[bool, B] {
	return tensor.New[bool, B](t.backend.LowerEqual(t.node.value, other.node.value), t.backend)
}

// Equal compares element-wise: t == other.
func (t *Tensor[T, B]) Equal(other *Tensor[T, B]) *tensor.Tensor[bool, B] {
	return tensor.New[bool, B](t.backend.Equal(t.node.value, other.node.value), t.backend)
}

// NotEqual compares element-wise: t != other.
func (t *Tensor[T, B]) NotEqual(other *Tensor[T, B]) *tensor.Tensor[bool, B] {
	return tensor.New[bool, B](t.backend.NotEqual(t.node.value, other.node.value), t.backend)
}
