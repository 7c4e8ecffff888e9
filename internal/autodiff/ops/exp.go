package ops

import "github.com/ember-ml/ember/internal/tensor"

// ExpOp records the element-wise exponential: output = exp(x).
//
// Backward pass: d(exp(x))/dx = exp(x), so grad_x = outputGrad * output.
// The forward output is retained instead of recomputing the exponential.
type ExpOp struct {
	output *tensor.RawTensor
}

// NewExpOp creates an ExpOp, retaining the forward output.
func NewExpOp(output *tensor.RawTensor) *ExpOp {
	return &ExpOp{output: output.Clone()}
}

// Kind identifies the operation.
func (op *ExpOp) Kind() Kind { return KindExp }

// Backward scales the output gradient by the forward output.
func (op *ExpOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Mul(outputGrad, op.output)}
}
