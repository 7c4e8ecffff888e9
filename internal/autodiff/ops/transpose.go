package ops

import "github.com/ember-ml/ember/internal/tensor"

// TransposeOp records a dimension permutation: output = transpose(x, axes).
//
// Backward pass: apply the inverse permutation to the gradient.
type TransposeOp struct {
	axes []int
}

// NewTransposeOp creates a TransposeOp. axes must be the resolved
// permutation actually applied in the forward pass.
func NewTransposeOp(axes []int) *TransposeOp {
	return &TransposeOp{axes: axes}
}

// Kind identifies the operation.
func (op *TransposeOp) Kind() Kind { return KindTranspose }

// Backward permutes the gradient with the inverse of the forward axes.
func (op *TransposeOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	inverse := make([]int, len(op.axes))
	for i, ax := range op.axes {
		inverse[ax] = i
	}
	return []*tensor.RawTensor{backend.Transpose(outputGrad, inverse...)}
}
