package ops

import "github.com/ember-ml/ember/internal/tensor"

// MatMulOp records 2D matrix multiplication: output = a @ b.
//
// Backward pass:
//   - d(A@B)/dA: grad_a = outputGrad @ Bᵀ
//   - d(A@B)/dB: grad_b = Aᵀ @ outputGrad
type MatMulOp struct {
	a *tensor.RawTensor
	b *tensor.RawTensor
}

// NewMatMulOp creates a MatMulOp, retaining both inputs.
func NewMatMulOp(a, b *tensor.RawTensor) *MatMulOp {
	return &MatMulOp{
		a: a.Clone(),
		b: b.Clone(),
	}
}

// Kind identifies the operation.
func (op *MatMulOp) Kind() Kind { return KindMatMul }

// Backward computes input gradients for matrix multiplication.
func (op *MatMulOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	gradA := backend.MatMul(outputGrad, backend.Transpose(op.b))
	gradB := backend.MatMul(backend.Transpose(op.a), outputGrad)
	return []*tensor.RawTensor{gradA, gradB}
}
