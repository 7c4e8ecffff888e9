package ops

import "github.com/ember-ml/ember/internal/tensor"

// MulOp records element-wise multiplication: output = a * b.
//
// Backward pass:
//   - d(a*b)/da = b, so grad_a = outputGrad * b
//   - d(a*b)/db = a, so grad_b = outputGrad * a
type MulOp struct {
	a *tensor.RawTensor
	b *tensor.RawTensor
}

// NewMulOp creates a MulOp. Both inputs are retained for the backward
// pass; retention goes through Clone so the shared buffers stay
// copy-on-write protected.
func NewMulOp(a, b *tensor.RawTensor) *MulOp {
	return &MulOp{
		a: a.Clone(),
		b: b.Clone(),
	}
}

// Kind identifies the operation.
func (op *MulOp) Kind() Kind { return KindMul }

// Backward computes input gradients for multiplication.
func (op *MulOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	gradA := reduceBroadcast(backend.Mul(outputGrad, op.b), op.a.Shape(), backend)
	gradB := reduceBroadcast(backend.Mul(outputGrad, op.a), op.b.Shape(), backend)
	return []*tensor.RawTensor{gradA, gradB}
}
