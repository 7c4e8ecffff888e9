package ops

import "github.com/ember-ml/ember/internal/tensor"

// DivOp records element-wise division: output = a / b.
//
// Backward pass:
//   - d(a/b)/da = 1/b, so grad_a = outputGrad / b
//   - d(a/b)/db = -a/b², so grad_b = -outputGrad * a / (b*b)
type DivOp struct {
	a *tensor.RawTensor
	b *tensor.RawTensor
}

// NewDivOp creates a DivOp, retaining both inputs.
func NewDivOp(a, b *tensor.RawTensor) *DivOp {
	return &DivOp{
		a: a.Clone(),
		b: b.Clone(),
	}
}

// Kind identifies the operation.
func (op *DivOp) Kind() Kind { return KindDiv }

// Backward computes input gradients for division.
func (op *DivOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	gradA := reduceBroadcast(backend.Div(outputGrad, op.b), op.a.Shape(), backend)

	bSquared := backend.Mul(op.b, op.b)
	gradB := backend.Neg(backend.Div(backend.Mul(outputGrad, op.a), bSquared))
	gradB = reduceBroadcast(gradB, op.b.Shape(), backend)

	return []*tensor.RawTensor{gradA, gradB}
}
