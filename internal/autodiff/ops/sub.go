package ops

import "github.com/ember-ml/ember/internal/tensor"

// SubOp records element-wise subtraction: output = a - b.
//
// Backward pass:
//   - d(a-b)/da = 1, so grad_a = outputGrad
//   - d(a-b)/db = -1, so grad_b = -outputGrad
type SubOp struct {
	aShape tensor.Shape
	bShape tensor.Shape
}

// NewSubOp creates a SubOp.
func NewSubOp(a, b *tensor.RawTensor) *SubOp {
	return &SubOp{
		aShape: a.Shape(),
		bShape: b.Shape(),
	}
}

// Kind identifies the operation.
func (op *SubOp) Kind() Kind { return KindSub }

// Backward computes input gradients for subtraction.
func (op *SubOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{
		reduceBroadcast(outputGrad, op.aShape, backend),
		reduceBroadcast(backend.Neg(outputGrad), op.bShape, backend),
	}
}
