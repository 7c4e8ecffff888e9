package ops

import "github.com/ember-ml/ember/internal/tensor"

// AddOp records element-wise addition: output = a + b.
//
// Backward pass:
//   - d(a+b)/da = 1, so grad_a = outputGrad (reduced if a was broadcast)
//   - d(a+b)/db = 1, so grad_b = outputGrad (reduced if b was broadcast)
type AddOp struct {
	aShape tensor.Shape
	bShape tensor.Shape
}

// NewAddOp creates an AddOp. Addition only needs the input shapes to undo
// broadcasting; the values themselves are not retained.
func NewAddOp(a, b *tensor.RawTensor) *AddOp {
	return &AddOp{
		aShape: a.Shape(),
		bShape: b.Shape(),
	}
}

// Kind identifies the operation.
func (op *AddOp) Kind() Kind { return KindAdd }

// Backward routes the output gradient to both inputs.
func (op *AddOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{
		reduceBroadcast(outputGrad, op.aShape, backend),
		reduceBroadcast(outputGrad, op.bShape, backend),
	}
}
