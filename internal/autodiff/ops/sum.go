package ops

import "github.com/ember-ml/ember/internal/tensor"

// SumOp records a full reduction: output = sum of all elements of x.
//
// Backward pass: every element contributed with coefficient 1, so the
// scalar output gradient is stretched back to the input shape.
type SumOp struct {
	inputShape tensor.Shape
}

// NewSumOp creates a SumOp. Only the input shape is needed.
func NewSumOp(x *tensor.RawTensor) *SumOp {
	return &SumOp{inputShape: x.Shape()}
}

// Kind identifies the operation.
func (op *SumOp) Kind() Kind { return KindSum }

// Backward broadcasts the scalar gradient to the input shape.
func (op *SumOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{broadcastGrad(outputGrad, op.inputShape, backend)}
}
