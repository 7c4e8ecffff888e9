package ops

import "github.com/ember-ml/ember/internal/tensor"

// ExpandOp records an explicit broadcast: output = expand(x, shape).
//
// Backward pass: expansion is the transpose of reduction, so gradients of
// the stretched elements are summed back into the original shape.
type ExpandOp struct {
	inputShape tensor.Shape
}

// NewExpandOp creates an ExpandOp.
func NewExpandOp(x *tensor.RawTensor) *ExpandOp {
	return &ExpandOp{inputShape: x.Shape()}
}

// Kind identifies the operation.
func (op *ExpandOp) Kind() Kind { return KindExpand }

// Backward sums the gradient over the stretched dimensions.
func (op *ExpandOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{reduceBroadcast(outputGrad, op.inputShape, backend)}
}
