package ops

import "github.com/ember-ml/ember/internal/tensor"

// ReshapeOp records a shape change: output = reshape(x, newShape).
//
// Backward pass: reshape is a pure data-layout change, so the gradient is
// reshaped back to the original shape.
type ReshapeOp struct {
	inputShape tensor.Shape
}

// NewReshapeOp creates a ReshapeOp.
func NewReshapeOp(x *tensor.RawTensor) *ReshapeOp {
	return &ReshapeOp{inputShape: x.Shape()}
}

// Kind identifies the operation.
func (op *ReshapeOp) Kind() Kind { return KindReshape }

// Backward reshapes the gradient back to the input shape.
func (op *ReshapeOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Reshape(outputGrad, op.inputShape)}
}
