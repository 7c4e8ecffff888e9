package ops

import "github.com/ember-ml/ember/internal/tensor"

// SqrtOp records the element-wise square root: output = sqrt(x).
//
// Backward pass: d(sqrt(x))/dx = 1/(2*sqrt(x)), so
// grad_x = outputGrad / (2 * output). The forward output is retained.
type SqrtOp struct {
	output *tensor.RawTensor
}

// NewSqrtOp creates a SqrtOp, retaining the forward output.
func NewSqrtOp(output *tensor.RawTensor) *SqrtOp {
	return &SqrtOp{output: output.Clone()}
}

// Kind identifies the operation.
func (op *SqrtOp) Kind() Kind { return KindSqrt }

// Backward computes grad_x = outputGrad / (2 * sqrt(x)).
func (op *SqrtOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	doubled := backend.MulScalar(op.output, 2.0)
	return []*tensor.RawTensor{backend.Div(outputGrad, doubled)}
}
