package ops

import "github.com/ember-ml/ember/internal/tensor"

// LogOp records the element-wise natural logarithm: output = ln(x).
//
// Backward pass: d(ln(x))/dx = 1/x, so grad_x = outputGrad / x.
type LogOp struct {
	input *tensor.RawTensor
}

// NewLogOp creates a LogOp, retaining the forward input.
func NewLogOp(input *tensor.RawTensor) *LogOp {
	return &LogOp{input: input.Clone()}
}

// Kind identifies the operation.
func (op *LogOp) Kind() Kind { return KindLog }

// Backward divides the output gradient by the forward input.
func (op *LogOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Div(outputGrad, op.input)}
}
