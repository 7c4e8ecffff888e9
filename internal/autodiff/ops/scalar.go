package ops

import "github.com/ember-ml/ember/internal/tensor"

// AddScalarOp records scalar addition: output = x + s.
//
// Backward pass: d(x+s)/dx = 1, so grad_x = outputGrad.
type AddScalarOp struct{}

// NewAddScalarOp creates an AddScalarOp. The scalar constant has no
// gradient and the rule needs nothing from the forward pass.
func NewAddScalarOp() *AddScalarOp { return &AddScalarOp{} }

// Kind identifies the operation.
func (op *AddScalarOp) Kind() Kind { return KindAddScalar }

// Backward passes the output gradient through unchanged.
func (op *AddScalarOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{outputGrad.Clone()}
}

// MulScalarOp records scalar multiplication: output = x * s.
//
// Backward pass: d(x*s)/dx = s, so grad_x = outputGrad * s.
type MulScalarOp struct {
	scalar any
}

// NewMulScalarOp creates a MulScalarOp, retaining the scalar.
func NewMulScalarOp(scalar any) *MulScalarOp {
	return &MulScalarOp{scalar: scalar}
}

// Kind identifies the operation.
func (op *MulScalarOp) Kind() Kind { return KindMulScalar }

// Backward scales the output gradient by the recorded scalar.
func (op *MulScalarOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.MulScalar(outputGrad, op.scalar)}
}
